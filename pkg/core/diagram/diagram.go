package diagram

import (
	"github.com/matzehuels/heatflow/pkg/core/geom"
	"github.com/matzehuels/heatflow/pkg/core/network"
	"github.com/matzehuels/heatflow/pkg/core/route"
	"github.com/matzehuels/heatflow/pkg/core/scene"
)

// CornerLabelOffset is the vertical distance between an anchor tip and its
// corner label.
const CornerLabelOffset = 0.04

// Node styling.
var (
	BoxStroke = scene.Stroke{Color: "DarkSlateGrey", Width: 2}
	BoxFill   = "LightSkyBlue"
	LabelFont = scene.Font{Size: 14, Color: "black"}
	StubArrow = scene.Arrow{Head: 1, Width: 3, Color: "black"}
	// CornerFont styles corner labels.
	CornerFont = scene.Font{Size: 10, Color: "black"}
)

// ConnKey identifies a connection.
type ConnKey struct {
	StartID string
	EndID   string
	Side    route.Side
}

// Connection is a connector between two adjacent nodes.
type Connection struct {
	Key        ConnKey
	Start, End *network.Node
	Kind       route.Kind
	Label      string
}

type options struct {
	corners bool
	policy  Policy
	route   []route.Option
}

// Option configures a Diagram.
type Option func(*options)

// WithCornerLabels toggles corner labels. They are on by default.
func WithCornerLabels(on bool) Option {
	return func(o *options) { o.corners = on }
}

// WithPolicy sets the policy for initial connector kinds.
func WithPolicy(p Policy) Option {
	return func(o *options) {
		if p != nil {
			o.policy = p
		}
	}
}

// WithRouteOptions passes options to every connector route.
func WithRouteOptions(opts ...route.Option) Option {
	return func(o *options) { o.route = append(o.route, opts...) }
}

// Diagram is an assembled schematic.
type Diagram struct {
	chain *network.Chain
	opts  options

	nodeShapes []scene.Shape
	nodeNotes  []scene.Annotation

	conns map[ConnKey]*Connection
	order []ConnKey
}

// New builds the node primitives and default connectors for chain.
func New(chain *network.Chain, opts ...Option) *Diagram {
	o := options{corners: true, policy: AllNormal}
	for _, opt := range opts {
		opt(&o)
	}
	if chain == nil {
		chain = &network.Chain{}
	}

	d := &Diagram{
		chain: chain,
		opts:  o,
		conns: make(map[ConnKey]*Connection),
	}
	for _, n := range chain.Nodes() {
		d.drawNode(n)
	}
	for _, p := range chain.Pairs() {
		for _, side := range []route.Side{route.Left, route.Right} {
			key := ConnKey{StartID: p.Start.ID, EndID: p.End.ID, Side: side}
			d.conns[key] = &Connection{
				Key:   key,
				Start: p.Start,
				End:   p.End,
				Kind:  o.policy.Kind(p, side),
			}
			d.order = append(d.order, key)
		}
	}
	return d
}

func (d *Diagram) drawNode(n *network.Node) {
	d.nodeShapes = append(d.nodeShapes, scene.Rect(n.Box(), BoxStroke, BoxFill))
	d.nodeNotes = append(d.nodeNotes, scene.Annotation{
		At:     n.Center(),
		Text:   n.Label,
		Anchor: scene.AnchorCenter,
		Font:   LabelFont,
	})

	a := n.Anchors()
	left, right := n.X-n.Size, n.X+n.Size
	top, bottom := n.Y+n.Size/2, n.Y-n.Size/2

	// Top-left and bottom-right stubs point into the box, the others out of it.
	d.nodeNotes = append(d.nodeNotes,
		stub(geom.Point{X: a.TopLeft.X, Y: top}, geom.Point{X: left, Y: a.TopLeft.Y}),
		stub(geom.Point{X: right, Y: top}, a.TopRight),
		stub(geom.Point{X: left, Y: bottom}, a.BottomLeft),
		stub(geom.Point{X: a.BottomRight.X, Y: bottom}, geom.Point{X: right, Y: a.BottomRight.Y}),
	)

	if !d.opts.corners {
		return
	}
	leftX := left - geom.StandOff/2
	rightX := right + geom.StandOff/2
	for _, c := range []struct {
		text string
		at   geom.Point
	}{
		{n.Corners.TopLeft, geom.Point{X: leftX, Y: a.TopLeft.Y + CornerLabelOffset}},
		{n.Corners.TopRight, geom.Point{X: rightX, Y: a.TopRight.Y + CornerLabelOffset}},
		{n.Corners.BottomLeft, geom.Point{X: leftX, Y: a.BottomLeft.Y - CornerLabelOffset}},
		{n.Corners.BottomRight, geom.Point{X: rightX, Y: a.BottomRight.Y - CornerLabelOffset}},
	} {
		if c.text == "" {
			continue
		}
		d.nodeNotes = append(d.nodeNotes, scene.Annotation{
			At:     c.at,
			Text:   c.text,
			Anchor: scene.AnchorCenter,
			Font:   CornerFont,
		})
	}
}

func stub(tail, head geom.Point) scene.Annotation {
	arrow := StubArrow
	arrow.Tail = tail
	return scene.Annotation{At: head, Font: scene.Font{Color: "black"}, Arrow: &arrow}
}

// Configure sets the kind and label of the connection (startID, endID, side).
// It reports whether such a connection exists; if not, nothing changes.
func (d *Diagram) Configure(startID, endID string, side route.Side, kind route.Kind, label string) bool {
	c, ok := d.conns[ConnKey{StartID: startID, EndID: endID, Side: side}]
	if !ok {
		return false
	}
	c.Kind = kind
	c.Label = label
	return true
}

// Connection returns a copy of the connection stored under key.
func (d *Diagram) Connection(key ConnKey) (Connection, bool) {
	c, ok := d.conns[key]
	if !ok {
		return Connection{}, false
	}
	return *c, true
}

// Connections returns copies of all connections in pair order, left side first.
func (d *Diagram) Connections() []Connection {
	out := make([]Connection, 0, len(d.order))
	for _, k := range d.order {
		out = append(out, *d.conns[k])
	}
	return out
}

// Chain returns the node chain the diagram was built from.
func (d *Diagram) Chain() *network.Chain { return d.chain }

// Scene returns the full set of primitives.
func (d *Diagram) Scene() scene.Scene {
	var sc scene.Scene
	sc.Add(d.nodeShapes...)
	sc.Annotate(d.nodeNotes...)
	for _, k := range d.order {
		c := d.conns[k]
		r := route.Route(c.Start, c.End, k.Side, c.Kind, c.Label, d.opts.route...)
		sc.Add(r.Shapes()...)
		if r.Label != nil {
			sc.Annotate(*r.Label)
		}
	}
	return sc
}

// Bounds returns the extent of every shape and annotation point.
func (d *Diagram) Bounds() geom.Bounds {
	return d.Scene().Bounds()
}
