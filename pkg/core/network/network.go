package network

import (
	"errors"

	"github.com/matzehuels/heatflow/pkg/core/geom"
)

// DefaultSize is the half-size applied to nodes appended without one.
const DefaultSize = 0.2

var (
	// ErrInvalidNodeID is returned by [Chain.Append] when the node ID is empty.
	ErrInvalidNodeID = errors.New("node ID must not be empty")

	// ErrDuplicateNodeID is returned by [Chain.Append] when a node with the
	// same ID is already in the chain.
	ErrDuplicateNodeID = errors.New("duplicate node ID")
)

// CornerLabels holds the text shown next to each anchor tip.
// Missing labels are empty strings.
type CornerLabels struct {
	TopLeft     string `json:"top_left,omitempty" yaml:"top_left,omitempty" toml:"top_left,omitempty"`
	TopRight    string `json:"top_right,omitempty" yaml:"top_right,omitempty" toml:"top_right,omitempty"`
	BottomLeft  string `json:"bottom_left,omitempty" yaml:"bottom_left,omitempty" toml:"bottom_left,omitempty"`
	BottomRight string `json:"bottom_right,omitempty" yaml:"bottom_right,omitempty" toml:"bottom_right,omitempty"`
}

// Node is a component box in the schematic.
//
// Nodes are immutable once appended; the chain hands out pointers for cheap
// lookups, not for mutation.
type Node struct {
	ID      string       // Unique, non-empty identifier
	X, Y    float64      // Center in plot units
	Size    float64      // Half-size of the box
	Label   string       // Primary label drawn inside the box
	Corners CornerLabels // Labels next to the anchor tips
}

// Center returns the node center.
func (n *Node) Center() geom.Point { return geom.Point{X: n.X, Y: n.Y} }

// Box returns the node rectangle, extending Size from the center on each side.
func (n *Node) Box() geom.Rect { return geom.RectAround(n.Center(), n.Size) }

// Anchors returns the four connector tips of the node.
func (n *Node) Anchors() geom.Anchors { return geom.AnchorPositions(n.X, n.Y, n.Size) }

// Pair is two nodes adjacent in a chain. Start precedes End.
type Pair struct {
	Index      int
	Start, End *Node
}

// Chain is an ordered sequence of nodes with lookup by ID.
//
// The zero value is an empty chain ready to use.
type Chain struct {
	nodes []*Node
	index map[string]int
}

// NewChain returns a chain holding nodes in order. It stops at the first
// node that [Chain.Append] rejects.
func NewChain(nodes ...Node) (*Chain, error) {
	c := &Chain{}
	for _, n := range nodes {
		if err := c.Append(n); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Append adds n at the end of the chain.
// A non-positive Size is replaced by [DefaultSize].
func (c *Chain) Append(n Node) error {
	if n.ID == "" {
		return ErrInvalidNodeID
	}
	if _, exists := c.index[n.ID]; exists {
		return ErrDuplicateNodeID
	}
	if n.Size <= 0 {
		n.Size = DefaultSize
	}
	if c.index == nil {
		c.index = make(map[string]int)
	}
	c.index[n.ID] = len(c.nodes)
	c.nodes = append(c.nodes, &n)
	return nil
}

// Find returns the node with the given ID.
func (c *Chain) Find(id string) (*Node, bool) {
	i, ok := c.index[id]
	if !ok {
		return nil, false
	}
	return c.nodes[i], true
}

// Nodes returns the nodes in append order. The slice is a copy.
func (c *Chain) Nodes() []*Node {
	out := make([]*Node, len(c.nodes))
	copy(out, c.nodes)
	return out
}

// Len returns the number of nodes.
func (c *Chain) Len() int { return len(c.nodes) }

// Head returns the first node, or nil for an empty chain.
func (c *Chain) Head() *Node {
	if len(c.nodes) == 0 {
		return nil
	}
	return c.nodes[0]
}

// Tail returns the last node, or nil for an empty chain.
func (c *Chain) Tail() *Node {
	if len(c.nodes) == 0 {
		return nil
	}
	return c.nodes[len(c.nodes)-1]
}

// Prev returns the node before id. It reports false for the head or an
// unknown id.
func (c *Chain) Prev(id string) (*Node, bool) {
	i, ok := c.index[id]
	if !ok || i == 0 {
		return nil, false
	}
	return c.nodes[i-1], true
}

// Next returns the node after id. It reports false for the tail or an
// unknown id.
func (c *Chain) Next(id string) (*Node, bool) {
	i, ok := c.index[id]
	if !ok || i == len(c.nodes)-1 {
		return nil, false
	}
	return c.nodes[i+1], true
}

// Pairs returns every adjacent pair in chain order.
func (c *Chain) Pairs() []Pair {
	if len(c.nodes) < 2 {
		return nil
	}
	pairs := make([]Pair, 0, len(c.nodes)-1)
	for i := 0; i < len(c.nodes)-1; i++ {
		pairs = append(pairs, Pair{Index: i, Start: c.nodes[i], End: c.nodes[i+1]})
	}
	return pairs
}
