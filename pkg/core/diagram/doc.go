// Package diagram assembles a heat-pump schematic from a node chain.
//
// [New] draws every node (box, centered label, four stub arrows and optional
// corner labels) and creates two connectors for every adjacent pair of nodes,
// one per side. Connectors start out with the kind chosen by a [Policy] and
// can be reconfigured afterwards by (start, end, side):
//
//	d := diagram.New(chain)
//	d.Configure("A", "B", route.Left, route.Valve, "")
//	d.Configure("A", "B", route.Right, route.Pump, "COP: 3.04")
//	sc := d.Scene()
//
// # Connections
//
// Connections are keyed by [ConnKey], so there is at most one connection per
// (start, end, side). [Diagram.Configure] overwrites the matching entry and
// reports whether one existed; configuring a triple that names no adjacent
// pair changes nothing. Calling Configure twice with the same arguments has
// the same effect as calling it once.
//
// # Scene order
//
// [Diagram.Scene] emits node shapes first, then each connector's line followed
// by its glyphs, in connection order (pair order, left before right). Node
// annotations precede connector labels.
//
// A Diagram is not safe for concurrent use; build one per goroutine.
package diagram
