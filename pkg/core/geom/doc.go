// Package geom provides the plot-space geometry shared by every heatflow stage.
//
// # Coordinate System
//
// All coordinates are plot units with y increasing upward, matching the way
// process diagrams are drawn on paper: the first component of a chain sits at
// the top with the largest y. Renderers flip the y axis when mapping to pixels.
//
// # Anchors
//
// Every component box has four anchor tips where pipe segments attach. The tips
// sit [StandOff] units outside the box on the horizontal axis and half a
// half-size above or below the center:
//
//	TopLeft ●───┌─────────┐───● TopRight
//	            │  label  │
//	BottomLeft ●┴─────────┴● BottomRight
//
// [AnchorPositions] computes them from a center and half-size. Connectors and
// glyph placement depend on these exact offsets.
//
// # Bounds
//
// [Bounds] accumulates points and rectangles into an axis-aligned box used to
// frame exports. Width and Height never return zero so aspect ratios stay finite
// for degenerate diagrams such as a single node.
package geom
