// Package scene defines the renderer-neutral primitives a diagram is made of.
//
// A [Scene] is two flat lists: [Shape] values (rectangles, line segments and
// filled path polygons) and [Annotation] values (positioned text, optionally with
// an arrow). Primitives are write-once: stages append them and sinks in
// [github.com/matzehuels/heatflow/pkg/core/render] consume them.
//
// Paths use SVG path syntax ("M x,y L x,y ... Z") in plot units so they can be
// handed to any vector backend unchanged.
//
// # Export framing
//
// [Scene.Bounds] covers every shape extent and every annotation point, including
// arrow tails. [ExportSize] turns padded bounds into a pixel canvas of fixed
// width whose height keeps the diagram's aspect ratio.
package scene
