// Package sink writes a diagram scene to output formats.
//
// # Framing
//
// Every sink frames the scene the same way: the scene bounds are padded by a
// margin fraction on each axis (10% by default), mapped onto a canvas of fixed
// pixel width (800 by default) and a height that keeps the padded aspect ratio.
// Plot coordinates grow upward, so the y axis is flipped.
//
// # Formats
//
//   - [RenderSVG]: self-contained SVG with arrow markers
//   - [RenderPNG]: native raster via fogleman/gg and the Go Regular font
//   - [RenderPDF]: SVG converted with rsvg-convert
//   - [RenderJSON]: shape and annotation descriptors in plot units
//
// All sinks take the same [Option] values; options a sink has no use for are
// ignored.
package sink
