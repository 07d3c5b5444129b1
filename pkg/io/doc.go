// Package io reads and writes heat-pump definition files.
//
// # Overview
//
// A definition describes a schematic declaratively: an ordered list of nodes
// and a list of connector overrides. It can be written in TOML, YAML or JSON;
// the format is picked from the file extension (or, for the HTTP service, the
// request content type).
//
// # TOML Format
//
//	title  = "TropiCHeat"
//	policy = "normal"   # or "preset"
//
//	[[nodes]]
//	id = "A"
//	x = 2.0
//	y = 2.0
//	label = "Condensor"
//	[nodes.corners]
//	top_left = "45 °C"
//	bottom_right = "30 °C"
//
//	[[connections]]
//	start = "A"
//	end = "B"
//	side = "right"
//	type = "pump"
//	label = "COP: 3.04"
//
// # Node Fields
//
// Required:
//   - id: unique identifier, referenced by connections
//   - label: text drawn inside the box
//
// Optional:
//   - x, y: center in plot units (default 0)
//   - size: half-size of the box (default 0.2)
//   - corners: top_left, top_right, bottom_left, bottom_right labels
//
// # Connections
//
// Nodes are connected in list order, two connectors per adjacent pair. The
// connections list only overrides connectors: side is "left" or "right", type
// is "normal", "pump" or "valve". An override naming a pair that is not
// adjacent is not an error; [Definition.Build] reports it back as unmatched.
//
// # Validation
//
// [Definition.Validate] checks struct constraints with go-playground/validator
// and then cross-field rules such as unique node IDs. All read functions
// validate before returning.
package io
