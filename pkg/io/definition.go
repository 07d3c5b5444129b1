package io

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/matzehuels/heatflow/pkg/core/diagram"
	"github.com/matzehuels/heatflow/pkg/core/network"
	"github.com/matzehuels/heatflow/pkg/core/route"
	"github.com/matzehuels/heatflow/pkg/errors"
)

var validate = validator.New()

// Definition is a declarative schematic.
type Definition struct {
	Title       string       `json:"title,omitempty" yaml:"title,omitempty" toml:"title,omitempty" validate:"max=200"`
	Policy      string       `json:"policy,omitempty" yaml:"policy,omitempty" toml:"policy,omitempty" validate:"omitempty,oneof=normal preset"`
	Nodes       []Node       `json:"nodes" yaml:"nodes" toml:"nodes" validate:"required,min=1,dive"`
	Connections []Connection `json:"connections,omitempty" yaml:"connections,omitempty" toml:"connections,omitempty" validate:"dive"`
}

// Node is a component box.
type Node struct {
	ID      string               `json:"id" yaml:"id" toml:"id" validate:"required"`
	X       float64              `json:"x" yaml:"x" toml:"x"`
	Y       float64              `json:"y" yaml:"y" toml:"y"`
	Size    float64              `json:"size,omitempty" yaml:"size,omitempty" toml:"size,omitempty" validate:"gte=0"`
	Label   string               `json:"label" yaml:"label" toml:"label" validate:"required"`
	Corners network.CornerLabels `json:"corners,omitempty" yaml:"corners,omitempty" toml:"corners,omitempty"`
}

// Connection overrides one connector.
type Connection struct {
	Start string `json:"start" yaml:"start" toml:"start" validate:"required"`
	End   string `json:"end" yaml:"end" toml:"end" validate:"required"`
	Side  string `json:"side" yaml:"side" toml:"side" validate:"required,oneof=left right"`
	Type  string `json:"type,omitempty" yaml:"type,omitempty" toml:"type,omitempty" validate:"omitempty,oneof=normal pump valve"`
	Label string `json:"label,omitempty" yaml:"label,omitempty" toml:"label,omitempty"`
}

// Validate checks field constraints and node ID uniqueness.
func (d *Definition) Validate() error {
	if d == nil {
		return errors.New(errors.ErrCodeInvalidDefinition, "definition cannot be nil")
	}
	if err := validate.Struct(d); err != nil {
		return formatValidationError(err)
	}

	seen := make(map[string]bool, len(d.Nodes))
	for i, n := range d.Nodes {
		if err := errors.ValidateNodeID(n.ID); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidDefinition, err, "nodes[%d]", i)
		}
		if seen[n.ID] {
			return errors.New(errors.ErrCodeInvalidDefinition, "nodes[%d]: duplicate node id %q", i, n.ID)
		}
		seen[n.ID] = true
	}
	return nil
}

// Chain converts the nodes into a network chain.
func (d *Definition) Chain() (*network.Chain, error) {
	c := &network.Chain{}
	for i, n := range d.Nodes {
		err := c.Append(network.Node{
			ID:      n.ID,
			X:       n.X,
			Y:       n.Y,
			Size:    n.Size,
			Label:   n.Label,
			Corners: n.Corners,
		})
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidDefinition, err, "nodes[%d] %q", i, n.ID)
		}
	}
	return c, nil
}

// Build assembles the diagram and applies the connection overrides in order.
// Overrides that name no adjacent pair are returned as unmatched keys.
// Options are applied after the definition's own policy, so they win.
func (d *Definition) Build(opts ...diagram.Option) (*diagram.Diagram, []diagram.ConnKey, error) {
	if err := d.Validate(); err != nil {
		return nil, nil, err
	}
	chain, err := d.Chain()
	if err != nil {
		return nil, nil, err
	}
	policy, err := diagram.ParsePolicy(d.Policy)
	if err != nil {
		return nil, nil, err
	}

	dg := diagram.New(chain, append([]diagram.Option{diagram.WithPolicy(policy)}, opts...)...)

	var unmatched []diagram.ConnKey
	for i, c := range d.Connections {
		side, err := route.ParseSide(c.Side)
		if err != nil {
			return nil, nil, errors.Wrap(errors.ErrCodeInvalidDefinition, err, "connections[%d]", i)
		}
		kind, err := route.ParseKind(c.Type)
		if err != nil {
			return nil, nil, errors.Wrap(errors.ErrCodeInvalidDefinition, err, "connections[%d]", i)
		}
		if !dg.Configure(c.Start, c.End, side, kind, c.Label) {
			unmatched = append(unmatched, diagram.ConnKey{StartID: c.Start, EndID: c.End, Side: side})
		}
	}
	return dg, unmatched, nil
}

// formatValidationError converts validator errors to a coded, readable error.
func formatValidationError(err error) error {
	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return errors.Wrap(errors.ErrCodeInvalidDefinition, err, "validate definition")
	}

	// Report the first failure only.
	for _, e := range validationErrs {
		field := e.Namespace()
		param := e.Param()

		var msg string
		switch e.Tag() {
		case "required":
			msg = fmt.Sprintf("%s: field is required", field)
		case "min":
			msg = fmt.Sprintf("%s: must have at least %s entries", field, param)
		case "max":
			msg = fmt.Sprintf("%s: must not exceed %s characters", field, param)
		case "gte":
			msg = fmt.Sprintf("%s: must be at least %s", field, param)
		case "oneof":
			msg = fmt.Sprintf("%s: %q is not one of [%s]", field, e.Value(), param)
		default:
			msg = fmt.Sprintf("%s: validation failed (%s)", field, e.Tag())
		}
		return errors.New(errors.ErrCodeInvalidDefinition, "%s", msg)
	}
	return errors.Wrap(errors.ErrCodeInvalidDefinition, err, "validate definition")
}

// Sample returns the three-node TropiCHeat definition.
func Sample() *Definition {
	return &Definition{
		Title: "TropiCHeat",
		Nodes: []Node{
			{ID: "A", X: 2, Y: 2, Label: "Condensor", Corners: network.CornerLabels{
				TopLeft: "45 °C", TopRight: "40 °C", BottomLeft: "35 °C", BottomRight: "30 °C",
			}},
			{ID: "B", X: 2, Y: 1, Label: "Evaporator", Corners: network.CornerLabels{
				TopLeft: "12 °C", TopRight: "7 °C",
			}},
			{ID: "C", X: 2, Y: 0, Label: "TropiCHeat"},
		},
		Connections: []Connection{
			{Start: "A", End: "B", Side: "left", Type: "valve"},
			{Start: "A", End: "B", Side: "right", Type: "pump", Label: "COP: 3.04"},
		},
	}
}
