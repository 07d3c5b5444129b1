package diagram

import (
	"strings"

	"github.com/matzehuels/heatflow/pkg/core/network"
	"github.com/matzehuels/heatflow/pkg/core/route"
	"github.com/matzehuels/heatflow/pkg/errors"
)

// Policy chooses the initial kind of each connector.
type Policy interface {
	Kind(p network.Pair, side route.Side) route.Kind
}

type allNormal struct{}

func (allNormal) Kind(network.Pair, route.Side) route.Kind { return route.Normal }

// AllNormal starts every connector as a plain line.
var AllNormal Policy = allNormal{}

// Positional assigns kinds by pair index on one side of the chain.
// Pairs not listed, and the other side, stay Normal.
type Positional struct {
	Side  route.Side
	Kinds map[int]route.Kind
}

// Kind implements Policy.
func (p Positional) Kind(pair network.Pair, side route.Side) route.Kind {
	if side != p.Side {
		return route.Normal
	}
	if k, ok := p.Kinds[pair.Index]; ok {
		return k
	}
	return route.Normal
}

// Preset is the classic left-side layout: a valve on the second pair and a
// pump on the third.
func Preset() Positional {
	return Positional{
		Side:  route.Left,
		Kinds: map[int]route.Kind{1: route.Valve, 2: route.Pump},
	}
}

// ParsePolicy maps a policy name to a Policy.
// Valid names are "normal" (or empty) and "preset".
func ParsePolicy(name string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "normal":
		return AllNormal, nil
	case "preset":
		return Preset(), nil
	}
	return nil, errors.New(errors.ErrCodeInvalidPolicy, "unknown policy %q (want normal or preset)", name)
}
