// Package network models a heat-pump schematic as an ordered chain of
// components.
//
// Each [Node] is a square box (a condenser, an evaporator, a heat pump) with a
// center, a half-size and up to four corner labels, usually the temperatures of
// the streams entering and leaving the box. A [Chain] keeps nodes in insertion
// order and indexes them by ID, so lookups and neighbor queries are O(1).
//
// Only adjacent nodes are ever connected: [Chain.Pairs] yields (n[i], n[i+1])
// for every i, which is exactly the set of node pairs a diagram draws
// connectors between.
//
// # Anchors
//
// Every node exposes four anchor tips via [Node.Anchors]. Connectors start at
// the bottom tips of the upper node and end at the top tips of the lower node:
//
//	   TL ─┐┌───────┐┌─ TR
//	       ││ label ││
//	   BL ─┘└───────┘└─ BR
//
// Chain is not safe for concurrent use without external synchronization.
package network
