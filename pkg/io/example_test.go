package io_test

import (
	"fmt"

	hio "github.com/matzehuels/heatflow/pkg/io"
)

func ExampleParse() {
	data := []byte(`
title: Two stage
nodes:
  - {id: hot, x: 0, y: 1, label: Condenser}
  - {id: cold, x: 0, y: 0, label: Evaporator}
connections:
  - {start: hot, end: cold, side: right, type: pump, label: "COP: 4.1"}
  - {start: cold, end: hot, side: left, type: valve}
`)
	def, err := hio.Parse(data, hio.FormatYAML)
	if err != nil {
		fmt.Println(err)
		return
	}
	d, unmatched, err := def.Build()
	if err != nil {
		fmt.Println(err)
		return
	}
	for _, c := range d.Connections() {
		fmt.Printf("%s->%s %s %s %q\n", c.Key.StartID, c.Key.EndID, c.Key.Side, c.Kind, c.Label)
	}
	fmt.Println("unmatched:", len(unmatched))
	// Output:
	// hot->cold left normal ""
	// hot->cold right pump "COP: 4.1"
	// unmatched: 1
}
