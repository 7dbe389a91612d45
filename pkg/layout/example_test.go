package layout_test

import (
	"fmt"

	"github.com/laneflow/laneflow/pkg/layout"
	"github.com/laneflow/laneflow/pkg/process"
)

func ExampleLayout() {
	p := &process.Process{
		Name:   "Intake",
		Actors: []string{"Ops"},
		Nodes: []process.Node{
			{ID: "start", Type: process.NodeStart, Name: "Start", Actor: "Ops"},
			{ID: "triage", Type: process.NodeTask, Name: "Triage", Actor: "Ops"},
			{ID: "resolve", Type: process.NodeTask, Name: "Resolve", Actor: "Ops"},
			{ID: "end", Type: process.NodeEnd, Name: "End", Actor: "Ops"},
		},
		Edges: []process.Edge{
			{From: "start", To: "triage"},
			{From: "triage", To: "resolve"},
			{From: "resolve", To: "end"},
		},
	}

	d, res, err := layout.Layout(p, layout.DefaultConfig())
	if err != nil {
		panic(err)
	}

	fmt.Printf("%d elements in %d ranks\n", len(d.Elements), res.Ranks)
	for _, e := range d.Elements {
		fmt.Printf("%s (%.0f, %.0f)\n", e.ID, e.X, e.Y)
	}
	// Output:
	// 4 elements in 4 ranks
	// elem_1 (250, 175)
	// elem_2 (450, 160)
	// elem_3 (760, 160)
	// elem_4 (1070, 175)
}
