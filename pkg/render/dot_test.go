package render

import (
	"strings"
	"testing"

	"github.com/laneflow/laneflow/pkg/process"
)

func dotProcess() *process.Process {
	return &process.Process{
		Name:   "Order Intake",
		Actors: []string{"Sales", "Warehouse"},
		Nodes: []process.Node{
			{ID: "start", Type: process.NodeStart, Name: "Start", Actor: "Sales"},
			{ID: "approve", Type: process.NodeTask, Name: "Approve order", Actor: "Sales"},
			{ID: "stock", Type: process.NodeGateway, Name: "In stock?", Actor: "Warehouse"},
			{ID: "ship", Type: process.NodeTask, Name: "Ship order", Actor: "Warehouse"},
			{ID: "end", Type: process.NodeEnd, Name: "End", Actor: "Warehouse"},
			{ID: "note", Type: process.NodeAnnotation, Name: "Check the SLA", AttachedTo: "approve"},
		},
		Edges: []process.Edge{
			{From: "start", To: "approve"},
			{From: "approve", To: "stock"},
			{From: "stock", To: "ship", Condition: "yes"},
			{From: "stock", To: "end", Condition: "no"},
			{From: "ship", To: "end"},
		},
	}
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(dotProcess(), DOTOptions{})

	if !strings.HasPrefix(dot, "digraph process {") {
		t.Errorf("missing digraph header: %.40s", dot)
	}
	for _, want := range []string{
		`"start" [label="Start", shape=circle, fillcolor="#C8E6C9"];`,
		`"approve" [label="Approve order"];`,
		`"stock" [label="In stock?", shape=diamond, fillcolor="#FFF9C4"];`,
		`"end" [label="End", shape=circle, peripheries=2, fillcolor="#FFCDD2"];`,
		`"start" -> "approve";`,
		`"stock" -> "ship" [label="yes"];`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("output missing %q", want)
		}
	}
	if strings.Contains(dot, "rankdir") {
		t.Error("rankdir set without Horizontal")
	}
}

func TestToDOT_Horizontal(t *testing.T) {
	dot := ToDOT(dotProcess(), DOTOptions{Horizontal: true})
	if !strings.Contains(dot, "rankdir=LR;") {
		t.Error("rankdir=LR missing")
	}
}

func TestToDOT_Clustered(t *testing.T) {
	dot := ToDOT(dotProcess(), DOTOptions{Clustered: true})

	if !strings.Contains(dot, "subgraph cluster_0") || !strings.Contains(dot, `label="Sales";`) {
		t.Error("actor cluster missing")
	}
	if !strings.Contains(dot, "subgraph cluster_1") || !strings.Contains(dot, `label="Warehouse";`) {
		t.Error("second actor cluster missing")
	}
	// The annotation has no actor and stays outside the clusters.
	if !strings.Contains(dot, "  \"note\" [") {
		t.Error("actorless node not at top level")
	}
}

func TestToDOT_Annotation(t *testing.T) {
	dot := ToDOT(dotProcess(), DOTOptions{})

	if !strings.Contains(dot, "shape=note") {
		t.Error("annotation shape missing")
	}
	if !strings.Contains(dot, `"note" -> "approve" [style=dashed, arrowhead=none];`) {
		t.Error("annotation attachment edge missing")
	}
}

func TestToDOT_UnnamedNodeUsesID(t *testing.T) {
	p := &process.Process{
		Nodes: []process.Node{{ID: "t1", Type: process.NodeTask}},
	}
	dot := ToDOT(p, DOTOptions{})
	if !strings.Contains(dot, `"t1" [label="t1"];`) {
		t.Errorf("fallback label missing:\n%s", dot)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<?xml version="1.0"?>` + "\n" +
		`<svg width="215pt" height="319pt" viewBox="0.00 0.00 215.00 319.00" xmlns="http://www.w3.org/2000/svg">` +
		`<g></g></svg>`)

	out := string(normalizeViewBox(in))
	if !strings.Contains(out, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 215.00 319.00" width="215" height="319">`) {
		t.Errorf("svg tag not normalized: %s", out)
	}
	if strings.Contains(out, "215pt") {
		t.Error("point-based sizing survived")
	}
}

func TestNormalizeViewBox_NoViewBox(t *testing.T) {
	in := []byte(`<svg width="10" height="10"></svg>`)
	if out := normalizeViewBox(in); string(out) != string(in) {
		t.Errorf("output changed without a viewBox: %s", out)
	}
}
