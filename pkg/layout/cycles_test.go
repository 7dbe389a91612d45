package layout

import (
	"testing"

	"github.com/laneflow/laneflow/pkg/process"
)

func TestClassifyEdges(t *testing.T) {
	p := &process.Process{
		Nodes: []process.Node{
			node("a", process.NodeTask, "A", ""),
			node("b", process.NodeTask, "B", ""),
			node("c", process.NodeTask, "C", ""),
		},
		Edges: []process.Edge{
			edge("a", "b"),
			edge("b", "c"),
			edge("c", "a"),
			edge("b", "b"),
			edge("a", "ghost"),
			edge("ghost", "c"),
		},
	}

	forward, backward, skipped := classifyEdges(p)

	if len(forward) != 3 {
		t.Errorf("len(forward) = %d, want 3", len(forward))
	}
	if len(backward) != 1 || backward[0].From != "c" || backward[0].To != "a" {
		t.Errorf("backward = %v, want single c->a", backward)
	}
	if len(skipped) != 2 {
		t.Errorf("len(skipped) = %d, want 2", len(skipped))
	}
}

func TestClassifyEdgesSelfLoopIsForward(t *testing.T) {
	p := &process.Process{
		Nodes: []process.Node{node("a", process.NodeTask, "A", "")},
		Edges: []process.Edge{edge("a", "a")},
	}

	forward, backward, _ := classifyEdges(p)
	if len(forward) != 1 || len(backward) != 0 {
		t.Errorf("forward = %d, backward = %d, want 1, 0", len(forward), len(backward))
	}
}

func TestBreakCyclesIDSequence(t *testing.T) {
	p := &process.Process{
		Nodes: []process.Node{
			node("a", process.NodeTask, "A", "Ops"),
			node("b", process.NodeTask, "B", "QA"),
		},
		Edges: []process.Edge{
			edge("a", "b"),
			{From: "b", To: "a", Condition: "again"},
		},
	}

	lc := newLayoutContext()
	_, ids := convertNodes(p, lc)

	synthetic, connectors, _, err := breakCycles(p, ids, lc)
	if err != nil {
		t.Fatalf("breakCycles() error = %v", err)
	}

	// Elements and connectors share one id sequence: two nodes, one
	// forward connector, then throw, catch, and the link pair.
	if got := connectors[0].ID; got != "conn_3" {
		t.Errorf("forward connector id = %s, want conn_3", got)
	}
	if synthetic[0].ID != "elem_4" || synthetic[1].ID != "elem_5" {
		t.Errorf("synthetic ids = %s, %s, want elem_4, elem_5", synthetic[0].ID, synthetic[1].ID)
	}
	if connectors[1].ID != "conn_6" || connectors[2].ID != "conn_7" {
		t.Errorf("link connector ids = %s, %s, want conn_6, conn_7", connectors[1].ID, connectors[2].ID)
	}

	// Markers inherit the lanes of the edge's endpoints.
	if synthetic[0].Actor != "QA" {
		t.Errorf("throw actor = %q, want QA (source lane)", synthetic[0].Actor)
	}
	if synthetic[1].Actor != "Ops" {
		t.Errorf("catch actor = %q, want Ops (target lane)", synthetic[1].Actor)
	}
}

func TestBreakCyclesLabelsAdvance(t *testing.T) {
	p := &process.Process{
		Nodes: []process.Node{
			node("a", process.NodeTask, "A", ""),
			node("b", process.NodeTask, "B", ""),
			node("c", process.NodeTask, "C", ""),
		},
		Edges: []process.Edge{
			edge("b", "a"),
			edge("c", "a"),
		},
	}

	lc := newLayoutContext()
	_, ids := convertNodes(p, lc)

	synthetic, _, _, err := breakCycles(p, ids, lc)
	if err != nil {
		t.Fatalf("breakCycles() error = %v", err)
	}

	if len(synthetic) != 4 {
		t.Fatalf("len(synthetic) = %d, want 4", len(synthetic))
	}
	want := []string{"A", "A", "B", "B"}
	for i, w := range want {
		if synthetic[i].LinkLabel != w {
			t.Errorf("synthetic[%d].LinkLabel = %q, want %q", i, synthetic[i].LinkLabel, w)
		}
	}
}
