package layout

import (
	"reflect"
	"testing"

	"github.com/laneflow/laneflow/pkg/diagram"
	"github.com/laneflow/laneflow/pkg/process"
)

func TestAssignLanesDeclarationOrder(t *testing.T) {
	p := &process.Process{Actors: []string{"Zeta", "Alpha", "Mid"}}
	lanes, _ := assignLanes(p, nil, DefaultConfig())

	var actors []string
	for _, l := range lanes {
		actors = append(actors, l.Actor)
	}
	if !reflect.DeepEqual(actors, []string{"Zeta", "Alpha", "Mid"}) {
		t.Errorf("lane order = %v, want declaration order", actors)
	}
}

func TestAssignLanesGeometry(t *testing.T) {
	p := &process.Process{Actors: []string{"A", "B"}}
	lanes, _ := assignLanes(p, nil, DefaultConfig())

	if len(lanes) != 2 {
		t.Fatalf("len(lanes) = %d, want 2", len(lanes))
	}

	first, second := lanes[0], lanes[1]
	if first.X != 50 || first.Y != 100 {
		t.Errorf("first lane at (%v, %v), want (50, 100)", first.X, first.Y)
	}
	if first.Width != 3900 || first.Height != 200 {
		t.Errorf("first lane size = %vx%v, want 3900x200", first.Width, first.Height)
	}
	// Contiguous bands: no gap.
	if second.Y != first.Y+first.Height {
		t.Errorf("second lane y = %v, want %v", second.Y, first.Y+first.Height)
	}
	if first.ID != "swimlane_0" || second.ID != "swimlane_1" {
		t.Errorf("lane ids = %s, %s", first.ID, second.ID)
	}
}

func TestAssignLanesMembership(t *testing.T) {
	p := &process.Process{Actors: []string{"Ops", "QA"}}
	elements := []diagram.Element{
		{ID: "elem_1", Actor: "QA"},
		{ID: "elem_2", Actor: "Ops"},
		{ID: "elem_3", Actor: "Ops"},
		{ID: "elem_4"},
	}

	lanes, laneOf := assignLanes(p, elements, DefaultConfig())

	if len(lanes) != 3 {
		t.Fatalf("len(lanes) = %d, want 2 actors + shared", len(lanes))
	}

	if !reflect.DeepEqual(lanes[0].Elements, []string{"elem_2", "elem_3"}) {
		t.Errorf("Ops lane = %v, want [elem_2 elem_3] in conversion order", lanes[0].Elements)
	}
	if !reflect.DeepEqual(lanes[1].Elements, []string{"elem_1"}) {
		t.Errorf("QA lane = %v, want [elem_1]", lanes[1].Elements)
	}

	shared := lanes[2]
	if shared.ID != "swimlane_shared" || shared.Actor != SharedActor {
		t.Errorf("shared lane = %s/%s", shared.ID, shared.Actor)
	}
	if !reflect.DeepEqual(shared.Elements, []string{"elem_4"}) {
		t.Errorf("shared lane members = %v, want [elem_4]", shared.Elements)
	}
	if shared.Y != 100+2*200 {
		t.Errorf("shared lane y = %v, want below actor lanes", shared.Y)
	}

	want := map[string]int{"elem_1": 1, "elem_2": 0, "elem_3": 0, "elem_4": 2}
	if !reflect.DeepEqual(laneOf, want) {
		t.Errorf("laneOf = %v, want %v", laneOf, want)
	}
}

func TestAssignLanesNoSharedWithoutActorless(t *testing.T) {
	p := &process.Process{Actors: []string{"Ops"}}
	elements := []diagram.Element{{ID: "elem_1", Actor: "Ops"}}

	lanes, _ := assignLanes(p, elements, DefaultConfig())
	if len(lanes) != 1 {
		t.Errorf("len(lanes) = %d, want 1 (no shared lane needed)", len(lanes))
	}
}

func TestAssignLanesFallbackActor(t *testing.T) {
	p := &process.Process{}
	elements := []diagram.Element{{ID: "elem_1"}}

	lanes, laneOf := assignLanes(p, elements, DefaultConfig())

	if len(lanes) != 2 {
		t.Fatalf("len(lanes) = %d, want fallback + shared", len(lanes))
	}
	if lanes[0].Actor != FallbackActor {
		t.Errorf("fallback lane actor = %q, want %q", lanes[0].Actor, FallbackActor)
	}
	// The actor-less element lands in the shared lane, not the
	// fallback one.
	if laneOf["elem_1"] != 1 {
		t.Errorf("laneOf[elem_1] = %d, want shared lane", laneOf["elem_1"])
	}
}

func TestAssignLanesUndeclaredActorUnassigned(t *testing.T) {
	p := &process.Process{Actors: []string{"Ops"}}
	elements := []diagram.Element{{ID: "elem_1", Actor: "Nobody"}}

	lanes, laneOf := assignLanes(p, elements, DefaultConfig())

	if len(lanes) != 1 {
		t.Errorf("len(lanes) = %d, want 1", len(lanes))
	}
	if _, ok := laneOf["elem_1"]; ok {
		t.Error("element with undeclared actor should stay unassigned")
	}
}
