package layout

import (
	"fmt"

	"github.com/laneflow/laneflow/pkg/diagram"
	"github.com/laneflow/laneflow/pkg/process"
)

// Lane names used when the process declares no actors, and for the
// shared band that collects elements without one.
const (
	FallbackActor = "Process"
	SharedActor   = "Events"
)

// assignLanes builds one swimlane per declared actor, in declaration
// order, each directly below the previous one with no gap. Elements
// join the lane whose actor matches theirs, in conversion order. A
// shared lane is appended for elements without an actor (events,
// annotations, link markers whose endpoints had none); it only exists
// when such elements occur.
//
// The returned map gives each assigned element's lane index. Elements
// naming an undeclared actor match no lane and stay out of the map;
// the positioner parks them at the top margin. Upstream validation
// reports that case, so the engine does not fail on it.
func assignLanes(p *process.Process, elements []diagram.Element, cfg Config) ([]diagram.Lane, map[string]int) {
	actors := p.Actors
	if len(actors) == 0 {
		actors = []string{FallbackActor}
	}

	width := cfg.BaseWidth - marginLeft - marginRight
	laneOf := make(map[string]int, len(elements))
	lanes := make([]diagram.Lane, 0, len(actors)+1)

	y := marginTop
	for i, actor := range actors {
		lane := diagram.Lane{
			ID:         fmt.Sprintf("swimlane_%d", i),
			Actor:      actor,
			X:          marginLeft,
			Y:          y,
			Width:      width,
			Height:     cfg.LaneHeight,
			Fill:       diagram.LaneFill,
			Border:     diagram.LaneBorder,
			TextColor:  diagram.LaneTextColor,
			LabelWidth: diagram.LaneLabelWidth,
		}
		for _, e := range elements {
			if e.Actor == actor {
				lane.Elements = append(lane.Elements, e.ID)
				laneOf[e.ID] = i
			}
		}
		lanes = append(lanes, lane)
		y += cfg.LaneHeight
	}

	var unassigned []string
	for _, e := range elements {
		if e.Actor == "" {
			unassigned = append(unassigned, e.ID)
			laneOf[e.ID] = len(lanes)
		}
	}
	if len(unassigned) > 0 {
		lanes = append(lanes, diagram.Lane{
			ID:         "swimlane_shared",
			Actor:      SharedActor,
			X:          marginLeft,
			Y:          y,
			Width:      width,
			Height:     cfg.LaneHeight,
			Fill:       diagram.LaneFill,
			Border:     diagram.LaneBorder,
			TextColor:  diagram.LaneTextColor,
			Elements:   unassigned,
			LabelWidth: diagram.LaneLabelWidth,
		})
	}

	return lanes, laneOf
}
