package layout

import (
	"github.com/laneflow/laneflow/pkg/diagram"
	"github.com/laneflow/laneflow/pkg/process"
)

// Result reports what happened during one layout run. It is useful for
// logging and for surfacing the two conditions the engine tolerates
// but does not hide: edges it had to skip and nodes a surviving cycle
// kept out of the traversal.
type Result struct {
	// BackwardEdges is the number of edges rewritten into link pairs.
	// Zero means the declaration order was already forward-only.
	BackwardEdges int

	// Skipped lists edges referencing node ids absent from the node
	// list. They are left out of the diagram entirely; callers should
	// log them as warnings.
	Skipped []process.Edge

	// Ranks is the number of layout columns, including the trailing
	// orphan rank when present.
	Ranks int

	// Orphans is the number of elements the leveling traversal never
	// reached. Non-zero values indicate a true cycle that the
	// declaration-order heuristic could not break; those elements are
	// grouped in the final rank.
	Orphans int
}

// Layout positions a process as a swimlane diagram.
//
// The computation is pure: all tuning comes from cfg (zero fields fall
// back to [DefaultConfig] values), counters are created fresh per
// call, and identical input always produces identical output. An
// empty process yields a diagram with no elements and the base canvas
// size.
//
// The only failure mode is a graph with more than 26 backward edges,
// which exhausts the link label alphabet.
func Layout(p *process.Process, cfg Config) (diagram.Diagram, Result, error) {
	cfg = cfg.withDefaults()
	lc := newLayoutContext()
	var res Result

	elements, ids := convertNodes(p, lc)

	synthetic, connectors, skipped, err := breakCycles(p, ids, lc)
	if err != nil {
		return diagram.Diagram{}, res, err
	}
	elements = append(elements, synthetic...)
	res.BackwardEdges = len(synthetic) / 2
	res.Skipped = skipped

	ranks, orphans := assignRanks(elements, connectors)
	res.Ranks = len(ranks)
	res.Orphans = orphans

	lanes, laneOf := assignLanes(p, elements, cfg)

	place(elements, ranks, lanes, laneOf, cfg)

	d := diagram.Diagram{
		Type:        diagram.TypeProcess,
		Name:        p.Name,
		Description: p.Description,
		Elements:    elements,
		Connectors:  connectors,
		Lanes:       lanes,
	}
	sizeCanvas(&d, cfg)

	return d, res, nil
}
