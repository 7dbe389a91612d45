package layout

import (
	"github.com/laneflow/laneflow/pkg/diagram"
)

// place assigns pixel coordinates to every element, walking ranks left
// to right. It is the only stage that writes positions, and it writes
// each exactly once.
//
// # Algorithm
//
// Each rank becomes one column whose width is the widest element in
// it. Within a rank, elements are grouped by lane:
//
//   - a lone element centers vertically on its lane and horizontally
//     in the column
//   - a group stacks top to bottom with StackSpacing between shapes,
//     the whole stack centered on the lane; shapes with an external
//     label below reserve LabelReserve extra height both in the stack
//     total and in the step to the next shape, so labels never collide
//
// Elements without a lane sit at the top margin. After a rank is
// placed the cursor advances by the column width plus SpacingX.
//
// Iteration follows conversion order throughout, so identical input
// yields identical coordinates.
func place(elements []diagram.Element, ranks map[int][]string, lanes []diagram.Lane, laneOf map[string]int, cfg Config) {
	byID := make(map[string]*diagram.Element, len(elements))
	for i := range elements {
		byID[elements[i].ID] = &elements[i]
	}

	currentX := startX

	for r := 0; r < len(ranks); r++ {
		ids := ranks[r]

		columnWidth := 0.0
		for _, id := range ids {
			if e := byID[id]; e != nil && e.Width > columnWidth {
				columnWidth = e.Width
			}
		}

		// Group by lane, keeping the order groups first appear in the rank.
		groups := make(map[int][]*diagram.Element)
		var laneOrder []int
		for _, id := range ids {
			e := byID[id]
			if e == nil {
				continue
			}
			lane, ok := laneOf[id]
			if !ok {
				lane = -1
			}
			if _, seen := groups[lane]; !seen {
				laneOrder = append(laneOrder, lane)
			}
			groups[lane] = append(groups[lane], e)
		}

		for _, lane := range laneOrder {
			group := groups[lane]
			hasLane := lane >= 0 && lane < len(lanes)

			if len(group) == 1 {
				e := group[0]
				e.X = currentX + (columnWidth-e.Width)/2
				if hasLane {
					e.Y = lanes[lane].CenterY() - e.Height/2
				} else {
					e.Y = marginTop
				}
				continue
			}

			totalHeight := 0.0
			for _, e := range group {
				totalHeight += stackHeight(e, cfg)
			}
			totalHeight += cfg.StackSpacing * float64(len(group)-1)

			y := marginTop
			if hasLane {
				y = lanes[lane].CenterY() - totalHeight/2
			}
			for _, e := range group {
				e.X = currentX + (columnWidth-e.Width)/2
				e.Y = y
				y += stackHeight(e, cfg) + cfg.StackSpacing
			}
		}

		currentX += columnWidth + cfg.SpacingX
	}
}

// stackHeight is the vertical room an element occupies inside a stack:
// its shape plus the reserved label strip when the name renders below.
func stackHeight(e *diagram.Element, cfg Config) float64 {
	if e.LabelBelow {
		return e.Height + cfg.LabelReserve
	}
	return e.Height
}
