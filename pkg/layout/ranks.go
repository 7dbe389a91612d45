package layout

import (
	"github.com/laneflow/laneflow/pkg/diagram"
)

// assignRanks computes the layout column for every element via
// breadth-first leveling and returns rank → element ids, plus the
// number of elements the traversal never reached.
//
// # Algorithm
//
// Roots are the elements with in-degree zero, in conversion order;
// isolated elements (annotations, stray events) count as roots and
// land in rank 0. If every element has an incoming connector — a
// cycle the declaration-order heuristic could not break — the first
// element serves as a lone fallback root so the traversal terminates.
//
// A breadth-first pass from all roots assigns each element the depth
// at which it is first visited. First visit wins: an element reachable
// by several paths keeps its earliest rank and is never pushed deeper
// by a longer path. Elements still unvisited afterwards (reachable
// only through a surviving cycle) are appended together as one
// trailing rank, in conversion order.
//
// Rank keys are contiguous from 0, so callers may iterate with
// `for r := 0; r < len(ranks); r++`.
func assignRanks(elements []diagram.Element, connectors []diagram.Connector) (ranks map[int][]string, orphans int) {
	ranks = make(map[int][]string)
	if len(elements) == 0 {
		return ranks, 0
	}

	present := make(map[string]bool, len(elements))
	for _, e := range elements {
		present[e.ID] = true
	}

	adjacency := make(map[string][]string)
	inDegree := make(map[string]int, len(elements))
	for _, e := range elements {
		inDegree[e.ID] = 0
	}
	for _, c := range connectors {
		if !present[c.From] || !present[c.To] {
			continue
		}
		adjacency[c.From] = append(adjacency[c.From], c.To)
		inDegree[c.To]++
	}

	var roots []string
	for _, e := range elements {
		if inDegree[e.ID] == 0 {
			roots = append(roots, e.ID)
		}
	}
	if len(roots) == 0 {
		roots = []string{elements[0].ID}
	}

	type item struct {
		id    string
		depth int
	}
	queue := make([]item, 0, len(elements))
	for _, id := range roots {
		queue = append(queue, item{id, 0})
	}

	visited := make(map[string]bool, len(elements))
	maxDepth := 0

	for len(queue) > 0 {
		it := queue[0]
		queue = queue[1:]

		if visited[it.id] {
			continue
		}
		visited[it.id] = true
		ranks[it.depth] = append(ranks[it.depth], it.id)
		if it.depth > maxDepth {
			maxDepth = it.depth
		}

		for _, next := range adjacency[it.id] {
			if !visited[next] {
				queue = append(queue, item{next, it.depth + 1})
			}
		}
	}

	var unreached []string
	for _, e := range elements {
		if !visited[e.ID] {
			unreached = append(unreached, e.ID)
		}
	}
	if len(unreached) > 0 {
		ranks[maxDepth+1] = unreached
	}

	return ranks, len(unreached)
}
