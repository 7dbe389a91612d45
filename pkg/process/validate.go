package process

import "fmt"

// Result collects validation findings, split by severity.
// Errors indicate the process cannot be laid out meaningfully;
// warnings indicate likely authoring mistakes that layout tolerates.
type Result struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

// Valid reports whether the process has no errors. Warnings do not
// affect validity.
func (r *Result) Valid() bool { return len(r.Errors) == 0 }

func (r *Result) errorf(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

func (r *Result) warnf(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// Validate checks a process for structural problems.
//
// Errors:
//   - no start event
//   - no end event
//   - duplicate node IDs
//   - edges referencing unknown nodes
//   - gateways with fewer than two outgoing edges
//
// Warnings:
//   - more than one start event
//   - gateway branches without a condition label
//   - nodes unreachable from any start event (annotations excluded)
//   - nodes with no edges at all (events and annotations excluded)
//   - actors used on nodes but not declared, and declared but never used
//   - annotations attached to unknown nodes
func Validate(p *Process) Result {
	var r Result

	ids := make(map[string]bool, len(p.Nodes))
	for _, n := range p.Nodes {
		if ids[n.ID] {
			r.errorf("duplicate node id %q", n.ID)
		}
		ids[n.ID] = true
	}

	starts := p.StartNodes()
	if len(starts) == 0 {
		r.errorf("process has no start event")
	} else if len(starts) > 1 {
		r.warnf("process has %d start events", len(starts))
	}
	if len(p.EndNodes()) == 0 {
		r.errorf("process has no end event")
	}

	for _, e := range p.Edges {
		if !ids[e.From] {
			r.errorf("edge references unknown node %q", e.From)
		}
		if !ids[e.To] {
			r.errorf("edge references unknown node %q", e.To)
		}
	}

	for i := range p.Nodes {
		n := &p.Nodes[i]
		if !n.IsGateway() {
			continue
		}
		out := p.Outgoing(n.ID)
		if len(out) < 2 {
			r.errorf("gateway %q has %d outgoing edges, need at least 2", n.ID, len(out))
			continue
		}
		for _, e := range out {
			if e.Condition == "" {
				r.warnf("gateway %q branch to %q has no condition label", n.ID, e.To)
			}
		}
	}

	checkReachability(p, ids, &r)
	checkOrphans(p, &r)
	checkActors(p, &r)

	for i := range p.Nodes {
		n := &p.Nodes[i]
		if n.IsAnnotation() && n.AttachedTo != "" && !ids[n.AttachedTo] {
			r.warnf("annotation %q attached to unknown node %q", n.ID, n.AttachedTo)
		}
	}

	return r
}

// checkReachability walks edges breadth-first from all start events and
// warns about nodes the flow can never reach. Annotations are exempt
// since they sit outside the flow.
func checkReachability(p *Process, ids map[string]bool, r *Result) {
	if len(p.StartNodes()) == 0 {
		return
	}

	visited := make(map[string]bool, len(p.Nodes))
	var queue []string
	for _, n := range p.StartNodes() {
		visited[n.ID] = true
		queue = append(queue, n.ID)
	}

	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		for _, e := range p.Outgoing(id) {
			if !ids[e.To] || visited[e.To] {
				continue
			}
			visited[e.To] = true
			queue = append(queue, e.To)
		}
	}

	for i := range p.Nodes {
		n := &p.Nodes[i]
		if !visited[n.ID] && !n.IsAnnotation() {
			r.warnf("node %q is unreachable from any start event", n.ID)
		}
	}
}

// checkOrphans warns about nodes no edge touches. Events commonly stand
// alone (e.g. timers) and annotations never connect, so both are exempt.
func checkOrphans(p *Process, r *Result) {
	connected := make(map[string]bool, len(p.Nodes))
	for _, e := range p.Edges {
		connected[e.From] = true
		connected[e.To] = true
	}

	for i := range p.Nodes {
		n := &p.Nodes[i]
		if connected[n.ID] || n.IsEvent() || n.IsAnnotation() {
			continue
		}
		r.warnf("node %q has no incoming or outgoing edges", n.ID)
	}
}

func checkActors(p *Process, r *Result) {
	declared := make(map[string]bool, len(p.Actors))
	for _, a := range p.Actors {
		declared[a] = true
	}

	used := make(map[string]bool)
	for i := range p.Nodes {
		n := &p.Nodes[i]
		if n.Actor == "" {
			continue
		}
		if !declared[n.Actor] && !used[n.Actor] {
			r.warnf("actor %q is used by node %q but not declared", n.Actor, n.ID)
		}
		used[n.Actor] = true
	}

	for _, a := range p.Actors {
		if !used[a] {
			r.warnf("actor %q is declared but never used", a)
		}
	}
}
