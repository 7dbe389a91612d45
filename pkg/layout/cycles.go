package layout

import (
	"github.com/laneflow/laneflow/pkg/diagram"
	"github.com/laneflow/laneflow/pkg/process"
)

// breakCycles rewrites backward edges into forward edges through
// synthetic link pairs, so the rank assigner only ever sees edges that
// point rightward.
//
// # Algorithm
//
// An edge is backward when its target is declared earlier than its
// source in the process node list. This is a declaration-order
// heuristic, not cycle detection: an acyclic graph declared out of
// causal order gets links it does not strictly need, and a true cycle
// among nodes in declaration order survives untouched (the rank
// assigner's fallback root keeps that case from looping forever).
//
// Each backward edge, in input order, is replaced by:
//
//   - a throw marker in the source node's lane and a catch marker in
//     the target node's lane, both labeled with the next letter A-Z
//   - a connector from the source to the throw marker carrying the
//     original condition, and an unlabeled connector from the catch
//     marker to the target
//
// The original edge is dropped. Forward edges are copied through
// unchanged, before any synthetic connectors, so visual ids stay in
// conversion order.
//
// # Failure
//
// A graph with more than 26 backward edges exhausts the label alphabet
// and returns [ErrLinkLabelsExhausted].
func breakCycles(p *process.Process, ids map[string]string, lc *layoutContext) (synthetic []diagram.Element, connectors []diagram.Connector, skipped []process.Edge, err error) {
	forward, backward, skipped := classifyEdges(p)

	connectors = make([]diagram.Connector, 0, len(forward)+2*len(backward))
	for _, e := range forward {
		connectors = append(connectors, newConnector(lc, e.From+"->"+e.To, ids[e.From], ids[e.To], e.Condition))
	}

	for _, e := range backward {
		label, err := lc.nextLinkLabel()
		if err != nil {
			return nil, nil, skipped, err
		}

		src, _ := p.Node(e.From)
		dst, _ := p.Node(e.To)

		throw := linkElement(lc, process.NodeLinkThrow, label, src.Actor)
		catch := linkElement(lc, process.NodeLinkCatch, label, dst.Actor)
		synthetic = append(synthetic, throw, catch)

		connectors = append(connectors,
			newConnector(lc, e.From+"->link_throw_"+label, ids[e.From], throw.ID, e.Condition),
			newConnector(lc, "link_catch_"+label+"->"+e.To, catch.ID, ids[e.To], ""),
		)
	}

	return synthetic, connectors, skipped, nil
}

// classifyEdges splits the edge list into forward and backward sets by
// declaration order. Edges referencing a node id absent from the node
// list are returned separately so the caller can log them; they take
// no part in leveling or positioning.
func classifyEdges(p *process.Process) (forward, backward, skipped []process.Edge) {
	order := make(map[string]int, len(p.Nodes))
	for i, n := range p.Nodes {
		order[n.ID] = i
	}

	for _, e := range p.Edges {
		from, okFrom := order[e.From]
		to, okTo := order[e.To]
		if !okFrom || !okTo {
			skipped = append(skipped, e)
			continue
		}
		if to < from {
			backward = append(backward, e)
		} else {
			forward = append(forward, e)
		}
	}
	return forward, backward, skipped
}

// linkElement builds one synthetic link marker. Its node id encodes
// the link kind and letter ("link_throw_event_A") since no process
// node backs it.
func linkElement(lc *layoutContext, kind process.NodeType, label, actor string) diagram.Element {
	a := diagram.AppearanceFor(process.Node{Type: kind, LinkLabel: label})
	return diagram.Element{
		ID:         lc.nextID("elem"),
		NodeID:     string(kind) + "_event_" + label,
		Shape:      a.Shape,
		Text:       a.Text,
		Label:      a.Label,
		LabelBelow: a.LabelBelow,
		Width:      a.Width,
		Height:     a.Height,
		Style:      a.Style,
		Actor:      actor,
		LinkLabel:  label,
	}
}
