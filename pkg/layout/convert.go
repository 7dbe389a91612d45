package layout

import (
	"github.com/laneflow/laneflow/pkg/diagram"
	"github.com/laneflow/laneflow/pkg/process"
)

// convertNodes turns every process node into a visual element, in
// declaration order. Positions stay zero; the positioner fills them
// in later. The returned map translates process node ids to visual
// ids for connector construction.
func convertNodes(p *process.Process, lc *layoutContext) ([]diagram.Element, map[string]string) {
	elements := make([]diagram.Element, 0, len(p.Nodes))
	ids := make(map[string]string, len(p.Nodes))

	for _, n := range p.Nodes {
		a := diagram.AppearanceFor(n)
		e := diagram.Element{
			ID:         lc.nextID("elem"),
			NodeID:     n.ID,
			Shape:      a.Shape,
			Text:       a.Text,
			Label:      a.Label,
			LabelBelow: a.LabelBelow,
			Icon:       a.Icon,
			Width:      a.Width,
			Height:     a.Height,
			Style:      a.Style,
			Actor:      n.Actor,
		}
		ids[n.ID] = e.ID
		elements = append(elements, e)
	}

	return elements, ids
}

// newConnector builds a connector with the standard arrow styling.
func newConnector(lc *layoutContext, flowID, from, to, label string) diagram.Connector {
	return diagram.Connector{
		ID:       lc.nextID("conn"),
		FlowID:   flowID,
		From:     from,
		To:       to,
		Label:    label,
		Color:    diagram.ConnectorColor,
		Width:    diagram.ConnectorWidth,
		ArrowEnd: true,
	}
}
