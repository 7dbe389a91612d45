package layout

import (
	"fmt"

	"github.com/laneflow/laneflow/pkg/diagram"
	"github.com/laneflow/laneflow/pkg/hierarchy"
)

// SIPOC grid geometry.
const (
	sipocColumnWidth   = 200.0
	sipocColumnSpacing = 30.0
	sipocRowHeight     = 50.0
	sipocRowSpacing    = 10.0
	sipocHeaderHeight  = 60.0
	sipocTitleHeight   = 50.0
	sipocStartX        = 100.0
	sipocStartY        = 100.0
)

// sipocColumn pairs a column key with its header caption and card
// colors. The five columns are fixed; only their content varies.
type sipocColumn struct {
	key    string
	header string
	fill   string
	border string
}

var sipocColumns = [5]sipocColumn{
	{"suppliers", "SUPPLIERS", "#E3F2FD", "#1976D2"},
	{"inputs", "INPUTS", "#E8F5E9", "#388E3C"},
	{"process", "PROCESS", "#FFF9C4", "#FBC02D"},
	{"outputs", "OUTPUTS", "#FCE4EC", "#C2185B"},
	{"customers", "CUSTOMERS", "#F3E5F5", "#7B1FA2"},
}

// Dark chrome for the title and header band.
const (
	sipocTitleColor  = "#263238"
	sipocHeaderColor = "#37474F"
	sipocFlowColor   = "#757575"
	sipocChromeText  = "#FFFFFF"
	sipocCellText    = "#1a1a1a"
)

// LayoutSIPOC arranges a SIPOC as a five-column grid: a full-width
// title, one dark header per column, and a card per entry stacked
// below its header. Empty cells are skipped rather than drawn blank,
// and arrows between adjacent headers read out the S→I→P→O→C flow.
//
// The computation is pure and infallible; an empty SIPOC still
// produces the title and header chrome.
func LayoutSIPOC(s *hierarchy.SIPOC, title string) diagram.Diagram {
	if title == "" {
		title = "SIPOC"
	}

	columns := [5][]string{
		hierarchy.ItemNames(s.Suppliers),
		hierarchy.ItemNames(s.Inputs),
		s.Steps,
		hierarchy.ItemNames(s.Outputs),
		hierarchy.ItemNames(s.Customers),
	}
	maxRows := 0
	for _, col := range columns {
		maxRows = max(maxRows, len(col))
	}
	if maxRows == 0 {
		maxRows = 1
	}

	totalWidth := 5*(sipocColumnWidth+sipocColumnSpacing) - sipocColumnSpacing

	var elements []diagram.Element
	var connectors []diagram.Connector

	y := sipocStartY
	elements = append(elements, diagram.Element{
		ID:     "sipoc_title",
		Shape:  diagram.ShapeRectangle,
		Text:   title,
		X:      sipocStartX,
		Y:      y,
		Width:  totalWidth,
		Height: sipocTitleHeight,
		Style: diagram.Style{
			Fill:        sipocTitleColor,
			Border:      sipocTitleColor,
			TextColor:   sipocChromeText,
			BorderWidth: 2,
			FontSize:    18,
			Bold:        true,
		},
	})
	y += sipocTitleHeight + 20

	for i, col := range sipocColumns {
		elements = append(elements, diagram.Element{
			ID:     "sipoc_header_" + col.key,
			Shape:  diagram.ShapeRectangle,
			Text:   col.header,
			X:      sipocStartX + float64(i)*(sipocColumnWidth+sipocColumnSpacing),
			Y:      y,
			Width:  sipocColumnWidth,
			Height: sipocHeaderHeight,
			Style: diagram.Style{
				Fill:        sipocHeaderColor,
				Border:      sipocHeaderColor,
				TextColor:   sipocChromeText,
				BorderWidth: 2,
				FontSize:    14,
				Bold:        true,
			},
		})
	}
	y += sipocHeaderHeight + 10

	for row := 0; row < maxRows; row++ {
		cellY := y + float64(row)*(sipocRowHeight+sipocRowSpacing)
		for i, col := range sipocColumns {
			if row >= len(columns[i]) || columns[i][row] == "" {
				continue
			}
			elements = append(elements, diagram.Element{
				ID:     fmt.Sprintf("sipoc_%s_%d", col.key, row),
				Shape:  diagram.ShapeRectangle,
				Text:   columns[i][row],
				X:      sipocStartX + float64(i)*(sipocColumnWidth+sipocColumnSpacing),
				Y:      cellY,
				Width:  sipocColumnWidth,
				Height: sipocRowHeight,
				Style: diagram.Style{
					Fill:        col.fill,
					Border:      col.border,
					TextColor:   sipocCellText,
					BorderWidth: 1,
					FontSize:    11,
				},
			})
		}
	}

	for i := 0; i < len(sipocColumns)-1; i++ {
		from, to := sipocColumns[i].key, sipocColumns[i+1].key
		connectors = append(connectors, diagram.Connector{
			ID:       fmt.Sprintf("flow_%s_%s", from, to),
			From:     "sipoc_header_" + from,
			To:       "sipoc_header_" + to,
			Color:    sipocFlowColor,
			Width:    2,
			ArrowEnd: true,
		})
	}

	return diagram.Diagram{
		Type:       diagram.TypeSIPOC,
		Name:       title,
		Elements:   elements,
		Connectors: connectors,
		Width:      totalWidth + sipocStartX*2,
		Height:     sipocTitleHeight + sipocHeaderHeight + float64(maxRows)*(sipocRowHeight+sipocRowSpacing) + sipocStartY + 50,
	}
}
