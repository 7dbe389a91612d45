package layout

import (
	"github.com/laneflow/laneflow/pkg/diagram"
	"github.com/laneflow/laneflow/pkg/hierarchy"
)

// Value chain geometry.
const (
	vcFramePadding      = 30.0
	vcFrameHeaderHeight = 50.0
	vcMacroWidth        = 180.0
	vcMacroHeight       = 80.0
	vcMacroSpacingX     = 40.0
	vcMacroSpacingY     = 30.0
	vcStartX            = 100.0
	vcStartY            = 100.0
	vcTitleHeight       = 60.0
)

// vcBand describes one of the three Porter bands: caption, box colors,
// and the lighter frame tint behind the boxes.
type vcBand struct {
	kind      hierarchy.MacroKind
	caption   string
	fill      string
	border    string
	frameFill string
}

var vcBands = [3]vcBand{
	{hierarchy.MacroPrimary, "PRIMARY MACROPROCESSES", "#E3F2FD", "#1976D2", "#BBDEFB"},
	{hierarchy.MacroSupport, "SUPPORT MACROPROCESSES", "#E8F5E9", "#388E3C", "#C8E6C9"},
	{hierarchy.MacroManagement, "MANAGEMENT MACROPROCESSES", "#FFF3E0", "#F57C00", "#FFE0B2"},
}

const (
	vcTitleColor   = "#37474F"
	vcHeaderFill   = "#FAFAFA"
	vcHeaderBorder = "#9E9E9E"
	vcChainColor   = "#1976D2"
	vcTitleText    = "#FFFFFF"
	vcBoxText      = "#1a1a1a"
)

// LayoutValueChain arranges a value chain as three stacked band
// frames: primary on top, then support, then management. Each frame
// holds its macroprocess boxes left to right in declaration order,
// and the primary band is chained with arrows to read as the value
// stream. Macroprocess IDs missing from macros are skipped.
//
// Box element IDs are the macroprocess IDs, so publishers can link a
// box to the macroprocess's own board.
func LayoutValueChain(vc *hierarchy.ValueChain, macros map[string]hierarchy.Macroprocess) diagram.Diagram {
	bands := [3][]hierarchy.Macroprocess{
		resolveMacros(vc.Primary, macros),
		resolveMacros(vc.Support, macros),
		resolveMacros(vc.Management, macros),
	}

	maxCount := 1
	for _, band := range bands {
		maxCount = max(maxCount, len(band))
	}
	frameWidth := float64(maxCount)*(vcMacroWidth+vcMacroSpacingX) + vcFramePadding*2
	frameHeight := vcMacroHeight + vcFrameHeaderHeight + vcFramePadding*2

	var elements []diagram.Element
	var connectors []diagram.Connector

	y := vcStartY
	elements = append(elements, diagram.Element{
		ID:     "vc_title",
		Shape:  diagram.ShapeRectangle,
		Text:   "VALUE CHAIN\n" + vc.Name,
		X:      vcStartX,
		Y:      y,
		Width:  frameWidth,
		Height: vcTitleHeight,
		Style: diagram.Style{
			Fill:        vcTitleColor,
			Border:      vcTitleColor,
			TextColor:   vcTitleText,
			BorderWidth: 2,
			FontSize:    18,
			Bold:        true,
		},
	})
	y += 80

	for i, band := range vcBands {
		els, conns := vcFrame(band, bands[i], vcStartX, y, frameWidth, frameHeight)
		elements = append(elements, els...)
		connectors = append(connectors, conns...)
		y += frameHeight + vcMacroSpacingY
	}

	return diagram.Diagram{
		Type:        diagram.TypeValueChain,
		Name:        vc.Name,
		Description: vc.Description,
		Elements:    elements,
		Connectors:  connectors,
		Width:       frameWidth + vcStartX*2,
		Height:      y + 50,
	}
}

func resolveMacros(ids []string, macros map[string]hierarchy.Macroprocess) []hierarchy.Macroprocess {
	var out []hierarchy.Macroprocess
	for _, id := range ids {
		if m, ok := macros[id]; ok {
			out = append(out, m)
		}
	}
	return out
}

// vcFrame builds one band: the tinted background, the caption bar, the
// macro boxes, and (for the primary band) the chain arrows.
func vcFrame(band vcBand, macros []hierarchy.Macroprocess, x, y, width, height float64) ([]diagram.Element, []diagram.Connector) {
	frameID := "frame_" + string(band.kind)

	elements := []diagram.Element{
		{
			ID:     frameID,
			Shape:  diagram.ShapeRectangle,
			X:      x,
			Y:      y,
			Width:  width,
			Height: height,
			Style: diagram.Style{
				Fill:        band.frameFill,
				Border:      band.border,
				TextColor:   vcBoxText,
				BorderWidth: 2,
				FontSize:    12,
			},
		},
		{
			ID:     frameID + "_title",
			Shape:  diagram.ShapeRectangle,
			Text:   band.caption,
			X:      x + vcFramePadding,
			Y:      y + 10,
			Width:  width - vcFramePadding*2,
			Height: vcFrameHeaderHeight - 20,
			Style: diagram.Style{
				Fill:        vcHeaderFill,
				Border:      vcHeaderBorder,
				TextColor:   vcBoxText,
				BorderWidth: 1,
				FontSize:    14,
				Bold:        true,
			},
		},
	}

	var connectors []diagram.Connector
	macroY := y + vcFrameHeaderHeight + vcFramePadding
	prev := ""

	for i, m := range macros {
		elements = append(elements, diagram.Element{
			ID:     m.ID,
			Shape:  diagram.ShapeRectangle,
			Text:   m.Name,
			X:      x + vcFramePadding + float64(i)*(vcMacroWidth+vcMacroSpacingX),
			Y:      macroY,
			Width:  vcMacroWidth,
			Height: vcMacroHeight,
			Style: diagram.Style{
				Fill:        band.fill,
				Border:      band.border,
				TextColor:   vcBoxText,
				BorderWidth: 2,
				FontSize:    12,
			},
		})

		if band.kind == hierarchy.MacroPrimary && prev != "" {
			connectors = append(connectors, diagram.Connector{
				ID:       "conn_" + prev + "_" + m.ID,
				From:     prev,
				To:       m.ID,
				Color:    vcChainColor,
				Width:    2,
				ArrowEnd: true,
			})
		}
		prev = m.ID
	}

	return elements, connectors
}
