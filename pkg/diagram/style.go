package diagram

import (
	"github.com/laneflow/laneflow/pkg/process"
)

// =============================================================================
// Visual Constants
// =============================================================================

// Shape sizes in pixels.
const (
	EventSize        = 50.0
	GatewaySize      = 60.0
	TaskWidth        = 160.0
	TaskHeight       = 80.0
	AnnotationWidth  = 200.0
	AnnotationHeight = 100.0
	FallbackWidth    = 120.0
	FallbackHeight   = 60.0
)

// Palette.
const (
	colorText      = "#1a1a1a"
	colorBlueFill  = "#E3F2FD"
	colorBlue      = "#1976D2"
	colorGreenFill = "#C8E6C9"
	colorGreen     = "#388E3C"
	colorRedFill   = "#FFCDD2"
	colorRed       = "#D32F2F"
	colorAmberFill = "#FFF9C4"
	colorAmber     = "#F57C00"
	colorSticky    = "#FFD54F"
	colorWhite     = "#FFFFFF"
)

// Lane chrome.
const (
	LaneFill       = "#F5F5F5"
	LaneBorder     = "#BDBDBD"
	LaneTextColor  = "#424242"
	LaneLabelWidth = 60.0
)

// Connector defaults.
const (
	ConnectorColor = "#424242"
	ConnectorWidth = 2
)

// =============================================================================
// Appearance Resolution
// =============================================================================

// Appearance is the resolved look of a process node before layout:
// shape, size, paint, and how its name is displayed. Events carry
// their name as an external label below the shape and show a kind
// glyph inside; gateways show only their kind glyph; tasks show the
// name inline with an optional icon.
type Appearance struct {
	Shape      string
	Width      float64
	Height     float64
	Style      Style
	Text       string
	Label      string
	LabelBelow bool
	Icon       string
}

// AppearanceFor resolves the visual appearance of a node. Every node
// type and kind combination is matched explicitly; unknown types fall
// back to a plain white rectangle so malformed input stays visible
// instead of disappearing.
func AppearanceFor(n process.Node) Appearance {
	switch n.Type {
	case process.NodeStart:
		return eventAppearance(n, Style{
			Fill:        colorGreenFill,
			Border:      colorGreen,
			TextColor:   colorText,
			BorderWidth: 2,
			FontSize:    12,
		})

	case process.NodeEnd:
		return eventAppearance(n, Style{
			Fill:        colorRedFill,
			Border:      colorRed,
			TextColor:   colorText,
			BorderWidth: 4,
			FontSize:    12,
		})

	case process.NodeIntermediate:
		return eventAppearance(n, Style{
			Fill:        colorWhite,
			Border:      colorBlue,
			TextColor:   colorText,
			BorderWidth: 2,
			FontSize:    12,
		})

	case process.NodeLinkThrow:
		return Appearance{
			Shape:  ShapeCircle,
			Width:  EventSize,
			Height: EventSize,
			Style: Style{
				Fill:        colorBlueFill,
				Border:      colorBlue,
				TextColor:   colorBlue,
				BorderWidth: 3,
				FontSize:    18,
			},
			Text:       "→",
			Label:      n.LinkLabel,
			LabelBelow: true,
		}

	case process.NodeLinkCatch:
		return Appearance{
			Shape:  ShapeCircle,
			Width:  EventSize,
			Height: EventSize,
			Style: Style{
				Fill:        colorWhite,
				Border:      colorBlue,
				TextColor:   colorBlue,
				BorderWidth: 2,
				FontSize:    18,
			},
			Text:       "→",
			Label:      n.LinkLabel,
			LabelBelow: true,
		}

	case process.NodeGateway:
		return Appearance{
			Shape:  ShapeDiamond,
			Width:  GatewaySize,
			Height: GatewaySize,
			Style: Style{
				Fill:        colorAmberFill,
				Border:      colorAmber,
				TextColor:   colorText,
				BorderWidth: 2,
				FontSize:    18,
				Bold:        true,
			},
			Text: gatewayGlyph(n.GatewayKind),
		}

	case process.NodeTask:
		return Appearance{
			Shape:  ShapeRectangle,
			Width:  TaskWidth,
			Height: TaskHeight,
			Style: Style{
				Fill:        colorBlueFill,
				Border:      colorBlue,
				TextColor:   colorText,
				BorderWidth: 2,
				FontSize:    13,
			},
			Text: n.Name,
			Icon: taskIcon(n.TaskKind),
		}

	case process.NodeAnnotation:
		return Appearance{
			Shape:  ShapeSticky,
			Width:  AnnotationWidth,
			Height: AnnotationHeight,
			Style: Style{
				Fill:        colorAmberFill,
				Border:      colorSticky,
				TextColor:   colorText,
				BorderWidth: 0,
				FontSize:    12,
			},
			Text: n.Name,
		}

	default:
		return Appearance{
			Shape:  ShapeRectangle,
			Width:  FallbackWidth,
			Height: FallbackHeight,
			Style: Style{
				Fill:        colorWhite,
				Border:      colorText,
				TextColor:   colorText,
				BorderWidth: 2,
				FontSize:    14,
			},
			Text: n.Name,
		}
	}
}

// eventAppearance builds the shared event shape: a circle showing the
// kind glyph, with the node name as a label underneath.
func eventAppearance(n process.Node, s Style) Appearance {
	return Appearance{
		Shape:      ShapeCircle,
		Width:      EventSize,
		Height:     EventSize,
		Style:      s,
		Text:       eventGlyph(n.EventKind),
		Label:      n.Name,
		LabelBelow: true,
	}
}

// eventGlyph returns the symbol drawn inside an event circle.
func eventGlyph(k process.EventKind) string {
	switch k {
	case process.EventTimer:
		return "⏱"
	case process.EventMessage:
		return "✉"
	case process.EventConditional:
		return "≡"
	case process.EventError:
		return "⚡"
	case process.EventSignal:
		return "△"
	case process.EventMultiple:
		return "⬠"
	case process.EventPlain:
		return ""
	default:
		return ""
	}
}

// gatewayGlyph returns the symbol drawn inside a gateway diamond. The
// gateway name is intentionally dropped: the branch conditions on the
// outgoing connectors carry the decision semantics.
func gatewayGlyph(k process.GatewayKind) string {
	switch k {
	case process.GatewayInclusive:
		return "O"
	case process.GatewayParallel:
		return "+"
	case process.GatewayComplex:
		return "◇"
	case process.GatewayExclusive:
		return "X"
	default:
		return "X"
	}
}

// taskIcon returns the emoji prefix for a task kind.
func taskIcon(k process.TaskKind) string {
	switch k {
	case process.TaskUser:
		return "👤"
	case process.TaskManual:
		return "✋"
	case process.TaskService:
		return "⚙️"
	case process.TaskPlain:
		return ""
	default:
		return ""
	}
}
