package diagram

import (
	"testing"

	"github.com/laneflow/laneflow/pkg/process"
)

func TestAppearanceFor(t *testing.T) {
	tests := []struct {
		name       string
		node       process.Node
		wantShape  string
		wantWidth  float64
		wantText   string
		wantLabel  string
		wantBelow  bool
		wantFill   string
		wantBorder int
	}{
		{
			name:       "plain start event",
			node:       process.Node{ID: "s", Type: process.NodeStart, Name: "Order received"},
			wantShape:  ShapeCircle,
			wantWidth:  EventSize,
			wantText:   "",
			wantLabel:  "Order received",
			wantBelow:  true,
			wantFill:   "#C8E6C9",
			wantBorder: 2,
		},
		{
			name:       "timer start event",
			node:       process.Node{ID: "s", Type: process.NodeStart, Name: "Every morning", EventKind: process.EventTimer},
			wantShape:  ShapeCircle,
			wantWidth:  EventSize,
			wantText:   "⏱",
			wantLabel:  "Every morning",
			wantBelow:  true,
			wantFill:   "#C8E6C9",
			wantBorder: 2,
		},
		{
			name:       "end event has thick border",
			node:       process.Node{ID: "e", Type: process.NodeEnd, Name: "Done"},
			wantShape:  ShapeCircle,
			wantWidth:  EventSize,
			wantLabel:  "Done",
			wantBelow:  true,
			wantFill:   "#FFCDD2",
			wantBorder: 4,
		},
		{
			name:       "message intermediate event",
			node:       process.Node{ID: "m", Type: process.NodeIntermediate, Name: "Reply arrives", EventKind: process.EventMessage},
			wantShape:  ShapeCircle,
			wantWidth:  EventSize,
			wantText:   "✉",
			wantLabel:  "Reply arrives",
			wantBelow:  true,
			wantFill:   "#FFFFFF",
			wantBorder: 2,
		},
		{
			name:       "exclusive gateway drops name",
			node:       process.Node{ID: "g", Type: process.NodeGateway, Name: "In stock?", GatewayKind: process.GatewayExclusive},
			wantShape:  ShapeDiamond,
			wantWidth:  GatewaySize,
			wantText:   "X",
			wantFill:   "#FFF9C4",
			wantBorder: 2,
		},
		{
			name:       "parallel gateway",
			node:       process.Node{ID: "g", Type: process.NodeGateway, GatewayKind: process.GatewayParallel},
			wantShape:  ShapeDiamond,
			wantWidth:  GatewaySize,
			wantText:   "+",
			wantFill:   "#FFF9C4",
			wantBorder: 2,
		},
		{
			name:       "plain task",
			node:       process.Node{ID: "t", Type: process.NodeTask, Name: "Pick items"},
			wantShape:  ShapeRectangle,
			wantWidth:  TaskWidth,
			wantText:   "Pick items",
			wantFill:   "#E3F2FD",
			wantBorder: 2,
		},
		{
			name:       "link throw carries letter",
			node:       process.Node{Type: process.NodeLinkThrow, LinkLabel: "A"},
			wantShape:  ShapeCircle,
			wantWidth:  EventSize,
			wantText:   "→",
			wantLabel:  "A",
			wantBelow:  true,
			wantFill:   "#E3F2FD",
			wantBorder: 3,
		},
		{
			name:       "link catch is outlined",
			node:       process.Node{Type: process.NodeLinkCatch, LinkLabel: "A"},
			wantShape:  ShapeCircle,
			wantWidth:  EventSize,
			wantText:   "→",
			wantLabel:  "A",
			wantBelow:  true,
			wantFill:   "#FFFFFF",
			wantBorder: 2,
		},
		{
			name:       "annotation is a sticky",
			node:       process.Node{ID: "n", Type: process.NodeAnnotation, Name: "Check SLA"},
			wantShape:  ShapeSticky,
			wantWidth:  AnnotationWidth,
			wantText:   "Check SLA",
			wantFill:   "#FFF9C4",
			wantBorder: 0,
		},
		{
			name:       "unknown type falls back visibly",
			node:       process.Node{ID: "u", Type: process.NodeType("widget"), Name: "???"},
			wantShape:  ShapeRectangle,
			wantWidth:  FallbackWidth,
			wantText:   "???",
			wantFill:   "#FFFFFF",
			wantBorder: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AppearanceFor(tt.node)
			if got.Shape != tt.wantShape {
				t.Errorf("Shape = %q, want %q", got.Shape, tt.wantShape)
			}
			if got.Width != tt.wantWidth {
				t.Errorf("Width = %v, want %v", got.Width, tt.wantWidth)
			}
			if got.Text != tt.wantText {
				t.Errorf("Text = %q, want %q", got.Text, tt.wantText)
			}
			if got.Label != tt.wantLabel {
				t.Errorf("Label = %q, want %q", got.Label, tt.wantLabel)
			}
			if got.LabelBelow != tt.wantBelow {
				t.Errorf("LabelBelow = %v, want %v", got.LabelBelow, tt.wantBelow)
			}
			if got.Style.Fill != tt.wantFill {
				t.Errorf("Style.Fill = %q, want %q", got.Style.Fill, tt.wantFill)
			}
			if got.Style.BorderWidth != tt.wantBorder {
				t.Errorf("Style.BorderWidth = %d, want %d", got.Style.BorderWidth, tt.wantBorder)
			}
		})
	}
}

func TestTaskIcons(t *testing.T) {
	tests := []struct {
		kind process.TaskKind
		want string
	}{
		{process.TaskUser, "👤"},
		{process.TaskManual, "✋"},
		{process.TaskService, "⚙️"},
		{process.TaskPlain, ""},
	}

	for _, tt := range tests {
		n := process.Node{ID: "t", Type: process.NodeTask, Name: "Work", TaskKind: tt.kind}
		if got := AppearanceFor(n).Icon; got != tt.want {
			t.Errorf("icon for %q = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestGatewayGlyphs(t *testing.T) {
	tests := []struct {
		kind process.GatewayKind
		want string
	}{
		{process.GatewayExclusive, "X"},
		{process.GatewayInclusive, "O"},
		{process.GatewayParallel, "+"},
		{process.GatewayComplex, "◇"},
		{process.GatewayKind(""), "X"},
	}

	for _, tt := range tests {
		n := process.Node{ID: "g", Type: process.NodeGateway, GatewayKind: tt.kind}
		if got := AppearanceFor(n).Text; got != tt.want {
			t.Errorf("glyph for %q = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestEventGlyphs(t *testing.T) {
	tests := []struct {
		kind process.EventKind
		want string
	}{
		{process.EventPlain, ""},
		{process.EventTimer, "⏱"},
		{process.EventMessage, "✉"},
		{process.EventConditional, "≡"},
		{process.EventError, "⚡"},
		{process.EventSignal, "△"},
		{process.EventMultiple, "⬠"},
	}

	for _, tt := range tests {
		n := process.Node{ID: "e", Type: process.NodeIntermediate, Name: "ev", EventKind: tt.kind}
		if got := AppearanceFor(n).Text; got != tt.want {
			t.Errorf("glyph for %q = %q, want %q", tt.kind, got, tt.want)
		}
	}
}
