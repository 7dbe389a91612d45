package render

import (
	"reflect"
	"strings"
	"testing"

	"github.com/laneflow/laneflow/pkg/diagram"
)

func svgDiagram() diagram.Diagram {
	return diagram.Diagram{
		Type:   diagram.TypeProcess,
		Name:   "Order Intake",
		Width:  800,
		Height: 200,
		Lanes: []diagram.Lane{{
			ID:         "lane_sales",
			Actor:      "Sales and Operations",
			X:          0,
			Y:          0,
			Width:      800,
			Height:     200,
			Fill:       "#E3F2FD",
			Border:     "#90CAF9",
			LabelWidth: 60,
		}},
		Elements: []diagram.Element{
			{
				ID: "el_start", Shape: diagram.ShapeCircle,
				Label: "Start", LabelBelow: true,
				X: 80, Y: 80, Width: 40, Height: 40,
				Style: diagram.Style{Fill: "#C8E6C9", Border: "#2E7D32", BorderWidth: 2, FontSize: 10},
			},
			{
				ID: "el_approve", Shape: diagram.ShapeRectangle,
				Text: "1.1 Approve order", Icon: "👤",
				X: 160, Y: 60, Width: 200, Height: 80,
				Style: diagram.Style{Fill: "#FFFFFF", Border: "#1565C0", BorderWidth: 2, FontSize: 12},
			},
			{
				ID: "el_check", Shape: diagram.ShapeDiamond,
				Text: "In stock?",
				X:    420, Y: 60, Width: 80, Height: 80,
				Style: diagram.Style{Fill: "#FFF9C4", Border: "#F9A825", BorderWidth: 2, FontSize: 11},
			},
			{
				ID: "el_note", Shape: diagram.ShapeSticky,
				Text: "Watch the SLA",
				X:    560, Y: 40, Width: 100, Height: 100,
				Style: diagram.Style{Fill: "#FFF9C4"},
			},
		},
		Connectors: []diagram.Connector{
			{ID: "c1", From: "el_start", To: "el_approve", Color: "#1a1a1a", Width: 2, ArrowEnd: true},
			{ID: "c2", From: "el_approve", To: "el_check", Label: "yes", Color: "#757575", Width: 1, Dashed: true},
		},
	}
}

func TestRenderSVG_Document(t *testing.T) {
	d := svgDiagram()
	svg := string(RenderSVG(&d))

	if !strings.HasPrefix(svg, `<svg xmlns="http://www.w3.org/2000/svg"`) {
		t.Errorf("missing svg root: %.80s", svg)
	}
	if !strings.HasSuffix(svg, "</svg>\n") {
		t.Error("missing closing tag")
	}
	// 800x200 canvas plus the default 20px margin on every side.
	if !strings.Contains(svg, `viewBox="0 0 840.0 240.0"`) {
		t.Errorf("unexpected viewBox: %.120s", svg)
	}

	for _, want := range []string{"<circle", "<polygon", "<rect", "fill-opacity=\"0.12\""} {
		if !strings.Contains(svg, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestRenderSVG_Lanes(t *testing.T) {
	d := svgDiagram()
	svg := string(RenderSVG(&d))

	if !strings.Contains(svg, `fill="#E0E0E0"`) {
		t.Error("label bar missing")
	}
	// Lane labels rotate along the bar and keep the full actor name.
	if !strings.Contains(svg, "rotate(-90") || !strings.Contains(svg, "Sales and Operations") {
		t.Error("rotated actor label missing")
	}
	if !strings.Contains(svg, `fill-opacity="0.25"`) {
		t.Error("content band should be translucent")
	}
}

func TestRenderSVG_Elements(t *testing.T) {
	d := svgDiagram()
	svg := string(RenderSVG(&d))

	// Emoji rides along with the task text.
	if !strings.Contains(svg, "👤 1.1 Approve order") {
		t.Error("icon prefix missing from task text")
	}
	if !strings.Contains(svg, `<circle cx="100.0" cy="100.0" r="20.0"`) {
		t.Error("event circle missing or misplaced")
	}
	// The start label renders below the circle.
	if !strings.Contains(svg, ">Start</text>") {
		t.Error("below-shape label missing")
	}
	if !strings.Contains(svg, `id="el-el_approve"`) {
		t.Error("element group id missing")
	}
}

func TestRenderSVG_Connectors(t *testing.T) {
	d := svgDiagram()
	svg := string(RenderSVG(&d))

	if !strings.Contains(svg, `marker-end="url(#arrow-0)"`) {
		t.Error("arrowhead marker reference missing")
	}
	if !strings.Contains(svg, `stroke-dasharray="6 4"`) {
		t.Error("dashed stroke missing")
	}
	if !strings.Contains(svg, ">yes</text>") {
		t.Error("connector label missing")
	}
	if !strings.Contains(svg, `data-from="el_start" data-to="el_approve"`) {
		t.Error("connector endpoint attributes missing")
	}
}

func TestRenderSVG_SkipsDanglingConnectors(t *testing.T) {
	d := svgDiagram()
	d.Connectors = append(d.Connectors, diagram.Connector{ID: "c3", From: "el_check", To: "ghost"})

	svg := string(RenderSVG(&d))
	if strings.Contains(svg, "ghost") {
		t.Error("dangling connector was rendered")
	}
}

func TestRenderSVG_EscapesText(t *testing.T) {
	d := diagram.Diagram{
		Elements: []diagram.Element{{
			ID: "el_a", Shape: diagram.ShapeRectangle,
			Text: `R&D <fast> "review"`,
			X:    0, Y: 0, Width: 300, Height: 60,
		}},
	}

	svg := string(RenderSVG(&d))
	if !strings.Contains(svg, "R&amp;D") || !strings.Contains(svg, "&lt;fast&gt;") {
		t.Errorf("text not escaped: %s", svg)
	}
	if strings.Contains(svg, "<fast>") {
		t.Error("raw markup leaked into output")
	}
}

func TestRenderSVG_Interaction(t *testing.T) {
	d := svgDiagram()

	plain := string(RenderSVG(&d))
	if strings.Contains(plain, "<script") {
		t.Error("script embedded without WithInteraction")
	}

	interactive := string(RenderSVG(&d, WithInteraction()))
	if !strings.Contains(interactive, "<script") || !strings.Contains(interactive, "mouseenter") {
		t.Error("hover script missing")
	}
}

func TestRenderSVG_Background(t *testing.T) {
	d := svgDiagram()
	svg := string(RenderSVG(&d, WithBackground("#FAFAFA")))

	if !strings.Contains(svg, `<rect width="100%" height="100%" fill="#FAFAFA"/>`) {
		t.Error("background rect missing")
	}
}

func TestCanvasSize_FallsBackToBounds(t *testing.T) {
	d := diagram.Diagram{
		Elements: []diagram.Element{
			{ID: "a", X: 100, Y: 50, Width: 200, Height: 60},
			{ID: "b", X: 400, Y: 200, Width: 100, Height: 60},
		},
	}

	w, h := canvasSize(&d)
	if w != 500 || h != 260 {
		t.Errorf("canvasSize = (%v, %v), want (500, 260)", w, h)
	}
}

func TestRoutePoints(t *testing.T) {
	a := &diagram.Element{ID: "a", X: 0, Y: 0, Width: 100, Height: 60}
	sameRow := &diagram.Element{ID: "b", X: 200, Y: 0, Width: 100, Height: 60}
	lowerRow := &diagram.Element{ID: "c", X: 200, Y: 200, Width: 100, Height: 60}
	below := &diagram.Element{ID: "d", X: 0, Y: 200, Width: 100, Height: 60}

	straight := routePoints(a, sameRow)
	want := [][2]float64{{100, 30}, {200, 30}}
	if !reflect.DeepEqual(straight, want) {
		t.Errorf("same-row route = %v, want %v", straight, want)
	}

	elbow := routePoints(a, lowerRow)
	if len(elbow) != 4 {
		t.Fatalf("forward elbow has %d points, want 4", len(elbow))
	}
	if elbow[0] != [2]float64{100, 30} || elbow[3] != [2]float64{200, 230} {
		t.Errorf("elbow anchors = %v, %v", elbow[0], elbow[3])
	}

	down := routePoints(a, below)
	if down[0] != [2]float64{50, 60} || down[len(down)-1] != [2]float64{50, 200} {
		t.Errorf("downward anchors = %v, %v", down[0], down[len(down)-1])
	}
}

func TestWrapText(t *testing.T) {
	tests := []struct {
		in    string
		limit int
		want  []string
	}{
		{"", 10, nil},
		{"short", 10, []string{"short"}},
		{"approve the incoming order", 12, []string{"approve the", "incoming", "order"}},
		{"extraordinarily long", 8, []string{"extraordinarily", "long"}},
	}
	for _, tt := range tests {
		if got := wrapText(tt.in, tt.limit); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("wrapText(%q, %d) = %v, want %v", tt.in, tt.limit, got, tt.want)
		}
	}
}
