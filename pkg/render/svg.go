package render

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/laneflow/laneflow/pkg/diagram"
)

const (
	fontFamily = "Helvetica, Arial, sans-serif"

	// fontCharWidth approximates glyph width as a fraction of the font
	// size, good enough for wrapping box labels.
	fontCharWidth   = 0.55
	lineHeightRatio = 1.3

	cornerRadius = 8.0
	stickyFold   = 14.0
	textPadding  = 6.0

	belowLabelSize   = 11
	connectorFontPad = 4.0

	defaultPadding = 20.0
)

const hoverCSS = `
    .element rect, .element circle, .element polygon { transition: stroke-width 0.15s ease; }
    .element.highlight rect, .element.highlight circle, .element.highlight polygon { stroke-width: 4; }
    .connector { transition: stroke-width 0.15s ease; }
    .connector.highlight { stroke-width: 4; }`

const hoverJS = `
    document.querySelectorAll('.element').forEach(el => {
      const id = el.id.replace('el-', '');
      el.addEventListener('mouseenter', () => {
        el.classList.add('highlight');
        document.querySelectorAll('.connector').forEach(c => {
          if (c.dataset.from === id || c.dataset.to === id) c.classList.add('highlight');
        });
      });
      el.addEventListener('mouseleave', () => {
        document.querySelectorAll('.element, .connector').forEach(x => x.classList.remove('highlight'));
      });
    });`

// SVGOption configures the swimlane SVG renderer.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	background  string
	padding     float64
	interactive bool
}

// WithBackground fills the canvas with a solid color instead of
// leaving it transparent.
func WithBackground(color string) SVGOption {
	return func(r *svgRenderer) { r.background = color }
}

// WithPadding sets the margin around the diagram in pixels.
func WithPadding(px float64) SVGOption {
	return func(r *svgRenderer) { r.padding = px }
}

// WithInteraction embeds a hover script: pointing at an element
// highlights it together with its connectors.
func WithInteraction() SVGOption {
	return func(r *svgRenderer) { r.interactive = true }
}

// RenderSVG draws a positioned diagram as a self-contained SVG
// document: lane bands first, then elements, then connectors on top.
func RenderSVG(d *diagram.Diagram, opts ...SVGOption) []byte {
	r := svgRenderer{padding: defaultPadding}
	for _, opt := range opts {
		opt(&r)
	}

	width, height := canvasSize(d)
	totalW := width + 2*r.padding
	totalH := height + 2*r.padding

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f" font-family="%s">`+"\n",
		totalW, totalH, totalW, totalH, fontFamily)

	if r.background != "" {
		fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", esc(r.background))
	}

	markers := renderMarkerDefs(&buf, d.Connectors)

	fmt.Fprintf(&buf, `  <g transform="translate(%.1f,%.1f)">`+"\n", r.padding, r.padding)
	for i := range d.Lanes {
		renderLane(&buf, &d.Lanes[i])
	}
	for i := range d.Elements {
		renderElement(&buf, &d.Elements[i])
	}

	boxes := elementIndex(d)
	for i := range d.Connectors {
		renderConnector(&buf, &d.Connectors[i], boxes, markers)
	}
	buf.WriteString("  </g>\n")

	if r.interactive {
		fmt.Fprintf(&buf, "  <style>%s\n  </style>\n", hoverCSS)
		fmt.Fprintf(&buf, "  <script type=\"text/javascript\"><![CDATA[%s\n  ]]></script>\n", hoverJS)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// canvasSize prefers the dimensions the layout recorded and falls back
// to the bounding box of lanes and elements for hand-built diagrams.
func canvasSize(d *diagram.Diagram) (float64, float64) {
	w, h := d.Width, d.Height
	for i := range d.Lanes {
		l := &d.Lanes[i]
		w = max(w, l.X+l.Width)
		h = max(h, l.Y+l.Height)
	}
	for i := range d.Elements {
		e := &d.Elements[i]
		w = max(w, e.X+e.Width)
		h = max(h, e.Y+e.Height)
	}
	return w, h
}

func elementIndex(d *diagram.Diagram) map[string]*diagram.Element {
	idx := make(map[string]*diagram.Element, len(d.Elements))
	for i := range d.Elements {
		idx[d.Elements[i].ID] = &d.Elements[i]
	}
	return idx
}

// renderMarkerDefs emits one arrowhead marker per distinct connector
// color and returns the color to marker-id mapping.
func renderMarkerDefs(buf *bytes.Buffer, conns []diagram.Connector) map[string]string {
	markers := make(map[string]string)
	if len(conns) == 0 {
		return markers
	}

	buf.WriteString("  <defs>\n")
	for i := range conns {
		color := connColor(&conns[i])
		if _, ok := markers[color]; ok {
			continue
		}
		id := fmt.Sprintf("arrow-%d", len(markers))
		markers[color] = id
		fmt.Fprintf(buf, `    <marker id="%s" viewBox="0 0 10 10" refX="9" refY="5" markerWidth="7" markerHeight="7" orient="auto-start-reverse"><path d="M 0 0 L 10 5 L 0 10 z" fill="%s"/></marker>`+"\n",
			id, esc(color))
	}
	buf.WriteString("  </defs>\n")
	return markers
}

// renderLane draws the lane band: a translucent content area and the
// label bar with the actor name rotated along it.
func renderLane(buf *bytes.Buffer, lane *diagram.Lane) {
	labelW := lane.LabelWidth
	if labelW <= 0 {
		labelW = 60
	}

	fmt.Fprintf(buf, `    <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s" fill-opacity="0.25" stroke="%s" stroke-width="1"/>`+"\n",
		lane.X+labelW, lane.Y, lane.Width-labelW, lane.Height, esc(lane.Fill), esc(lane.Border))
	fmt.Fprintf(buf, `    <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="#E0E0E0" stroke="%s" stroke-width="1"/>`+"\n",
		lane.X, lane.Y, labelW, lane.Height, esc(lane.Border))

	cx := lane.X + labelW/2
	cy := lane.CenterY()
	color := lane.TextColor
	if color == "" {
		color = "#1A1A1A"
	}
	fmt.Fprintf(buf, `    <text x="%.1f" y="%.1f" transform="rotate(-90 %.1f %.1f)" text-anchor="middle" dominant-baseline="central" font-size="14" fill="%s">%s</text>`+"\n",
		cx, cy, cx, cy, esc(color), esc(lane.Actor))
}

func renderElement(buf *bytes.Buffer, el *diagram.Element) {
	fill := el.Style.Fill
	if fill == "" {
		fill = "#FFFFFF"
	}
	border := el.Style.Border
	if border == "" {
		border = "#333333"
	}
	bw := el.Style.BorderWidth
	if bw == 0 {
		bw = 1
	}

	fmt.Fprintf(buf, `    <g id="el-%s" class="element">`+"\n", esc(el.ID))

	switch el.Shape {
	case diagram.ShapeCircle:
		r := min(el.Width, el.Height) / 2
		fmt.Fprintf(buf, `      <circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s" stroke="%s" stroke-width="%d"/>`+"\n",
			el.CenterX(), el.CenterY(), r, esc(fill), esc(border), bw)
	case diagram.ShapeDiamond:
		fmt.Fprintf(buf, `      <polygon points="%.1f,%.1f %.1f,%.1f %.1f,%.1f %.1f,%.1f" fill="%s" stroke="%s" stroke-width="%d"/>`+"\n",
			el.CenterX(), el.Y,
			el.X+el.Width, el.CenterY(),
			el.CenterX(), el.Y+el.Height,
			el.X, el.CenterY(),
			esc(fill), esc(border), bw)
	case diagram.ShapeSticky:
		fmt.Fprintf(buf, `      <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s" stroke="%s" stroke-width="%d"/>`+"\n",
			el.X, el.Y, el.Width, el.Height, esc(fill), esc(border), bw)
		// Folded corner, bottom right.
		fmt.Fprintf(buf, `      <path d="M %.1f %.1f L %.1f %.1f L %.1f %.1f Z" fill="#000000" fill-opacity="0.12"/>`+"\n",
			el.X+el.Width-stickyFold, el.Y+el.Height,
			el.X+el.Width, el.Y+el.Height-stickyFold,
			el.X+el.Width-stickyFold, el.Y+el.Height-stickyFold)
	default:
		fmt.Fprintf(buf, `      <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" rx="%.1f" fill="%s" stroke="%s" stroke-width="%d"/>`+"\n",
			el.X, el.Y, el.Width, el.Height, cornerRadius, esc(fill), esc(border), bw)
	}

	renderElementText(buf, el)

	if el.LabelBelow && el.Label != "" {
		fmt.Fprintf(buf, `      <text x="%.1f" y="%.1f" text-anchor="middle" font-size="%d" fill="#333333">%s</text>`+"\n",
			el.CenterX(), el.Y+el.Height+float64(belowLabelSize)+3, belowLabelSize, esc(el.Label))
	}

	buf.WriteString("    </g>\n")
}

func renderElementText(buf *bytes.Buffer, el *diagram.Element) {
	content := el.Text
	if el.Icon != "" && content != "" {
		content = el.Icon + " " + content
	}
	if content == "" {
		return
	}

	fs := el.Style.FontSize
	if fs == 0 {
		fs = 12
	}
	color := el.Style.TextColor
	if color == "" {
		color = "#1A1A1A"
	}
	weight := ""
	if el.Style.Bold {
		weight = ` font-weight="bold"`
	}

	avail := el.Width - 2*textPadding
	if el.Shape == diagram.ShapeDiamond || el.Shape == diagram.ShapeCircle {
		// Pointed and round shapes narrow toward the edges.
		avail = el.Width * 0.7
	}
	lines := wrapText(content, maxChars(avail, fs))

	lineH := float64(fs) * lineHeightRatio
	startY := el.CenterY() - lineH*float64(len(lines)-1)/2
	for i, line := range lines {
		fmt.Fprintf(buf, `      <text x="%.1f" y="%.1f" text-anchor="middle" dominant-baseline="central" font-size="%d"%s fill="%s">%s</text>`+"\n",
			el.CenterX(), startY+float64(i)*lineH, fs, weight, esc(color), esc(line))
	}
}

func renderConnector(buf *bytes.Buffer, conn *diagram.Connector, boxes map[string]*diagram.Element, markers map[string]string) {
	src, okS := boxes[conn.From]
	dst, okD := boxes[conn.To]
	if !okS || !okD {
		return
	}

	pts := routePoints(src, dst)
	var path strings.Builder
	for i, p := range pts {
		cmd := "L"
		if i == 0 {
			cmd = "M"
		}
		fmt.Fprintf(&path, "%s %.1f %.1f ", cmd, p[0], p[1])
	}

	color := connColor(conn)
	width := conn.Width
	if width == 0 {
		width = 2
	}
	dash := ""
	if conn.Dashed {
		dash = ` stroke-dasharray="6 4"`
	}
	arrow := ""
	if conn.ArrowEnd {
		arrow = fmt.Sprintf(` marker-end="url(#%s)"`, markers[color])
	}

	fmt.Fprintf(buf, `    <path class="connector" data-from="%s" data-to="%s" d="%s" fill="none" stroke="%s" stroke-width="%d"%s%s/>`+"\n",
		esc(conn.From), esc(conn.To), strings.TrimSpace(path.String()), esc(color), width, dash, arrow)

	if conn.Label != "" {
		lx, ly := labelPoint(pts)
		fmt.Fprintf(buf, `    <text x="%.1f" y="%.1f" text-anchor="middle" font-size="11" fill="#555555">%s</text>`+"\n",
			lx, ly-connectorFontPad, esc(conn.Label))
	}
}

// routePoints plans an orthogonal path between two elements: forward
// flows leave the source's right edge and enter the target's left
// edge; vertical flows use the top and bottom centers.
func routePoints(src, dst *diagram.Element) [][2]float64 {
	switch {
	case dst.X >= src.X+src.Width:
		sx, sy := src.X+src.Width, src.CenterY()
		tx, ty := dst.X, dst.CenterY()
		if sy == ty {
			return [][2]float64{{sx, sy}, {tx, ty}}
		}
		mx := (sx + tx) / 2
		return [][2]float64{{sx, sy}, {mx, sy}, {mx, ty}, {tx, ty}}
	case dst.CenterY() > src.CenterY():
		sx, sy := src.CenterX(), src.Y+src.Height
		tx, ty := dst.CenterX(), dst.Y
		if sx == tx {
			return [][2]float64{{sx, sy}, {tx, ty}}
		}
		my := (sy + ty) / 2
		return [][2]float64{{sx, sy}, {sx, my}, {tx, my}, {tx, ty}}
	case dst.CenterY() < src.CenterY():
		sx, sy := src.CenterX(), src.Y
		tx, ty := dst.CenterX(), dst.Y+dst.Height
		if sx == tx {
			return [][2]float64{{sx, sy}, {tx, ty}}
		}
		my := (sy + ty) / 2
		return [][2]float64{{sx, sy}, {sx, my}, {tx, my}, {tx, ty}}
	default:
		return [][2]float64{{src.CenterX(), src.CenterY()}, {dst.CenterX(), dst.CenterY()}}
	}
}

// labelPoint picks the midpoint of the path's middle segment.
func labelPoint(pts [][2]float64) (float64, float64) {
	i := len(pts)/2 - 1
	a, b := pts[i], pts[i+1]
	return (a[0] + b[0]) / 2, (a[1] + b[1]) / 2
}

func connColor(conn *diagram.Connector) string {
	if conn.Color != "" {
		return conn.Color
	}
	return diagram.ConnectorColor
}

// maxChars estimates how many characters of the given font size fit in
// the available width.
func maxChars(avail float64, fontSize int) int {
	n := int(avail / (float64(fontSize) * fontCharWidth))
	if n < 3 {
		return 3
	}
	return n
}

// wrapText greedily wraps on spaces. Words longer than the limit get
// their own line rather than being split mid-word.
func wrapText(s string, limit int) []string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	line := words[0]
	for _, w := range words[1:] {
		if len(line)+1+len(w) <= limit {
			line += " " + w
			continue
		}
		lines = append(lines, line)
		line = w
	}
	return append(lines, line)
}

func esc(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
