package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/laneflow/laneflow/pkg/process"
)

// DOTOptions configure the Graphviz view of a process graph.
type DOTOptions struct {
	// Horizontal lays ranks left to right, matching the swimlane
	// reading direction. Default is top down.
	Horizontal bool

	// Clustered groups nodes into one subgraph per actor.
	Clustered bool
}

// ToDOT emits the raw process graph in Graphviz DOT format. The output
// reflects the declared structure before layout: no lanes, no
// positions, just nodes, flows, and branch conditions. Render it with
// [RenderDOTSVG] or [RenderDOTPNG].
func ToDOT(p *process.Process, opts DOTOptions) string {
	var buf bytes.Buffer
	buf.WriteString("digraph process {\n")
	if opts.Horizontal {
		buf.WriteString("  rankdir=LR;\n")
	}
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=12, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  edge [fontsize=10];\n")
	buf.WriteString("\n")

	if opts.Clustered {
		writeClusters(&buf, p)
	} else {
		for i := range p.Nodes {
			writeNode(&buf, "  ", &p.Nodes[i])
		}
	}

	buf.WriteString("\n")
	for _, e := range p.Edges {
		if e.Condition != "" {
			fmt.Fprintf(&buf, "  %q -> %q [label=%q];\n", e.From, e.To, e.Condition)
		} else {
			fmt.Fprintf(&buf, "  %q -> %q;\n", e.From, e.To)
		}
	}
	for i := range p.Nodes {
		n := &p.Nodes[i]
		if n.Type == process.NodeAnnotation && n.AttachedTo != "" {
			fmt.Fprintf(&buf, "  %q -> %q [style=dashed, arrowhead=none];\n", n.ID, n.AttachedTo)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

// writeClusters groups nodes by actor, one subgraph per declared
// actor. Nodes without an actor land at the top level.
func writeClusters(buf *bytes.Buffer, p *process.Process) {
	byActor := make(map[string][]*process.Node)
	var loose []*process.Node
	for i := range p.Nodes {
		n := &p.Nodes[i]
		if n.Actor == "" {
			loose = append(loose, n)
			continue
		}
		byActor[n.Actor] = append(byActor[n.Actor], n)
	}

	for i, actor := range p.Actors {
		nodes := byActor[actor]
		if len(nodes) == 0 {
			continue
		}
		fmt.Fprintf(buf, "  subgraph cluster_%d {\n", i)
		fmt.Fprintf(buf, "    label=%q;\n", actor)
		buf.WriteString("    style=filled;\n")
		buf.WriteString("    fillcolor=\"#F5F5F5\";\n")
		for _, n := range nodes {
			writeNode(buf, "    ", n)
		}
		buf.WriteString("  }\n")
	}
	for _, n := range loose {
		writeNode(buf, "  ", n)
	}
}

func writeNode(buf *bytes.Buffer, indent string, n *process.Node) {
	attrs := []string{fmt.Sprintf("label=%q", n.DisplayName())}
	switch n.Type {
	case process.NodeStart:
		attrs = append(attrs, "shape=circle", `fillcolor="#C8E6C9"`)
	case process.NodeEnd:
		attrs = append(attrs, "shape=circle", "peripheries=2", `fillcolor="#FFCDD2"`)
	case process.NodeIntermediate, process.NodeLinkThrow, process.NodeLinkCatch:
		attrs = append(attrs, "shape=circle")
	case process.NodeGateway:
		attrs = append(attrs, "shape=diamond", `fillcolor="#FFF9C4"`)
	case process.NodeAnnotation:
		attrs = append(attrs, "shape=note", `style="filled,dashed"`, `fillcolor="#FFFDE7"`)
	}
	fmt.Fprintf(buf, "%s%q [%s];\n", indent, n.ID, strings.Join(attrs, ", "))
}

// RenderDOTSVG renders a DOT graph to SVG using Graphviz.
func RenderDOTSVG(dot string) ([]byte, error) {
	var buf bytes.Buffer
	if err := renderDOT(dot, graphviz.SVG, &buf); err != nil {
		return nil, err
	}
	return normalizeViewBox(buf.Bytes()), nil
}

// RenderDOTPNG renders a DOT graph straight to PNG using Graphviz. For
// scaled raster output, render SVG and convert with [ToPNG] instead.
func RenderDOTPNG(dot string) ([]byte, error) {
	var buf bytes.Buffer
	if err := renderDOT(dot, graphviz.PNG, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func renderDOT(dot string, format graphviz.Format, buf *bytes.Buffer) error {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	if err := gv.Render(ctx, g, format, buf); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	return nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites Graphviz's point-based svg element into a
// zero-origin pixel viewBox so browsers and converters size it
// consistently.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
