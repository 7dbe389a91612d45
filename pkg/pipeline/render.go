package pipeline

import (
	"fmt"

	"github.com/laneflow/laneflow/pkg/diagram"
	"github.com/laneflow/laneflow/pkg/process"
	"github.com/laneflow/laneflow/pkg/render"
)

// pngScale is the raster scale factor for PNG output. 2x keeps labels
// readable when the image is zoomed or printed.
const pngScale = 2.0

// Render generates output artifacts in the requested formats.
//
// The process graph is only consulted for the dot format, which draws
// the raw graph rather than the positioned diagram; pass nil when dot
// is not requested.
func Render(d diagram.Diagram, p *process.Process, opts Options) (map[string][]byte, error) {
	svgOpts := buildSVGOptions(opts)
	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = render.RenderSVG(&d, svgOpts...)
		case FormatPNG:
			data, err = render.ToPNG(render.RenderSVG(&d, svgOpts...), pngScale)
		case FormatPDF:
			data, err = render.ToPDF(render.RenderSVG(&d, svgOpts...))
		case FormatDOT:
			data, err = renderDOT(p, opts)
		case FormatJSON:
			data, err = diagram.MarshalDiagram(d)
		default:
			return nil, fmt.Errorf("unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

// renderDOT emits the structural graphviz view of the process. Actor
// clusters are drawn whenever the process declares actors.
func renderDOT(p *process.Process, opts Options) ([]byte, error) {
	if p == nil {
		return nil, fmt.Errorf("dot output needs the process graph")
	}
	dot := render.ToDOT(p, render.DOTOptions{
		Horizontal: opts.Horizontal,
		Clustered:  len(p.Actors) > 0,
	})
	return []byte(dot), nil
}

// buildSVGOptions translates render options into renderer options.
func buildSVGOptions(opts Options) []render.SVGOption {
	var svgOpts []render.SVGOption
	if opts.Background != "" {
		svgOpts = append(svgOpts, render.WithBackground(opts.Background))
	}
	if opts.Interactive {
		svgOpts = append(svgOpts, render.WithInteraction())
	}
	return svgOpts
}
