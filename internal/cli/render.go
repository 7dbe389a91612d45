package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/laneflow/laneflow/pkg/diagram"
	"github.com/laneflow/laneflow/pkg/pipeline"
	"github.com/laneflow/laneflow/pkg/process"
)

type renderOpts struct {
	output      string
	formats     string
	processPath string
	background  string
	interactive bool
	horizontal  bool
	noCache     bool
}

func (c *CLI) renderCommand() *cobra.Command {
	opts := &renderOpts{}
	cmd := &cobra.Command{
		Use:   "render <diagram>",
		Short: "Render a positioned diagram to SVG, PNG, PDF, DOT or JSON",
		Long: `Render turns a diagram document into image and data artifacts. Formats
are written side by side when more than one is requested. DOT output
reconstructs the flow graph and therefore needs the original process
document via --process.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd.Context(), args[0], opts)
		},
	}
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output path (base name when multiple formats)")
	cmd.Flags().StringVarP(&opts.formats, "formats", "f", pipeline.FormatSVG, "comma separated output formats")
	cmd.Flags().StringVar(&opts.processPath, "process", "", "process document (required for dot output)")
	cmd.Flags().StringVar(&opts.background, "background", "", "background color for image output")
	cmd.Flags().BoolVar(&opts.interactive, "interactive", false, "embed hover highlighting in SVG output")
	cmd.Flags().BoolVar(&opts.horizontal, "horizontal", false, "left-to-right DOT output")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "bypass the cache entirely")
	return cmd
}

func (c *CLI) runRender(ctx context.Context, path string, opts *renderOpts) error {
	settings, err := c.loadSettings()
	if err != nil {
		return err
	}
	formats, err := parseFormats(opts.formats)
	if err != nil {
		return err
	}

	d, err := diagram.ReadDiagramFile(path)
	if err != nil {
		return fmt.Errorf("load diagram: %w", err)
	}
	var p *process.Process
	if opts.processPath != "" {
		p, err = process.ImportJSON(opts.processPath)
		if err != nil {
			return fmt.Errorf("load process: %w", err)
		}
	}
	if p == nil && slices.Contains(formats, pipeline.FormatDOT) {
		return fmt.Errorf("dot output requires --process")
	}

	runner, err := c.newRunner(ctx, settings, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	popts := c.pipelineOptions(settings)
	popts.Formats = formats
	popts.Background = opts.background
	popts.Interactive = opts.interactive
	popts.Horizontal = opts.horizontal

	spinner := NewSpinner(ctx, fmt.Sprintf("Rendering %s", d.Name))
	spinner.Start()
	artifacts, cached, err := runner.RenderWithCacheInfo(ctx, d, p, popts)
	if err != nil {
		spinner.StopWithError(fmt.Sprintf("Render failed: %v", err))
		return err
	}
	if ctx.Err() != nil {
		spinner.Stop()
		return ctx.Err()
	}
	spinner.StopWithSuccess(fmt.Sprintf("Rendered %s", StyleHighlight.Render(d.Name)))

	if err := writeArtifacts(artifactWriteParams{
		artifacts: artifacts,
		formats:   formats,
		output:    opts.output,
		input:     path,
	}); err != nil {
		return err
	}
	printStatsLine(cached, formats...)
	return nil
}

type artifactWriteParams struct {
	artifacts map[string][]byte
	formats   []string
	output    string
	input     string
}

// writeArtifacts writes rendered artifacts and prints one line per file.
// Formats are iterated in request order so output is deterministic.
func writeArtifacts(params artifactWriteParams) error {
	multiple := len(params.formats) > 1
	for _, format := range params.formats {
		data, ok := params.artifacts[format]
		if !ok {
			continue
		}
		path := artifactPath(params.output, params.input, format, multiple)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printFile(path)
	}
	return nil
}

// artifactPath decides where a rendered artifact lands. A single format
// honors --output verbatim; multiple formats treat --output as a base
// name and swap in the format extension. Without --output, artifacts
// land next to the input file.
func artifactPath(output, input, format string, multiple bool) string {
	if output != "" {
		if !multiple {
			return output
		}
		return strings.TrimSuffix(output, filepath.Ext(output)) + "." + format
	}
	base := strings.TrimSuffix(input, filepath.Ext(input))
	base = strings.TrimSuffix(base, ".diagram")
	return base + "." + format
}
