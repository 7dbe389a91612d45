package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/laneflow/laneflow/pkg/diagram"
	"github.com/laneflow/laneflow/pkg/icons"
	"github.com/laneflow/laneflow/pkg/process"
)

type layoutOpts struct {
	output     string
	spacingX   float64
	spacingY   float64
	laneHeight float64
	iconsPath  string
	noIcons    bool
	noCache    bool
}

func (c *CLI) layoutCommand() *cobra.Command {
	opts := &layoutOpts{}
	cmd := &cobra.Command{
		Use:   "layout <process>",
		Short: "Position a process graph as a swimlane diagram",
		Long: `Layout assigns every node of a process graph to an actor lane, orders
the columns along the flow and computes absolute coordinates for each
element, lane and connector. The result is a diagram document ready
for rendering or publishing.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd.Context(), args[0], opts)
		},
	}
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output path (default <input>.diagram.json)")
	cmd.Flags().Float64Var(&opts.spacingX, "spacing-x", 0, "horizontal spacing between columns")
	cmd.Flags().Float64Var(&opts.spacingY, "spacing-y", 0, "vertical spacing between stacked elements")
	cmd.Flags().Float64Var(&opts.laneHeight, "lane-height", 0, "minimum lane height")
	cmd.Flags().StringVar(&opts.iconsPath, "icons", "", "icon library file (default from settings)")
	cmd.Flags().BoolVar(&opts.noIcons, "no-icons", false, "skip icon decoration")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "bypass the cache entirely")
	return cmd
}

func (c *CLI) runLayout(ctx context.Context, path string, opts *layoutOpts) error {
	settings, err := c.loadSettings()
	if err != nil {
		return err
	}
	p, err := process.ImportJSON(path)
	if err != nil {
		return fmt.Errorf("load process: %w", err)
	}

	runner, err := c.newRunner(ctx, settings, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	popts := c.pipelineOptions(settings)
	if opts.spacingX > 0 {
		popts.SpacingX = opts.spacingX
	}
	if opts.spacingY > 0 {
		popts.SpacingY = opts.spacingY
	}
	if opts.laneHeight > 0 {
		popts.LaneHeight = opts.laneHeight
	}

	spinner := NewSpinner(ctx, fmt.Sprintf("Computing layout for %s", p.Name))
	spinner.Start()
	d, cached, err := runner.ComputeLayoutWithCacheInfo(ctx, p, popts)
	if err != nil {
		spinner.StopWithError(fmt.Sprintf("Layout failed: %v", err))
		return err
	}
	if ctx.Err() != nil {
		spinner.Stop()
		return ctx.Err()
	}
	spinner.StopWithSuccess(fmt.Sprintf("Laid out %s", StyleHighlight.Render(d.Name)))

	// Icons are cosmetic and cheap, so they sit outside the cached layout:
	// a decorated diagram is written on cache hits too.
	if !opts.noIcons {
		library := opts.iconsPath
		if library == "" {
			library = settings.Icons.Library
		}
		resolver, err := icons.Load(library)
		if err != nil {
			c.Logger.Warn("icon library unusable, skipping icons", "err", err)
		} else {
			resolver.SetMode(icons.Mode(settings.Icons.Mode))
			resolver.Decorate(&d, p)
		}
	}

	out := opts.output
	if out == "" {
		base := strings.TrimSuffix(path, filepath.Ext(path))
		out = strings.TrimSuffix(base, ".process") + ".diagram.json"
	}
	if err := diagram.WriteDiagramFile(d, out); err != nil {
		return fmt.Errorf("write diagram: %w", err)
	}

	printFile(out)
	printDiagramStats(len(d.Elements), len(d.Connectors), len(d.Lanes), cached)
	printNextStep(fmt.Sprintf("%s render %s", appName, out))
	return nil
}
