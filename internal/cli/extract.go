package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/laneflow/laneflow/pkg/pipeline"
	"github.com/laneflow/laneflow/pkg/process"
)

type extractOpts struct {
	output      string
	model       string
	maxTokens   int
	temperature float64
	attempts    int
	refresh     bool
	noCache     bool
}

func (c *CLI) extractCommand() *cobra.Command {
	opts := &extractOpts{}
	cmd := &cobra.Command{
		Use:   "extract <transcript>",
		Short: "Extract a process graph from a transcript or document",
		Long: `Extract reads a markdown transcript and produces a process graph as
JSON, using the configured chat-completion model. Structured process
documents (.json, .yaml) are parsed directly without calling the model.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runExtract(cmd.Context(), args[0], opts)
		},
	}
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output path (default <input>.process.json)")
	cmd.Flags().StringVar(&opts.model, "model", "", "chat-completion model")
	cmd.Flags().IntVar(&opts.maxTokens, "max-tokens", 0, "completion token limit")
	cmd.Flags().Float64Var(&opts.temperature, "temperature", 0, "sampling temperature")
	cmd.Flags().IntVar(&opts.attempts, "attempts", 0, "extraction attempts before giving up")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "re-extract even when cached")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "bypass the cache entirely")
	return cmd
}

func (c *CLI) runExtract(ctx context.Context, path string, opts *extractOpts) error {
	settings, err := c.loadSettings()
	if err != nil {
		return err
	}
	runner, err := c.newRunner(ctx, settings, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	popts := c.pipelineOptions(settings)
	popts.File = path
	popts.Refresh = opts.refresh
	if opts.model != "" {
		popts.Model = opts.model
	}
	if opts.maxTokens > 0 {
		popts.MaxTokens = opts.maxTokens
	}
	if opts.temperature > 0 {
		popts.Temperature = opts.temperature
	}
	if opts.attempts > 0 {
		popts.Attempts = opts.attempts
	}
	if popts.Mode() == pipeline.ModeLLM && popts.APIKey == "" {
		return fmt.Errorf("OPENAI_API_KEY is not set (required to extract from %s)", filepath.Base(path))
	}

	spinner := NewSpinner(ctx, fmt.Sprintf("Extracting process from %s", filepath.Base(path)))
	spinner.Start()
	result, cached, err := runner.ExtractWithCacheInfo(ctx, popts)
	if err != nil {
		spinner.StopWithError(fmt.Sprintf("Extraction failed: %v", err))
		return err
	}
	if ctx.Err() != nil {
		spinner.Stop()
		return ctx.Err()
	}
	spinner.StopWithSuccess(fmt.Sprintf("Extracted %s", StyleHighlight.Render(result.Process.Name)))

	out := opts.output
	if out == "" {
		out = strings.TrimSuffix(path, filepath.Ext(path)) + ".process.json"
	}
	if err := process.ExportJSON(result.Process, out); err != nil {
		return fmt.Errorf("write process: %w", err)
	}

	printFile(out)
	printGraphStats(len(result.Process.Nodes), len(result.Process.Edges), len(result.Process.Actors), cached)
	for _, w := range result.Warnings {
		printWarning(w)
	}
	printNextStep(fmt.Sprintf("%s layout %s", appName, out))
	return nil
}
