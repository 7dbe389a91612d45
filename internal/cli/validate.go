package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/laneflow/laneflow/pkg/process"
)

type validateOpts struct {
	strict bool
}

func (c *CLI) validateCommand() *cobra.Command {
	opts := &validateOpts{}
	cmd := &cobra.Command{
		Use:   "validate <process>",
		Short: "Check a process graph for structural problems",
		Long: `Validate loads a process document and reports structural errors
(dangling edges, duplicate IDs, missing start or end events) and
warnings (unreachable nodes, unassigned actors). Errors make the
command fail; warnings only fail it with --strict.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runValidate(cmd.Context(), args[0], opts)
		},
	}
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "treat warnings as errors")
	return cmd
}

func (c *CLI) runValidate(_ context.Context, path string, opts *validateOpts) error {
	prog := newProgress(c.Logger)
	p, err := process.ImportJSON(path)
	if err != nil {
		return fmt.Errorf("load process: %w", err)
	}

	result := process.Validate(p)
	prog.done("validated %s", p.Name)

	for _, msg := range result.Errors {
		printError(msg)
	}
	for _, msg := range result.Warnings {
		printWarning(msg)
	}

	switch {
	case !result.Valid():
		printNewline()
		return fmt.Errorf("%s has %d error(s)", path, len(result.Errors))
	case opts.strict && len(result.Warnings) > 0:
		printNewline()
		return fmt.Errorf("%s has %d warning(s) (strict)", path, len(result.Warnings))
	default:
		printSuccess(fmt.Sprintf("%s is valid", StyleHighlight.Render(p.Name)))
		printDetail(fmt.Sprintf("%d nodes, %d edges, %d actors", len(p.Nodes), len(p.Edges), len(p.Actors)))
	}
	return nil
}
