package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/laneflow/laneflow/pkg/docs"
	"github.com/laneflow/laneflow/pkg/process"
)

type docsOpts struct {
	dir     string
	author  string
	popCode string
}

func (c *CLI) docsCommand() *cobra.Command {
	opts := &docsOpts{}
	cmd := &cobra.Command{
		Use:   "docs <process>",
		Short: "Generate operating documents from a process graph",
		Long: `Docs generates the full document family for a process: the operating
procedure (POP), one work instruction and one checklist per task, and
a SIPOC summary. Documents are written as markdown files named after
their document codes.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runDocs(cmd.Context(), args[0], opts)
		},
	}
	cmd.Flags().StringVarP(&opts.dir, "output", "o", "docs", "output directory")
	cmd.Flags().StringVar(&opts.author, "author", "", "document author")
	cmd.Flags().StringVar(&opts.popCode, "pop-code", "", "procedure code (default POP-001)")
	return cmd
}

type docFile struct {
	name    string
	content string
}

func (c *CLI) runDocs(_ context.Context, path string, opts *docsOpts) error {
	prog := newProgress(c.Logger)
	p, err := process.ImportJSON(path)
	if err != nil {
		return fmt.Errorf("load process: %w", err)
	}

	set, err := docs.GenerateSet(p, docs.SetOptions{Author: opts.author, POPCode: opts.popCode})
	if err != nil {
		return err
	}

	files, err := collectDocFiles(set, p.Name)
	if err != nil {
		return err
	}
	prog.done("generated %d documents", len(files))

	if err := os.MkdirAll(opts.dir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	printSuccess(fmt.Sprintf("Generated %s documents for %s",
		StyleNumber.Render(strconv.Itoa(len(files))), StyleHighlight.Render(p.Name)))
	for _, f := range files {
		target := filepath.Join(opts.dir, f.name)
		if err := os.WriteFile(target, []byte(f.content), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", target, err)
		}
		printFile(target)
	}
	return nil
}

// collectDocFiles renders every document in the set to markdown before
// anything touches the filesystem, so a template failure leaves no
// half-written document directory.
func collectDocFiles(set *docs.Set, processName string) ([]docFile, error) {
	var files []docFile

	md, err := set.POP.Markdown()
	if err != nil {
		return nil, err
	}
	files = append(files, docFile{name: set.POP.Code + ".md", content: md})

	for _, it := range set.Instructions {
		md, err := it.Markdown()
		if err != nil {
			return nil, err
		}
		files = append(files, docFile{name: it.Code + ".md", content: md})
	}
	for _, cl := range set.Checklists {
		md, err := cl.Markdown()
		if err != nil {
			return nil, err
		}
		files = append(files, docFile{name: cl.Code + ".md", content: md})
	}
	if set.SIPOC != nil {
		md, err := docs.SIPOCMarkdown(set.SIPOC, processName)
		if err != nil {
			return nil, err
		}
		files = append(files, docFile{name: "SIPOC.md", content: md})
	}
	return files, nil
}
