package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/laneflow/laneflow/pkg/cache"
	"github.com/laneflow/laneflow/pkg/config"
	"github.com/laneflow/laneflow/pkg/integrations/clickup"
	"github.com/laneflow/laneflow/pkg/integrations/miro"
	"github.com/laneflow/laneflow/pkg/layout"
	"github.com/laneflow/laneflow/pkg/process"
	"github.com/laneflow/laneflow/pkg/publish"
)

type syncOpts struct {
	output    string
	spaceID   string
	processID string
	author    string
	popCode   string
	skipBoard bool
	skipTasks bool
	skipDocs  bool
	noCache   bool
}

func (c *CLI) syncCommand() *cobra.Command {
	opts := &syncOpts{}
	cmd := &cobra.Command{
		Use:   "sync <process>",
		Short: "Publish a process to Miro and ClickUp in one run",
		Long: `Sync generates the operating documents, uploads the diagram to a Miro
board, creates the ClickUp folder, list and task structure, and
cross-links the two platforms. Each side can be skipped. The run
report is written as JSON next to the input.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runSync(cmd.Context(), args[0], opts)
		},
	}
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "run report path (default <input>.sync.json)")
	cmd.Flags().StringVar(&opts.spaceID, "space", "", "ClickUp space ID (default from settings)")
	cmd.Flags().StringVar(&opts.processID, "process-id", "", "process code used in the board name")
	cmd.Flags().StringVar(&opts.author, "author", "", "document author")
	cmd.Flags().StringVar(&opts.popCode, "pop-code", "", "procedure code (default POP-001)")
	cmd.Flags().BoolVar(&opts.skipBoard, "skip-board", false, "skip the Miro board")
	cmd.Flags().BoolVar(&opts.skipTasks, "skip-tasks", false, "skip the ClickUp structure")
	cmd.Flags().BoolVar(&opts.skipDocs, "skip-docs", false, "skip document generation")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "bypass the HTTP cache")
	return cmd
}

func (c *CLI) runSync(ctx context.Context, path string, opts *syncOpts) error {
	settings, err := c.loadSettings()
	if err != nil {
		return err
	}
	if !opts.skipBoard && settings.Miro.Token == "" {
		return fmt.Errorf("MIRO_TOKEN is not set (use --skip-board to sync without Miro)")
	}
	spaceID := opts.spaceID
	if spaceID == "" {
		spaceID = settings.ClickUp.SpaceID
	}
	if !opts.skipTasks && settings.ClickUp.Token == "" {
		c.Logger.Warn("CLICKUP_TOKEN is not set, skipping tasks")
		opts.skipTasks = true
	}

	p, err := process.ImportJSON(path)
	if err != nil {
		return fmt.Errorf("load process: %w", err)
	}

	backend, err := c.newCacheBackend(ctx, settings, opts.noCache)
	if err != nil {
		return err
	}
	defer backend.Close()

	var pub *publish.Publisher
	if !opts.skipBoard {
		client := miro.NewClient(backend, settings.Miro.Token, cache.TTLHTTP)
		pub = publish.NewPublisher(client, c.Logger)
	}
	var tasks publish.TaskClient
	if !opts.skipTasks {
		tasks = clickup.NewClient(backend, settings.ClickUp.Token, settings.ClickUp.TeamID, cache.TTLHTTP)
	}

	syncer := publish.NewSyncer(pub, tasks, c.Logger)
	syncer.Layout = layoutConfig(settings)

	spinner := NewSpinner(ctx, fmt.Sprintf("Syncing %s", p.Name))
	spinner.Start()
	result := syncer.SyncProcess(ctx, p, publish.SyncOptions{
		SpaceID:   spaceID,
		ProcessID: opts.processID,
		Author:    opts.author,
		POPCode:   opts.popCode,
		SkipBoard: opts.skipBoard,
		SkipTasks: opts.skipTasks,
		SkipDocs:  opts.skipDocs,
	})
	if ctx.Err() != nil {
		spinner.Stop()
		return ctx.Err()
	}
	if result.Success {
		spinner.StopWithSuccess(fmt.Sprintf("Synced %s", StyleHighlight.Render(p.Name)))
	} else {
		spinner.StopWithError(fmt.Sprintf("Sync of %s finished with errors", p.Name))
	}

	if result.MiroBoardURL != "" {
		printFile(result.MiroBoardURL)
	}
	if result.ClickUpListID != "" {
		printKeyValue("List", result.ClickUpListID)
		printDetail(fmt.Sprintf("%d tasks created", len(result.ClickUpTaskIDs)))
	}
	for _, w := range result.Warnings {
		printWarning(w)
	}
	for _, e := range result.Errors {
		printError(e)
	}

	out := opts.output
	if out == "" {
		base := strings.TrimSuffix(path, filepath.Ext(path))
		out = strings.TrimSuffix(base, ".process") + ".sync.json"
	}
	if err := writeSyncResult(result, out); err != nil {
		return err
	}
	printFile(out)

	if !result.Success {
		return fmt.Errorf("sync finished with %d error(s)", len(result.Errors))
	}
	return nil
}

// layoutConfig translates file settings into an engine config for the
// syncer, which positions diagrams itself.
func layoutConfig(settings *config.Settings) layout.Config {
	return layout.Config{
		SpacingX:     settings.Layout.SpacingX,
		SpacingY:     settings.Layout.SpacingY,
		LaneHeight:   settings.Layout.LaneHeight,
		StackSpacing: settings.Layout.StackSpacing,
		BaseWidth:    settings.Layout.BaseWidth,
		BaseHeight:   settings.Layout.BaseHeight,
	}
}

func writeSyncResult(result *publish.SyncResult, path string) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("encode sync result: %w", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
