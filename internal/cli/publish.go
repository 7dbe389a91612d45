package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/laneflow/laneflow/pkg/cache"
	"github.com/laneflow/laneflow/pkg/diagram"
	"github.com/laneflow/laneflow/pkg/integrations/miro"
	"github.com/laneflow/laneflow/pkg/publish"
)

type publishOpts struct {
	board   string
	noCache bool
}

func (c *CLI) publishCommand() *cobra.Command {
	opts := &publishOpts{}
	cmd := &cobra.Command{
		Use:   "publish <diagram>",
		Short: "Upload a positioned diagram to a Miro board",
		Long: `Publish creates a Miro board and uploads the diagram's lanes, elements
and connectors at their computed positions. Requires MIRO_TOKEN in the
environment.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPublish(cmd.Context(), args[0], opts)
		},
	}
	cmd.Flags().StringVar(&opts.board, "board", "", "board name (default the diagram name)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "bypass the HTTP cache")
	return cmd
}

func (c *CLI) runPublish(ctx context.Context, path string, opts *publishOpts) error {
	settings, err := c.loadSettings()
	if err != nil {
		return err
	}
	if settings.Miro.Token == "" {
		return fmt.Errorf("MIRO_TOKEN is not set")
	}
	d, err := diagram.ReadDiagramFile(path)
	if err != nil {
		return fmt.Errorf("load diagram: %w", err)
	}

	backend, err := c.newCacheBackend(ctx, settings, opts.noCache)
	if err != nil {
		return err
	}
	defer backend.Close()

	client := miro.NewClient(backend, settings.Miro.Token, cache.TTLHTTP)
	publisher := publish.NewPublisher(client, c.Logger)

	spinner := NewSpinner(ctx, fmt.Sprintf("Uploading %s to Miro", d.Name))
	spinner.Start()
	up, err := publisher.Upload(ctx, &d, opts.board)
	if err != nil {
		spinner.StopWithError(fmt.Sprintf("Upload failed: %v", err))
		return err
	}
	if ctx.Err() != nil {
		spinner.Stop()
		return ctx.Err()
	}
	spinner.StopWithSuccess(fmt.Sprintf("Published %s", StyleHighlight.Render(d.Name)))

	if up.BoardURL != "" {
		printFile(up.BoardURL)
	}
	printKeyValue("Board", up.BoardID)
	printDetail(fmt.Sprintf("%d items, %d connectors", len(up.ItemIDs), up.ConnectorsCreated))
	if up.ConnectorsFailed > 0 {
		printWarning(fmt.Sprintf("%d connector(s) could not be created", up.ConnectorsFailed))
	}
	return nil
}
