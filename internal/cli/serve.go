package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/laneflow/laneflow/internal/server"
	"github.com/laneflow/laneflow/pkg/cache"
	"github.com/laneflow/laneflow/pkg/config"
	"github.com/laneflow/laneflow/pkg/integrations/miro"
	"github.com/laneflow/laneflow/pkg/observability"
	"github.com/laneflow/laneflow/pkg/publish"
	"github.com/laneflow/laneflow/pkg/store"
)

type serveOpts struct {
	addr    string
	noCache bool
}

func (c *CLI) serveCommand() *cobra.Command {
	opts := &serveOpts{}
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the laneflow HTTP API",
		Long: `Serve exposes the pipeline over HTTP: process documents backed by the
configured store, extraction, layout, rendering and board publishing.
The server shuts down gracefully on interrupt.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.runServe(cmd.Context(), opts)
		},
	}
	cmd.Flags().StringVar(&opts.addr, "addr", "", "listen address (default from settings)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "bypass the cache entirely")
	return cmd
}

func (c *CLI) runServe(ctx context.Context, opts *serveOpts) error {
	settings, err := c.loadSettings()
	if err != nil {
		return err
	}
	addr := opts.addr
	if addr == "" {
		addr = settings.Server.Addr
	}

	observability.SetPipelineHooks(&logPipelineHooks{logger: c.Logger})
	observability.SetCacheHooks(&logCacheHooks{logger: c.Logger})
	observability.SetHTTPHooks(&logHTTPHooks{logger: c.Logger})

	st, err := c.newStore(ctx, settings)
	if err != nil {
		return err
	}
	// The request context is gone by shutdown time, so closing uses a
	// fresh one.
	defer st.Close(context.Background())

	runner, err := c.newRunner(ctx, settings, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	var publisher *publish.Publisher
	if settings.Miro.Token != "" {
		client := miro.NewClient(runner.Cache, settings.Miro.Token, cache.TTLHTTP)
		publisher = publish.NewPublisher(client, c.Logger)
	}

	srv := server.New(server.Config{
		Store:     st,
		Runner:    runner,
		Publisher: publisher,
		Options:   c.pipelineOptions(settings),
		Logger:    c.Logger,
	})

	c.Logger.Info("laneflow API listening", "addr", addr, "store", settings.Store.Backend)
	return srv.ListenAndServe(ctx, addr)
}

func (c *CLI) newStore(ctx context.Context, settings *config.Settings) (store.Store, error) {
	if settings.Store.Backend == "mongo" {
		st, err := store.NewMongoStore(ctx, settings.Store.MongoURI, settings.Store.Database)
		if err != nil {
			return nil, fmt.Errorf("connect mongo: %w", err)
		}
		return st, nil
	}
	return store.NewMemoryStore(), nil
}

// logPipelineHooks mirrors pipeline stage events into the server log.
type logPipelineHooks struct {
	observability.NoopPipelineHooks
	logger *log.Logger
}

func (h *logPipelineHooks) OnExtractComplete(_ context.Context, mode, model string, nodeCount int, duration time.Duration, err error) {
	if err != nil {
		h.logger.Warn("extract failed", "mode", mode, "model", model, "err", err)
		return
	}
	h.logger.Debug("extract complete", "mode", mode, "model", model, "nodes", nodeCount, "took", duration.Round(time.Millisecond))
}

func (h *logPipelineHooks) OnLayoutComplete(_ context.Context, diagramType string, duration time.Duration, err error) {
	if err != nil {
		h.logger.Warn("layout failed", "type", diagramType, "err", err)
		return
	}
	h.logger.Debug("layout complete", "type", diagramType, "took", duration.Round(time.Millisecond))
}

func (h *logPipelineHooks) OnRenderComplete(_ context.Context, formats []string, duration time.Duration, err error) {
	if err != nil {
		h.logger.Warn("render failed", "formats", formats, "err", err)
		return
	}
	h.logger.Debug("render complete", "formats", formats, "took", duration.Round(time.Millisecond))
}

// logCacheHooks surfaces cache effectiveness at debug level.
type logCacheHooks struct {
	observability.NoopCacheHooks
	logger *log.Logger
}

func (h *logCacheHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "stage", keyType)
}

func (h *logCacheHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "stage", keyType)
}

// logHTTPHooks records outgoing platform API calls.
type logHTTPHooks struct {
	observability.NoopHTTPHooks
	logger *log.Logger
}

func (h *logHTTPHooks) OnResponse(_ context.Context, method, host, _ string, statusCode int, duration time.Duration) {
	h.logger.Debug("platform call", "method", method, "host", host, "status", statusCode, "took", duration.Round(time.Millisecond))
}

func (h *logHTTPHooks) OnError(_ context.Context, method, host, _ string, err error) {
	h.logger.Warn("platform call failed", "method", method, "host", host, "err", err)
}
