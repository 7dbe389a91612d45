// Package cli implements the laneflow command line interface.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/laneflow/laneflow/pkg/buildinfo"
	"github.com/laneflow/laneflow/pkg/cache"
	"github.com/laneflow/laneflow/pkg/config"
	"github.com/laneflow/laneflow/pkg/pipeline"
)

const appName = "laneflow"

// Log levels exposed to main.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI bundles the state shared by all commands.
type CLI struct {
	Logger     *log.Logger
	configPath string
}

// New builds a CLI writing logs to w at the given level.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel adjusts the logger level after flag parsing.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand assembles the laneflow command tree.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Turn process descriptions into positioned swimlane diagrams",
		Long: `Laneflow extracts business process graphs from meeting transcripts and
documents, lays them out as swimlane diagrams, and publishes the results
as rendered files, operating procedures, Miro boards and ClickUp tasks.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}
	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "path to settings file (default "+config.DefaultPath+")")

	root.AddCommand(c.extractCommand())
	root.AddCommand(c.validateCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.docsCommand())
	root.AddCommand(c.publishCommand())
	root.AddCommand(c.syncCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadSettings reads the settings file named by --config, falling back to
// the default path. A missing default file yields built-in defaults.
func (c *CLI) loadSettings() (*config.Settings, error) {
	path := c.configPath
	if path == "" {
		path = config.DefaultPath
	}
	settings, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	return settings, nil
}

// newRunner builds a pipeline runner backed by the configured cache.
func (c *CLI) newRunner(ctx context.Context, settings *config.Settings, noCache bool) (*pipeline.Runner, error) {
	backend, err := c.newCacheBackend(ctx, settings, noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(backend, nil, c.Logger), nil
}

// newCacheBackend selects the cache backend from settings. With noCache
// set, or when the backend cannot be reached, caching is disabled rather
// than failing the command.
func (c *CLI) newCacheBackend(ctx context.Context, settings *config.Settings, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	switch settings.Cache.Backend {
	case "none":
		return cache.NewNullCache(), nil
	case "redis":
		url := settings.Cache.RedisAddr
		if !strings.Contains(url, "://") {
			url = "redis://" + url
		}
		backend, err := cache.NewRedisCache(ctx, url)
		if err != nil {
			c.Logger.Warn("redis unavailable, caching disabled", "err", err)
			return cache.NewNullCache(), nil
		}
		return backend, nil
	default:
		dir := settings.Cache.Dir
		if dir == "" {
			var err error
			dir, err = cacheDir()
			if err != nil {
				c.Logger.Warn("no cache directory, caching disabled", "err", err)
				return cache.NewNullCache(), nil
			}
		}
		backend, err := cache.NewFileCache(dir)
		if err != nil {
			c.Logger.Warn("cache directory unusable, caching disabled", "err", err)
			return cache.NewNullCache(), nil
		}
		return backend, nil
	}
}

// pipelineOptions seeds pipeline options from settings. Command flags
// override individual fields afterwards.
func (c *CLI) pipelineOptions(settings *config.Settings) pipeline.Options {
	return pipeline.Options{
		Model:       settings.LLM.Model,
		MaxTokens:   settings.LLM.MaxTokens,
		Temperature: settings.LLM.Temperature,
		APIKey:      settings.LLM.APIKey,
		SpacingX:    settings.Layout.SpacingX,
		SpacingY:    settings.Layout.SpacingY,
		LaneHeight:  settings.Layout.LaneHeight,
		Logger:      c.Logger,
	}
}

// cacheDir returns the laneflow cache directory, creating it if needed.
// It honors XDG_CACHE_HOME and falls back to ~/.cache.
func cacheDir() (string, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		base = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(base, appName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create cache directory: %w", err)
	}
	return dir, nil
}

// parseFormats splits a comma separated format list and validates it.
func parseFormats(s string) ([]string, error) {
	parts := strings.Split(s, ",")
	formats := make([]string, 0, len(parts))
	for _, part := range parts {
		f := strings.ToLower(strings.TrimSpace(part))
		if f == "" {
			continue
		}
		formats = append(formats, f)
	}
	if len(formats) == 0 {
		return nil, fmt.Errorf("no output formats given")
	}
	if err := pipeline.ValidateFormats(formats); err != nil {
		return nil, err
	}
	return formats, nil
}
