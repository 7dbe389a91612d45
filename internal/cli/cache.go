package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/laneflow/laneflow/pkg/config"
)

func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect and manage the laneflow cache",
	}
	cmd.AddCommand(c.cacheInfoCommand())
	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())
	return cmd
}

func (c *CLI) cacheInfoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show cache backend, entry count and size",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			return c.runCacheInfo()
		},
	}
}

func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached entries",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			return c.runCacheClear()
		},
	}
}

func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			return c.runCachePath()
		},
	}
}

func (c *CLI) runCacheInfo() error {
	settings, err := c.loadSettings()
	if err != nil {
		return err
	}
	switch settings.Cache.Backend {
	case "none":
		printInfo("Cache is disabled")
	case "redis":
		printKeyValue("Backend", "redis")
		printKeyValue("Address", settings.Cache.RedisAddr)
	default:
		dir, err := c.fileCacheDir(settings)
		if err != nil {
			return err
		}
		entries, size, err := cacheStats(dir)
		if err != nil {
			return fmt.Errorf("scan cache: %w", err)
		}
		printKeyValue("Backend", "file")
		printKeyValue("Directory", dir)
		printKeyValue("Entries", strconv.Itoa(entries))
		printKeyValue("Size", formatBytes(size))
	}
	return nil
}

func (c *CLI) runCacheClear() error {
	settings, err := c.loadSettings()
	if err != nil {
		return err
	}
	switch settings.Cache.Backend {
	case "none":
		printInfo("Cache is disabled")
	case "redis":
		printInfo("Redis entries expire by TTL; use redis-cli FLUSHDB to drop them now")
	default:
		dir, err := c.fileCacheDir(settings)
		if err != nil {
			return err
		}
		removed, err := clearDir(dir)
		if err != nil {
			return fmt.Errorf("clear cache: %w", err)
		}
		printSuccess(fmt.Sprintf("Removed %s cached entries", StyleNumber.Render(strconv.Itoa(removed))))
	}
	return nil
}

func (c *CLI) runCachePath() error {
	settings, err := c.loadSettings()
	if err != nil {
		return err
	}
	if settings.Cache.Backend != "file" {
		return fmt.Errorf("cache backend %q has no local path", settings.Cache.Backend)
	}
	dir, err := c.fileCacheDir(settings)
	if err != nil {
		return err
	}
	// Plain output for scripting.
	fmt.Println(dir)
	return nil
}

func (c *CLI) fileCacheDir(settings *config.Settings) (string, error) {
	if settings.Cache.Dir != "" {
		return settings.Cache.Dir, nil
	}
	return cacheDir()
}

// cacheStats counts files and bytes under dir.
func cacheStats(dir string) (entries int, size int64, err error) {
	err = filepath.Walk(dir, func(_ string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			entries++
			size += info.Size()
		}
		return nil
	})
	return entries, size, err
}

// clearDir removes every file under dir, then the emptied
// subdirectories, leaving dir itself in place.
func clearDir(dir string) (int, error) {
	var files, dirs []string
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if path == dir {
			return nil
		}
		if info.IsDir() {
			dirs = append(dirs, path)
		} else {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	removed := 0
	for _, f := range files {
		if err := os.Remove(f); err != nil {
			return removed, err
		}
		removed++
	}
	// Walk yields parents before children, so removal runs backwards.
	for i := len(dirs) - 1; i >= 0; i-- {
		if err := os.Remove(dirs[i]); err != nil {
			return removed, err
		}
	}
	return removed, nil
}

func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(n)/float64(div), "KMGTPE"[exp])
}
