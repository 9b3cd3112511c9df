// Package cli implements the wellmap command-line interface.
package cli

import (
	"io"
	"os"
	"path/filepath"
	"runtime"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/wellmap/wellmap/pkg/buildinfo"
	"github.com/wellmap/wellmap/pkg/cache"
	"github.com/wellmap/wellmap/pkg/pipeline"
)

const appName = "wellmap"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	// Stdout receives command output.
	Stdout io.Writer

	// openViewer shows an image file to the user.
	openViewer func(path string, foreground bool) error
	goos       string
}

// New creates a CLI that logs to w at the given level.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger:     newLogger(w, level),
		Stdout:     os.Stdout,
		openViewer: openViewer,
		goos:       runtime.GOOS,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand returns the plate viewer command with every subcommand
// registered under it.
func (c *CLI) RootCommand() *cobra.Command {
	var verbose bool

	root := c.showCommand()
	root.Version = buildinfo.Resolved()
	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	root.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if verbose {
			c.SetLogLevel(LogDebug)
		}
		cmd.SetContext(withLogger(cmd.Context(), c.Logger))
	}

	root.AddCommand(c.tableCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.colorsCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())
	return root
}

// newRunner creates a pipeline runner backed by the file cache, or by no
// cache when noCache is set.
func (c *CLI) newRunner(noCache bool) *pipeline.Runner {
	return pipeline.NewRunner(c.newCache(noCache), c.Logger)
}

func (c *CLI) newCache(noCache bool) cache.Cache {
	if noCache {
		return cache.NewNullCache()
	}
	dir, err := cacheDir()
	if err != nil {
		c.Logger.Debug("caching disabled", "err", err)
		return cache.NewNullCache()
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		c.Logger.Warn("caching disabled", "dir", dir, "err", err)
		return cache.NewNullCache()
	}
	return fc
}

// cacheDir returns $WELLMAP_CACHE_DIR, or the XDG cache directory
// (~/.cache/wellmap by default).
func cacheDir() (string, error) {
	if dir := os.Getenv("WELLMAP_CACHE_DIR"); dir != "" {
		return dir, nil
	}
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
