// Package cli implements the canvaslayout command-line interface.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/canvaslayout/pkg/buildinfo"
	"github.com/matzehuels/canvaslayout/pkg/cache"
	"github.com/matzehuels/canvaslayout/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "canvaslayout"

	// defaultAddr is the listen address of the serve command.
	defaultAddr = ":8080"

	// defaultServePrefix scopes the serve command's cache keys.
	defaultServePrefix = "api:"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// Verbose reports whether debug logging is enabled.
func (c *CLI) Verbose() bool {
	return c.Logger.GetLevel() <= log.DebugLevel
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Canvaslayout scales fixed-design scenes onto arbitrary viewports",
		Long: `Canvaslayout lays out scenes authored against a fixed design size.

Each child carries a design-space box and per-axis positioning modes. A layout
pass resolves the scale factors for the given width and height constraints,
places every child and orders them back-to-front by depth.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.watchCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use. A nil keyer uses the
// default layout keys.
func (c *CLI) newRunner(ctx context.Context, backend string, noCache bool, keyer cache.Keyer) (*pipeline.Runner, error) {
	cc, err := newCache(ctx, backend, noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cc, keyer, c.Logger), nil
}

// scopedKeyer prefixes layout keys so several services can share one cache
// backend. An empty prefix keeps the default keys.
func scopedKeyer(prefix string) cache.Keyer {
	if prefix == "" {
		return nil
	}
	return cache.NewScopedKeyer(cache.NewDefaultKeyer(), prefix)
}

func newCache(ctx context.Context, backend string, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil && (backend == "" || backend == "file") {
		return cache.NewNullCache(), nil
	}
	return cache.Open(ctx, backend, dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/canvaslayout/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
