// Package cli implements the orchard command-line interface.
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

	"github.com/matzehuels/orchard/pkg/buildinfo"
	"github.com/matzehuels/orchard/pkg/cache"
	"github.com/matzehuels/orchard/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "orchard"

	// redisPrefix namespaces orchard keys in a shared Redis.
	redisPrefix = "orchard:"
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

	// Global flags
	theme   string
	noCache bool
	redis   string
}

// New creates a new CLI instance logging to w. Timestamps are formatted
// as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Orchard draws tournament stream graphics",
		Long:         `Orchard renders the overlays of a tournament stream: the double-elimination bracket, player cards, versus screens, the commentary panel, the donor scroll and wall, and the promotional poster.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.PersistentFlags().StringVar(&c.theme, "theme", pipeline.DefaultTheme, "theme preset or theme file (.toml, .yaml)")
	root.PersistentFlags().BoolVar(&c.noCache, "no-cache", false, "disable the profile and artifact cache")
	_ = root.RegisterFlagCompletionFunc("theme", completeThemes)
	root.PersistentFlags().StringVar(&c.redis, "redis", os.Getenv("ORCHARD_REDIS"), "use the Redis cache at this address instead of the file cache")

	root.AddCommand(c.bracketCommand())
	root.AddCommand(c.topologyCommand())
	root.AddCommand(c.cardCommand())
	root.AddCommand(c.versusCommand())
	root.AddCommand(c.commentaryCommand())
	root.AddCommand(c.donorsCommand())
	root.AddCommand(c.posterCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.themesCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context) (*pipeline.Runner, error) {
	backend, err := c.newCache(ctx)
	if err != nil {
		return nil, err
	}
	runner := pipeline.NewRunner(backend, c.Logger, pipeline.Deps{})
	if c.redis != "" {
		// Artifacts in a shared Redis are keyed per release.
		runner.Keyer = cache.NewScopedKeyer(nil, buildinfo.Version+":")
	}
	return runner, nil
}

func (c *CLI) newCache(ctx context.Context) (cache.Cache, error) {
	if c.noCache {
		return cache.NewNullCache(), nil
	}
	if c.redis != "" {
		rc, err := cache.NewRedisCache(ctx, c.redis, redisPrefix)
		if err != nil {
			return nil, fmt.Errorf("redis cache: %w", err)
		}
		c.Logger.Debug("using redis cache", "addr", c.redis)
		return rc, nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/orchard/).
func cacheDir() (string, error) {
	return cache.DefaultDir()
}

// =============================================================================
// Options Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
// Empty selects the scene's default format.
func parseFormats(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// outputPaths maps every format to the file it is written to. A single
// format is written to output as given; several formats share output's
// base name with their own extensions. Without output the scene name is used.
func outputPaths(output, scene string, formats []string) map[string]string {
	paths := make(map[string]string, len(formats))
	if output != "" && len(formats) == 1 {
		paths[formats[0]] = output
		return paths
	}
	base := scene
	if output != "" {
		base = strings.TrimSuffix(output, filepath.Ext(output))
	}
	for _, f := range formats {
		paths[f] = base + "." + f
	}
	return paths
}
