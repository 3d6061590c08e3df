package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/orchard/pkg/pipeline"
)

// sceneOpts holds the output flags shared by every scene command.
type sceneOpts struct {
	output  string // output file (single format) or base path (multiple)
	formats string // comma-separated formats; empty selects the scene default
	refresh bool   // bypass cached profiles, donors and artifacts
}

// register adds the shared output flags for scene to cmd.
func (o *sceneOpts) register(cmd *cobra.Command, scene string) {
	formats := pipeline.SceneFormats(scene)
	usage := "output format: " + formats[0]
	if len(formats) > 1 {
		usage = fmt.Sprintf("output format(s): %s (default), %s (comma-separated)", formats[0], strings.Join(formats[1:], ", "))
	}
	cmd.Flags().StringVarP(&o.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&o.formats, "format", "f", "", usage)
	cmd.Flags().BoolVar(&o.refresh, "refresh", false, "bypass cached profiles, donors and artifacts")
}

// runScene executes one scene and writes every requested artifact.
func (c *CLI) runScene(ctx context.Context, opts pipeline.Options, so *sceneOpts) error {
	opts.Theme = c.theme
	opts.Formats = parseFormats(so.formats)
	opts.Refresh = so.refresh
	opts.Logger = c.Logger
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	runner, err := c.newRunner(ctx)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	res, err := runner.Execute(ctx, opts)
	if err != nil {
		return err
	}
	for _, w := range res.Warnings {
		printWarning("%s", w)
	}

	paths := outputPaths(so.output, opts.Scene, opts.Formats)
	for _, format := range opts.Formats {
		path := paths[format]
		if err := writeArtifact(path, res.Artifacts[format]); err != nil {
			return err
		}
		printFile(path)
	}
	printStats(res.Frames, res.CacheHit)
	prog.done(fmt.Sprintf("Rendered %s", opts.Scene))
	return nil
}

// writeArtifact writes data to path, creating parent directories.
func writeArtifact(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// progress logs completion of an operation with its elapsed time.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs e.g. "Rendered bracket (1.234s)".
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}
