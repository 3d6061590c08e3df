package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/orchard/pkg/assets"
	"github.com/matzehuels/orchard/pkg/cache"
	"github.com/matzehuels/orchard/pkg/integrations/matcherino"
	"github.com/matzehuels/orchard/pkg/integrations/tetrio"
	"github.com/matzehuels/orchard/pkg/observability"
	"github.com/matzehuels/orchard/pkg/scene"
)

// Cache lifetimes of upstream responses.
const (
	ProfileTTL = time.Hour
	DonorTTL   = 10 * time.Minute
)

// Deps are the upstream clients of a runner. Nil clients are created on the
// runner's cache.
type Deps struct {
	Tetrio     *tetrio.Client
	Matcherino *matcherino.Client
}

// Runner encapsulates scene execution with caching.
//
// The Runner is stateless except for the cache, logger and clients; it
// doesn't store results. Multiple goroutines can safely use the same Runner
// with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
	Deps   Deps
}

// NewRunner creates a runner. A nil cache disables caching and a nil logger
// selects the default logger.
func NewRunner(c cache.Cache, logger *log.Logger, deps Deps) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	if deps.Tetrio == nil {
		deps.Tetrio = tetrio.NewClient(c, ProfileTTL)
	}
	if deps.Matcherino == nil {
		deps.Matcherino = matcherino.NewClient(c, DonorTTL)
	}
	return &Runner{
		Cache:  c,
		Keyer:  cache.NewDefaultKeyer(),
		Logger: logger,
		Deps:   deps,
	}
}

// Execute runs the load → render → encode pipeline with artifact caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{
		RunID:     uuid.NewString(),
		Scene:     opts.Scene,
		Artifacts: make(map[string][]byte),
	}
	logger := opts.Logger.With("run", result.RunID[:8], "scene", opts.Scene)
	opts.Logger = logger

	th, err := LoadTheme(opts)
	if err != nil {
		return nil, fmt.Errorf("theme: %w", err)
	}

	// Stage 1: Load
	hooks := observability.Pipeline()
	hooks.OnLoadStart(ctx, opts.Scene)
	start := time.Now()
	in, err := r.Load(ctx, opts)
	result.Stats.LoadTime = time.Since(start)
	hooks.OnLoadComplete(ctx, opts.Scene, result.Stats.LoadTime, err)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	result.Warnings = in.warnings
	result.DataHash = in.Hash()
	themeHash := th.Hash()
	logger.Debug("loaded inputs", "theme", th.Name, "data", result.DataHash[:12], "duration", result.Stats.LoadTime)

	if !opts.Refresh {
		if artifacts, ok := r.cached(ctx, opts, themeHash, result.DataHash); ok {
			result.Artifacts = artifacts
			result.CacheHit = true
			logger.Info("served from cache", "formats", opts.Formats)
			return result, nil
		}
	}

	lib := assets.NewLibrary(th.Assets.Dir, logger)
	fetcher := assets.NewFetcher(r.Cache, lib, logger)
	env := scene.NewEnv(th, lib, fetcher, logger)

	// Stage 2: Render
	hooks.OnRenderStart(ctx, opts.Scene)
	start = time.Now()
	out, err := Render(ctx, env, opts, in)
	result.Stats.RenderTime = time.Since(start)
	if out != nil && out.Frames != nil {
		result.Frames = out.Frames.Len()
	}
	hooks.OnRenderComplete(ctx, opts.Scene, result.Frames, result.Stats.RenderTime, err)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	logger.Info("rendered scene", "frames", result.Frames, "duration", result.Stats.RenderTime)

	// Stage 3: Encode
	start = time.Now()
	artifacts, err := Encode(ctx, env, opts, out)
	result.Stats.EncodeTime = time.Since(start)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts

	// Remote images are not part of the data hash, so output drawn with a
	// placeholder would outlive the outage that caused it.
	if n := fetcher.Failures(); n > 0 {
		logger.Warn("not caching artifacts", "failed_images", n)
		result.Warnings = append(result.Warnings, fmt.Sprintf("%d remote image(s) unavailable, output not cached", n))
		return result, nil
	}
	for format, data := range artifacts {
		key := r.Keyer.ArtifactKey(opts.ArtifactKeyOpts(format, themeHash, result.DataHash))
		if err := r.Cache.Set(ctx, key, data, ArtifactTTL); err != nil {
			logger.Warn("cache write failed", "format", format, "err", err)
			continue
		}
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}
	logger.Info("encoded outputs", "formats", opts.Formats, "duration", result.Stats.EncodeTime)
	return result, nil
}

// cached returns every requested artifact if all of them are in the cache.
func (r *Runner) cached(ctx context.Context, opts Options, themeHash, dataHash string) (map[string][]byte, bool) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		key := r.Keyer.ArtifactKey(opts.ArtifactKeyOpts(format, themeHash, dataHash))
		data, hit, err := r.Cache.Get(ctx, key)
		if err != nil || !hit {
			observability.Cache().OnCacheMiss(ctx, "artifact")
			return nil, false
		}
		observability.Cache().OnCacheHit(ctx, "artifact")
		artifacts[format] = data
	}
	return artifacts, true
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
