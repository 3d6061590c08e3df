package assets

import (
	"bytes"
	"context"
	"image"
	"io"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/disintegration/imaging"

	"github.com/matzehuels/orchard/pkg/cache"
	"github.com/matzehuels/orchard/pkg/integrations"
	"github.com/matzehuels/orchard/pkg/observability"
)

// DefaultImageTTL is how long downloaded images stay cached.
const DefaultImageTTL = 24 * time.Hour

// Fetcher downloads remote images, caching the raw bytes.
type Fetcher struct {
	client   *integrations.Client
	lib      *Library
	logger   *log.Logger
	failures atomic.Int64
}

// NewFetcher returns a fetcher storing images in backend and falling back to
// lib's placeholder. A nil backend disables caching.
func NewFetcher(backend cache.Cache, lib *Library, logger *log.Logger) *Fetcher {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Fetcher{
		client: integrations.NewClient(backend, "image:", DefaultImageTTL, nil),
		lib:    lib,
		logger: logger,
	}
}

// Client exposes the underlying HTTP client wrapper, e.g. for tests.
func (f *Fetcher) Client() *integrations.Client { return f.client }

// Failures returns how many non-empty URLs could not be served since the
// fetcher was created. Output drawn while it is non-zero shows placeholders
// or lacks optional images.
func (f *Fetcher) Failures() int { return int(f.failures.Load()) }

// Fetch downloads and decodes url.
func (f *Fetcher) Fetch(ctx context.Context, url string) (image.Image, error) {
	var data []byte
	err := f.client.Cached(ctx, url, false, &data, func() error {
		b, err := f.client.GetBytes(ctx, url)
		data = b
		return err
	})
	if err != nil {
		return nil, err
	}
	return imaging.Decode(bytes.NewReader(data))
}

// Image downloads url and returns the decoded image. It never fails: an
// empty url, a failed request or undecodable bytes yield the placeholder.
func (f *Fetcher) Image(ctx context.Context, url string) image.Image {
	if url == "" {
		return f.lib.Placeholder()
	}
	img, err := f.Fetch(ctx, url)
	if err != nil {
		f.failures.Add(1)
		f.logger.Warn("using placeholder", "url", url, "err", err)
		observability.Asset().OnFallback(ctx, url, err)
		return f.lib.Placeholder()
	}
	return img
}

// Optional downloads url and reports whether it succeeded, without falling
// back. Flags and rank badges are skipped rather than replaced.
func (f *Fetcher) Optional(ctx context.Context, url string) (image.Image, bool) {
	if url == "" {
		return nil, false
	}
	img, err := f.Fetch(ctx, url)
	if err != nil {
		f.failures.Add(1)
		f.logger.Debug("skipping image", "url", url, "err", err)
		return nil, false
	}
	return img, true
}
