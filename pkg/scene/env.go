package scene

import (
	"context"
	"image"
	"io"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/disintegration/imaging"

	"github.com/matzehuels/orchard/pkg/assets"
	"github.com/matzehuels/orchard/pkg/fonts"
	"github.com/matzehuels/orchard/pkg/render/anim"
	"github.com/matzehuels/orchard/pkg/render/text"
	"github.com/matzehuels/orchard/pkg/theme"
)

// Env holds the resources shared by all scenes of a run.
type Env struct {
	Theme   *theme.Theme
	Library *assets.Library
	Fetcher *assets.Fetcher // nil disables remote images
	Font    *fonts.Font     // bracket, donors, poster
	Display *fonts.Font     // cards, versus, commentary
	Logger  *log.Logger
}

// NewEnv loads the theme fonts and returns an env. A nil library is opened
// on the theme's asset directory; a font that fails to load falls back to
// the embedded Go fonts with a warning.
func NewEnv(th *theme.Theme, lib *assets.Library, fetcher *assets.Fetcher, logger *log.Logger) *Env {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if lib == nil {
		lib = assets.NewLibrary(th.Assets.Dir, logger)
	}
	env := &Env{
		Theme:   th,
		Library: lib,
		Fetcher: fetcher,
		Logger:  logger,
	}
	env.Font = env.loadFont(th.Assets.Font, fonts.Default())
	env.Display = env.loadFont(th.Assets.DisplayFont, fonts.DefaultBold())
	return env
}

func (e *Env) loadFont(name string, fallback *fonts.Font) *fonts.Font {
	if name == "" {
		return fallback
	}
	path := name
	if !filepath.IsAbs(path) {
		p, err := e.Library.Path(name)
		if err != nil {
			e.Logger.Warn("using default font", "font", name, "err", err)
			return fallback
		}
		path = p
	}
	f, err := fonts.Load(path)
	if err != nil {
		e.Logger.Warn("using default font", "font", name, "err", err)
		return fallback
	}
	return f
}

// remote downloads url, falling back to the placeholder.
func (e *Env) remote(ctx context.Context, url string) image.Image {
	if e.Fetcher == nil {
		return e.Library.Placeholder()
	}
	return e.Fetcher.Image(ctx, url)
}

// optional downloads url without a fallback.
func (e *Env) optional(ctx context.Context, url string) (image.Image, bool) {
	if e.Fetcher == nil {
		return nil, false
	}
	return e.Fetcher.Optional(ctx, url)
}

// asset loads a theme asset, falling back to the placeholder.
func (e *Env) asset(ctx context.Context, name string) image.Image {
	return e.Library.ImageOr(ctx, name)
}

// background loads the named animation, or a generated one of w x h with n
// frames. A decoded animation keeps its own size; scenes drawn over it take
// their output dimensions from its bounds.
func (e *Env) background(ctx context.Context, name string, w, h, n int) *anim.Sequence {
	p := e.Theme.Palette
	return e.Library.AnimationOr(ctx, name, w, h, n, p.BackgroundFrom, p.BackgroundTo)
}

// backgroundSize reports the pixel size the named background renders at
// without drawing it: the decoded animation's bounds, or w x h for the
// generated fallback.
func (e *Env) backgroundSize(name string, w, h int) image.Point {
	if name != "" {
		if seq, err := e.Library.Animation(name); err == nil {
			return seq.Bounds().Size()
		}
	}
	return image.Pt(w, h)
}

// fill resizes every background frame to cover w x h, cropping the excess
// around the centre.
func fill(seq *anim.Sequence, w, h int) *anim.Sequence {
	b := seq.Bounds()
	if b.Dx() == w && b.Dy() == h {
		return seq
	}
	return anim.Map(seq, func(_ int, f image.Image) image.Image {
		return imaging.Fill(f, w, h, imaging.Center, imaging.Lanczos)
	})
}

func square(img image.Image, size int) image.Image {
	return imaging.Resize(img, size, size, imaging.Lanczos)
}

// measurer measures s in f after dropping glyphs f cannot draw.
func measurer(f *fonts.Font) text.Measurer {
	return func(s string, size float64) float64 {
		return f.Measure(text.Filter(s, f.Supports), size)
	}
}

func ms(v int) time.Duration {
	return time.Duration(v) * time.Millisecond
}
