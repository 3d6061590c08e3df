// Package assets loads the static images and animations the scenes draw and
// downloads remote images with a placeholder fallback.
//
// A [Library] reads files relative to one directory (logo, placeholder,
// social icons, background GIF). A [Fetcher] downloads avatars, flags and
// rank badges. Neither fails a render for a missing image: lookups that
// cannot be served return the library placeholder and log a warning.
package assets

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"

	orcherrors "github.com/matzehuels/orchard/pkg/errors"
	"github.com/matzehuels/orchard/pkg/observability"
	"github.com/matzehuels/orchard/pkg/render/anim"
)

// PlaceholderName is the file used for missing images.
const PlaceholderName = "apple.png"

// PlaceholderSize is the edge length of the generated placeholder.
const PlaceholderSize = 256

// Library serves images from a directory and caches decoded results.
// It is safe for concurrent use.
type Library struct {
	dir    string
	logger *log.Logger

	mu     sync.Mutex
	images map[string]image.Image
	anims  map[string]*anim.Sequence

	placeholderOnce sync.Once
	placeholder     image.Image
}

// NewLibrary returns a library rooted at dir. A nil logger discards output.
func NewLibrary(dir string, logger *log.Logger) *Library {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Library{
		dir:    dir,
		logger: logger,
		images: make(map[string]image.Image),
		anims:  make(map[string]*anim.Sequence),
	}
}

// Dir returns the library root.
func (l *Library) Dir() string { return l.dir }

// Path resolves name inside the library, rejecting absolute and escaping paths.
func (l *Library) Path(name string) (string, error) {
	if err := orcherrors.ValidateAssetName(name); err != nil {
		return "", err
	}
	return filepath.Join(l.dir, filepath.FromSlash(name)), nil
}

// Image decodes the image file name. Results are cached.
func (l *Library) Image(name string) (image.Image, error) {
	l.mu.Lock()
	img, ok := l.images[name]
	l.mu.Unlock()
	if ok {
		return img, nil
	}

	path, err := l.Path(name)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, orcherrors.Wrap(orcherrors.ErrCodeFileNotFound, err, "asset %s", name)
	}
	img, err = imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, orcherrors.Wrap(orcherrors.ErrCodeInvalidData, err, "asset %s", name)
	}

	l.mu.Lock()
	l.images[name] = img
	l.mu.Unlock()
	return img, nil
}

// ImageOr returns the image name, or the placeholder if it cannot be loaded.
// An empty name selects the placeholder silently.
func (l *Library) ImageOr(ctx context.Context, name string) image.Image {
	if name == "" {
		return l.Placeholder()
	}
	img, err := l.Image(name)
	if err != nil {
		l.logger.Warn("using placeholder", "asset", name, "err", err)
		observability.Asset().OnFallback(ctx, name, err)
		return l.Placeholder()
	}
	return img
}

// Placeholder returns the placeholder image: the library's apple.png if it
// exists, otherwise a generated apple.
func (l *Library) Placeholder() image.Image {
	l.placeholderOnce.Do(func() {
		if img, err := l.Image(PlaceholderName); err == nil {
			l.placeholder = img
			return
		}
		l.placeholder = GeneratedPlaceholder(PlaceholderSize)
	})
	return l.placeholder
}

// Animation decodes the GIF file name. Results are cached and shared, so
// callers must not modify the frames.
func (l *Library) Animation(name string) (*anim.Sequence, error) {
	l.mu.Lock()
	seq, ok := l.anims[name]
	l.mu.Unlock()
	if ok {
		return seq, nil
	}

	path, err := l.Path(name)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, orcherrors.Wrap(orcherrors.ErrCodeFileNotFound, err, "animation %s", name)
	}
	defer f.Close()

	seq, err = anim.Decode(f)
	if err != nil {
		return nil, orcherrors.Wrap(orcherrors.ErrCodeInvalidData, err, "animation %s", name)
	}

	l.mu.Lock()
	l.anims[name] = seq
	l.mu.Unlock()
	return seq, nil
}

// AnimationOr returns the animation name, or an n-frame generated gradient
// of w x h between from and to if it cannot be loaded.
func (l *Library) AnimationOr(ctx context.Context, name string, w, h, n int, from, to color.Color) *anim.Sequence {
	if name != "" {
		seq, err := l.Animation(name)
		if err == nil {
			return seq
		}
		l.logger.Warn("using generated background", "asset", name, "err", err)
		observability.Asset().OnFallback(ctx, name, err)
	}
	return anim.Generated(w, h, n, from, to)
}

// GeneratedPlaceholder draws a size x size apple.
func GeneratedPlaceholder(size int) image.Image {
	s := float64(size)
	dc := gg.NewContext(size, size)

	dc.SetRGB255(214, 40, 40)
	dc.DrawCircle(s*0.38, s*0.56, s*0.3)
	dc.DrawCircle(s*0.62, s*0.56, s*0.3)
	dc.Fill()

	dc.SetRGB255(110, 70, 30)
	dc.SetLineWidth(s * 0.04)
	dc.DrawLine(s*0.5, s*0.3, s*0.54, s*0.1)
	dc.Stroke()

	dc.SetRGB255(76, 175, 80)
	dc.DrawEllipse(s*0.64, s*0.16, s*0.1, s*0.05)
	dc.Fill()

	dc.SetRGBA255(255, 255, 255, 90)
	dc.DrawEllipse(s*0.3, s*0.45, s*0.06, s*0.1)
	dc.Fill()
	return dc.Image()
}
