// Package fonts loads TrueType/OpenType fonts for raster rendering.
//
// The Go font family is compiled into the binary, so every scene can render
// without font files on disk. Theme fonts are loaded by path with [Load].
package fonts

import (
	"fmt"
	"os"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
)

// Font is a parsed font with glyph-coverage and measurement helpers.
// It is safe for concurrent use.
type Font struct {
	name string
	sf   *opentype.Font

	mu    sync.Mutex
	buf   sfnt.Buffer
	faces map[float64]font.Face // measurement faces, guarded by mu
}

// Parse parses font data. The name is used in errors and logs.
func Parse(name string, data []byte) (*Font, error) {
	sf, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font %s: %w", name, err)
	}
	return &Font{name: name, sf: sf, faces: make(map[float64]font.Face)}, nil
}

// Load reads and parses a font file.
func Load(path string) (*Font, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read font: %w", err)
	}
	return Parse(path, data)
}

var (
	regular, bold         *Font
	regularOnce, boldOnce sync.Once
)

// Default returns the embedded Go Regular font.
func Default() *Font {
	regularOnce.Do(func() { regular = mustParse("goregular", goregular.TTF) })
	return regular
}

// DefaultBold returns the embedded Go Bold font.
func DefaultBold() *Font {
	boldOnce.Do(func() { bold = mustParse("gobold", gobold.TTF) })
	return bold
}

func mustParse(name string, data []byte) *Font {
	f, err := Parse(name, data)
	if err != nil {
		panic(err)
	}
	return f
}

// Name returns the name the font was parsed with.
func (f *Font) Name() string { return f.name }

// Supports reports whether the font has a glyph for r.
func (f *Font) Supports(r rune) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	idx, err := f.sf.GlyphIndex(&f.buf, r)
	return err == nil && idx != 0
}

// Face returns a new face at size pixels. Faces are not safe for concurrent
// use, so each canvas takes its own.
func (f *Font) Face(size float64) font.Face {
	face, err := opentype.NewFace(f.sf, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		// NewFace only fails for invalid options.
		panic(err)
	}
	return face
}

// Measure returns the advance width of s at size pixels.
func (f *Font) Measure(s string, size float64) float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	face, ok := f.faces[size]
	if !ok {
		face = f.Face(size)
		f.faces[size] = face
	}
	return float64(font.MeasureString(face, s)) / 64
}
