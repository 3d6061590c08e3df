package canvas

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"

	"github.com/matzehuels/orchard/pkg/fonts"
	"github.com/matzehuels/orchard/pkg/layout"
	"github.com/matzehuels/orchard/pkg/render/text"
)

// Canvas is a drawing surface. It is not safe for concurrent use.
type Canvas struct {
	dc   *gg.Context
	unit float64
}

// New returns a transparent w x h pixel canvas. A positive unit selects
// figure-unit coordinates with unit pixels per unit.
func New(w, h int, unit float64) *Canvas {
	return &Canvas{dc: gg.NewContext(w, h), unit: unit}
}

// FromImage returns a canvas initialised with a copy of img.
func FromImage(img image.Image, unit float64) *Canvas {
	b := img.Bounds()
	c := New(b.Dx(), b.Dy(), unit)
	c.dc.DrawImage(img, -b.Min.X, -b.Min.Y)
	return c
}

// Width returns the canvas width in pixels.
func (c *Canvas) Width() int { return c.dc.Width() }

// Height returns the canvas height in pixels.
func (c *Canvas) Height() int { return c.dc.Height() }

// Context exposes the underlying gg context in pixel coordinates.
func (c *Canvas) Context() *gg.Context { return c.dc }

// Image returns the canvas contents.
func (c *Canvas) Image() image.Image { return c.dc.Image() }

// X converts a canvas x coordinate to pixels.
func (c *Canvas) X(x float64) float64 {
	if c.unit <= 0 {
		return x
	}
	return x * c.unit
}

// Y converts a canvas y coordinate to pixels, flipping the axis in unit mode.
func (c *Canvas) Y(y float64) float64 {
	if c.unit <= 0 {
		return y
	}
	return float64(c.dc.Height()) - y*c.unit
}

// Len converts a canvas length to pixels.
func (c *Canvas) Len(v float64) float64 {
	if c.unit <= 0 {
		return v
	}
	return v * c.unit
}

// PointPx converts a layout point to pixels.
func (c *Canvas) PointPx(p layout.Point) (float64, float64) {
	return c.X(p.X), c.Y(p.Y)
}

// Style describes a filled and/or stroked shape. Nil colours are skipped.
type Style struct {
	Fill      color.Color
	Stroke    color.Color
	LineWidth float64
}

// Clear fills the whole canvas with col.
func (c *Canvas) Clear(col color.Color) {
	c.dc.SetColor(col)
	c.dc.Clear()
}

// pixelRect converts a canvas rectangle to a pixel-space top-left rectangle.
func (c *Canvas) pixelRect(r layout.Rect) (x, y, w, h float64) {
	if c.unit <= 0 {
		return r.Left, r.Bottom, r.Width(), r.Height()
	}
	return c.X(r.Left), c.Y(r.Top), c.Len(r.Width()), c.Len(r.Height())
}

// Rect draws r. In pixel mode Bottom is the top edge (smaller y).
func (c *Canvas) Rect(r layout.Rect, st Style) {
	x, y, w, h := c.pixelRect(r)
	c.dc.DrawRectangle(x, y, w, h)
	c.paint(st)
}

// RoundedRect draws r with corner radius px.
func (c *Canvas) RoundedRect(r layout.Rect, radius float64, st Style) {
	x, y, w, h := c.pixelRect(r)
	c.dc.DrawRoundedRectangle(x, y, w, h, radius)
	c.paint(st)
}

// Box builds a rectangle from a corner and a size in canvas coordinates.
// In unit mode (x, y) is the bottom-left corner, in pixel mode the top-left.
func Box(x, y, w, h float64) layout.Rect {
	return layout.Rect{Left: x, Right: x + w, Bottom: y, Top: y + h}
}

func (c *Canvas) paint(st Style) {
	switch {
	case st.Fill != nil && st.Stroke != nil:
		c.dc.SetColor(st.Fill)
		c.dc.FillPreserve()
		c.stroke(st)
	case st.Fill != nil:
		c.dc.SetColor(st.Fill)
		c.dc.Fill()
	case st.Stroke != nil:
		c.stroke(st)
	default:
		c.dc.ClearPath()
	}
}

func (c *Canvas) stroke(st Style) {
	lw := st.LineWidth
	if lw <= 0 {
		lw = 1
	}
	c.dc.SetColor(st.Stroke)
	c.dc.SetLineWidth(lw)
	c.dc.Stroke()
}

// Polyline strokes the path through pts.
func (c *Canvas) Polyline(pts []layout.Point, col color.Color, lineWidth float64) {
	if len(pts) < 2 {
		return
	}
	c.dc.NewSubPath()
	for i, p := range pts {
		x, y := c.PointPx(p)
		if i == 0 {
			c.dc.MoveTo(x, y)
			continue
		}
		c.dc.LineTo(x, y)
	}
	c.dc.SetLineCap(gg.LineCapRound)
	c.dc.SetLineJoin(gg.LineJoinRound)
	c.stroke(Style{Stroke: col, LineWidth: lineWidth})
}

// Gradient fills r with a linear gradient from one colour to another,
// top to bottom when vertical, left to right otherwise.
func (c *Canvas) Gradient(r layout.Rect, from, to color.Color, vertical bool) {
	x, y, w, h := c.pixelRect(r)
	var g gg.Gradient
	if vertical {
		g = gg.NewLinearGradient(x, y, x, y+h)
	} else {
		g = gg.NewLinearGradient(x, y, x+w, y)
	}
	g.AddColorStop(0, from)
	g.AddColorStop(1, to)
	c.dc.SetFillStyle(g)
	c.dc.DrawRectangle(x, y, w, h)
	c.dc.Fill()
}

// DrawImage draws img with its anchor (ax, ay in [0, 1], relative to the image
// size) at canvas position (x, y).
func (c *Canvas) DrawImage(img image.Image, x, y, ax, ay float64) {
	c.dc.DrawImageAnchored(img, int(c.X(x)), int(c.Y(y)), ax, ay)
}

// Overlay blends img at pixel position pt with the given opacity in [0, 1].
func (c *Canvas) Overlay(img image.Image, pt image.Point, opacity float64) {
	c.dc = gg.NewContextForImage(imaging.Overlay(c.dc.Image(), img, pt, opacity))
}

// Tile repeats img across the canvas at the given opacity.
func (c *Canvas) Tile(img image.Image, opacity float64) {
	tile := Fade(img, opacity)
	b := tile.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return
	}
	for y := 0; y < c.Height(); y += b.Dy() {
		for x := 0; x < c.Width(); x += b.Dx() {
			c.dc.DrawImage(tile, x, y)
		}
	}
}

// TextStyle configures a string.
type TextStyle struct {
	Font   *fonts.Font
	Size   float64 // pixels
	Color  color.Color
	AX, AY float64 // AX: 0 left, 1 right; AY: 0 baseline, 1 top; 0.5 centres

	Shadow       color.Color // drawn under the text when set
	ShadowOffset image.Point // pixels

	Outline      color.Color // drawn around the text when set
	OutlineWidth float64     // pixels
}

// Measure returns the pixel width of s in st, after glyph filtering.
func (st TextStyle) Measure(s string) float64 {
	f := st.font()
	return f.Measure(text.Filter(s, f.Supports), st.Size)
}

func (st TextStyle) font() *fonts.Font {
	if st.Font == nil {
		return fonts.Default()
	}
	return st.Font
}

// Text draws s at canvas position (x, y).
func (c *Canvas) Text(s string, x, y float64, st TextStyle) {
	f := st.font()
	s = text.Filter(s, f.Supports)
	if s == "" {
		return
	}
	px, py := c.X(x), c.Y(y)
	c.dc.SetFontFace(f.Face(st.Size))

	if st.Shadow != nil {
		c.dc.SetColor(st.Shadow)
		c.dc.DrawStringAnchored(s, px+float64(st.ShadowOffset.X), py+float64(st.ShadowOffset.Y), st.AX, st.AY)
	}
	if st.Outline != nil {
		w := st.OutlineWidth
		if w <= 0 {
			w = 1
		}
		c.dc.SetColor(st.Outline)
		for _, d := range [][2]float64{{-w, 0}, {w, 0}, {0, -w}, {0, w}} {
			c.dc.DrawStringAnchored(s, px+d[0], py+d[1], st.AX, st.AY)
		}
	}
	col := st.Color
	if col == nil {
		col = color.White
	}
	c.dc.SetColor(col)
	c.dc.DrawStringAnchored(s, px, py, st.AX, st.AY)
}

// TextGlow draws s over a blurred copy of itself in glow.
func (c *Canvas) TextGlow(s string, x, y float64, st TextStyle, glow color.Color, radius float64) {
	layer := &Canvas{dc: gg.NewContext(c.Width(), c.Height()), unit: c.unit}
	layer.Text(s, x, y, TextStyle{Font: st.Font, Size: st.Size, Color: glow, AX: st.AX, AY: st.AY})
	c.dc.DrawImage(imaging.Blur(layer.Image(), radius), 0, 0)
	c.Text(s, x, y, st)
}
