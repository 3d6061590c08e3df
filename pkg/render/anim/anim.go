// Package anim builds and encodes frame sequences.
//
// Every animated graphic is a background [Sequence] with identical foreground
// content composited over each frame ([Compose]) or a per-frame function
// ([Map]). Sequences are encoded as looping GIFs with one fixed delay.
package anim

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"io"
	"time"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
)

// DefaultDelay is used for decoded sequences that carry no delay.
const DefaultDelay = 100 * time.Millisecond

// ErrEmpty is returned when an operation needs at least one frame.
var ErrEmpty = errors.New("empty sequence")

// Sequence is an ordered list of equally timed frames.
type Sequence struct {
	Frames []image.Image
	Delay  time.Duration
	Loop   bool
}

// Len returns the number of frames.
func (s *Sequence) Len() int { return len(s.Frames) }

// Bounds returns the bounds of the first frame.
func (s *Sequence) Bounds() image.Rectangle {
	if len(s.Frames) == 0 {
		return image.Rectangle{}
	}
	return s.Frames[0].Bounds()
}

// Static wraps one image as a single-frame sequence.
func Static(img image.Image, delay time.Duration) *Sequence {
	return &Sequence{Frames: []image.Image{img}, Delay: delay, Loop: true}
}

// Generated returns an n-frame animated diagonal gradient. It stands in for a
// theme background animation that is not available.
func Generated(w, h, n int, from, to color.Color) *Sequence {
	if n < 1 {
		n = 1
	}
	seq := &Sequence{Frames: make([]image.Image, n), Delay: DefaultDelay, Loop: true}
	span := float64(w + h)
	for i := range n {
		dc := gg.NewContext(w, h)
		shift := span * float64(i) / float64(n)
		g := gg.NewLinearGradient(-shift, 0, 2*span-shift, float64(h))
		g.AddColorStop(0, from)
		g.AddColorStop(0.25, to)
		g.AddColorStop(0.5, from)
		g.AddColorStop(0.75, to)
		g.AddColorStop(1, from)
		dc.SetFillStyle(g)
		dc.DrawRectangle(0, 0, float64(w), float64(h))
		dc.Fill()
		seq.Frames[i] = dc.Image()
	}
	return seq
}

// Decode reads a GIF and returns its fully composited frames. Only the first
// frame's delay is kept.
func Decode(r io.Reader) (*Sequence, error) {
	g, err := gif.DecodeAll(r)
	if err != nil {
		return nil, fmt.Errorf("decode gif: %w", err)
	}
	if len(g.Image) == 0 {
		return nil, ErrEmpty
	}

	bounds := image.Rect(0, 0, g.Config.Width, g.Config.Height)
	if bounds.Empty() {
		bounds = g.Image[0].Bounds()
	}
	cur := image.NewRGBA(bounds)
	seq := &Sequence{Frames: make([]image.Image, 0, len(g.Image)), Delay: DefaultDelay, Loop: g.LoopCount >= 0}
	if len(g.Delay) > 0 && g.Delay[0] > 0 {
		seq.Delay = time.Duration(g.Delay[0]) * 10 * time.Millisecond
	}

	for i, frame := range g.Image {
		var prev *image.RGBA
		disposal := byte(gif.DisposalNone)
		if i < len(g.Disposal) {
			disposal = g.Disposal[i]
		}
		if disposal == gif.DisposalPrevious {
			prev = cloneRGBA(cur)
		}
		draw.Draw(cur, frame.Bounds(), frame, frame.Bounds().Min, draw.Over)
		seq.Frames = append(seq.Frames, cloneRGBA(cur))

		switch disposal {
		case gif.DisposalBackground:
			draw.Draw(cur, frame.Bounds(), image.Transparent, image.Point{}, draw.Src)
		case gif.DisposalPrevious:
			cur = prev
		}
	}
	return seq, nil
}

func cloneRGBA(src *image.RGBA) *image.RGBA {
	dst := image.NewRGBA(src.Bounds())
	copy(dst.Pix, src.Pix)
	return dst
}

// Compose draws fg over every frame of bg. The foreground is rendered once by
// the caller and shared by all frames.
func Compose(bg *Sequence, fg image.Image) *Sequence {
	return Map(bg, func(_ int, frame image.Image) image.Image {
		b := frame.Bounds()
		out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(out, out.Bounds(), frame, b.Min, draw.Src)
		draw.Draw(out, out.Bounds(), fg, fg.Bounds().Min, draw.Over)
		return out
	})
}

// Map returns a sequence whose frame i is fn(i, bg.Frames[i]).
func Map(bg *Sequence, fn func(i int, frame image.Image) image.Image) *Sequence {
	out := &Sequence{Frames: make([]image.Image, len(bg.Frames)), Delay: bg.Delay, Loop: bg.Loop}
	for i, f := range bg.Frames {
		out.Frames[i] = fn(i, f)
	}
	return out
}

// Cycle returns n frames taken from seq in order, wrapping around.
func Cycle(seq *Sequence, n int) *Sequence {
	out := &Sequence{Frames: make([]image.Image, 0, n), Delay: seq.Delay, Loop: seq.Loop}
	if len(seq.Frames) == 0 {
		return out
	}
	for i := range n {
		out.Frames = append(out.Frames, seq.Frames[i%len(seq.Frames)])
	}
	return out
}

// Insets are pixel margins removed from each edge.
type Insets struct {
	Left, Top, Right, Bottom int
}

// Zero reports whether no margin is set.
func (in Insets) Zero() bool { return in == Insets{} }

// CropImage removes in from img.
func CropImage(img image.Image, in Insets) image.Image {
	b := img.Bounds()
	r := image.Rect(b.Min.X+in.Left, b.Min.Y+in.Top, b.Max.X-in.Right, b.Max.Y-in.Bottom)
	if r.Empty() {
		return img
	}
	return imaging.Crop(img, r)
}

// Crop removes in from every frame.
func Crop(seq *Sequence, in Insets) *Sequence {
	if in.Zero() {
		return seq
	}
	return Map(seq, func(_ int, f image.Image) image.Image { return CropImage(f, in) })
}

// Resize scales every frame to w x h. A zero dimension keeps the aspect ratio.
func Resize(seq *Sequence, w, h int) *Sequence {
	return Map(seq, func(_ int, f image.Image) image.Image {
		return imaging.Resize(f, w, h, imaging.Lanczos)
	})
}
