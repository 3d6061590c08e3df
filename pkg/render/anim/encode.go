package anim

import (
	"fmt"
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"io"
	"time"
)

// Encode writes seq as a GIF. Frames are quantised to the Plan 9 palette with
// Floyd-Steinberg dithering.
func Encode(w io.Writer, seq *Sequence) error {
	if len(seq.Frames) == 0 {
		return ErrEmpty
	}
	delay := centiseconds(seq.Delay)
	out := &gif.GIF{
		Image:     make([]*image.Paletted, len(seq.Frames)),
		Delay:     make([]int, len(seq.Frames)),
		Disposal:  make([]byte, len(seq.Frames)),
		LoopCount: -1,
	}
	if seq.Loop {
		out.LoopCount = 0
	}
	for i, f := range seq.Frames {
		out.Image[i] = quantise(f)
		out.Delay[i] = delay
		out.Disposal[i] = gif.DisposalNone
	}
	if err := gif.EncodeAll(w, out); err != nil {
		return fmt.Errorf("encode gif: %w", err)
	}
	return nil
}

func centiseconds(d time.Duration) int {
	cs := int(d / (10 * time.Millisecond))
	if cs < 1 {
		return 1
	}
	return cs
}

func quantise(img image.Image) *image.Paletted {
	if p, ok := img.(*image.Paletted); ok {
		return p
	}
	b := img.Bounds()
	p := image.NewPaletted(image.Rect(0, 0, b.Dx(), b.Dy()), palette.Plan9)
	draw.FloydSteinberg.Draw(p, p.Bounds(), img, b.Min)
	return p
}
