package scene

import (
	"image"
	"math"

	"github.com/disintegration/imaging"

	"github.com/matzehuels/orchard/pkg/render/anim"
	"github.com/matzehuels/orchard/pkg/render/canvas"
	"github.com/matzehuels/orchard/pkg/theme"
)

// CardFlip animates the reveal from back to front. Each frame shows the
// back while the rotation angle exceeds 90 degrees and the front after,
// squeezed horizontally by |cos(angle)| and centred on the frame.
func CardFlip(front, back image.Image, ct theme.CardTheme) *anim.Sequence {
	n := max(ct.FlipFrames, 2)
	seq := &anim.Sequence{Frames: make([]image.Image, n), Delay: ms(ct.FlipDelayMS), Loop: true}
	for i := range n {
		seq.Frames[i] = flipFrame(front, back, flipAngle(i, n, ct.FlipSpeed), ct.FlipWidth, ct.FlipHeight)
	}
	return seq
}

// flipAngle returns the rotation of frame i of n in degrees, from 180 (back
// facing) down to 0, repeated speed times over the sequence.
func flipAngle(i, n int, speed float64) float64 {
	progress := float64(i) / float64(n-1)
	adjusted := math.Mod(progress*speed, 1)
	return 180 - adjusted*180
}

func flipFrame(front, back image.Image, angle float64, w, h int) image.Image {
	face := front
	if angle > 90 {
		face = back
	}
	b := face.Bounds()
	scaled := int(float64(b.Dx()) * math.Abs(math.Cos(angle*math.Pi/180)))

	c := canvas.New(w, h, 0)
	if scaled > 0 {
		img := imaging.Resize(face, scaled, b.Dy(), imaging.Lanczos)
		c.DrawImage(img, float64(w)/2, float64(h)/2, 0.5, 0.5)
	}
	return c.Image()
}
