package scene

import (
	"context"
	"image"
	"image/color"

	"github.com/disintegration/imaging"

	"github.com/matzehuels/orchard/pkg/render/anim"
	"github.com/matzehuels/orchard/pkg/render/canvas"
)

// Versus places two cards at the left and right edges of the background and
// the glowing versus text between them. The output has the background's size
// and frame delay.
func Versus(ctx context.Context, env *Env, left, right image.Image) *anim.Sequence {
	vt := env.Theme.Versus
	bg := env.background(ctx, env.Theme.Assets.Background, vt.Width, vt.Height, vt.Frames)

	w, h := bg.Bounds().Dx(), bg.Bounds().Dy()
	cw := w / 3
	c := canvas.New(w, h, 0)
	c.DrawImage(imaging.Resize(left, cw, h, imaging.Lanczos), 0, 0, 0, 0)
	c.DrawImage(imaging.Resize(right, cw, h, imaging.Lanczos), float64(w-cw), 0, 0, 0)

	st := canvas.TextStyle{
		Font:         env.Display,
		Size:         vt.Size,
		Color:        color.White,
		AX:           0.5,
		AY:           0.5,
		Shadow:       env.Theme.Palette.Shadow,
		ShadowOffset: image.Pt(vt.ShadowOffset, vt.ShadowOffset),
	}
	c.TextGlow(vt.Text, float64(w)/2, float64(h)/2, st, color.White, vt.Glow)

	return anim.Compose(bg, c.Image())
}
