package scene

import (
	"context"
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/matzehuels/orchard/pkg/render/anim"
	"github.com/matzehuels/orchard/pkg/render/canvas"
	"github.com/matzehuels/orchard/pkg/render/text"
)

var (
	eventBox    = color.NRGBA{0, 0, 0, 128}
	eventBorder = color.NRGBA{255, 255, 255, 100}
	gradientEnd = color.NRGBA{0, 0, 0, 100}
)

// Poster renders the event announcement over the background: logo, outlined
// title, the boxed date and call to action, and a sign-up QR code when the
// theme names a URL. The poster has the background's size.
func Poster(ctx context.Context, env *Env) (*anim.Sequence, error) {
	pt := env.Theme.Poster
	bg := env.background(ctx, env.Theme.Assets.Background, pt.Width, pt.Height, pt.Frames)
	w, h := bg.Bounds().Dx(), bg.Bounds().Dy()
	fw, fh := float64(w), float64(h)

	c := canvas.New(w, h, 0)
	if pt.Gradient {
		c.Gradient(canvas.Box(0, 0, fw, fh), color.Transparent, gradientEnd, true)
	}

	lw := w / 6
	logo := imaging.Resize(env.asset(ctx, env.Theme.Assets.Logo), lw, 0, imaging.Lanczos)
	c.DrawImage(logo, float64(w-lw-30), 30, 0, 0)

	title := canvas.TextStyle{
		Font:         env.Display,
		Color:        color.White,
		AX:           0.5,
		AY:           1,
		Outline:      env.Theme.Palette.Shadow,
		OutlineWidth: 2,
	}
	title.Size = text.Fit(pt.Title, fw-100, pt.TitleSize, 24, measurer(env.Display))
	c.TextGlow(pt.Title, fw/2, fh-600, title, color.White, pt.Glow)

	event := canvas.TextStyle{Font: env.Font, Size: pt.EventSize, Color: color.White, AX: 0.5, AY: 1}
	event.Size = text.Fit(pt.Date, fw-150, pt.EventSize, 12, measurer(env.Font))
	cta := event
	cta.Size = text.Fit(pt.CTA, fw-150, pt.CTASize, 12, measurer(env.Font))

	bw := max(event.Measure(pt.Date), cta.Measure(pt.CTA)) + 50
	bh := event.Size + cta.Size + 60
	by := fh - 250
	c.Rect(canvas.Box((fw-bw)/2, by, bw, bh), canvas.Style{Fill: eventBox, Stroke: eventBorder, LineWidth: 3})
	ey := by + 15
	c.Text(pt.Date, fw/2, ey, event)
	c.Text(pt.CTA, fw/2, ey+event.Size+20, cta)

	if pt.SignupURL != "" {
		qr, err := signupCode(pt.SignupURL, pt.QRSize)
		if err != nil {
			return nil, err
		}
		c.DrawImage(qr, float64(w-pt.QRSize-30), float64(h-pt.QRSize-30), 0, 0)
	}

	return anim.Compose(bg, c.Image()), nil
}

func signupCode(url string, size int) (image.Image, error) {
	q, err := qrcode.New(url, qrcode.Medium)
	if err != nil {
		return nil, fmt.Errorf("sign-up qr code: %w", err)
	}
	q.BackgroundColor = color.White
	q.ForegroundColor = color.Black
	return q.Image(size), nil
}
