package scene

import (
	"context"
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"

	"github.com/matzehuels/orchard/pkg/integrations/tetrio"
	"github.com/matzehuels/orchard/pkg/render/canvas"
)

var avatarShadow = color.NRGBA{0, 0, 0, 160}

// Commentary renders the commentator overlay on the first background frame.
// Commentators are spread evenly across the width; a fallback profile shows
// as "USER<n>" with the placeholder avatar.
func Commentary(ctx context.Context, env *Env, people []tetrio.Profile) image.Image {
	ct := env.Theme.Commentary
	pal := env.Theme.Palette
	w, h := ct.Width, ct.Height
	fw, fh := float64(w), float64(h)
	// Positions are fractions of the frame, measured from the bottom edge.
	at := func(fx, fy float64) (float64, float64) { return fx * fw, (1 - fy) * fh }

	bg := fill(env.background(ctx, env.Theme.Assets.Background, w, h, 1), w, h)
	c := canvas.FromImage(bg.Frames[0], 0)

	c.Rect(canvas.Box(13, 13, fw-20, fh-20), canvas.Style{Stroke: pal.Accent, LineWidth: 5})
	c.Rect(canvas.Box(10, 10, fw-20, fh-20), canvas.Style{Stroke: pal.Gold, LineWidth: 5})

	lx, ly := at(0.97, 0.92)
	c.DrawImage(square(env.asset(ctx, env.Theme.Assets.Logo), ct.LogoSize), lx, ly, 1, 0.5)

	tx, ty := at(0.5, 0.94)
	c.TextGlow(ct.Title, tx, ty, canvas.TextStyle{
		Font: env.Display, Size: ct.TitleSize, Color: color.White, AX: 0.5, AY: 0.5,
	}, pal.Gold, 8)

	for i, p := range people {
		fx := (float64(i) + 0.5) / float64(len(people))
		drawCommentator(ctx, c, env, p, i, fx, at)
	}
	return c.Image()
}

func drawCommentator(ctx context.Context, c *canvas.Canvas, env *Env, p tetrio.Profile, i int, fx float64, at func(fx, fy float64) (float64, float64)) {
	ct := env.Theme.Commentary

	avatar := env.Library.Placeholder()
	if !p.Fallback {
		avatar = env.remote(ctx, p.AvatarURL)
	}
	name := commentatorName(p, i)
	avatar = canvas.Rounded(square(avatar, ct.AvatarSize), 50)
	x, y := at(fx, 0.60)
	c.DrawImage(canvas.DropShadow(avatar, avatarShadow, 12, 10, 10), x, y, 0.5, 0.5)

	_, ny := at(fx, 0.43)
	label(c, name, x, ny, canvas.TextStyle{Font: env.Display, Size: ct.NameSize, Color: ct.Ink}, ct.NameBox, nil)

	if p.Fallback {
		return
	}
	for j, s := range p.Socials {
		if j == tetrio.MaxSocials {
			break
		}
		var icon image.Image
		if file := env.Theme.Icon(s.Service); file != "" {
			if img, err := env.Library.Image(file); err == nil {
				icon = img
			} else {
				env.Logger.Debug("skipping icon", "service", s.Service, "err", err)
			}
		}
		_, sy := at(fx, 0.32-0.09*float64(j))
		label(c, s.Name, x, sy, canvas.TextStyle{Font: env.Font, Size: ct.SocialSize, Color: ct.Ink}, ct.SocialBox, icon)
	}
}

// commentatorName is the panel caption for the i-th commentator.
func commentatorName(p tetrio.Profile, i int) string {
	if p.Fallback {
		return fmt.Sprintf("USER%d", i+1)
	}
	return p.DisplayName()
}

// label draws s in a rounded box centred on (x, y), with an optional icon
// before the text.
func label(c *canvas.Canvas, s string, x, y float64, st canvas.TextStyle, box color.Color, icon image.Image) {
	const pad = 20
	iconSize := int(st.Size * 1.2)
	tw := st.Measure(s)
	w := tw + 2*pad
	if icon != nil {
		w += float64(iconSize) + 10
	}
	h := st.Size + pad
	left := x - w/2
	c.RoundedRect(canvas.Box(left, y-h/2, w, h), 10, canvas.Style{Fill: box})

	tx := left + pad
	if icon != nil {
		c.DrawImage(imaging.Fit(icon, iconSize, iconSize, imaging.Lanczos), tx, y, 0, 0.5)
		tx += float64(iconSize) + 10
	}
	st.AX, st.AY = 0, 0.5
	c.Text(s, tx, y, st)
}
