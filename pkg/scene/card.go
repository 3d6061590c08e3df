package scene

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"

	"github.com/matzehuels/orchard/pkg/integrations/tetrio"
	"github.com/matzehuels/orchard/pkg/layout"
	"github.com/matzehuels/orchard/pkg/render/canvas"
	"github.com/matzehuels/orchard/pkg/render/text"
	"github.com/matzehuels/orchard/pkg/theme"
)

// Card front layout, in pixels.
const (
	nameY        = 50
	flagW, flagH = 40, 30
	avatarY      = 100
	avatarBorder = 8
	rankSize     = 70
	bannerHeight = 60
	statStep     = 60
	dotSize      = 5
	dotSpacing   = 10
	dotsX        = 120
)

var (
	nameShadow = color.NRGBA{128, 128, 128, 255}
	emptyDot   = color.NRGBA{90, 90, 90, 255}
	flavorInk  = color.NRGBA{211, 211, 211, 255}
)

// CardFront renders a player's card: name and flag, avatar, rank and rating,
// seed banner and the stats panel. A seed of zero hides the banner and an
// empty flavor hides the flavour line. Missing images never fail the card.
func CardFront(ctx context.Context, env *Env, p tetrio.Profile, seed int, flavor string) image.Image {
	ct := env.Theme.Card
	pal := env.Theme.Palette
	w, h := ct.Width, ct.Height
	fw, fh := float64(w), float64(h)
	c := canvas.New(w, h, 0)

	c.Rect(canvas.Box(0, 0, fw, fh), canvas.Style{Fill: ct.Face})
	drawPattern(c, env.Library.Placeholder(), ct.Pattern)
	border := float64(ct.BorderWidth)
	c.RoundedRect(canvas.Box(border/2, border/2, fw-border, fh-border), ct.Radius,
		canvas.Style{Stroke: pal.Accent, LineWidth: border})

	// Name, with the flag to its right when the country is public.
	flag, hasFlag := env.optional(ctx, p.FlagURL)
	name := p.DisplayName()
	st := canvas.TextStyle{
		Font:         env.Display,
		Color:        ct.Name,
		AY:           1,
		Shadow:       nameShadow,
		ShadowOffset: image.Pt(2, 2),
	}
	room := fw - 2*border - 20
	if hasFlag {
		room -= flagW + 10
	}
	st.Size = text.Fit(name, room, 36, 12, measurer(env.Display))
	total := st.Measure(name)
	if hasFlag {
		total += flagW + 10
	}
	x := (fw - total) / 2
	c.Text(name, x, nameY, st)
	if hasFlag {
		c.DrawImage(imaging.Resize(flag, flagW, flagH, imaging.Lanczos), x+st.Measure(name)+10, nameY+5, 0, 0)
	}

	// Avatar in a rounded frame.
	size := ct.AvatarSize
	ax := (fw - float64(size)) / 2
	c.RoundedRect(canvas.Box(ax-avatarBorder, avatarY-avatarBorder, float64(size+2*avatarBorder), float64(size+2*avatarBorder)), 10,
		canvas.Style{Fill: pal.Accent})
	c.DrawImage(square(env.remote(ctx, p.AvatarURL), size), ax, avatarY, 0, 0)

	// Rank badge and rating.
	rankY := float64(avatarY + size + 5)
	rankX := fw/2 - 150
	if badge, ok := env.optional(ctx, p.RankURL); ok {
		c.DrawImage(square(badge, rankSize), rankX, rankY, 0, 0)
	}
	c.Text(layout.FormatValue(p.TR)+"TR", rankX+rankSize+20, rankY+15, canvas.TextStyle{
		Font: env.Display, Size: 36, Color: ct.Name, AY: 1,
		Shadow: nameShadow, ShadowOffset: image.Pt(2, 2),
	})

	if seed > 0 {
		banner := canvas.Box(10, rankY+80, fw-20, bannerHeight)
		c.RoundedRect(banner, 20, canvas.Style{Fill: ct.Banner, Stroke: pal.Accent, LineWidth: 5})
		c.Text(fmt.Sprintf("Seed: #%d", seed), fw/2, banner.Bottom+bannerHeight/2, canvas.TextStyle{
			Font: env.Display, Size: 30, Color: pal.Box, AX: 0.5, AY: 0.5,
		})
	}

	panelTop := rankY + 130
	c.RoundedRect(canvas.Box(10, panelTop, fw-20, fh-10-panelTop), 10, canvas.Style{Fill: ct.Panel})
	drawStats(c, env, p, panelTop+20, fh-10, flavor != "")

	if flavor != "" {
		fs := canvas.TextStyle{Font: env.Font, Color: flavorInk, AX: 0.5, AY: 0}
		fs.Size = text.Fit(flavor, fw-40, 18, 10, measurer(env.Font))
		c.Text(flavor, fw/2, fh-22, fs)
	}

	return canvas.Rounded(c.Image(), ct.Radius)
}

// drawStats draws one dotted bar per configured stat between top and bottom.
// Rows tighten to leave room for the flavour line.
func drawStats(c *canvas.Canvas, env *Env, p tetrio.Profile, top, bottom float64, flavor bool) {
	ct := env.Theme.Card
	if len(ct.Stats) == 0 {
		return
	}
	step := float64(statStep)
	if flavor {
		step = math.Min(step, (bottom-top-30)/float64(len(ct.Stats)))
	}
	label := canvas.TextStyle{Font: env.Display, Size: 25, Color: color.White, AY: 1}
	value := canvas.TextStyle{Font: env.Font, Size: 18, Color: color.White, AY: 1}

	for i, s := range ct.Stats {
		y := top + float64(i)*step
		v := statValue(p, s.Name)
		c.Text(s.Name, 20, y, label)

		filled := 0
		if s.Max > 0 {
			filled = int(math.Round(math.Min(v/s.Max, 1) * float64(ct.Dots)))
		}
		for d := range ct.Dots {
			col := color.Color(emptyDot)
			if d < filled {
				col = s.Color
			}
			x := float64(dotsX + d*dotSpacing)
			c.RoundedRect(canvas.Box(x, y+10, dotSize, dotSize), dotSize/2.0, canvas.Style{Fill: col})
		}
		c.Text(layout.FormatValue(v), float64(dotsX+ct.Dots*dotSpacing+10), y+4, value)
	}
}

func statValue(p tetrio.Profile, name string) float64 {
	switch name {
	case "PPS":
		return p.PPS
	case "APM":
		return p.APM
	case "VS":
		return p.VS
	case "AR":
		return p.AR
	}
	return 0
}

// drawPattern tiles a tinted copy of the placeholder diagonally across c.
func drawPattern(c *canvas.Canvas, img image.Image, tint theme.Color) {
	tile := canvas.Silhouette(square(img, 100), tint)
	for i := -200; i < c.Width()+100; i += 90 {
		for j := -100; j < c.Height()+100; j += 90 {
			x := i + int(math.Floor(float64(j)/30))*10
			c.DrawImage(tile, float64(x), float64(j), 0, 0)
		}
	}
}

// CardBack renders the shared card back: gradient, pattern, logo and the
// event title.
func CardBack(ctx context.Context, env *Env) image.Image {
	ct := env.Theme.Card
	w, h := ct.Width, ct.Height
	fw, fh := float64(w), float64(h)
	c := canvas.New(w, h, 0)

	c.Gradient(canvas.Box(0, 0, fw, fh), ct.BackTop, ct.BackBottom, true)
	c.Tile(square(env.Library.Placeholder(), 40), float64(ct.PatternAlpha)/255)
	border := float64(ct.BorderWidth)
	c.RoundedRect(canvas.Box(border/2, border/2, fw-border, fh-border), ct.Radius,
		canvas.Style{Stroke: env.Theme.Palette.Accent, LineWidth: border})

	logo := square(env.asset(ctx, env.Theme.Assets.Logo), ct.LogoSize)
	c.DrawImage(logo, fw/2, fh/2+50, 0.5, 0.5)

	if n := len(ct.BackTitle); n > 0 {
		size := text.FitAll(ct.BackTitle, fw-40, 60, 12, 2, measurer(env.Display))
		lh := size * 1.2
		st := canvas.TextStyle{
			Font: env.Display, Size: size, Color: ct.Banner, AX: 0.5, AY: 0.5,
			Shadow: color.NRGBA{0, 0, 0, 160}, ShadowOffset: image.Pt(2, 2),
		}
		y := fh/3 - lh*float64(n-1)/2
		for i, line := range ct.BackTitle {
			c.Text(line, fw/2, y+float64(i)*lh, st)
		}
	}

	return canvas.Rounded(c.Image(), ct.Radius)
}
