package scene

import (
	"context"
	"fmt"
	"image"
	"image/color"

	"github.com/matzehuels/orchard/pkg/layout"
	"github.com/matzehuels/orchard/pkg/render/anim"
	"github.com/matzehuels/orchard/pkg/render/canvas"
	"github.com/matzehuels/orchard/pkg/render/text"
)

// textStroke outlines bracket text so it stays legible on both box colours.
var textStroke = color.Gray{Y: 0x80}

// Bracket renders the double-elimination bracket for results over the
// bracket background. The output has the background's pixel size; the theme
// width and height only size the generated fallback. It returns the frames
// together with the resolved layout, which the topology and JSON exports
// reuse.
func Bracket(ctx context.Context, env *Env, results map[string][2]layout.Entry) (*anim.Sequence, *layout.Layout, error) {
	bt := env.Theme.Bracket
	bg := env.background(ctx, env.Theme.Assets.BracketBack, bt.Width, bt.Height, bt.Frames)
	size := bg.Bounds().Size()

	l, err := bracketLayout(env, results, size)
	if err != nil {
		return nil, nil, err
	}

	fg := drawBracket(ctx, env, l, size)
	seq := anim.Compose(bg, fg)
	if bt.DelayMS > 0 {
		seq.Delay = ms(bt.DelayMS)
	}
	c := bt.Crop
	seq = anim.Crop(seq, anim.Insets{Left: c.Left, Top: c.Top, Right: c.Right, Bottom: c.Bottom})
	return seq, l, nil
}

// BracketLayout resolves the bracket plan on the theme's grid without
// drawing it. The figure spans the bracket background in units.
func BracketLayout(env *Env, results map[string][2]layout.Entry) (*layout.Layout, error) {
	bt := env.Theme.Bracket
	return bracketLayout(env, results, env.backgroundSize(env.Theme.Assets.BracketBack, bt.Width, bt.Height))
}

func bracketLayout(env *Env, results map[string][2]layout.Entry, size image.Point) (*layout.Layout, error) {
	bt := env.Theme.Bracket
	plan := layout.Bracket(bt.Grid(), results, bt.Labels)
	plan.Width = float64(size.X) / bt.Unit
	plan.Height = float64(size.Y) / bt.Unit
	l, err := plan.Resolve()
	if err != nil {
		return nil, fmt.Errorf("resolve bracket: %w", err)
	}
	return l, nil
}

// drawBracket draws the transparent foreground: slots, connectors and logo.
func drawBracket(ctx context.Context, env *Env, l *layout.Layout, size image.Point) image.Image {
	bt := env.Theme.Bracket
	c := canvas.New(size.X, size.Y, bt.Unit)

	for _, g := range l.Slots {
		drawSlot(c, env, g)
	}
	lw := points(bt.LineWidth, bt.Unit)
	for _, conn := range l.Connectors {
		c.Polyline(conn.Path, env.Theme.Palette.Line, lw)
	}

	if bt.LogoSize > 0 {
		size := int(bt.LogoSize * bt.Unit)
		logo := square(env.asset(ctx, env.Theme.Assets.Logo), size)
		c.DrawImage(logo, l.Width, l.Height, 1, 0)
	}
	return c.Image()
}

// drawSlot draws one match: two entry boxes, their value boxes and the
// optional title label.
func drawSlot(c *canvas.Canvas, env *Env, g layout.Geometry) {
	p := env.Theme.Palette
	unit := env.Theme.Bracket.Unit
	side := p.Win
	if g.Side == layout.Losers {
		side = p.Loss
	}

	size := points(g.FontSize, unit)
	measure := measurer(env.Font)
	st := canvas.TextStyle{
		Font:         env.Font,
		Color:        p.Text,
		AY:           0.5,
		Outline:      textStroke,
		OutlineWidth: 1,
	}

	for i, e := range g.Entries {
		c.Rect(g.Boxes[i], canvas.Style{Fill: side, Stroke: p.Line, LineWidth: 1})
		c.Rect(g.Values[i], canvas.Style{Fill: p.Box, Stroke: p.Line, LineWidth: 1})

		at := g.NameAt(i)
		maxW := c.Len(g.Boxes[i].Width() - 2*g.Inset)
		name := st
		name.Size = text.Fit(e.Name, maxW, size, size/3, measure)
		c.Text(e.Name, at.X, at.Y, name)

		if e.Value != "" {
			v := g.ValueAt(i)
			value := st
			value.AX = 0.5
			value.Size = text.Fit(e.Value, c.Len(g.Values[i].Width())-4, size, size/3, measure)
			c.Text(e.Value, v.X, v.Y, value)
		}
	}

	if g.HasLabel {
		c.Rect(g.LabelBox, canvas.Style{Fill: p.Box, Stroke: p.Line, LineWidth: 1})
		label := st
		label.AX = 0.5
		label.Size = text.Fit(g.Label, c.Len(g.LabelBox.Width())-4, size, size/3, measure)
		c.Text(g.Label, g.LabelBox.CenterX(), g.LabelBox.CenterY(), label)
	}
}

// points converts a size in points to pixels at unit pixels per figure unit
// (a 100 px unit is one inch at 100 dpi).
func points(pt, unit float64) float64 {
	return pt * unit / 72
}
