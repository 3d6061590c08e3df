package scene

import (
	"context"
	"image"
	"image/color"
	"slices"

	"github.com/disintegration/imaging"

	"github.com/matzehuels/orchard/pkg/layout"
	"github.com/matzehuels/orchard/pkg/render/anim"
	"github.com/matzehuels/orchard/pkg/render/canvas"
	"github.com/matzehuels/orchard/pkg/render/text"
	"github.com/matzehuels/orchard/pkg/tournament"
)

// Donor entry layout, in pixels from the entry's top edge.
const (
	donorTextX   = 20
	donorAmountX = 400
	donorTextY   = 10
	commentY     = 40
	commentLead  = 26
)

// DonorStrip draws the donor list, highest contribution first, repeated so
// that any window of the visible height starting within the first cycle is
// covered. It returns the strip and the cycle length in pixels.
func DonorStrip(env *Env, donors []tournament.Donor) (image.Image, int) {
	dt := env.Theme.Donors
	sorted := slices.Clone(donors)
	tournament.SortDonors(sorted)

	n := len(sorted)
	cycle := dt.EntryHeight * n
	copies := 2
	for cycle > 0 && copies*cycle < cycle+dt.Height {
		copies++
	}
	height := max(cycle*copies, dt.Height)

	c := canvas.New(dt.Width, height, 0)
	c.Clear(dt.Background)
	for i := range n * copies {
		drawDonor(c, env, sorted[i%n], i)
	}
	return c.Image(), cycle
}

func drawDonor(c *canvas.Canvas, env *Env, d tournament.Donor, i int) {
	dt := env.Theme.Donors
	y := float64(i * dt.EntryHeight)
	w := float64(dt.Width)

	if i > 0 {
		c.Polyline([]layout.Point{{X: 10, Y: y}, {X: w - 10, Y: y}}, dt.Divider, 1)
	}
	name := canvas.TextStyle{Font: env.Font, Size: dt.NameSize, Color: dt.NameColor, AY: 1}
	c.Text("Donor: "+d.Name, donorTextX, y+donorTextY, name)
	amount := name
	amount.Color = dt.AmountColor
	c.Text("Amount: "+d.Contribution(), donorAmountX, y+donorTextY, amount)

	comment := canvas.TextStyle{Font: env.Font, Size: dt.CommentSize, Color: dt.CommentColor, AY: 1}
	lines := text.Wrap("Comment: "+d.Comment, w-80, comment.Measure)
	room := commentRoom(dt.EntryHeight)
	for k, line := range lines {
		if k == room {
			break
		}
		c.Text(line, donorTextX, y+commentY+float64(k*commentLead), comment)
	}
}

// commentRoom is how many comment lines fit in an entry below the name row.
// Lines past it are dropped so a long comment never runs into the next entry.
func commentRoom(entryHeight int) int {
	return max((entryHeight-commentY)/commentLead, 1)
}

// DonorScroll animates the donor list scrolling through a window of the
// theme's visible height. The strip holds the list twice, so the sequence
// has 2 x entry height x N / speed frames and loops seamlessly; frame k
// shows the strip at offset (-k x speed) mod (entry height x N).
func DonorScroll(env *Env, donors []tournament.Donor) *anim.Sequence {
	dt := env.Theme.Donors
	delay := ms(dt.DelayMS)
	if len(donors) == 0 {
		c := canvas.New(dt.Width, dt.Height, 0)
		c.Clear(dt.Background)
		return anim.Static(c.Image(), delay)
	}

	strip, cycle := DonorStrip(env, donors)
	speed := max(dt.Speed, 1)
	n := max(2*cycle/speed, 1)
	seq := &anim.Sequence{Frames: make([]image.Image, n), Delay: delay, Loop: true}
	for k := range n {
		off := ((-k*speed)%cycle + cycle) % cycle
		seq.Frames[k] = imaging.Crop(strip, image.Rect(0, off, dt.Width, off+dt.Height))
	}
	return seq
}

var titleShadow = color.NRGBA{0, 0, 0, 128}

// DonorWall frames a donor scroll on the wall background: the background is
// cycled to the scroll's length and each scroll frame is scaled and blended
// over it under the title. The wall has the background's size.
func DonorWall(ctx context.Context, env *Env, scroll *anim.Sequence) *anim.Sequence {
	dt := env.Theme.Donors
	bg := env.background(ctx, env.Theme.Assets.WallBackground, dt.WallWidth, dt.WallHeight, scroll.Len())
	bg = anim.Cycle(bg, scroll.Len())

	sw := int(float64(scroll.Bounds().Dx()) * dt.WallScale)
	opacity := float64(dt.WallAlpha) / 255
	title := canvas.TextStyle{
		Font: env.Font, Size: dt.TitleSize, Color: color.White, AX: 0.5, AY: 1,
		Shadow: titleShadow, ShadowOffset: image.Pt(2, 2),
	}

	out := anim.Map(bg, func(i int, frame image.Image) image.Image {
		c := canvas.FromImage(frame, 0)
		panel := imaging.Resize(scroll.Frames[i], sw, 0, imaging.Lanczos)
		c.Overlay(panel, image.Pt(dt.WallX, dt.WallY), opacity)
		c.Text(dt.Title, float64(c.Width())/2, 10, title)
		return c.Image()
	})
	out.Delay = scroll.Delay
	out.Loop = true
	return out
}
