package theme

import (
	orcherrors "github.com/matzehuels/orchard/pkg/errors"
	"github.com/matzehuels/orchard/pkg/layout"
)

// Validate checks the values the scenes divide by, index into or size
// canvases with.
func (t *Theme) Validate() error {
	bad := func(format string, args ...any) error {
		return orcherrors.New(orcherrors.ErrCodeInvalidTheme, format, args...)
	}

	b := t.Bracket
	switch {
	case b.Unit <= 0:
		return bad("bracket.unit must be positive")
	case b.Width <= 0 || b.Height <= 0:
		return bad("bracket.width and bracket.height must be positive")
	case len(b.Columns) < len(layout.BracketGrid.Columns):
		return bad("bracket.columns needs %d values, got %d", len(layout.BracketGrid.Columns), len(b.Columns))
	case len(b.Rows) < len(layout.BracketGrid.Rows):
		return bad("bracket.rows needs %d values, got %d", len(layout.BracketGrid.Rows), len(b.Rows))
	case b.Crop.Left < 0 || b.Crop.Top < 0 || b.Crop.Right < 0 || b.Crop.Bottom < 0:
		return bad("bracket.crop must not be negative")
	}
	for slot := range b.Labels {
		if !isBracketSlot(slot) {
			return bad("bracket.labels: unknown slot %q", slot)
		}
	}

	c := t.Card
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return bad("card.width and card.height must be positive")
	case c.AvatarSize <= 0 || c.AvatarSize > c.Width:
		return bad("card.avatar_size must be in (0, card.width]")
	case c.Dots <= 0:
		return bad("card.dots must be positive")
	case len(c.BackTitle) == 0:
		return bad("card.back_title needs at least one line")
	case c.FlipFrames < 2:
		return bad("card.flip_frames must be at least 2")
	case c.FlipSpeed <= 0:
		return bad("card.flip_speed must be positive")
	case c.FlipWidth < c.Width || c.FlipHeight < c.Height:
		return bad("card flip frame must fit the card")
	}
	for _, s := range c.Stats {
		if s.Max <= 0 {
			return bad("card.stats %s: max must be positive", s.Name)
		}
		switch s.Name {
		case "PPS", "APM", "VS", "AR":
		default:
			return bad("card.stats: unknown stat %q (use PPS, APM, VS or AR)", s.Name)
		}
	}

	if t.Versus.Size <= 0 || t.Versus.Width <= 0 || t.Versus.Height <= 0 {
		return bad("versus size and frame must be positive")
	}
	if t.Commentary.Width <= 0 || t.Commentary.Height <= 0 || t.Commentary.AvatarSize <= 0 {
		return bad("commentary frame and avatar size must be positive")
	}

	d := t.Donors
	switch {
	case d.Width <= 0 || d.Height <= 0:
		return bad("donors.width and donors.height must be positive")
	case d.EntryHeight <= 0:
		return bad("donors.entry_height must be positive")
	case d.Speed <= 0:
		return bad("donors.speed must be positive")
	case d.WallScale <= 0:
		return bad("donors.wall_scale must be positive")
	case d.WallWidth <= 0 || d.WallHeight <= 0:
		return bad("donors.wall_width and donors.wall_height must be positive")
	}

	p := t.Poster
	if p.TitleSize <= 0 || p.EventSize <= 0 || p.CTASize <= 0 {
		return bad("poster font sizes must be positive")
	}
	if p.SignupURL != "" {
		if err := orcherrors.ValidateURL(p.SignupURL); err != nil {
			return bad("poster.signup_url: %s", orcherrors.UserMessage(err))
		}
	}
	if p.Width <= 0 || p.Height <= 0 {
		return bad("poster.width and poster.height must be positive")
	}
	return nil
}

func isBracketSlot(name string) bool {
	for _, n := range layout.BracketSlotNames() {
		if n == name {
			return true
		}
	}
	return false
}

// Grid returns the bracket grid described by the theme.
func (b BracketTheme) Grid() layout.Grid {
	return layout.Grid{Columns: b.Columns, Rows: b.Rows, Shift: b.Shift}
}
