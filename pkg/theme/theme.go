// Package theme configures the look of every scene.
//
// A [Theme] replaces the per-variant constants of hand-tuned graphics with
// one value: colours, fonts, asset names, label text and per-scene tuning.
// Built-in presets are returned by [Preset]; [Load] decodes a TOML or YAML
// file over [Default], so a file only needs the keys it changes:
//
//	# midnight-cup.toml
//	name = "midnight-cup"
//
//	[palette]
//	win = "#8ecae6"
//
//	[poster]
//	date = "March 1, 2025 - 8:00 PM UTC"
package theme

import (
	"encoding/json"
	"slices"
	"sort"

	"github.com/matzehuels/orchard/pkg/cache"
	orcherrors "github.com/matzehuels/orchard/pkg/errors"
)

// Theme is the complete configuration of all scenes.
type Theme struct {
	Name       string          `toml:"name" yaml:"name" json:"name"`
	Assets     Assets          `toml:"assets" yaml:"assets" json:"assets"`
	Palette    Palette         `toml:"palette" yaml:"palette" json:"palette"`
	Bracket    BracketTheme    `toml:"bracket" yaml:"bracket" json:"bracket"`
	Card       CardTheme       `toml:"card" yaml:"card" json:"card"`
	Versus     VersusTheme     `toml:"versus" yaml:"versus" json:"versus"`
	Commentary CommentaryTheme `toml:"commentary" yaml:"commentary" json:"commentary"`
	Donors     DonorsTheme     `toml:"donors" yaml:"donors" json:"donors"`
	Poster     PosterTheme     `toml:"poster" yaml:"poster" json:"poster"`
}

// Assets names files inside the asset directory. Empty font names select
// the built-in Go fonts; missing images fall back to the placeholder.
type Assets struct {
	Dir            string            `toml:"dir" yaml:"dir" json:"dir"`
	Font           string            `toml:"font" yaml:"font" json:"font"`                         // bracket, donors, poster
	DisplayFont    string            `toml:"display_font" yaml:"display_font" json:"display_font"` // cards, versus
	Logo           string            `toml:"logo" yaml:"logo" json:"logo"`
	Placeholder    string            `toml:"placeholder" yaml:"placeholder" json:"placeholder"`
	Background     string            `toml:"background" yaml:"background" json:"background"`
	BracketBack    string            `toml:"bracket_background" yaml:"bracket_background" json:"bracket_background"`
	WallBackground string            `toml:"wall_background" yaml:"wall_background" json:"wall_background"`
	Icons          map[string]string `toml:"icons" yaml:"icons" json:"icons"` // social service -> file
}

// Palette holds the shared colours.
type Palette struct {
	Win    Color `toml:"win" yaml:"win" json:"win"`       // winners-side entry boxes
	Loss   Color `toml:"loss" yaml:"loss" json:"loss"`    // losers-side entry boxes
	Text   Color `toml:"text" yaml:"text" json:"text"`    // text on boxes
	Box    Color `toml:"box" yaml:"box" json:"box"`       // value and label boxes
	Line   Color `toml:"line" yaml:"line" json:"line"`    // connectors and box edges
	Accent Color `toml:"accent" yaml:"accent" json:"accent"` // borders
	Gold   Color `toml:"gold" yaml:"gold" json:"gold"`
	Shadow Color `toml:"shadow" yaml:"shadow" json:"shadow"`
	// Generated background animation, used when no background asset loads.
	BackgroundFrom Color `toml:"background_from" yaml:"background_from" json:"background_from"`
	BackgroundTo   Color `toml:"background_to" yaml:"background_to" json:"background_to"`
}

// Insets are pixel margins.
type Insets struct {
	Left   int `toml:"left" yaml:"left" json:"left"`
	Top    int `toml:"top" yaml:"top" json:"top"`
	Right  int `toml:"right" yaml:"right" json:"right"`
	Bottom int `toml:"bottom" yaml:"bottom" json:"bottom"`
}

// BracketTheme tunes the bracket scene. Coordinates are figure units.
type BracketTheme struct {
	Unit      float64           `toml:"unit" yaml:"unit" json:"unit"` // pixels per unit
	Width     int               `toml:"width" yaml:"width" json:"width"`
	Height    int               `toml:"height" yaml:"height" json:"height"`
	Columns   []float64         `toml:"columns" yaml:"columns" json:"columns"`
	Rows      []float64         `toml:"rows" yaml:"rows" json:"rows"`
	Shift     float64           `toml:"shift" yaml:"shift" json:"shift"`
	LineWidth float64           `toml:"line_width" yaml:"line_width" json:"line_width"`
	LogoSize  float64           `toml:"logo_size" yaml:"logo_size" json:"logo_size"`
	Crop      Insets            `toml:"crop" yaml:"crop" json:"crop"`
	Labels    map[string]string `toml:"labels" yaml:"labels" json:"labels"`
	DelayMS   int               `toml:"delay_ms" yaml:"delay_ms" json:"delay_ms"`
	Frames    int               `toml:"frames" yaml:"frames" json:"frames"` // generated background only
}

// Stat is one bar of the card stats panel.
type Stat struct {
	Name  string  `toml:"name" yaml:"name" json:"name"` // PPS, APM, VS or AR
	Max   float64 `toml:"max" yaml:"max" json:"max"`
	Color Color   `toml:"color" yaml:"color" json:"color"`
}

// CardTheme tunes the card front, back and flip.
type CardTheme struct {
	Width        int      `toml:"width" yaml:"width" json:"width"`
	Height       int      `toml:"height" yaml:"height" json:"height"`
	Face         Color    `toml:"face" yaml:"face" json:"face"`
	Pattern      Color    `toml:"pattern" yaml:"pattern" json:"pattern"`
	Name         Color    `toml:"name" yaml:"name" json:"name"`
	Panel        Color    `toml:"panel" yaml:"panel" json:"panel"`
	Banner       Color    `toml:"banner" yaml:"banner" json:"banner"`
	AvatarSize   int      `toml:"avatar_size" yaml:"avatar_size" json:"avatar_size"`
	Stats        []Stat   `toml:"stats" yaml:"stats" json:"stats"`
	Dots         int      `toml:"dots" yaml:"dots" json:"dots"`
	BackTitle    []string `toml:"back_title" yaml:"back_title" json:"back_title"`
	BackTop      Color    `toml:"back_top" yaml:"back_top" json:"back_top"`
	BackBottom   Color    `toml:"back_bottom" yaml:"back_bottom" json:"back_bottom"`
	PatternAlpha uint8    `toml:"pattern_alpha" yaml:"pattern_alpha" json:"pattern_alpha"`
	BorderWidth  int      `toml:"border_width" yaml:"border_width" json:"border_width"`
	Radius       float64  `toml:"radius" yaml:"radius" json:"radius"`
	LogoSize     int      `toml:"logo_size" yaml:"logo_size" json:"logo_size"`
	FlipFrames   int      `toml:"flip_frames" yaml:"flip_frames" json:"flip_frames"`
	FlipSpeed    float64  `toml:"flip_speed" yaml:"flip_speed" json:"flip_speed"`
	FlipWidth    int      `toml:"flip_width" yaml:"flip_width" json:"flip_width"`
	FlipHeight   int      `toml:"flip_height" yaml:"flip_height" json:"flip_height"`
	FlipDelayMS  int      `toml:"flip_delay_ms" yaml:"flip_delay_ms" json:"flip_delay_ms"`
}

// VersusTheme tunes the versus screen.
type VersusTheme struct {
	Text         string  `toml:"text" yaml:"text" json:"text"`
	Size         float64 `toml:"size" yaml:"size" json:"size"`
	Glow         float64 `toml:"glow" yaml:"glow" json:"glow"`
	ShadowOffset int     `toml:"shadow_offset" yaml:"shadow_offset" json:"shadow_offset"`
	Width        int     `toml:"width" yaml:"width" json:"width"`
	Height       int     `toml:"height" yaml:"height" json:"height"`
	Frames       int     `toml:"frames" yaml:"frames" json:"frames"`
}

// CommentaryTheme tunes the commentator overlay.
type CommentaryTheme struct {
	Title      string  `toml:"title" yaml:"title" json:"title"`
	TitleSize  float64 `toml:"title_size" yaml:"title_size" json:"title_size"`
	Width      int     `toml:"width" yaml:"width" json:"width"`
	Height     int     `toml:"height" yaml:"height" json:"height"`
	AvatarSize int     `toml:"avatar_size" yaml:"avatar_size" json:"avatar_size"`
	NameSize   float64 `toml:"name_size" yaml:"name_size" json:"name_size"`
	SocialSize float64 `toml:"social_size" yaml:"social_size" json:"social_size"`
	NameBox    Color   `toml:"name_box" yaml:"name_box" json:"name_box"`
	SocialBox  Color   `toml:"social_box" yaml:"social_box" json:"social_box"`
	Ink        Color   `toml:"ink" yaml:"ink" json:"ink"`
	LogoSize   int     `toml:"logo_size" yaml:"logo_size" json:"logo_size"`
}

// DonorsTheme tunes the donor scroll and wall.
type DonorsTheme struct {
	Width        int     `toml:"width" yaml:"width" json:"width"`
	Height       int     `toml:"height" yaml:"height" json:"height"` // visible window
	EntryHeight  int     `toml:"entry_height" yaml:"entry_height" json:"entry_height"`
	Speed        int     `toml:"speed" yaml:"speed" json:"speed"` // pixels per frame
	DelayMS      int     `toml:"delay_ms" yaml:"delay_ms" json:"delay_ms"`
	NameSize     float64 `toml:"name_size" yaml:"name_size" json:"name_size"`
	CommentSize  float64 `toml:"comment_size" yaml:"comment_size" json:"comment_size"`
	Background   Color   `toml:"background" yaml:"background" json:"background"`
	Divider      Color   `toml:"divider" yaml:"divider" json:"divider"`
	NameColor    Color   `toml:"name_color" yaml:"name_color" json:"name_color"`
	AmountColor  Color   `toml:"amount_color" yaml:"amount_color" json:"amount_color"`
	CommentColor Color   `toml:"comment_color" yaml:"comment_color" json:"comment_color"`
	Title        string  `toml:"title" yaml:"title" json:"title"`
	TitleSize    float64 `toml:"title_size" yaml:"title_size" json:"title_size"`
	WallScale    float64 `toml:"wall_scale" yaml:"wall_scale" json:"wall_scale"`
	WallAlpha    uint8   `toml:"wall_alpha" yaml:"wall_alpha" json:"wall_alpha"`
	WallX        int     `toml:"wall_x" yaml:"wall_x" json:"wall_x"`
	WallY        int     `toml:"wall_y" yaml:"wall_y" json:"wall_y"`
	WallWidth    int     `toml:"wall_width" yaml:"wall_width" json:"wall_width"`
	WallHeight   int     `toml:"wall_height" yaml:"wall_height" json:"wall_height"`
}

// PosterTheme tunes the event poster.
type PosterTheme struct {
	Title     string  `toml:"title" yaml:"title" json:"title"`
	Date      string  `toml:"date" yaml:"date" json:"date"`
	CTA       string  `toml:"cta" yaml:"cta" json:"cta"`
	TitleSize float64 `toml:"title_size" yaml:"title_size" json:"title_size"`
	EventSize float64 `toml:"event_size" yaml:"event_size" json:"event_size"`
	CTASize   float64 `toml:"cta_size" yaml:"cta_size" json:"cta_size"`
	Glow      float64 `toml:"glow" yaml:"glow" json:"glow"`
	Gradient  bool    `toml:"gradient" yaml:"gradient" json:"gradient"`
	SignupURL string  `toml:"signup_url" yaml:"signup_url" json:"signup_url"` // QR code when set
	QRSize    int     `toml:"qr_size" yaml:"qr_size" json:"qr_size"`
	Width     int     `toml:"width" yaml:"width" json:"width"`
	Height    int     `toml:"height" yaml:"height" json:"height"`
	Frames    int     `toml:"frames" yaml:"frames" json:"frames"`
}

var presets = map[string]func() *Theme{
	"orchard":  orchard,
	"midnight": midnight,
}

// Default returns the built-in "orchard" theme.
func Default() *Theme { return orchard() }

// Preset returns the named built-in theme.
func Preset(name string) (*Theme, error) {
	fn, ok := presets[name]
	if !ok {
		return nil, orcherrors.New(orcherrors.ErrCodeInvalidTheme, "unknown theme %q (available: %v)", name, PresetNames())
	}
	return fn(), nil
}

// PresetNames lists the built-in themes in alphabetical order.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for n := range presets {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// IsPreset reports whether name is a built-in theme.
func IsPreset(name string) bool {
	_, ok := presets[name]
	return ok
}

// Hash identifies the theme's content for artifact cache keys.
func (t *Theme) Hash() string {
	data, _ := json.Marshal(t)
	return cache.Hash(data)
}

// Icon returns the icon file of a social service.
func (t *Theme) Icon(service string) string {
	return t.Assets.Icons[service]
}

// StatNames lists the configured card stats in order.
func (t *Theme) StatNames() []string {
	names := make([]string, len(t.Card.Stats))
	for i, s := range t.Card.Stats {
		names[i] = s.Name
	}
	return names
}

// HasStat reports whether the card shows the named stat.
func (t *Theme) HasStat(name string) bool {
	return slices.Contains(t.StatNames(), name)
}
