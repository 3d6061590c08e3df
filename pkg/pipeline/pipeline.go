// Package pipeline runs one scene from options to encoded artifacts.
//
// The CLI and the preview server share this package so that both resolve
// defaults, load data and cache artifacts the same way.
//
// # Stages
//
//  1. Load: read the theme, local data files (results, roster, donors) and
//     remote profiles or the donation page
//  2. Render: draw the scene with [scene.Env]
//  3. Encode: write each requested format (PNG, GIF, DOT, SVG, JSON)
//
// Encoded artifacts are cached under a key derived from the scene, format,
// theme hash and a hash of the loaded data, so re-running a scene with
// unchanged inputs skips drawing entirely.
//
// # Usage
//
//	runner := pipeline.NewRunner(backend, logger, pipeline.Deps{})
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Scene:   pipeline.SceneBracket,
//	    Results: "players_data.json",
//	})
//	if err != nil {
//	    return err
//	}
//	gif := result.Artifacts[pipeline.FormatGIF]
package pipeline

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/orchard/pkg/cache"
	orcherrors "github.com/matzehuels/orchard/pkg/errors"
	"github.com/matzehuels/orchard/pkg/theme"
)

// Scene names.
const (
	SceneBracket     = "bracket"
	SceneCardFront   = "card-front"
	SceneCardBack    = "card-back"
	SceneCardFlip    = "card-flip"
	SceneVersus      = "versus"
	SceneCommentary  = "commentary"
	SceneDonorScroll = "donor-scroll"
	SceneDonorWall   = "donor-wall"
	ScenePoster      = "poster"
)

// Format constants for output formats.
const (
	FormatPNG  = "png"
	FormatGIF  = "gif"
	FormatDOT  = "dot"
	FormatSVG  = "svg"
	FormatJSON = "json"
)

// ArtifactTTL is how long encoded scenes stay cached.
const ArtifactTTL = 24 * time.Hour

// DefaultTheme is the preset used when no theme is given.
const DefaultTheme = "orchard"

// sceneFormats lists the formats each scene can produce; the first is the
// default.
var sceneFormats = map[string][]string{
	SceneBracket:     {FormatGIF, FormatPNG, FormatJSON, FormatDOT, FormatSVG},
	SceneCardFront:   {FormatPNG},
	SceneCardBack:    {FormatPNG},
	SceneCardFlip:    {FormatGIF, FormatPNG},
	SceneVersus:      {FormatGIF, FormatPNG},
	SceneCommentary:  {FormatPNG},
	SceneDonorScroll: {FormatGIF, FormatPNG},
	SceneDonorWall:   {FormatGIF, FormatPNG},
	ScenePoster:      {FormatGIF, FormatPNG},
}

// Scenes returns every scene name in alphabetical order.
func Scenes() []string {
	names := make([]string, 0, len(sceneFormats))
	for n := range sceneFormats {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

// SceneFormats returns the formats a scene supports, default first.
func SceneFormats(scene string) []string {
	return slices.Clone(sceneFormats[scene])
}

// Options contains all configuration for one scene run.
// This struct supports JSON serialization for server requests.
type Options struct {
	Scene   string   `json:"scene"`
	Formats []string `json:"formats,omitempty"`
	Theme   string   `json:"theme,omitempty"` // preset name or theme file

	// Data inputs
	Results      string   `json:"results,omitempty"`      // bracket results file
	Roster       string   `json:"roster,omitempty"`       // roster file (players, commentators)
	Donors       string   `json:"donors,omitempty"`       // donors file
	Tournament   string   `json:"tournament,omitempty"`   // donation page id, used when Donors is empty
	Players      []string `json:"players,omitempty"`      // ids or roster seeds; versus takes two
	Commentators []string `json:"commentators,omitempty"` // overrides the roster's
	Seed         int      `json:"seed,omitempty"`         // overrides the roster seed
	Flavor       string   `json:"flavor,omitempty"`       // overrides the roster flavour text
	Refresh      bool     `json:"refresh,omitempty"`      // bypass HTTP and artifact caches

	// Runtime options (not serialized)
	Logger     *log.Logger  `json:"-"`
	ThemeValue *theme.Theme `json:"-"` // takes precedence over Theme

	validated bool
}

// Result contains the outputs of a scene run.
type Result struct {
	RunID     string
	Scene     string
	Artifacts map[string][]byte
	Frames    int
	DataHash  string
	CacheHit  bool // every artifact came from the cache
	Warnings  []string
	Stats     Stats
}

// Stats contains stage timings.
type Stats struct {
	LoadTime   time.Duration
	RenderTime time.Duration
	EncodeTime time.Duration
}

// ValidateScene checks that a scene name is known.
func ValidateScene(name string) error {
	if _, ok := sceneFormats[name]; !ok {
		return orcherrors.New(orcherrors.ErrCodeInvalidScene, "unknown scene %q (must be one of: %s)",
			name, strings.Join(Scenes(), ", "))
	}
	return nil
}

// ValidateFormat checks that a scene can produce format.
func ValidateFormat(scene, format string) error {
	if !slices.Contains(sceneFormats[scene], format) {
		return orcherrors.New(orcherrors.ErrCodeInvalidFormat, "scene %s cannot produce %q (must be one of: %s)",
			scene, format, strings.Join(sceneFormats[scene], ", "))
	}
	return nil
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := ValidateScene(o.Scene); err != nil {
		return err
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{sceneFormats[o.Scene][0]}
	}
	for _, f := range o.Formats {
		if err := ValidateFormat(o.Scene, f); err != nil {
			return err
		}
	}
	if o.Theme == "" && o.ThemeValue == nil {
		o.Theme = DefaultTheme
	}

	switch o.Scene {
	case SceneBracket:
		if o.Results == "" {
			return orcherrors.New(orcherrors.ErrCodeInvalidInput, "bracket needs a results file")
		}
	case SceneCardFront, SceneCardFlip:
		if len(o.Players) != 1 {
			return orcherrors.New(orcherrors.ErrCodeInvalidInput, "%s needs exactly one player", o.Scene)
		}
	case SceneVersus:
		if len(o.Players) != 2 {
			return orcherrors.New(orcherrors.ErrCodeInvalidInput, "versus needs exactly two players, got %d", len(o.Players))
		}
	case SceneCommentary:
		if len(o.Commentators) == 0 && o.Roster == "" {
			return orcherrors.New(orcherrors.ErrCodeInvalidInput, "commentary needs commentators or a roster")
		}
	case SceneDonorScroll, SceneDonorWall:
		if o.Donors == "" && o.Tournament == "" {
			return orcherrors.New(orcherrors.ErrCodeInvalidInput, "%s needs a donors file or a tournament id", o.Scene)
		}
		if o.Donors == "" {
			if err := orcherrors.ValidateTournamentID(o.Tournament); err != nil {
				return err
			}
		}
	}
	for _, p := range o.Players {
		if p == "" {
			return orcherrors.New(orcherrors.ErrCodeInvalidPlayer, "empty player")
		}
	}

	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// ArtifactKeyOpts returns cache key options for one encoded format.
func (o *Options) ArtifactKeyOpts(format, themeHash, dataHash string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Scene:     o.Scene,
		Format:    format,
		ThemeHash: themeHash,
		DataHash:  dataHash,
	}
}

// String summarises the run for logs.
func (o *Options) String() string {
	return fmt.Sprintf("%s [%s]", o.Scene, strings.Join(o.Formats, ","))
}
