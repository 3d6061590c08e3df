package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"

	"github.com/matzehuels/orchard/pkg/cache"
	orcherrors "github.com/matzehuels/orchard/pkg/errors"
	"github.com/matzehuels/orchard/pkg/integrations/tetrio"
	orchardio "github.com/matzehuels/orchard/pkg/io"
	"github.com/matzehuels/orchard/pkg/theme"
	"github.com/matzehuels/orchard/pkg/tournament"
)

// Inputs is the data a scene draws, loaded before rendering. Its JSON form
// is hashed into the artifact cache key.
type Inputs struct {
	Results  orchardio.Results  `json:"results,omitempty"`
	Donors   []tournament.Donor `json:"donors,omitempty"`
	Profiles []tetrio.Profile   `json:"profiles,omitempty"`
	Seeds    []int              `json:"seeds,omitempty"`
	Flavors  []string           `json:"flavors,omitempty"`

	warnings []string
}

// Hash identifies the loaded data.
func (in *Inputs) Hash() string {
	data, _ := json.Marshal(in)
	return cache.Hash(data)
}

// LoadTheme resolves the theme of a run.
func LoadTheme(opts Options) (*theme.Theme, error) {
	if opts.ThemeValue != nil {
		if err := opts.ThemeValue.Validate(); err != nil {
			return nil, err
		}
		return opts.ThemeValue, nil
	}
	return theme.Load(opts.Theme)
}

// Load reads every input the scene needs. Profile fetch failures are not
// errors: the fallback profile is used and a warning recorded.
func (r *Runner) Load(ctx context.Context, opts Options) (*Inputs, error) {
	in := &Inputs{}
	switch opts.Scene {
	case SceneBracket:
		res, err := orchardio.ImportResults(opts.Results)
		if err != nil {
			return nil, dataError(err, "results %s", opts.Results)
		}
		in.Results = res

	case SceneCardFront, SceneCardFlip, SceneVersus:
		roster, err := r.roster(opts)
		if err != nil {
			return nil, err
		}
		for _, key := range opts.Players {
			p := tournament.Player{ID: key}
			if found, ok := roster.Player(key); ok {
				p = found
			}
			if opts.Seed > 0 && len(opts.Players) == 1 {
				p.Seed = opts.Seed
			}
			if opts.Flavor != "" && len(opts.Players) == 1 {
				p.Flavor = opts.Flavor
			}
			prof, err := r.profile(ctx, opts, in, p.ID)
			if err != nil {
				return nil, err
			}
			in.Profiles = append(in.Profiles, prof)
			in.Seeds = append(in.Seeds, p.Seed)
			in.Flavors = append(in.Flavors, p.Flavor)
		}

	case SceneCommentary:
		ids := opts.Commentators
		if len(ids) == 0 {
			roster, err := r.roster(opts)
			if err != nil {
				return nil, err
			}
			ids = roster.Commentators
		}
		if len(ids) == 0 {
			return nil, orcherrors.New(orcherrors.ErrCodeInvalidData, "roster %s lists no commentators", opts.Roster)
		}
		for _, id := range ids {
			prof, err := r.profile(ctx, opts, in, id)
			if err != nil {
				return nil, err
			}
			in.Profiles = append(in.Profiles, prof)
		}

	case SceneDonorScroll, SceneDonorWall:
		donors, err := r.donors(ctx, opts)
		if err != nil {
			return nil, err
		}
		in.Donors = donors
	}
	return in, nil
}

func (r *Runner) roster(opts Options) (*tournament.Roster, error) {
	if opts.Roster == "" {
		return &tournament.Roster{}, nil
	}
	roster, err := orchardio.ImportRoster(opts.Roster)
	if err != nil {
		return nil, dataError(err, "roster %s", opts.Roster)
	}
	return roster, nil
}

// profile fetches a player profile. Malformed ids fail the run; anything
// else degrades to the fallback profile.
func (r *Runner) profile(ctx context.Context, opts Options, in *Inputs, id string) (tetrio.Profile, error) {
	p, err := r.Deps.Tetrio.Profile(ctx, id, opts.Refresh)
	if err == nil {
		return p, nil
	}
	if orcherrors.Is(err, orcherrors.ErrCodeInvalidPlayer) {
		return tetrio.Profile{}, err
	}
	opts.Logger.Warn("profile unavailable, using fallback", "player", id, "err", err)
	in.warnings = append(in.warnings, fmt.Sprintf("profile %s: %v", id, err))
	return p, nil
}

func (r *Runner) donors(ctx context.Context, opts Options) ([]tournament.Donor, error) {
	if opts.Donors != "" {
		donors, err := orchardio.ImportDonors(opts.Donors)
		if err != nil {
			return nil, dataError(err, "donors %s", opts.Donors)
		}
		return donors, nil
	}
	donors, err := r.Deps.Matcherino.FetchDonors(ctx, opts.Tournament, opts.Refresh)
	if err != nil {
		return nil, fmt.Errorf("fetch donors for tournament %s: %w", opts.Tournament, err)
	}
	opts.Logger.Debug("fetched donors", "tournament", opts.Tournament, "count", len(donors))
	return donors, nil
}

// dataError codes a data file failure: missing files are FILE_NOT_FOUND,
// everything else INVALID_DATA.
func dataError(err error, format string, args ...any) error {
	code := orcherrors.ErrCodeInvalidData
	if errors.Is(err, fs.ErrNotExist) {
		code = orcherrors.ErrCodeFileNotFound
	}
	return orcherrors.Wrap(code, err, format, args...)
}
