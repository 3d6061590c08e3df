// Package tetrio fetches player profiles from the TETR.IO channel API.
//
// A [Profile] merges the user record (name, country, attack rating, linked
// accounts) with the TETRA LEAGUE summary (rating, rank, PPS/APM/VS). The
// image URLs built by [AvatarURL], [FlagURL] and [RankURL] point at the
// game's public resource host and are fetched separately through
// [github.com/matzehuels/orchard/pkg/assets.Fetcher].
package tetrio

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/matzehuels/orchard/pkg/cache"
	orcherrors "github.com/matzehuels/orchard/pkg/errors"
	"github.com/matzehuels/orchard/pkg/integrations"
)

const (
	// APIBase is the channel API root.
	APIBase = "https://ch.tetr.io/api"
	// ResourceBase serves avatars, flags and rank badges.
	ResourceBase = "https://tetr.io"
)

// MaxSocials caps the linked accounts shown per player.
const MaxSocials = 3

// socialOrder lists the services shown, in display order.
var socialOrder = []string{"discord", "twitch", "twitter"}

// Social is a linked account on another service.
type Social struct {
	Service string `json:"service"` // "discord", "twitch" or "twitter"
	Name    string `json:"name"`
}

// User is the subset of the user record the scenes draw.
type User struct {
	ID             string   `json:"id"`
	Username       string   `json:"username"`
	Country        string   `json:"country,omitempty"` // ISO code, lower case; empty if hidden
	AR             float64  `json:"ar"`
	AvatarRevision int64    `json:"avatar_revision,omitempty"`
	Socials        []Social `json:"socials,omitempty"`
}

// League is a player's TETRA LEAGUE summary.
type League struct {
	TR   float64 `json:"tr"`
	Rank string  `json:"rank"` // lower case, "z" when unranked
	PPS  float64 `json:"pps"`
	APM  float64 `json:"apm"`
	VS   float64 `json:"vs"`
}

// Profile is everything a player card or commentator panel needs.
//
// Fallback is set when the user record could not be fetched; the name is
// then "UNKNOWN" and every URL is empty, so callers draw placeholders.
type Profile struct {
	User
	League
	AvatarURL string
	FlagURL   string
	RankURL   string
	Fallback  bool
}

// DisplayName returns the upper-cased username.
func (p Profile) DisplayName() string {
	return strings.ToUpper(p.Username)
}

// Fallback returns the placeholder profile for id.
func Fallback(id string) Profile {
	return Profile{User: User{ID: id, Username: "unknown"}, Fallback: true}
}

// Client provides access to the TETR.IO channel API.
// All methods are safe for concurrent use.
type Client struct {
	*integrations.Client
	baseURL      string
	resourceBase string // empty selects ResourceBase
}

// NewClient creates a TETR.IO client caching responses in backend for cacheTTL.
func NewClient(backend cache.Cache, cacheTTL time.Duration) *Client {
	headers := map[string]string{"Accept": "application/json"}
	return &Client{
		Client:  integrations.NewClient(backend, "tetrio:", cacheTTL, headers),
		baseURL: APIBase,
	}
}

// SetBaseURL overrides the channel API root, e.g. for a test server or mirror.
func (c *Client) SetBaseURL(u string) { c.baseURL = strings.TrimSuffix(u, "/") }

// SetResourceBase overrides the host profile image URLs point at.
func (c *Client) SetResourceBase(u string) { c.resourceBase = strings.TrimSuffix(u, "/") }

func (c *Client) resources() string {
	if c.resourceBase == "" {
		return ResourceBase
	}
	return c.resourceBase
}

// FetchUser retrieves the user record for a username or user id.
//
// Returns [integrations.ErrNotFound] when the API reports no such user and
// an [orcherrors.ErrCodeInvalidPlayer] error for malformed ids.
func (c *Client) FetchUser(ctx context.Context, id string, refresh bool) (*User, error) {
	if err := orcherrors.ValidatePlayerID(id); err != nil {
		return nil, err
	}
	id = integrations.NormalizeUsername(id)

	var u User
	err := c.Cached(ctx, "user:"+id, refresh, &u, func() error {
		var resp userResponse
		if err := c.fetch(ctx, fmt.Sprintf("%s/users/%s", c.baseURL, id), &resp, &resp.envelope); err != nil {
			return fmt.Errorf("user %s: %w", id, err)
		}
		u = resp.Data.user()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// FetchLeague retrieves the TETRA LEAGUE summary for a username or user id.
func (c *Client) FetchLeague(ctx context.Context, id string, refresh bool) (*League, error) {
	if err := orcherrors.ValidatePlayerID(id); err != nil {
		return nil, err
	}
	id = integrations.NormalizeUsername(id)

	var l League
	err := c.Cached(ctx, "league:"+id, refresh, &l, func() error {
		var resp leagueResponse
		if err := c.fetch(ctx, fmt.Sprintf("%s/users/%s/summaries/league", c.baseURL, id), &resp, &resp.envelope); err != nil {
			return fmt.Errorf("league %s: %w", id, err)
		}
		l = resp.Data.league()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// Profile fetches the user record and league summary for id.
//
// The returned profile is always usable. If the user record fails, it is
// [Fallback](id); if only the league summary fails, the league fields stay
// zero. The error reports what failed so the caller can log it.
func (c *Client) Profile(ctx context.Context, id string, refresh bool) (Profile, error) {
	u, err := c.FetchUser(ctx, id, refresh)
	if err != nil {
		return Fallback(id), err
	}

	p := Profile{
		User:      *u,
		AvatarURL: avatarURL(c.resources(), u.ID, u.AvatarRevision),
		FlagURL:   flagURL(c.resources(), u.Country),
	}

	leagueID := u.ID
	if leagueID == "" {
		leagueID = id
	}
	l, err := c.FetchLeague(ctx, leagueID, refresh)
	if err != nil {
		return p, err
	}
	p.League = *l
	p.RankURL = rankURL(c.resources(), l.Rank)
	return p, nil
}

// fetch decodes an API response into v, whose envelope is env.
func (c *Client) fetch(ctx context.Context, url string, v any, env *envelope) error {
	if err := c.Get(ctx, url, v); err != nil {
		return err
	}
	if !env.Success {
		if env.Error != nil && env.Error.Msg != "" {
			return fmt.Errorf("%w: %s", integrations.ErrNotFound, env.Error.Msg)
		}
		return integrations.ErrNotFound
	}
	return nil
}

// AvatarURL returns the avatar image URL for a user id.
func AvatarURL(id string, revision int64) string { return avatarURL(ResourceBase, id, revision) }

// FlagURL returns the flag image URL for a country code, or "" if cc is empty.
func FlagURL(cc string) string { return flagURL(ResourceBase, cc) }

// RankURL returns the league badge URL for a rank, or "" if rank is empty.
func RankURL(rank string) string { return rankURL(ResourceBase, rank) }

func avatarURL(base, id string, revision int64) string {
	if id == "" {
		return ""
	}
	return fmt.Sprintf("%s/user-content/avatars/%s.jpg?rv=%d", base, id, revision)
}

func flagURL(base, cc string) string {
	if cc == "" {
		return ""
	}
	return fmt.Sprintf("%s/res/flags/%s.png", base, strings.ToLower(cc))
}

func rankURL(base, rank string) string {
	if rank == "" {
		return ""
	}
	return fmt.Sprintf("%s/res/league-ranks/%s.png", base, strings.ToLower(rank))
}

// IsNotFound reports whether err means the player does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, integrations.ErrNotFound)
}

// roundTo rounds v to the given number of decimals.
func roundTo(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}
