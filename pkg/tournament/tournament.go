// Package tournament holds the event data the scenes draw: donors, the
// player roster and the commentator line-up.
//
// The types are plain values. Reading and writing them is done by
// [github.com/matzehuels/orchard/pkg/io]; fetching donors is done by
// [github.com/matzehuels/orchard/pkg/integrations/matcherino].
package tournament

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// ErrBadAmount is returned by [ParseAmount] for strings that are not a
// dollar amount.
var ErrBadAmount = errors.New("invalid contribution amount")

// Donor is one contribution to the prize pool.
type Donor struct {
	Name    string
	Amount  int64 // cents
	Comment string
}

// Contribution formats the amount the way the donors file stores it, e.g. "$12.00".
func (d Donor) Contribution() string {
	return FormatAmount(d.Amount)
}

// FormatAmount formats cents as dollars with two decimals.
func FormatAmount(cents int64) string {
	sign := ""
	if cents < 0 {
		sign, cents = "-", -cents
	}
	return fmt.Sprintf("%s$%d.%02d", sign, cents/100, cents%100)
}

// ParseAmount parses "$12.00", "12.5" or "$1,234" into cents.
func ParseAmount(s string) (int64, error) {
	t := strings.TrimSpace(s)
	neg := strings.HasPrefix(t, "-")
	t = strings.TrimPrefix(t, "-")
	t = strings.TrimPrefix(t, "$")
	t = strings.ReplaceAll(t, ",", "")
	if t == "" {
		return 0, fmt.Errorf("%w: %q", ErrBadAmount, s)
	}

	// Only the leading "-" carries a sign; digits follow.
	whole, frac, _ := strings.Cut(t, ".")
	if len(frac) > 2 || !digits(whole) || !digits(frac) || whole+frac == "" {
		return 0, fmt.Errorf("%w: %q", ErrBadAmount, s)
	}
	frac += strings.Repeat("0", 2-len(frac))
	if whole == "" {
		whole = "0"
	}

	w, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrBadAmount, s)
	}
	f, err := strconv.ParseInt(frac, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrBadAmount, s)
	}
	cents := w*100 + f
	if neg {
		cents = -cents
	}
	return cents, nil
}

func digits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// SortDonors orders donors by amount, largest first. Equal amounts keep
// their input order.
func SortDonors(donors []Donor) {
	slices.SortStableFunc(donors, func(a, b Donor) int {
		return cmp.Compare(b.Amount, a.Amount)
	})
}

// Total sums all contributions.
func Total(donors []Donor) int64 {
	var sum int64
	for _, d := range donors {
		sum += d.Amount
	}
	return sum
}

// Player is one seeded entrant.
type Player struct {
	ID     string `json:"id" yaml:"id"`
	Seed   int    `json:"seed" yaml:"seed"`
	Flavor string `json:"flavor,omitempty" yaml:"flavor,omitempty"`
}

// Roster lists the entrants and commentators of an event.
type Roster struct {
	Players      []Player `json:"players" yaml:"players"`
	Commentators []string `json:"commentators,omitempty" yaml:"commentators,omitempty"`
}

// Player returns the entrant with the given id or seed ("3" selects seed 3).
func (r Roster) Player(key string) (Player, bool) {
	if n, err := strconv.Atoi(key); err == nil {
		for _, p := range r.Players {
			if p.Seed == n {
				return p, true
			}
		}
	}
	for _, p := range r.Players {
		if strings.EqualFold(p.ID, key) {
			return p, true
		}
	}
	return Player{}, false
}

// Validate reports missing ids and duplicate seeds.
func (r Roster) Validate() error {
	seen := make(map[int]string, len(r.Players))
	for i, p := range r.Players {
		if p.ID == "" {
			return fmt.Errorf("player %d: missing id", i+1)
		}
		if p.Seed <= 0 {
			continue
		}
		if other, ok := seen[p.Seed]; ok {
			return fmt.Errorf("seed %d assigned to both %s and %s", p.Seed, other, p.ID)
		}
		seen[p.Seed] = p.ID
	}
	return nil
}
