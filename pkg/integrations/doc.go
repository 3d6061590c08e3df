// Package integrations provides HTTP clients for the services the graphics
// pull data from.
//
// # Overview
//
// Each service has its own subpackage:
//
//   - [tetrio]: player profiles, league standings, avatars, flags and rank badges
//   - [matcherino]: donor lists scraped from a tournament's contributions page
//
// # Client Pattern
//
// Service clients embed the shared [Client], which handles caching, retries
// and status-code mapping:
//
//	c := tetrio.NewClient(backend, 10*time.Minute)
//	user, err := c.FetchUser(ctx, "osk", false) // false = use cache
//
// Failures surface as [ErrNotFound] or [ErrNetwork] (checked with
// errors.Is). Transient ones (network errors, 5xx, 429) are retried with
// exponential backoff before they are returned.
//
// [tetrio]: github.com/matzehuels/orchard/pkg/integrations/tetrio
// [matcherino]: github.com/matzehuels/orchard/pkg/integrations/matcherino
package integrations
