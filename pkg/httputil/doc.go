// Package httputil provides the HTTP plumbing shared by the API clients and the
// image fetcher.
//
//   - [NewClient]: an *http.Client with a timeout and a User-Agent
//   - [RetryAfter]: parses a Retry-After header
//
// Response caching and the retry policy live in
// [github.com/matzehuels/orchard/pkg/cache].
package httputil
