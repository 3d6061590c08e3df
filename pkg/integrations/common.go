package integrations

import (
	"errors"
	"net/http"
	"strings"

	"github.com/matzehuels/orchard/pkg/httputil"
)

var (
	// ErrNotFound is returned when a player, tournament or resource doesn't exist.
	ErrNotFound = errors.New("resource not found")

	// ErrNetwork is returned for HTTP failures (timeouts, connection errors, 5xx responses).
	ErrNetwork = errors.New("network error")
)

// NewHTTPClient creates an HTTP client with the standard timeout.
func NewHTTPClient() *http.Client {
	return httputil.NewClient(httputil.DefaultTimeout)
}

// NormalizeUsername lower-cases and trims a username for use in API paths
// and cache keys.
func NormalizeUsername(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
