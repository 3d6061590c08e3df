package httputil

import (
	"net/http"
	"strconv"
	"time"

	"github.com/matzehuels/orchard/pkg/buildinfo"
	"github.com/matzehuels/orchard/pkg/observability"
)

// DefaultTimeout bounds every outbound request.
const DefaultTimeout = 10 * time.Second

// MaxDownload bounds response bodies read by the API clients and the
// image fetcher (16 MiB).
const MaxDownload = 16 << 20

// NewClient returns an HTTP client with the given timeout (DefaultTimeout
// when zero) that sends the orchard User-Agent and reports every request to
// [observability.HTTP].
func NewClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{
		Timeout:   timeout,
		Transport: &userAgent{next: http.DefaultTransport, agent: buildinfo.UserAgent()},
	}
}

type userAgent struct {
	next  http.RoundTripper
	agent string
}

func (t *userAgent) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get("User-Agent") == "" {
		req = req.Clone(req.Context())
		req.Header.Set("User-Agent", t.agent)
	}

	ctx, host, path := req.Context(), req.URL.Host, req.URL.Path
	hooks := observability.HTTP()
	hooks.OnRequest(ctx, req.Method, host, path)
	start := time.Now()

	resp, err := t.next.RoundTrip(req)
	if err != nil {
		hooks.OnError(ctx, req.Method, host, path, err)
		return nil, err
	}
	hooks.OnResponse(ctx, req.Method, host, path, resp.StatusCode, time.Since(start))
	return resp, nil
}

// RetryAfter parses a Retry-After header given in seconds. It returns 0 when
// the header is missing or not a number.
func RetryAfter(h http.Header) int {
	n, err := strconv.Atoi(h.Get("Retry-After"))
	if err != nil || n < 0 {
		return 0
	}
	return n
}
