package matcherino

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/orchard/pkg/cache"
	orcherrors "github.com/matzehuels/orchard/pkg/errors"
	"github.com/matzehuels/orchard/pkg/integrations"
)

const page = `<!DOCTYPE html>
<html><head><title>Contributions</title></head>
<body>
<div id="__next">loading</div>
<script id="__NEXT_DATA__" type="application/json">
{"props":{"pageProps":{"propdata":{"bounty":{"transactions":[
  {"displayName":"Granny Smith","amount":2500,"comment":"Go apples!"},
  {"amount":500},
  {"displayName":"Fuji","amount":1250,"comment":""}
]}}}}}
</script>
</body></html>`

func testClient(t *testing.T, serverURL string) *Client {
	t.Helper()
	c := &Client{
		Client:  integrations.NewClient(cache.NewNullCache(), "matcherino:", time.Hour, nil),
		baseURL: serverURL,
	}
	c.SetBackoff(cache.Backoff{Attempts: 1, Initial: time.Millisecond})
	return c
}

func TestParsePage(t *testing.T) {
	donors, err := ParsePage(strings.NewReader(page))
	if err != nil {
		t.Fatalf("ParsePage failed: %v", err)
	}
	if len(donors) != 3 {
		t.Fatalf("got %d donors, want 3", len(donors))
	}

	tests := []struct {
		name, comment string
		amount        int64
	}{
		{"Granny Smith", "Go apples!", 2500},
		{"Anonymous", "No comment", 500},
		{"Fuji", "", 1250},
	}
	for i, tt := range tests {
		d := donors[i]
		if d.Name != tt.name || d.Comment != tt.comment || d.Amount != tt.amount {
			t.Errorf("donors[%d] = %+v, want %+v", i, d, tt)
		}
	}
	if donors[0].Contribution() != "$25.00" {
		t.Errorf("Contribution = %q", donors[0].Contribution())
	}
}

func TestParsePage_NoData(t *testing.T) {
	tests := []struct {
		name string
		html string
	}{
		{"no script", `<html><body><p>nothing</p></body></html>`},
		{"other script", `<html><script id="other">{}</script></html>`},
		{"no transactions", `<html><script id="__NEXT_DATA__">{"props":{}}</script></html>`},
		{"bad json", `<html><script id="__NEXT_DATA__">{not json</script></html>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParsePage(strings.NewReader(tt.html))
			if !errors.Is(err, ErrNoData) {
				t.Errorf("expected ErrNoData, got %v", err)
			}
		})
	}
}

func TestParseNextData_Empty(t *testing.T) {
	donors, err := ParseNextData([]byte(`{"props":{"pageProps":{"propdata":{"bounty":{"transactions":[]}}}}}`))
	if err != nil {
		t.Fatalf("ParseNextData failed: %v", err)
	}
	if len(donors) != 0 {
		t.Errorf("expected no donors, got %d", len(donors))
	}
}

func TestClient_FetchDonors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/tournaments/131953/contributions" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(page))
	}))
	defer server.Close()

	c := testClient(t, server.URL)
	donors, err := c.FetchDonors(context.Background(), "131953", true)
	if err != nil {
		t.Fatalf("FetchDonors failed: %v", err)
	}
	if len(donors) != 3 {
		t.Errorf("got %d donors, want 3", len(donors))
	}

	if _, err := c.FetchDonors(context.Background(), "404", true); !errors.Is(err, integrations.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestClient_FetchDonors_InvalidID(t *testing.T) {
	c := testClient(t, "http://127.0.0.1:0")
	_, err := c.FetchDonors(context.Background(), "../x", true)
	if !orcherrors.Is(err, orcherrors.ErrCodeInvalidInput) {
		t.Errorf("expected INVALID_INPUT, got %v", err)
	}
}

func TestContributionsURL(t *testing.T) {
	c := NewClient(nil, time.Hour)
	want := "https://matcherino.com/tournaments/131953/contributions"
	if got := c.ContributionsURL("131953"); got != want {
		t.Errorf("ContributionsURL = %q, want %q", got, want)
	}
}
