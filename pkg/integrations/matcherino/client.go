// Package matcherino scrapes prize-pool contributions from Matcherino
// tournament pages.
//
// Matcherino renders its pages with Next.js, so the contribution list is
// embedded as JSON in the <script id="__NEXT_DATA__"> element rather than in
// the HTML itself. [ParsePage] finds that element with golang.org/x/net/html
// and reads the transactions with gjson.
package matcherino

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"golang.org/x/net/html"

	"github.com/matzehuels/orchard/pkg/cache"
	orcherrors "github.com/matzehuels/orchard/pkg/errors"
	"github.com/matzehuels/orchard/pkg/integrations"
	"github.com/matzehuels/orchard/pkg/tournament"
)

// BaseURL is the Matcherino site root.
const BaseURL = "https://matcherino.com"

// TransactionsPath locates the contribution list inside __NEXT_DATA__.
const TransactionsPath = "props.pageProps.propdata.bounty.transactions"

const (
	anonymous = "Anonymous"
	noComment = "No comment"
)

// ErrNoData is returned when a page has no __NEXT_DATA__ script or the
// script has no transaction list.
var ErrNoData = errors.New("donor data not found in page")

// Client fetches contribution pages.
type Client struct {
	*integrations.Client
	baseURL string
}

// NewClient creates a Matcherino client caching parsed donor lists in
// backend for cacheTTL.
func NewClient(backend cache.Cache, cacheTTL time.Duration) *Client {
	headers := map[string]string{"Accept": "text/html"}
	return &Client{
		Client:  integrations.NewClient(backend, "matcherino:", cacheTTL, headers),
		baseURL: BaseURL,
	}
}

// SetBaseURL overrides the site root, e.g. for a test server or mirror.
func (c *Client) SetBaseURL(u string) { c.baseURL = strings.TrimSuffix(u, "/") }

// ContributionsURL returns the contributions page of a tournament.
func (c *Client) ContributionsURL(tournamentID string) string {
	return fmt.Sprintf("%s/tournaments/%s/contributions", c.baseURL, tournamentID)
}

// FetchDonors downloads and parses the contributions page of a tournament.
// Donors are returned in page order.
func (c *Client) FetchDonors(ctx context.Context, tournamentID string, refresh bool) ([]tournament.Donor, error) {
	if err := orcherrors.ValidateTournamentID(tournamentID); err != nil {
		return nil, err
	}

	var donors []tournament.Donor
	err := c.Cached(ctx, "donors:"+tournamentID, refresh, &donors, func() error {
		page, err := c.GetBytes(ctx, c.ContributionsURL(tournamentID))
		if err != nil {
			return fmt.Errorf("tournament %s: %w", tournamentID, err)
		}
		donors, err = ParsePage(bytes.NewReader(page))
		if err != nil {
			return fmt.Errorf("tournament %s: %w", tournamentID, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return donors, nil
}

// ParsePage extracts the donor list from a contributions page.
//
// Missing names become "Anonymous" and missing comments "No comment".
// Amounts are in cents.
func ParsePage(r io.Reader) ([]tournament.Donor, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse page: %w", err)
	}

	script := findNextData(doc)
	if script == "" {
		return nil, ErrNoData
	}
	return ParseNextData([]byte(script))
}

// ParseNextData extracts the donor list from the __NEXT_DATA__ JSON.
func ParseNextData(data []byte) ([]tournament.Donor, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: invalid JSON", ErrNoData)
	}
	txs := gjson.GetBytes(data, TransactionsPath)
	if !txs.Exists() || !txs.IsArray() {
		return nil, ErrNoData
	}

	donors := make([]tournament.Donor, 0, int(txs.Get("#").Int()))
	txs.ForEach(func(_, v gjson.Result) bool {
		d := tournament.Donor{
			Name:    v.Get("displayName").String(),
			Amount:  int64(math.Round(v.Get("amount").Float())),
			Comment: v.Get("comment").String(),
		}
		if !v.Get("displayName").Exists() {
			d.Name = anonymous
		}
		if !v.Get("comment").Exists() {
			d.Comment = noComment
		}
		donors = append(donors, d)
		return true
	})
	return donors, nil
}

func findNextData(n *html.Node) string {
	if n.Type == html.ElementNode && n.Data == "script" && attr(n, "id") == "__NEXT_DATA__" {
		var b strings.Builder
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.TextNode {
				b.WriteString(c.Data)
			}
		}
		return b.String()
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if s := findNextData(c); s != "" {
			return s
		}
	}
	return ""
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
