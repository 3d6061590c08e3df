package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"

	"github.com/matzehuels/orchard/pkg/cache"
	orcherrors "github.com/matzehuels/orchard/pkg/errors"
	"github.com/matzehuels/orchard/pkg/integrations/matcherino"
	"github.com/matzehuels/orchard/pkg/integrations/tetrio"
	"github.com/matzehuels/orchard/pkg/theme"
)

func TestValidateScene(t *testing.T) {
	for _, s := range Scenes() {
		if err := ValidateScene(s); err != nil {
			t.Errorf("ValidateScene(%q) = %v", s, err)
		}
	}
	for _, s := range []string{"", "Bracket", "tower"} {
		err := ValidateScene(s)
		if !orcherrors.Is(err, orcherrors.ErrCodeInvalidScene) {
			t.Errorf("ValidateScene(%q) = %v, want INVALID_SCENE", s, err)
		}
	}
}

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		scene, format string
		wantErr       bool
	}{
		{SceneBracket, FormatGIF, false},
		{SceneBracket, FormatSVG, false},
		{SceneBracket, FormatJSON, false},
		{SceneCardFront, FormatPNG, false},
		{SceneCardFront, FormatGIF, true},
		{SceneDonorScroll, FormatDOT, true},
		{ScenePoster, "pdf", true},
		{SceneBracket, "GIF", true}, // case-sensitive
	}
	for _, tt := range tests {
		err := ValidateFormat(tt.scene, tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q, %q) error = %v, wantErr %v", tt.scene, tt.format, err, tt.wantErr)
		}
	}
}

func TestValidateAndSetDefaults(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		wantErr orcherrors.Code
	}{
		{"bracket", Options{Scene: SceneBracket, Results: "players_data.json"}, ""},
		{"bracket without results", Options{Scene: SceneBracket}, orcherrors.ErrCodeInvalidInput},
		{"card back", Options{Scene: SceneCardBack}, ""},
		{"card front", Options{Scene: SceneCardFront, Players: []string{"osk"}}, ""},
		{"card front two players", Options{Scene: SceneCardFront, Players: []string{"a", "b"}}, orcherrors.ErrCodeInvalidInput},
		{"versus one player", Options{Scene: SceneVersus, Players: []string{"osk"}}, orcherrors.ErrCodeInvalidInput},
		{"versus empty player", Options{Scene: SceneVersus, Players: []string{"osk", ""}}, orcherrors.ErrCodeInvalidPlayer},
		{"commentary", Options{Scene: SceneCommentary, Roster: "roster.yaml"}, ""},
		{"commentary without source", Options{Scene: SceneCommentary}, orcherrors.ErrCodeInvalidInput},
		{"donors by tournament", Options{Scene: SceneDonorScroll, Tournament: "112875"}, ""},
		{"donors bad tournament", Options{Scene: SceneDonorWall, Tournament: "abc"}, orcherrors.ErrCodeInvalidInput},
		{"donors without source", Options{Scene: SceneDonorWall}, orcherrors.ErrCodeInvalidInput},
		{"bad format", Options{Scene: SceneCardBack, Formats: []string{"gif"}}, orcherrors.ErrCodeInvalidFormat},
		{"unknown scene", Options{Scene: "tower"}, orcherrors.ErrCodeInvalidScene},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := tt.opts
			err := opts.ValidateAndSetDefaults()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if len(opts.Formats) != 1 || opts.Formats[0] != SceneFormats(opts.Scene)[0] {
					t.Errorf("Formats = %v, want scene default", opts.Formats)
				}
				if opts.Theme != DefaultTheme || opts.Logger == nil {
					t.Errorf("defaults not applied: theme %q, logger %v", opts.Theme, opts.Logger)
				}
				return
			}
			if !orcherrors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want code %s", err, tt.wantErr)
			}
		})
	}
}

func TestValidateAndSetDefaultsIdempotent(t *testing.T) {
	opts := Options{Scene: SceneCardBack}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	opts.Formats = append(opts.Formats, "bogus")
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Errorf("second call should be a no-op, got %v", err)
	}
}

// testTheme keeps every scene small and points assets at an empty dir.
func testTheme(t *testing.T) *theme.Theme {
	t.Helper()
	th := theme.Default()
	th.Assets.Dir = t.TempDir()
	th.Bracket.Frames = 1
	th.Donors.Width, th.Donors.Height = 200, 100
	th.Donors.EntryHeight, th.Donors.Speed = 50, 25
	return th
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

const resultsJSON = `{
	"Winners Final": {"player1": "Player A", "score1": 11, "player2": "Player C", "score2": 6}
}`

func TestExecuteBracketTopology(t *testing.T) {
	r := NewRunner(nil, nil, Deps{})
	res, err := r.Execute(context.Background(), Options{
		Scene:      SceneBracket,
		Formats:    []string{FormatDOT, FormatJSON},
		Results:    writeFile(t, "players_data.json", resultsJSON),
		ThemeValue: testTheme(t),
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if _, err := uuid.Parse(res.RunID); err != nil {
		t.Errorf("RunID %q is not a uuid: %v", res.RunID, err)
	}
	if res.Frames != 0 {
		t.Errorf("Frames = %d, topology formats should skip drawing", res.Frames)
	}
	if dot := string(res.Artifacts[FormatDOT]); !strings.Contains(dot, "digraph") || !strings.Contains(dot, "Player A") {
		t.Errorf("DOT output missing graph or entries:\n%s", dot)
	}
	var doc map[string]any
	if err := json.Unmarshal(res.Artifacts[FormatJSON], &doc); err != nil {
		t.Errorf("JSON artifact: %v", err)
	}
}

func TestExecuteBracketMissingResults(t *testing.T) {
	r := NewRunner(nil, nil, Deps{})
	_, err := r.Execute(context.Background(), Options{
		Scene:      SceneBracket,
		Results:    filepath.Join(t.TempDir(), "missing.json"),
		ThemeValue: testTheme(t),
	})
	if !orcherrors.Is(err, orcherrors.ErrCodeFileNotFound) {
		t.Errorf("error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestExecuteCachesArtifacts(t *testing.T) {
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(c, nil, Deps{})
	th := testTheme(t)
	opts := Options{Scene: SceneCardBack, ThemeValue: th}

	first, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("first Execute() error = %v", err)
	}
	if first.CacheHit || len(first.Artifacts[FormatPNG]) == 0 {
		t.Fatalf("first run: hit=%v, %d bytes", first.CacheHit, len(first.Artifacts[FormatPNG]))
	}

	second, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if !second.CacheHit {
		t.Error("second run should be served from cache")
	}
	if string(second.Artifacts[FormatPNG]) != string(first.Artifacts[FormatPNG]) {
		t.Error("cached artifact differs")
	}
	if second.RunID == first.RunID {
		t.Error("each run needs its own id")
	}

	opts.Refresh = true
	third, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if third.CacheHit {
		t.Error("refresh must bypass the artifact cache")
	}
}

func TestExecuteCardProfileFallback(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	defer server.Close()

	tc := tetrio.NewClient(cache.NewNullCache(), 0)
	tc.SetBaseURL(server.URL)
	r := NewRunner(nil, nil, Deps{Tetrio: tc})

	roster := writeFile(t, "roster.yaml", "players:\n  - id: osk\n    seed: 2\n    flavor: fast hands\n")
	res, err := r.Execute(context.Background(), Options{
		Scene:      SceneCardFront,
		Players:    []string{"2"},
		Roster:     roster,
		ThemeValue: testTheme(t),
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if len(res.Warnings) != 1 || !strings.Contains(res.Warnings[0], "osk") {
		t.Errorf("Warnings = %v, want one for osk", res.Warnings)
	}
	if len(res.Artifacts[FormatPNG]) == 0 {
		t.Error("card should still render")
	}
}

func TestExecuteSkipsCacheOnImageFailure(t *testing.T) {
	var img bytes.Buffer
	if err := png.Encode(&img, image.NewRGBA(image.Rect(0, 0, 4, 4))); err != nil {
		t.Fatal(err)
	}
	var avatarUp atomic.Bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/users/osk":
			w.Write([]byte(`{"success": true, "data": {"_id": "abc", "username": "osk", "ar": 300}}`))
		case "/users/abc/summaries/league":
			w.Write([]byte(`{"success": true, "data": {"tr": 24000, "rank": "x", "pps": 2.5, "apm": 150, "vs": 320}}`))
		case "/res/league-ranks/x.png":
			w.Write(img.Bytes())
		case "/user-content/avatars/abc.jpg":
			if !avatarUp.Load() {
				http.NotFound(w, r)
				return
			}
			w.Write(img.Bytes())
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	tc := tetrio.NewClient(cache.NewNullCache(), 0)
	tc.SetBaseURL(server.URL)
	tc.SetResourceBase(server.URL)
	r := NewRunner(c, nil, Deps{Tetrio: tc})

	roster := writeFile(t, "roster.yaml", "players:\n  - id: osk\n    seed: 1\n")
	opts := Options{Scene: SceneCardFront, Players: []string{"1"}, Roster: roster, ThemeValue: testTheme(t)}
	notCached := func(res *Result) bool {
		for _, w := range res.Warnings {
			if strings.Contains(w, "not cached") {
				return true
			}
		}
		return false
	}

	first, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("first Execute() error = %v", err)
	}
	if !notCached(first) || len(first.Artifacts[FormatPNG]) == 0 {
		t.Fatalf("first run: warnings = %v, %d bytes", first.Warnings, len(first.Artifacts[FormatPNG]))
	}

	avatarUp.Store(true)
	second, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if second.CacheHit {
		t.Error("a card drawn with a placeholder avatar must not be served from cache")
	}
	if notCached(second) {
		t.Errorf("second run warnings = %v", second.Warnings)
	}

	third, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if !third.CacheHit {
		t.Error("complete card should be cached")
	}
}

func TestLoadRosterPlayer(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	defer server.Close()
	tc := tetrio.NewClient(cache.NewNullCache(), 0)
	tc.SetBaseURL(server.URL)
	r := NewRunner(nil, nil, Deps{Tetrio: tc})

	opts := Options{
		Scene:   SceneVersus,
		Players: []string{"1", "guest"},
		Roster:  writeFile(t, "roster.json", `{"players": [{"id": "osk", "seed": 1, "flavor": "top seed"}]}`),
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	in, err := r.Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if in.Seeds[0] != 1 || in.Flavors[0] != "top seed" || in.Profiles[0].ID != "osk" {
		t.Errorf("roster player = seed %d, flavor %q, id %q", in.Seeds[0], in.Flavors[0], in.Profiles[0].ID)
	}
	if in.Seeds[1] != 0 || in.Profiles[1].ID != "guest" || !in.Profiles[1].Fallback {
		t.Errorf("unlisted player = %+v", in.Profiles[1])
	}
}

const donorPage = `<html><body><script id="__NEXT_DATA__" type="application/json">
{"props":{"pageProps":{"propdata":{"bounty":{"transactions":[
	{"displayName":"Ada","amount":1500,"comment":"gl"},
	{"displayName":"Bob","amount":500}
]}}}}}
</script></body></html>`

func TestExecuteDonorScrollFromTournament(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/tournaments/112875/contributions" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(donorPage))
	}))
	defer server.Close()

	mc := matcherino.NewClient(cache.NewNullCache(), 0)
	mc.SetBaseURL(server.URL)
	r := NewRunner(nil, nil, Deps{Matcherino: mc})

	res, err := r.Execute(context.Background(), Options{
		Scene:      SceneDonorScroll,
		Tournament: "112875",
		ThemeValue: testTheme(t),
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	// 2 donors x 50 px x 2 / 25 px per frame.
	if res.Frames != 8 {
		t.Errorf("Frames = %d, want 8", res.Frames)
	}
	if len(res.Artifacts[FormatGIF]) == 0 {
		t.Error("missing gif artifact")
	}
}

func TestInputsHashChangesWithData(t *testing.T) {
	a := &Inputs{Seeds: []int{1}}
	b := &Inputs{Seeds: []int{2}}
	if a.Hash() == b.Hash() {
		t.Error("different inputs share a hash")
	}
	if a.Hash() != (&Inputs{Seeds: []int{1}}).Hash() {
		t.Error("hash is not deterministic")
	}
}
