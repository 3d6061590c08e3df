package io

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/orchard/pkg/layout"
	"github.com/matzehuels/orchard/pkg/tournament"
)

func TestReadResults(t *testing.T) {
	input := `{
		"Winners Final": {"player1": "Player A", "score1": 11, "player2": "Player C", "score2": 6},
		"Grand Final": {"player1": "Player A", "score1": "W", "player2": "", "score2": 2.5}
	}`

	res, err := ReadResults(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadResults: %v", err)
	}

	want := map[string][2]layout.Entry{
		layout.WinnersFinal: {{Name: "Player A", Value: "11"}, {Name: "Player C", Value: "6"}},
		layout.GrandFinal:   {{Name: "Player A", Value: "W"}, {Name: layout.Placeholder, Value: "2.5"}},
	}
	if len(res) != len(want) {
		t.Fatalf("got %d slots, want %d", len(res), len(want))
	}
	for slot, w := range want {
		if res[slot] != w {
			t.Errorf("%s = %+v, want %+v", slot, res[slot], w)
		}
	}
}

func TestReadResultsErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{"malformed", `{"Winners Final": [}`, nil},
		{"unknown slot", `{"Quarter Final 9": {"player1": "x"}}`, layout.ErrUnknownSlot},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadResults(strings.NewReader(tt.input))
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestResultsRoundTrip(t *testing.T) {
	orig := Results{
		layout.LosersSemi: {{Name: "Fuji", Value: "3"}, {Name: "Gala", Value: "1"}},
	}
	var buf bytes.Buffer
	if err := WriteResults(orig, &buf); err != nil {
		t.Fatalf("WriteResults: %v", err)
	}
	got, err := ReadResults(&buf)
	if err != nil {
		t.Fatalf("ReadResults: %v", err)
	}
	if got[layout.LosersSemi] != orig[layout.LosersSemi] {
		t.Errorf("round trip = %+v, want %+v", got, orig)
	}
}

func TestImportResultsMissingFile(t *testing.T) {
	_, err := ImportResults(filepath.Join(t.TempDir(), "players_data.json"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected ErrNotExist, got %v", err)
	}
}

func TestDonorsRoundTrip(t *testing.T) {
	donors := []tournament.Donor{
		{Name: "Granny Smith", Amount: 2500, Comment: "Go apples! <3"},
		{Name: "Anonymous", Amount: 5, Comment: "No comment"},
	}

	path := filepath.Join(t.TempDir(), "get_donors.json")
	if err := ExportDonors(donors, path); err != nil {
		t.Fatalf("ExportDonors: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"Contribution": "$25.00"`) {
		t.Errorf("file should store dollar strings:\n%s", data)
	}
	if !strings.Contains(string(data), "<3") {
		t.Error("comments should not be HTML-escaped")
	}

	got, err := ImportDonors(path)
	if err != nil {
		t.Fatalf("ImportDonors: %v", err)
	}
	if len(got) != len(donors) {
		t.Fatalf("got %d donors, want %d", len(got), len(donors))
	}
	for i := range donors {
		if got[i] != donors[i] {
			t.Errorf("donor %d = %+v, want %+v", i, got[i], donors[i])
		}
	}
}

func TestReadDonorsBadAmount(t *testing.T) {
	_, err := ReadDonors(strings.NewReader(`[{"Donor": "x", "Contribution": "lots", "Comment": ""}]`))
	if !errors.Is(err, tournament.ErrBadAmount) {
		t.Errorf("expected ErrBadAmount, got %v", err)
	}
}

func TestReadRoster(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"yaml", `
players:
  - {id: appleseed, seed: 1, flavor: "Defending champion"}
  - id: granny
    seed: 2
commentators: [caster1, caster2]
`},
		{"json", `{"players": [{"id": "appleseed", "seed": 1, "flavor": "Defending champion"}, {"id": "granny", "seed": 2}], "commentators": ["caster1", "caster2"]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := ReadRoster(strings.NewReader(tt.input))
			if err != nil {
				t.Fatalf("ReadRoster: %v", err)
			}
			if len(r.Players) != 2 || r.Players[0].Flavor != "Defending champion" || r.Players[1].Seed != 2 {
				t.Errorf("players = %+v", r.Players)
			}
			if len(r.Commentators) != 2 {
				t.Errorf("commentators = %v", r.Commentators)
			}
		})
	}
}

func TestReadRosterInvalid(t *testing.T) {
	_, err := ReadRoster(strings.NewReader("players:\n  - {id: a, seed: 1}\n  - {id: b, seed: 1}\n"))
	if err == nil {
		t.Error("expected duplicate seed error")
	}
}

func TestImportRoster(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roster.yaml")
	if err := os.WriteFile(path, []byte("players:\n  - {id: appleseed, seed: 1}\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	r, err := ImportRoster(path)
	if err != nil {
		t.Fatalf("ImportRoster: %v", err)
	}
	if p, ok := r.Player("1"); !ok || p.ID != "appleseed" {
		t.Errorf("Player(1) = %+v, %v", p, ok)
	}
}
