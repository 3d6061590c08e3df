package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/matzehuels/orchard/pkg/layout"
)

type match struct {
	Player1 string `json:"player1"`
	Score1  any    `json:"score1"`
	Player2 string `json:"player2"`
	Score2  any    `json:"score2"`
}

// Results maps bracket slot names to their two entries.
type Results = map[string][2]layout.Entry

// ReadResults decodes bracket results from r. Empty player names become
// [layout.Placeholder]. ReadResults does not close r.
func ReadResults(r io.Reader) (Results, error) {
	var data map[string]match
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	known := layout.BracketSlotNames()
	out := make(Results, len(data))
	for slot, m := range data {
		if !slices.Contains(known, slot) {
			return nil, fmt.Errorf("slot %q: %w", slot, layout.ErrUnknownSlot)
		}
		out[slot] = [2]layout.Entry{
			layout.NewEntry(orPlaceholder(m.Player1), m.Score1),
			layout.NewEntry(orPlaceholder(m.Player2), m.Score2),
		}
	}
	return out, nil
}

// ImportResults reads the results file at path.
func ImportResults(path string) (Results, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadResults(f)
}

// WriteResults encodes results in the format read by [ReadResults].
func WriteResults(res Results, w io.Writer) error {
	out := make(map[string]match, len(res))
	for slot, e := range res {
		out[slot] = match{
			Player1: e[0].Name, Score1: e[0].Value,
			Player2: e[1].Name, Score2: e[1].Value,
		}
	}
	return encode(w, out)
}

func orPlaceholder(name string) string {
	if name == "" {
		return layout.Placeholder
	}
	return name
}

func encode(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}
