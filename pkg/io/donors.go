package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/orchard/pkg/tournament"
)

type donor struct {
	Donor        string `json:"Donor"`
	Contribution string `json:"Contribution"`
	Comment      string `json:"Comment"`
}

// ReadDonors decodes a donors list from r. Donors keep file order.
func ReadDonors(r io.Reader) ([]tournament.Donor, error) {
	var data []donor
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	out := make([]tournament.Donor, len(data))
	for i, d := range data {
		cents, err := tournament.ParseAmount(d.Contribution)
		if err != nil {
			return nil, fmt.Errorf("donor %d (%s): %w", i+1, d.Donor, err)
		}
		out[i] = tournament.Donor{Name: d.Donor, Amount: cents, Comment: d.Comment}
	}
	return out, nil
}

// ImportDonors reads the donors file at path.
func ImportDonors(path string) ([]tournament.Donor, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadDonors(f)
}

// WriteDonors encodes donors in the format read by [ReadDonors].
func WriteDonors(donors []tournament.Donor, w io.Writer) error {
	out := make([]donor, len(donors))
	for i, d := range donors {
		out[i] = donor{Donor: d.Name, Contribution: d.Contribution(), Comment: d.Comment}
	}
	return encode(w, out)
}

// ExportDonors writes donors to the file at path.
func ExportDonors(donors []tournament.Donor, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteDonors(donors, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
