package io

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/orchard/pkg/tournament"
)

// ReadRoster decodes a YAML or JSON roster from r and validates it.
func ReadRoster(r io.Reader) (*tournament.Roster, error) {
	var roster tournament.Roster
	if err := yaml.NewDecoder(r).Decode(&roster); err != nil {
		if err == io.EOF {
			return &roster, nil
		}
		return nil, fmt.Errorf("decode: %w", err)
	}
	if err := roster.Validate(); err != nil {
		return nil, err
	}
	return &roster, nil
}

// ImportRoster reads the roster file at path.
func ImportRoster(path string) (*tournament.Roster, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadRoster(f)
}
