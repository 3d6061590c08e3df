package theme

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	orcherrors "github.com/matzehuels/orchard/pkg/errors"
)

// Load reads a theme file. The format follows the extension (.toml, .yaml,
// .yml). Keys absent from the file keep their [Default] values. A bare
// preset name such as "midnight" is also accepted.
func Load(path string) (*Theme, error) {
	if IsPreset(path) {
		return Preset(path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, orcherrors.Wrap(orcherrors.ErrCodeFileNotFound, err, "theme %s", path)
		}
		return nil, fmt.Errorf("read theme %s: %w", path, err)
	}

	t, err := Decode(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("theme %s: %w", path, err)
	}
	if t.Assets.Dir != "" && !filepath.IsAbs(t.Assets.Dir) {
		t.Assets.Dir = filepath.Join(filepath.Dir(path), t.Assets.Dir)
	}
	return t, nil
}

// Decode parses theme data in the format named by ext over [Default] and
// validates the result.
func Decode(data []byte, ext string) (*Theme, error) {
	t := Default()
	t.Name = ""

	switch strings.ToLower(ext) {
	case ".toml":
		if _, err := toml.NewDecoder(bytes.NewReader(data)).Decode(t); err != nil {
			return nil, orcherrors.Wrap(orcherrors.ErrCodeInvalidTheme, err, "decode toml")
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, t); err != nil {
			return nil, orcherrors.Wrap(orcherrors.ErrCodeInvalidTheme, err, "decode yaml")
		}
	default:
		return nil, orcherrors.New(orcherrors.ErrCodeInvalidTheme, "unsupported theme format %q (use .toml or .yaml)", ext)
	}

	if t.Name == "" {
		t.Name = "custom"
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}
