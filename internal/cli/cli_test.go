package cli

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/orchard/pkg/tournament"
)

func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := out
	out = &buf
	t.Cleanup(func() { out = prev })
	return &buf
}

func TestLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	c := New(&buf, log.InfoLevel)
	c.Logger.Debug("hidden")
	if buf.Len() != 0 {
		t.Errorf("debug logged at info level: %q", buf.String())
	}
	c.SetLogLevel(log.DebugLevel)
	c.Logger.Debug("shown")
	if !strings.Contains(buf.String(), "shown") {
		t.Errorf("debug not logged after SetLogLevel: %q", buf.String())
	}
}

func TestProgress(t *testing.T) {
	var buf bytes.Buffer
	newProgress(New(&buf, log.InfoLevel).Logger).done("Rendered poster")
	if !strings.Contains(buf.String(), "Rendered poster (") {
		t.Errorf("progress output = %q", buf.String())
	}
}

func TestCacheDirXDG(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/custom-cache")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if want := filepath.Join("/tmp/custom-cache", appName); dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"", nil},
		{"png", []string{"png"}},
		{"gif,png", []string{"gif", "png"}},
		{" dot , json ,", []string{"dot", "json"}},
	}
	for _, tt := range tests {
		if got := parseFormats(tt.input); !slices.Equal(got, tt.want) {
			t.Errorf("parseFormats(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestOutputPaths(t *testing.T) {
	tests := []struct {
		name    string
		output  string
		formats []string
		want    map[string]string
	}{
		{"default", "", []string{"gif"}, map[string]string{"gif": "bracket.gif"}},
		{"single", "out/b.img", []string{"png"}, map[string]string{"png": "out/b.img"}},
		{"multiple", "out/b.gif", []string{"gif", "json"}, map[string]string{"gif": "out/b.gif", "json": "out/b.json"}},
		{"multiple default", "", []string{"dot", "svg"}, map[string]string{"dot": "bracket.dot", "svg": "bracket.svg"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := outputPaths(tt.output, "bracket", tt.formats)
			if len(got) != len(tt.want) {
				t.Fatalf("outputPaths() = %v, want %v", got, tt.want)
			}
			for f, p := range tt.want {
				if got[f] != p {
					t.Errorf("outputPaths()[%s] = %q, want %q", f, got[f], p)
				}
			}
		})
	}
}

func TestRootCommandRegistersScenes(t *testing.T) {
	root := New(&bytes.Buffer{}, log.InfoLevel).RootCommand()
	for _, path := range [][]string{
		{"bracket"}, {"topology"}, {"card", "front"}, {"card", "back"}, {"card", "flip"},
		{"versus"}, {"commentary"}, {"donors", "fetch"}, {"donors", "scroll"}, {"donors", "wall"},
		{"poster"}, {"serve"}, {"cache", "clear"}, {"cache", "path"}, {"themes"}, {"completion"},
	} {
		cmd, _, err := root.Find(path)
		if err != nil || cmd.Name() != path[len(path)-1] {
			t.Errorf("command %v not registered", path)
		}
	}
}

func TestThemesCommand(t *testing.T) {
	buf := captureOutput(t)
	root := New(&bytes.Buffer{}, log.ErrorLevel).RootCommand()
	root.SetArgs([]string{"themes"})
	if err := root.Execute(); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"orchard", "midnight", "card-flip"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("themes output missing %q", want)
		}
	}
}

func TestCardBackCommand(t *testing.T) {
	buf := captureOutput(t)
	path := filepath.Join(t.TempDir(), "cards", "back.png")
	root := New(&bytes.Buffer{}, log.ErrorLevel).RootCommand()
	root.SetArgs([]string{"card", "back", "--no-cache", "-o", path})
	if err := root.Execute(); err != nil {
		t.Fatalf("card back: %v", err)
	}
	if !strings.Contains(buf.String(), path) {
		t.Errorf("output path not reported: %q", buf.String())
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if _, err := png.DecodeConfig(f); err != nil {
		t.Errorf("output is not a PNG: %v", err)
	}
}

func TestTopologyRejectsRasterFormats(t *testing.T) {
	root := New(&bytes.Buffer{}, log.ErrorLevel).RootCommand()
	root.SetArgs([]string{"topology", "results.json", "--no-cache", "-f", "gif"})
	root.SetErr(&bytes.Buffer{})
	if err := root.Execute(); err == nil {
		t.Error("topology should reject gif output")
	}
}

func TestCompleteThemes(t *testing.T) {
	got, _ := completeThemes(nil, nil, "mid")
	if !slices.Equal(got, []string{"midnight"}) {
		t.Errorf("completeThemes(mid) = %v", got)
	}
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(m RosterPickModel, keys ...string) RosterPickModel {
	for _, k := range keys {
		next, _ := m.Update(key(k))
		m = next.(RosterPickModel)
	}
	return m
}

func TestRosterPick(t *testing.T) {
	players := []tournament.Player{{ID: "czsmall", Seed: 3}, {ID: "osk", Seed: 1}, {ID: "diao", Seed: 2}}

	tests := []struct {
		name string
		keys []string
		want []string
	}{
		{"enter picks", []string{"enter", "down", "enter"}, []string{"osk", "diao"}},
		{"toggle off", []string{"x", "x", "down", "down", "x", "enter"}, nil},
		{"toggle then confirm", []string{"down", "down", "x", "up", "up", "enter"}, []string{"czsmall", "osk"}},
		{"enter keeps choice", []string{"x", "enter"}, nil},
		{"quit", []string{"x", "esc"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := press(NewRosterPickModel(players, 2), tt.keys...)
			if got := m.Selected(); !slices.Equal(got, tt.want) {
				t.Errorf("Selected() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRosterPickView(t *testing.T) {
	m := NewRosterPickModel([]tournament.Player{{ID: "osk", Seed: 1, Flavor: "Kicks"}}, 2)
	view := m.View()
	for _, want := range []string{"Select 2 Players", "osk", "Kicks"} {
		if !bytes.Contains([]byte(view), []byte(want)) {
			t.Errorf("View() missing %q", want)
		}
	}
}
