package sink

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/orchard/pkg/layout"
	"github.com/matzehuels/orchard/pkg/render/anim"
)

func testLayout(t *testing.T) *layout.Layout {
	t.Helper()
	p := layout.Plan{
		Width:  16,
		Height: 9,
		Insets: layout.DefaultInsets,
		Slots: []layout.Slot{
			{Name: "a", Anchor: layout.Point{X: 1, Y: 6}, Scale: 1, Label: "Semi",
				Entries: [2]layout.Entry{{Name: "Player A", Value: "3"}, {Name: "Player B", Value: "1"}}},
			{Name: "b", Anchor: layout.Point{X: 5.5, Y: 5}, Scale: 1.2, Side: layout.Losers},
		},
		Links: []layout.Link{{From: "a", To: "b", Elbow: true}},
	}
	l, err := p.Resolve()
	if err != nil {
		t.Fatal(err)
	}
	return l
}

func TestPNG(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 3, 2))
	img.Set(1, 1, color.White)
	data, err := PNG(img)
	if err != nil {
		t.Fatalf("PNG() error: %v", err)
	}
	got, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("png.Decode() error: %v", err)
	}
	if got.Bounds() != img.Bounds() {
		t.Errorf("bounds = %v, want %v", got.Bounds(), img.Bounds())
	}
}

func TestGIF(t *testing.T) {
	seq := &anim.Sequence{
		Frames: []image.Image{image.NewRGBA(image.Rect(0, 0, 2, 2)), image.NewRGBA(image.Rect(0, 0, 2, 2))},
		Delay:  50 * time.Millisecond,
		Loop:   true,
	}
	data, err := GIF(seq)
	if err != nil {
		t.Fatalf("GIF() error: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("GIF89a")) {
		t.Errorf("missing GIF header: %q", data[:6])
	}
	if _, err := GIF(&anim.Sequence{}); err == nil {
		t.Error("expected error for empty sequence")
	}
}

func TestDOT(t *testing.T) {
	dot := DOT(testLayout(t))
	for _, want := range []string{"digraph Bracket", `"a"`, `"b"`, `"a" -> "b"`, "#FFB84D", `pos="1.00,6.00!"`} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT() output missing %s", want)
		}
	}
}

func TestDOTDetailed(t *testing.T) {
	dot := DOT(testLayout(t), WithDetailed(), WithSideColors("#111111", "#222222"))
	if !strings.Contains(dot, `Player A: 3`) {
		t.Error("detailed output missing entry")
	}
	if !strings.Contains(dot, "#222222") {
		t.Error("side colour override missing")
	}
}

func TestSVG(t *testing.T) {
	svg, err := SVG(context.Background(), DOT(testLayout(t)))
	if err != nil {
		t.Fatalf("SVG() error: %v", err)
	}
	if !bytes.Contains(svg, []byte("<svg")) {
		t.Error("SVG() output missing svg tag")
	}
}

func TestSVGInvalid(t *testing.T) {
	if _, err := SVG(context.Background(), `not valid DOT {{{`); err == nil {
		t.Error("expected parse error")
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="10pt" height="5pt" viewBox="0.00 0.00 10.00 5.00"><g/></svg>`)
	out := string(normalizeViewBox(in))
	if !strings.Contains(out, `width="10" height="5"`) {
		t.Errorf("normalizeViewBox() = %s", out)
	}
	if got := normalizeViewBox([]byte("<svg>")); string(got) != "<svg>" {
		t.Errorf("no viewBox should pass through, got %s", got)
	}
}

func TestJSON(t *testing.T) {
	data, err := JSON(testLayout(t), WithScene("bracket"), WithUnit(100))
	if err != nil {
		t.Fatalf("JSON() error: %v", err)
	}
	var out jsonOutput
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("json.Unmarshal() error: %v", err)
	}
	if out.Scene != "bracket" || out.Unit != 100 || out.Width != 16 {
		t.Errorf("header = %+v", out)
	}
	if len(out.Slots) != 2 || len(out.Connectors) != 1 {
		t.Fatalf("slots=%d connectors=%d", len(out.Slots), len(out.Connectors))
	}
	if out.Slots[0].LabelBox == nil || out.Slots[1].LabelBox != nil {
		t.Error("label box should only be present for labelled slots")
	}
	if out.Slots[1].Side != "losers" {
		t.Errorf("side = %q", out.Slots[1].Side)
	}
	if len(out.Connectors[0].Points) != 4 {
		t.Errorf("elbow points = %d", len(out.Connectors[0].Points))
	}
}
