package layout

import (
	"math"
	"testing"
)

const eps = 1e-9

func approx(a, b float64) bool { return math.Abs(a-b) < eps }

func TestRectDimensions(t *testing.T) {
	tests := []struct {
		name         string
		rect         Rect
		wantW, wantH float64
		wantCX       float64
		wantCY       float64
	}{
		{"unit", Rect{Left: 0, Right: 1, Bottom: 0, Top: 1}, 1, 1, 0.5, 0.5},
		{"offset", Rect{Left: 2, Right: 6, Bottom: -1, Top: 1}, 4, 2, 4, 0},
		{"empty", Rect{Left: 3, Right: 3, Bottom: 3, Top: 3}, 0, 0, 3, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.rect.Width(); got != tt.wantW {
				t.Errorf("Width() = %v, want %v", got, tt.wantW)
			}
			if got := tt.rect.Height(); got != tt.wantH {
				t.Errorf("Height() = %v, want %v", got, tt.wantH)
			}
			if got := tt.rect.CenterX(); got != tt.wantCX {
				t.Errorf("CenterX() = %v, want %v", got, tt.wantCX)
			}
			if got := tt.rect.CenterY(); got != tt.wantCY {
				t.Errorf("CenterY() = %v, want %v", got, tt.wantCY)
			}
		})
	}
}

func TestMeasureWinnersFinal(t *testing.T) {
	g := Measure(Slot{
		Name:    WinnersFinal,
		Anchor:  Point{5.5, 7},
		Scale:   1.2,
		Entries: [2]Entry{NewEntry("Player A", 11), NewEntry("Player C", 6)},
		Label:   "Winners Final",
	})

	for i, b := range g.Boxes {
		if !approx(b.Height(), 0.48) {
			t.Errorf("box %d height = %v, want 0.48", i, b.Height())
		}
		if !approx(b.Width(), 2.4) {
			t.Errorf("box %d width = %v, want 2.4", i, b.Width())
		}
	}
	if !approx(g.Boxes[0].Bottom, 7) {
		t.Errorf("top box bottom = %v, want 7", g.Boxes[0].Bottom)
	}
	if !approx(g.Boxes[1].Bottom, 6.52) {
		t.Errorf("bottom box bottom = %v, want 6.52", g.Boxes[1].Bottom)
	}
	if !approx(g.Values[0].Left, 7.9) || !approx(g.Values[0].Width(), 0.6) {
		t.Errorf("value box = %+v, want left 7.9 width 0.6", g.Values[0])
	}
	if want := 5.5 + 2*1.2 + 0.6*1.2; !approx(g.Exit.X, want) || g.Exit.Y != 7 {
		t.Errorf("Exit = %+v, want (%v, 7)", g.Exit, want)
	}
	if !approx(g.FontSize, 14.4) {
		t.Errorf("FontSize = %v, want 14.4", g.FontSize)
	}
	if !g.HasLabel || !approx(g.LabelBox.Bottom, 7.53) || !approx(g.LabelBox.Width(), 3) {
		t.Errorf("LabelBox = %+v", g.LabelBox)
	}
	if g.Entries[0].Value != "11" || g.Entries[1].Value != "6" {
		t.Errorf("entries = %+v", g.Entries)
	}
}

func TestMeasureScalesUniformly(t *testing.T) {
	base := Measure(Slot{Anchor: Point{1, 1}, Scale: 1})
	for _, k := range []float64{0.5, 0.9, 1.5, 2} {
		g := Measure(Slot{Anchor: Point{1, 1}, Scale: k})
		if !approx(g.Boxes[0].Width(), base.Boxes[0].Width()*k) {
			t.Errorf("scale %v: width not scaled", k)
		}
		if !approx(g.Boxes[0].Height(), base.Boxes[0].Height()*k) {
			t.Errorf("scale %v: height not scaled", k)
		}
		if !approx(g.FontSize, base.FontSize*k) {
			t.Errorf("scale %v: font not scaled", k)
		}
	}
}

func TestMeasureZeroScale(t *testing.T) {
	g := Measure(Slot{Anchor: Point{0, 0}})
	if g.Scale != 1 || !approx(g.Boxes[0].Width(), 2) {
		t.Errorf("zero scale should act as 1, got %+v", g)
	}
	if g.HasLabel {
		t.Error("slot without label should not have a label box")
	}
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{nil, ""},
		{"3-1", "3-1"},
		{7, "7"},
		{int64(9), "9"},
		{11.0, "11"},
		{2.75, "2.75"},
		{true, "true"},
	}
	for _, tt := range tests {
		if got := FormatValue(tt.in); got != tt.want {
			t.Errorf("FormatValue(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestGeometryBounds(t *testing.T) {
	g := Measure(Slot{Anchor: Point{0, 0}, Scale: 1, Label: "x"})
	b := g.Bounds()
	if !approx(b.Left, 0) || !approx(b.Right, 2.5) || !approx(b.Bottom, -0.4) || !approx(b.Top, 0.85) {
		t.Errorf("Bounds() = %+v", b)
	}
}
