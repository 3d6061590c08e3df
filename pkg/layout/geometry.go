package layout

import (
	"fmt"
	"math"
	"strconv"
)

// Point is a position in figure units.
type Point struct {
	X, Y float64
}

// Add returns p shifted by dx, dy.
func (p Point) Add(dx, dy float64) Point { return Point{p.X + dx, p.Y + dy} }

// Rect is an axis-aligned rectangle in figure units (y axis up).
type Rect struct {
	Left, Right float64
	Bottom, Top float64
}

// Width returns the horizontal span of the rectangle.
func (r Rect) Width() float64 { return r.Right - r.Left }

// Height returns the vertical span of the rectangle.
func (r Rect) Height() float64 { return r.Top - r.Bottom }

// CenterX returns the horizontal center of the rectangle.
func (r Rect) CenterX() float64 { return (r.Left + r.Right) / 2 }

// CenterY returns the vertical center of the rectangle.
func (r Rect) CenterY() float64 { return (r.Bottom + r.Top) / 2 }

// Union returns the smallest rectangle containing r and o.
func (r Rect) Union(o Rect) Rect {
	return Rect{
		Left:   math.Min(r.Left, o.Left),
		Right:  math.Max(r.Right, o.Right),
		Bottom: math.Min(r.Bottom, o.Bottom),
		Top:    math.Max(r.Top, o.Top),
	}
}

// Side selects the colour family of a slot.
type Side int

const (
	Winners Side = iota
	Losers
)

// String returns the side name used in exports.
func (s Side) String() string {
	if s == Losers {
		return "losers"
	}
	return "winners"
}

// Entry is one display row of a slot: a name and its value.
type Entry struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// NewEntry builds an entry, formatting numeric values without trailing zeros.
func NewEntry(name string, value any) Entry {
	return Entry{Name: name, Value: FormatValue(value)}
}

// FormatValue renders a scalar the way it is shown in a value box.
// Whole floats print without a fraction ("11", not "11.0").
func FormatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		if x == math.Trunc(x) && math.Abs(x) < 1e15 {
			return strconv.FormatInt(int64(x), 10)
		}
		return strconv.FormatFloat(x, 'f', -1, 64)
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}

// Slot is a named position in a layout.
type Slot struct {
	Name    string
	Anchor  Point
	Scale   float64
	Entries [2]Entry
	Label   string
	Side    Side
}

// Metrics holds the unscaled slot dimensions. Every value except LabelGap
// is multiplied by the slot scale.
type Metrics struct {
	BoxWidth   float64 // entry (name) box width
	BoxHeight  float64 // height of one entry row
	ValueWidth float64 // value box width, placed right of the entry box
	ExitMargin float64 // gap between the value box and the exit point
	LabelWidth float64 // title label box width
	LabelGap   float64 // vertical gap between top box and label box (unscaled)
	TextInset  float64 // left padding of entry names
	FontSize   float64 // font size in points at scale 1
}

// DefaultMetrics are the bracket dimensions used by the stream overlays.
var DefaultMetrics = Metrics{
	BoxWidth:   2,
	BoxHeight:  0.4,
	ValueWidth: 0.5,
	ExitMargin: 0.1,
	LabelWidth: 2.5,
	LabelGap:   0.05,
	TextInset:  0.1,
	FontSize:   12,
}

// Geometry is the measured form of a slot.
type Geometry struct {
	Slot
	Boxes    [2]Rect // entry boxes, top first
	Values   [2]Rect // value boxes, top first
	LabelBox Rect    // zero unless HasLabel
	HasLabel bool
	FontSize float64
	Inset    float64
	Exit     Point // where outgoing connectors originate
}

// NameAt returns the left-center anchor for entry i's name.
func (g Geometry) NameAt(i int) Point {
	b := g.Boxes[i]
	return Point{b.Left + g.Inset, b.CenterY()}
}

// ValueAt returns the center of entry i's value box.
func (g Geometry) ValueAt(i int) Point {
	v := g.Values[i]
	return Point{v.CenterX(), v.CenterY()}
}

// Bounds returns the rectangle covering every box of the slot.
func (g Geometry) Bounds() Rect {
	r := g.Boxes[0].Union(g.Boxes[1]).Union(g.Values[0]).Union(g.Values[1])
	if g.HasLabel {
		r = r.Union(g.LabelBox)
	}
	return r
}

// Measure computes slot geometry with [DefaultMetrics].
func Measure(s Slot) Geometry {
	return DefaultMetrics.Measure(s)
}

// Measure computes the boxes and exit point of s. The top entry box sits on
// the anchor (its bottom edge at Anchor.Y), the second box directly below it.
// A zero Scale is treated as 1.
func (m Metrics) Measure(s Slot) Geometry {
	k := s.Scale
	if k == 0 {
		k = 1
		s.Scale = 1
	}
	x, y := s.Anchor.X, s.Anchor.Y
	w, h := m.BoxWidth*k, m.BoxHeight*k
	vx := x + w
	vw := m.ValueWidth * k

	g := Geometry{
		Slot: s,
		Boxes: [2]Rect{
			{Left: x, Right: x + w, Bottom: y, Top: y + h},
			{Left: x, Right: x + w, Bottom: y - h, Top: y},
		},
		Values: [2]Rect{
			{Left: vx, Right: vx + vw, Bottom: y, Top: y + h},
			{Left: vx, Right: vx + vw, Bottom: y - h, Top: y},
		},
		FontSize: m.FontSize * k,
		Inset:    m.TextInset,
		Exit:     Point{X: vx + (m.ValueWidth+m.ExitMargin)*k, Y: y},
	}
	if s.Label != "" {
		bottom := y + h + m.LabelGap
		g.LabelBox = Rect{Left: x, Right: x + m.LabelWidth*k, Bottom: bottom, Top: bottom + m.BoxHeight*k}
		g.HasLabel = true
	}
	return g
}
