package layout

import "math"

// Insets are the horizontal adjustments applied to connector endpoints before
// routing. Start moves the first point right, End moves the second point left.
// Stub is the length of the horizontal stub an elbow takes from its start
// when the plan does not name an explicit midpoint.
type Insets struct {
	Start float64
	End   float64
	Stub  float64
}

// DefaultInsets match the bracket overlays.
var DefaultInsets = Insets{Start: 0.2, End: 4, Stub: 0.3}

// Path is a connector polyline in figure units.
type Path []Point

// Start returns the first point of the path.
func (p Path) Start() Point { return p[0] }

// End returns the last point of the path.
func (p Path) End() Point { return p[len(p)-1] }

// Rectilinear reports whether every segment is horizontal or vertical.
func (p Path) Rectilinear() bool {
	for i := 1; i < len(p); i++ {
		if p[i].X != p[i-1].X && p[i].Y != p[i-1].Y {
			return false
		}
	}
	return true
}

// Length returns the total length of the path.
func (p Path) Length() float64 {
	var n float64
	for i := 1; i < len(p); i++ {
		n += math.Hypot(p[i].X-p[i-1].X, p[i].Y-p[i-1].Y)
	}
	return n
}

// Route joins from and to after applying insets. With a nil mid the result is
// a single diagonal segment. Otherwise it is a horizontal stub to x = *mid, a
// vertical segment at *mid and a horizontal stub into the end point.
func Route(from, to Point, mid *float64, in Insets) Path {
	a := Point{from.X + in.Start, from.Y}
	b := Point{to.X - in.End, to.Y}
	if mid == nil {
		return Path{a, b}
	}
	m := *mid
	return Path{a, {m, a.Y}, {m, b.Y}, b}
}
