package layout

// Grid maps logical column and row indices to figure coordinates.
// Shift is added to every row position, moving the whole layout vertically.
type Grid struct {
	Columns []float64
	Rows    []float64
	Shift   float64
}

// Point returns the coordinate of column col, row row.
func (g Grid) Point(col, row int) Point {
	return Point{X: g.Columns[col], Y: g.Rows[row] + g.Shift}
}

// Between returns the coordinate of column col halfway between rows r1 and r2.
func (g Grid) Between(col, r1, r2 int) Point {
	return Point{X: g.Columns[col], Y: (g.Rows[r1]+g.Rows[r2])/2 + g.Shift}
}

// Shifted returns a copy of g with dy added to its shift.
func (g Grid) Shifted(dy float64) Grid {
	g.Shift += dy
	return g
}
