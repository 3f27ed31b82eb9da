package grid

// Rect is an axis-aligned, inclusive cell rectangle. Min and Max are
// normalized so Min.X <= Max.X and Min.Y <= Max.Y.
type Rect struct {
	Min Cell `json:"min"`
	Max Cell `json:"max"`
}

// RectBetween returns the normalized rectangle spanning two corner cells.
func RectBetween(a, b Cell) Rect {
	r := Rect{Min: a, Max: b}
	if r.Min.X > r.Max.X {
		r.Min.X, r.Max.X = r.Max.X, r.Min.X
	}
	if r.Min.Y > r.Max.Y {
		r.Min.Y, r.Max.Y = r.Max.Y, r.Min.Y
	}
	return r
}

// Contains reports whether the cell falls inside the rectangle.
func (r Rect) Contains(c Cell) bool {
	return c.X >= r.Min.X && c.X <= r.Max.X && c.Y >= r.Min.Y && c.Y <= r.Max.Y
}

// Cells enumerates every cell in the rectangle, row by row.
func (r Rect) Cells() []Cell {
	cells := make([]Cell, 0, (r.Max.X-r.Min.X+1)*(r.Max.Y-r.Min.Y+1))
	for y := r.Min.Y; y <= r.Max.Y; y++ {
		for x := r.Min.X; x <= r.Max.X; x++ {
			cells = append(cells, Cell{X: x, Y: y})
		}
	}
	return cells
}
