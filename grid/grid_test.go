package grid

import "testing"

func TestCellAtInsideSurface(t *testing.T) {
	surface := Size{Width: 800, Height: 800}

	cell, ok := CellAt(Point{X: 50, Y: 450}, surface, 8)
	if !ok {
		t.Fatal("expected point to map to a cell")
	}
	if cell.X != 0 || cell.Y != 4 {
		t.Errorf("expected (0,4), got (%d,%d)", cell.X, cell.Y)
	}
}

func TestCellAtWholeSurfaceStaysInBounds(t *testing.T) {
	surface := Size{Width: 640, Height: 480}

	for _, dim := range []int{1, 7, 20} {
		for px := 0.0; px < surface.Width; px += 13 {
			for py := 0.0; py < surface.Height; py += 13 {
				cell, ok := CellAt(Point{X: px, Y: py}, surface, dim)
				if !ok {
					t.Fatalf("dim %d: point (%f,%f) unexpectedly out of bounds", dim, px, py)
				}
				if cell.X < 0 || cell.X >= dim || cell.Y < 0 || cell.Y >= dim {
					t.Fatalf("dim %d: cell (%d,%d) out of range", dim, cell.X, cell.Y)
				}
			}
		}
	}
}

func TestCellAtOutsideSurface(t *testing.T) {
	surface := Size{Width: 400, Height: 400}

	cases := []Point{
		{X: -1, Y: 100},
		{X: 100, Y: -1},
		{X: 400, Y: 100},
		{X: 100, Y: 500},
	}
	for _, p := range cases {
		if _, ok := CellAt(p, surface, 10); ok {
			t.Errorf("expected (%f,%f) to be out of bounds", p.X, p.Y)
		}
	}
}

func TestCellAtInvalidGrid(t *testing.T) {
	if _, ok := CellAt(Point{X: 10, Y: 10}, Size{Width: 100, Height: 100}, 0); ok {
		t.Error("dimension 0 should not map")
	}
	if _, ok := CellAt(Point{X: 10, Y: 10}, Size{}, 10); ok {
		t.Error("zero surface should not map")
	}
}

func TestCellCenterPercent(t *testing.T) {
	x, y := CellCenterPercent(Cell{X: 0, Y: 0}, 10)
	if x != 5 || y != 5 {
		t.Errorf("expected (5,5), got (%f,%f)", x, y)
	}

	x, y = CellCenterPercent(Cell{X: 9, Y: 9}, 10)
	if x != 95 || y != 95 {
		t.Errorf("expected (95,95), got (%f,%f)", x, y)
	}
}

func TestCellCenterPercentMonotonic(t *testing.T) {
	const dim = 12
	prev := -1.0
	for i := 0; i < dim; i++ {
		x, _ := CellCenterPercent(Cell{X: i, Y: 0}, dim)
		if x <= prev {
			t.Fatalf("expected strictly increasing percentages, got %f after %f", x, prev)
		}
		if x <= 0 || x >= 100 {
			t.Fatalf("expected percent in (0,100), got %f", x)
		}
		prev = x
	}
}

func TestDistance(t *testing.T) {
	surface := Size{Width: 100, Height: 100}

	// 10px cells: a 30,40 pixel delta is a 3-4-5 triangle, 5 cells.
	d := Distance(Point{X: 0, Y: 0}, Point{X: 30, Y: 40}, surface, 10, 1.5)
	if d != 8 { // 5 * 1.5 = 7.5, rounded
		t.Errorf("expected 8, got %d", d)
	}

	d = Distance(Point{X: 50, Y: 50}, Point{X: 50, Y: 50}, surface, 10, 1.5)
	if d != 0 {
		t.Errorf("expected 0 for zero delta, got %d", d)
	}

	// One cell straight across.
	d = Distance(Point{X: 0, Y: 0}, Point{X: 10, Y: 0}, surface, 10, 1.5)
	if d != 2 { // 1.5 rounded
		t.Errorf("expected 2, got %d", d)
	}
}

func TestRectBetweenNormalizes(t *testing.T) {
	r := RectBetween(Cell{X: 5, Y: 1}, Cell{X: 2, Y: 4})

	if r.Min.X != 2 || r.Min.Y != 1 || r.Max.X != 5 || r.Max.Y != 4 {
		t.Errorf("unexpected rect: %+v", r)
	}
	if !r.Contains(Cell{X: 3, Y: 2}) {
		t.Error("expected rect to contain (3,2)")
	}
	if r.Contains(Cell{X: 6, Y: 2}) {
		t.Error("expected rect not to contain (6,2)")
	}
}

func TestRectCells(t *testing.T) {
	r := RectBetween(Cell{X: 1, Y: 1}, Cell{X: 2, Y: 3})

	cells := r.Cells()
	if len(cells) != 6 {
		t.Fatalf("expected 6 cells, got %d", len(cells))
	}
	for _, c := range cells {
		if !r.Contains(c) {
			t.Errorf("enumerated cell (%d,%d) outside rect", c.X, c.Y)
		}
	}
}

func TestCellKey(t *testing.T) {
	if got := (Cell{X: 3, Y: 12}).Key(); got != "3,12" {
		t.Errorf("unexpected key %q", got)
	}
	if (Cell{X: 3, Y: 12}).Key() == (Cell{X: 31, Y: 2}).Key() {
		t.Error("distinct cells must not share a key")
	}
}
