// Package grid maps between pixel space and grid-cell space.
package grid

import (
	"math"
	"strconv"
)

// Point is a position in pixel space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Size is the rendering surface size in pixels.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Cell addresses one grid square.
type Cell struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Key returns a canonical string encoding, usable as a map key.
func (c Cell) Key() string {
	return strconv.Itoa(c.X) + "," + strconv.Itoa(c.Y)
}

// CellAt maps a pixel point to the cell under it. The second return value is
// false when the point falls outside the surface or the resulting index is
// outside [0, dimension).
func CellAt(p Point, surface Size, dimension int) (Cell, bool) {
	if dimension < 1 || surface.Width <= 0 || surface.Height <= 0 {
		return Cell{}, false
	}

	x := int(math.Floor(p.X / surface.Width * float64(dimension)))
	y := int(math.Floor(p.Y / surface.Height * float64(dimension)))

	if x < 0 || x >= dimension || y < 0 || y >= dimension {
		return Cell{}, false
	}
	return Cell{X: x, Y: y}, true
}

// CellCenterPercent returns the center of a cell as percentage offsets of the
// surface, so overlays stay positioned correctly across resizes.
func CellCenterPercent(c Cell, dimension int) (xPct, yPct float64) {
	if dimension < 1 {
		return 0, 0
	}
	xPct = (float64(c.X) + 0.5) / float64(dimension) * 100
	yPct = (float64(c.Y) + 0.5) / float64(dimension) * 100
	return xPct, yPct
}

// Distance converts the pixel delta between two points into grid-cell units,
// scales it by perCell and rounds to the nearest integer.
func Distance(a, b Point, surface Size, dimension int, perCell float64) int {
	if dimension < 1 || surface.Width <= 0 || surface.Height <= 0 {
		return 0
	}

	cellW := surface.Width / float64(dimension)
	cellH := surface.Height / float64(dimension)

	dx := (b.X - a.X) / cellW
	dy := (b.Y - a.Y) / cellH

	return int(math.Round(math.Hypot(dx, dy) * perCell))
}
