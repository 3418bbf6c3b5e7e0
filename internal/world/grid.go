package world

import (
	"fmt"
	"math"
)

// Grid is a square, row-major field of values in [0,1].
// Cell (x, y) lives at index y*resolution + x.
type Grid struct {
	resolution int
	values     []float64
}

func newGrid(resolution int) *Grid {
	return &Grid{
		resolution: resolution,
		values:     make([]float64, resolution*resolution),
	}
}

func (g *Grid) Resolution() int { return g.resolution }

// InBounds reports whether (x, y) addresses a cell.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.resolution && y < g.resolution
}

// At returns the value at (x, y). Callers must check bounds.
func (g *Grid) At(x, y int) float64 {
	return g.values[y*g.resolution+x]
}

// Get is the bounds-checked form of At.
func (g *Grid) Get(x, y int) (float64, error) {
	if !g.InBounds(x, y) {
		return 0, fmt.Errorf("%w: (%d, %d) outside %dx%d", ErrOutOfBounds, x, y, g.resolution, g.resolution)
	}
	return g.At(x, y), nil
}

func (g *Grid) set(x, y int, v float64) {
	g.values[y*g.resolution+x] = v
}

// Row returns a copy of row y.
func (g *Grid) Row(y int) []float64 {
	start := y * g.resolution
	return append([]float64(nil), g.values[start:start+g.resolution]...)
}

// Rows returns the grid as a slice of rows, outer index y.
func (g *Grid) Rows() [][]float64 {
	rows := make([][]float64, g.resolution)
	for y := range rows {
		rows[y] = g.Row(y)
	}
	return rows
}

// Values returns a copy of the backing row-major slice.
func (g *Grid) Values() []float64 {
	return append([]float64(nil), g.values...)
}

// Equal reports exact per-cell equality.
func (g *Grid) Equal(other *Grid) bool {
	if other == nil || g.resolution != other.resolution {
		return false
	}
	for i, v := range g.values {
		if other.values[i] != v {
			return false
		}
	}
	return true
}

// MinMax returns the smallest and largest values in the grid.
func (g *Grid) MinMax() (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, v := range g.values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return lo, hi
}
