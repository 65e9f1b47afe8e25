package geom

import (
	"math"

	"penplot/pkg/core"
)

// MaxLatticePoints bounds Cols*Rows.
const MaxLatticePoints = 1 << 20

// Lattice lays out seed points on a regular grid.
type Lattice struct {
	Cols, Rows int
	Spacing    float64
	Offset     Point
}

// NewLattice validates and returns a lattice.
func NewLattice(cols, rows int, spacing float64, offset Point) (Lattice, error) {
	err := core.FirstError(
		core.AtLeast("cols", cols, 1),
		core.AtLeast("rows", rows, 1),
		core.Positive("spacing", spacing),
		core.Finite("offset.x", offset.X),
		core.Finite("offset.y", offset.Y),
	)
	if err != nil {
		return Lattice{}, err
	}
	if cols > MaxLatticePoints/rows {
		return Lattice{}, &core.ParamError{Name: "cols*rows", Value: float64(cols) * float64(rows), Reason: "lattice too large"}
	}
	return Lattice{Cols: cols, Rows: rows, Spacing: spacing, Offset: offset}, nil
}

// CoverLattice returns the lattice whose columns and rows cover a w by h
// area at the given spacing. A spacing that would need more than
// MaxLatticePoints points is rejected before anything is allocated.
func CoverLattice(w, h, spacing float64, offset Point) (Lattice, error) {
	if err := core.Positive("spacing", spacing); err != nil {
		return Lattice{}, err
	}
	cols, rows := math.Ceil(w/spacing), math.Ceil(h/spacing)
	if cols*rows > MaxLatticePoints || math.IsNaN(cols*rows) {
		return Lattice{}, &core.ParamError{Name: "spacing", Value: spacing, Reason: "too small for the area"}
	}
	return NewLattice(int(cols), int(rows), spacing, offset)
}

// Len returns the number of points.
func (l Lattice) Len() int { return l.Cols * l.Rows }

// Index returns the slice index for (col, row); columns are outermost.
func (l Lattice) Index(col, row int) int { return col*l.Rows + row }

// At returns the point at (col, row).
func (l Lattice) At(col, row int) Point {
	return Point{
		X: float64(col)*l.Spacing + l.Offset.X,
		Y: float64(row)*l.Spacing + l.Offset.Y,
	}
}

// Points lists the lattice column by column.
func (l Lattice) Points() []Point {
	out := make([]Point, 0, l.Len())
	for c := 0; c < l.Cols; c++ {
		for r := 0; r < l.Rows; r++ {
			out = append(out, l.At(c, r))
		}
	}
	return out
}

// Ring returns count points evenly spaced on a circle, starting at the
// top (heading 0) and turning toward +X.
func Ring(center Point, radius float64, count int) ([]Point, error) {
	if err := core.FirstError(core.AtLeast("count", count, 1), core.Finite("radius", radius)); err != nil {
		return nil, err
	}
	out := make([]Point, count)
	step := 2 * math.Pi / float64(count)
	for i := range out {
		out[i] = center.Toward(float64(i)*step, radius)
	}
	return out, nil
}
