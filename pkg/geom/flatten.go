package geom

import "math"

// DefaultTolerance is the chord error used by previews, in working units.
const DefaultTolerance = 0.005

// Flatten converts a path into polylines, replacing arcs by chords whose
// sagitta stays under tol. A lone LineTo with no current point starts a
// new subpath the way a canvas context does.
func Flatten(p Path, tol float64) []Polyline {
	if tol <= 0 {
		tol = DefaultTolerance
	}
	var (
		out   []Polyline
		cur   Polyline
		start Point
		open  bool
	)
	flush := func() {
		if len(cur) >= 2 {
			out = append(out, cur)
		}
		cur = nil
	}
	begin := func(pt Point) {
		flush()
		cur = Polyline{pt}
		start = pt
		open = true
	}

	for _, op := range p {
		switch op := op.(type) {
		case MoveTo:
			begin(Point(op))
		case LineTo:
			if !open {
				begin(Point(op))
			}
			cur = append(cur, Point(op))
		case ArcTo:
			first := op.StartPoint()
			if !open {
				begin(first)
			} else {
				cur = append(cur, first)
			}
			cur = appendArc(cur, op, tol)
		case ClosePath:
			if open && len(cur) > 0 {
				cur = append(cur, start)
				flush()
				cur = Polyline{start}
			}
		}
	}
	flush()
	return out
}

func appendArc(dst Polyline, a ArcTo, tol float64) Polyline {
	sweep := a.End - a.Start
	if a.Radius <= 0 || sweep == 0 {
		return dst
	}
	maxStep := math.Pi / 2
	if tol < a.Radius {
		maxStep = math.Min(maxStep, 2*math.Acos(1-tol/a.Radius))
	}
	n := int(math.Ceil(math.Abs(sweep) / maxStep))
	if n < 1 {
		n = 1
	}
	for i := 1; i <= n; i++ {
		dst = append(dst, a.pointAt(a.Start+sweep*float64(i)/float64(n)))
	}
	return dst
}

// Rect is an axis-aligned box.
type Rect struct {
	Min, Max Point
}

// Empty reports whether the box has no extent.
func (r Rect) Empty() bool { return r.Max.X < r.Min.X || r.Max.Y < r.Min.Y }

// Contains reports whether pt lies inside the box, edges included.
func (r Rect) Contains(pt Point) bool {
	return pt.X >= r.Min.X && pt.X <= r.Max.X && pt.Y >= r.Min.Y && pt.Y <= r.Max.Y
}

// Inset shrinks the box by m on every side.
func (r Rect) Inset(m float64) Rect {
	return Rect{Min: Point{r.Min.X + m, r.Min.Y + m}, Max: Point{r.Max.X - m, r.Max.Y - m}}
}

func emptyRect() Rect {
	return Rect{
		Min: Point{math.Inf(1), math.Inf(1)},
		Max: Point{math.Inf(-1), math.Inf(-1)},
	}
}

func (r Rect) extend(pt Point) Rect {
	r.Min.X = math.Min(r.Min.X, pt.X)
	r.Min.Y = math.Min(r.Min.Y, pt.Y)
	r.Max.X = math.Max(r.Max.X, pt.X)
	r.Max.Y = math.Max(r.Max.Y, pt.Y)
	return r
}

// Bounds returns the box around the flattened paths. It is empty when
// there is nothing to draw.
func Bounds(paths []Path, tol float64) Rect {
	r := emptyRect()
	for _, p := range paths {
		for _, pl := range Flatten(p, tol) {
			for _, pt := range pl {
				r = r.extend(pt)
			}
		}
	}
	return r
}
