// Package geom holds the output contract of every generator: points,
// pen-plotter paths built from a small set of primitives, and ordered
// layers of those paths.
package geom

import (
	"fmt"
	"math"
	"strings"
)

// Point is a position in the sketch's working units.
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{x, y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

// Add returns p + q.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Sub returns p - q.
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// Scale returns p * s.
func (p Point) Scale(s float64) Point { return Point{p.X * s, p.Y * s} }

// Len returns the distance from the origin.
func (p Point) Len() float64 { return math.Hypot(p.X, p.Y) }

// Toward returns p moved by dist along heading. Headings follow the
// plotter convention used throughout the sketches: 0 points down the +Y
// axis and angles grow toward +X, so the step is (sin a, cos a).
func (p Point) Toward(heading, dist float64) Point {
	s, c := math.Sincos(heading)
	return Point{p.X + dist*s, p.Y + dist*c}
}

type primitiveKind uint8

const (
	kindMoveTo primitiveKind = iota
	kindLineTo
	kindArcTo
	kindClose
)

// Primitive is one pen instruction of a Path.
type Primitive interface {
	kind() primitiveKind
}

// MoveTo lifts the pen and places it at the point.
type MoveTo Point

// LineTo draws a straight segment to the point.
type LineTo Point

// ArcTo draws a circular arc. Angles are in radians measured the canvas
// way, x = cx + r cos a and y = cy + r sin a, and the sweep runs from
// Start to End. If the pen is down, a segment joins the current point to
// the arc's start.
type ArcTo struct {
	Center     Point
	Radius     float64
	Start, End float64
}

// ClosePath draws back to the start of the current subpath.
type ClosePath struct{}

func (MoveTo) kind() primitiveKind    { return kindMoveTo }
func (LineTo) kind() primitiveKind    { return kindLineTo }
func (ArcTo) kind() primitiveKind     { return kindArcTo }
func (ClosePath) kind() primitiveKind { return kindClose }

// StartPoint returns where the arc begins.
func (a ArcTo) StartPoint() Point { return a.pointAt(a.Start) }

// EndPoint returns where the arc ends.
func (a ArcTo) EndPoint() Point { return a.pointAt(a.End) }

func (a ArcTo) pointAt(angle float64) Point {
	s, c := math.Sincos(angle)
	return Point{a.Center.X + a.Radius*c, a.Center.Y + a.Radius*s}
}

// Path is an ordered pen-down/pen-up trace.
type Path []Primitive

// MoveTo appends a MoveTo.
func (p *Path) MoveTo(pt Point) *Path {
	*p = append(*p, MoveTo(pt))
	return p
}

// LineTo appends a LineTo.
func (p *Path) LineTo(pt Point) *Path {
	*p = append(*p, LineTo(pt))
	return p
}

// Arc appends an arc around center.
func (p *Path) Arc(center Point, radius, start, end float64) *Path {
	*p = append(*p, ArcTo{Center: center, Radius: radius, Start: start, End: end})
	return p
}

// Circle appends a full turn arc.
func (p *Path) Circle(center Point, radius float64) *Path {
	return p.Arc(center, radius, 0, 2*math.Pi)
}

// Close appends a ClosePath.
func (p *Path) Close() *Path {
	*p = append(*p, ClosePath{})
	return p
}

// Polygon appends a closed outline through pts.
func (p *Path) Polygon(pts ...Point) *Path {
	if len(pts) == 0 {
		return p
	}
	p.MoveTo(pts[0])
	for _, pt := range pts[1:] {
		p.LineTo(pt)
	}
	return p.Close()
}

// Segment returns a two point path.
func Segment(a, b Point) Path {
	return Path{MoveTo(a), LineTo(b)}
}

// CirclePath returns a path holding one full circle.
func CirclePath(center Point, radius float64) Path {
	var p Path
	p.Circle(center, radius)
	return p
}

// String renders the path in SVG-like syntax with arcs written as their
// center, radius and angles. It is meant for debugging.
func (p Path) String() string {
	chunks := make([]string, 0, len(p))
	for _, op := range p {
		switch op := op.(type) {
		case MoveTo:
			chunks = append(chunks, fmt.Sprintf("M%.4f,%.4f", op.X, op.Y))
		case LineTo:
			chunks = append(chunks, fmt.Sprintf("L%.4f,%.4f", op.X, op.Y))
		case ArcTo:
			chunks = append(chunks, fmt.Sprintf("A(%.4f,%.4f r%.4f %.4f..%.4f)",
				op.Center.X, op.Center.Y, op.Radius, op.Start, op.End))
		case ClosePath:
			chunks = append(chunks, "Z")
		}
	}
	return strings.Join(chunks, " ")
}

// Polyline is a run of connected points.
type Polyline []Point

// Path converts the polyline to a MoveTo followed by LineTos.
func (pl Polyline) Path() Path {
	if len(pl) == 0 {
		return nil
	}
	p := make(Path, 0, len(pl))
	p = append(p, MoveTo(pl[0]))
	for _, pt := range pl[1:] {
		p = append(p, LineTo(pt))
	}
	return p
}

// Length returns the summed segment length.
func (pl Polyline) Length() float64 {
	var total float64
	for i := 1; i < len(pl); i++ {
		total += pl[i].Sub(pl[i-1]).Len()
	}
	return total
}
