// Package refline models the discretized reference polyline the planner anchors its Frenet
// frame on, and the matcher that projects a Cartesian query onto it.
package refline

import (
	"math"

	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
)

// ErrEmptyReferenceLine is returned when a ReferenceLine has fewer than two points.
var ErrEmptyReferenceLine = errors.New("reference line has fewer than two points")

// ErrNonMonotoneArcLength is returned when a ReferenceLine's samples do not have strictly
// increasing arc length.
var ErrNonMonotoneArcLength = errors.New("reference line arc length is not strictly increasing")

// Point is one sample of the reference polyline: arc length, position, heading, curvature, and
// curvature's derivative with respect to arc length.
type Point struct {
	S       float64
	X       float64
	Y       float64
	Heading float64
	Kappa   float64
	DKappa  float64
}

// Pos returns the point's planar position.
func (p Point) Pos() r2.Point { return r2.Point{X: p.X, Y: p.Y} }

// Line is an ordered, immutable sequence of Points with strictly increasing S. A Line's
// lifetime spans one planning cycle; nothing in this package mutates a Line after construction.
type Line struct {
	points []Point
}

// New validates and wraps a slice of Points into a Line. The slice is copied so the caller's
// backing array can be reused or mutated afterward without affecting the Line.
func New(points []Point) (*Line, error) {
	if len(points) < 2 {
		return nil, ErrEmptyReferenceLine
	}
	for i := 1; i < len(points); i++ {
		if points[i].S <= points[i-1].S {
			return nil, errors.Wrapf(ErrNonMonotoneArcLength, "point %d has s=%f, point %d has s=%f", i-1, points[i-1].S, i, points[i].S)
		}
	}
	cp := make([]Point, len(points))
	copy(cp, points)
	return &Line{points: cp}, nil
}

// Points returns the underlying samples. The returned slice must not be mutated by the caller.
func (l *Line) Points() []Point { return l.points }

// Front returns the first sample.
func (l *Line) Front() Point { return l.points[0] }

// Back returns the last sample.
func (l *Line) Back() Point { return l.points[len(l.points)-1] }

// MatchByArcLength returns the ReferencePoint at arc length s, linearly interpolating between
// the two bracketing samples. s is clamped to the line's [Front().S, Back().S] range.
func (l *Line) MatchByArcLength(s float64) Point {
	pts := l.points
	if s <= pts[0].S {
		return pts[0]
	}
	if s >= pts[len(pts)-1].S {
		return pts[len(pts)-1]
	}

	// Binary search for the first sample whose S exceeds s.
	lo, hi := 0, len(pts)-1
	for lo < hi {
		mid := (lo + hi) / 2
		if pts[mid].S < s {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	upper := pts[lo]
	lower := pts[lo-1]
	t := (s - lower.S) / (upper.S - lower.S)
	return interpolate(lower, upper, t)
}

// MatchByPosition returns the ReferencePoint minimizing Euclidean distance to (x, y), with
// segment-level linear interpolation so the returned S is continuous in (x, y). Ties (distances
// within floating point tolerance) are broken toward the smaller S.
func (l *Line) MatchByPosition(x, y float64) Point {
	query := r2.Point{X: x, Y: y}
	pts := l.points

	best := pts[0]
	bestDist := math.Inf(1)

	for i := 0; i < len(pts)-1; i++ {
		a, b := pts[i], pts[i+1]
		proj, t := projectOnSegment(query, a.Pos(), b.Pos())
		d := geomDistance(query, proj)
		if d < bestDist-1e-9 {
			bestDist = d
			best = interpolate(a, b, t)
		}
	}
	return best
}

// projectOnSegment projects query onto the segment [a, b], clamped to the segment, and returns
// the projected point plus the interpolation fraction t in [0, 1] along the segment.
func projectOnSegment(query, a, b r2.Point) (r2.Point, float64) {
	dx, dy := b.X-a.X, b.Y-a.Y
	lenSq := dx*dx + dy*dy
	if lenSq < 1e-12 {
		return a, 0
	}
	t := ((query.X-a.X)*dx + (query.Y-a.Y)*dy) / lenSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return r2.Point{X: a.X + t*dx, Y: a.Y + t*dy}, t
}

func geomDistance(a, b r2.Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// interpolate linearly blends two reference points at fraction t along the segment connecting
// them, including arc length, so the caller gets a single continuous Point.
func interpolate(a, b Point, t float64) Point {
	return Point{
		S:       a.S + t*(b.S-a.S),
		X:       a.X + t*(b.X-a.X),
		Y:       a.Y + t*(b.Y-a.Y),
		Heading: a.Heading + t*angularDelta(a.Heading, b.Heading),
		Kappa:   a.Kappa + t*(b.Kappa-a.Kappa),
		DKappa:  a.DKappa + t*(b.DKappa-a.DKappa),
	}
}

// angularDelta returns the signed shortest-path delta from a to b, so interpolation of heading
// across the +/-pi wraparound does not take the long way round.
func angularDelta(a, b float64) float64 {
	d := math.Mod(b-a+math.Pi, 2*math.Pi)
	if d < 0 {
		d += 2 * math.Pi
	}
	return d - math.Pi
}
