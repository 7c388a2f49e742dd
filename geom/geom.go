// Package geom holds the small set of 2D geometric primitives shared by the reference-line,
// Frenet, lattice, and collision packages.
package geom

import (
	"math"

	"github.com/golang/geo/r2"
)

// Pose is a 2D Cartesian pose: position plus heading, with curvature of the path passing
// through it. Curvature is carried alongside the pose rather than computed on demand because
// every producer of a Pose in this module (the reference line, the Frenet converter) already
// knows it.
type Pose struct {
	Point r2.Point
	Heading float64 // radians, measured counter-clockwise from +X
	Kappa   float64 // path curvature at this pose, 1/m
}

// X is a convenience accessor.
func (p Pose) X() float64 { return p.Point.X }

// Y is a convenience accessor.
func (p Pose) Y() float64 { return p.Point.Y }

// NormalizeAngle wraps a radian angle into [-pi, pi).
func NormalizeAngle(theta float64) float64 {
	a := math.Mod(theta+math.Pi, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a - math.Pi
}

// Rectangle is an oriented rectangle: center, heading, full length (along heading) and full
// width (perpendicular to heading). Used for the ego footprint and for obstacle footprints.
type Rectangle struct {
	Center  r2.Point
	Heading float64
	Length  float64
	Width   float64
}

// Corners returns the four corners of the rectangle in a fixed winding order, used by the
// collision checker for separating-axis tests.
func (r Rectangle) Corners() [4]r2.Point {
	halfL := r.Length / 2
	halfW := r.Width / 2
	cosH, sinH := math.Cos(r.Heading), math.Sin(r.Heading)

	local := [4]r2.Point{
		{X: halfL, Y: halfW},
		{X: halfL, Y: -halfW},
		{X: -halfL, Y: -halfW},
		{X: -halfL, Y: halfW},
	}
	var out [4]r2.Point
	for i, c := range local {
		out[i] = r2.Point{
			X: r.Center.X + c.X*cosH - c.Y*sinH,
			Y: r.Center.Y + c.X*sinH + c.Y*cosH,
		}
	}
	return out
}

// Axes returns the two unique separating-axis normals for the rectangle (its own edge normals).
func (r Rectangle) Axes() [2]r2.Point {
	return [2]r2.Point{
		{X: math.Cos(r.Heading), Y: math.Sin(r.Heading)},
		{X: -math.Sin(r.Heading), Y: math.Cos(r.Heading)},
	}
}

// Distance returns the Euclidean distance between two points.
func Distance(a, b r2.Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// Lerp linearly interpolates between a and b by t in [0, 1].
func Lerp(a, b r2.Point, t float64) r2.Point {
	return r2.Point{X: a.X + (b.X-a.X)*t, Y: a.Y + (b.Y-a.Y)*t}
}
