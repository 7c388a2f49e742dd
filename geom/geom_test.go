package geom_test

import (
	"math"
	"testing"

	"github.com/golang/geo/r2"
	"go.viam.com/test"

	"github.com/latticemotion/corelattice/geom"
)

func TestNormalizeAngleWrapsIntoRange(t *testing.T) {
	test.That(t, geom.NormalizeAngle(3*math.Pi), test.ShouldAlmostEqual, -math.Pi, 1e-9)
	test.That(t, geom.NormalizeAngle(0), test.ShouldAlmostEqual, 0.0, 1e-9)
}

func TestRectangleCornersAreCenteredAndAxisAligned(t *testing.T) {
	r := geom.Rectangle{Center: r2.Point{X: 0, Y: 0}, Heading: 0, Length: 4, Width: 2}
	corners := r.Corners()
	for _, c := range corners {
		test.That(t, math.Abs(c.X), test.ShouldAlmostEqual, 2.0, 1e-9)
		test.That(t, math.Abs(c.Y), test.ShouldAlmostEqual, 1.0, 1e-9)
	}
}

func TestRectangleAxesAreOrthonormal(t *testing.T) {
	r := geom.Rectangle{Heading: math.Pi / 4}
	axes := r.Axes()
	dot := axes[0].X*axes[1].X + axes[0].Y*axes[1].Y
	test.That(t, dot, test.ShouldAlmostEqual, 0.0, 1e-9)
}

func TestLerpInterpolatesLinearly(t *testing.T) {
	a := r2.Point{X: 0, Y: 0}
	b := r2.Point{X: 10, Y: 20}
	mid := geom.Lerp(a, b, 0.5)
	test.That(t, mid.X, test.ShouldAlmostEqual, 5.0, 1e-9)
	test.That(t, mid.Y, test.ShouldAlmostEqual, 10.0, 1e-9)
}
