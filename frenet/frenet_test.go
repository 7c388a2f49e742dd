package frenet_test

import (
	"math"
	"testing"

	"go.viam.com/test"

	"github.com/latticemotion/corelattice/frenet"
	"github.com/latticemotion/corelattice/refline"
)

func straightRefLine(t *testing.T) *refline.Line {
	points := make([]refline.Point, 0, 100)
	for i := 0; i < 100; i++ {
		points = append(points, refline.Point{S: float64(i), X: float64(i), Y: 0, Heading: 0, Kappa: 0, DKappa: 0})
	}
	line, err := refline.New(points)
	test.That(t, err, test.ShouldBeNil)
	return line
}

func curvedRefLine(t *testing.T, radius float64, n int) *refline.Line {
	points := make([]refline.Point, 0, n)
	arcStep := 0.1
	for i := 0; i < n; i++ {
		s := float64(i) * arcStep
		theta := s / radius
		points = append(points, refline.Point{
			S:       s,
			X:       radius * math.Sin(theta),
			Y:       radius * (1 - math.Cos(theta)),
			Heading: theta,
			Kappa:   1 / radius,
			DKappa:  0,
		})
	}
	line, err := refline.New(points)
	test.That(t, err, test.ShouldBeNil)
	return line
}

// TestRoundTripStraight checks the Frenet round-trip invariant: on the reference line with
// d=0, FrenetToCartesian(CartesianToFrenet(x)) reproduces x.
func TestRoundTripStraight(t *testing.T) {
	line := straightRefLine(t)
	refPt := line.MatchByArcLength(42.0)

	cart := frenet.CartesianState{X: 42.0, Y: 0, Heading: 0, Kappa: 0, V: 10, A: 1}
	state := frenet.CartesianToFrenet(refPt, cart)
	got := frenet.FrenetToCartesian(refPt, state.Lon, state.Lat)

	test.That(t, got.X, test.ShouldAlmostEqual, cart.X, 1e-6)
	test.That(t, got.Y, test.ShouldAlmostEqual, cart.Y, 1e-6)
	test.That(t, got.Heading, test.ShouldAlmostEqual, cart.Heading, 1e-6)
	test.That(t, got.V, test.ShouldAlmostEqual, cart.V, 1e-6)
	test.That(t, got.A, test.ShouldAlmostEqual, cart.A, 1e-6)
}

// TestRoundTripOffsetLateral exercises a nonzero lateral offset off the reference line.
func TestRoundTripOffsetLateral(t *testing.T) {
	line := straightRefLine(t)
	refPt := line.MatchByArcLength(10.0)

	cart := frenet.CartesianState{X: 10.0, Y: 1.5, Heading: 0.05, Kappa: 0.01, V: 8, A: -0.5}
	state := frenet.CartesianToFrenet(refPt, cart)
	got := frenet.FrenetToCartesian(refPt, state.Lon, state.Lat)

	test.That(t, got.X, test.ShouldAlmostEqual, cart.X, 1e-6)
	test.That(t, got.Y, test.ShouldAlmostEqual, cart.Y, 1e-6)
	test.That(t, got.Heading, test.ShouldAlmostEqual, cart.Heading, 1e-6)
}

// TestRoundTripCurvedRefLine places the ego on an arc of radius 50 m, d=0, and checks it
// converts and reconstructs to within 1e-5.
func TestRoundTripCurvedRefLine(t *testing.T) {
	line := curvedRefLine(t, 50.0, 200)
	refPt := line.MatchByArcLength(5.0)

	cart := frenet.CartesianState{X: refPt.X, Y: refPt.Y, Heading: refPt.Heading, Kappa: refPt.Kappa, V: 6, A: 0}
	state := frenet.CartesianToFrenet(refPt, cart)
	test.That(t, state.Lat.D, test.ShouldAlmostEqual, 0.0, 1e-9)

	got := frenet.FrenetToCartesian(refPt, state.Lon, state.Lat)
	test.That(t, got.X, test.ShouldAlmostEqual, cart.X, 1e-5)
	test.That(t, got.Y, test.ShouldAlmostEqual, cart.Y, 1e-5)
	test.That(t, got.Heading, test.ShouldAlmostEqual, cart.Heading, 1e-5)
}
