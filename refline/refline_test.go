package refline_test

import (
	"testing"

	"go.viam.com/test"

	"github.com/latticemotion/corelattice/refline"
)

func TestNewRejectsTooFewPoints(t *testing.T) {
	_, err := refline.New([]refline.Point{{S: 0}})
	test.That(t, err, test.ShouldNotBeNil)
}

func TestNewRejectsNonMonotoneArcLength(t *testing.T) {
	_, err := refline.New([]refline.Point{{S: 0}, {S: 5}, {S: 3}})
	test.That(t, err, test.ShouldNotBeNil)
}

func TestMatchByArcLengthInterpolates(t *testing.T) {
	line, err := refline.New([]refline.Point{
		{S: 0, X: 0, Y: 0, Heading: 0},
		{S: 10, X: 10, Y: 0, Heading: 0},
	})
	test.That(t, err, test.ShouldBeNil)

	pt := line.MatchByArcLength(4)
	test.That(t, pt.X, test.ShouldAlmostEqual, 4.0, 1e-9)
	test.That(t, pt.S, test.ShouldAlmostEqual, 4.0, 1e-9)
}

func TestMatchByArcLengthClampsToRange(t *testing.T) {
	line, err := refline.New([]refline.Point{
		{S: 0, X: 0, Y: 0},
		{S: 10, X: 10, Y: 0},
	})
	test.That(t, err, test.ShouldBeNil)

	test.That(t, line.MatchByArcLength(-5).S, test.ShouldEqual, 0.0)
	test.That(t, line.MatchByArcLength(50).S, test.ShouldEqual, 10.0)
}

func TestMatchByPositionProjectsOntoNearestSegment(t *testing.T) {
	line, err := refline.New([]refline.Point{
		{S: 0, X: 0, Y: 0, Heading: 0},
		{S: 10, X: 10, Y: 0, Heading: 0},
		{S: 20, X: 20, Y: 0, Heading: 0},
	})
	test.That(t, err, test.ShouldBeNil)

	pt := line.MatchByPosition(5, 2)
	test.That(t, pt.S, test.ShouldAlmostEqual, 5.0, 1e-6)
	test.That(t, pt.Y, test.ShouldAlmostEqual, 0.0, 1e-6)
}
