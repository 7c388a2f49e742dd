package lattice_test

import (
	"testing"

	"go.viam.com/test"

	"github.com/latticemotion/corelattice/lattice"
)

func TestQuarticCurveBoundaryConditions(t *testing.T) {
	c := lattice.NewQuarticCurve(0, 10, 0, 15, 0, 5)
	test.That(t, c.Evaluate(0, 0), test.ShouldAlmostEqual, 0.0, 1e-9)
	test.That(t, c.Evaluate(1, 0), test.ShouldAlmostEqual, 10.0, 1e-9)
	test.That(t, c.Evaluate(2, 0), test.ShouldAlmostEqual, 0.0, 1e-9)
	test.That(t, c.Evaluate(1, 5), test.ShouldAlmostEqual, 15.0, 1e-6)
	test.That(t, c.Evaluate(2, 5), test.ShouldAlmostEqual, 0.0, 1e-6)
	test.That(t, c.ParamLength(), test.ShouldEqual, 5.0)
}

func TestQuinticCurveBoundaryConditions(t *testing.T) {
	c := lattice.NewQuinticCurve(0, 12, 0, 40, 0, 0, 4)
	test.That(t, c.Evaluate(0, 0), test.ShouldAlmostEqual, 0.0, 1e-9)
	test.That(t, c.Evaluate(1, 0), test.ShouldAlmostEqual, 12.0, 1e-9)
	test.That(t, c.Evaluate(0, 4), test.ShouldAlmostEqual, 40.0, 1e-6)
	test.That(t, c.Evaluate(1, 4), test.ShouldAlmostEqual, 0.0, 1e-6)
	test.That(t, c.Evaluate(2, 4), test.ShouldAlmostEqual, 0.0, 1e-6)
}

// TestCurveExtrapolatesLinearly checks the invariant that Evaluate is defined for any
// param >= 0, with linear extrapolation beyond ParamLength rather than an undefined result.
func TestCurveExtrapolatesLinearly(t *testing.T) {
	c := lattice.NewQuinticCurve(0, 10, 0, 50, 10, 0, 5)
	endPos := c.Evaluate(0, 5)
	endVel := c.Evaluate(1, 5)

	beyond := c.Evaluate(0, 7)
	test.That(t, beyond, test.ShouldAlmostEqual, endPos+endVel*2, 1e-6)
	test.That(t, c.Evaluate(1, 7), test.ShouldAlmostEqual, endVel, 1e-9)
	test.That(t, c.Evaluate(2, 7), test.ShouldAlmostEqual, c.Evaluate(2, 5), 1e-9)
}

func TestNumericCurveInterpolatesAndExtrapolates(t *testing.T) {
	c := lattice.NewNumericCurve([]float64{0, 1, 2}, []float64{0, 2, 6})
	test.That(t, c.Evaluate(0, 0.5), test.ShouldAlmostEqual, 1.0, 1e-9)
	test.That(t, c.Evaluate(0, 1.5), test.ShouldAlmostEqual, 4.0, 1e-9)
	test.That(t, c.Evaluate(1, 1.5), test.ShouldAlmostEqual, 4.0, 1e-9)
	test.That(t, c.Evaluate(0, 3), test.ShouldAlmostEqual, 10.0, 1e-9)
	test.That(t, c.ParamLength(), test.ShouldEqual, 2.0)
}
