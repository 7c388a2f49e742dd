package constraint_test

import (
	"testing"

	"go.viam.com/test"

	"github.com/latticemotion/corelattice/constraint"
	"github.com/latticemotion/corelattice/lattice"
	"github.com/latticemotion/corelattice/trajectory"
)

func defaultLimits() constraint.Limits {
	return constraint.Limits{
		VMax:     20,
		ALongMax: 2,
		ALongMin: -4,
		ALatMax:  3,
		JerkMax:  4,
		KappaMax: 0.2,
	}
}

func TestIsValidPairAcceptsGentleCurve(t *testing.T) {
	lon := lattice.NewQuarticCurve(0, 10, 0, 12, 0, 5)
	lat := lattice.NewQuinticCurve(0, 0, 0, 0, 0, 0, 40)
	test.That(t, constraint.IsValidPair(lon, lat, defaultLimits(), 0.1), test.ShouldBeTrue)
}

func TestIsValidPairRejectsOverspeed(t *testing.T) {
	lon := lattice.NewQuarticCurve(0, 19, 0, 100, 0, 5)
	lat := lattice.NewQuinticCurve(0, 0, 0, 0, 0, 0, 40)
	test.That(t, constraint.IsValidPair(lon, lat, defaultLimits(), 0.1), test.ShouldBeFalse)
}

func TestIsValidLonCurveRejectsHardBraking(t *testing.T) {
	lon := lattice.NewQuinticCurve(0, 20, 0, 1, 0, 0, 1)
	test.That(t, constraint.IsValidLonCurve(lon, defaultLimits(), 0.1), test.ShouldBeFalse)
}

func TestIsValidTrajectoryRejectsOverLatAccel(t *testing.T) {
	traj := trajectory.Discretized{
		{X: 0, Y: 0, Heading: 0, Kappa: 0.15, V: 15, A: 0, RelativeTime: 0},
	}
	test.That(t, constraint.IsValidTrajectory(traj, defaultLimits()), test.ShouldBeFalse)
}

func TestIsValidTrajectoryAcceptsNominal(t *testing.T) {
	traj := trajectory.Discretized{
		{X: 0, Y: 0, Heading: 0, Kappa: 0.01, V: 10, A: 0.5, RelativeTime: 0},
		{X: 1, Y: 0, Heading: 0, Kappa: 0.01, V: 10.05, A: 0.5, RelativeTime: 0.1},
	}
	test.That(t, constraint.IsValidTrajectory(traj, defaultLimits()), test.ShouldBeTrue)
}
