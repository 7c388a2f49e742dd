package collision_test

import (
	"testing"

	"github.com/golang/geo/r2"
	"go.viam.com/test"

	"github.com/latticemotion/corelattice/collision"
	"github.com/latticemotion/corelattice/geom"
	"github.com/latticemotion/corelattice/obstacle"
	"github.com/latticemotion/corelattice/trajectory"
)

func TestInCollisionDetectsOverlap(t *testing.T) {
	checker := collision.Checker{EgoLength: 4, EgoWidth: 2}
	traj := trajectory.Discretized{
		{X: 0, Y: 0, Heading: 0, RelativeTime: 0},
		{X: 5, Y: 0, Heading: 0, RelativeTime: 1},
	}
	obs := obstacle.NewStatic(geom.Rectangle{Center: r2.Point{X: 5, Y: 0}, Heading: 0, Length: 2, Width: 2})

	test.That(t, checker.InCollision(traj, []obstacle.Obstacle{obs}), test.ShouldBeTrue)
}

func TestInCollisionClearPath(t *testing.T) {
	checker := collision.Checker{EgoLength: 4, EgoWidth: 2}
	traj := trajectory.Discretized{
		{X: 0, Y: 0, Heading: 0, RelativeTime: 0},
		{X: 5, Y: 10, Heading: 0, RelativeTime: 1},
	}
	obs := obstacle.NewStatic(geom.Rectangle{Center: r2.Point{X: 5, Y: 0}, Heading: 0, Length: 2, Width: 2})

	test.That(t, checker.InCollision(traj, []obstacle.Obstacle{obs}), test.ShouldBeFalse)
}

func TestDiagnoseReportsEveryOverlap(t *testing.T) {
	checker := collision.Checker{EgoLength: 4, EgoWidth: 2}
	traj := trajectory.Discretized{
		{X: 0, Y: 0, Heading: 0, RelativeTime: 0},
		{X: 5, Y: 0, Heading: 0, RelativeTime: 1},
	}
	obsA := obstacle.NewStatic(geom.Rectangle{Center: r2.Point{X: 0, Y: 0}, Heading: 0, Length: 2, Width: 2})
	obsB := obstacle.NewStatic(geom.Rectangle{Center: r2.Point{X: 5, Y: 0}, Heading: 0, Length: 2, Width: 2})

	collisions := checker.Diagnose(traj, []obstacle.Obstacle{obsA, obsB})
	test.That(t, len(collisions), test.ShouldEqual, 2)
}
