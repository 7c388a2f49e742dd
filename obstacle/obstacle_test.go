package obstacle_test

import (
	"testing"

	"github.com/golang/geo/r2"
	"go.viam.com/test"

	"github.com/latticemotion/corelattice/geom"
	"github.com/latticemotion/corelattice/obstacle"
)

func TestNewStaticHoldsFootprintConstant(t *testing.T) {
	fp := geom.Rectangle{Center: r2.Point{X: 5, Y: 0}, Heading: 0, Length: 2, Width: 2}
	obs := obstacle.NewStatic(fp)

	test.That(t, obs.ID, test.ShouldNotBeBlank)
	test.That(t, obs.FootprintAt(0).Center.X, test.ShouldEqual, 5.0)
	test.That(t, obs.FootprintAt(10).Center.X, test.ShouldEqual, 5.0)
}

func TestFootprintAtInterpolatesBetweenPredictions(t *testing.T) {
	obs := obstacle.Obstacle{
		ID: "moving",
		Prediction: []obstacle.PredictedPose{
			{RelativeTime: 0, Footprint: geom.Rectangle{Center: r2.Point{X: 0, Y: 0}, Length: 2, Width: 2}},
			{RelativeTime: 2, Footprint: geom.Rectangle{Center: r2.Point{X: 20, Y: 0}, Length: 2, Width: 2}},
		},
	}

	fp := obs.FootprintAt(1)
	test.That(t, fp.Center.X, test.ShouldAlmostEqual, 10.0, 1e-9)
}

func TestFootprintAtHoldsEndsConstantOutsidePredictionRange(t *testing.T) {
	obs := obstacle.Obstacle{
		Prediction: []obstacle.PredictedPose{
			{RelativeTime: 0, Footprint: geom.Rectangle{Center: r2.Point{X: 0, Y: 0}, Length: 2, Width: 2}},
			{RelativeTime: 2, Footprint: geom.Rectangle{Center: r2.Point{X: 20, Y: 0}, Length: 2, Width: 2}},
		},
	}

	test.That(t, obs.FootprintAt(-1).Center.X, test.ShouldEqual, 0.0)
	test.That(t, obs.FootprintAt(5).Center.X, test.ShouldEqual, 20.0)
}
