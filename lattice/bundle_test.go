package lattice_test

import (
	"testing"

	"go.viam.com/test"

	"github.com/latticemotion/corelattice/decision"
	"github.com/latticemotion/corelattice/frenet"
	"github.com/latticemotion/corelattice/lattice"
)

func TestGenerateCruiseBundleCardinality(t *testing.T) {
	init := frenet.State{Lon: frenet.LonState{S: 0, SDot: 10, SDDot: 0}}
	cfg := lattice.GridConfig{
		TimeGrid:       []float64{3, 5},
		VelocityGrid:   []float64{12, 15},
		LateralOffsets: []float64{-3.5, 0, 3.5},
		ArcLengthGrid:  []float64{40},
	}
	bundle := lattice.Generate(init, decision.Cruise{TargetSpeed: 15}, cfg)
	test.That(t, len(bundle.Lon), test.ShouldEqual, len(cfg.TimeGrid)*len(cfg.VelocityGrid))
	test.That(t, len(bundle.Lat), test.ShouldEqual, len(cfg.ArcLengthGrid)*len(cfg.LateralOffsets))
}

func TestGenerateIsNeverEmpty(t *testing.T) {
	init := frenet.State{}
	bundle := lattice.Generate(init, decision.Cruise{TargetSpeed: 10}, lattice.GridConfig{})
	test.That(t, len(bundle.Lon), test.ShouldBeGreaterThan, 0)
	test.That(t, len(bundle.Lat), test.ShouldBeGreaterThan, 0)
}

func TestGenerateStopBundleUsesQuinticToStation(t *testing.T) {
	init := frenet.State{Lon: frenet.LonState{S: 0, SDot: 12, SDDot: 0}}
	cfg := lattice.GridConfig{TimeGrid: []float64{4, 5}}
	bundle := lattice.Generate(init, decision.Stop{StationS: 40}, cfg)
	test.That(t, len(bundle.Lon), test.ShouldEqual, 2)
	for _, c := range bundle.Lon {
		if _, ok := c.(lattice.QuinticCurve); !ok {
			t.Fatalf("expected QuinticCurve for a Stop target, got %T", c)
		}
	}
}
