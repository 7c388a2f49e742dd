package lattice

import (
	"github.com/latticemotion/corelattice/decision"
	"github.com/latticemotion/corelattice/frenet"
)

// GridConfig parameterizes the end-condition grids the bundle generator enumerates. The
// longitudinal bundle has one curve per TimeGrid x VelocityGrid entry for a Cruise target and one
// per TimeGrid entry for Stop and Follow; the lateral bundle has one curve per ArcLengthGrid x
// LateralOffsets entry.
type GridConfig struct {
	// TimeGrid is the set of candidate horizons T (seconds) for the longitudinal bundle.
	TimeGrid []float64
	// VelocityGrid is the set of candidate target velocities (m/s) for a free-station
	// (cruise) longitudinal curve, sampled around the target speed.
	VelocityGrid []float64
	// LateralOffsets is the set of candidate target lateral offsets (m) for the lateral
	// bundle, typically {-lane, 0, +lane}.
	LateralOffsets []float64
	// ArcLengthGrid is the set of candidate S (meters along the path) over which a lateral
	// curve transitions to its target offset.
	ArcLengthGrid []float64
}

// Bundle is a pair of finite Curve1D sets: the longitudinal bundle (functions of t) and the
// lateral bundle (functions of s). Indices within each slice are stable and are used by the
// evaluator to break cost ties deterministically.
type Bundle struct {
	Lon []Curve1D
	Lat []Curve1D
}

const velocitySpreadFraction = 0.2

// Generate produces the longitudinal and lateral bundles for one planning cycle from the
// initial Frenet state and the decider's PlanningTarget. The returned bundle is always
// non-empty when init is finite: every grid always contributes at least the bare target end
// condition even if the configured grids are themselves empty.
func Generate(init frenet.State, target decision.Target, cfg GridConfig) Bundle {
	return Bundle{
		Lon: generateLonBundle(init, target, cfg),
		Lat: generateLatBundle(init, cfg),
	}
}

func generateLonBundle(init frenet.State, target decision.Target, cfg GridConfig) []Curve1D {
	timeGrid := cfg.TimeGrid
	if len(timeGrid) == 0 {
		timeGrid = []float64{defaultHorizon}
	}

	var curves []Curve1D
	switch t := target.(type) {
	case decision.Cruise:
		velocities := cfg.VelocityGrid
		if len(velocities) == 0 {
			velocities = cruiseVelocitySpread(t.TargetSpeed)
		}
		for _, T := range timeGrid {
			for _, v := range velocities {
				curves = append(curves, NewQuarticCurve(init.Lon.S, init.Lon.SDot, init.Lon.SDDot, v, 0, T))
			}
		}
	case decision.Stop:
		for _, T := range timeGrid {
			curves = append(curves, NewQuinticCurve(init.Lon.S, init.Lon.SDot, init.Lon.SDDot, t.StationS, 0, 0, T))
		}
	case decision.Follow:
		for _, T := range timeGrid {
			targetS := init.Lon.S + t.LeaderSpeedHint*T - t.DesiredGap
			curves = append(curves, NewQuinticCurve(init.Lon.S, init.Lon.SDot, init.Lon.SDDot, targetS, t.LeaderSpeedHint, 0, T))
		}
	}
	return curves
}

func generateLatBundle(init frenet.State, cfg GridConfig) []Curve1D {
	offsets := cfg.LateralOffsets
	if len(offsets) == 0 {
		offsets = []float64{0}
	}
	arcLengths := cfg.ArcLengthGrid
	if len(arcLengths) == 0 {
		arcLengths = []float64{defaultLateralSpan}
	}

	var curves []Curve1D
	for _, S := range arcLengths {
		for _, dT := range offsets {
			curves = append(curves, NewQuinticCurve(init.Lat.D, init.Lat.DPrime, init.Lat.DPPrime, dT, 0, 0, S))
		}
	}
	return curves
}

const (
	defaultHorizon     = 5.0
	defaultLateralSpan = 40.0
)

// cruiseVelocitySpread builds a small default velocity grid around a target speed when the
// caller's config does not supply one explicitly.
func cruiseVelocitySpread(target float64) []float64 {
	spread := target * velocitySpreadFraction
	if spread <= 0 {
		spread = 1
	}
	return []float64{target - spread, target, target + spread}
}
