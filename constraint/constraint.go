// Package constraint implements the two pure feasibility predicates: point-wise
// kinematic/dynamic feasibility of a 1-D curve pair, and of the reconstructed 2-D trajectory.
package constraint

import (
	"math"

	"github.com/latticemotion/corelattice/lattice"
	"github.com/latticemotion/corelattice/trajectory"
)

// Limits is the numerical threshold table the feasibility predicates check against.
type Limits struct {
	VMax     float64
	ALongMax float64
	ALongMin float64 // braking; negative
	ALatMax  float64
	JerkMax  float64
	KappaMax float64
}

// IsValidPair checks a longitudinal/lateral curve pair for single-axis feasibility: domain of
// each curve, plus bounds on velocity, acceleration, and jerk sampled at resolution dt. The
// velocity, acceleration, and jerk bounds apply to the longitudinal curve only; the lateral
// curve is checked for a valid domain and finite offset and slope, not against any bound.
// Jerk is estimated by finite difference of consecutive acceleration samples since Curve1D only
// exposes derivatives up to order 2.
func IsValidPair(lon, lat lattice.Curve1D, limits Limits, dt float64) bool {
	return isValidLonCurve(lon, limits, dt) && isValidLatCurve(lat, limits, dt)
}

// IsValidLonCurve checks a single longitudinal curve's single-axis feasibility, used by the
// evaluator's optional constraint prefilter before the full pair product is formed.
func IsValidLonCurve(lon lattice.Curve1D, limits Limits, dt float64) bool {
	return isValidLonCurve(lon, limits, dt)
}

// IsValidLatCurve checks a single lateral curve's domain feasibility, used by the evaluator's
// optional constraint prefilter.
func IsValidLatCurve(lat lattice.Curve1D, limits Limits, dt float64) bool {
	return isValidLatCurve(lat, limits, dt)
}

func isValidLonCurve(lon lattice.Curve1D, limits Limits, dt float64) bool {
	length := lon.ParamLength()
	if length <= 0 || !isFinite(length) {
		return false
	}
	var prevAccel float64
	havePrev := false
	for tParam := 0.0; tParam <= length+1e-9; tParam += dt {
		v := lon.Evaluate(1, tParam)
		a := lon.Evaluate(2, tParam)
		if !isFinite(v) || !isFinite(a) {
			return false
		}
		if v < -1e-6 || v > limits.VMax+1e-6 {
			return false
		}
		if a > limits.ALongMax+1e-6 || a < limits.ALongMin-1e-6 {
			return false
		}
		if havePrev && dt > 0 {
			jerk := (a - prevAccel) / dt
			if math.Abs(jerk) > limits.JerkMax+1e-6 {
				return false
			}
		}
		prevAccel = a
		havePrev = true
	}
	return true
}

func isValidLatCurve(lat lattice.Curve1D, limits Limits, dt float64) bool {
	length := lat.ParamLength()
	if length < 0 || !isFinite(length) {
		return false
	}
	for sParam := 0.0; sParam <= length+1e-9; sParam += dt {
		d := lat.Evaluate(0, sParam)
		dPrime := lat.Evaluate(1, sParam)
		if !isFinite(d) || !isFinite(dPrime) {
			return false
		}
	}
	return true
}

// IsValidTrajectory checks the reconstructed Cartesian trajectory against vehicle limits at
// every sample: |v|, longitudinal acceleration, lateral acceleration (v^2 * kappa), and |kappa|.
func IsValidTrajectory(traj trajectory.Discretized, limits Limits) bool {
	for _, p := range traj {
		if !isFinite(p.V) || !isFinite(p.A) || !isFinite(p.Kappa) {
			return false
		}
		if p.V < -1e-6 || p.V > limits.VMax+1e-6 {
			return false
		}
		if p.A > limits.ALongMax+1e-6 || p.A < limits.ALongMin-1e-6 {
			return false
		}
		aLat := p.V * p.V * p.Kappa
		if math.Abs(aLat) > limits.ALatMax+1e-6 {
			return false
		}
		if math.Abs(p.Kappa) > limits.KappaMax+1e-6 {
			return false
		}
	}
	return true
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
