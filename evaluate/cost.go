// Package evaluate implements the trajectory evaluator: it forms the Cartesian product of a
// longitudinal and lateral bundle, scores each pair, and yields them through a min-heap iterator
// in ascending cost order.
package evaluate

import (
	"math"

	"github.com/latticemotion/corelattice/decision"
	"github.com/latticemotion/corelattice/lattice"
	"github.com/latticemotion/corelattice/pathtime"
)

// Weights are the nonnegative cost weights. Total cost is their weighted sum over Components, in
// the fixed component order [travel, jerk, obstacle, lateral].
type Weights struct {
	Travel   float64
	Jerk     float64
	Obstacle float64
	Lateral  float64
}

// Components is the per-pair component-cost vector, always reported in the fixed order
// [travel, jerk, obstacle, lateral].
type Components struct {
	Travel   float64
	Jerk     float64
	Obstacle float64
	Lateral  float64
}

// Total returns the weighted sum of the components.
func (c Components) Total(w Weights) float64 {
	return w.Travel*c.Travel + w.Jerk*c.Jerk + w.Obstacle*c.Obstacle + w.Lateral*c.Lateral
}

// sampleResolution is the step used to numerically integrate cost components. It need not
// equal the trajectory's output resolution; a coarser step is cheaper and the cost functional
// does not need sample-exact precision.
const sampleResolution = 0.2

// score computes the component-cost vector for one (lon, lat) pair against target and the
// shared path-time neighbourhood.
func score(lon, lat lattice.Curve1D, target decision.Target, ptn *pathtime.Neighbourhood) Components {
	return Components{
		Travel:   travelCost(lon, target),
		Jerk:     jerkCost(lon) + jerkCost(lat),
		Obstacle: obstacleCost(lon, ptn),
		Lateral:  lateralCost(lat),
	}
}

func desiredSpeed(target decision.Target) float64 {
	switch t := target.(type) {
	case decision.Cruise:
		return t.TargetSpeed
	case decision.Follow:
		return t.LeaderSpeedHint
	case decision.Stop:
		return 0
	default:
		return 0
	}
}

// travelCost penalizes deviation of the longitudinal velocity profile from the target's desired
// speed (see desiredSpeed), integrated over the curve's domain. A Stop target's StationS does not
// enter this term.
func travelCost(lon lattice.Curve1D, target decision.Target) float64 {
	want := desiredSpeed(target)
	length := lon.ParamLength()
	var sum float64
	n := 0
	for t := 0.0; t <= length+1e-9; t += sampleResolution {
		v := lon.Evaluate(1, t)
		d := v - want
		sum += d * d
		n++
	}
	if n == 0 {
		return 0
	}
	return sum * sampleResolution
}

// jerkCost integrates squared jerk (the derivative of acceleration) along a curve's domain,
// estimated by finite difference since Curve1D exposes derivatives only up to order 2.
func jerkCost(c lattice.Curve1D) float64 {
	length := c.ParamLength()
	if length <= 0 {
		return 0
	}
	var sum float64
	prevA := c.Evaluate(2, 0)
	for p := sampleResolution; p <= length+1e-9; p += sampleResolution {
		a := c.Evaluate(2, p)
		jerk := (a - prevA) / sampleResolution
		sum += jerk * jerk
		prevA = a
	}
	return sum * sampleResolution
}

// obstacleCost accumulates a penalty from occupancy queries on the path-time neighbourhood
// along the longitudinal curve's (s, t) trace: the closer the planned position comes to an
// occupied interval, the larger the penalty, with no obstacle present contributing zero.
func obstacleCost(lon lattice.Curve1D, ptn *pathtime.Neighbourhood) float64 {
	if ptn == nil {
		return 0
	}
	const softMargin = 2.0
	length := lon.ParamLength()
	var sum float64
	for t := 0.0; t <= length+1e-9; t += sampleResolution {
		s := lon.Evaluate(0, t)
		gap := ptn.Gap(s, t)
		if math.IsInf(gap, 1) {
			continue
		}
		if gap >= softMargin {
			continue
		}
		penalty := softMargin - gap
		sum += penalty * penalty
	}
	return sum * sampleResolution
}

// lateralCost integrates squared lateral offset plus an endpoint-offset term, so lattices that
// stay near the reference line and end near it are preferred over ones that wander.
func lateralCost(lat lattice.Curve1D) float64 {
	length := lat.ParamLength()
	var sum float64
	for s := 0.0; s <= length+1e-9; s += sampleResolution {
		d := lat.Evaluate(0, s)
		sum += d * d
	}
	endOffset := lat.Evaluate(0, length)
	return sum*sampleResolution + endOffset*endOffset
}

// LonLatSample is one discretely observed (s, value) or (t, value) point, used by
// EvaluatePerLonLat in place of an analytic Curve1D for the offline auto-tuning hook.
type LonLatSample struct {
	Param float64
	Value float64
}

// EvaluatePerLonLat scores a discretely-observed trajectory against target, for the offline
// auto-tuning hook: lonSamples/latSamples are observed (t, s) / (s, d) points rather than
// analytic curves, wrapped into NumericCurves and scored with the same cost functional used for
// lattice pairs.
func EvaluatePerLonLat(target decision.Target, lonSamples, latSamples []LonLatSample, ptn *pathtime.Neighbourhood) Components {
	lonParams := make([]float64, len(lonSamples))
	lonValues := make([]float64, len(lonSamples))
	for i, s := range lonSamples {
		lonParams[i] = s.Param
		lonValues[i] = s.Value
	}
	latParams := make([]float64, len(latSamples))
	latValues := make([]float64, len(latSamples))
	for i, s := range latSamples {
		latParams[i] = s.Param
		latValues[i] = s.Value
	}
	lon := lattice.NewNumericCurve(lonParams, lonValues)
	lat := lattice.NewNumericCurve(latParams, latValues)
	return score(lon, lat, target, ptn)
}
