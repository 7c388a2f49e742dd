package planner

import (
	"github.com/latticemotion/corelattice/frenet"
	"github.com/latticemotion/corelattice/lattice"
	"github.com/latticemotion/corelattice/refline"
	"github.com/latticemotion/corelattice/trajectory"
)

// combine reconstructs the 2D Cartesian trajectory from a (lon, lat) curve pair, sampling at dt
// up to plannedTrajectoryTime or until the longitudinal curve runs off the end of the reference
// line, whichever comes first.
func combine(refLine *refline.Line, lon, lat lattice.Curve1D, t0, plannedTrajectoryTime, dt float64) trajectory.Discretized {
	s0 := lon.Evaluate(0, 0)
	backS := refLine.Back().S

	var out trajectory.Discretized
	for tParam := 0.0; tParam < plannedTrajectoryTime; tParam += dt {
		s := lon.Evaluate(0, tParam)
		if s > backS {
			break
		}
		sDot := lon.Evaluate(1, tParam)
		sDDot := lon.Evaluate(2, tParam)

		d := lat.Evaluate(0, s-s0)
		dPrime := lat.Evaluate(1, s-s0)
		dPPrime := lat.Evaluate(2, s-s0)

		refPt := refLine.MatchByArcLength(s)
		cart := frenet.FrenetToCartesian(
			refPt,
			frenet.LonState{S: s, SDot: sDot, SDDot: sDDot},
			frenet.LatState{D: d, DPrime: dPrime, DPPrime: dPPrime},
		)

		out = append(out, trajectory.Point{
			X:            cart.X,
			Y:            cart.Y,
			Heading:      cart.Heading,
			Kappa:        cart.Kappa,
			V:            cart.V,
			A:            cart.A,
			RelativeTime: tParam + t0,
		})
	}
	return out
}
