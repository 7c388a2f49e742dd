// Package frenet implements the bidirectional Cartesian <-> Frenet conversion. Both directions
// are pure functions of a matched reference point; neither does any searching or matching itself
// (see package refline for that).
package frenet

import (
	"math"

	"github.com/latticemotion/corelattice/refline"
)

// LonState is the longitudinal triple (s, ds/dt, d2s/dt2).
type LonState struct {
	S    float64
	SDot float64
	SDDot float64
}

// LatState is the lateral triple (d, d', d''), where primes are derivatives with respect to s.
type LatState struct {
	D     float64
	DPrime  float64
	DPPrime float64
}

// CartesianState is the vehicle's pose plus its motion: (x, y, theta, kappa, v, a). v is assumed
// non-negative; reverse motion is not modeled.
type CartesianState struct {
	X, Y    float64
	Heading float64
	Kappa   float64
	V       float64
	A       float64
}

// State is the full Frenet state: a longitudinal triple and a lateral triple, computed relative
// to a specific refline.Point.
type State struct {
	Lon LonState
	Lat LatState
}

// CartesianToFrenet projects a CartesianState into the Frenet frame anchored at refPt. refPt
// must be the true projection of (cart.X, cart.Y) onto the reference line (refline.Line.MatchByPosition
// returns it); this function does not verify it and will silently produce a degraded
// result if it does not hold.
func CartesianToFrenet(refPt refline.Point, cart CartesianState) State {
	dx := cart.X - refPt.X
	dy := cart.Y - refPt.Y

	cosThetaR := math.Cos(refPt.Heading)
	sinThetaR := math.Sin(refPt.Heading)

	crossRDToND := cosThetaR*dy - sinThetaR*dx
	d := math.Copysign(math.Hypot(dx, dy), crossRDToND)

	deltaTheta := cart.Heading - refPt.Heading
	tanDeltaTheta := math.Tan(deltaTheta)
	cosDeltaTheta := math.Cos(deltaTheta)

	oneMinusKappaRD := 1 - refPt.Kappa*d
	dPrime := oneMinusKappaRD * tanDeltaTheta

	kappaRDPrime := refPt.DKappa*d + refPt.Kappa*dPrime
	dPPrime := -kappaRDPrime*tanDeltaTheta +
		oneMinusKappaRD/(cosDeltaTheta*cosDeltaTheta)*(cart.Kappa*oneMinusKappaRD/cosDeltaTheta-refPt.Kappa)

	sDot := cart.V * cosDeltaTheta / oneMinusKappaRD
	deltaThetaPrime := oneMinusKappaRD/cosDeltaTheta*cart.Kappa - refPt.Kappa
	sDDot := (cart.A*cosDeltaTheta - sDot*sDot*(dPrime*deltaThetaPrime-kappaRDPrime)) / oneMinusKappaRD

	return State{
		Lon: LonState{S: refPt.S, SDot: sDot, SDDot: sDDot},
		Lat: LatState{D: d, DPrime: dPrime, DPPrime: dPPrime},
	}
}

// FrenetToCartesian reconstructs a CartesianState from a Frenet state anchored at refPt. The
// caller is responsible for having matched refPt to s via refline.Line.MatchByArcLength.
func FrenetToCartesian(refPt refline.Point, lon LonState, lat LatState) CartesianState {
	cosThetaR := math.Cos(refPt.Heading)
	sinThetaR := math.Sin(refPt.Heading)

	x := refPt.X - sinThetaR*lat.D
	y := refPt.Y + cosThetaR*lat.D

	oneMinusKappaRD := 1 - refPt.Kappa*lat.D

	deltaTheta := math.Atan2(lat.DPrime, oneMinusKappaRD)
	cosDeltaTheta := math.Cos(deltaTheta)

	heading := normalizeAngle(deltaTheta + refPt.Heading)

	kappaRDPrime := refPt.DKappa*lat.D + refPt.Kappa*lat.DPrime
	kappa := (((lat.DPPrime+kappaRDPrime*math.Tan(deltaTheta))*cosDeltaTheta*cosDeltaTheta)/oneMinusKappaRD + refPt.Kappa) *
		cosDeltaTheta / oneMinusKappaRD

	dDot := lat.DPrime * lon.SDot
	v := math.Hypot(oneMinusKappaRD*lon.SDot, dDot)

	deltaThetaPrime := oneMinusKappaRD/cosDeltaTheta*kappa - refPt.Kappa
	a := lon.SDDot*oneMinusKappaRD/cosDeltaTheta +
		lon.SDot*lon.SDot/cosDeltaTheta*(lat.DPrime*deltaThetaPrime-kappaRDPrime)

	return CartesianState{X: x, Y: y, Heading: heading, Kappa: kappa, V: v, A: a}
}

func normalizeAngle(theta float64) float64 {
	a := math.Mod(theta+math.Pi, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a - math.Pi
}
