// Package pathtime builds the path-time neighbourhood: the projection of obstacle predictions
// into (s, t) coordinates of the reference line. A Neighbourhood is built once per planning
// cycle and is immutable afterward; it is shared read-only between the external Decider and the
// trajectory evaluator.
package pathtime

import (
	"math"
	"sort"

	"github.com/latticemotion/corelattice/geom"
	"github.com/latticemotion/corelattice/obstacle"
	"github.com/latticemotion/corelattice/refline"
)

// ConditionType classifies a CriticalCondition the way the decider's bundle generator uses to
// seed longitudinal end conditions.
type ConditionType int

// The four condition kinds the neighbourhood can report.
const (
	Overtake ConditionType = iota
	Follow
	Yield
	Stop
)

func (c ConditionType) String() string {
	switch c {
	case Overtake:
		return "overtake"
	case Follow:
		return "follow"
	case Yield:
		return "yield"
	case Stop:
		return "stop"
	default:
		return "unknown"
	}
}

// CriticalCondition is a single (s*, t*, type) candidate the decider may use to seed a
// longitudinal end condition: stop before an obstacle, follow it at a gap, yield to a crossing
// obstacle, or plan an overtake around it.
type CriticalCondition struct {
	S          float64
	T          float64
	Type       ConditionType
	ObstacleID string
}

// Occupancy is one obstacle's (s, d) footprint extent at a single time sample.
type Occupancy struct {
	SLow, SHigh float64
	D           float64
	ObstacleID  string
}

type timeSlice struct {
	t   float64
	occ []Occupancy
}

// Config parameterizes how obstacles are projected: the time grid matches the lattice's
// longitudinal horizon, and the look-ahead/look-back window discards obstacles the planner
// cannot plausibly interact with this cycle.
type Config struct {
	TimeHorizon    float64
	TimeResolution float64
	LookAheadS     float64
	LookBackS      float64
	LaneHalfWidth  float64
}

// Neighbourhood is the built, immutable result. Nothing in this package mutates it after Build.
type Neighbourhood struct {
	resolution float64
	slices     []timeSlice
	critical   []CriticalCondition
}

// Build projects every obstacle's predicted footprint onto refLine at each sample of the
// configured time grid, discarding samples outside the look-ahead/look-back window around
// egoS, and classifies one CriticalCondition per obstacle from its t=0 projection.
func Build(obstacles []obstacle.Obstacle, egoS float64, refLine *refline.Line, cfg Config) *Neighbourhood {
	numSteps := int(cfg.TimeHorizon/cfg.TimeResolution) + 1
	if numSteps < 1 {
		numSteps = 1
	}
	slices := make([]timeSlice, numSteps)
	for i := range slices {
		slices[i].t = float64(i) * cfg.TimeResolution
	}

	var critical []CriticalCondition
	for _, obs := range obstacles {
		inWindow := false
		for i := range slices {
			fp := obs.FootprintAt(slices[i].t)
			sLow, sHigh, d := projectFootprint(refLine, fp)
			if sHigh < egoS-cfg.LookBackS || sLow > egoS+cfg.LookAheadS {
				continue
			}
			inWindow = true
			slices[i].occ = append(slices[i].occ, Occupancy{SLow: sLow, SHigh: sHigh, D: d, ObstacleID: obs.ID})
		}
		if !inWindow {
			continue
		}
		critical = append(critical, classify(obs, refLine, egoS, cfg)...)
	}

	sort.Slice(critical, func(i, j int) bool { return critical[i].T < critical[j].T })

	return &Neighbourhood{resolution: cfg.TimeResolution, slices: slices, critical: critical}
}

// projectFootprint returns the [sLow, sHigh] arc-length extent and representative lateral
// offset of a footprint's corners against refLine.
func projectFootprint(refLine *refline.Line, fp geom.Rectangle) (sLow, sHigh, d float64) {
	corners := fp.Corners()
	sLow, sHigh = math.Inf(1), math.Inf(-1)
	var dSum float64
	for _, c := range corners {
		refPt := refLine.MatchByPosition(c.X, c.Y)
		s := refPt.S
		if s < sLow {
			sLow = s
		}
		if s > sHigh {
			sHigh = s
		}
		dSum += signedLateralOffset(refPt, c.X, c.Y)
	}
	d = dSum / float64(len(corners))
	return sLow, sHigh, d
}

// signedLateralOffset returns the signed distance from refPt to (x, y), positive to the left of
// the reference heading, matching the sign convention used by package frenet.
func signedLateralOffset(refPt refline.Point, x, y float64) float64 {
	dx := x - refPt.X
	dy := y - refPt.Y
	cosThetaR := math.Cos(refPt.Heading)
	sinThetaR := math.Sin(refPt.Heading)
	cross := cosThetaR*dy - sinThetaR*dx
	return math.Copysign(math.Hypot(dx, dy), cross)
}

// classify derives a single CriticalCondition from an obstacle's t=0 projection. This is a
// coarse heuristic surfaced for the decider to interpret or override; the core does not decide
// behavior, only offers candidates.
func classify(obs obstacle.Obstacle, refLine *refline.Line, egoS float64, cfg Config) []CriticalCondition {
	sLow, _, d := projectFootprint(refLine, obs.FootprintAt(0))
	if sLow <= egoS {
		return nil // behind or overlapping the vehicle; not a forward planning candidate
	}
	switch {
	case math.Abs(d) > cfg.LaneHalfWidth:
		// Outside the ego lane now; check whether its prediction brings it across the
		// lane boundary within the horizon, in which case it is a yield candidate.
		for _, p := range obs.Prediction {
			_, _, futureD := projectFootprint(refLine, p.Footprint)
			if math.Abs(futureD) <= cfg.LaneHalfWidth {
				return []CriticalCondition{{S: sLow, T: p.RelativeTime, Type: Yield, ObstacleID: obs.ID}}
			}
		}
		return nil
	case obs.Static:
		return []CriticalCondition{{S: sLow, T: 0, Type: Stop, ObstacleID: obs.ID}}
	default:
		return []CriticalCondition{{S: sLow, T: 0, Type: Follow, ObstacleID: obs.ID}}
	}
}

// CriticalConditions returns the classified candidates, ordered by time.
func (n *Neighbourhood) CriticalConditions() []CriticalCondition { return n.critical }

// OccupiedAt reports whether (s, t) falls inside any obstacle's projected footprint, using the
// time sample nearest to t.
func (n *Neighbourhood) OccupiedAt(s, t float64) bool {
	slice := n.nearestSlice(t)
	for _, occ := range slice.occ {
		if s >= occ.SLow && s <= occ.SHigh {
			return true
		}
	}
	return false
}

// Gap returns the signed longitudinal distance from s to the nearest occupied interval at time
// t: 0 if s is inside one, positive otherwise. It is the basis of the evaluator's obstacle cost:
// small gaps are expensive, large gaps are free.
func (n *Neighbourhood) Gap(s, t float64) float64 {
	slice := n.nearestSlice(t)
	if len(slice.occ) == 0 {
		return math.Inf(1)
	}
	best := math.Inf(1)
	for _, occ := range slice.occ {
		var d float64
		switch {
		case s < occ.SLow:
			d = occ.SLow - s
		case s > occ.SHigh:
			d = s - occ.SHigh
		default:
			return 0
		}
		if d < best {
			best = d
		}
	}
	return best
}

func (n *Neighbourhood) nearestSlice(t float64) timeSlice {
	if len(n.slices) == 0 {
		return timeSlice{}
	}
	idx := int(math.Round(t / n.resolution))
	if idx < 0 {
		idx = 0
	}
	if idx >= len(n.slices) {
		idx = len(n.slices) - 1
	}
	return n.slices[idx]
}
