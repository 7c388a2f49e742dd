// Package collision implements the collision checker: given one reconstructed Cartesian
// trajectory and the obstacle set, it decides whether the ego footprint swept along the
// trajectory ever overlaps an obstacle's predicted footprint.
//
// Overlaps are reported through a named pairwise graph (named geometries, distances between
// pairs, early-exit when only a boolean answer is needed) built on 2D oriented rectangles
// checked via the separating axis theorem.
package collision

import (
	"math"
	"strconv"
	"strings"

	"github.com/golang/geo/r2"

	"github.com/latticemotion/corelattice/geom"
	"github.com/latticemotion/corelattice/obstacle"
	"github.com/latticemotion/corelattice/trajectory"
)

// Collision names a single overlapping pair found while checking one trajectory: the ego
// sample's relative time and the obstacle it overlaps, with the penetration depth (negative
// separation) that caused it to be reported.
type Collision struct {
	RelativeTime     float64
	ObstacleID       string
	PenetrationDepth float64
}

// Graph accumulates named-pair distance relationships. With reportAll set, it records every
// ego-sample/obstacle pair instead of exiting on the first collision, which is useful for
// diagnostics and tests but unnecessary for the planner's own hot path.
type Graph struct {
	reportAll bool
	distances map[string]map[string]float64
}

func newGraph(reportAll bool) *Graph {
	return &Graph{reportAll: reportAll, distances: make(map[string]map[string]float64)}
}

func (g *Graph) setDistance(egoKey, obstacleID string, distance float64) {
	if _, ok := g.distances[egoKey]; !ok {
		g.distances[egoKey] = make(map[string]float64)
	}
	g.distances[egoKey][obstacleID] = distance
}

// Collisions reports every pair recorded with a non-positive separation (in collision).
func (g *Graph) Collisions() []Collision {
	var out []Collision
	for egoKey, row := range g.distances {
		t := parseRelativeTime(egoKey)
		for obstacleID, distance := range row {
			if distance <= 0 {
				out = append(out, Collision{RelativeTime: t, ObstacleID: obstacleID, PenetrationDepth: -distance})
			}
		}
	}
	return out
}

// Checker tests a reconstructed trajectory's swept ego footprint against a set of obstacles.
// EgoLength/EgoWidth describe the ego footprint rectangle centered on each trajectory sample's
// pose.
type Checker struct {
	EgoLength, EgoWidth float64
}

// InCollision reports whether traj, with the ego footprint centered on each sample's pose and
// oriented along its heading, ever overlaps any obstacle's predicted footprint at the matching
// relative time. It exits on the first collision found; use Diagnose for the full report.
func (c Checker) InCollision(traj trajectory.Discretized, obstacles []obstacle.Obstacle) bool {
	g := newGraph(false)
	c.check(traj, obstacles, g)
	return len(g.Collisions()) > 0
}

// Diagnose runs the same check as InCollision but reports every overlapping pair instead of
// exiting on the first, for offline analysis and tests.
func (c Checker) Diagnose(traj trajectory.Discretized, obstacles []obstacle.Obstacle) []Collision {
	g := newGraph(true)
	c.check(traj, obstacles, g)
	return g.Collisions()
}

func (c Checker) check(traj trajectory.Discretized, obstacles []obstacle.Obstacle, g *Graph) {
	for _, p := range traj {
		egoKey := egoSampleKey(p.RelativeTime)
		egoFootprint := geom.Rectangle{
			Center:  r2.Point{X: p.X, Y: p.Y},
			Heading: p.Heading,
			Length:  c.EgoLength,
			Width:   c.EgoWidth,
		}
		for _, obs := range obstacles {
			obsFootprint := obs.FootprintAt(p.RelativeTime)
			depth := separatingAxisDistance(egoFootprint, obsFootprint)
			g.setDistance(egoKey, obs.ID, depth)
			if !g.reportAll && depth <= 0 {
				return
			}
		}
	}
}

// separatingAxisDistance returns the signed separation between two oriented rectangles via the
// separating axis theorem: positive when disjoint (the minimal gap found on any tested axis),
// non-positive when overlapping (the negated minimal axis overlap, i.e. the penetration depth).
func separatingAxisDistance(a, b geom.Rectangle) float64 {
	aCorners := a.Corners()
	bCorners := b.Corners()

	aAxes, bAxes := a.Axes(), b.Axes()
	axes := append(append([]r2.Point{}, aAxes[:]...), bAxes[:]...)

	minOverlap := math.Inf(1)
	for _, axis := range axes {
		aMin, aMax := projectOntoAxis(aCorners[:], axis)
		bMin, bMax := projectOntoAxis(bCorners[:], axis)
		if aMax < bMin {
			return bMin - aMax // disjoint on this axis: true separation
		}
		if bMax < aMin {
			return aMin - bMax
		}
		overlap := math.Min(aMax, bMax) - math.Max(aMin, bMin)
		if overlap < minOverlap {
			minOverlap = overlap
		}
	}
	return -minOverlap
}

func projectOntoAxis(corners []r2.Point, axis r2.Point) (min, max float64) {
	min, max = math.Inf(1), math.Inf(-1)
	for _, c := range corners {
		d := c.X*axis.X + c.Y*axis.Y
		if d < min {
			min = d
		}
		if d > max {
			max = d
		}
	}
	return min, max
}

// egoSampleKey formats a trajectory sample's relative time as a stable map key: fixed precision
// avoids a distinct key per floating-point rounding variant of the same nominal sample time.
func egoSampleKey(relativeTime float64) string {
	return "t=" + strconv.FormatFloat(relativeTime, 'f', 3, 64)
}

func parseRelativeTime(egoKey string) float64 {
	t, err := strconv.ParseFloat(strings.TrimPrefix(egoKey, "t="), 64)
	if err != nil {
		return math.NaN()
	}
	return t
}
