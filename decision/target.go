// Package decision defines PlanningTarget, the opaque objective the external behavioural
// decider hands the core each cycle, and the Decider interface the core calls into to obtain
// one. The core treats PlanningTarget polymorphically: only the bundle generator and the
// evaluator interpret it.
package decision

import (
	"github.com/latticemotion/corelattice/frenet"
	"github.com/latticemotion/corelattice/obstacle"
	"github.com/latticemotion/corelattice/pathtime"
	"github.com/latticemotion/corelattice/refline"
)

// Target is implemented by exactly three kinds: Cruise, Stop, and Follow. An external decider
// for this version of the core must return one of these; the interface is sealed via the
// unexported kind method so new kinds cannot be added outside this package without a
// corresponding review of the bundle generator and evaluator.
type Target interface {
	kind() string
}

// Cruise asks the planner to reach and hold TargetSpeed, with no fixed station.
type Cruise struct {
	TargetSpeed float64
}

func (Cruise) kind() string { return "cruise" }

// Stop asks the planner to come to rest at StationS.
type Stop struct {
	StationS float64
}

func (Stop) kind() string { return "stop" }

// Follow asks the planner to track LeaderObstacleID at DesiredGap behind it.
type Follow struct {
	LeaderObstacleID string
	DesiredGap       float64
	LeaderSpeedHint  float64
}

func (Follow) kind() string { return "follow" }

// Decider is the sibling subsystem the core consults once per cycle. It is handed the
// PathTimeNeighbourhood built this cycle before being asked to Analyze.
type Decider interface {
	UpdatePathTimeNeighborhood(ptn *pathtime.Neighbourhood)
	Analyze(
		obstacles []obstacle.Obstacle,
		initState frenet.State,
		refLine *refline.Line,
	) (Target, error)
}
