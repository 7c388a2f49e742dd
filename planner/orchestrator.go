package planner

import (
	"context"

	"github.com/pkg/errors"
	"go.viam.com/utils"

	"github.com/latticemotion/corelattice/autotune"
	"github.com/latticemotion/corelattice/collision"
	"github.com/latticemotion/corelattice/constraint"
	"github.com/latticemotion/corelattice/decision"
	"github.com/latticemotion/corelattice/evaluate"
	"github.com/latticemotion/corelattice/frenet"
	"github.com/latticemotion/corelattice/lattice"
	"github.com/latticemotion/corelattice/logging"
	"github.com/latticemotion/corelattice/obstacle"
	"github.com/latticemotion/corelattice/pathtime"
	"github.com/latticemotion/corelattice/refline"
	"github.com/latticemotion/corelattice/trajectory"
)

// ErrNoFeasibleTrajectory is returned when the selection loop exhausts every pair in the
// lattice, including a fallback pass if one is configured, without finding a feasible
// trajectory.
var ErrNoFeasibleTrajectory = errors.New("no feasible trajectory")

// Status is the outcome of one Plan call: OK iff a trajectory was attached to the
// ReferenceLineInfo. Err is nil iff OK is true.
type Status struct {
	OK  bool
	Err error

	PairsExamined                  int
	ConstraintFailureCount         int
	CombinedConstraintFailureCount int
	CollisionFailureCount          int
}

// ReferenceLineInfo is the inward interface the core reads the reference line from and writes
// its chosen trajectory back to.
type ReferenceLineInfo interface {
	ReferenceLine() *refline.Line
	PriorityCost() float64
	SetTrajectory(trajectory.Discretized)
	SetCost(float64)
	SetDrivable(bool)
}

// Orchestrator runs one planning cycle at a time. All mutable state — the cumulative counters —
// lives on the instance, never as package-level globals, so that two Orchestrators in the same
// process (as in tests) are hermetic.
type Orchestrator struct {
	cfg      Config
	decider  decision.Decider
	logger   logging.Logger
	observer autotune.Observer

	numPlanningCycles               int
	constraintFailureCount          int
	combinedConstraintFailureCount  int
	collisionFailureCount           int
}

// New builds an Orchestrator from a validated Config, the external behavioural decider, and an
// optional Logger (defaults to logging.NewDevelopmentLogger if nil). Use WithObserver to attach
// an auto-tuning Observer; the default is autotune.NoopObserver.
func New(cfg Config, decider decision.Decider, logger logging.Logger) (*Orchestrator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid planner config")
	}
	if logger == nil {
		logger = logging.NewDevelopmentLogger("planner")
	}
	return &Orchestrator{
		cfg:      cfg,
		decider:  decider,
		logger:   logger,
		observer: autotune.NoopObserver{},
	}, nil
}

// WithObserver attaches an auto-tuning Observer that receives the chosen pair's cost components
// and the resulting trajectory after every successful cycle, replacing the default no-op sink.
// Has no effect unless cfg.AutoTuningEnabled is also set.
func (o *Orchestrator) WithObserver(observer autotune.Observer) *Orchestrator {
	o.observer = observer
	return o
}

// Plan runs one planning cycle: match the ego state, build the path-time neighbourhood, consult
// the decider, generate and score the lattice, and attach the first feasible trajectory under
// ascending cost to refLineInfo.
func (o *Orchestrator) Plan(
	ctx context.Context,
	initPoint trajectory.Point,
	frame obstacle.Frame,
	refLineInfo ReferenceLineInfo,
) Status {
	o.numPlanningCycles++

	refLine := refLineInfo.ReferenceLine()

	refPt := refLine.MatchByPosition(initPoint.X, initPoint.Y)
	initState := frenet.CartesianToFrenet(refPt, frenet.CartesianState{
		X: initPoint.X, Y: initPoint.Y, Heading: initPoint.Heading,
		Kappa: initPoint.Kappa, V: initPoint.V, A: initPoint.A,
	})

	obstacles := frame.Obstacles()
	ptn := pathtime.Build(obstacles, initState.Lon.S, refLine, o.cfg.PathTime)

	o.decider.UpdatePathTimeNeighborhood(ptn)
	target, err := o.decider.Analyze(obstacles, initState, refLine)
	if err != nil {
		return Status{OK: false, Err: errors.Wrap(err, "decider failed to produce a planning target")}
	}

	if ctx.Err() != nil {
		return Status{OK: false, Err: errors.Wrap(ctx.Err(), "planning cycle canceled before lattice generation")}
	}

	status := o.runCycle(ctx, o.cfg, initState, initPoint.RelativeTime, target, ptn, obstacles, refLine, refLineInfo)
	if status.OK || o.cfg.Fallback == nil {
		o.logCycle(status)
		return status
	}

	o.logger.Infow("primary configuration exhausted, retrying with fallback", "pairsExamined", status.PairsExamined)
	fallbackStatus := o.runCycle(ctx, *o.cfg.Fallback, initState, initPoint.RelativeTime, target, ptn, obstacles, refLine, refLineInfo)
	fallbackStatus.PairsExamined += status.PairsExamined
	fallbackStatus.ConstraintFailureCount += status.ConstraintFailureCount
	fallbackStatus.CombinedConstraintFailureCount += status.CombinedConstraintFailureCount
	fallbackStatus.CollisionFailureCount += status.CollisionFailureCount
	o.logCycle(fallbackStatus)
	return fallbackStatus
}

func (o *Orchestrator) runCycle(
	ctx context.Context,
	cfg Config,
	initState frenet.State,
	t0 float64,
	target decision.Target,
	ptn *pathtime.Neighbourhood,
	obstacles []obstacle.Obstacle,
	refLine *refline.Line,
	refLineInfo ReferenceLineInfo,
) Status {
	bundle := lattice.Generate(initState, target, cfg.Grid)

	checker := collision.Checker{EgoLength: cfg.EgoLength, EgoWidth: cfg.EgoWidth}

	evaluator, err := evaluate.New(
		ctx, target, bundle.Lon, bundle.Lat,
		cfg.Limits, cfg.TrajectoryTimeResolution,
		cfg.EnableConstraintPrefilter, cfg.EnableParallelEvaluation,
		cfg.Weights, ptn,
	)
	if err != nil {
		return Status{OK: false, Err: errors.Wrap(err, "trajectory evaluation failed")}
	}

	var status Status
	for evaluator.HasMore() {
		pair := evaluator.PopNext()
		status.PairsExamined++

		if !constraint.IsValidPair(pair.Lon, pair.Lat, cfg.Limits, cfg.TrajectoryTimeResolution) {
			status.ConstraintFailureCount++
			o.constraintFailureCount++
			continue
		}

		combined := combine(refLine, pair.Lon, pair.Lat, t0, cfg.PlannedTrajectoryTime, cfg.TrajectoryTimeResolution)

		if !constraint.IsValidTrajectory(combined, cfg.Limits) {
			status.CombinedConstraintFailureCount++
			o.combinedConstraintFailureCount++
			continue
		}

		if checker.InCollision(combined, obstacles) {
			status.CollisionFailureCount++
			o.collisionFailureCount++
			continue
		}

		refLineInfo.SetTrajectory(combined)
		refLineInfo.SetCost(refLineInfo.PriorityCost() + pair.Cost)
		refLineInfo.SetDrivable(true)
		status.OK = true
		if cfg.AutoTuningEnabled {
			o.observer.Emit(pair.Components, combined)
		}
		return status
	}

	status.Err = errors.Wrap(ErrNoFeasibleTrajectory, "selection loop exhausted all pairs")
	return status
}

func (o *Orchestrator) logCycle(status Status) {
	o.logger.Infow("planning cycle complete",
		"cycle", o.numPlanningCycles,
		"ok", status.OK,
		"pairsExamined", status.PairsExamined,
		"constraintFailures", status.ConstraintFailureCount,
		"combinedConstraintFailures", status.CombinedConstraintFailureCount,
		"collisionFailures", status.CollisionFailureCount,
	)
	// Flushing the logger's sink can block on I/O; run it in the background the same way the
	// teacher backgrounds its RRT planner runner, so a slow log sink never eats into the next
	// cycle's soft real-time budget.
	utils.PanicCapturingGo(func() {
		_ = o.logger.Sync()
	})
}
