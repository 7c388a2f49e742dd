// Package planner implements the top-level orchestrator: the single call per cycle that matches
// the ego state, consults the external decider, builds the lattice, scores it, and picks the
// first feasible trajectory under ascending cost.
package planner

import (
	"github.com/pkg/errors"

	"github.com/latticemotion/corelattice/constraint"
	"github.com/latticemotion/corelattice/evaluate"
	"github.com/latticemotion/corelattice/lattice"
	"github.com/latticemotion/corelattice/pathtime"
)

// Config is the flat, JSON-tagged configuration surface for a planning cycle. The core never
// reads a config file itself; a caller loads one by whatever means it likes and passes the
// decoded Config in.
type Config struct {
	PlannedTrajectoryTime    float64 `json:"planned_trajectory_time"`
	TrajectoryTimeResolution float64 `json:"trajectory_time_resolution"`

	Grid lattice.GridConfig `json:"grid"`

	Limits constraint.Limits `json:"limits"`
	Weights evaluate.Weights `json:"weights"`

	EgoLength         float64 `json:"ego_length"`
	EgoWidth          float64 `json:"ego_width"`
	EgoRearAxleOffset float64 `json:"ego_rear_axle_offset"`

	EnableConstraintPrefilter bool `json:"enable_constraint_prefilter"`
	EnableParallelEvaluation  bool `json:"enable_parallel_evaluation"`
	AutoTuningEnabled         bool `json:"auto_tuning_enabled"`

	PathTime pathtime.Config `json:"path_time"`

	// Fallback, when non-nil, is tried once with its own (typically looser) limits and
	// weights if the primary configuration's selection loop exhausts every pair without a
	// feasible result: degrade gracefully before surfacing failure.
	Fallback *Config `json:"fallback,omitempty"`
}

// DefaultConfig returns the literal defaults exercised by this module's own test fixtures: a
// 6 second horizon at 0.1 s resolution, a mid-size passenger-vehicle footprint, and reasonable
// constraint limits for an urban driving speed range.
func DefaultConfig() Config {
	return Config{
		PlannedTrajectoryTime:    6.0,
		TrajectoryTimeResolution: 0.1,
		Grid: lattice.GridConfig{
			TimeGrid:       []float64{3.0, 4.0, 5.0, 6.0},
			LateralOffsets: []float64{-3.5, 0, 3.5},
			ArcLengthGrid:  []float64{30.0, 40.0, 50.0},
		},
		Limits: constraint.Limits{
			VMax:     20.0,
			ALongMax: 2.0,
			ALongMin: -4.0,
			ALatMax:  3.0,
			JerkMax:  4.0,
			KappaMax: 0.2,
		},
		Weights: evaluate.Weights{
			Travel:   1.0,
			Jerk:     0.1,
			Obstacle: 10.0,
			Lateral:  1.0,
		},
		EgoLength:                 4.5,
		EgoWidth:                  1.9,
		EgoRearAxleOffset:         1.2,
		EnableConstraintPrefilter: true,
		EnableParallelEvaluation:  false,
		AutoTuningEnabled:         false,
		PathTime: pathtime.Config{
			TimeHorizon:    6.0,
			TimeResolution: 0.1,
			LookAheadS:     100.0,
			LookBackS:      10.0,
			LaneHalfWidth:  1.8,
		},
	}
}

// Validate reports a wrapped error on any configuration that cannot possibly produce a usable
// lattice: a non-positive time resolution, an empty time grid, or non-monotone constraint
// limits.
func (c Config) Validate() error {
	if c.TrajectoryTimeResolution <= 0 {
		return errors.New("trajectory time resolution must be positive")
	}
	if c.PlannedTrajectoryTime <= 0 {
		return errors.New("planned trajectory time must be positive")
	}
	if len(c.Grid.TimeGrid) == 0 {
		return errors.New("lattice time grid must not be empty")
	}
	if c.Limits.ALongMin > 0 {
		return errors.Errorf("braking limit ALongMin must be non-positive, got %f", c.Limits.ALongMin)
	}
	if c.Limits.ALongMax <= 0 {
		return errors.Errorf("ALongMax must be positive, got %f", c.Limits.ALongMax)
	}
	if c.Limits.VMax <= 0 {
		return errors.Errorf("VMax must be positive, got %f", c.Limits.VMax)
	}
	if c.EgoLength <= 0 || c.EgoWidth <= 0 {
		return errors.New("ego footprint dimensions must be positive")
	}
	if c.Fallback != nil {
		if err := c.Fallback.Validate(); err != nil {
			return errors.Wrap(err, "fallback config")
		}
	}
	return nil
}
