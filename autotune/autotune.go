// Package autotune implements the offline auto-tuning hook: a pluggable observer the
// orchestrator can report cost components to, for weight-tuning that happens outside the core.
package autotune

import (
	"github.com/latticemotion/corelattice/evaluate"
	"github.com/latticemotion/corelattice/trajectory"
)

// Observer receives the chosen pair's cost components plus the samples observed from whatever
// actually happened after the cycle, for offline correlation. The core only ever calls Emit; it
// never reads the observer back.
type Observer interface {
	Emit(components evaluate.Components, futureSamples trajectory.Discretized)
}

// NoopObserver discards everything it is given. It is the default when a caller does not wire
// an Observer.
type NoopObserver struct{}

// Emit implements Observer by doing nothing.
func (NoopObserver) Emit(evaluate.Components, trajectory.Discretized) {}

// MapFutureTrajectoryToSL maps an observed future Cartesian trajectory back into discrete
// (s, t) / (s, d) samples suitable for evaluate.EvaluatePerLonLat. Its body is intentionally a
// stub: the downstream schema for what an external tuner expects from this mapping is an open
// question this core does not resolve, so it always reports that no mapping was produced rather
// than guessing one.
func MapFutureTrajectoryToSL(trajectory.Discretized) ([]evaluate.LonLatSample, bool) {
	return nil, false
}
