// Package obstacle defines the Obstacle type and the Frame interface the core borrows obstacles
// and localisation from. Perception, prediction, and the concrete Frame implementation all live
// outside this module; this package only describes the shape the core consumes.
package obstacle

import (
	"time"

	"github.com/google/uuid"

	"github.com/latticemotion/corelattice/geom"
)

// PredictedPose is one sample of an obstacle's predicted future trajectory: a time offset from
// now and the footprint at that time.
type PredictedPose struct {
	RelativeTime float64
	Footprint    geom.Rectangle
}

// Obstacle is identity plus a perception footprint plus a predicted future trajectory, all in
// the Cartesian frame. Static obstacles have a Prediction of length 1 or a Prediction whose
// footprint never changes.
type Obstacle struct {
	ID         string
	Static     bool
	Footprint  geom.Rectangle
	Prediction []PredictedPose
}

// NewStatic builds a stationary Obstacle, synthesizing a stable ID via uuid when the caller
// does not already have a durable identity for it (e.g. in tests and example Frame fakes).
func NewStatic(footprint geom.Rectangle) Obstacle {
	return Obstacle{
		ID:        uuid.NewString(),
		Static:    true,
		Footprint: footprint,
		Prediction: []PredictedPose{
			{RelativeTime: 0, Footprint: footprint},
		},
	}
}

// FootprintAt returns the obstacle's footprint at relative time t, holding the last known
// footprint constant beyond the end of its prediction and the first constant before it starts.
func (o Obstacle) FootprintAt(t float64) geom.Rectangle {
	pred := o.Prediction
	if len(pred) == 0 {
		return o.Footprint
	}
	if t <= pred[0].RelativeTime {
		return pred[0].Footprint
	}
	last := pred[len(pred)-1]
	if t >= last.RelativeTime {
		return last.Footprint
	}
	for i := 1; i < len(pred); i++ {
		if pred[i].RelativeTime >= t {
			a, b := pred[i-1], pred[i]
			frac := (t - a.RelativeTime) / (b.RelativeTime - a.RelativeTime)
			return geom.Rectangle{
				Center:  geom.Lerp(a.Footprint.Center, b.Footprint.Center, frac),
				Heading: a.Footprint.Heading + frac*(b.Footprint.Heading-a.Footprint.Heading),
				Length:  a.Footprint.Length,
				Width:   a.Footprint.Width,
			}
		}
	}
	return last.Footprint
}

// Frame is the inward interface the core consumes once per cycle: it provides the obstacle list
// for this cycle and access to wall time for telemetry timestamps. A concrete Frame is always
// supplied and owned by the caller; the core only ever reads from it.
type Frame interface {
	Obstacles() []Obstacle
	Now() time.Time
}

// Clock is the minimal wall-clock seam the core needs for telemetry timestamps. A single method
// wrapping time.Now is enough surface that pulling in a clock-faking library for it is not
// warranted; see DESIGN.md.
type Clock interface {
	Now() time.Time
}

// SystemClock is the default Clock backed by the real wall clock.
type SystemClock struct{}

// Now returns time.Now().
func (SystemClock) Now() time.Time { return time.Now() }
