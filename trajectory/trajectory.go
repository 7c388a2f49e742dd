// Package trajectory holds the DiscretizedTrajectory data type: the time-parameterised 2D output
// of one planning cycle. It has no behaviour of its own and is kept dependency-free so every
// other package (constraint, collision, evaluate, planner) can depend on it without risking an
// import cycle.
package trajectory

// Point is one sample of a DiscretizedTrajectory: a Cartesian pose and motion state at a time
// offset from the cycle's time origin.
type Point struct {
	X, Y         float64
	Heading      float64
	Kappa        float64
	V            float64
	A            float64
	RelativeTime float64
}

// Discretized is an ordered sequence of Points sampled on a fixed time grid over
// [0, plannedTrajectoryTime].
type Discretized []Point
