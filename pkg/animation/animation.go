// Package animation drives time based transitions of a gauge displacement,
// painting once per frame requested from a Scheduler.
package animation

import (
	"math"
	"time"
)

type State int

const (
	Idle State = iota
	Running
	Completed
	Cancelled
)

func (s State) String() string {
	switch s {
	case Idle:
		return "Idle"
	case Running:
		return "Running"
	case Completed:
		return "Completed"
	case Cancelled:
		return "Cancelled"
	default:
		return "Unknown"
	}
}

// Transition is the state of one animation from From to To. Start is set by
// the first frame that runs.
type Transition struct {
	Start      time.Time
	From, To   float64
	Duration   time.Duration
	Generation uint64
}

// Progress is elapsed/duration clamped to [0, 1]. A non-positive duration is
// always complete.
func Progress(elapsed, duration time.Duration) float64 {
	if duration <= 0 {
		return 1
	}
	if elapsed <= 0 {
		return 0
	}
	return math.Min(float64(elapsed)/float64(duration), 1)
}

// Interpolate moves linearly from from towards to by progress.
func Interpolate(from, to, progress float64) float64 {
	diff := from - to
	if diff > 0 {
		return from - diff*progress
	}
	return from + -diff*progress
}
