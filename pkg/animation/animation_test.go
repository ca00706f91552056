package animation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProgress(t *testing.T) {
	tests := []struct {
		name     string
		elapsed  time.Duration
		duration time.Duration
		want     float64
	}{
		{name: "start", elapsed: 0, duration: time.Second, want: 0},
		{name: "negative elapsed", elapsed: -time.Second, duration: time.Second, want: 0},
		{name: "half", elapsed: 600 * time.Millisecond, duration: 1200 * time.Millisecond, want: 0.5},
		{name: "end", elapsed: time.Second, duration: time.Second, want: 1},
		{name: "past end", elapsed: 5 * time.Second, duration: time.Second, want: 1},
		{name: "zero duration", elapsed: 0, duration: 0, want: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Progress(tt.elapsed, tt.duration), 1e-12)
		})
	}
}

func TestProgressMonotonic(t *testing.T) {
	const duration = 1200 * time.Millisecond
	last := -1.0
	for elapsed := time.Duration(0); elapsed <= 2*duration; elapsed += 7 * time.Millisecond {
		p := Progress(elapsed, duration)
		assert.GreaterOrEqual(t, p, last)
		assert.LessOrEqual(t, p, 1.0)
		last = p
	}
	assert.Equal(t, 1.0, last)
}

func TestInterpolate(t *testing.T) {
	assert.Equal(t, 5.0, Interpolate(0, 10, 0.5))
	assert.Equal(t, 5.0, Interpolate(10, 0, 0.5))
	assert.Equal(t, 10.0, Interpolate(10, 10, 0.3))
	assert.Equal(t, 0.0, Interpolate(10, 0, 1))
	assert.Equal(t, 10.0, Interpolate(0, 10, 1))
}

func TestDriverRunsToCompletion(t *testing.T) {
	sched := NewManualScheduler()
	d := NewDriver(sched)
	var painted []float64

	t0 := time.Unix(1000, 0)
	d.Start(0, 10, 100*time.Millisecond, func(v float64) { painted = append(painted, v) })
	assert.Equal(t, Running, d.State())
	assert.Equal(t, 1, sched.Pending())

	sched.Step(t0)
	sched.Step(t0.Add(50 * time.Millisecond))
	sched.Step(t0.Add(100 * time.Millisecond))

	assert.Equal(t, []float64{0, 5, 10}, painted)
	assert.Equal(t, Completed, d.State())
	assert.Equal(t, 0, sched.Pending())
	assert.Equal(t, 10.0, d.Displayed())
	assert.Equal(t, t0, d.Transition().Start)

	select {
	case <-d.Done():
	default:
		t.Fatal("Done not closed after completion")
	}
}

func TestDriverZeroDurationPaintsTarget(t *testing.T) {
	sched := NewManualScheduler()
	d := NewDriver(sched)
	var painted []float64
	d.Start(3, 7, 0, func(v float64) { painted = append(painted, v) })
	sched.Step(time.Now())
	assert.Equal(t, []float64{7}, painted)
	assert.Equal(t, Completed, d.State())
}

func TestDriverSupersedes(t *testing.T) {
	sched := NewManualScheduler()
	d := NewDriver(sched)
	var first, second []float64

	t0 := time.Unix(1000, 0)
	d.Start(0, 10, time.Second, func(v float64) { first = append(first, v) })
	sched.Step(t0)
	oldDone := d.Done()

	d.Start(2, 4, time.Second, func(v float64) { second = append(second, v) })
	assert.Equal(t, 1, sched.Pending(), "old frame request cancelled")
	select {
	case <-oldDone:
	default:
		t.Fatal("superseded transition not finished")
	}

	sched.Step(t0.Add(10 * time.Millisecond))
	sched.Step(t0.Add(time.Second + 10*time.Millisecond))

	assert.Equal(t, []float64{0}, first)
	assert.Equal(t, []float64{2, 4}, second)
	assert.Equal(t, Completed, d.State())
}

// leakyScheduler never cancels, so stale frames still fire.
type leakyScheduler struct {
	*ManualScheduler
}

func (leakyScheduler) CancelFrame(FrameID) {}

func TestDriverDropsStaleFrames(t *testing.T) {
	sched := leakyScheduler{NewManualScheduler()}
	d := NewDriver(sched)
	var first, second int

	d.Start(0, 10, time.Second, func(float64) { first++ })
	d.Start(0, 20, time.Second, func(float64) { second++ })
	assert.Equal(t, 2, sched.Pending())

	sched.Step(time.Unix(0, 0))
	assert.Zero(t, first)
	assert.Equal(t, 1, second)
}

func TestDriverCancel(t *testing.T) {
	sched := NewManualScheduler()
	d := NewDriver(sched)
	painted := 0
	d.Start(0, 1, time.Second, func(float64) { painted++ })
	d.Cancel()

	assert.Equal(t, Cancelled, d.State())
	assert.Zero(t, sched.Pending())
	sched.Step(time.Now())
	assert.Zero(t, painted)
	<-d.Done()
}

func TestDriverIdleDone(t *testing.T) {
	d := NewDriver(NewManualScheduler())
	assert.Equal(t, Idle, d.State())
	<-d.Done()
}

func TestTickerScheduler(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	d := NewDriver(NewTickerScheduler(ctx, 5*time.Millisecond))
	frames := 0
	d.Start(0, 1, 30*time.Millisecond, func(float64) { frames++ })

	select {
	case <-d.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("transition did not complete")
	}
	require.Equal(t, Completed, d.State())
	assert.GreaterOrEqual(t, frames, 2)
	assert.Equal(t, 1.0, d.Displayed())
}
