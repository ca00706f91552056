package animation

import (
	"sync"
	"time"
)

// PaintFunc paints one frame at the given displacement. It runs with the
// driver locked and must not call back into the driver.
type PaintFunc func(displacement float64)

// Driver runs at most one transition at a time. Starting a transition
// supersedes the running one: its pending frame is cancelled and frames of
// older generations are dropped without painting.
type Driver struct {
	sched Scheduler

	mu        sync.Mutex
	gen       uint64
	frame     FrameID
	hasFrame  bool
	state     State
	started   bool
	tr        Transition
	displayed float64
	done      chan struct{}
}

func NewDriver(sched Scheduler) *Driver {
	done := make(chan struct{})
	close(done)
	return &Driver{sched: sched, done: done}
}

// Start animates from one displacement to another over duration and returns
// the generation of the new transition.
func (d *Driver) Start(from, to float64, duration time.Duration, paint PaintFunc) uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopLocked(Cancelled)

	d.gen++
	d.tr = Transition{From: from, To: to, Duration: duration, Generation: d.gen}
	d.started = false
	d.state = Running
	d.done = make(chan struct{})
	d.requestLocked(d.gen, paint)
	return d.gen
}

// Cancel stops the running transition, leaving the last painted frame.
func (d *Driver) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopLocked(Cancelled)
	d.gen++
}

func (d *Driver) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// Displayed returns the displacement of the last painted frame.
func (d *Driver) Displayed() float64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.displayed
}

// Transition returns a copy of the current or last transition.
func (d *Driver) Transition() Transition {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.tr
}

// Done is closed when the current transition completes or is superseded.
func (d *Driver) Done() <-chan struct{} {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.done
}

func (d *Driver) stopLocked(final State) {
	if d.hasFrame {
		d.sched.CancelFrame(d.frame)
		d.hasFrame = false
	}
	if d.state == Running {
		d.state = final
		close(d.done)
	}
}

func (d *Driver) requestLocked(gen uint64, paint PaintFunc) {
	d.frame = d.sched.RequestFrame(func(now time.Time) {
		d.step(gen, paint, now)
	})
	d.hasFrame = true
}

func (d *Driver) step(gen uint64, paint PaintFunc, now time.Time) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if gen != d.gen || d.state != Running {
		return
	}
	d.hasFrame = false
	if !d.started {
		d.tr.Start = now
		d.started = true
	}

	runtime := now.Sub(d.tr.Start)
	d.displayed = Interpolate(d.tr.From, d.tr.To, Progress(runtime, d.tr.Duration))
	paint(d.displayed)

	if runtime < d.tr.Duration {
		d.requestLocked(gen, paint)
		return
	}
	d.state = Completed
	close(d.done)
}
