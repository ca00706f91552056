package animation

import (
	"context"
	"sync"
	"time"
)

type FrameID uint64

// FrameFunc runs once per requested frame with the frame timestamp.
type FrameFunc func(now time.Time)

// Scheduler runs each requested frame callback once, before the next repaint
// of the host. Callbacks requested from inside a callback run on the next
// frame.
type Scheduler interface {
	RequestFrame(fn FrameFunc) FrameID
	CancelFrame(id FrameID)
}

type pendingFrame struct {
	id FrameID
	fn FrameFunc
}

type frameQueue struct {
	mu      sync.Mutex
	next    FrameID
	pending []pendingFrame
}

func (q *frameQueue) push(fn FrameFunc) FrameID {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.next++
	q.pending = append(q.pending, pendingFrame{id: q.next, fn: fn})
	return q.next
}

func (q *frameQueue) remove(id FrameID) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for i, f := range q.pending {
		if f.id == id {
			q.pending = append(q.pending[:i], q.pending[i+1:]...)
			return
		}
	}
}

func (q *frameQueue) len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// flush runs the frames queued so far, outside the queue lock.
func (q *frameQueue) flush(now time.Time) int {
	q.mu.Lock()
	frames := q.pending
	q.pending = nil
	q.mu.Unlock()
	for _, f := range frames {
		f.fn(now)
	}
	return len(frames)
}

// ManualScheduler runs frames only when stepped. It is used for deterministic
// rendering at a fixed frame rate and in tests.
type ManualScheduler struct {
	q frameQueue
}

func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

func (m *ManualScheduler) RequestFrame(fn FrameFunc) FrameID { return m.q.push(fn) }

func (m *ManualScheduler) CancelFrame(id FrameID) { m.q.remove(id) }

// Pending returns the number of frames waiting for the next Step.
func (m *ManualScheduler) Pending() int { return m.q.len() }

// Step runs every frame requested before the call with timestamp now and
// returns how many ran.
func (m *ManualScheduler) Step(now time.Time) int { return m.q.flush(now) }

// TickerScheduler runs frames on its own goroutine at a fixed interval while
// frames are pending and sleeps otherwise. It stops when ctx is done.
type TickerScheduler struct {
	q        frameQueue
	interval time.Duration
	wake     chan struct{}
}

const DefaultFrameInterval = time.Second / 60

func NewTickerScheduler(ctx context.Context, interval time.Duration) *TickerScheduler {
	if interval <= 0 {
		interval = DefaultFrameInterval
	}
	t := &TickerScheduler{
		interval: interval,
		wake:     make(chan struct{}, 1),
	}
	go t.run(ctx)
	return t
}

func (t *TickerScheduler) RequestFrame(fn FrameFunc) FrameID {
	id := t.q.push(fn)
	select {
	case t.wake <- struct{}{}:
	default:
	}
	return id
}

func (t *TickerScheduler) CancelFrame(id FrameID) { t.q.remove(id) }

func (t *TickerScheduler) run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.wake:
		}
		ticker := time.NewTicker(t.interval)
		for t.q.len() > 0 {
			select {
			case <-ctx.Done():
				ticker.Stop()
				return
			case now := <-ticker.C:
				t.q.flush(now)
			}
		}
		ticker.Stop()
	}
}
