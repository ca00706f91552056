package arcgauge

import (
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"github.com/roffe/txgauge/pkg/animation"
)

// fyneScheduler runs animation frames on fyne's animation ticker, so frames
// paint on the main thread. The fyne.Animation only runs while frames are
// pending.
type fyneScheduler struct {
	frames *animation.ManualScheduler

	mu   sync.Mutex
	anim *fyne.Animation
}

func newFyneScheduler() *fyneScheduler {
	return &fyneScheduler{frames: animation.NewManualScheduler()}
}

func (s *fyneScheduler) RequestFrame(fn animation.FrameFunc) animation.FrameID {
	id := s.frames.RequestFrame(fn)

	s.mu.Lock()
	if s.anim != nil {
		s.mu.Unlock()
		return id
	}
	var anim *fyne.Animation
	anim = fyne.NewAnimation(time.Second, func(float32) { s.tick(anim) })
	anim.RepeatCount = fyne.AnimationRepeatForever
	anim.Curve = fyne.AnimationLinear
	s.anim = anim
	s.mu.Unlock()

	// RequestFrame is called with the driver locked and a driver may tick
	// synchronously on Start.
	go anim.Start()
	return id
}

func (s *fyneScheduler) CancelFrame(id animation.FrameID) {
	s.frames.CancelFrame(id)
}

func (s *fyneScheduler) tick(anim *fyne.Animation) {
	s.frames.Step(time.Now())

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.frames.Pending() > 0 {
		return
	}
	if anim != nil {
		anim.Stop()
	}
	if s.anim == anim {
		s.anim = nil
	}
}
