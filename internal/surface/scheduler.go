package surface

import "time"

// DefaultFrameInterval approximates one render pass for backends that
// have no native frame clock.
const DefaultFrameInterval = 16 * time.Millisecond

// TimerScheduler is a Scheduler backed by the runtime timer. Backends
// with a native frame clock (the GTK backend) bring their own; this one
// serves terminal surfaces and anything else that repaints on a tick.
type TimerScheduler struct {
	Frame time.Duration
}

// NewTimerScheduler returns a TimerScheduler with the default frame
// interval.
func NewTimerScheduler() *TimerScheduler {
	return &TimerScheduler{Frame: DefaultFrameInterval}
}

// NextFrame runs fn after one frame interval.
func (s *TimerScheduler) NextFrame(fn func()) {
	frame := s.Frame
	if frame <= 0 {
		frame = DefaultFrameInterval
	}
	time.AfterFunc(frame, fn)
}

// After runs fn once d has elapsed.
func (s *TimerScheduler) After(d time.Duration, fn func()) {
	time.AfterFunc(d, fn)
}
