package layershell

import (
	"time"

	"github.com/diamondburned/gotk4/pkg/glib/v2"
)

// frameInterval approximates one frame of a 60Hz compositor. GTK has
// no public next-frame hook usable off the widget tick callback, and
// an idle callback can run twice before a single render pass, so a
// short main-loop timeout stands in for the frame boundary.
const frameInterval = 16 * time.Millisecond

// Scheduler runs callbacks on the GTK main loop.
type Scheduler struct{}

// NewScheduler creates a GTK main-loop scheduler.
func NewScheduler() *Scheduler { return &Scheduler{} }

func (s *Scheduler) NextFrame(fn func()) {
	glib.TimeoutAdd(uint(frameInterval.Milliseconds()), func() bool {
		fn()
		return false
	})
}

func (s *Scheduler) After(d time.Duration, fn func()) {
	ms := d.Milliseconds()
	if ms < 1 {
		ms = 1
	}
	glib.TimeoutAdd(uint(ms), func() bool {
		fn()
		return false
	})
}
