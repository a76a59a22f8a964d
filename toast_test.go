package toast

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toastd/toastd/internal/config"
	"github.com/toastd/toastd/internal/notice"
	"github.com/toastd/toastd/internal/surface"
)

type stubSurface struct {
	containers []*stubContainer
}

func (s *stubSurface) CreateContainer(pos config.Position) (surface.Container, error) {
	c := &stubContainer{pos: pos}
	s.containers = append(s.containers, c)
	return c, nil
}

type stubContainer struct {
	pos      config.Position
	notices  []*notice.Notice
	detached bool
}

func (c *stubContainer) Insert(n *notice.Notice) surface.Element {
	c.notices = append(c.notices, n)
	return &stubElement{}
}

func (c *stubContainer) Remove(surface.Element) {}

func (c *stubContainer) Count() int { return len(c.notices) }

func (c *stubContainer) Detach() { c.detached = true }

type stubElement struct{}

func (*stubElement) Reveal()          {}
func (*stubElement) Conceal()         {}
func (*stubElement) OnSettled(func()) {}

type stubScheduler struct {
	durations []time.Duration
}

func (*stubScheduler) NextFrame(func()) {}
func (s *stubScheduler) After(d time.Duration, _ func()) {
	s.durations = append(s.durations, d)
}

func TestFacade_UnattachedCallsAreDropped(t *testing.T) {
	Detach()

	// Must not panic; fire-and-forget with nowhere to fire.
	Info("nobody home")
	Error("still nobody")
}

func TestFacade_SeveritiesReachSurface(t *testing.T) {
	surf := &stubSurface{}
	Attach(surf, &stubScheduler{}, nil)
	t.Cleanup(Detach)

	Info("a")
	Success("b")
	Warn("c")
	Error("d")

	require.Len(t, surf.containers, 1)
	c := surf.containers[0]
	require.Equal(t, 4, c.Count())
	assert.Equal(t, notice.SeverityInfo, c.notices[0].Severity)
	assert.Equal(t, notice.SeveritySuccess, c.notices[1].Severity)
	assert.Equal(t, notice.SeverityWarn, c.notices[2].Severity)
	assert.Equal(t, notice.SeverityError, c.notices[3].Severity)
}

func TestFacade_SettingsOverride(t *testing.T) {
	surf := &stubSurface{}
	sched := &stubScheduler{}
	Attach(surf, sched, nil)
	t.Cleanup(Detach)

	Warn("over there", Settings{Position: TopLeft, Duration: time.Second})

	require.Len(t, surf.containers, 1)
	assert.Equal(t, TopLeft, surf.containers[0].pos)
	require.Len(t, sched.durations, 1)
	assert.Equal(t, time.Second, sched.durations[0])
}

func TestFacade_SetConfigBeforeAttach(t *testing.T) {
	Detach()
	SetConfig(Settings{Position: TopCenter})

	surf := &stubSurface{}
	Attach(surf, &stubScheduler{}, nil)
	t.Cleanup(Detach)

	Info("inherits early default")
	require.Len(t, surf.containers, 1)
	assert.Equal(t, TopCenter, surf.containers[0].pos)
}
