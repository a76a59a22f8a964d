package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toastd/toastd/internal/config"
	"github.com/toastd/toastd/internal/notice"
)

func TestSurface_RevealMakesToastVisible(t *testing.T) {
	s := New(Options{Transition: time.Millisecond})

	c, err := s.CreateContainer(config.PositionBottomRight)
	require.NoError(t, err)

	n := notice.Build(notice.SeverityInfo, config.PositionBottomRight)
	n.Message = "saved to disk"
	el := c.Insert(n)

	// Inserted hidden: laid out but not rendered.
	assert.NotContains(t, s.View(120, 30), "saved to disk")

	el.Reveal()
	assert.Contains(t, s.View(120, 30), "saved to disk")

	el.Conceal()
	assert.NotContains(t, s.View(120, 30), "saved to disk")
}

func TestSurface_ConcealFiresSettledOnce(t *testing.T) {
	s := New(Options{Transition: time.Millisecond})

	c, err := s.CreateContainer(config.PositionTopLeft)
	require.NoError(t, err)

	el := c.Insert(notice.Build(notice.SeverityWarn, config.PositionTopLeft))
	el.Reveal()

	fired := make(chan struct{}, 2)
	el.OnSettled(func() { fired <- struct{}{} })
	el.Conceal()

	select {
	case <-fired:
	case <-time.After(time.Second):
		t.Fatal("settled signal never fired")
	}

	// The listener is one-shot.
	el.Conceal()
	select {
	case <-fired:
		t.Fatal("settled listener fired twice")
	case <-time.After(20 * time.Millisecond):
	}
}

func TestSurface_StackOrderAndRemoval(t *testing.T) {
	s := New(Options{Transition: time.Millisecond})

	c, err := s.CreateContainer(config.PositionBottomRight)
	require.NoError(t, err)

	a := notice.Build(notice.SeverityWarn, config.PositionBottomRight)
	a.Message = "first"
	b := notice.Build(notice.SeverityWarn, config.PositionBottomRight)
	b.Message = "second"

	elA := c.Insert(a)
	elB := c.Insert(b)
	elA.Reveal()
	elB.Reveal()
	require.Equal(t, 2, c.Count())

	view := s.View(120, 30)
	iA := strings.Index(view, "first")
	iB := strings.Index(view, "second")
	require.GreaterOrEqual(t, iA, 0)
	require.GreaterOrEqual(t, iB, 0)
	assert.Less(t, iA, iB, "newest toast renders last")

	c.Remove(elA)
	assert.Equal(t, 1, c.Count())
	view = s.View(120, 30)
	assert.NotContains(t, view, "first")
	assert.Contains(t, view, "second")
}

func TestSurface_DetachClearsPosition(t *testing.T) {
	s := New(Options{Transition: time.Millisecond})

	c, err := s.CreateContainer(config.PositionCenter)
	require.NoError(t, err)

	n := notice.Build(notice.SeverityError, config.PositionCenter)
	n.Message = "gone soon"
	c.Insert(n).Reveal()
	require.Contains(t, s.View(90, 30), "gone soon")

	c.Detach()
	assert.NotContains(t, s.View(90, 30), "gone soon")
}

func TestSurface_InvalidateCalledOnChanges(t *testing.T) {
	s := New(Options{Transition: time.Millisecond})

	var repaints int
	s.SetInvalidate(func() { repaints++ })

	c, err := s.CreateContainer(config.PositionTopRight)
	require.NoError(t, err)

	el := c.Insert(notice.Build(notice.SeverityInfo, config.PositionTopRight))
	el.Reveal()
	require.Greater(t, repaints, 0)
}

func TestSurface_TinyWindowRendersNothing(t *testing.T) {
	s := New(Options{Transition: time.Millisecond})
	assert.Empty(t, s.View(0, 0))
	assert.Empty(t, s.View(2, 1))
}
