// Package display drives the toast lifecycle: it owns the per-position
// container registry and sequences every toast through
// appear -> hold -> disappear -> dispose on an injected surface.
package display

import (
	"log/slog"
	"sync"

	"github.com/toastd/toastd/internal/config"
	"github.com/toastd/toastd/internal/notice"
	"github.com/toastd/toastd/internal/surface"
)

// ShowHook is called after a toast has been inserted into its
// container, before the entry transition begins.
type ShowHook func(n *notice.Notice)

// containerState tracks one live container and its occupancy. The live
// count, not the backend, decides retirement so that removal and
// registry cleanup happen under one lock.
type containerState struct {
	container surface.Container
	live      int
}

// Manager maps each screen position to at most one lazily-created
// container and runs each toast's lifecycle against it. All state is
// guarded by a single mutex; scheduler callbacks re-enter through it.
type Manager struct {
	surface  surface.Surface
	sched    surface.Scheduler
	resolver *config.Resolver
	logger   *slog.Logger

	mu         sync.Mutex
	containers map[config.Position]*containerState

	onShow ShowHook
}

// NewManager creates a manager rendering on the given surface. The
// resolver carries the process-wide default settings; pass nil for a
// fresh one with built-in defaults.
func NewManager(surf surface.Surface, sched surface.Scheduler, resolver *config.Resolver, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	if resolver == nil {
		resolver = config.NewResolver()
	}
	return &Manager{
		surface:    surf,
		sched:      sched,
		resolver:   resolver,
		logger:     logger,
		containers: make(map[config.Position]*containerState),
	}
}

// SetShowHook registers a hook invoked for every toast as it is shown
// (used for notification sounds). Must be set before toasts are fired.
func (m *Manager) SetShowHook(hook ShowHook) {
	m.onShow = hook
}

// SetConfig merges the set fields of s into the process-wide defaults.
// In-flight toasts are unaffected.
func (m *Manager) SetConfig(s config.Settings) {
	m.resolver.SetDefaults(s)
	m.logger.Debug("defaults updated",
		"position", m.resolver.Defaults().Position,
		"duration", m.resolver.Defaults().Duration,
	)
}

// Defaults returns the current process-wide default settings.
func (m *Manager) Defaults() config.Settings {
	return m.resolver.Defaults()
}

// Info shows an info toast.
func (m *Manager) Info(message string, overrides ...config.Settings) {
	m.Notify(notice.SeverityInfo, message, overrides...)
}

// Success shows a success toast.
func (m *Manager) Success(message string, overrides ...config.Settings) {
	m.Notify(notice.SeveritySuccess, message, overrides...)
}

// Warn shows a warning toast.
func (m *Manager) Warn(message string, overrides ...config.Settings) {
	m.Notify(notice.SeverityWarn, message, overrides...)
}

// Error shows an error toast.
func (m *Manager) Error(message string, overrides ...config.Settings) {
	m.Notify(notice.SeverityError, message, overrides...)
}

// Notify resolves the effective settings, builds the toast, and runs
// its lifecycle. Fire-and-forget: no handle is returned and no error is
// reported to the caller at any stage.
func (m *Manager) Notify(severity notice.Severity, message string, overrides ...config.Settings) {
	eff := m.resolver.Resolve(overrides...)

	n := notice.Build(severity, eff.Position)
	n.Message = message

	m.mu.Lock()
	state, err := m.getOrCreateLocked(eff.Position)
	if err != nil {
		m.mu.Unlock()
		m.logger.Warn("failed to create container",
			"position", eff.Position,
			"error", err,
		)
		return
	}

	// Appended at the end, invisible and displaced to its initial
	// offset, so toasts for one position stack in call order.
	el := state.container.Insert(n)
	state.live++
	n.SetState(notice.StateEntering)
	container := state.container
	m.mu.Unlock()

	if m.onShow != nil {
		m.onShow(n)
	}

	m.logger.Debug("toast shown",
		"id", n.ID,
		"severity", severity.String(),
		"position", eff.Position,
		"duration", eff.Duration,
	)

	// Two chained frame deferrals before the entry transition: the
	// surface must commit one render pass with the hidden state before
	// the reveal, or no transition is observable. One deferral is not
	// enough.
	m.sched.NextFrame(func() {
		m.sched.NextFrame(func() {
			el.Reveal()
			// The entry transition runs concurrently with the hold
			// timer; there is no entry-completion callback.
			n.SetState(notice.StateHeld)
		})
	})

	// The hold timer runs from creation, not from the end of the
	// entry transition.
	m.sched.After(eff.Duration, func() {
		n.SetState(notice.StateExiting)
		// Listen before triggering: the settled signal is observed
		// once and then detached.
		el.OnSettled(func() {
			m.dispose(eff.Position, container, el, n)
		})
		el.Conceal()
	})
}

// dispose detaches the toast from its container and retires the
// container if it became empty. Removal and retirement happen under
// one lock so no observer sees an empty container persist.
func (m *Manager) dispose(pos config.Position, c surface.Container, el surface.Element, n *notice.Notice) {
	m.mu.Lock()
	c.Remove(el)
	n.SetState(notice.StateDisposed)

	state, ok := m.containers[pos]
	if ok && state.container == c {
		state.live--
		if state.live <= 0 {
			c.Detach()
			delete(m.containers, pos)
		}
	}
	m.mu.Unlock()

	m.logger.Debug("toast disposed", "id", n.ID, "position", pos)
}

// getOrCreateLocked returns the container registered for the position,
// allocating and registering one on first use. Registry state is
// checked at call time, so a position retired by a previous dispose is
// recreated fresh. Caller must hold the lock.
func (m *Manager) getOrCreateLocked(pos config.Position) (*containerState, error) {
	if state, ok := m.containers[pos]; ok {
		return state, nil
	}

	c, err := m.surface.CreateContainer(pos)
	if err != nil {
		return nil, err
	}

	state := &containerState{container: c}
	m.containers[pos] = state
	m.logger.Debug("container created", "position", pos)
	return state, nil
}

// ActiveCount returns the number of live toasts across all containers.
func (m *Manager) ActiveCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	total := 0
	for _, state := range m.containers {
		total += state.live
	}
	return total
}

// ContainerCount returns the number of live containers.
func (m *Manager) ContainerCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.containers)
}

// Close detaches every container from the surface. Toasts mid-flight
// are abandoned; their pending callbacks become no-ops against the
// emptied registry. Used on daemon shutdown only.
func (m *Manager) Close() {
	m.mu.Lock()
	for pos, state := range m.containers {
		state.container.Detach()
		delete(m.containers, pos)
	}
	m.mu.Unlock()

	m.logger.Debug("display manager closed")
}
