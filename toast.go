// Package toast shows transient notification toasts on an attached
// rendering surface. Callers fire a severity function and walk away:
// the toast appears at its configured position, holds for its
// configured duration, and disappears without any handle, cancellation
// primitive, or error channel.
//
// The package keeps one process-wide manager, created lazily on first
// use after a surface has been attached with Attach. Calls made before
// a surface is attached are dropped.
package toast

import (
	"log/slog"
	"sync"
	"time"

	"github.com/toastd/toastd/internal/config"
	"github.com/toastd/toastd/internal/display"
	"github.com/toastd/toastd/internal/surface"
)

// Settings configures a single toast or, via SetConfig, the
// process-wide defaults. Zero-value fields are unset and fall through
// to the current defaults.
type Settings = config.Settings

// Position anchors a toast container on the surface.
type Position = config.Position

// The nine reachable positions.
const (
	TopLeft      = config.PositionTopLeft
	TopCenter    = config.PositionTopCenter
	TopRight     = config.PositionTopRight
	CenterLeft   = config.PositionCenterLeft
	Center       = config.PositionCenter
	CenterRight  = config.PositionCenterRight
	BottomLeft   = config.PositionBottomLeft
	BottomCenter = config.PositionBottomCenter
	BottomRight  = config.PositionBottomRight
)

// Built-in defaults, replaceable per process with SetConfig.
const (
	DefaultPosition = config.DefaultPosition
	DefaultDuration = 3 * time.Second
)

var (
	mu       sync.Mutex
	resolver = config.NewResolver()
	mgr      *display.Manager
)

// Attach binds the process-wide manager to a rendering surface and
// scheduler. It replaces any previously attached surface; defaults set
// with SetConfig survive the swap. Returns the manager for callers
// that want direct access (the daemon wires hooks on it).
func Attach(surf surface.Surface, sched surface.Scheduler, logger *slog.Logger) *display.Manager {
	mu.Lock()
	defer mu.Unlock()
	mgr = display.NewManager(surf, sched, resolver, logger)
	return mgr
}

// Detach drops the attached surface. Subsequent calls are no-ops.
func Detach() {
	mu.Lock()
	defer mu.Unlock()
	mgr = nil
}

func manager() *display.Manager {
	mu.Lock()
	defer mu.Unlock()
	return mgr
}

// Info shows an info toast.
func Info(message string, overrides ...Settings) {
	if m := manager(); m != nil {
		m.Info(message, overrides...)
	}
}

// Success shows a success toast.
func Success(message string, overrides ...Settings) {
	if m := manager(); m != nil {
		m.Success(message, overrides...)
	}
}

// Warn shows a warning toast.
func Warn(message string, overrides ...Settings) {
	if m := manager(); m != nil {
		m.Warn(message, overrides...)
	}
}

// Error shows an error toast.
func Error(message string, overrides ...Settings) {
	if m := manager(); m != nil {
		m.Error(message, overrides...)
	}
}

// SetConfig merges the set fields of s into the process-wide defaults,
// permanently. Toasts already in flight keep the settings captured at
// their creation. Works before a surface is attached.
func SetConfig(s Settings) {
	resolver.SetDefaults(s)
}
