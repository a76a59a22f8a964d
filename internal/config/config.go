// Package config handles toast settings, defaults resolution, and the
// daemon configuration file.
package config

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Position represents a screen position a toast container anchors to.
// The value combines a vertical anchor (top, center, bottom) with a
// horizontal anchor (left, center, right); the doubly-centered case
// collapses to the bare "center" value, giving 9 distinct positions.
type Position string

const (
	PositionTopLeft      Position = "top-left"
	PositionTopCenter    Position = "top-center"
	PositionTopRight     Position = "top-right"
	PositionCenterLeft   Position = "center-left"
	PositionCenter       Position = "center"
	PositionCenterRight  Position = "center-right"
	PositionBottomLeft   Position = "bottom-left"
	PositionBottomCenter Position = "bottom-center"
	PositionBottomRight  Position = "bottom-right"
)

// ValidPositions returns all valid position values.
func ValidPositions() []Position {
	return []Position{
		PositionTopLeft,
		PositionTopCenter,
		PositionTopRight,
		PositionCenterLeft,
		PositionCenter,
		PositionCenterRight,
		PositionBottomLeft,
		PositionBottomCenter,
		PositionBottomRight,
	}
}

// ParsePosition normalizes a user-supplied position string. It accepts
// hyphen, underscore, or space separated forms ("bottom right",
// "bottom_right", "bottom-right") and collapses "center-center" to
// "center". Unknown values are rejected.
func ParsePosition(s string) (Position, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.NewReplacer(" ", "-", "_", "-").Replace(norm)
	if norm == "center-center" {
		norm = string(PositionCenter)
	}
	p := Position(norm)
	for _, v := range ValidPositions() {
		if p == v {
			return p, nil
		}
	}
	return "", fmt.Errorf("invalid position %q, must be one of: %v", s, ValidPositions())
}

// Anchor is one component of a position.
type Anchor string

const (
	AnchorTop    Anchor = "top"
	AnchorBottom Anchor = "bottom"
	AnchorLeft   Anchor = "left"
	AnchorRight  Anchor = "right"
	AnchorCenter Anchor = "center"
)

// Vertical returns the vertical anchor component of the position.
// Out-of-domain positions degrade to the bottom edge; the core never
// validates positions (that is the caller's responsibility).
func (p Position) Vertical() Anchor {
	if p == PositionCenter {
		return AnchorCenter
	}
	v, _, _ := strings.Cut(string(p), "-")
	switch Anchor(v) {
	case AnchorTop, AnchorCenter:
		return Anchor(v)
	default:
		return AnchorBottom
	}
}

// Horizontal returns the horizontal anchor component of the position.
// Out-of-domain positions degrade to the right edge.
func (p Position) Horizontal() Anchor {
	if p == PositionCenter {
		return AnchorCenter
	}
	_, h, ok := strings.Cut(string(p), "-")
	if !ok {
		return AnchorRight
	}
	switch Anchor(h) {
	case AnchorLeft, AnchorCenter:
		return Anchor(h)
	default:
		return AnchorRight
	}
}

// Default settings applied when neither the caller nor SetConfig
// supplies a value.
const (
	DefaultPosition = PositionBottomRight
	DefaultDuration = 3 * time.Second
)

// Settings holds the per-toast configuration. The zero value of a field
// means "unset"; unset fields fall through to the process-wide defaults
// when resolved.
type Settings struct {
	Position Position
	Duration time.Duration
}

// merge overlays the set fields of other onto s and returns the result.
// The merge is shallow: each field falls back independently.
func (s Settings) merge(other Settings) Settings {
	if other.Position != "" {
		s.Position = other.Position
	}
	if other.Duration != 0 {
		s.Duration = other.Duration
	}
	return s
}

// Resolver owns the mutable process-wide default settings and produces
// immutable effective settings for a single call.
type Resolver struct {
	mu       sync.RWMutex
	defaults Settings
}

// NewResolver returns a Resolver seeded with the built-in defaults.
func NewResolver() *Resolver {
	return &Resolver{
		defaults: Settings{Position: DefaultPosition, Duration: DefaultDuration},
	}
}

// Resolve merges the given overrides onto the current defaults,
// field-by-field, later overrides winning. It reads the defaults at
// call time, so a prior SetDefaults is observed; it has no side
// effects and never fails.
func (r *Resolver) Resolve(overrides ...Settings) Settings {
	r.mu.RLock()
	eff := r.defaults
	r.mu.RUnlock()

	for _, o := range overrides {
		eff = eff.merge(o)
	}
	return eff
}

// SetDefaults merges the set fields of s into the process-wide
// defaults permanently. Unset fields leave the current default
// untouched, so SetDefaults(Settings{}) is a no-op. Only future
// resolutions are affected; settings already captured for in-flight
// toasts do not change.
func (r *Resolver) SetDefaults(s Settings) {
	r.mu.Lock()
	r.defaults = r.defaults.merge(s)
	r.mu.Unlock()
}

// Defaults returns a copy of the current process-wide defaults.
func (r *Resolver) Defaults() Settings {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.defaults
}

// Duration is a time.Duration that unmarshals from human-readable
// strings. Supports formats like "500ms", "3s", "1m", or bare integer
// milliseconds.
type Duration time.Duration

// ParseDuration parses a duration string accepting both Go duration
// syntax and bare integer milliseconds.
func ParseDuration(s string) (time.Duration, error) {
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Duration(ms) * time.Millisecond, nil
	}
	dur, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q: must be like '500ms', '3s' or milliseconds: %w", s, err)
	}
	return dur, nil
}

// UnmarshalText implements encoding.TextUnmarshaler for TOML parsing.
func (d *Duration) UnmarshalText(text []byte) error {
	dur, err := ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(dur)
	return nil
}

// MarshalText implements encoding.TextMarshaler for TOML output.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Duration returns the underlying time.Duration.
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}
