// Package notice defines the toast data model: severities with their
// fixed styling, the off-screen offset a toast animates from, and the
// per-toast lifecycle state.
package notice

import (
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/toastd/toastd/internal/config"
)

// Severity classifies a toast message.
type Severity int

const (
	SeverityInfo Severity = iota
	SeveritySuccess
	SeverityWarn
	SeverityError
)

// SeverityNames maps severities to their canonical names.
var SeverityNames = map[Severity]string{
	SeverityInfo:    "info",
	SeveritySuccess: "success",
	SeverityWarn:    "warn",
	SeverityError:   "error",
}

func (s Severity) String() string {
	if name, ok := SeverityNames[s]; ok {
		return name
	}
	return "unknown"
}

// Style is the fixed visual identity of a severity.
type Style struct {
	Accent string // Accent color as a hex triplet
	Glyph  string // Single-cell glyph for terminal rendering
	Icon   string // Freedesktop icon name for widget rendering
}

// styles is the severity -> style table. Each severity carries exactly
// one accent color and glyph; there is no fallback between severities.
var styles = map[Severity]Style{
	SeverityInfo:    {Accent: "#2196f3", Glyph: "ℹ", Icon: "dialog-information"},
	SeveritySuccess: {Accent: "#4caf50", Glyph: "✔", Icon: "emblem-default"},
	SeverityWarn:    {Accent: "#ff9800", Glyph: "⚠", Icon: "dialog-warning"},
	SeverityError:   {Accent: "#f44336", Glyph: "✖", Icon: "dialog-error"},
}

// Style returns the fixed styling for the severity. Unknown severities
// get the info styling.
func (s Severity) Style() Style {
	if st, ok := styles[s]; ok {
		return st
	}
	return styles[SeverityInfo]
}

// State is a toast's lifecycle state. Transitions are linear with no
// branching: Built -> Entering -> Held -> Exiting -> Disposed.
type State int

const (
	StateBuilt State = iota
	StateEntering
	StateHeld
	StateExiting
	StateDisposed
)

func (s State) String() string {
	switch s {
	case StateBuilt:
		return "built"
	case StateEntering:
		return "entering"
	case StateHeld:
		return "held"
	case StateExiting:
		return "exiting"
	case StateDisposed:
		return "disposed"
	default:
		return "unknown"
	}
}

// Offset is the off-screen transform a toast animates from on entry
// and back to on exit. It is derived once from the toast's position at
// creation and never recomputed.
type Offset struct {
	// X is the horizontal slide direction: -1 from the left edge,
	// +1 from the right edge, 0 for no slide.
	X int
	// Scale is the starting scale factor; 1 means full size. Only the
	// doubly-centered position pops from half size.
	Scale float64
}

// OffsetFor derives the initial offset for a position:
//   - a left anchor slides in from the left edge
//   - a right anchor slides in from the right edge
//   - a horizontally centered position with a top or bottom anchor
//     slides in from the right edge as well (long-standing behavior,
//     kept as-is and pinned by tests)
//   - the bare center position scales in from half size
func OffsetFor(pos config.Position) Offset {
	if pos == config.PositionCenter {
		return Offset{Scale: 0.5}
	}
	switch pos.Horizontal() {
	case config.AnchorLeft:
		return Offset{X: -1, Scale: 1}
	default:
		return Offset{X: 1, Scale: 1}
	}
}

// Notice is one displayed toast instance. It belongs to exactly one
// container for its entire life and is never moved.
type Notice struct {
	ID        string
	Severity  Severity
	Title     string // Reserved; currently always empty
	Message   string
	Position  config.Position
	Offset    Offset
	CreatedAt time.Time

	mu    sync.Mutex
	state State
}

// Build produces a notice for the given severity and position. The
// initial offset depends only on the position; timing and placement
// are left to the lifecycle sequencer.
func Build(severity Severity, pos config.Position) *Notice {
	return &Notice{
		ID:        ulid.Make().String(),
		Severity:  severity,
		Position:  pos,
		Offset:    OffsetFor(pos),
		CreatedAt: time.Now(),
		state:     StateBuilt,
	}
}

// State returns the current lifecycle state.
func (n *Notice) State() State {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.state
}

// SetState records a lifecycle transition. The sequencer is the only
// caller; transitions are linear and never re-entered.
func (n *Notice) SetState(s State) {
	n.mu.Lock()
	n.state = s
	n.mu.Unlock()
}
