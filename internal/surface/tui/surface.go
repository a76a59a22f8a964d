// Package tui renders toast containers as a terminal overlay for
// bubbletea programs. The host model calls View with its window size
// and repaints when the surface invalidates.
package tui

import (
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/toastd/toastd/internal/config"
	"github.com/toastd/toastd/internal/notice"
	"github.com/toastd/toastd/internal/surface"
)

// Options configures the terminal surface.
type Options struct {
	Gap        int           // Blank lines between stacked toasts
	Transition time.Duration // Simulated entry/exit transition length
	MaxWidth   int           // Maximum toast width in cells
	Logger     *slog.Logger
}

// DefaultTransition approximates the entry/exit transition of a real
// compositor; the settled signal fires after this long.
const DefaultTransition = 150 * time.Millisecond

// Surface implements surface.Surface on a terminal grid. Containers at
// the nine anchor positions render into a 3x3 layout sized to the host
// window.
type Surface struct {
	mu         sync.Mutex
	opts       Options
	containers map[config.Position]*container
	invalidate func()
	logger     *slog.Logger
}

// New creates a terminal surface.
func New(opts Options) *Surface {
	if opts.Transition <= 0 {
		opts.Transition = DefaultTransition
	}
	if opts.MaxWidth <= 0 {
		opts.MaxWidth = 40
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Surface{
		opts:       opts,
		containers: make(map[config.Position]*container),
		logger:     opts.Logger,
	}
}

// SetInvalidate registers the host repaint trigger, typically a
// program.Send wrapper. Called whenever the overlay content changes.
func (s *Surface) SetInvalidate(fn func()) {
	s.mu.Lock()
	s.invalidate = fn
	s.mu.Unlock()
}

func (s *Surface) repaint() {
	s.mu.Lock()
	fn := s.invalidate
	s.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// CreateContainer allocates the container for a position.
func (s *Surface) CreateContainer(pos config.Position) (surface.Container, error) {
	c := &container{s: s, pos: pos}
	s.mu.Lock()
	s.containers[pos] = c
	s.mu.Unlock()
	s.logger.Debug("tui container created", "position", pos)
	return c, nil
}

// View renders the overlay for the given window size: a 3x3 grid of
// cells, each aligned to its anchor, holding that position's stack.
func (s *Surface) View(width, height int) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	cellW, cellH := width/3, height/3
	if cellW <= 0 || cellH <= 0 {
		return ""
	}

	rows := make([]string, 0, 3)
	for _, v := range []config.Anchor{config.AnchorTop, config.AnchorCenter, config.AnchorBottom} {
		cells := make([]string, 0, 3)
		for _, h := range []config.Anchor{config.AnchorLeft, config.AnchorCenter, config.AnchorRight} {
			stack := s.stackViewLocked(positionFor(v, h))
			cells = append(cells, lipgloss.Place(cellW, cellH, hAlign(h), vAlign(v), stack))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// stackViewLocked renders one container's visible toasts, newest last.
func (s *Surface) stackViewLocked(pos config.Position) string {
	c, ok := s.containers[pos]
	if !ok {
		return ""
	}

	views := make([]string, 0, len(c.elems))
	for _, el := range c.elems {
		if !el.visible {
			continue
		}
		views = append(views, el.view(s.opts.MaxWidth))
	}
	if len(views) == 0 {
		return ""
	}

	gap := strings.Repeat("\n", s.opts.Gap)
	joined := views[0]
	for _, v := range views[1:] {
		joined = lipgloss.JoinVertical(lipgloss.Left, joined, gap+v)
	}
	return joined
}

// positionFor recombines anchor components into a position value.
func positionFor(v, h config.Anchor) config.Position {
	if v == config.AnchorCenter && h == config.AnchorCenter {
		return config.PositionCenter
	}
	return config.Position(string(v) + "-" + string(h))
}

func hAlign(h config.Anchor) lipgloss.Position {
	switch h {
	case config.AnchorLeft:
		return lipgloss.Left
	case config.AnchorCenter:
		return lipgloss.Center
	default:
		return lipgloss.Right
	}
}

func vAlign(v config.Anchor) lipgloss.Position {
	switch v {
	case config.AnchorTop:
		return lipgloss.Top
	case config.AnchorCenter:
		return lipgloss.Center
	default:
		return lipgloss.Bottom
	}
}

type container struct {
	s        *Surface
	pos      config.Position
	elems    []*element
	detached bool
}

func (c *container) Insert(n *notice.Notice) surface.Element {
	el := &element{c: c, n: n}
	c.s.mu.Lock()
	c.elems = append(c.elems, el)
	c.s.mu.Unlock()
	return el
}

func (c *container) Remove(el surface.Element) {
	c.s.mu.Lock()
	for i, e := range c.elems {
		if e == el {
			c.elems = append(c.elems[:i], c.elems[i+1:]...)
			break
		}
	}
	c.s.mu.Unlock()
	c.s.repaint()
}

func (c *container) Count() int {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	return len(c.elems)
}

func (c *container) Detach() {
	c.s.mu.Lock()
	c.detached = true
	if c.s.containers[c.pos] == c {
		delete(c.s.containers, c.pos)
	}
	c.s.mu.Unlock()
	c.s.repaint()
}

// element is one toast row. A terminal has no opacity, so hidden means
// not rendered; the offset displacement is not representable and only
// the visibility half of the transition survives.
type element struct {
	c       *container
	n       *notice.Notice
	visible bool
	settled func()
}

func (e *element) Reveal() {
	e.c.s.mu.Lock()
	e.visible = true
	e.c.s.mu.Unlock()
	e.c.s.repaint()
}

func (e *element) Conceal() {
	e.c.s.mu.Lock()
	e.visible = false
	transition := e.c.s.opts.Transition
	e.c.s.mu.Unlock()
	e.c.s.repaint()

	// The terminal has no transition-completion signal; a timer the
	// length of the transition stands in for it.
	time.AfterFunc(transition, func() {
		e.c.s.mu.Lock()
		fn := e.settled
		e.settled = nil
		e.c.s.mu.Unlock()
		if fn != nil {
			fn()
		}
	})
}

func (e *element) OnSettled(fn func()) {
	e.c.s.mu.Lock()
	e.settled = fn
	e.c.s.mu.Unlock()
}

func (e *element) view(maxWidth int) string {
	st := e.n.Severity.Style()
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(st.Accent)).
		Padding(0, 1).
		MaxWidth(maxWidth)
	return style.Render(st.Glyph + " " + e.n.Message)
}
