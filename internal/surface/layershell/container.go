package layershell

import (
	"github.com/diamondburned/gotk4-adwaita/pkg/adw"
	"github.com/diamondburned/gotk4/pkg/glib/v2"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/toastd/toastd/internal/config"
	"github.com/toastd/toastd/internal/notice"
	"github.com/toastd/toastd/internal/surface"
)

// container is one layer-shell window holding a vertical stack of
// toast rows. All methods run on the GTK main loop.
type container struct {
	surface *Surface
	win     *gtk.Window
	box     *gtk.Box
	pos     config.Position
	count   int
	closed  bool
}

func (c *container) Insert(n *notice.Notice) surface.Element {
	row := gtk.NewBox(gtk.OrientationHorizontal, 8)
	row.AddCSSClass("toast")
	row.AddCSSClass("toast-" + n.Severity.String())

	// The hidden state carries the initial offset; the CSS transition
	// animates both out of it on reveal and back into it on conceal.
	offsetClass := offsetClassFor(n.Offset)
	if offsetClass != "" {
		row.AddCSSClass(offsetClass)
	}
	row.AddCSSClass("toast-hidden")

	st := n.Severity.Style()
	icon := gtk.NewImage()
	icon.AddCSSClass("toast-icon")
	icon.SetPixelSize(24)
	icon.SetFromIconName(st.Icon)
	row.Append(icon)

	label := gtk.NewLabel(n.Message)
	label.AddCSSClass("toast-message")
	label.SetXAlign(0)
	label.SetWrap(true)
	label.SetWrapMode(2) // PANGO_WRAP_WORD_CHAR
	label.SetMaxWidthChars(40)
	label.SetHExpand(true)
	row.Append(label)

	c.box.Append(row)
	c.count++

	return &element{
		container: c,
		row:       row,
	}
}

func (c *container) Remove(el surface.Element) {
	e, ok := el.(*element)
	if !ok || e.removed {
		return
	}
	e.removed = true
	if !c.closed {
		c.box.Remove(e.row)
	}
	c.count--
}

func (c *container) Count() int { return c.count }

func (c *container) Detach() {
	if c.closed {
		return
	}
	c.closed = true
	c.win.Close()
}

// offsetClassFor maps an initial offset to its CSS class. GTK CSS has
// no transform, so horizontal slides use margin displacement and the
// center pop degrades to a fade.
func offsetClassFor(o notice.Offset) string {
	switch {
	case o.X < 0:
		return "toast-from-left"
	case o.X > 0:
		return "toast-from-right"
	case o.Scale < 1:
		return "toast-pop"
	default:
		return ""
	}
}

// element is one toast row. Reveal and Conceal toggle the hidden CSS
// class; the stylesheet's transition does the animating.
type element struct {
	container *container
	row       *gtk.Box
	settled   func()
	removed   bool
}

func (e *element) Reveal() {
	e.row.RemoveCSSClass("toast-hidden")
}

func (e *element) Conceal() {
	e.row.AddCSSClass("toast-hidden")

	// GTK delivers no transition-completion event for CSS class
	// changes; a main-loop timer the length of the transition stands
	// in for it. If the timer never fires the toast never disposes,
	// which is accepted rather than handled.
	transition := e.container.surface.cfg.Display.Transition.Duration()
	glib.TimeoutAdd(uint(transition.Milliseconds()), func() bool {
		if e.settled != nil {
			fn := e.settled
			e.settled = nil
			fn()
		}
		return false
	})
}

func (e *element) OnSettled(fn func()) {
	e.settled = fn
}

// colorSchemeClass checks libadwaita for the system dark mode
// preference.
func colorSchemeClass() string {
	styleManager := adw.StyleManagerGetDefault()
	if styleManager.Dark() {
		return "dark"
	}
	return "light"
}
