// Package layershell renders toast containers as GTK4 layer-shell
// windows on Wayland compositors. Each container is an undecorated,
// pointer-transparent window anchored to its screen position; toasts
// are rows in a vertical box styled and transitioned via CSS.
package layershell

import (
	"log/slog"

	layershell "github.com/diamondburned/gotk4-layer-shell/pkg/gtk4layershell"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/toastd/toastd/internal/config"
	"github.com/toastd/toastd/internal/surface"
)

// Surface creates layer-shell container windows for a GTK application.
type Surface struct {
	app    *gtk.Application
	cfg    *config.Config
	logger *slog.Logger
}

// New creates a layer-shell surface. Must be called after the GTK
// application has activated.
func New(app *gtk.Application, cfg *config.Config, logger *slog.Logger) *Surface {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &Surface{app: app, cfg: cfg, logger: logger}
}

// CreateContainer allocates a layer-shell window anchored to the given
// position. An axis with a center anchor is left unanchored; the
// compositor centers the surface on that axis.
func (s *Surface) CreateContainer(pos config.Position) (surface.Container, error) {
	if !layershell.IsSupported() {
		return nil, &UnsupportedError{}
	}

	win := gtk.NewWindow()
	win.SetApplication(s.app)
	win.SetDecorated(false)
	win.SetResizable(false)
	win.SetDefaultSize(s.cfg.Display.Width, -1)

	// Never block pointer interaction with whatever is underneath.
	win.SetCanTarget(false)

	layershell.InitForWindow(win)
	layershell.SetLayer(win, layershell.LayerShellLayerTop)
	layershell.SetExclusiveZone(win, 0)
	layershell.SetKeyboardMode(win, layershell.LayerShellKeyboardModeNone)
	layershell.SetNamespace(win, "toastd")

	switch pos.Vertical() {
	case config.AnchorTop:
		layershell.SetAnchor(win, layershell.LayerShellEdgeTop, true)
		layershell.SetMargin(win, layershell.LayerShellEdgeTop, s.cfg.Display.OffsetY)
	case config.AnchorBottom:
		layershell.SetAnchor(win, layershell.LayerShellEdgeBottom, true)
		layershell.SetMargin(win, layershell.LayerShellEdgeBottom, s.cfg.Display.OffsetY)
	}

	switch pos.Horizontal() {
	case config.AnchorLeft:
		layershell.SetAnchor(win, layershell.LayerShellEdgeLeft, true)
		layershell.SetMargin(win, layershell.LayerShellEdgeLeft, s.cfg.Display.OffsetX)
	case config.AnchorRight:
		layershell.SetAnchor(win, layershell.LayerShellEdgeRight, true)
		layershell.SetMargin(win, layershell.LayerShellEdgeRight, s.cfg.Display.OffsetX)
	}

	box := gtk.NewBox(gtk.OrientationVertical, s.cfg.Display.Gap)
	box.AddCSSClass("toast-container")
	box.AddCSSClass(colorSchemeClass())
	win.SetChild(box)
	win.Present()

	s.logger.Debug("layer-shell container created", "position", pos)

	return &container{
		surface: s,
		win:     win,
		box:     box,
		pos:     pos,
	}, nil
}

// UnsupportedError reports a compositor without the layer-shell
// protocol.
type UnsupportedError struct{}

func (e *UnsupportedError) Error() string {
	return "compositor does not support the layer-shell protocol"
}
