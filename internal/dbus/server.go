package dbus

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/godbus/dbus/v5/introspect"
)

// NotifyHandler is called for each notification request. It runs on
// the bus connection's goroutine; implementations hop to the render
// loop themselves.
type NotifyHandler func(req Request)

// ConfigHandler is called when a client updates the daemon defaults.
type ConfigHandler func(position string, durationMS uint32)

// StatusHandler reports the daemon state for Status calls.
type StatusHandler func() Status

// Server exports the control interface and claims the bus name.
type Server struct {
	conn   *dbus.Conn
	logger *slog.Logger

	notifyHandler NotifyHandler
	configHandler ConfigHandler
	statusHandler StatusHandler

	mu      sync.Mutex
	running bool
	started time.Time
}

// NewServer creates an unstarted server.
func NewServer(logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{logger: logger}
}

// SetNotifyHandler sets the handler for notification requests.
func (s *Server) SetNotifyHandler(handler NotifyHandler) {
	s.notifyHandler = handler
}

// SetConfigHandler sets the handler for default updates.
func (s *Server) SetConfigHandler(handler ConfigHandler) {
	s.configHandler = handler
}

// SetStatusHandler sets the handler backing Status calls.
func (s *Server) SetStatusHandler(handler StatusHandler) {
	s.statusHandler = handler
}

// Start connects to the session bus, exports the control object and
// claims the bus name.
func (s *Server) Start() error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return fmt.Errorf("server already running")
	}
	s.mu.Unlock()

	conn, err := dbus.SessionBus()
	if err != nil {
		return fmt.Errorf("failed to connect to session bus: %w", err)
	}
	s.conn = conn

	if err := conn.Export(s, Path, Interface); err != nil {
		return fmt.Errorf("failed to export object: %w", err)
	}

	node := &introspect.Node{
		Name: Path,
		Interfaces: []introspect.Interface{
			introspect.IntrospectData,
			{
				Name:    Interface,
				Methods: controlMethods(),
			},
		},
	}
	if err := conn.Export(introspect.NewIntrospectable(node), Path,
		"org.freedesktop.DBus.Introspectable"); err != nil {
		return fmt.Errorf("failed to export introspectable: %w", err)
	}

	reply, err := conn.RequestName(BusName, dbus.NameFlagDoNotQueue)
	if err != nil {
		return fmt.Errorf("failed to request bus name: %w", err)
	}
	if reply != dbus.RequestNameReplyPrimaryOwner {
		return fmt.Errorf("bus name %s already taken, is another toastd running?", BusName)
	}

	s.mu.Lock()
	s.running = true
	s.started = time.Now()
	s.mu.Unlock()

	s.logger.Info("control interface started", "interface", Interface, "path", Path)
	return nil
}

// Stop releases the bus name. The shared session connection stays
// open.
func (s *Server) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return nil
	}
	s.running = false

	if s.conn != nil {
		if _, err := s.conn.ReleaseName(BusName); err != nil {
			s.logger.Warn("failed to release bus name", "error", err)
		}
	}

	s.logger.Info("control interface stopped")
	return nil
}

// Started returns the time the server claimed the bus name.
func (s *Server) Started() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.started
}

// Notify queues a toast.
// D-Bus method: Notify(sssu) -> nothing
func (s *Server) Notify(severity, message, position string, durationMS uint32) *dbus.Error {
	sev, err := ParseSeverity(severity)
	if err != nil {
		return dbus.MakeFailedError(err)
	}

	s.logger.Debug("Notify called", "severity", severity, "message", message, "position", position)

	if s.notifyHandler != nil {
		s.notifyHandler(Request{
			Severity: sev,
			Message:  message,
			Position: position,
			Duration: durationMS,
		})
	}
	return nil
}

// SetConfig updates the daemon defaults. Empty position and zero
// duration leave the respective default untouched.
// D-Bus method: SetConfig(su) -> nothing
func (s *Server) SetConfig(position string, durationMS uint32) *dbus.Error {
	s.logger.Debug("SetConfig called", "position", position, "duration_ms", durationMS)

	if s.configHandler != nil {
		s.configHandler(position, durationMS)
	}
	return nil
}

// Status reports daemon state.
// D-Bus method: Status() -> (uux)
func (s *Server) Status() (uint32, uint32, int64, *dbus.Error) {
	var st Status
	if s.statusHandler != nil {
		st = s.statusHandler()
	}
	st.Since = s.Started().Unix()
	return st.Active, st.Containers, st.Since, nil
}

func controlMethods() []introspect.Method {
	return []introspect.Method{
		{
			Name: "Notify",
			Args: []introspect.Arg{
				{Name: "severity", Type: "s", Direction: "in"},
				{Name: "message", Type: "s", Direction: "in"},
				{Name: "position", Type: "s", Direction: "in"},
				{Name: "duration_ms", Type: "u", Direction: "in"},
			},
		},
		{
			Name: "SetConfig",
			Args: []introspect.Arg{
				{Name: "position", Type: "s", Direction: "in"},
				{Name: "duration_ms", Type: "u", Direction: "in"},
			},
		},
		{
			Name: "Status",
			Args: []introspect.Arg{
				{Name: "active", Type: "u", Direction: "out"},
				{Name: "containers", Type: "u", Direction: "out"},
				{Name: "since", Type: "x", Direction: "out"},
			},
		},
	}
}
