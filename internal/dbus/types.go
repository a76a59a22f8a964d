// Package dbus exposes the toastd control interface on the session
// bus. toastctl talks to a running daemon through it.
package dbus

import (
	"fmt"

	"github.com/toastd/toastd/internal/notice"
)

const (
	// BusName is the bus name claimed by the daemon.
	BusName = "org.toastd.Toastd"
	// Path is the control object path.
	Path = "/org/toastd/Toastd"
	// Interface is the control interface name.
	Interface = "org.toastd.Toastd1"
)

// Request is a notification request received over the bus.
type Request struct {
	Severity notice.Severity
	Message  string
	Position string // Empty means the daemon default
	Duration uint32 // Milliseconds; zero means the daemon default
}

// Status describes a running daemon.
type Status struct {
	Active     uint32 // Toasts currently on screen
	Containers uint32 // Occupied positions
	Since      int64  // Daemon start time, unix seconds
}

// ParseSeverity maps a wire severity name to its value.
func ParseSeverity(name string) (notice.Severity, error) {
	for sev, n := range notice.SeverityNames {
		if n == name {
			return sev, nil
		}
	}
	return 0, fmt.Errorf("unknown severity %q", name)
}
