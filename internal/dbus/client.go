package dbus

import (
	"fmt"

	"github.com/godbus/dbus/v5"
)

// Client calls a running daemon's control interface.
type Client struct {
	conn *dbus.Conn
	obj  dbus.BusObject
}

// NewClient connects to the session bus. Fails only on connection
// errors; a missing daemon surfaces on the first call.
func NewClient() (*Client, error) {
	conn, err := dbus.SessionBus()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to session bus: %w", err)
	}
	return &Client{
		conn: conn,
		obj:  conn.Object(BusName, Path),
	}, nil
}

// Notify asks the daemon to show a toast.
func (c *Client) Notify(severity, message, position string, durationMS uint32) error {
	call := c.obj.Call(Interface+".Notify", 0, severity, message, position, durationMS)
	if call.Err != nil {
		return fmt.Errorf("notify failed: %w", call.Err)
	}
	return nil
}

// SetConfig updates the daemon defaults.
func (c *Client) SetConfig(position string, durationMS uint32) error {
	call := c.obj.Call(Interface+".SetConfig", 0, position, durationMS)
	if call.Err != nil {
		return fmt.Errorf("set config failed: %w", call.Err)
	}
	return nil
}

// Status queries daemon state.
func (c *Client) Status() (Status, error) {
	var st Status
	call := c.obj.Call(Interface+".Status", 0)
	if call.Err != nil {
		return st, fmt.Errorf("status failed: %w", call.Err)
	}
	if err := call.Store(&st.Active, &st.Containers, &st.Since); err != nil {
		return st, fmt.Errorf("failed to decode status reply: %w", err)
	}
	return st, nil
}
