// Package osk publishes keyboard visibility on the session bus under
// the sm.puri.OSK0 name, the convention desktop shells use to toggle
// on-screen keyboards.
package osk

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/godbus/dbus/v5"
	"github.com/godbus/dbus/v5/prop"
)

// Bus identity shared with desktop shells.
const (
	BusName   = "sm.puri.OSK0"
	Path      = dbus.ObjectPath("/sm/puri/OSK0")
	Interface = "sm.puri.OSK0"
)

// ErrNameTaken means another on-screen keyboard already owns the bus
// name.
var ErrNameTaken = errors.New("bus name already owned")

// Switch is the visibility surface the bus drives.
type Switch interface {
	// SetVisible shows or hides the key grid.
	SetVisible(show bool)

	// Visible reports whether the key grid is shown.
	Visible() bool
}

// Service claims the OSK0 bus name and serves its interface: a
// SetVisible method and a read-only Visible property that signals
// changes.
type Service struct {
	ctrl Switch
	log  *slog.Logger

	conn  *dbus.Conn
	props *prop.Properties
}

// New creates the service over a visibility switch. Nothing touches
// the bus until Start.
func New(ctrl Switch, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{ctrl: ctrl, log: log}
}

// Start connects to the session bus, claims the name, and exports the
// interface.
func (s *Service) Start() error {
	conn, err := dbus.SessionBus()
	if err != nil {
		return fmt.Errorf("connect to session bus: %w", err)
	}

	reply, err := conn.RequestName(BusName, dbus.NameFlagDoNotQueue)
	if err != nil {
		conn.Close()
		return fmt.Errorf("request bus name: %w", err)
	}
	if reply != dbus.RequestNameReplyPrimaryOwner {
		conn.Close()
		return fmt.Errorf("%s: %w", BusName, ErrNameTaken)
	}

	props, err := prop.Export(conn, Path, prop.Map{
		Interface: {
			"Visible": {
				Value:    s.ctrl.Visible(),
				Writable: false,
				Emit:     prop.EmitTrue,
			},
		},
	})
	if err != nil {
		conn.Close()
		return fmt.Errorf("export properties: %w", err)
	}
	if err := conn.Export(osk0{svc: s}, Path, Interface); err != nil {
		conn.Close()
		return fmt.Errorf("export interface: %w", err)
	}

	s.conn = conn
	s.props = props
	s.log.Info("visibility service on session bus", "name", BusName)
	return nil
}

// Stop releases the bus name and the connection.
func (s *Service) Stop() error {
	if s.conn == nil {
		return nil
	}
	if _, err := s.conn.ReleaseName(BusName); err != nil {
		s.log.Debug("release bus name failed", "error", err)
	}
	err := s.conn.Close()
	s.conn = nil
	s.props = nil
	return err
}

// Publish refreshes the Visible property after a local change so
// shells tracking it stay in sync. A no-op before Start.
func (s *Service) Publish(visible bool) {
	if s.props == nil {
		return
	}
	s.props.SetMust(Interface, "Visible", visible)
}

// osk0 carries only the bus-callable method; exporting the Service
// itself would put its lifecycle methods on the bus.
type osk0 struct {
	svc *Service
}

// SetVisible shows or hides the keyboard.
func (o osk0) SetVisible(visible bool) *dbus.Error {
	o.svc.log.Debug("bus visibility request", "visible", visible)
	o.svc.ctrl.SetVisible(visible)
	return nil
}
