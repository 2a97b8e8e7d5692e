// Package ipc exposes the daemon's control surface on a unix socket.
//
// The protocol is one JSON object per line in each direction. Requests
// carry an "op" field — show, hide, toggle, status, or layer — and a
// response is written for every request: {"ok":true,...} on success,
// {"ok":false,"error":"..."} otherwise.
package ipc

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/dshills/glidekbd/internal/keyboard"
	"github.com/dshills/glidekbd/internal/layout"
)

// Operations understood by the control socket.
const (
	OpShow   = "show"
	OpHide   = "hide"
	OpToggle = "toggle"
	OpStatus = "status"
	OpLayer  = "layer"
)

// Controller is the visibility surface the control socket drives.
type Controller interface {
	// SetVisible shows or hides the key grid.
	SetVisible(show bool)

	// Toggle flips visibility and returns the state it switched to.
	Toggle() bool

	// Visible reports whether the key grid is shown.
	Visible() bool

	// Redraw schedules a repaint after out-of-band state changes.
	Redraw()
}

// Config configures the control server.
type Config struct {
	// SocketPath is where the unix socket is created. The parent
	// directory is created if missing.
	SocketPath string

	// Logger receives connection traces.
	Logger *slog.Logger
}

// Server accepts control connections and applies their commands to
// the keyboard.
type Server struct {
	path string
	ctrl Controller
	keys *keyboard.State
	log  *slog.Logger

	mu       sync.Mutex
	listener net.Listener
	conns    map[string]net.Conn

	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	running atomic.Bool
}

// NewServer creates a control server over the keyboard state and the
// UI's visibility controller.
func NewServer(cfg Config, ctrl Controller, keys *keyboard.State) *Server {
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{
		path:   cfg.SocketPath,
		ctrl:   ctrl,
		keys:   keys,
		log:    log,
		conns:  make(map[string]net.Conn),
		ctx:    ctx,
		cancel: cancel,
	}
}

// Start creates the socket and begins accepting connections.
func (s *Server) Start() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create socket directory: %w", err)
	}

	// A crashed daemon leaves the socket file behind.
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove stale socket: %w", err)
	}

	listener, err := net.Listen("unix", s.path)
	if err != nil {
		return fmt.Errorf("listen on socket: %w", err)
	}
	if err := os.Chmod(s.path, 0o600); err != nil {
		listener.Close()
		return fmt.Errorf("set socket permissions: %w", err)
	}

	s.mu.Lock()
	s.listener = listener
	s.mu.Unlock()
	s.running.Store(true)

	s.wg.Add(1)
	go s.acceptLoop(listener)

	s.log.Info("control socket listening", "path", s.path)
	return nil
}

// Stop closes the listener and every open connection, waits for the
// connection goroutines, and removes the socket file.
func (s *Server) Stop() error {
	if !s.running.CompareAndSwap(true, false) {
		return nil
	}
	s.cancel()

	s.mu.Lock()
	if s.listener != nil {
		s.listener.Close()
	}
	for _, conn := range s.conns {
		conn.Close()
	}
	s.mu.Unlock()

	s.wg.Wait()
	os.Remove(s.path)
	return nil
}

// SocketPath returns the socket path the server listens on.
func (s *Server) SocketPath() string {
	return s.path
}

func (s *Server) acceptLoop(listener net.Listener) {
	defer s.wg.Done()

	for {
		conn, err := listener.Accept()
		if err != nil {
			if s.ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return
			}
			s.log.Warn("accept failed", "error", err)
			continue
		}

		id := uuid.New().String()
		s.mu.Lock()
		s.conns[id] = conn
		s.mu.Unlock()

		s.wg.Add(1)
		go s.serveConn(id, conn)
	}
}

// serveConn answers requests line by line until the client hangs up.
func (s *Server) serveConn(id string, conn net.Conn) {
	defer s.wg.Done()
	defer func() {
		s.mu.Lock()
		delete(s.conns, id)
		s.mu.Unlock()
		conn.Close()
	}()

	s.log.Debug("control client connected", "id", id)

	scanner := bufio.NewScanner(conn)
	for scanner.Scan() {
		resp := s.handle(scanner.Bytes())
		if _, err := conn.Write(append(resp, '\n')); err != nil {
			s.log.Debug("control write failed", "id", id, "error", err)
			return
		}
	}
	if err := scanner.Err(); err != nil && s.ctx.Err() == nil && !errors.Is(err, net.ErrClosed) {
		s.log.Debug("control read failed", "id", id, "error", err)
	}
}

// handle applies one request and builds its response.
func (s *Server) handle(line []byte) []byte {
	op := gjson.GetBytes(line, "op").String()
	s.log.Debug("control request", "op", op)

	switch op {
	case OpShow:
		s.ctrl.SetVisible(true)
		return okVisible(true)
	case OpHide:
		s.ctrl.SetVisible(false)
		return okVisible(false)
	case OpToggle:
		return okVisible(s.ctrl.Toggle())
	case OpStatus:
		return s.status()
	case OpLayer:
		if err := s.switchLayer(line); err != nil {
			return errorResponse(err)
		}
		return okResponse()
	default:
		return errorResponse(fmt.Errorf("unknown op %q", op))
	}
}

// switchLayer validates and applies a layer request. Unlike layout
// data, socket input is unvalidated, so the index is range-checked
// here.
func (s *Server) switchLayer(line []byte) error {
	name := gjson.GetBytes(line, "side").String()
	side, ok := layout.ParseSide(name)
	if !ok {
		return fmt.Errorf("unknown side %q", name)
	}

	index := int(gjson.GetBytes(line, "index").Int())
	if index < 0 || index >= len(s.keys.Layout().Layers(side)) {
		return fmt.Errorf("layer %d out of range for %s side", index, side)
	}

	s.keys.SwitchLayer(side, index)
	s.ctrl.Redraw()
	return nil
}

func (s *Server) status() []byte {
	left, right := s.keys.ActiveLayers()

	out := okResponse()
	out, _ = sjson.SetBytes(out, "visible", s.ctrl.Visible())
	out, _ = sjson.SetBytes(out, "layers.left", left)
	out, _ = sjson.SetBytes(out, "layers.right", right)
	out, _ = sjson.SetBytes(out, "modifiers", s.keys.Modifiers())
	out, _ = sjson.SetBytes(out, "locks", s.keys.Locks())
	return out
}

func okResponse() []byte {
	return []byte(`{"ok":true}`)
}

func okVisible(v bool) []byte {
	out, _ := sjson.SetBytes(okResponse(), "visible", v)
	return out
}

func errorResponse(err error) []byte {
	out, _ := sjson.SetBytes([]byte(`{"ok":false}`), "error", err.Error())
	return out
}
