package remote

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/muurk/macropad/internal/action"
	"github.com/muurk/macropad/internal/layout"
	"github.com/muurk/macropad/internal/logging"
	"github.com/muurk/macropad/internal/router"
)

// DefaultPath is the WebSocket endpoint
const DefaultPath = "/ws"

// Request errors reported to the client
var (
	errMalformed     = errors.New("malformed request")
	errEmptyCommand  = errors.New("command value is empty")
	errNoActivePage  = errors.New("layout has no pages")
	errUnknownButton = errors.New("no such button")
	errCommandDenied = errors.New("command not allowed remotely")
)

// Submitter queues a button activation. *engine.Dispatcher implements it.
type Submitter interface {
	Submit(b layout.Button) error
}

// Config holds the server configuration. A nil CheckOrigin accepts any
// origin.
type Config struct {
	Addr            string        // Listen address, e.g. ":8765"
	Path            string        // WebSocket path
	ShutdownTimeout time.Duration // Grace period for open connections
	CheckOrigin     func(r *http.Request) bool
}

// DefaultConfig returns a config listening on all interfaces.
func DefaultConfig() Config {
	return Config{
		Addr:            ":8765",
		Path:            DefaultPath,
		ShutdownTimeout: 5 * time.Second,
	}
}

// Server exposes the router and dispatcher over WebSocket.
type Server struct {
	config   Config
	router   *router.Router
	submit   Submitter
	upgrader websocket.Upgrader
	hub      *hub
	wg       sync.WaitGroup

	unsubscribe []func()
	exitOnce    sync.Once
	exited      chan struct{}

	mu       sync.Mutex
	listener net.Listener
}

// New creates a server. It follows r from this point on; call Close when
// done with a server that is never started.
func New(config Config, r *router.Router, submit Submitter) *Server {
	if config.Path == "" {
		config.Path = DefaultPath
	}
	if config.ShutdownTimeout <= 0 {
		config.ShutdownTimeout = 5 * time.Second
	}
	check := config.CheckOrigin
	if check == nil {
		check = func(*http.Request) bool { return true }
	}

	s := &Server{
		config: config,
		router: r,
		submit: submit,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     check,
		},
		hub:    newHub(),
		exited: make(chan struct{}),
	}

	s.unsubscribe = append(s.unsubscribe,
		r.OnPageChange(func(snap *router.Snapshot) {
			s.hub.broadcast(PageReply(snap))
		}),
		r.OnExit(func() {
			s.hub.broadcast(Reply{Type: TypeExit, Index: -1})
			s.exitOnce.Do(func() { close(s.exited) })
		}),
	)
	return s
}

// Exited is closed once EXIT has been handled.
func (s *Server) Exited() <-chan struct{} {
	return s.exited
}

// Handler returns the HTTP handler serving the WebSocket endpoint.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(s.config.Path, s.handleWebSocket)
	return mux
}

// Connections returns the number of connected remotes.
func (s *Server) Connections() int {
	return s.hub.len()
}

// Addr returns the bound listen address once ListenAndServe is running.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// ListenAndServe serves until ctx ends or EXIT is handled, then shuts down
// gracefully. It returns nil on a clean shutdown.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.config.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.config.Addr, err)
	}
	s.mu.Lock()
	s.listener = ln
	s.mu.Unlock()

	httpServer := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	logging.Info("Remote server listening",
		zap.String("addr", ln.Addr().String()),
		zap.String("path", s.config.Path),
	)

	errChan := make(chan error, 1)
	go func() {
		errChan <- httpServer.Serve(ln)
	}()

	select {
	case <-ctx.Done():
		logging.Info("Shutdown requested, stopping remote server...")
	case <-s.exited:
		logging.Info("Exit command received, stopping remote server...")
	case err := <-errChan:
		s.Close()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("remote server failed: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.config.ShutdownTimeout)
	defer cancel()
	return s.Shutdown(shutdownCtx, httpServer)
}

// Shutdown stops accepting connections, closes the open ones and waits for
// their goroutines or ctx.
func (s *Server) Shutdown(ctx context.Context, httpServer *http.Server) error {
	if err := httpServer.Shutdown(ctx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		logging.Error("Error closing listener", zap.Error(err))
	}
	s.Close()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		logging.Info("All remote connections closed gracefully")
	case <-ctx.Done():
		logging.Warn("Shutdown timeout, forcing close")
	}
	logging.Sync()
	return nil
}

// Close detaches the server from the router and closes every connection.
func (s *Server) Close() {
	for _, u := range s.unsubscribe {
		u()
	}
	s.hub.closeAll()
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the HTTP error.
		logging.Debug("WebSocket upgrade failed",
			zap.String("remote_addr", r.RemoteAddr),
			zap.Error(err),
		)
		return
	}

	c := newConn(ws)
	s.hub.add(c)
	logging.LogRemote(c.id, c.addr, "connected")
	c.enqueue(PageReply(s.router.Current()))

	s.wg.Add(2)
	go func() {
		defer s.wg.Done()
		c.writePump()
	}()
	go func() {
		defer s.wg.Done()
		defer func() {
			s.hub.remove(c)
			logging.LogRemote(c.id, c.addr, "disconnected")
		}()
		c.readPump(s.handle)
	}()
}

// handle answers one request. Replies for presses and commands arrive as
// page broadcasts once the dispatcher has executed them.
func (s *Server) handle(c *conn, req Request) {
	logging.Debug("Remote request",
		zap.String("conn_id", c.id),
		zap.String("type", req.Type),
	)

	switch req.Type {
	case TypeState:
		c.enqueue(PageReply(s.router.Current()))

	case TypePress:
		b, err := s.resolve(req)
		if err != nil {
			c.enqueue(ErrorReply(err))
			return
		}
		if err := s.submit.Submit(b); err != nil {
			c.enqueue(ErrorReply(err))
		}

	case TypeCommand:
		b, err := commandButton(req.Value)
		if err != nil {
			c.enqueue(ErrorReply(err))
			return
		}
		if err := s.submit.Submit(b); err != nil {
			c.enqueue(ErrorReply(err))
		}

	default:
		c.enqueue(ErrorReply(fmt.Errorf("unknown request type %q", req.Type)))
	}
}

// commandButton turns a remote command into a button. Only router commands
// are accepted, so a remote can never launch a process.
func commandButton(value string) (layout.Button, error) {
	value = strings.TrimSpace(value)
	switch {
	case value == "":
		return layout.Button{}, errEmptyCommand
	case strings.HasPrefix(value, action.NavigatePrefix):
		return layout.Button{Text: "remote", Action: layout.ActionNavigate, Value: strings.TrimPrefix(value, action.NavigatePrefix)}, nil
	case action.IsExit(value), value == action.CommandNextPage, value == action.CommandPreviousPage:
		return layout.Button{Text: "remote", Action: layout.ActionRunCommand, Value: value}, nil
	default:
		return layout.Button{}, fmt.Errorf("%w: %q", errCommandDenied, value)
	}
}

// resolve finds the button a press refers to. A press naming a page other
// than the active one is rejected.
func (s *Server) resolve(req Request) (layout.Button, error) {
	snap := s.router.Current()
	if snap.Page == nil {
		return layout.Button{}, errNoActivePage
	}
	if req.Page != nil && *req.Page != snap.Index {
		return layout.Button{}, fmt.Errorf("page %d is not active (showing %d)", *req.Page, snap.Index)
	}
	if req.Button < 0 || req.Button >= len(snap.Page.Buttons) {
		return layout.Button{}, fmt.Errorf("%w: %d on page %q", errUnknownButton, req.Button, snap.Page.Name)
	}
	return snap.Page.Buttons[req.Button], nil
}
