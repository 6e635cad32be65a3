package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/muurk/macropad/internal/config"
	"github.com/muurk/macropad/internal/engine"
	"github.com/muurk/macropad/internal/inject"
	"github.com/muurk/macropad/internal/launch"
	"github.com/muurk/macropad/internal/layout"
	"github.com/muurk/macropad/internal/logging"
	"github.com/muurk/macropad/internal/router"
)

// logFileName is where `run` logs while the TUI owns the terminal.
const logFileName = "macropad.log"

// session is a loaded layout wired to an engine, a router and a
// dispatcher.
type session struct {
	Path       string // "" for the built-in default layout
	Backend    inject.Backend
	Router     *router.Router
	Engine     *engine.Engine
	Dispatcher *engine.Dispatcher

	unsubscribe func()
}

// loadPreferences returns the stored preferences. A broken config file is
// logged and replaced by the defaults; the runtime never refuses to start
// because of it.
func loadPreferences() (*config.Registry, *config.Preferences) {
	registry, err := config.LoadRegistry()
	if err != nil {
		logging.Warn("Ignoring unreadable configuration", zap.Error(err))
		registry = config.NewRegistry()
	}
	return registry, registry.Preferences
}

// setupLogging initializes the logger from --log-level, then
// MACROPAD_LOG_LEVEL, then preferences. With toFile set the output goes to
// the config directory so it does not corrupt the TUI.
func setupLogging(prefs *config.Preferences, toFile bool) error {
	level := logLevel
	if level == "" {
		level = os.Getenv(logging.LogLevelEnvVar)
	}
	if level == "" {
		level = prefs.LogLevel
	}
	if !toFile || level == "" {
		return logging.Initialize(level)
	}

	dir, err := config.GetConfigDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}
	return logging.InitializeTo(level, filepath.Join(dir, logFileName))
}

// resolveLayout picks the layout: --layout, then the preferred layout, then
// the auto-load search next to the working directory and the executable.
// Explicit paths must load; the search never fails.
func resolveLayout(prefs *config.Preferences) (*layout.Layout, string, error) {
	path := layoutPath
	if path == "" {
		path = prefs.LayoutPath
	}
	if path != "" {
		l, err := layout.Load(path)
		if err != nil {
			return nil, "", err
		}
		if l == nil {
			return nil, "", fmt.Errorf("layout file not found: %s", path)
		}
		return l, path, nil
	}

	l, found := layout.AutoLoad(searchDirs()...)
	return l, found, nil
}

func searchDirs() []string {
	var dirs []string
	if wd, err := os.Getwd(); err == nil {
		dirs = append(dirs, wd)
	}
	if exe, err := os.Executable(); err == nil {
		dirs = append(dirs, filepath.Dir(exe))
	}
	return dirs
}

// newSession wires l to the chosen backend. Dry-run output goes to out.
func newSession(l *layout.Layout, path string, prefs *config.Preferences, out io.Writer) (*session, error) {
	name := backend
	if name == "" {
		name = prefs.Backend
	}
	b, err := inject.Open(name, out)
	if err != nil {
		return nil, err
	}

	r := router.New(l)
	e := engine.New(engine.Config{
		Injector: b,
		Launcher: launch.New(),
	})

	return &session{
		Path:        path,
		Backend:     b,
		Router:      r,
		Engine:      e,
		Dispatcher:  engine.NewDispatcher(e, engine.DefaultQueueSize),
		unsubscribe: e.OnCommand(r.Handle),
	}, nil
}

// start runs the dispatcher until ctx ends.
func (s *session) start(ctx context.Context) {
	go func() {
		if err := s.Dispatcher.Run(ctx); err != nil && ctx.Err() == nil {
			logging.Error("Dispatcher stopped", zap.Error(err))
		}
	}()
}

func (s *session) close() {
	s.unsubscribe()
	logging.Sync()
}

// reload is the TUI loader: it reads the same source the runtime started
// from.
func (s *session) reload() func() (*layout.Layout, string, error) {
	return func() (*layout.Layout, string, error) {
		if s.Path == "" {
			l, found := layout.AutoLoad(searchDirs()...)
			if found == "" {
				return l, "built-in default", nil
			}
			return l, found, nil
		}
		l, err := layout.Load(s.Path)
		if err != nil {
			return nil, "", err
		}
		if l == nil {
			return nil, "", fmt.Errorf("layout file not found: %s", s.Path)
		}
		return l, s.Path, nil
	}
}

// remember records path as the most recent layout.
func remember(registry *config.Registry, path string) {
	if path == "" {
		return
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	registry.AddRecent(path)
	if err := registry.Save(); err != nil {
		logging.Warn("Failed to save recent layouts", zap.Error(err))
	}
}
