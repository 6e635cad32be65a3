package engine

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/muurk/macropad/internal/action"
	"github.com/muurk/macropad/internal/event"
	"github.com/muurk/macropad/internal/layout"
	"github.com/muurk/macropad/internal/logging"
)

// Launcher starts a process for a RunCommand value.
type Launcher interface {
	Launch(ctx context.Context, command string) error
}

// Config holds the engine's collaborators. Injector is required; a nil
// Sleeper waits on real timers and a nil Launcher disables process launch.
type Config struct {
	Injector Injector
	Sleeper  Sleeper
	Launcher Launcher
}

// Engine executes button actions one at a time.
type Engine struct {
	mu       sync.Mutex
	player   Player
	launcher Launcher
	commands event.Bus[string]
}

// New creates an engine.
func New(cfg Config) *Engine {
	return &Engine{
		player:   Player{Injector: cfg.Injector, Sleeper: cfg.Sleeper},
		launcher: cfg.Launcher,
	}
}

// OnCommand registers fn for command notifications ("EXIT", "NextPage",
// "Navigate:<page>", any RunCommand value). fn runs on the executing
// goroutine while the engine is busy, so it must not call Execute.
func (e *Engine) OnCommand(fn func(command string)) (unsubscribe func()) {
	return e.commands.Subscribe(fn)
}

// Execute performs b's action. It returns when the action is complete or
// ctx ends; nothing is reported back to the caller. Concurrent calls are
// serialized so injected sequences never interleave.
func (e *Engine) Execute(ctx context.Context, b layout.Button) {
	a := action.Parse(b)

	e.mu.Lock()
	defer e.mu.Unlock()

	logging.LogAction(string(b.Action), b.Value, b.Text)

	switch a.Kind {
	case action.KindNone:
		logging.Debug("Action ignored",
			zap.String("button", b.Text),
			zap.String("reason", a.Reason),
		)

	case action.KindChord, action.KindText, action.KindTextChord:
		if err := e.player.Play(ctx, Steps(a)); err != nil {
			logging.Info("Action interrupted",
				zap.String("button", b.Text),
				zap.Error(err),
			)
		}

	case action.KindNavigate:
		e.emit(a.Command)

	case action.KindCommand:
		e.emit(a.Command)
		if a.Launch {
			e.launch(ctx, a.Command)
		}
	}
}

func (e *Engine) emit(command string) {
	logging.LogCommand(command)
	e.commands.Publish(command)
}

// launch never fails the action; the command has already been emitted.
func (e *Engine) launch(ctx context.Context, command string) {
	if e.launcher == nil {
		logging.Debug("Process launch disabled", zap.String("command", command))
		return
	}
	start := time.Now()
	err := e.launcher.Launch(ctx, command)
	logging.LogLaunch(command, err, time.Since(start))
}
