package engine

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/muurk/macropad/internal/keys"
	"github.com/muurk/macropad/internal/logging"
)

// Injector is the OS key-injection capability the engine drives.
type Injector interface {
	KeyDown(ctx context.Context, code keys.Code) error
	KeyUp(ctx context.Context, code keys.Code) error
	TypeText(ctx context.Context, text string) error
}

// Sleeper waits between steps. Sleep returns ctx.Err() if ctx ends first.
type Sleeper interface {
	Sleep(ctx context.Context, d time.Duration) error
}

// SleeperFunc adapts a function to Sleeper.
type SleeperFunc func(ctx context.Context, d time.Duration) error

// Sleep calls f(ctx, d).
func (f SleeperFunc) Sleep(ctx context.Context, d time.Duration) error { return f(ctx, d) }

// RealSleeper waits on a timer.
var RealSleeper Sleeper = SleeperFunc(func(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
})

// Player runs step sequences against an Injector.
type Player struct {
	Injector Injector
	Sleeper  Sleeper
}

// Play runs steps in order. Injection errors are logged and do not stop the
// sequence, so keys pressed earlier are still released.
//
// When ctx ends the remaining steps are skipped and every key still held is
// released in the order it was pressed; Play then returns ctx.Err().
func (p *Player) Play(ctx context.Context, steps []Step) error {
	sleeper := p.Sleeper
	if sleeper == nil {
		sleeper = RealSleeper
	}

	var held []keys.Code
	for _, s := range steps {
		if ctx.Err() != nil {
			p.release(ctx, held)
			return ctx.Err()
		}

		switch s.Op {
		case OpKeyDown:
			logging.LogInjection("down", s.Key.String(), "")
			if err := p.Injector.KeyDown(ctx, s.Key); err != nil {
				logging.Warn("Key down failed", zap.Stringer("key", s.Key), zap.Error(err))
				continue
			}
			held = append(held, s.Key)
		case OpKeyUp:
			logging.LogInjection("up", s.Key.String(), "")
			if err := p.Injector.KeyUp(ctx, s.Key); err != nil {
				logging.Warn("Key up failed", zap.Stringer("key", s.Key), zap.Error(err))
			}
			held = without(held, s.Key)
		case OpText:
			logging.LogInjection("text", "", s.Text)
			if err := p.Injector.TypeText(ctx, s.Text); err != nil {
				logging.Warn("Text injection failed", zap.Int("length", len(s.Text)), zap.Error(err))
			}
		case OpWait:
			if err := sleeper.Sleep(ctx, s.Delay); err != nil {
				p.release(ctx, held)
				return err
			}
		}
	}
	return nil
}

// release lifts held keys on a context that is no longer cancelled.
func (p *Player) release(ctx context.Context, held []keys.Code) {
	if len(held) == 0 {
		return
	}
	ctx = context.WithoutCancel(ctx)
	for _, k := range held {
		logging.LogInjection("up", k.String(), "")
		if err := p.Injector.KeyUp(ctx, k); err != nil {
			logging.Warn("Key release failed", zap.Stringer("key", k), zap.Error(err))
		}
	}
	logging.Debug("Released held keys after cancellation", zap.Int("count", len(held)))
}

func without(held []keys.Code, k keys.Code) []keys.Code {
	for i, h := range held {
		if h == k {
			return append(held[:i], held[i+1:]...)
		}
	}
	return held
}
