package engine

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/muurk/macropad/internal/layout"
	"github.com/muurk/macropad/internal/logging"
)

// DefaultQueueSize is the dispatcher buffer used when size <= 0.
const DefaultQueueSize = 32

// ErrQueueFull is returned by Submit when the dispatcher is saturated.
var ErrQueueFull = errors.New("activation queue full")

// Executor runs one activation. *Engine implements it.
type Executor interface {
	Execute(ctx context.Context, b layout.Button)
}

// Dispatcher feeds activations to an Executor from a single background
// worker, in arrival order, without blocking the submitter.
type Dispatcher struct {
	exec  Executor
	queue chan layout.Button
}

// NewDispatcher creates a dispatcher with a queue of size activations.
func NewDispatcher(exec Executor, size int) *Dispatcher {
	if size <= 0 {
		size = DefaultQueueSize
	}
	return &Dispatcher{
		exec:  exec,
		queue: make(chan layout.Button, size),
	}
}

// Submit enqueues b. It never blocks.
func (d *Dispatcher) Submit(b layout.Button) error {
	select {
	case d.queue <- b:
		return nil
	default:
		logging.Warn("Dropping activation, queue full",
			zap.String("button", b.Text),
			zap.Int("capacity", cap(d.queue)),
		)
		return ErrQueueFull
	}
}

// Pending returns the number of queued activations.
func (d *Dispatcher) Pending() int {
	return len(d.queue)
}

// Run executes queued activations until ctx ends. Activations still queued
// at that point are discarded. Cancelling ctx also interrupts the activation
// in progress.
func (d *Dispatcher) Run(ctx context.Context) error {
	logging.Debug("Dispatcher started", zap.Int("capacity", cap(d.queue)))
	defer logging.Debug("Dispatcher stopped")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case b := <-d.queue:
			d.exec.Execute(ctx, b)
		}
	}
}
