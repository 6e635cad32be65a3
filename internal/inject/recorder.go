package inject

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/muurk/macropad/internal/keys"
)

// Event is one call received by a Recorder.
type Event struct {
	Op   string // "keydown", "keyup" or "type"
	Key  keys.Code
	Text string
}

// String renders the event the way xdotool would be invoked.
func (e Event) String() string {
	if e.Op == "type" {
		return fmt.Sprintf("type %q", e.Text)
	}
	return e.Op + " " + e.Key.String()
}

// Recorder is the dry-run backend: it injects nothing, keeps every call and
// optionally echoes it to a writer.
type Recorder struct {
	mu     sync.Mutex
	out    io.Writer
	events []Event
}

// NewRecorder creates a recorder. out may be nil.
func NewRecorder(out io.Writer) *Recorder {
	return &Recorder{out: out}
}

// Name returns "dryrun".
func (r *Recorder) Name() string { return BackendDryRun }

// KeyDown records a key press.
func (r *Recorder) KeyDown(_ context.Context, code keys.Code) error {
	r.record(Event{Op: "keydown", Key: code})
	return nil
}

// KeyUp records a key release.
func (r *Recorder) KeyUp(_ context.Context, code keys.Code) error {
	r.record(Event{Op: "keyup", Key: code})
	return nil
}

// TypeText records typed text.
func (r *Recorder) TypeText(_ context.Context, text string) error {
	r.record(Event{Op: "type", Text: text})
	return nil
}

func (r *Recorder) record(e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	if r.out != nil {
		fmt.Fprintln(r.out, e.String())
	}
}

// Events returns a copy of the recorded calls.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// Reset clears the recorded calls.
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.events = nil
	r.mu.Unlock()
}
