// Package inject provides key-injection backends for the engine.
//
// Two backends exist: "xdotool" drives X11 through the xdotool binary and
// "dryrun" records and prints the calls without touching the desktop.
package inject

import (
	"context"
	"fmt"
	"io"

	"github.com/muurk/macropad/internal/keys"
)

// Backend names accepted by Open.
const (
	BackendXdotool = "xdotool"
	BackendDryRun  = "dryrun"
)

// Backends lists the accepted names.
var Backends = []string{BackendXdotool, BackendDryRun}

// Backend is a key-injection implementation.
type Backend interface {
	Name() string
	KeyDown(ctx context.Context, code keys.Code) error
	KeyUp(ctx context.Context, code keys.Code) error
	TypeText(ctx context.Context, text string) error
}

// Open returns the named backend. The dry-run backend echoes to out.
func Open(name string, out io.Writer) (Backend, error) {
	switch name {
	case BackendXdotool, "":
		return NewXdotool(DefaultConfig())
	case BackendDryRun:
		return NewRecorder(out), nil
	default:
		return nil, fmt.Errorf("unknown injection backend %q (want one of %v)", name, Backends)
	}
}
