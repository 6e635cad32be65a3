// Package launch starts processes for RunCommand values.
//
// A value naming an executable file is started directly. Anything else is
// handed to the desktop's file association handler (xdg-open, open, or
// rundll32 on Windows), which covers documents, URLs and scripts without
// the execute bit. The launched process is not waited on by the caller; a
// goroutine reaps it.
package launch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"go.uber.org/zap"

	"github.com/muurk/macropad/internal/logging"
)

// ErrEmpty is returned for a blank command.
var ErrEmpty = errors.New("empty command")

// Launcher starts processes.
type Launcher struct {
	// Opener is the association handler and its leading arguments.
	Opener []string

	start func(cmd *exec.Cmd) error
}

// New returns a Launcher using the platform's association handler.
func New() *Launcher {
	return &Launcher{Opener: DefaultOpener(runtime.GOOS)}
}

// DefaultOpener returns the association handler for goos.
func DefaultOpener(goos string) []string {
	switch goos {
	case "windows":
		return []string{"rundll32", "url.dll,FileProtocolHandler"}
	case "darwin":
		return []string{"open"}
	default:
		return []string{"xdg-open"}
	}
}

// Launch starts command and returns once the process is running. ctx only
// bounds the start; the process outlives it.
func (l *Launcher) Launch(ctx context.Context, command string) error {
	command = strings.TrimSpace(command)
	if command == "" {
		return ErrEmpty
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	cmd, direct := l.command(command)
	start := l.start
	if start == nil {
		start = startAndReap
	}
	if err := start(cmd); err != nil {
		return fmt.Errorf("launch %q: %w", command, err)
	}

	logging.Debug("Process started",
		zap.String("command", command),
		zap.Bool("direct", direct),
		zap.Strings("argv", cmd.Args),
	)
	return nil
}

// command builds the exec.Cmd for command and reports whether it runs the
// file directly.
func (l *Launcher) command(command string) (*exec.Cmd, bool) {
	if isExecutable(command) || len(l.Opener) == 0 {
		return exec.Command(command), true
	}
	args := append(append([]string{}, l.Opener[1:]...), command)
	return exec.Command(l.Opener[0], args...), false
}

func isExecutable(path string) bool {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return false
	}
	if runtime.GOOS == "windows" {
		ext := strings.ToLower(path[strings.LastIndex(path, ".")+1:])
		return ext == "exe" || ext == "bat" || ext == "cmd" || ext == "com"
	}
	return info.Mode()&0o111 != 0
}

func startAndReap(cmd *exec.Cmd) error {
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() {
		if err := cmd.Wait(); err != nil {
			logging.Debug("Launched process exited",
				zap.Strings("argv", cmd.Args),
				zap.Error(err),
			)
		}
	}()
	return nil
}
