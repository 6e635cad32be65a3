package inject

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/muurk/macropad/internal/keys"
	"github.com/muurk/macropad/internal/logging"
)

// Config holds the xdotool backend settings.
type Config struct {
	// XdotoolPath is the xdotool binary.
	// Default: "xdotool" (searches PATH)
	XdotoolPath string

	// Timeout bounds a single xdotool invocation.
	// Default: 5 seconds
	Timeout time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		XdotoolPath: "xdotool",
		Timeout:     5 * time.Second,
	}
}

// ExecError is a failed xdotool invocation.
type ExecError struct {
	Args   []string
	Stderr string
	Err    error
}

func (e *ExecError) Error() string {
	msg := fmt.Sprintf("xdotool %s: %v", strings.Join(e.Args, " "), e.Err)
	if e.Stderr != "" {
		msg += ": " + e.Stderr
	}
	return msg
}

func (e *ExecError) Unwrap() error {
	return e.Err
}

// runFunc executes the binary with args and returns its stderr.
type runFunc func(ctx context.Context, path string, args ...string) (string, error)

// Xdotool injects input on X11 by running xdotool.
type Xdotool struct {
	config Config
	run    runFunc
}

// NewXdotool creates the backend. It fails when the binary cannot be found.
func NewXdotool(config Config) (*Xdotool, error) {
	if config.XdotoolPath == "" {
		config.XdotoolPath = DefaultConfig().XdotoolPath
	}
	if config.Timeout <= 0 {
		config.Timeout = DefaultConfig().Timeout
	}
	path, err := exec.LookPath(config.XdotoolPath)
	if err != nil {
		return nil, fmt.Errorf("xdotool not available: %w", err)
	}
	config.XdotoolPath = path

	logging.Debug("Using xdotool backend", zap.String("path", path))
	return &Xdotool{config: config, run: runCommand}, nil
}

func runCommand(ctx context.Context, path string, args ...string) (string, error) {
	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Stderr = &stderr
	err := cmd.Run()
	return strings.TrimSpace(stderr.String()), err
}

// Name returns "xdotool".
func (x *Xdotool) Name() string { return BackendXdotool }

// KeyDown presses code.
func (x *Xdotool) KeyDown(ctx context.Context, code keys.Code) error {
	sym, err := keysymFor(code)
	if err != nil {
		return err
	}
	return x.exec(ctx, "keydown", sym)
}

// KeyUp releases code.
func (x *Xdotool) KeyUp(ctx context.Context, code keys.Code) error {
	sym, err := keysymFor(code)
	if err != nil {
		return err
	}
	return x.exec(ctx, "keyup", sym)
}

// TypeText types text into the focused window.
func (x *Xdotool) TypeText(ctx context.Context, text string) error {
	if text == "" {
		return nil
	}
	return x.exec(ctx, "type", "--clearmodifiers", "--", text)
}

func (x *Xdotool) exec(ctx context.Context, args ...string) error {
	ctx, cancel := context.WithTimeout(ctx, x.config.Timeout)
	defer cancel()

	stderr, err := x.run(ctx, x.config.XdotoolPath, args...)
	if err != nil {
		return &ExecError{Args: args, Stderr: stderr, Err: err}
	}
	return nil
}

// keysyms maps virtual-key codes without a regular pattern to X keysyms.
var keysyms = map[keys.Code]string{
	keys.Back:     "BackSpace",
	keys.Tab:      "Tab",
	0x0C:          "Clear",
	keys.Return:   "Return",
	keys.Shift:    "Shift_L",
	keys.Control:  "Control_L",
	keys.Menu:     "Alt_L",
	0x13:          "Pause",
	0x14:          "Caps_Lock",
	keys.Escape:   "Escape",
	keys.Space:    "space",
	keys.Prior:    "Prior",
	keys.Next:     "Next",
	keys.End:      "End",
	keys.Home:     "Home",
	0x25:          "Left",
	0x26:          "Up",
	0x27:          "Right",
	0x28:          "Down",
	0x29:          "Select",
	0x2A:          "Print",
	0x2B:          "Execute",
	0x2C:          "Print",
	keys.Insert:   "Insert",
	keys.Delete:   "Delete",
	0x2F:          "Help",
	keys.LWin:     "Super_L",
	keys.RWin:     "Super_R",
	0x5D:          "Menu",
	0x6A:          "KP_Multiply",
	0x6B:          "KP_Add",
	0x6C:          "KP_Separator",
	0x6D:          "KP_Subtract",
	0x6E:          "KP_Decimal",
	0x6F:          "KP_Divide",
	0x90:          "Num_Lock",
	0x91:          "Scroll_Lock",
	keys.LShift:   "Shift_L",
	keys.RShift:   "Shift_R",
	keys.LControl: "Control_L",
	keys.RControl: "Control_R",
	keys.LMenu:    "Alt_L",
	keys.RMenu:    "Alt_R",
	0xAD:          "XF86AudioMute",
	0xAE:          "XF86AudioLowerVolume",
	0xAF:          "XF86AudioRaiseVolume",
	0xB0:          "XF86AudioNext",
	0xB1:          "XF86AudioPrev",
	0xB2:          "XF86AudioStop",
	0xB3:          "XF86AudioPlay",
	0xBA:          "semicolon",
	0xBB:          "equal",
	0xBC:          "comma",
	0xBD:          "minus",
	0xBE:          "period",
	0xBF:          "slash",
	0xC0:          "grave",
	0xDB:          "bracketleft",
	0xDC:          "backslash",
	0xDD:          "bracketright",
	0xDE:          "apostrophe",
}

// UnmappedError reports a code with no X keysym.
type UnmappedError struct {
	Code keys.Code
}

func (e *UnmappedError) Error() string {
	return fmt.Sprintf("no X keysym for %s", e.Code)
}

// keysymFor returns the X keysym name for code.
func keysymFor(code keys.Code) (string, error) {
	switch {
	case code >= 0x30 && code <= 0x39:
		return string(rune('0' + code - 0x30)), nil
	case code >= 0x41 && code <= 0x5A:
		return string(rune('a' + code - 0x41)), nil
	case code >= 0x60 && code <= 0x69:
		return fmt.Sprintf("KP_%d", int(code-0x60)), nil
	case code >= 0x70 && code <= 0x87:
		return fmt.Sprintf("F%d", int(code-0x70)+1), nil
	}
	if sym, ok := keysyms[code]; ok {
		return sym, nil
	}
	return "", &UnmappedError{Code: code}
}
