package action

import (
	"fmt"
	"strings"

	"github.com/muurk/macropad/internal/keys"
	"github.com/muurk/macropad/internal/layout"
)

// Commands understood by the navigation router and the host.
const (
	CommandExit         = "EXIT"
	CommandNextPage     = "NextPage"
	CommandPreviousPage = "PreviousPage"
	NavigatePrefix      = "Navigate:"
)

// Kind is the parsed shape of an action.
type Kind int

const (
	// KindNone does nothing: empty value, unknown action or an unresolvable chord.
	KindNone Kind = iota
	// KindChord presses a key chord.
	KindChord
	// KindText types literal text.
	KindText
	// KindTextChord types text, then presses a chord.
	KindTextChord
	// KindNavigate emits a "Navigate:<page>" command.
	KindNavigate
	// KindCommand emits a raw command and may launch a process.
	KindCommand
)

// String returns the kind name
func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindChord:
		return "chord"
	case KindText:
		return "text"
	case KindTextChord:
		return "text+chord"
	case KindNavigate:
		return "navigate"
	case KindCommand:
		return "command"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Action is the executable form of a button binding.
type Action struct {
	Kind Kind
	// Source is the button's action kind as written.
	Source layout.ActionKind

	// Chord is set for KindChord and KindTextChord.
	Chord keys.Chord
	// Text is set for KindText and KindTextChord. It may be empty for
	// KindTextChord ("," followed by a chord).
	Text string
	// Command is the notification payload for KindNavigate and KindCommand.
	Command string
	// Launch marks a KindCommand whose value also looks like a path.
	Launch bool

	// Reason explains a KindNone result.
	Reason string
}

// Parse interprets b.Action and b.Value. It never fails: anything that
// cannot be executed comes back as KindNone with a Reason.
func Parse(b layout.Button) Action {
	return ParseValue(b.Action, b.Value)
}

// ParseValue is Parse without the button.
func ParseValue(kind layout.ActionKind, value string) Action {
	a := Action{Source: kind}
	if !kind.Known() {
		a.Reason = fmt.Sprintf("unknown action %q", kind)
		return a
	}
	if value == "" {
		a.Reason = "empty value"
		return a
	}

	switch kind {
	case layout.ActionSendKey, layout.ActionCommandKey:
		chord, ok := keys.ParseChord(value)
		if !ok {
			a.Reason = fmt.Sprintf("%q is not a valid chord", value)
			return a
		}
		a.Kind = KindChord
		a.Chord = chord

	case layout.ActionSendValue:
		if text, chord, ok := SplitValue(value); ok {
			a.Kind = KindTextChord
			a.Text = text
			a.Chord = chord
		} else {
			a.Kind = KindText
			a.Text = value
		}

	case layout.ActionNavigate:
		a.Kind = KindNavigate
		a.Command = NavigatePrefix + value

	case layout.ActionRunCommand:
		a.Kind = KindCommand
		a.Command = value
		a.Launch = IsLaunchCandidate(value)
	}
	return a
}

// SplitValue splits a SendValue string at its last comma when the trimmed
// tail is a complete chord. The text before the comma is returned as
// written and may be empty.
func SplitValue(value string) (string, keys.Chord, bool) {
	i := strings.LastIndex(value, ",")
	if i < 0 {
		return "", keys.Chord{}, false
	}
	chord, ok := keys.ParseChord(strings.TrimSpace(value[i+1:]))
	if !ok {
		return "", keys.Chord{}, false
	}
	return value[:i], chord, true
}

// IsLaunchCandidate reports whether a RunCommand value should also be
// started as a process: it contains ".", "\" or "/" and is not EXIT.
func IsLaunchCandidate(value string) bool {
	if IsExit(value) {
		return false
	}
	return strings.ContainsAny(value, `.\/`)
}

// IsExit reports whether command is the host termination command.
func IsExit(command string) bool {
	return strings.EqualFold(command, CommandExit)
}

// Describe renders a one-line summary for CLI output and logs.
func Describe(a Action) string {
	switch a.Kind {
	case KindChord:
		return "press " + a.Chord.String()
	case KindText:
		return fmt.Sprintf("type %q", a.Text)
	case KindTextChord:
		if a.Text == "" {
			return "press " + a.Chord.String()
		}
		return fmt.Sprintf("type %q, then press %s", a.Text, a.Chord.String())
	case KindNavigate:
		return "go to page " + strings.TrimPrefix(a.Command, NavigatePrefix)
	case KindCommand:
		if a.Launch {
			return fmt.Sprintf("command %q (launch)", a.Command)
		}
		return fmt.Sprintf("command %q", a.Command)
	default:
		if a.Reason != "" {
			return "no-op: " + a.Reason
		}
		return "no-op"
	}
}
