package engine

import (
	"fmt"
	"time"

	"github.com/muurk/macropad/internal/action"
	"github.com/muurk/macropad/internal/keys"
)

// Timing of injected sequences. These spacings are observable by the
// receiving application and must not change.
const (
	// SettleDelay follows the modifier press and precedes the modifier release.
	SettleDelay = 100 * time.Millisecond
	// HoldDelay separates the down and up of each non-modifier key.
	HoldDelay = 50 * time.Millisecond
	// TextDelay separates typed text from the chord that follows it.
	TextDelay = 50 * time.Millisecond
)

// Op is the kind of a Step.
type Op int

const (
	OpKeyDown Op = iota
	OpKeyUp
	OpText
	OpWait
)

// String returns the op name
func (o Op) String() string {
	switch o {
	case OpKeyDown:
		return "down"
	case OpKeyUp:
		return "up"
	case OpText:
		return "text"
	case OpWait:
		return "wait"
	default:
		return fmt.Sprintf("op(%d)", int(o))
	}
}

// Step is one timed instruction of an injection sequence.
type Step struct {
	Op    Op
	Key   keys.Code
	Text  string
	Delay time.Duration
}

// String renders the step as "down LCONTROL", "wait 100ms" or `text "abc"`.
func (s Step) String() string {
	switch s.Op {
	case OpKeyDown, OpKeyUp:
		return s.Op.String() + " " + s.Key.String()
	case OpText:
		return fmt.Sprintf("text %q", s.Text)
	case OpWait:
		return "wait " + s.Delay.String()
	default:
		return s.Op.String()
	}
}

// Down builds a key-down step.
func Down(c keys.Code) Step { return Step{Op: OpKeyDown, Key: c} }

// Up builds a key-up step.
func Up(c keys.Code) Step { return Step{Op: OpKeyUp, Key: c} }

// Type builds a literal text step.
func Type(s string) Step { return Step{Op: OpText, Text: s} }

// Wait builds a delay step.
func Wait(d time.Duration) Step { return Step{Op: OpWait, Delay: d} }

func press(c keys.Code) []Step { return []Step{Down(c), Up(c)} }

// ChordSteps builds the press sequence for a chord.
//
// A single token is one full press. With at least one non-modifier key the
// modifiers are held around the keys:
//
//	down M... | wait 100ms | (down k, wait 50ms, up k)... | wait 100ms | up M...
//
// A chord of modifiers only presses each modifier in turn.
func ChordSteps(c keys.Chord) []Step {
	if len(c.Tokens) == 0 {
		return nil
	}
	if c.Single() {
		return press(c.Tokens[0])
	}

	if len(c.Keys) == 0 {
		steps := make([]Step, 0, 2*len(c.Modifiers))
		for _, m := range c.Modifiers {
			steps = append(steps, press(m)...)
		}
		return steps
	}

	steps := make([]Step, 0, 2*len(c.Modifiers)+3*len(c.Keys)+2)
	for _, m := range c.Modifiers {
		steps = append(steps, Down(m))
	}
	steps = append(steps, Wait(SettleDelay))
	for _, k := range c.Keys {
		steps = append(steps, Down(k), Wait(HoldDelay), Up(k))
	}
	steps = append(steps, Wait(SettleDelay))
	for _, m := range c.Modifiers {
		steps = append(steps, Up(m))
	}
	return steps
}

// Steps returns the injection sequence for a. Actions that inject nothing
// (navigation, commands, no-ops) return nil.
func Steps(a action.Action) []Step {
	switch a.Kind {
	case action.KindChord:
		return ChordSteps(a.Chord)
	case action.KindText:
		return []Step{Type(a.Text)}
	case action.KindTextChord:
		var steps []Step
		if a.Text != "" {
			steps = append(steps, Type(a.Text))
		}
		steps = append(steps, Wait(TextDelay))
		return append(steps, ChordSteps(a.Chord)...)
	default:
		return nil
	}
}

// Duration sums the waits in steps.
func Duration(steps []Step) time.Duration {
	var d time.Duration
	for _, s := range steps {
		if s.Op == OpWait {
			d += s.Delay
		}
	}
	return d
}
