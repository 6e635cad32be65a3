package layout

import (
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/muurk/macropad/internal/keys"
)

// Severity ranks a validation issue
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

// String returns the lower-case severity name
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return fmt.Sprintf("severity(%d)", int(s))
	}
}

// Issue is one finding from Validate. Page and Button are -1 when the issue
// is not specific to one.
type Issue struct {
	Severity Severity
	Page     int
	Button   int
	Message  string
}

// String formats the issue with its location.
func (i Issue) String() string {
	loc := "layout"
	switch {
	case i.Page >= 0 && i.Button >= 0:
		loc = fmt.Sprintf("page %d button %d", i.Page+1, i.Button+1)
	case i.Page >= 0:
		loc = fmt.Sprintf("page %d", i.Page+1)
	}
	return fmt.Sprintf("%s: %s: %s", i.Severity, loc, i.Message)
}

// Validate reports problems a designer would want to fix. None of them stop
// the runtime: unresolvable actions are no-ops at execution time.
func Validate(l *Layout) []Issue {
	var issues []Issue
	add := func(sev Severity, page, button int, format string, args ...any) {
		issues = append(issues, Issue{Severity: sev, Page: page, Button: button, Message: fmt.Sprintf(format, args...)})
	}

	if l.Width <= 0 || l.Height <= 0 {
		add(SeverityError, -1, -1, "window size %gx%g must be positive", l.Width, l.Height)
	}
	if l.GridRows <= 0 || l.GridCols <= 0 {
		add(SeverityError, -1, -1, "grid %dx%d must be positive", l.GridRows, l.GridCols)
	}
	if len(l.Pages) == 0 {
		add(SeverityWarning, -1, -1, "layout has no pages")
	}

	seen := make(map[string]int, len(l.Pages))
	for pi, p := range l.Pages {
		key := strings.ToLower(p.Name)
		if first, dup := seen[key]; dup {
			add(SeverityWarning, pi, -1, "page name %q duplicates page %d; navigation will always pick page %d", p.Name, first+1, first+1)
		} else {
			seen[key] = pi
		}

		for bi, b := range p.Buttons {
			validateButton(l, pi, bi, b, add)
		}
	}
	return issues
}

func validateButton(l *Layout, pi, bi int, b Button, add func(Severity, int, int, string, ...any)) {
	if b.Width < MinButtonSize || b.Height < MinButtonSize {
		add(SeverityWarning, pi, bi, "size %gx%g is below the %d unit minimum", b.Width, b.Height, MinButtonSize)
	}
	if b.X < 0 || b.Y < 0 {
		add(SeverityWarning, pi, bi, "position (%g,%g) is negative", b.X, b.Y)
	}

	if !b.Action.Known() {
		add(SeverityError, pi, bi, "unknown action %q; the button does nothing", b.Action)
		return
	}
	if b.Value == "" {
		add(SeverityWarning, pi, bi, "%s has an empty value; the button does nothing", b.Action)
		return
	}

	switch b.Action {
	case ActionSendKey, ActionCommandKey:
		if !keys.IsValid(b.Value) {
			add(SeverityError, pi, bi, "%q is not a valid key or chord; the button does nothing%s",
				b.Value, didYouMean(keys.Suggest(keys.Unresolved(b.Value))))
		}
	case ActionNavigate:
		if l.PageIndex(b.Value) < 0 {
			add(SeverityWarning, pi, bi, "navigation target %q matches no page%s",
				b.Value, didYouMean(closestPage(l, b.Value)))
		}
	case ActionRunCommand:
		if strings.ContainsAny(b.Value, `.\/`) {
			add(SeverityInfo, pi, bi, "%q will also be launched as a process", b.Value)
		}
	}
}

func didYouMean(s string) string {
	if s == "" {
		return ""
	}
	return fmt.Sprintf(" (did you mean %q?)", s)
}

// closestPage returns the page name within two edits of name, ignoring
// case, or "".
func closestPage(l *Layout, name string) string {
	target := strings.ToLower(name)
	best, bestDist := "", 3
	for _, p := range l.Pages {
		d := levenshtein.ComputeDistance(target, strings.ToLower(p.Name))
		if d < bestDist && d < len(target) {
			best, bestDist = p.Name, d
		}
	}
	return best
}

// HasErrors reports whether any issue is SeverityError.
func HasErrors(issues []Issue) bool {
	for _, i := range issues {
		if i.Severity == SeverityError {
			return true
		}
	}
	return false
}
