package action

import (
	"slices"
	"testing"

	"github.com/muurk/macropad/internal/keys"
	"github.com/muurk/macropad/internal/layout"
)

func TestParseChordKinds(t *testing.T) {
	for _, kind := range []layout.ActionKind{layout.ActionSendKey, layout.ActionCommandKey} {
		a := ParseValue(kind, "ctrl + c")
		if a.Kind != KindChord {
			t.Fatalf("%s: Kind = %s, want chord", kind, a.Kind)
		}
		if !slices.Equal(a.Chord.Modifiers, []keys.Code{keys.LControl}) {
			t.Errorf("%s: modifiers = %v", kind, a.Chord.Modifiers)
		}
		if len(a.Chord.Keys) != 1 || a.Chord.Keys[0].Name() != "VK_C" {
			t.Errorf("%s: keys = %v", kind, a.Chord.Keys)
		}
	}
}

func TestParseNoOps(t *testing.T) {
	tests := []struct {
		name  string
		kind  layout.ActionKind
		value string
	}{
		{"unknown kind", "Launch", "notepad.exe"},
		{"empty sendkey", layout.ActionSendKey, ""},
		{"blank navigate", layout.ActionNavigate, "   "},
		{"empty runcommand", layout.ActionRunCommand, ""},
		{"bad token", layout.ActionSendKey, "CTRL+NOTAKEY"},
		{"numeric name", layout.ActionSendKey, "65"},
		{"only plus", layout.ActionCommandKey, "+"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := ParseValue(tt.kind, tt.value)
			if a.Kind != KindNone {
				t.Errorf("Kind = %s, want none", a.Kind)
			}
			if a.Reason == "" {
				t.Error("Reason is empty")
			}
		})
	}
}

func TestSplitValue(t *testing.T) {
	tests := []struct {
		value     string
		wantSplit bool
		wantText  string
		wantChord string
	}{
		{"Hello,CTRL+A", true, "Hello", "LCONTROL+VK_A"},
		{"1234,ENTER", true, "1234", "RETURN"},
		{"a,b,TAB", true, "a,b", "TAB"},
		{",ENTER", true, "", "RETURN"},
		{"x, ctrl + v ", true, "x", "LCONTROL+VK_V"},
		{"just,text", false, "", ""},
		{"no comma", false, "", ""},
		{"trailing,", false, "", ""},
		{"partial,CTRL+NOPE", false, "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			text, chord, ok := SplitValue(tt.value)
			if ok != tt.wantSplit {
				t.Fatalf("SplitValue(%q) ok = %v, want %v", tt.value, ok, tt.wantSplit)
			}
			if !ok {
				return
			}
			if text != tt.wantText {
				t.Errorf("text = %q, want %q", text, tt.wantText)
			}
			if got := chord.String(); got != tt.wantChord {
				t.Errorf("chord = %s, want %s", got, tt.wantChord)
			}
		})
	}
}

func TestParseSendValue(t *testing.T) {
	a := ParseValue(layout.ActionSendValue, "Hello,CTRL+A")
	if a.Kind != KindTextChord || a.Text != "Hello" || a.Chord.String() != "LCONTROL+VK_A" {
		t.Errorf("Hello,CTRL+A -> %+v", a)
	}

	a = ParseValue(layout.ActionSendValue, "just,text")
	if a.Kind != KindText || a.Text != "just,text" {
		t.Errorf("just,text -> %+v", a)
	}

	for _, ws := range []string{" ", "\t", "  "} {
		a = ParseValue(layout.ActionSendValue, ws)
		if a.Kind != KindText || a.Text != ws {
			t.Errorf("%q -> %+v, want literal text", ws, a)
		}
	}

	if a = ParseValue(layout.ActionSendValue, ""); a.Kind != KindNone {
		t.Errorf("empty value -> %+v", a)
	}
}

func TestParseWhitespaceValues(t *testing.T) {
	tests := []struct {
		kind layout.ActionKind
		want Kind
	}{
		{layout.ActionSendKey, KindNone},
		{layout.ActionCommandKey, KindNone},
		{layout.ActionSendValue, KindText},
		{layout.ActionRunCommand, KindCommand},
	}
	for _, tt := range tests {
		if a := ParseValue(tt.kind, " "); a.Kind != tt.want {
			t.Errorf("%s %q -> %s, want %s", tt.kind, " ", a.Kind, tt.want)
		}
	}
}

func TestParseNavigate(t *testing.T) {
	a := Parse(layout.Button{Action: layout.ActionNavigate, Value: "Commands"})
	if a.Kind != KindNavigate || a.Command != "Navigate:Commands" {
		t.Errorf("Parse() = %+v", a)
	}
}

func TestParseRunCommand(t *testing.T) {
	tests := []struct {
		value  string
		launch bool
	}{
		{"NextPage", false},
		{"EXIT", false},
		{"open_cash_drawer", false},
		{"/usr/bin/xterm", true},
		{`C:\Tools\drawer.exe`, true},
		{"report.pdf", true},
	}
	for _, tt := range tests {
		a := ParseValue(layout.ActionRunCommand, tt.value)
		if a.Kind != KindCommand || a.Command != tt.value {
			t.Errorf("%q -> %+v", tt.value, a)
		}
		if a.Launch != tt.launch {
			t.Errorf("%q Launch = %v, want %v", tt.value, a.Launch, tt.launch)
		}
	}
}

func TestIsExit(t *testing.T) {
	for _, s := range []string{"EXIT", "exit", "Exit"} {
		if !IsExit(s) {
			t.Errorf("IsExit(%q) = false", s)
		}
	}
	for _, s := range []string{"", "EXIT ", "Quit"} {
		if IsExit(s) {
			t.Errorf("IsExit(%q) = true", s)
		}
	}
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		kind  layout.ActionKind
		value string
		want  string
	}{
		{layout.ActionSendKey, "CTRL+C", "press LCONTROL+VK_C"},
		{layout.ActionSendValue, "1234,ENTER", `type "1234", then press RETURN`},
		{layout.ActionSendValue, ",ENTER", "press RETURN"},
		{layout.ActionSendValue, "abc", `type "abc"`},
		{layout.ActionNavigate, "Main", "go to page Main"},
		{layout.ActionRunCommand, "NextPage", `command "NextPage"`},
		{layout.ActionRunCommand, "/bin/true", `command "/bin/true" (launch)`},
		{layout.ActionSendKey, "", "no-op: empty value"},
	}
	for _, tt := range tests {
		if got := Describe(ParseValue(tt.kind, tt.value)); got != tt.want {
			t.Errorf("Describe(%s %q) = %q, want %q", tt.kind, tt.value, got, tt.want)
		}
	}
}
