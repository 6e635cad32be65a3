package ui

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/muurk/macropad/internal/layout"
)

func TestRenderLayout(t *testing.T) {
	out := RenderLayout(layout.Example())
	for _, want := range []string{
		"Example Keyboard",
		"1. Main",
		"2. Commands",
		"Copy",
		"press LCONTROL+VK_C",
		`type "1234", then press RETURN`,
		"go to page Main",
		`command "EXIT"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("RenderLayout output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderIssues(t *testing.T) {
	if out := RenderIssues(nil); !strings.Contains(out, "no issues") {
		t.Errorf("RenderIssues(nil) = %q", out)
	}
	out := RenderIssues([]layout.Issue{
		{Severity: layout.SeverityError, Page: 0, Button: 1, Message: "bad chord"},
	})
	if !strings.Contains(out, "error: page 1 button 2: bad chord") {
		t.Errorf("RenderIssues = %q", out)
	}
}

func TestPrinterBoxes(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf).SetWidth(80)

	p.PrintHeader("Show", "macropad-cfg show", P("File", "keyboard.yaml"), P("Pages", "2"))
	p.PrintSuccess("Saved", P("File", "out.yaml"))
	p.PrintError("Load failed", errors.New("boom"), "check the path")

	out := buf.String()
	for _, want := range []string{"SHOW", "macropad-cfg show", "File:", "keyboard.yaml", "SUCCESS", "FAILED", "Error: boom", "check the path"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
	if strings.Index(out, "File:") > strings.Index(out, "Pages:") {
		t.Error("header params not printed in order")
	}
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{"n\n", false},
		{"\n", false},
		{"", false},
		{"yes", true},
	}
	for _, tt := range tests {
		var out bytes.Buffer
		if got := Confirm(strings.NewReader(tt.input), &out, "Delete page"); got != tt.want {
			t.Errorf("Confirm(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
