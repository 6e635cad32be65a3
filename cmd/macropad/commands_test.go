package main

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/muurk/macropad/internal/config"
	"github.com/muurk/macropad/internal/layout"
)

func TestPortOf(t *testing.T) {
	tests := []struct {
		addr    string
		want    int
		wantErr bool
	}{
		{":8765", 8765, false},
		{"127.0.0.1:9000", 9000, false},
		{"[::1]:80", 80, false},
		{":0", 0, true},
		{"8765", 0, true},
		{":http", 0, true},
	}
	for _, tt := range tests {
		got, err := portOf(tt.addr)
		if (err != nil) != tt.wantErr {
			t.Errorf("portOf(%q) error = %v, wantErr %v", tt.addr, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("portOf(%q) = %d, want %d", tt.addr, got, tt.want)
		}
	}
}

func TestSelectButton(t *testing.T) {
	l := layout.Example()

	tests := []struct {
		name     string
		args     []string
		action   string
		wantText string
		wantErr  string
	}{
		{name: "by number", args: []string{"1", "3"}, wantText: "Copy"},
		{name: "by name", args: []string{"commands", "exit"}, wantText: "Exit"},
		{name: "missing page", args: []string{"Nope", "1"}, wantErr: "no page"},
		{name: "missing button", args: []string{"2", "9"}, wantErr: "no button"},
		{name: "ad-hoc", action: "SendValue", wantText: "SendValue"},
		{name: "ad-hoc unknown kind", action: "Teleport", wantErr: "unknown action"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			execAction = tt.action
			defer func() { execAction = "" }()

			b, err := selectButton(l, tt.args)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("err = %v, want %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if b.Text != tt.wantText {
				t.Errorf("Text = %q, want %q", b.Text, tt.wantText)
			}
		})
	}
}

func TestResolveLayout(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pad.yaml")
	if err := layout.Save(layout.Example(), path); err != nil {
		t.Fatal(err)
	}

	prefs := config.DefaultPreferences()

	layoutPath = path
	defer func() { layoutPath = "" }()
	l, got, err := resolveLayout(prefs)
	if err != nil || got != path || l.Name != "Example Keyboard" {
		t.Fatalf("resolveLayout() = %v, %q, %v", l, got, err)
	}

	layoutPath = filepath.Join(dir, "missing.yaml")
	if _, _, err := resolveLayout(prefs); err == nil {
		t.Error("missing explicit layout should fail")
	}

	layoutPath = ""
	prefs.LayoutPath = path
	if _, got, err := resolveLayout(prefs); err != nil || got != path {
		t.Errorf("preferred layout = %q, %v", got, err)
	}
}

func TestNewSessionRoutesCommands(t *testing.T) {
	backend = "dryrun"
	defer func() { backend = "" }()

	var out strings.Builder
	s, err := newSession(layout.Example(), "", config.DefaultPreferences(), &out)
	if err != nil {
		t.Fatal(err)
	}
	defer s.close()

	l := layout.Example()
	s.Engine.Execute(t.Context(), l.Pages[0].Buttons[4])
	if got := s.Router.Current().PageName(); got != "Commands" {
		t.Errorf("page after NextPage = %q", got)
	}

	s.Engine.Execute(t.Context(), l.Pages[0].Buttons[0])
	if !strings.Contains(out.String(), "VK_1") {
		t.Errorf("dry-run output = %q", out.String())
	}
}
