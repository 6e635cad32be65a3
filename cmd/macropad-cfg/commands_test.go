package main

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/muurk/macropad/internal/config"
	"github.com/muurk/macropad/internal/layout"
)

// setupConfig points the configuration registry at a temporary directory.
func setupConfig(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("HOME", dir)
	if _, err := config.ReloadRegistry(); err != nil {
		t.Fatal(err)
	}
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// execute runs the CLI with args, feeding stdin.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func writeExample(t *testing.T) string {
	t.Helper()
	setupConfig(t)
	path := filepath.Join(t.TempDir(), "keyboard.yaml")
	if _, err := execute(t, "", "example", path); err != nil {
		t.Fatalf("example: %v", err)
	}
	return path
}

func mustLoad(t *testing.T, path string) *layout.Layout {
	t.Helper()
	l, err := layout.Load(path)
	if err != nil || l == nil {
		t.Fatalf("Load(%s) = %v, %v", path, l, err)
	}
	return l
}

func TestExampleShowValidate(t *testing.T) {
	path := writeExample(t)

	out, err := execute(t, "", "show", "-f", path)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"Example Keyboard", "1. Main", "2. Commands", "Copy", "CTRL+C"} {
		if !strings.Contains(out, want) {
			t.Errorf("show output missing %q", want)
		}
	}

	out, err = execute(t, "", "show", "-f", path, "--format", "json")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, `"name": "Example Keyboard"`) {
		t.Errorf("json output = %s", out)
	}

	if _, err := execute(t, "", "validate", "-f", path); err != nil {
		t.Errorf("example layout failed validation: %v", err)
	}

	registry, err := config.LoadRegistry()
	if err != nil {
		t.Fatal(err)
	}
	if len(registry.Recent) == 0 || registry.Recent[0] != path {
		t.Errorf("Recent = %v", registry.Recent)
	}
}

func TestExampleRefusesOverwrite(t *testing.T) {
	path := writeExample(t)

	_, err := execute(t, "n\n", "example", path)
	if !errors.Is(err, errCancelled) {
		t.Fatalf("err = %v, want errCancelled", err)
	}
	if _, err := execute(t, "", "example", path, "--yes"); err != nil {
		t.Fatalf("--yes: %v", err)
	}
}

func TestShowMissingFile(t *testing.T) {
	setupConfig(t)
	_, err := execute(t, "", "show", "-f", filepath.Join(t.TempDir(), "none.yaml"))
	if err == nil || !strings.Contains(err.Error(), "no layout") {
		t.Errorf("err = %v", err)
	}
}

func TestPageCommands(t *testing.T) {
	path := writeExample(t)

	if _, err := execute(t, "", "page", "add", "-f", path, "--name", "Media"); err != nil {
		t.Fatal(err)
	}
	if l := mustLoad(t, path); len(l.Pages) != 3 || l.Pages[2].Name != "Media" {
		t.Fatalf("pages = %+v", l.Pages)
	}

	if _, err := execute(t, "", "page", "rename", "-f", path, "media", "Audio"); err != nil {
		t.Fatal(err)
	}

	if _, err := execute(t, "no\n", "page", "delete", "-f", path, "Audio"); !errors.Is(err, errCancelled) {
		t.Fatalf("declined delete err = %v", err)
	}
	if l := mustLoad(t, path); len(l.Pages) != 3 || l.Pages[2].Name != "Audio" {
		t.Fatalf("declined delete changed pages: %+v", l.Pages)
	}

	if _, err := execute(t, "y\n", "page", "delete", "-f", path, "3"); err != nil {
		t.Fatal(err)
	}
	if l := mustLoad(t, path); len(l.Pages) != 2 {
		t.Errorf("pages after delete = %d", len(l.Pages))
	}

	if _, err := execute(t, "", "page", "delete", "-f", path, "Nope", "--yes"); err == nil {
		t.Error("deleting a missing page should fail")
	}
}

func TestButtonCommands(t *testing.T) {
	path := writeExample(t)

	_, err := execute(t, "", "button", "add", "-f", path, "Commands",
		"--text", "Tab", "--action", "CommandKey", "--value", "CTRL+T", "--bold")
	if err != nil {
		t.Fatal(err)
	}
	l := mustLoad(t, path)
	added := l.Pages[1].Buttons[len(l.Pages[1].Buttons)-1]
	if added.Text != "Tab" || added.Action != layout.ActionCommandKey || added.Value != "CTRL+T" || !added.IsBold {
		t.Errorf("added = %+v", added)
	}

	if _, err := execute(t, "", "button", "set", "-f", path, "Main", "copy", "--value", "CTRL+X"); err != nil {
		t.Fatal(err)
	}
	if got := mustLoad(t, path).Pages[0].Buttons[2]; got.Value != "CTRL+X" || got.Action != layout.ActionCommandKey {
		t.Errorf("set = %+v", got)
	}

	if _, err := execute(t, "", "button", "move", "-f", path, "1", "1", "10", "5"); err != nil {
		t.Fatal(err)
	}
	if got := mustLoad(t, path).Pages[0].Buttons[0]; got.X != 60 || got.Y != 55 {
		t.Errorf("moved to (%g,%g), want (60,55)", got.X, got.Y)
	}

	if _, err := execute(t, "", "button", "resize", "-f", path, "1", "1", "--", "-100", "0"); err != nil {
		t.Fatal(err)
	}
	if got := mustLoad(t, path).Pages[0].Buttons[0]; got.Width != layout.MinButtonSize || got.Height != 80 {
		t.Errorf("resized to %gx%g", got.Width, got.Height)
	}

	if _, err := execute(t, "", "button", "delete", "-f", path, "1", "PIN", "--yes"); err != nil {
		t.Fatal(err)
	}
	if got := mustLoad(t, path).Pages[0]; got.FindButton("PIN") != -1 || len(got.Buttons) != 4 {
		t.Errorf("PIN not deleted: %+v", got.Buttons)
	}

	if _, err := execute(t, "", "button", "set", "-f", path, "1", "1", "--action", "Teleport"); err == nil {
		t.Error("unknown action kind should fail")
	}
	if _, err := execute(t, "", "button", "move", "-f", path, "1", "1", "x", "0"); err == nil {
		t.Error("non-numeric offset should fail")
	}
}

func TestValidateReportsErrors(t *testing.T) {
	setupConfig(t)
	path := filepath.Join(t.TempDir(), "bad.yaml")
	l := layout.Example()
	l.Pages[0].Buttons[0].Value = "CTRL+NOPE"
	if err := layout.Save(l, path); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, "", "validate", "-f", path)
	if err == nil {
		t.Fatal("expected validate to fail")
	}
	if !strings.Contains(out, "page 1 button 1") {
		t.Errorf("output does not locate the issue:\n%s", out)
	}
}

func TestSetPreference(t *testing.T) {
	tests := []struct {
		key, value string
		wantErr    bool
		check      func(p *config.Preferences) bool
	}{
		{"backend", "dryrun", false, func(p *config.Preferences) bool { return p.Backend == "dryrun" }},
		{"backend", "uinput", true, nil},
		{"advertise", "false", false, func(p *config.Preferences) bool { return !p.Advertise }},
		{"advertise", "maybe", true, nil},
		{"discover_timeout", "3", false, func(p *config.Preferences) bool { return p.DiscoverTimeout == 3 }},
		{"discover_timeout", "0", true, nil},
		{"log_level", "DEBUG", false, func(p *config.Preferences) bool { return p.LogLevel == "debug" }},
		{"log_level", "loud", true, nil},
		{"log_level", "", false, func(p *config.Preferences) bool { return p.LogLevel == "" }},
		{"remote_addr", ":9000", false, func(p *config.Preferences) bool { return p.RemoteAddr == ":9000" }},
		{"layout_path", "/tmp/k.yaml", false, func(p *config.Preferences) bool { return p.LayoutPath == "/tmp/k.yaml" }},
		{"colour", "red", true, nil},
	}
	for _, tt := range tests {
		p := config.DefaultPreferences()
		err := setPreference(p, tt.key, tt.value)
		if (err != nil) != tt.wantErr {
			t.Errorf("setPreference(%q, %q) error = %v, wantErr %v", tt.key, tt.value, err, tt.wantErr)
			continue
		}
		if tt.check != nil && !tt.check(p) {
			t.Errorf("setPreference(%q, %q) left %+v", tt.key, tt.value, p)
		}
	}
}

func TestPrefsSetPersists(t *testing.T) {
	setupConfig(t)
	if _, err := execute(t, "", "prefs", "set", "backend", "dryrun"); err != nil {
		t.Fatal(err)
	}
	if _, err := execute(t, "", "prefs", "nickname", "macropad-studio", "desk"); err != nil {
		t.Fatal(err)
	}

	registry, err := config.ReloadRegistry()
	if err != nil {
		t.Fatal(err)
	}
	if registry.Preferences.Backend != "dryrun" {
		t.Errorf("Backend = %q", registry.Preferences.Backend)
	}
	if rt := registry.GetRuntime("macropad-studio"); rt == nil || rt.Nickname != "desk" {
		t.Errorf("runtime = %+v", rt)
	}

	out, err := execute(t, "", "prefs", "show")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "dryrun") || !strings.Contains(out, "nickname=desk") {
		t.Errorf("prefs show output:\n%s", out)
	}
}

func TestScanDuration(t *testing.T) {
	defer func() { scanTimeout = 0 }()

	scanTimeout = 0
	if got := scanDuration(&config.Preferences{DiscoverTimeout: 2}); got.Seconds() != 2 {
		t.Errorf("preferred timeout = %v", got)
	}
	scanTimeout = 7
	if got := scanDuration(&config.Preferences{DiscoverTimeout: 2}); got.Seconds() != 7 {
		t.Errorf("flag timeout = %v", got)
	}
}
