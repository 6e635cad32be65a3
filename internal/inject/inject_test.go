package inject

import (
	"bytes"
	"context"
	"errors"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/muurk/macropad/internal/keys"
)

func TestKeysymFor(t *testing.T) {
	tests := []struct {
		token string
		want  string
	}{
		{"a", "a"},
		{"Z", "z"},
		{"7", "7"},
		{"F1", "F1"},
		{"F24", "F24"},
		{"NUMPAD3", "KP_3"},
		{"CTRL", "Control_L"},
		{"RCONTROL", "Control_R"},
		{"ALT", "Alt_L"},
		{"SHIFT", "Shift_L"},
		{"WIN", "Super_L"},
		{"ENTER", "Return"},
		{"BS", "BackSpace"},
		{"PGDN", "Next"},
		{"SPACE", "space"},
		{"LEFT", "Left"},
	}
	for _, tt := range tests {
		code, ok := keys.Resolve(tt.token)
		if !ok {
			t.Fatalf("Resolve(%q) failed", tt.token)
		}
		got, err := keysymFor(code)
		if err != nil {
			t.Errorf("keysymFor(%s) error = %v", code, err)
			continue
		}
		if got != tt.want {
			t.Errorf("keysymFor(%s) = %q, want %q", code, got, tt.want)
		}
	}

	var unmapped *UnmappedError
	if _, err := keysymFor(keys.Code(0x01)); !errors.As(err, &unmapped) {
		t.Errorf("keysymFor(LBUTTON) error = %v, want UnmappedError", err)
	}
}

type call struct {
	path string
	args []string
}

func fakeXdotool(calls *[]call, fail error) *Xdotool {
	return &Xdotool{
		config: Config{XdotoolPath: "/usr/bin/xdotool", Timeout: time.Second},
		run: func(_ context.Context, path string, args ...string) (string, error) {
			*calls = append(*calls, call{path: path, args: args})
			if fail != nil {
				return "cannot open display", fail
			}
			return "", nil
		},
	}
}

func TestXdotoolArgs(t *testing.T) {
	var calls []call
	x := fakeXdotool(&calls, nil)
	ctx := context.Background()

	if err := x.KeyDown(ctx, keys.LControl); err != nil {
		t.Fatal(err)
	}
	if err := x.KeyUp(ctx, keys.Return); err != nil {
		t.Fatal(err)
	}
	if err := x.TypeText(ctx, "-n 1234"); err != nil {
		t.Fatal(err)
	}
	if err := x.TypeText(ctx, ""); err != nil {
		t.Fatal(err)
	}

	want := [][]string{
		{"keydown", "Control_L"},
		{"keyup", "Return"},
		{"type", "--clearmodifiers", "--", "-n 1234"},
	}
	if len(calls) != len(want) {
		t.Fatalf("calls = %v", calls)
	}
	for i := range want {
		if calls[i].path != "/usr/bin/xdotool" || !slices.Equal(calls[i].args, want[i]) {
			t.Errorf("call %d = %v, want %v", i, calls[i], want[i])
		}
	}
}

func TestXdotoolErrors(t *testing.T) {
	var calls []call
	x := fakeXdotool(&calls, errors.New("exit status 1"))

	err := x.KeyDown(context.Background(), keys.Escape)
	var ee *ExecError
	if !errors.As(err, &ee) {
		t.Fatalf("error = %v, want ExecError", err)
	}
	if ee.Stderr != "cannot open display" || !strings.Contains(err.Error(), "keydown Escape") {
		t.Errorf("error = %q", err)
	}

	calls = nil
	if err := x.KeyDown(context.Background(), keys.Code(0x01)); err == nil {
		t.Error("unmapped key should fail")
	}
	if len(calls) != 0 {
		t.Error("xdotool ran for an unmapped key")
	}
}

func TestRecorder(t *testing.T) {
	var out bytes.Buffer
	r := NewRecorder(&out)
	ctx := context.Background()

	_ = r.KeyDown(ctx, keys.LControl)
	_ = r.KeyUp(ctx, keys.LControl)
	_ = r.TypeText(ctx, "hi")

	want := []Event{
		{Op: "keydown", Key: keys.LControl},
		{Op: "keyup", Key: keys.LControl},
		{Op: "type", Text: "hi"},
	}
	if got := r.Events(); !slices.Equal(got, want) {
		t.Errorf("Events() = %v", got)
	}
	if out.String() != "keydown LCONTROL\nkeyup LCONTROL\ntype \"hi\"\n" {
		t.Errorf("output = %q", out.String())
	}

	r.Reset()
	if len(r.Events()) != 0 {
		t.Error("Reset did not clear events")
	}
}

func TestOpen(t *testing.T) {
	b, err := Open(BackendDryRun, nil)
	if err != nil || b.Name() != BackendDryRun {
		t.Errorf("Open(dryrun) = %v, %v", b, err)
	}
	if _, err := Open("uinput", nil); err == nil {
		t.Error("Open(unknown) should fail")
	}
}
