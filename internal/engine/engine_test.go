package engine

import (
	"context"
	"errors"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/muurk/macropad/internal/action"
	"github.com/muurk/macropad/internal/keys"
	"github.com/muurk/macropad/internal/layout"
)

// timeline records injector calls and sleeps in one ordered log.
type timeline struct {
	mu      sync.Mutex
	entries []string
	failOn  string
	// cancelAfter cancels when the nth wait is reached.
	cancelAfter int
	cancel      context.CancelFunc
	waits       int
}

func (tl *timeline) add(s string) {
	tl.mu.Lock()
	tl.entries = append(tl.entries, s)
	tl.mu.Unlock()
}

func (tl *timeline) log() []string {
	tl.mu.Lock()
	defer tl.mu.Unlock()
	return slices.Clone(tl.entries)
}

func (tl *timeline) KeyDown(_ context.Context, c keys.Code) error {
	tl.add("down " + c.String())
	if tl.failOn == "down "+c.String() {
		return errors.New("injection failed")
	}
	return nil
}

func (tl *timeline) KeyUp(_ context.Context, c keys.Code) error {
	tl.add("up " + c.String())
	return nil
}

func (tl *timeline) TypeText(_ context.Context, s string) error {
	tl.add("text " + s)
	return nil
}

func (tl *timeline) Sleep(ctx context.Context, d time.Duration) error {
	tl.waits++
	if tl.cancelAfter > 0 && tl.waits == tl.cancelAfter {
		tl.cancel()
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	tl.add("wait " + d.String())
	return nil
}

type fakeLauncher struct {
	mu       sync.Mutex
	launched []string
	err      error
}

func (f *fakeLauncher) Launch(_ context.Context, command string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.launched = append(f.launched, command)
	return f.err
}

func newTestEngine() (*Engine, *timeline, *fakeLauncher) {
	tl := &timeline{}
	fl := &fakeLauncher{}
	return New(Config{Injector: tl, Sleeper: tl, Launcher: fl}), tl, fl
}

func button(kind layout.ActionKind, value string) layout.Button {
	b := layout.NewButton()
	b.Action = kind
	b.Value = value
	return b
}

func TestChordSteps(t *testing.T) {
	tests := []struct {
		value string
		want  []string
	}{
		{"ENTER", []string{"down RETURN", "up RETURN"}},
		{"CTRL", []string{"down LCONTROL", "up LCONTROL"}},
		{"CTRL+C", []string{
			"down LCONTROL", "wait 100ms",
			"down VK_C", "wait 50ms", "up VK_C",
			"wait 100ms", "up LCONTROL",
		}},
		{"CTRL+SHIFT+ESC", []string{
			"down LCONTROL", "down LSHIFT", "wait 100ms",
			"down ESCAPE", "wait 50ms", "up ESCAPE",
			"wait 100ms", "up LCONTROL", "up LSHIFT",
		}},
		{"CTRL+ALT", []string{"down LCONTROL", "up LCONTROL", "down LMENU", "up LMENU"}},
		{"A+B", []string{
			"wait 100ms",
			"down VK_A", "wait 50ms", "up VK_A",
			"down VK_B", "wait 50ms", "up VK_B",
			"wait 100ms",
		}},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			c, ok := keys.ParseChord(tt.value)
			if !ok {
				t.Fatalf("ParseChord(%q) failed", tt.value)
			}
			got := stepStrings(ChordSteps(c))
			if !slices.Equal(got, tt.want) {
				t.Errorf("ChordSteps(%s)\n got  %v\n want %v", tt.value, got, tt.want)
			}
		})
	}
}

func stepStrings(steps []Step) []string {
	out := make([]string, len(steps))
	for i, s := range steps {
		out[i] = s.String()
	}
	return out
}

// For m modifiers and k keys the key events are m downs, k down/up pairs,
// then m ups.
func TestChordEventCount(t *testing.T) {
	for _, value := range []string{"CTRL+A", "CTRL+SHIFT+A", "CTRL+ALT+SHIFT+A+B", "WIN+R", "SHIFT+F1+F2+F3"} {
		c, _ := keys.ParseChord(value)
		m, k := len(c.Modifiers), len(c.Keys)

		var events []Step
		for _, s := range ChordSteps(c) {
			if s.Op == OpKeyDown || s.Op == OpKeyUp {
				events = append(events, s)
			}
		}
		if len(events) != 2*m+2*k {
			t.Errorf("%s: %d events, want %d", value, len(events), 2*m+2*k)
			continue
		}
		for i := 0; i < m; i++ {
			if events[i] != Down(c.Modifiers[i]) || events[m+2*k+i] != Up(c.Modifiers[i]) {
				t.Errorf("%s: modifier %d out of place", value, i)
			}
		}
		for j := 0; j < k; j++ {
			if events[m+2*j] != Down(c.Keys[j]) || events[m+2*j+1] != Up(c.Keys[j]) {
				t.Errorf("%s: key %d out of place", value, j)
			}
		}
	}
}

func TestStepsSendValue(t *testing.T) {
	tests := []struct {
		value string
		want  []string
	}{
		{"Hello,CTRL+A", []string{
			`text "Hello"`, "wait 50ms",
			"down LCONTROL", "wait 100ms", "down VK_A", "wait 50ms", "up VK_A", "wait 100ms", "up LCONTROL",
		}},
		{",ENTER", []string{"wait 50ms", "down RETURN", "up RETURN"}},
		{"just,text", []string{`text "just,text"`}},
	}
	for _, tt := range tests {
		got := stepStrings(Steps(action.ParseValue(layout.ActionSendValue, tt.value)))
		if !slices.Equal(got, tt.want) {
			t.Errorf("Steps(%q)\n got  %v\n want %v", tt.value, got, tt.want)
		}
	}

	if Duration(Steps(action.ParseValue(layout.ActionSendKey, "CTRL+C"))) != 250*time.Millisecond {
		t.Error("CTRL+C should take 250ms")
	}
}

func TestExecuteChord(t *testing.T) {
	e, tl, _ := newTestEngine()
	e.Execute(context.Background(), button(layout.ActionCommandKey, "CTRL+C"))

	want := []string{
		"down LCONTROL", "wait 100ms",
		"down VK_C", "wait 50ms", "up VK_C",
		"wait 100ms", "up LCONTROL",
	}
	if got := tl.log(); !slices.Equal(got, want) {
		t.Errorf("timeline = %v", got)
	}
}

func TestExecuteText(t *testing.T) {
	e, tl, _ := newTestEngine()
	e.Execute(context.Background(), button(layout.ActionSendValue, "just,text"))
	if got := tl.log(); !slices.Equal(got, []string{"text just,text"}) {
		t.Errorf("timeline = %v", got)
	}

	for _, ws := range []string{" ", "\t", "  "} {
		e, tl, _ := newTestEngine()
		e.Execute(context.Background(), button(layout.ActionSendValue, ws))
		if got := tl.log(); !slices.Equal(got, []string{"text " + ws}) {
			t.Errorf("SendValue %q timeline = %q", ws, got)
		}
	}
}

func TestExecuteWhitespaceCommand(t *testing.T) {
	e, _, fl := newTestEngine()
	var commands []string
	e.OnCommand(func(c string) { commands = append(commands, c) })

	e.Execute(context.Background(), button(layout.ActionRunCommand, " "))

	if !slices.Equal(commands, []string{" "}) {
		t.Errorf("commands = %q", commands)
	}
	if len(fl.launched) != 0 {
		t.Errorf("launched = %v", fl.launched)
	}
}

func TestExecuteNoOps(t *testing.T) {
	e, tl, fl := newTestEngine()
	var commands []string
	e.OnCommand(func(c string) { commands = append(commands, c) })

	for _, b := range []layout.Button{
		button(layout.ActionSendKey, "CTRL+BOGUS"),
		button(layout.ActionSendKey, ""),
		button("Unknown", "x"),
		button(layout.ActionRunCommand, ""),
		button(layout.ActionSendKey, " "),
	} {
		e.Execute(context.Background(), b)
	}

	if len(tl.log()) != 0 || len(commands) != 0 || len(fl.launched) != 0 {
		t.Errorf("no-ops had effects: timeline=%v commands=%v launched=%v", tl.log(), commands, fl.launched)
	}
}

func TestExecuteNavigate(t *testing.T) {
	e, tl, fl := newTestEngine()
	var commands []string
	e.OnCommand(func(c string) { commands = append(commands, c) })

	e.Execute(context.Background(), button(layout.ActionNavigate, "Commands"))

	if !slices.Equal(commands, []string{"Navigate:Commands"}) {
		t.Errorf("commands = %v", commands)
	}
	if len(tl.log()) != 0 || len(fl.launched) != 0 {
		t.Error("navigate injected or launched")
	}
}

func TestExecuteRunCommand(t *testing.T) {
	tests := []struct {
		value  string
		launch bool
	}{
		{"NextPage", false},
		{"EXIT", false},
		{"/usr/bin/xterm", true},
		{`C:\Tools\drawer.exe`, true},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			e, _, fl := newTestEngine()
			var order []string
			e.OnCommand(func(c string) {
				fl.mu.Lock()
				launchedBefore := len(fl.launched)
				fl.mu.Unlock()
				if launchedBefore != 0 {
					t.Error("command emitted after launch")
				}
				order = append(order, "command "+c)
			})

			e.Execute(context.Background(), button(layout.ActionRunCommand, tt.value))

			if !slices.Equal(order, []string{"command " + tt.value}) {
				t.Errorf("commands = %v", order)
			}
			if got := len(fl.launched) == 1; got != tt.launch {
				t.Errorf("launched = %v, want %v", fl.launched, tt.launch)
			}
		})
	}
}

func TestLaunchFailureIsSwallowed(t *testing.T) {
	e, _, fl := newTestEngine()
	fl.err = errors.New("permission denied")
	var commands []string
	e.OnCommand(func(c string) { commands = append(commands, c) })

	e.Execute(context.Background(), button(layout.ActionRunCommand, "/nope/tool.sh"))
	e.Execute(context.Background(), button(layout.ActionRunCommand, "NextPage"))

	if !slices.Equal(commands, []string{"/nope/tool.sh", "NextPage"}) {
		t.Errorf("commands = %v", commands)
	}
}

func TestNilLauncher(t *testing.T) {
	tl := &timeline{}
	e := New(Config{Injector: tl, Sleeper: tl})
	fired := false
	e.OnCommand(func(string) { fired = true })
	e.Execute(context.Background(), button(layout.ActionRunCommand, "/bin/true"))
	if !fired {
		t.Error("command not emitted without a launcher")
	}
}

func TestCancelledChordReleasesModifiers(t *testing.T) {
	tl := &timeline{cancelAfter: 2}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	tl.cancel = cancel

	e := New(Config{Injector: tl, Sleeper: tl})
	e.Execute(ctx, button(layout.ActionSendKey, "CTRL+SHIFT+A"))

	// The second wait is the 50ms hold of A: A and both modifiers are down.
	want := []string{
		"down LCONTROL", "down LSHIFT", "wait 100ms",
		"down VK_A",
		"up LCONTROL", "up LSHIFT", "up VK_A",
	}
	if got := tl.log(); !slices.Equal(got, want) {
		t.Errorf("timeline\n got  %v\n want %v", got, want)
	}
}

func TestCancelledBeforeStart(t *testing.T) {
	tl := &timeline{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	e := New(Config{Injector: tl, Sleeper: tl})
	e.Execute(ctx, button(layout.ActionSendKey, "CTRL+A"))
	if got := tl.log(); len(got) != 0 {
		t.Errorf("timeline = %v, want nothing", got)
	}
}

func TestInjectionErrorContinues(t *testing.T) {
	tl := &timeline{failOn: "down VK_A"}
	e := New(Config{Injector: tl, Sleeper: tl})
	e.Execute(context.Background(), button(layout.ActionSendKey, "CTRL+A"))

	got := tl.log()
	if got[len(got)-1] != "up LCONTROL" {
		t.Errorf("modifier not released after failure: %v", got)
	}
}

// slowInjector tracks how many sequences overlap.
type slowInjector struct {
	mu      sync.Mutex
	active  int
	overlap bool
	downs   int
}

func (s *slowInjector) KeyDown(context.Context, keys.Code) error {
	s.mu.Lock()
	s.active++
	s.downs++
	if s.active > 1 {
		s.overlap = true
	}
	s.mu.Unlock()
	return nil
}

func (s *slowInjector) KeyUp(context.Context, keys.Code) error {
	s.mu.Lock()
	s.active--
	s.mu.Unlock()
	return nil
}

func (s *slowInjector) TypeText(context.Context, string) error { return nil }

func TestExecuteSerializes(t *testing.T) {
	inj := &slowInjector{}
	sleep := SleeperFunc(func(ctx context.Context, d time.Duration) error {
		time.Sleep(time.Millisecond)
		return nil
	})
	e := New(Config{Injector: inj, Sleeper: sleep})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			e.Execute(context.Background(), button(layout.ActionSendKey, "A+B"))
		}()
	}
	wg.Wait()

	if inj.overlap {
		t.Error("two sequences were in flight at once")
	}
	if inj.downs != 16 {
		t.Errorf("downs = %d, want 16", inj.downs)
	}
}

func TestRealSleeper(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := RealSleeper.Sleep(ctx, time.Hour); !errors.Is(err, context.Canceled) {
		t.Errorf("Sleep(cancelled) = %v", err)
	}
	if err := RealSleeper.Sleep(context.Background(), time.Millisecond); err != nil {
		t.Errorf("Sleep() = %v", err)
	}
}

func TestStepString(t *testing.T) {
	if got := Type("a").String(); !strings.HasPrefix(got, "text") {
		t.Errorf("String() = %q", got)
	}
	if got := Wait(SettleDelay).String(); got != "wait 100ms" {
		t.Errorf("String() = %q", got)
	}
}
