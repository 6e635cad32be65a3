package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/muurk/macropad/internal/action"
	"github.com/muurk/macropad/internal/config"
	"github.com/muurk/macropad/internal/discovery"
	"github.com/muurk/macropad/internal/layout"
	"github.com/muurk/macropad/internal/logging"
	"github.com/muurk/macropad/internal/remote"
	"github.com/muurk/macropad/internal/runtime/tui"
	"github.com/muurk/macropad/internal/ui"
	"github.com/muurk/macropad/internal/version"
)

// Remote endpoint flags, shared by run --serve and serve
var (
	remoteAddr   string
	advertise    bool
	instanceName string
)

func addRemoteFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&remoteAddr, "addr", "", "Remote listen address (default: preferences, :8765)")
	cmd.Flags().BoolVar(&advertise, "advertise", false, "Announce the remote endpoint over mDNS (default: preferences)")
	cmd.Flags().StringVar(&instanceName, "name", "", "mDNS instance name (default: macropad-<hostname>)")
}

// Run command
var serveRemote bool

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a layout in the terminal",
	Long: `Run a layout with the interactive terminal screen.

The screen shows the page strip and the buttons of the current page.
Pressing enter or a digit activates a button; tab and shift+tab change
pages. Keystrokes are injected into the focused window, so with the
xdotool backend pair this with --serve and drive it from a remote, or
use --backend dryrun to try a layout safely.`,
	Example: `  # Run the layout found next to the working directory
  macropad run

  # Try a layout without injecting anything
  macropad run --layout ./keyboard.yaml --backend dryrun

  # Also accept presses from remotes on the network
  macropad run --serve --advertise`,
	RunE: runRun,
}

func init() {
	runCmd.Flags().BoolVar(&serveRemote, "serve", false, "Also start the remote WebSocket endpoint")
	addRemoteFlags(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	registry, prefs := loadPreferences()
	if err := setupLogging(prefs, true); err != nil {
		return err
	}

	l, path, err := resolveLayout(prefs)
	if err != nil {
		return fmt.Errorf("failed to load layout: %w", err)
	}
	// The screen owns stdout; dry-run injections only reach the log.
	s, err := newSession(l, path, prefs, io.Discard)
	if err != nil {
		return err
	}
	defer s.close()
	remember(registry, path)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	s.start(ctx)

	var wg sync.WaitGroup
	if serveRemote {
		srv := remote.New(remoteConfig(cmd, prefs), s.Router, s.Dispatcher)
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := srv.ListenAndServe(ctx); err != nil {
				logging.Error("Remote server failed", zap.Error(err))
			}
		}()
		startAdvertising(ctx, &wg, cmd, prefs, l.Name)
	}

	model := tui.NewAppModel(s.Router, s.Dispatcher, s.reload())
	defer model.Close()

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err = p.Run()

	stop()
	wg.Wait()

	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("runtime screen failed: %w", err)
	}
	return nil
}

// Serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run a layout headless behind the remote endpoint",
	Long: `Run a layout without a screen and accept presses over WebSocket.

Remotes connect to ws://<host>:<port>/ws, receive the current page and
every page change, and send button presses. An EXIT command from any
button stops the server. With --advertise the endpoint is announced as
_macropad._tcp so 'macropad-cfg scan' can find it.`,
	Example: `  # Serve the auto-detected layout on the default port
  macropad serve

  # Serve on a custom port and announce it on the network
  macropad serve --addr :9000 --advertise --name desk-pad

  # Watch what remotes would do without injecting keys
  macropad serve --backend dryrun --log-level debug`,
	RunE: runServe,
}

func init() {
	addRemoteFlags(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	printer := ui.NewPrinter(cmd.OutOrStdout())

	registry, prefs := loadPreferences()
	if err := setupLogging(prefs, false); err != nil {
		return err
	}

	l, path, err := resolveLayout(prefs)
	if err != nil {
		printer.PrintError("Failed to load layout", err,
			"Check the file with: macropad-cfg validate <path>",
			"Create a sample with: macropad-cfg example",
		)
		return fmt.Errorf("failed to load layout: %w", err)
	}
	s, err := newSession(l, path, prefs, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	defer s.close()
	remember(registry, path)

	cfg := remoteConfig(cmd, prefs)
	printer.PrintHeader("Remote Server", "macropad serve",
		ui.P("Layout", l.Name),
		ui.P("Source", sourceLabel(path)),
		ui.P("Address", cfg.Addr+cfg.Path),
		ui.P("Backend", s.Backend.Name()),
	)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	s.start(ctx)

	srv := remote.New(cfg, s.Router, s.Dispatcher)
	var wg sync.WaitGroup
	startAdvertising(ctx, &wg, cmd, prefs, l.Name)

	err = srv.ListenAndServe(ctx)
	stop()
	wg.Wait()

	if err != nil {
		printer.PrintError("Remote server failed", err,
			"Another process may be using the port; try --addr :0",
		)
		return err
	}

	reason := "interrupted"
	select {
	case <-srv.Exited():
		reason = "EXIT command"
	default:
	}
	printer.PrintSuccess("Remote server stopped", ui.P("Reason", reason))
	return nil
}

// Exec command
var (
	execAction string
	execValue  string
)

var execCmd = &cobra.Command{
	Use:   "exec [page] [button]",
	Short: "Execute one button and exit",
	Long: `Execute a single button action and exit.

The button is chosen by page and button, each given as a 1-based number
or a name (page name, button text). Alternatively --action and --value
run an ad-hoc action that is not part of any layout.`,
	Example: `  # Press the third button of the first page
  macropad exec 1 3

  # Press a button by name, printing instead of injecting
  macropad exec Main Copy --backend dryrun

  # Run an ad-hoc chord
  macropad exec --action CommandKey --value "CTRL+SHIFT+T" --backend dryrun`,
	Args: cobra.MaximumNArgs(2),
	RunE: runExec,
}

func init() {
	execCmd.Flags().StringVar(&execAction, "action", "", "Ad-hoc action kind (SendKey, CommandKey, SendValue, Navigate, RunCommand)")
	execCmd.Flags().StringVar(&execValue, "value", "", "Value for --action")
}

func runExec(cmd *cobra.Command, args []string) error {
	if execAction == "" && len(args) != 2 {
		return fmt.Errorf("exec needs <page> <button> or --action")
	}
	cmd.SilenceUsage = true
	printer := ui.NewPrinter(cmd.OutOrStdout())

	_, prefs := loadPreferences()
	if err := setupLogging(prefs, false); err != nil {
		return err
	}

	l, path, err := resolveLayout(prefs)
	if err != nil {
		return fmt.Errorf("failed to load layout: %w", err)
	}

	b, err := selectButton(l, args)
	if err != nil {
		printer.PrintError("Button not found", err,
			"List pages and buttons with: macropad-cfg show",
		)
		return err
	}

	s, err := newSession(l, path, prefs, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	defer s.close()

	exited := false
	unsubscribe := s.Router.OnExit(func() { exited = true })
	defer unsubscribe()

	printer.PrintHeader("Execute Button", "macropad exec",
		ui.P("Layout", l.Name),
		ui.P("Button", b.Text),
		ui.P("Action", action.Describe(action.Parse(b))),
		ui.P("Backend", s.Backend.Name()),
	)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	s.Engine.Execute(ctx, b)

	if ctx.Err() != nil {
		printer.PrintWarning("Interrupted", ui.P("Button", b.Text))
		return ctx.Err()
	}
	details := []ui.Param{ui.P("Page", s.Router.Current().PageName())}
	if exited {
		details = append(details, ui.P("Exit", "requested"))
	}
	printer.PrintSuccess("Executed "+b.Text, details...)
	return nil
}

// selectButton returns the ad-hoc button from --action or the button the
// args name.
func selectButton(l *layout.Layout, args []string) (layout.Button, error) {
	if execAction != "" {
		kind := layout.ActionKind(execAction)
		if !kind.Known() {
			return layout.Button{}, fmt.Errorf("unknown action %q (want one of %v)", execAction, layout.ActionKinds)
		}
		return layout.Button{Text: execAction, Action: kind, Value: execValue}, nil
	}

	pi := l.FindPage(args[0])
	if pi < 0 {
		return layout.Button{}, fmt.Errorf("no page %q in layout %q", args[0], l.Name)
	}
	page := &l.Pages[pi]
	bi := page.FindButton(args[1])
	if bi < 0 {
		return layout.Button{}, fmt.Errorf("no button %q on page %q", args[1], page.Name)
	}
	return page.Buttons[bi], nil
}

// remoteConfig applies --addr over the preferred address.
func remoteConfig(cmd *cobra.Command, prefs *config.Preferences) remote.Config {
	cfg := remote.DefaultConfig()
	switch {
	case cmd.Flags().Changed("addr"):
		cfg.Addr = remoteAddr
	case prefs.RemoteAddr != "":
		cfg.Addr = prefs.RemoteAddr
	}
	return cfg
}

// startAdvertising announces the endpoint in the background when --advertise
// or the preferences ask for it. Failures are logged; the runtime keeps
// serving without mDNS.
func startAdvertising(ctx context.Context, wg *sync.WaitGroup, cmd *cobra.Command, prefs *config.Preferences, layoutName string) {
	enabled := prefs.Advertise
	if cmd.Flags().Changed("advertise") {
		enabled = advertise
	}
	if !enabled {
		return
	}

	addr := remoteConfig(cmd, prefs).Addr
	port, err := portOf(addr)
	if err != nil {
		logging.Warn("Not advertising", zap.String("addr", addr), zap.Error(err))
		return
	}

	name := instanceName
	if name == "" {
		name = defaultInstanceName()
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := discovery.Advertise(ctx, name, port, discovery.TXT(layoutName, version.Version)); err != nil {
			logging.Warn("mDNS advertisement failed", zap.Error(err))
		}
	}()
}

// portOf extracts a fixed port from a listen address. Port 0 cannot be
// advertised.
func portOf(addr string) (int, error) {
	_, p, err := net.SplitHostPort(addr)
	if err != nil {
		return 0, err
	}
	port, err := strconv.Atoi(p)
	if err != nil {
		return 0, fmt.Errorf("invalid port %q", p)
	}
	if port == 0 {
		return 0, fmt.Errorf("port is chosen by the system")
	}
	return port, nil
}

func defaultInstanceName() string {
	host, err := os.Hostname()
	if err != nil || host == "" {
		return "macropad"
	}
	return "macropad-" + host
}

func sourceLabel(path string) string {
	if path == "" {
		return "built-in default"
	}
	return path
}
