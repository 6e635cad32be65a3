package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/muurk/macropad/internal/config"
	"github.com/muurk/macropad/internal/discovery"
	"github.com/muurk/macropad/internal/remote"
	"github.com/muurk/macropad/internal/ui"
)

// DefaultRemoteURL is used by the remote commands when neither --url nor
// --name is given.
const DefaultRemoteURL = "ws://localhost:8765/ws"

// replyWait bounds the wait for the reply to a request. Presses that do not
// change the page get none.
const replyWait = 2 * time.Second

func init() {
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(remoteCmd)
}

// Scan command
var scanTimeout int

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Find macropad runtimes on the network",
	Long: `Find runtimes started with 'macropad serve --advertise' using
mDNS/DNS-SD (_macropad._tcp).

Every runtime found is remembered in the configuration file so it can be
addressed later with 'macropad-cfg remote --name <instance>'.`,
	Example: `  # Scan with the preferred timeout
  macropad-cfg scan

  # Quick 2-second scan
  macropad-cfg scan --timeout 2`,
	Args: cobra.NoArgs,
	RunE: runScan,
}

func init() {
	scanCmd.Flags().IntVar(&scanTimeout, "timeout", 0, "Scan timeout in seconds (default: preferences, 5)")
}

func runScan(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	registry, err := config.LoadRegistry()
	if err != nil {
		return err
	}

	scanner := discovery.NewScanner()
	scanner.Timeout = scanDuration(registry.Preferences)

	printer := ui.NewPrinter(cmd.OutOrStdout())
	printer.PrintHeader("Network Scan", "macropad-cfg scan",
		ui.P("Service", discovery.ServiceType),
		ui.P("Timeout", scanner.Timeout.String()),
	)

	runtimes, err := scanner.Scan(cmd.Context())
	if err != nil {
		printer.PrintError("Scan failed", err)
		return fmt.Errorf("scan failed: %w", err)
	}

	if len(runtimes) == 0 {
		printer.PrintWarning("No runtimes found")
		printer.Println(ui.DescriptionStyle.Render(strings.Join([]string{
			"  - Start one with: macropad serve --advertise",
			"  - Check that this machine is on the same network segment",
			"  - Try increasing --timeout for slower networks",
		}, "\n")))
		return nil
	}

	for i, rt := range runtimes {
		registry.UpdateRuntimeSeen(rt.Instance, rt.Addr(), rt.Get(discovery.TXTLayout))
		label := rt.Instance
		if known := registry.GetRuntime(rt.Instance); known != nil && known.Nickname != "" {
			label = fmt.Sprintf("%s (%s)", known.Nickname, rt.Instance)
		}
		printer.Println(fmt.Sprintf("%d. %s", i+1, ui.PageTitleStyle.Render(label)))
		printer.Println(fmt.Sprintf("   Layout:  %s", rt.Get(discovery.TXTLayout)))
		printer.Println(fmt.Sprintf("   URL:     %s", rt.URL()))
		if v := rt.Get(discovery.TXTVersion); v != "" {
			printer.Println(fmt.Sprintf("   Version: %s", v))
		}
		printer.Newline()
	}

	if err := registry.Save(); err != nil {
		printer.PrintWarning("Could not remember runtimes", ui.P("Error", err.Error()))
	}
	printer.PrintSuccess(fmt.Sprintf("Found %d runtime(s)", len(runtimes)))
	return nil
}

func scanDuration(prefs *config.Preferences) time.Duration {
	switch {
	case scanTimeout > 0:
		return time.Duration(scanTimeout) * time.Second
	case prefs != nil && prefs.DiscoverTimeout > 0:
		return time.Duration(prefs.DiscoverTimeout) * time.Second
	default:
		return discovery.DefaultScanTimeout
	}
}

// Remote commands
var (
	remoteURL     string
	remoteName    string
	remotePage    int
	remoteTimeout time.Duration
)

var remoteCmd = &cobra.Command{
	Use:   "remote",
	Short: "Drive a running macropad over WebSocket",
	Long: `Send presses and navigation commands to a runtime started with
'macropad serve' or 'macropad run --serve'.

The runtime is addressed by --url, or by --name which looks the instance
up with mDNS (nicknames set with 'prefs nickname' work too). Without either,
` + DefaultRemoteURL + ` is used.

Only page navigation and EXIT are accepted as remote commands; launching
programs requires a button on the layout.`,
}

func init() {
	remoteCmd.PersistentFlags().StringVar(&remoteURL, "url", "", "Runtime WebSocket URL")
	remoteCmd.PersistentFlags().StringVar(&remoteName, "name", "", "Runtime mDNS instance name or nickname")
	remoteCmd.PersistentFlags().DurationVar(&remoteTimeout, "timeout", 5*time.Second, "How long to wait for the runtime")

	remotePressCmd.Flags().IntVar(&remotePage, "page", 0, "Page number the button is on (default: the current page)")

	remoteCmd.AddCommand(remoteStateCmd, remotePressCmd, remoteCommandCmd)
}

var remoteStateCmd = &cobra.Command{
	Use:   "state",
	Short: "Show the runtime's current page",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRemote(cmd, func(c *remote.Client) error { return c.State() })
	},
}

var remotePressCmd = &cobra.Command{
	Use:   "press <button>",
	Short: "Press a button on the current page",
	Long: `Press a button by its 1-based number. With --page the press is
rejected unless that page is the one currently shown.`,
	Example: `  # Press the first button of the current page
  macropad-cfg remote press 1

  # Press a button on a runtime found by mDNS
  macropad-cfg remote press 3 --name desk-pad`,
	Args: cobra.ExactArgs(1),
	RunE: runRemotePress,
}

func runRemotePress(cmd *cobra.Command, args []string) error {
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 {
		return fmt.Errorf("button must be a number from 1: %q", args[0])
	}
	return withRemote(cmd, func(c *remote.Client) error {
		if remotePage > 0 {
			return c.PressOn(remotePage-1, n-1)
		}
		return c.Press(n - 1)
	})
}

var remoteCommandCmd = &cobra.Command{
	Use:   "command <NextPage|PreviousPage|Navigate:<page>|EXIT>",
	Short: "Send a navigation command or EXIT",
	Example: `  # Switch pages
  macropad-cfg remote command NextPage
  macropad-cfg remote command Navigate:Media

  # Stop the runtime
  macropad-cfg remote command EXIT`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRemote(cmd, func(c *remote.Client) error { return c.Command(args[0]) })
	},
}

// withRemote connects, discards the greeting page, sends one request and
// prints the reply it provokes.
func withRemote(cmd *cobra.Command, send func(c *remote.Client) error) error {
	cmd.SilenceUsage = true
	ctx, cancel := context.WithTimeout(cmd.Context(), remoteTimeout)
	defer cancel()

	url, err := resolveRemoteURL(ctx)
	if err != nil {
		return err
	}

	printer := ui.NewPrinter(cmd.OutOrStdout())
	client, err := remote.Dial(ctx, url)
	if err != nil {
		printer.PrintError("Connection failed", err,
			"Is the runtime running with 'macropad serve'?",
			"Find runtimes with: macropad-cfg scan",
		)
		return err
	}
	defer client.Close()

	if _, err := client.Next(remoteTimeout); err != nil {
		return fmt.Errorf("no greeting from runtime: %w", err)
	}
	if err := send(client); err != nil {
		return err
	}

	reply, err := client.Next(replyWait)
	if err != nil {
		printer.PrintSuccess("Sent", ui.P("Runtime", url))
		return nil
	}
	return printReply(printer, url, reply)
}

func printReply(printer *ui.Printer, url string, reply remote.Reply) error {
	switch reply.Type {
	case remote.TypeError:
		err := fmt.Errorf("%s", reply.Error)
		printer.PrintError("Runtime rejected the request", err)
		return err
	case remote.TypeExit:
		printer.PrintSuccess("Runtime exited", ui.P("Runtime", url))
		return nil
	default:
		printer.PrintSuccess(reply.Layout,
			ui.P("Runtime", url),
			ui.P("Page", fmt.Sprintf("%d/%d %s", reply.Index+1, reply.Pages, reply.Page)),
		)
		for _, b := range reply.Buttons {
			printer.Println(fmt.Sprintf("   %2d  %s %s", b.Index+1,
				ui.ButtonTextStyle.Render(b.Text),
				ui.DescriptionStyle.Render(ui.ArrowMarker+" "+b.Description),
			))
		}
		return nil
	}
}

// resolveRemoteURL picks --url, then --name (registry nickname or mDNS
// instance), then the local default.
func resolveRemoteURL(ctx context.Context) (string, error) {
	if remoteURL != "" {
		return remoteURL, nil
	}
	if remoteName == "" {
		return DefaultRemoteURL, nil
	}

	instance := remoteName
	if registry, err := config.LoadRegistry(); err == nil {
		for name, rt := range registry.Runtimes {
			if strings.EqualFold(rt.Nickname, remoteName) {
				instance = name
				break
			}
		}
	}

	rt, err := discovery.NewScanner().Find(ctx, instance)
	if err != nil {
		return "", err
	}
	return rt.URL(), nil
}
