package main

import (
	"fmt"
	"slices"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/muurk/macropad/internal/config"
	"github.com/muurk/macropad/internal/inject"
	"github.com/muurk/macropad/internal/logging"
	"github.com/muurk/macropad/internal/ui"
)

func init() {
	prefsCmd.AddCommand(prefsShowCmd, prefsSetCmd, prefsNicknameCmd)
	rootCmd.AddCommand(prefsCmd)
}

var prefsCmd = &cobra.Command{
	Use:   "prefs",
	Short: "Show or change user preferences",
	Long: `Show or change the preferences stored in the configuration file.
Command-line flags of 'macropad' override every preference.`,
}

var prefsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print preferences, recent layouts and known runtimes",
	Args:  cobra.NoArgs,
	RunE:  runPrefsShow,
}

func runPrefsShow(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	registry, err := config.LoadRegistry()
	if err != nil {
		return err
	}
	path, err := config.GetConfigPath()
	if err != nil {
		return err
	}

	printer := ui.NewPrinter(cmd.OutOrStdout())
	p := registry.Preferences
	printer.PrintHeader("Preferences", "macropad-cfg prefs show",
		ui.P("File", path),
		ui.P("layout_path", valueOr(p.LayoutPath, "(auto-detect)")),
		ui.P("backend", p.Backend),
		ui.P("remote_addr", p.RemoteAddr),
		ui.P("advertise", strconv.FormatBool(p.Advertise)),
		ui.P("discover_timeout", strconv.Itoa(p.DiscoverTimeout)),
		ui.P("log_level", valueOr(p.LogLevel, "(silent)")),
	)

	if len(registry.Recent) > 0 {
		printer.Println(ui.PageTitleStyle.Render("Recent layouts"))
		for i, r := range registry.Recent {
			printer.Println(fmt.Sprintf("   %2d  %s", i+1, r))
		}
		printer.Newline()
	}

	if len(registry.Runtimes) > 0 {
		printer.Println(ui.PageTitleStyle.Render("Known runtimes"))
		names := make([]string, 0, len(registry.Runtimes))
		for name := range registry.Runtimes {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			rt := registry.Runtimes[name]
			line := fmt.Sprintf("   %s  %s  %s", name, rt.LastAddr, rt.Layout)
			if rt.Nickname != "" {
				line += "  nickname=" + rt.Nickname
			}
			if !rt.LastSeen.IsZero() {
				line += ui.DescriptionStyle.Render("  seen " + rt.LastSeen.Format("2006-01-02 15:04"))
			}
			printer.Println(line)
		}
		printer.Newline()
	}
	return nil
}

var prefsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change one preference",
	Long: `Change one preference. Keys:

  layout_path       layout loaded by 'macropad run' ("" to auto-detect)
  backend           xdotool or dryrun
  remote_addr       listen address for 'macropad serve', e.g. :8765
  advertise         true or false
  discover_timeout  mDNS scan timeout in seconds
  log_level         debug, info, warn, error ("" for silent)`,
	Example: `  # Never inject by default
  macropad-cfg prefs set backend dryrun

  # Serve on another port and announce it
  macropad-cfg prefs set remote_addr :9000
  macropad-cfg prefs set advertise true`,
	Args: cobra.ExactArgs(2),
	RunE: runPrefsSet,
}

func runPrefsSet(cmd *cobra.Command, args []string) error {
	registry, err := config.LoadRegistry()
	if err != nil {
		return err
	}
	if err := setPreference(registry.Preferences, args[0], args[1]); err != nil {
		return err
	}
	cmd.SilenceUsage = true
	if err := registry.Save(); err != nil {
		return err
	}
	ui.NewPrinter(cmd.OutOrStdout()).PrintSuccess("Preference saved", ui.P(args[0], args[1]))
	return nil
}

// setPreference parses value into the preference named key.
func setPreference(p *config.Preferences, key, value string) error {
	switch key {
	case "layout_path":
		p.LayoutPath = value
	case "backend":
		if !slices.Contains(inject.Backends, value) {
			return fmt.Errorf("unknown backend %q (want one of %v)", value, inject.Backends)
		}
		p.Backend = value
	case "remote_addr":
		p.RemoteAddr = value
	case "advertise":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid advertise value (use true/false): %w", err)
		}
		p.Advertise = b
	case "discover_timeout":
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return fmt.Errorf("discover_timeout must be a positive number of seconds")
		}
		p.DiscoverTimeout = n
	case "log_level":
		value = strings.ToLower(value)
		if value != "" && logging.ParseLevel(value).String() != value {
			return fmt.Errorf("unknown log level %q (want debug, info, warn or error)", value)
		}
		p.LogLevel = value
	default:
		return fmt.Errorf("unknown preference %q", key)
	}
	return nil
}

var prefsNicknameCmd = &cobra.Command{
	Use:   "nickname <instance> <nickname>",
	Short: "Name a runtime found by scan",
	Example: `  # Address macropad-studio as "desk" from now on
  macropad-cfg prefs nickname macropad-studio desk
  macropad-cfg remote press 1 --name desk`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		registry, err := config.LoadRegistry()
		if err != nil {
			return err
		}
		cmd.SilenceUsage = true
		registry.SetRuntimeNickname(args[0], args[1])
		if err := registry.Save(); err != nil {
			return err
		}
		ui.NewPrinter(cmd.OutOrStdout()).PrintSuccess("Nickname saved",
			ui.P("Instance", args[0]),
			ui.P("Nickname", args[1]),
		)
		return nil
	},
}

func valueOr(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
