// Package config manages the macropad user configuration file.
//
// The file holds preferences (layout to load, injection backend, remote
// listen address, mDNS advertisement), the recently opened layouts and
// remote runtimes remembered from network scans.
//
// # Configuration File Location
//
//   - Linux: $XDG_CONFIG_HOME/macropad/config.yaml or $HOME/.config/macropad/config.yaml
//   - macOS: $HOME/.config/macropad/config.yaml
//   - Windows: %LOCALAPPDATA%\macropad\config.yaml
//
// # Usage Example
//
//	registry, err := config.LoadRegistry()
//	if err != nil {
//	    return err
//	}
//	registry.Preferences.Backend = "dryrun"
//	registry.AddRecent("/home/me/layouts/keyboard.yaml")
//	if err := registry.Save(); err != nil {
//	    return err
//	}
//
// # Thread Safety
//
// The global registry uses sync.Once for safe initialization across goroutines.
// File operations are protected by a mutex to ensure atomic writes.
package config
