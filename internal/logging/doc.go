// Package logging provides structured logging for macropad.
//
// This package wraps a package-global zap logger with convenience functions
// for the common logging patterns of the runtime: action execution, input
// injection, command notifications, page changes, process launches and
// remote-control connections.
//
// # Log Levels
//
//   - Debug: every injected key event and text payload
//   - Info: actions, commands, page changes, remote connections
//   - Warn: swallowed failures (process launch, auto-load decode errors)
//   - Error: failures surfaced to the user
//
// # Configuration
//
// Logging is silent by default. Set MACROPAD_LOG_LEVEL or pass --log-level:
//
//	if err := logging.Initialize("debug"); err != nil {
//	    return err
//	}
//	defer logging.Sync()
//
// The terminal runtime owns stdout, so it logs to a file with InitializeTo.
//
// # Thread Safety
//
// All logging functions are safe for concurrent use once Initialize has
// returned.
package logging
