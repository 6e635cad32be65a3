// Package engine executes button actions.
//
// # Sequences
//
// Key and text actions compile to an ordered list of Steps (key down, key up,
// text, wait) that a Player runs against an Injector. Building the list is
// pure, so the timing contract can be checked without a clock:
//
//	CTRL+SHIFT+T  down LCONTROL, down LSHIFT, wait 100ms,
//	              down VK_T, wait 50ms, up VK_T,
//	              wait 100ms, up LCONTROL, up LSHIFT
//
//	1234,ENTER    text "1234", wait 50ms, down RETURN, up RETURN
//
// # Commands
//
// Navigate and RunCommand actions publish a command string to OnCommand
// subscribers before anything else happens. A RunCommand value that looks
// like a path is then handed to the Launcher; failures are logged only.
//
// # Concurrency
//
// Execute holds a mutex for the whole action, so at most one sequence is
// in flight per Engine. Hosts that must not block (the terminal UI, the
// remote server) submit through a Dispatcher, whose single worker preserves
// arrival order.
package engine
