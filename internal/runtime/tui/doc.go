// Package tui is the terminal host for a running layout.
//
// The screen shows the page strip, the active page's buttons as colored
// tiles and the interpreted action of the selected tile. Enter or a digit
// presses a button; tab and shift+tab send NextPage and PreviousPage. Every
// activation is queued on the engine dispatcher, the same path remote
// presses take, and page changes come back from the router.
//
// Keystrokes are injected into whichever window has focus. With the
// xdotool backend that is usually the terminal running this screen, so the
// TUI is most useful with the dryrun backend or alongside `serve`.
package tui
