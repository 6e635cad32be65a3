// Package action turns a button's action kind and value into an Action the
// engine can execute.
//
// Grammar per kind:
//
//	SendKey, CommandKey  "CTRL+C", "ALT+F4", "ENTER"
//	SendValue            "1234,ENTER" types 1234 then presses Return;
//	                     "just,text" is typed as is because "text" is
//	                     not a chord
//	Navigate             "Commands" emits "Navigate:Commands"
//	RunCommand           "NextPage", "EXIT", "/usr/bin/xterm"
//
// Parsing never returns an error. A value that cannot be executed yields a
// KindNone action carrying the reason, and executing it does nothing.
package action
