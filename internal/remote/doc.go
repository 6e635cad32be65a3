// Package remote lets other devices drive a running macropad over WebSocket.
//
// # Endpoint
//
// HTTP GET /ws upgrades to a WebSocket carrying one JSON object per text
// frame. Requests:
//
//	{"type":"press","button":2}            press button 2 on the active page
//	{"type":"press","page":1,"button":0}   same, only if page 1 is active
//	{"type":"command","value":"NextPage"}  run a command (EXIT, Navigate:<page>, ...)
//	{"type":"state"}                       ask for the active page
//
// Replies:
//
//	{"type":"page","layout":"..","page":"Main","index":0,"pages":2,"buttons":[..]}
//	{"type":"exit","index":-1}
//	{"type":"error","index":-1,"error":"no such button: 9 on page \"Main\""}
//
// A page reply is sent on connect, on request and after every page change.
// Presses and commands are queued on the same dispatcher as local input,
// so remote and local activations never interleave.
//
// # Lifecycle
//
// Each connection runs a read pump and a write pump. The server pings every
// 54s and drops a peer that has not answered within 60s. Handling EXIT
// broadcasts an exit reply and shuts the server down.
package remote
