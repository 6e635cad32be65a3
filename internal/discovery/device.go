package discovery

import (
	"fmt"
	"net"
	"strconv"
	"time"
)

// TXT record keys published by a runtime
const (
	TXTLayout  = "layout"
	TXTPath    = "path"
	TXTVersion = "version"
)

// DefaultPath is the WebSocket path assumed when a runtime does not publish one
const DefaultPath = "/ws"

// Runtime is a macropad runtime found on the local network
type Runtime struct {
	// Instance is the advertised service instance name (e.g., "office-pad")
	Instance string

	// Host is the mDNS hostname (e.g., "office.local.")
	Host string

	// IP is the preferred address, IPv4 when one was announced
	IP string

	// Port is the remote-control port
	Port int

	// TXT holds the parsed TXT records
	TXT map[string]string

	// DiscoveredAt is when the runtime was seen
	DiscoveredAt time.Time
}

// String returns a human-readable representation of the runtime
func (r *Runtime) String() string {
	if layout := r.Get(TXTLayout); layout != "" {
		return fmt.Sprintf("%s [%s] at %s", r.Instance, layout, r.Addr())
	}
	return fmt.Sprintf("%s at %s", r.Instance, r.Addr())
}

// Addr returns host:port suitable for dialing
func (r *Runtime) Addr() string {
	return net.JoinHostPort(r.IP, strconv.Itoa(r.Port))
}

// URL returns the WebSocket URL of the runtime's remote-control endpoint
func (r *Runtime) URL() string {
	path := r.Get(TXTPath)
	if path == "" {
		path = DefaultPath
	}
	return "ws://" + r.Addr() + path
}

// Get retrieves a TXT value by key, or returns empty string if not found
func (r *Runtime) Get(key string) string {
	if r.TXT == nil {
		return ""
	}
	return r.TXT[key]
}
