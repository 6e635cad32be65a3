// Package discovery advertises and locates macropad runtimes over mDNS.
//
// A runtime started with `macropad serve --advertise` registers itself as a
// "_macropad._tcp" service in the "local." domain. Its TXT records carry the
// active layout name, the WebSocket path and the build version:
//
//	layout=Example Keyboard
//	path=/ws
//	version=v0.3.0
//
// # Usage Example
//
//	scanner := discovery.NewScanner()
//	scanner.Timeout = 3 * time.Second
//	runtimes, err := scanner.Scan(ctx)
//	if err != nil {
//	    return err
//	}
//	for _, rt := range runtimes {
//	    fmt.Println(rt, rt.URL())
//	}
//
// # Network Requirements
//
// - Requires multicast support on the network interface
// - Runtimes must be on the same local network segment
// - Firewall must allow mDNS (UDP port 5353)
package discovery
