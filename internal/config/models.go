package config

import (
	"slices"
	"time"
)

// MaxRecent bounds Registry.Recent.
const MaxRecent = 10

// Registry represents the entire user configuration file.
// It stores preferences, recently used layouts and remote runtimes seen on
// the network.
type Registry struct {
	Version     int                 `yaml:"version"`
	Preferences *Preferences        `yaml:"preferences,omitempty"`
	Recent      []string            `yaml:"recent,omitempty"`   // Layout paths, most recent first
	Runtimes    map[string]*Runtime `yaml:"runtimes,omitempty"` // Keyed by mDNS instance name
}

// Preferences represents application-wide user preferences. Command-line
// flags override every field.
type Preferences struct {
	LayoutPath      string `yaml:"layout_path,omitempty"` // Layout loaded by `macropad run`; empty means auto-load
	Backend         string `yaml:"backend"`               // Injection backend: xdotool or dryrun
	RemoteAddr      string `yaml:"remote_addr"`           // Listen address for `macropad serve`
	Advertise       bool   `yaml:"advertise"`             // Announce the remote endpoint over mDNS
	DiscoverTimeout int    `yaml:"discover_timeout"`      // mDNS browse timeout in seconds
	LogLevel        string `yaml:"log_level,omitempty"`   // Used when MACROPAD_LOG_LEVEL is unset
}

// Runtime is remembered metadata for a remote macropad seen by `scan`.
type Runtime struct {
	Nickname string    `yaml:"nickname,omitempty"`
	Layout   string    `yaml:"layout,omitempty"`    // Layout name from the TXT record
	LastAddr string    `yaml:"last_addr,omitempty"` // host:port
	LastSeen time.Time `yaml:"last_seen,omitempty"`
}

// DefaultPreferences returns the preferences of a fresh install.
func DefaultPreferences() *Preferences {
	return &Preferences{
		Backend:         "xdotool",
		RemoteAddr:      ":8765",
		Advertise:       true,
		DiscoverTimeout: 5,
	}
}

// NewRegistry creates a new Registry with default values.
func NewRegistry() *Registry {
	return &Registry{
		Version:     1,
		Preferences: DefaultPreferences(),
		Runtimes:    make(map[string]*Runtime),
	}
}

// AddRecent moves path to the front of Recent, trimming the list to
// MaxRecent.
func (r *Registry) AddRecent(path string) {
	if path == "" {
		return
	}
	r.Recent = slices.DeleteFunc(r.Recent, func(p string) bool { return p == path })
	r.Recent = slices.Insert(r.Recent, 0, path)
	if len(r.Recent) > MaxRecent {
		r.Recent = r.Recent[:MaxRecent]
	}
}

// GetRuntime returns remembered metadata for instance, or nil.
func (r *Registry) GetRuntime(instance string) *Runtime {
	return r.Runtimes[instance]
}

// EnsureRuntime returns the entry for instance, creating it if needed.
func (r *Registry) EnsureRuntime(instance string) *Runtime {
	if r.Runtimes == nil {
		r.Runtimes = make(map[string]*Runtime)
	}
	if rt, exists := r.Runtimes[instance]; exists {
		return rt
	}
	rt := &Runtime{}
	r.Runtimes[instance] = rt
	return rt
}

// UpdateRuntimeSeen records a discovery of instance.
func (r *Registry) UpdateRuntimeSeen(instance, addr, layoutName string) {
	rt := r.EnsureRuntime(instance)
	rt.LastSeen = time.Now()
	rt.LastAddr = addr
	if layoutName != "" {
		rt.Layout = layoutName
	}
}

// SetRuntimeNickname sets a user-friendly name for instance.
func (r *Registry) SetRuntimeNickname(instance, nickname string) {
	r.EnsureRuntime(instance).Nickname = nickname
}
