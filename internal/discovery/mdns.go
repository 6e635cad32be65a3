package discovery

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/grandcat/zeroconf"
	"go.uber.org/zap"

	"github.com/muurk/macropad/internal/logging"
)

const (
	// ServiceType is the mDNS service type advertised by macropad runtimes
	ServiceType = "_macropad._tcp"

	// ServiceDomain is the mDNS domain (typically "local.")
	ServiceDomain = "local."

	// DefaultScanTimeout is the default timeout for runtime discovery
	DefaultScanTimeout = 5 * time.Second
)

// Scanner handles mDNS runtime discovery
type Scanner struct {
	// Timeout is the maximum time to wait for responses
	Timeout time.Duration
}

// NewScanner creates a new mDNS scanner with default settings
func NewScanner() *Scanner {
	return &Scanner{
		Timeout: DefaultScanTimeout,
	}
}

// Scan browses for runtimes until the timeout or ctx expires and returns
// them sorted by instance name. Repeated announcements of one instance are
// collapsed to the latest.
func (s *Scanner) Scan(ctx context.Context) ([]*Runtime, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout())
	defer cancel()

	resolver, err := zeroconf.NewResolver(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create mDNS resolver: %w", err)
	}

	var (
		mu    sync.Mutex
		found = make(map[string]*Runtime)
	)
	entries := make(chan *zeroconf.ServiceEntry)
	go func() {
		for entry := range entries {
			rt := parseServiceEntry(entry)
			if rt == nil {
				continue
			}
			mu.Lock()
			found[rt.Instance] = rt
			mu.Unlock()
		}
	}()

	if err := resolver.Browse(ctx, ServiceType, ServiceDomain, entries); err != nil {
		return nil, fmt.Errorf("failed to browse for mDNS services: %w", err)
	}

	<-ctx.Done()

	mu.Lock()
	defer mu.Unlock()
	runtimes := make([]*Runtime, 0, len(found))
	for _, rt := range found {
		runtimes = append(runtimes, rt)
	}
	sort.Slice(runtimes, func(i, j int) bool { return runtimes[i].Instance < runtimes[j].Instance })

	logging.Debug("mDNS scan finished", zap.Int("runtimes", len(runtimes)))
	return runtimes, nil
}

// Find waits for the runtime with the given instance name (case-insensitive)
func (s *Scanner) Find(ctx context.Context, instance string) (*Runtime, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout())
	defer cancel()

	resolver, err := zeroconf.NewResolver(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create mDNS resolver: %w", err)
	}

	entries := make(chan *zeroconf.ServiceEntry)
	match := make(chan *Runtime, 1)
	go func() {
		for entry := range entries {
			rt := parseServiceEntry(entry)
			if rt != nil && strings.EqualFold(rt.Instance, instance) {
				select {
				case match <- rt:
				default:
				}
				cancel()
			}
		}
	}()

	if err := resolver.Browse(ctx, ServiceType, ServiceDomain, entries); err != nil {
		return nil, fmt.Errorf("failed to browse for mDNS services: %w", err)
	}

	select {
	case rt := <-match:
		return rt, nil
	case <-ctx.Done():
		select {
		case rt := <-match:
			return rt, nil
		default:
		}
		return nil, fmt.Errorf("runtime %q not found within %s", instance, s.timeout())
	}
}

func (s *Scanner) timeout() time.Duration {
	if s.Timeout <= 0 {
		return DefaultScanTimeout
	}
	return s.Timeout
}

// parseServiceEntry converts a zeroconf service entry to a Runtime.
// Returns nil when the entry carries no usable address.
func parseServiceEntry(entry *zeroconf.ServiceEntry) *Runtime {
	if entry == nil || entry.Instance == "" || entry.Port == 0 {
		return nil
	}

	var ip string
	if len(entry.AddrIPv4) > 0 {
		ip = entry.AddrIPv4[0].String()
	} else if len(entry.AddrIPv6) > 0 {
		ip = entry.AddrIPv6[0].String()
	}
	if ip == "" {
		return nil
	}

	return &Runtime{
		Instance:     entry.Instance,
		Host:         entry.HostName,
		IP:           ip,
		Port:         entry.Port,
		TXT:          parseTXT(entry.Text),
		DiscoveredAt: time.Now(),
	}
}

// parseTXT splits "key=value" records. A record without "=" maps to "".
func parseTXT(records []string) map[string]string {
	txt := make(map[string]string, len(records))
	for _, rec := range records {
		k, v, _ := strings.Cut(rec, "=")
		if k == "" {
			continue
		}
		txt[k] = v
	}
	return txt
}

// TXT builds the TXT records a runtime advertises.
func TXT(layoutName, version string) []string {
	return []string{
		TXTLayout + "=" + layoutName,
		TXTPath + "=" + DefaultPath,
		TXTVersion + "=" + version,
	}
}

// registerFunc matches zeroconf.Register; swapped in tests.
var registerFunc = func(instance string, port int, txt []string) (shutdowner, error) {
	return zeroconf.Register(instance, ServiceType, ServiceDomain, port, txt, nil)
}

type shutdowner interface {
	Shutdown()
}

// Advertise publishes the runtime on the local network until ctx is done.
func Advertise(ctx context.Context, instance string, port int, txt []string) error {
	if instance == "" {
		return fmt.Errorf("advertise: instance name is required")
	}
	if port <= 0 || port > 65535 {
		return fmt.Errorf("advertise: invalid port %d", port)
	}

	server, err := registerFunc(instance, port, txt)
	if err != nil {
		return fmt.Errorf("failed to register mDNS service: %w", err)
	}
	logging.Info("Advertising runtime",
		zap.String("instance", instance),
		zap.String("service", ServiceType),
		zap.Int("port", port),
		zap.Strings("txt", txt),
	)

	<-ctx.Done()
	server.Shutdown()
	logging.Debug("mDNS advertisement stopped", zap.String("instance", instance))
	return nil
}
