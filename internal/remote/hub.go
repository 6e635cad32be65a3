package remote

import (
	"sync"

	"github.com/muurk/macropad/internal/logging"
)

// hub tracks live connections and fans replies out to them.
type hub struct {
	mu    sync.Mutex
	conns map[*conn]struct{}
}

func newHub() *hub {
	return &hub{conns: make(map[*conn]struct{})}
}

func (h *hub) add(c *conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.conns[c] = struct{}{}
}

func (h *hub) remove(c *conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.conns, c)
}

// broadcast sends r to every connection, dropping any that cannot keep up.
func (h *hub) broadcast(r Reply) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.conns {
		if !c.enqueue(r) {
			logging.LogRemote(c.id, c.addr, "dropped_slow_client")
			delete(h.conns, c)
			c.close()
		}
	}
}

// closeAll closes every connection after anything already queued is sent.
func (h *hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.conns {
		c.close()
		delete(h.conns, c)
	}
}

func (h *hub) len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.conns)
}
