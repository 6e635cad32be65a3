// Package router tracks the current page of the active layout.
//
// The router consumes command notifications from the engine:
//
//	EXIT              any case; exit observers fire
//	Navigate:<page>   first page whose name matches case-insensitively
//	NextPage          next page, wrapping to the first
//	PreviousPage      previous page, wrapping to the last
//
// Anything else is ignored. State is published as immutable Snapshots
// swapped atomically, so a reader never sees a layout from one load paired
// with a page index from another.
package router

import (
	"strings"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/muurk/macropad/internal/action"
	"github.com/muurk/macropad/internal/event"
	"github.com/muurk/macropad/internal/layout"
	"github.com/muurk/macropad/internal/logging"
)

// Snapshot is the router state at one instant. It must not be modified.
type Snapshot struct {
	// Layout is a private copy of the active layout.
	Layout *layout.Layout
	// Index of the current page, -1 when the layout has no pages.
	Index int
	// Page points into Layout.Pages, nil when Index is -1.
	Page *layout.Page
}

// PageName returns the current page name or "".
func (s *Snapshot) PageName() string {
	if s == nil || s.Page == nil {
		return ""
	}
	return s.Page.Name
}

// PageCount returns the number of pages in the active layout.
func (s *Snapshot) PageCount() int {
	if s == nil || s.Layout == nil {
		return 0
	}
	return len(s.Layout.Pages)
}

func newSnapshot(l *layout.Layout, index int) *Snapshot {
	s := &Snapshot{Layout: l, Index: -1}
	if l != nil && index >= 0 && index < len(l.Pages) {
		s.Index = index
		s.Page = &l.Pages[index]
	}
	return s
}

// Router is the page state machine.
type Router struct {
	// mu orders transitions; readers use state without locking.
	mu    sync.Mutex
	state atomic.Pointer[Snapshot]

	changes event.Bus[*Snapshot]
	exits   event.Bus[struct{}]
}

// New creates a router showing the first page of l. l may be nil.
func New(l *layout.Layout) *Router {
	r := &Router{}
	r.state.Store(activate(l))
	return r
}

func activate(l *layout.Layout) *Snapshot {
	if l == nil {
		return newSnapshot(nil, -1)
	}
	return newSnapshot(l.Clone(), 0)
}

// Current returns the current snapshot. It is never nil.
func (r *Router) Current() *Snapshot {
	return r.state.Load()
}

// OnPageChange registers fn for every new snapshot, including layout
// replacement. Snapshots are delivered in order while the router is
// locked, so fn must not call back into the router.
func (r *Router) OnPageChange(fn func(*Snapshot)) (unsubscribe func()) {
	return r.changes.Subscribe(fn)
}

// OnExit registers fn for the EXIT command.
func (r *Router) OnExit(fn func()) (unsubscribe func()) {
	if fn == nil {
		return func() {}
	}
	return r.exits.Subscribe(func(struct{}) { fn() })
}

// SetActiveLayout replaces the layout and resets to its first page.
func (r *Router) SetActiveLayout(l *layout.Layout) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := activate(l)
	r.state.Store(s)

	name := ""
	if s.Layout != nil {
		name = s.Layout.Name
	}
	logging.Info("Active layout set",
		zap.String("layout", name),
		zap.Int("pages", s.PageCount()),
	)
	r.changes.Publish(s)
}

// Handle applies a command notification.
func (r *Router) Handle(command string) {
	if action.IsExit(command) {
		logging.Info("Exit requested")
		r.exits.Publish(struct{}{})
		return
	}

	switch {
	case strings.HasPrefix(command, action.NavigatePrefix):
		name := strings.TrimPrefix(command, action.NavigatePrefix)
		r.transition(func(s *Snapshot) int {
			i := s.Layout.PageIndex(name)
			if i < 0 {
				logging.Debug("Navigation target not found", zap.String("page", name))
				return s.Index
			}
			return i
		})
	case command == action.CommandNextPage:
		r.transition(func(s *Snapshot) int {
			return (s.Index + 1) % s.PageCount()
		})
	case command == action.CommandPreviousPage:
		r.transition(func(s *Snapshot) int {
			n := s.PageCount()
			return (s.Index - 1 + n) % n
		})
	}
}

// Select makes page index current. It reports false when index is out of
// range.
func (r *Router) Select(index int) bool {
	ok := false
	r.transition(func(s *Snapshot) int {
		if index < 0 || index >= s.PageCount() {
			return s.Index
		}
		ok = true
		return index
	})
	return ok
}

// transition computes the next index from the current snapshot. It does
// nothing when the layout has no pages or the index is unchanged.
func (r *Router) transition(next func(*Snapshot) int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur := r.state.Load()
	if cur.PageCount() == 0 {
		return
	}
	i := next(cur)
	if i == cur.Index {
		return
	}
	s := newSnapshot(cur.Layout, i)
	r.state.Store(s)

	logging.LogPageChange(s.Layout.Name, cur.PageName(), s.PageName(), s.Index)
	r.changes.Publish(s)
}
