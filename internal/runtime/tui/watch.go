package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/muurk/macropad/internal/router"
)

// watcher turns router notifications into tea messages. Router handlers run
// with the router locked, so they only set a pending flag on a one-slot
// channel; the model reads the snapshot itself. Bursts collapse into one
// message carrying nothing but "look again".
type watcher struct {
	changes chan struct{}
	exits   chan struct{}
	done    chan struct{}
	unsubs  []func()
}

func newWatcher(r *router.Router) *watcher {
	w := &watcher{
		changes: make(chan struct{}, 1),
		exits:   make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
	w.unsubs = []func(){
		r.OnPageChange(func(*router.Snapshot) { signal(w.changes) }),
		r.OnExit(func() { signal(w.exits) }),
	}
	return w
}

func signal(ch chan struct{}) {
	select {
	case ch <- struct{}{}:
	default:
	}
}

func (w *watcher) nextChange() tea.Msg {
	select {
	case <-w.changes:
		return pageChangedMsg{}
	case <-w.done:
		return nil
	}
}

func (w *watcher) nextExit() tea.Msg {
	select {
	case <-w.exits:
		return exitMsg{}
	case <-w.done:
		return nil
	}
}

func (w *watcher) stop() {
	for _, u := range w.unsubs {
		u()
	}
	select {
	case <-w.done:
	default:
		close(w.done)
	}
}
