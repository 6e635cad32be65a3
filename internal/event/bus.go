// Package event provides a small typed observer list.
//
// The engine publishes command notifications on one, the router publishes
// page snapshots on another. Handlers run synchronously on the publishing
// goroutine in subscription order, so a handler must not block and must not
// call back into the publisher.
package event

import "sync"

type subscriber[T any] struct {
	id uint64
	fn func(T)
}

// Bus is a list of handlers for values of type T. The zero value is ready
// to use.
type Bus[T any] struct {
	mu   sync.RWMutex
	next uint64
	subs []subscriber[T]
}

// Subscribe registers fn and returns a function that removes it. Calling
// the returned function more than once is harmless.
func (b *Bus[T]) Subscribe(fn func(T)) func() {
	if fn == nil {
		return func() {}
	}

	b.mu.Lock()
	b.next++
	id := b.next
	b.subs = append(b.subs, subscriber[T]{id: id, fn: fn})
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { b.remove(id) })
	}
}

func (b *Bus[T]) remove(id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, s := range b.subs {
		if s.id == id {
			b.subs = append(b.subs[:i:i], b.subs[i+1:]...)
			return
		}
	}
}

// Publish calls every handler registered at the time of the call.
func (b *Bus[T]) Publish(v T) {
	b.mu.RLock()
	subs := b.subs
	b.mu.RUnlock()

	for _, s := range subs {
		s.fn(v)
	}
}

// Len returns the number of registered handlers.
func (b *Bus[T]) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}
