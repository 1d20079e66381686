// Package autosave binds a changing value to a save callback with
// debouncing. It is generic; preference fields are the main consumer.
package autosave

import (
	"sync"
	"time"

	"github.com/bep/debounce"
)

// Binder invokes save with the newest observed value once the value has
// been quiet for the debounce delay. Rapid successive changes collapse to
// one invocation carrying the latest value.
type Binder[T comparable] struct {
	mu        sync.Mutex
	last      T
	primed    bool
	closed    bool
	debounced func(func())
	save      func(T)
}

func New[T comparable](delay time.Duration, save func(T)) *Binder[T] {
	return &Binder[T]{
		debounced: debounce.New(delay),
		save:      save,
	}
}

// Observe feeds the current value. The first observation only sets the
// baseline and never triggers a save; unchanged values are ignored.
func (b *Binder[T]) Observe(value T) {
	b.mu.Lock()
	if b.closed || (b.primed && value == b.last) {
		b.mu.Unlock()
		return
	}
	if !b.primed {
		b.primed = true
		b.last = value
		b.mu.Unlock()
		return
	}
	b.last = value
	b.mu.Unlock()

	b.debounced(b.fire)
}

func (b *Binder[T]) fire() {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	value := b.last
	b.mu.Unlock()

	b.save(value)
}

// Close releases the binder: a timer already pending will no-op when it
// fires. Meant for UI teardown.
func (b *Binder[T]) Close() {
	b.mu.Lock()
	b.closed = true
	b.mu.Unlock()
}
