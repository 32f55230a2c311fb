// Package views carries the invalidation signal telling the presentation
// layer that named cached views are stale and must be recomputed on next
// read. Repositories publish after every successful mutation.
package views

import "sync"

// Named views known to the presentation layer
const (
	Leads     = "leads"
	Dashboard = "dashboard"
	Quotes    = "quotes"
	Settings  = "settings"
)

// Bus fans invalidation events out to subscribers. Safe for concurrent use.
type Bus struct {
	mu   sync.RWMutex
	subs []func(view string)
}

// NewBus creates an empty invalidation bus
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers fn to be called with each invalidated view name.
// Callbacks run synchronously on the publishing goroutine and must be cheap.
func (b *Bus) Subscribe(fn func(view string)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subs = append(b.subs, fn)
}

// Invalidate marks the named views stale. A nil Bus is a no-op so callers
// never have to guard the publish.
func (b *Bus) Invalidate(names ...string) {
	if b == nil {
		return
	}
	b.mu.RLock()
	subs := make([]func(view string), len(b.subs))
	copy(subs, b.subs)
	b.mu.RUnlock()

	for _, name := range names {
		for _, fn := range subs {
			fn(name)
		}
	}
}
