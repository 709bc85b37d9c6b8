package event

import "sync"

// AuthChange is broadcast whenever the logged-in identity changes. It
// replaces the storefront's global auth-change event: the navigation state
// and the cart both react to it instead of polling storage.
type AuthChange struct {
	Username string
	Role     string
	LoggedIn bool
}

// Bus is a synchronous in-process fan-out. Delivery order between
// subscribers is unspecified; last writer wins, as in the source system.
type Bus struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]func(AuthChange)
}

func NewBus() *Bus {
	return &Bus{subs: make(map[int]func(AuthChange))}
}

// SubscribeAuthChange registers fn and returns an unsubscribe func.
func (b *Bus) SubscribeAuthChange(fn func(AuthChange)) func() {
	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.subs[id] = fn
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		delete(b.subs, id)
		b.mu.Unlock()
	}
}

// PublishAuthChange calls every subscriber with ev. Subscribers run on the
// caller's goroutine; the lock is not held during callbacks so a subscriber
// may unsubscribe itself.
func (b *Bus) PublishAuthChange(ev AuthChange) {
	b.mu.Lock()
	fns := make([]func(AuthChange), 0, len(b.subs))
	for _, fn := range b.subs {
		fns = append(fns, fn)
	}
	b.mu.Unlock()

	for _, fn := range fns {
		fn(ev)
	}
}
