// Package loading tracks the number of in-flight HTTP requests and
// broadcasts a boolean "anything outstanding" signal for progress UI.
package loading

import "sync"

// Signal counts in-flight requests and notifies subscribers on the
// idle/busy edges. It is an injectable value, not a package global, so
// tests can run independent instances.
//
// Subscribers are invoked synchronously under the Signal's lock so edges
// are always delivered in mutation order. Callbacks must be cheap and
// must not call back into the Signal; the TUI bridge just does a
// non-blocking channel send.
type Signal struct {
	mu       sync.Mutex
	count    int
	nextID   int
	handlers map[int]func(bool)
}

// NewSignal creates an idle Signal with no subscribers.
func NewSignal() *Signal {
	return &Signal{handlers: make(map[int]func(bool))}
}

// Start increments the in-flight counter. The 0→1 transition notifies
// every subscriber with true.
func (s *Signal) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.count++
	if s.count == 1 {
		s.notify(true)
	}
}

// Stop decrements the counter, floored at zero. The transition to zero
// notifies every subscriber with false. Extra Stop calls are ignored.
func (s *Signal) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.count == 0 {
		return
	}
	s.count--
	if s.count == 0 {
		s.notify(false)
	}
}

// Subscribe registers fn for every busy/idle edge and returns a disposer.
// Disposing twice is harmless.
func (s *Signal) Subscribe(fn func(bool)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.handlers[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.handlers, id)
		s.mu.Unlock()
	}
}

// Active reports whether any request is outstanding.
func (s *Signal) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.count > 0
}

func (s *Signal) notify(busy bool) {
	for _, fn := range s.handlers {
		fn(busy)
	}
}
