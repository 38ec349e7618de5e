package services

import (
	"sync"
	"time"
)

// SessionEventType names a session change.
type SessionEventType string

const (
	SessionSignedIn  SessionEventType = "SIGNED_IN"
	SessionSignedOut SessionEventType = "SIGNED_OUT"
)

// SessionEvent is delivered to subscribers when a user signs in or out.
type SessionEvent struct {
	Type   SessionEventType
	UserID uint
	At     time.Time
}

// SessionEvents fans session changes out to subscribers. Delivery is
// synchronous and may repeat, so handlers must be idempotent.
type SessionEvents struct {
	mu          sync.RWMutex
	nextID      int
	subscribers map[int]func(SessionEvent)
}

// NewSessionEvents creates an empty broker.
func NewSessionEvents() *SessionEvents {
	return &SessionEvents{subscribers: make(map[int]func(SessionEvent))}
}

// Subscribe registers fn and returns the function detaching it. Calling the
// returned function more than once is harmless.
func (e *SessionEvents) Subscribe(fn func(SessionEvent)) (unsubscribe func()) {
	e.mu.Lock()
	id := e.nextID
	e.nextID++
	e.subscribers[id] = fn
	e.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			e.mu.Lock()
			delete(e.subscribers, id)
			e.mu.Unlock()
		})
	}
}

// Publish delivers evt to every current subscriber.
func (e *SessionEvents) Publish(evt SessionEvent) {
	if evt.At.IsZero() {
		evt.At = time.Now().UTC()
	}
	e.mu.RLock()
	handlers := make([]func(SessionEvent), 0, len(e.subscribers))
	for _, fn := range e.subscribers {
		handlers = append(handlers, fn)
	}
	e.mu.RUnlock()

	for _, fn := range handlers {
		fn(evt)
	}
}

// SubscriberCount returns the number of attached subscribers.
func (e *SessionEvents) SubscriberCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.subscribers)
}
