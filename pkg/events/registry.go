// Package events is a token based publish/subscribe registry for application wide notifications.
package events

import (
	"slices"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Event string

const (
	EventSelectionChanged Event = "selection-changed"
	EventDropCompleted    Event = "drop-completed"
)

// Token identifies one subscription. The zero Token is never issued.
type Token uuid.UUID

func (t Token) String() string {
	return uuid.UUID(t).String()
}

func (t Token) IsZero() bool {
	return t == Token{}
}

type Handler func(event Event, data any)

type subscriber struct {
	token   Token
	name    string
	event   Event
	handler Handler
}

// Registry delivers events synchronously, on the notifying goroutine,
// in subscription order. Handlers may subscribe and unsubscribe while being notified.
type Registry struct {
	logger *zap.Logger

	mu          sync.RWMutex
	subscribers []subscriber
	closed      bool
}

func NewRegistry(logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{logger: logger}
}

// Subscribe registers handler for event. The name is used in logs only.
// It returns the zero Token when the registry is closed.
func (r *Registry) Subscribe(name string, event Event, handler Handler) Token {
	if handler == nil {
		panic("handler is nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return Token{}
	}
	token := Token(uuid.New())
	r.subscribers = append(r.subscribers, subscriber{
		token:   token,
		name:    name,
		event:   event,
		handler: handler,
	})
	r.logger.Debug("subscribed",
		zap.String("name", name),
		zap.String("event", string(event)),
		zap.Stringer("token", token),
	)
	return token
}

// Unsubscribe removes the subscription. It reports false for unknown tokens.
func (r *Registry) Unsubscribe(token Token) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := slices.IndexFunc(r.subscribers, func(s subscriber) bool {
		return s.token == token
	})
	if i < 0 {
		return false
	}
	r.logger.Debug("unsubscribed",
		zap.String("name", r.subscribers[i].name),
		zap.Stringer("token", token),
	)
	r.subscribers = slices.Delete(r.subscribers, i, i+1)
	return true
}

// Notify calls every handler subscribed to event and returns how many were called.
func (r *Registry) Notify(event Event, data any) int {
	r.mu.RLock()
	var targets []subscriber
	for _, s := range r.subscribers {
		if s.event == event {
			targets = append(targets, s)
		}
	}
	r.mu.RUnlock()

	r.logger.Debug("notify", zap.String("event", string(event)), zap.Int("subscribers", len(targets)))
	for _, s := range targets {
		s.handler(event, data)
	}
	return len(targets)
}

// Count returns the number of live subscriptions.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.subscribers)
}

// Close drops every subscription; later Subscribe calls are ignored.
func (r *Registry) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	r.subscribers = nil
}
