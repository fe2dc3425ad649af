package events

import (
	"sync"
)

// Handler receives events delivered synchronously by the broker.
type Handler func(event Event)

// Subscription is a registered Handler. Remove is safe to call more than once.
type Subscription struct {
	broker    *Broker
	eventType EventType
	handler   Handler
	once      sync.Once
	mu        sync.RWMutex
	removed   bool
}

// Remove unregisters the handler. Redundant calls are no-ops.
func (s *Subscription) Remove() {
	if s == nil {
		return
	}
	s.once.Do(func() {
		s.mu.Lock()
		s.removed = true
		s.mu.Unlock()
		s.broker.removeHandler(s)
	})
}

// Active reports whether the subscription is still registered.
func (s *Subscription) Active() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return !s.removed
}

// Broker manages event distribution. It has two kinds of listeners: handlers
// registered with On, which are called in registration order inside Publish,
// and buffered channels from Subscribe, which never block the publisher.
type Broker struct {
	handlers    map[EventType][]*Subscription
	subscribers map[EventType][]chan Event
	mu          sync.RWMutex
	bufferSize  int
}

// NewBroker creates a new event broker
func NewBroker() *Broker {
	return &Broker{
		handlers:    make(map[EventType][]*Subscription),
		subscribers: make(map[EventType][]chan Event),
		bufferSize:  64,
	}
}

// On registers a synchronous handler for one event type.
func (b *Broker) On(eventType EventType, handler Handler) *Subscription {
	sub := &Subscription{
		broker:    b,
		eventType: eventType,
		handler:   handler,
	}

	b.mu.Lock()
	b.handlers[eventType] = append(b.handlers[eventType], sub)
	b.mu.Unlock()

	return sub
}

// Listeners returns the number of handlers registered for an event type.
func (b *Broker) Listeners(eventType EventType) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.handlers[eventType])
}

// Subscribe creates a channel subscription to specific event types
func (b *Broker) Subscribe(eventTypes ...EventType) <-chan Event {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan Event, b.bufferSize)

	// No types means everything
	if len(eventTypes) == 0 {
		eventTypes = []EventType{Wildcard}
	}

	for _, eventType := range eventTypes {
		b.subscribers[eventType] = append(b.subscribers[eventType], ch)
	}

	return ch
}

// Unsubscribe removes a channel subscription and closes the channel.
func (b *Broker) Unsubscribe(ch <-chan Event, eventTypes ...EventType) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(eventTypes) == 0 {
		for eventType := range b.subscribers {
			b.removeChannel(eventType, ch)
		}
		return
	}

	for _, eventType := range eventTypes {
		b.removeChannel(eventType, ch)
	}
}

// Publish delivers an event to every handler registered for its type, in
// registration order, then offers it to channel subscribers. Handlers run on
// the caller's goroutine and may publish or remove subscriptions themselves.
func (b *Broker) Publish(event Event) {
	b.mu.RLock()
	handlers := make([]*Subscription, len(b.handlers[event.Type]))
	copy(handlers, b.handlers[event.Type])
	b.mu.RUnlock()

	for _, sub := range handlers {
		// Removed by an earlier handler in this same delivery
		if !sub.Active() {
			continue
		}
		sub.handler(event)
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, eventType := range []EventType{event.Type, Wildcard} {
		for _, ch := range b.subscribers[eventType] {
			select {
			case ch <- event:
			default:
				// Channel full, skip this event
			}
		}
	}
}

// PublishAsync sends an event asynchronously
func (b *Broker) PublishAsync(event Event) {
	go b.Publish(event)
}

// Emit is shorthand for Publish with a type and payload.
func (b *Broker) Emit(eventType EventType, payload any) {
	b.Publish(Event{Type: eventType, Payload: payload})
}

func (b *Broker) removeHandler(target *Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()

	handlers := b.handlers[target.eventType]
	for i, sub := range handlers {
		if sub == target {
			// Copy so in-flight snapshots in Publish stay intact
			next := make([]*Subscription, 0, len(handlers)-1)
			next = append(next, handlers[:i]...)
			next = append(next, handlers[i+1:]...)
			b.handlers[target.eventType] = next
			break
		}
	}

	if len(b.handlers[target.eventType]) == 0 {
		delete(b.handlers, target.eventType)
	}
}

// removeChannel removes a channel from a specific event type's subscribers
func (b *Broker) removeChannel(eventType EventType, target <-chan Event) {
	subscribers := b.subscribers[eventType]
	for i, ch := range subscribers {
		if ch == target {
			b.subscribers[eventType] = append(subscribers[:i], subscribers[i+1:]...)
			if !b.channelInUse(ch) {
				close(ch)
			}
			break
		}
	}

	if len(b.subscribers[eventType]) == 0 {
		delete(b.subscribers, eventType)
	}
}

// channelInUse reports whether ch is still registered under any event type.
func (b *Broker) channelInUse(ch chan Event) bool {
	for _, subscribers := range b.subscribers {
		for _, c := range subscribers {
			if c == ch {
				return true
			}
		}
	}
	return false
}

// Clear removes all subscriptions and handlers
func (b *Broker) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()

	closed := make(map[chan Event]bool)
	for _, subscribers := range b.subscribers {
		for _, ch := range subscribers {
			if !closed[ch] {
				close(ch)
				closed[ch] = true
			}
		}
	}

	for _, handlers := range b.handlers {
		for _, sub := range handlers {
			sub.mu.Lock()
			sub.removed = true
			sub.mu.Unlock()
		}
	}

	b.subscribers = make(map[EventType][]chan Event)
	b.handlers = make(map[EventType][]*Subscription)
}
