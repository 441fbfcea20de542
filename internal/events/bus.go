package events

import (
	"context"
	"log/slog"
	"sync"
)

// subscription pairs a delivery channel with an optional type filter. An
// empty filter receives every event.
type subscription struct {
	eventType string
	ch        chan Event
}

func (s *subscription) wants(e Event) bool {
	return s.eventType == "" || s.eventType == e.EventType()
}

// Bus fans events out to subscribers and appends them to the log. Delivery
// is non-blocking: a subscriber that falls behind loses events rather than
// stalling the publisher.
type Bus struct {
	mu     sync.RWMutex
	subs   []*subscription
	log    *EventLog // may be nil
	logger *slog.Logger
	closed bool
}

// NewBus creates a bus. Pass a nil EventLog to disable persistence.
func NewBus(log *EventLog, logger *slog.Logger) *Bus {
	if logger == nil {
		logger = slog.Default()
	}
	return &Bus{log: log, logger: logger}
}

// Publish appends the event to the log and delivers it to matching
// subscribers. A failed append is logged and does not stop delivery.
func (b *Bus) Publish(ctx context.Context, e Event) error {
	b.mu.RLock()
	if b.closed {
		b.mu.RUnlock()
		return nil
	}
	subs := make([]*subscription, len(b.subs))
	copy(subs, b.subs)
	b.mu.RUnlock()

	if b.log != nil {
		if _, err := b.log.Append(e); err != nil {
			b.logger.Error("failed to persist event", "type", e.EventType(), "error", err)
		}
	}

	for _, sub := range subs {
		if !sub.wants(e) {
			continue
		}
		select {
		case sub.ch <- e:
		default:
			b.logger.Warn("subscriber channel full, dropping event",
				"type", e.EventType(),
				"entity_type", e.EntityType(),
				"entity_id", e.EntityID())
		}
	}
	return nil
}

// Subscribe returns a channel receiving events of one type.
func (b *Bus) Subscribe(eventType string, bufferSize int) <-chan Event {
	return b.add(eventType, bufferSize)
}

// SubscribeAll returns a channel receiving every published event.
func (b *Bus) SubscribeAll(bufferSize int) <-chan Event {
	return b.add("", bufferSize)
}

func (b *Bus) add(eventType string, bufferSize int) <-chan Event {
	b.mu.Lock()
	defer b.mu.Unlock()

	sub := &subscription{eventType: eventType, ch: make(chan Event, bufferSize)}
	b.subs = append(b.subs, sub)
	return sub.ch
}

// Unsubscribe removes a subscription and closes its channel.
func (b *Bus) Unsubscribe(ch <-chan Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, sub := range b.subs {
		if sub.ch == ch {
			b.subs = append(b.subs[:i], b.subs[i+1:]...)
			close(sub.ch)
			return
		}
	}
}

// Close shuts down the bus and closes every subscriber channel. Publish
// becomes a no-op afterwards.
func (b *Bus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true

	for _, sub := range b.subs {
		close(sub.ch)
	}
	b.subs = nil
	return nil
}
