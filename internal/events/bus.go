package events

import (
	"sync"
	"time"

	"featgate/pkg/logging"

	"github.com/google/uuid"
)

// defaultHistorySize bounds the number of events kept for queries.
const defaultHistorySize = 512

// subscriberBufferSize is the channel capacity handed to each subscriber.
const subscriberBufferSize = 100

// Bus fans lifecycle events out to subscribers and records them in a
// bounded history. Safe for concurrent use.
type Bus struct {
	mu          sync.RWMutex
	subscribers []chan Event

	history     []Event
	historyNext int
	historyFull bool
}

// NewBus creates a bus with the default history capacity.
func NewBus() *Bus {
	return NewBusWithHistory(defaultHistorySize)
}

// NewBusWithHistory creates a bus keeping at most size events. A size of
// zero disables history.
func NewBusWithHistory(size int) *Bus {
	if size < 0 {
		size = 0
	}
	return &Bus{history: make([]Event, size)}
}

// Publish assigns the event an ID and timestamp, records it, and delivers
// it to all subscribers. Delivery is non-blocking; a subscriber that cannot
// receive immediately misses the event.
func (b *Bus) Publish(event Event) {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	if event.Type == "" {
		event.Type = EventTypeNormal
	}

	b.mu.Lock()
	if len(b.history) > 0 {
		b.history[b.historyNext] = event
		b.historyNext = (b.historyNext + 1) % len(b.history)
		if b.historyNext == 0 {
			b.historyFull = true
		}
	}
	subscribers := make([]chan Event, len(b.subscribers))
	copy(subscribers, b.subscribers)
	b.mu.Unlock()

	for _, subscriber := range subscribers {
		select {
		case subscriber <- event:
		default:
			// Don't block if subscriber can't receive immediately
			logging.Debug("Events", "Subscriber blocked, dropping event %s", event.Reason)
		}
	}
}

// Subscribe returns a channel receiving all future events. The channel is
// buffered; events published while the buffer is full are dropped for this
// subscriber.
func (b *Bus) Subscribe() <-chan Event {
	eventChan := make(chan Event, subscriberBufferSize)
	b.mu.Lock()
	b.subscribers = append(b.subscribers, eventChan)
	b.mu.Unlock()
	return eventChan
}

// Unsubscribe removes a previously subscribed channel and closes it.
func (b *Bus) Unsubscribe(ch <-chan Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, subscriber := range b.subscribers {
		if subscriber == ch {
			b.subscribers = append(b.subscribers[:i], b.subscribers[i+1:]...)
			close(subscriber)
			return
		}
	}
}

// History returns the recorded events, oldest first.
func (b *Bus) History() []Event {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if len(b.history) == 0 {
		return nil
	}
	if !b.historyFull {
		out := make([]Event, b.historyNext)
		copy(out, b.history[:b.historyNext])
		return out
	}
	out := make([]Event, 0, len(b.history))
	out = append(out, b.history[b.historyNext:]...)
	out = append(out, b.history[:b.historyNext]...)
	return out
}
