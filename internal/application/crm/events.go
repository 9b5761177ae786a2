package crm

import (
	"sync"
	"time"

	"github.com/jhoicas/pipeline-crm/pkg/logger"
)

// EventType names a customer change.
type EventType string

// Change notifications emitted after a successful write.
const (
	EventCustomerCreated    EventType = "customer.created"
	EventCustomersImported  EventType = "customer.imported"
	EventCustomerUpdated    EventType = "customer.updated"
	EventCustomerDeleted    EventType = "customer.deleted"
	EventStageChanged       EventType = "customer.stage_changed"
	EventNoteAdded          EventType = "customer.note_added"
	EventQuotationSaved     EventType = "quotation.saved"
	EventQuotationConfirmed EventType = "quotation.confirmed"
)

// Event tells views which customer changed so they can re-read it.
type Event struct {
	Type       EventType `json:"type"`
	CustomerID string    `json:"customer_id,omitempty"`
	At         time.Time `json:"at"`
}

// EventBus fans change notifications out to subscribers. Each subscriber owns a buffered
// channel; when it is full the event is dropped for that subscriber only.
type EventBus struct {
	mu     sync.RWMutex
	subs   map[chan Event]struct{}
	buffer int
	log    *logger.Logger
}

// DefaultEventBuffer is the per-subscriber queue length used when none is given.
const DefaultEventBuffer = 16

// NewEventBus creates a bus whose subscriber channels hold buffer events. log may be nil.
func NewEventBus(buffer int, log *logger.Logger) *EventBus {
	if buffer <= 0 {
		buffer = DefaultEventBuffer
	}
	return &EventBus{subs: make(map[chan Event]struct{}), buffer: buffer, log: log}
}

// Subscribe registers a listener. Call the returned function to unsubscribe; it closes the
// channel.
func (b *EventBus) Subscribe() (<-chan Event, func()) {
	ch := make(chan Event, b.buffer)
	b.mu.Lock()
	b.subs[ch] = struct{}{}
	b.mu.Unlock()

	return ch, func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if _, ok := b.subs[ch]; ok {
			delete(b.subs, ch)
			close(ch)
		}
	}
}

// Close ends every subscription. Subscribers see their channel closed.
func (b *EventBus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for ch := range b.subs {
		delete(b.subs, ch)
		close(ch)
	}
}

// Publish delivers e to every subscriber without blocking.
func (b *EventBus) Publish(e Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for ch := range b.subs {
		select {
		case ch <- e:
		default:
			if b.log != nil {
				b.log.Warn().Str("event", string(e.Type)).Str("customer_id", e.CustomerID).Msg("event dropped: slow subscriber")
			}
		}
	}
}

// Subscribers reports the current number of listeners.
func (b *EventBus) Subscribers() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}
