package events

import (
	"encoding/json"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/partsearch/partsearch/logger"
	"github.com/partsearch/partsearch/parts"
)

// subscriberBuffer is the per-subscriber channel capacity. A subscriber
// that falls this far behind starts losing events.
const subscriberBuffer = 64

// Subscription is one subscriber's view of the event stream.
type Subscription struct {
	id       string
	category string
	ch       chan []byte
}

// ID returns the subscription's unique identifier.
func (s *Subscription) ID() string {
	return s.id
}

// Events returns the channel delivering serialized events.
func (s *Subscription) Events() <-chan []byte {
	return s.ch
}

// Hub fans out part change events to subscribers. It implements
// parts.EventPublisher. Safe for concurrent use.
type Hub struct {
	mu     sync.RWMutex
	subs   map[string]*Subscription
	closed bool
	log    *logger.Logger
}

// NewHub creates an event hub with no subscribers.
func NewHub() *Hub {
	return &Hub{
		subs: make(map[string]*Subscription),
		log:  logger.WithComponent("events"),
	}
}

// Subscribe registers a subscriber. An empty category receives all events;
// otherwise only events for that category (and deletions, whose category is
// no longer known) are delivered.
func (h *Hub) Subscribe(category string) *Subscription {
	sub := &Subscription{
		id:       uuid.New().String(),
		category: category,
		ch:       make(chan []byte, subscriberBuffer),
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		close(sub.ch)
		return sub
	}
	h.subs[sub.id] = sub

	h.log.Debug("Subscriber registered", logger.Fields(
		"subscriber_id", sub.id,
		"category", category,
		"total", len(h.subs),
	))
	return sub
}

// Unsubscribe removes a subscriber and closes its channel.
func (h *Hub) Unsubscribe(sub *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.subs[sub.id]; !ok {
		return
	}
	delete(h.subs, sub.id)
	close(sub.ch)

	h.log.Debug("Subscriber removed", logger.Fields(
		"subscriber_id", sub.id,
		"total", len(h.subs),
	))
}

// Publish serializes the event and delivers it to matching subscribers.
// Slow subscribers drop events rather than block the publisher.
func (h *Hub) Publish(e parts.Event) {
	data, err := json.Marshal(e)
	if err != nil {
		h.log.Error("Event marshal failed", logger.Fields(
			logger.FieldError, err.Error(),
			"event_type", string(e.Type),
		))
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, sub := range h.subs {
		if !matches(sub.category, e) {
			continue
		}
		select {
		case sub.ch <- data:
		default:
			h.log.Warn("Subscriber channel full, dropping event", logger.Fields(
				"subscriber_id", sub.id,
				"event_type", string(e.Type),
			))
		}
	}
}

// matches reports whether the event should be delivered to a subscriber
// with the given category filter. Deletion events carry no category and go
// to everyone.
func matches(category string, e parts.Event) bool {
	if category == "" || e.Category == "" {
		return true
	}
	return strings.EqualFold(category, e.Category)
}

// SubscriberCount returns the number of active subscribers.
func (h *Hub) SubscriberCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

// Close disconnects all subscribers. Subsequent Subscribe calls return an
// already-closed subscription; Publish becomes a no-op.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for id, sub := range h.subs {
		close(sub.ch)
		delete(h.subs, id)
	}
}

var _ parts.EventPublisher = (*Hub)(nil)
