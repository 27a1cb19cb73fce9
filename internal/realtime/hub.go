package realtime

import (
	"fmt"
	"sync"
)

// Events published by the chat and notification services.
const (
	EventMessageInsert      = "message.insert"
	EventMessageUpdate      = "message.update"
	EventMessageDelete      = "message.delete"
	EventSessionUpdate      = "session.update"
	EventSessionRead        = "session.read"
	EventNotificationInsert = "notification.insert"
	EventNotificationDelete = "notification.delete"
)

// Event is a single realtime push on a topic.
type Event struct {
	Topic   string      `json:"topic"`
	Event   string      `json:"event"`
	Payload interface{} `json:"payload"`
}

// SessionTopic names the topic carrying events of one chat session.
func SessionTopic(sessionID int) string {
	return fmt.Sprintf("session:%d", sessionID)
}

// UserTopic names the topic carrying events addressed to one user.
func UserTopic(userID int) string {
	return fmt.Sprintf("user:%d", userID)
}

// Subscription is an explicit handle on a topic. Events arrive on C; the
// owner must call Close when done, which also closes C.
type Subscription struct {
	topic string
	hub   *Hub
	C     chan Event
}

// Close detaches the subscription from its topic and closes C. Safe to call
// more than once.
func (s *Subscription) Close() {
	s.hub.unsubscribe(s)
}

// Hub fans events out to topic subscribers. Slow subscribers drop events
// rather than block the publisher.
type Hub struct {
	mu     sync.RWMutex
	topics map[string]map[*Subscription]bool
	closed bool
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{topics: make(map[string]map[*Subscription]bool)}
}

// Subscribe attaches a new subscription to the topic.
func (h *Hub) Subscribe(topic string) *Subscription {
	sub := &Subscription{topic: topic, hub: h, C: make(chan Event, 64)}
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		close(sub.C)
		return sub
	}
	if h.topics[topic] == nil {
		h.topics[topic] = make(map[*Subscription]bool)
	}
	h.topics[topic][sub] = true
	return sub
}

func (h *Hub) unsubscribe(sub *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()
	subs, ok := h.topics[sub.topic]
	if !ok || !subs[sub] {
		return
	}
	delete(subs, sub)
	if len(subs) == 0 {
		delete(h.topics, sub.topic)
	}
	close(sub.C)
}

// Broadcast publishes an event to every subscriber of the topic.
func (h *Hub) Broadcast(topic, event string, payload interface{}) {
	ev := Event{Topic: topic, Event: event, Payload: payload}
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.closed {
		return
	}
	for sub := range h.topics[topic] {
		select {
		case sub.C <- ev:
		default:
			// subscriber is not draining, drop
		}
	}
}

// Close detaches all subscriptions. Further Broadcast calls are no-ops.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for _, subs := range h.topics {
		for sub := range subs {
			close(sub.C)
		}
	}
	h.topics = make(map[string]map[*Subscription]bool)
}
