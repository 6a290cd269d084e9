package services

import (
	"sync"
)

// Hub fans full-snapshot payloads out to live subscribers. Every publish
// carries the complete current list for its topic; consumers replace their
// local copy, they never patch. Because a newer snapshot supersedes an older
// one, a slow subscriber may safely drop intermediate snapshots.
type Hub struct {
	mu   sync.Mutex
	subs map[string]map[chan []byte]struct{}
}

func NewHub() *Hub {
	return &Hub{subs: make(map[string]map[chan []byte]struct{})}
}

// Subscribe registers a listener on topic. The returned cancel func must be
// called when the consumer goes away (client disconnect).
func (h *Hub) Subscribe(topic string) (<-chan []byte, func()) {
	ch := make(chan []byte, 4)
	h.mu.Lock()
	if h.subs[topic] == nil {
		h.subs[topic] = make(map[chan []byte]struct{})
	}
	h.subs[topic][ch] = struct{}{}
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		if set, ok := h.subs[topic]; ok {
			delete(set, ch)
			if len(set) == 0 {
				delete(h.subs, topic)
			}
		}
		h.mu.Unlock()
	}
	return ch, cancel
}

// HasSubscribers reports whether anybody listens on topic, so publishers can
// skip building snapshots nobody will see.
func (h *Hub) HasSubscribers(topic string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs[topic]) > 0
}

// Publish delivers snapshot to every subscriber of topic without blocking.
// A full channel sheds its oldest queued snapshot to make room: whatever a
// slow consumer eventually drains must end on the latest published state.
func (h *Hub) Publish(topic string, snapshot []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subs[topic] {
		select {
		case ch <- snapshot:
			continue
		default:
		}
		// Queue full. Drop the oldest entry; only the consumer ever
		// receives on ch, so under the lock this frees a slot unless the
		// consumer just did, in which case the send below succeeds anyway.
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- snapshot:
		default:
		}
	}
}
