package stream

import (
	"log/slog"
	"sync"
)

// Hub fans completed event frames out to any number of subscribers. Each
// subscriber owns a bounded queue; when a consumer is slow its frames are
// dropped rather than stalling the publisher.
type Hub struct {
	queueSize int

	mu   sync.Mutex
	subs map[chan []byte]struct{}

	dropped uint64
}

func NewHub(queueSize int) *Hub {
	return &Hub{
		queueSize: queueSize,
		subs:      make(map[chan []byte]struct{}),
	}
}

func (h *Hub) Subscribe() chan []byte {
	ch := make(chan []byte, h.queueSize)
	h.mu.Lock()
	h.subs[ch] = struct{}{}
	n := len(h.subs)
	h.mu.Unlock()
	slog.Info("stream subscriber added", "subscribers", n)
	return ch
}

func (h *Hub) Unsubscribe(ch chan []byte) {
	h.mu.Lock()
	if _, ok := h.subs[ch]; ok {
		delete(h.subs, ch)
		close(ch)
	}
	n := len(h.subs)
	h.mu.Unlock()
	slog.Info("stream subscriber removed", "subscribers", n)
}

// Publish delivers one frame to every subscriber without blocking. The frame
// is copied once; subscribers must treat received slices as read-only.
func (h *Hub) Publish(frame []byte) {
	if len(frame) == 0 {
		return
	}
	buf := make([]byte, len(frame))
	copy(buf, frame)

	h.mu.Lock()
	for ch := range h.subs {
		select {
		case ch <- buf:
		default:
			h.dropped++
		}
	}
	h.mu.Unlock()
}

// Write lets the hub act as an output sink: each call carries one frame.
func (h *Hub) Write(p []byte) (int, error) {
	h.Publish(p)
	return len(p), nil
}

func (h *Hub) Flush() error { return nil }
