package server

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"skyshield.klederson.com/internal/feed"
)

const (
	writeWait      = 10 * time.Second
	sendBufferSize = 64
)

var upgrader = websocket.Upgrader{
	// The radar page may be served from another origin during development.
	CheckOrigin: func(r *http.Request) bool { return true },
}

type subscriber struct {
	id   string
	send chan []byte
}

// Hub fans wire events out to every connected WebSocket client. A client
// whose buffer is full is dropped rather than slowing the others down.
type Hub struct {
	mu          sync.Mutex
	subscribers map[string]*subscriber
	metrics     *Metrics
}

// NewHub creates an empty hub.
func NewHub(m *Metrics) *Hub {
	return &Hub{
		subscribers: make(map[string]*subscriber),
		metrics:     m,
	}
}

func (h *Hub) register() *subscriber {
	s := &subscriber{id: uuid.NewString(), send: make(chan []byte, sendBufferSize)}
	h.mu.Lock()
	h.subscribers[s.id] = s
	n := len(h.subscribers)
	h.mu.Unlock()
	h.metrics.clients.Set(float64(n))
	log.WithField("client", s.id).Infof("ws client connected (%d total)", n)
	return s
}

func (h *Hub) unregister(s *subscriber) {
	h.mu.Lock()
	if _, ok := h.subscribers[s.id]; ok {
		delete(h.subscribers, s.id)
		close(s.send)
	}
	n := len(h.subscribers)
	h.mu.Unlock()
	h.metrics.clients.Set(float64(n))
	log.WithField("client", s.id).Info("ws client disconnected")
}

// Broadcast queues data for every subscriber.
func (h *Hub) Broadcast(data []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, s := range h.subscribers {
		select {
		case s.send <- data:
		default:
			log.WithField("client", id).Warn("dropping slow ws client")
			delete(h.subscribers, id)
			close(s.send)
		}
	}
	h.metrics.clients.Set(float64(len(h.subscribers)))
}

// BroadcastUpdate encodes u in wire form and broadcasts it.
func (h *Hub) BroadcastUpdate(u feed.TrackUpdate) {
	data, err := feed.Encode(u)
	if err != nil {
		log.WithError(err).WithField("track", u.ID).Error("encode update")
		return
	}
	h.Broadcast(data)
}

// Count returns the number of connected clients.
func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subscribers)
}

// RunHeartbeat broadcasts a keep-alive every interval until ctx is done.
func (h *Hub) RunHeartbeat(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case t := <-ticker.C:
			data, err := feed.EncodeHeartbeat(t)
			if err != nil {
				log.WithError(err).Error("encode heartbeat")
				continue
			}
			h.Broadcast(data)
		}
	}
}

// ServeHTTP upgrades the request and streams events until the client leaves.
// Inbound frames are read only to notice the close.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.WithError(err).Warn("ws upgrade failed")
		return
	}
	s := h.register()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	defer func() {
		h.unregister(s)
		conn.Close()
	}()
	for {
		select {
		case <-done:
			return
		case data, ok := <-s.send:
			if !ok {
				conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, "slow client"))
				return
			}
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		}
	}
}
