package feed

import (
	"context"
	"fmt"
	"time"

	"github.com/gorilla/websocket"
	"skyshield.klederson.com/internal/config"
)

var log = config.Component("feed")

// WebSocket is a long-lived push channel. It reconnects after a fixed delay
// with no retry limit and no backoff growth.
type WebSocket struct {
	URL            string
	ReconnectDelay time.Duration
	Dialer         *websocket.Dialer
	Now            func() time.Time
}

// NewWebSocket creates a source for url.
func NewWebSocket(url string, reconnectDelay time.Duration) *WebSocket {
	if reconnectDelay <= 0 {
		reconnectDelay = config.ReconnectDelay
	}
	return &WebSocket{
		URL:            url,
		ReconnectDelay: reconnectDelay,
		Dialer:         websocket.DefaultDialer,
		Now:            time.Now,
	}
}

// Run dials, reads and redials until ctx is cancelled.
func (w *WebSocket) Run(ctx context.Context, emit Emit) error {
	for {
		err := w.session(ctx, emit)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		log.WithError(err).WithField("url", w.URL).Warnf("feed disconnected, retrying in %v", w.ReconnectDelay)
		emit(Status{Source: w.URL, Connected: false, Err: err})

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(w.ReconnectDelay):
		}
	}
}

func (w *WebSocket) session(ctx context.Context, emit Emit) error {
	conn, _, err := w.Dialer.DialContext(ctx, w.URL, nil)
	if err != nil {
		return fmt.Errorf("dial %s: %w", w.URL, err)
	}
	defer conn.Close()

	// Unblock ReadMessage on cancellation.
	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()

	log.WithField("url", w.URL).Info("feed connected")
	emit(Status{Source: w.URL, Connected: true})

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return fmt.Errorf("read: %w", err)
		}
		msg, err := Decode(data, w.Now())
		if err != nil {
			log.WithError(err).WithField("bytes", len(data)).Warn("discarding inbound message")
			continue
		}
		emit(msg)
	}
}
