package feed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu   sync.Mutex
	msgs []Message
}

func (r *recorder) emit(m Message) {
	r.mu.Lock()
	r.msgs = append(r.msgs, m)
	r.mu.Unlock()
}

func (r *recorder) snapshot() []Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Message(nil), r.msgs...)
}

func TestWebSocketDeliversAndSkipsMalformed(t *testing.T) {
	t.Parallel()
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		for _, frame := range []string{
			`{"id":"a","x":0.1,"y":0.1,"ts":1000}`,
			`garbage`,
			`{"type":"heartbeat","ts":1500}`,
			`{"id":"b","x":-0.1,"y":0.2,"ts":2000}`,
		} {
			if err := conn.WriteMessage(websocket.TextMessage, []byte(frame)); err != nil {
				return
			}
		}
		// Hold the connection open until the client goes away.
		conn.ReadMessage()
	}))
	defer srv.Close()

	ws := NewWebSocket("ws"+strings.TrimPrefix(srv.URL, "http"), 10*time.Millisecond)
	rec := &recorder{}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- ws.Run(ctx, rec.emit) }()

	require.Eventually(t, func() bool { return len(rec.snapshot()) >= 4 }, 2*time.Second, 10*time.Millisecond)
	cancel()
	require.ErrorIs(t, <-done, context.Canceled)

	msgs := rec.snapshot()
	assert.Equal(t, Status{Source: ws.URL, Connected: true}, msgs[0])
	assert.Equal(t, "a", msgs[1].(TrackUpdate).ID)
	assert.IsType(t, Heartbeat{}, msgs[2])
	assert.Equal(t, "b", msgs[3].(TrackUpdate).ID)
}

func TestWebSocketReconnects(t *testing.T) {
	t.Parallel()
	var (
		mu    sync.Mutex
		dials int
	)
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		mu.Lock()
		dials++
		mu.Unlock()
		// Drop immediately to force a retry.
		conn.Close()
	}))
	defer srv.Close()

	ws := NewWebSocket("ws"+strings.TrimPrefix(srv.URL, "http"), 10*time.Millisecond)
	rec := &recorder{}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	go ws.Run(ctx, rec.emit)

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return dials >= 3
	}, 2*time.Second, 10*time.Millisecond)

	var down int
	for _, m := range rec.snapshot() {
		if st, ok := m.(Status); ok && !st.Connected {
			down++
			assert.Error(t, st.Err)
		}
	}
	assert.GreaterOrEqual(t, down, 2)
}

func TestMultiJoinsSources(t *testing.T) {
	t.Parallel()
	sc := StandaloneScenario()
	sc.Interval = time.Hour
	rec := &recorder{}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- Multi{NewSynthetic(sc, 1), NewSynthetic(BackendScenario(), 2)}.Run(ctx, rec.emit)
	}()

	// 11 standalone targets plus 5 backend lead targets after its start delay.
	require.Eventually(t, func() bool { return len(rec.snapshot()) >= 16 }, 2*time.Second, 10*time.Millisecond)
	cancel()
	assert.NoError(t, <-done, "cancellation is not reported as a failure")
}
