package feed

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skyshield.klederson.com/internal/config"
)

func TestStandaloneSpawn(t *testing.T) {
	t.Parallel()
	s := NewSynthetic(StandaloneScenario(), 1)
	at := time.UnixMilli(1000)

	lead := s.Spawn(at)
	require.Len(t, lead, 5)
	assert.Equal(t, config.SentinelID, lead[0].ID)
	assert.True(t, lead[0].Threat)
	assert.Equal(t, "Unidentified UAV", lead[0].Label)
	assert.InDelta(t, 0.11, *lead[0].R, 1e-9)
	for _, echo := range lead[1:] {
		assert.False(t, echo.Threat)
		assert.InDelta(t, 0.22, echo.X, 0.07+1e-9)
		assert.InDelta(t, -0.18, echo.Y, 0.06+1e-9)
	}

	bg := s.SpawnBackground(at)
	require.Len(t, bg, 6)
	for _, u := range bg {
		assert.InDelta(t, 0, u.X, 0.8)
		assert.InDelta(t, 0, u.Y, 0.8)
		assert.GreaterOrEqual(t, *u.RSSI, -80.0)
		assert.LessOrEqual(t, *u.RSSI, -40.0)
	}

	moved := s.Tick(at.Add(450 * time.Millisecond))
	assert.Len(t, moved, 11, "standalone perturbs every target")
}

func TestBackendTickMovesOnlyBackground(t *testing.T) {
	t.Parallel()
	s := NewSynthetic(BackendScenario(), 7)
	at := time.UnixMilli(0)

	lead := s.Spawn(at)
	require.Len(t, lead, 5)
	assert.Equal(t, "intruder-1-echo-0", lead[1].ID)
	assert.Empty(t, s.Tick(at), "lead and echoes are announced once")

	bg := s.SpawnBackground(at)
	require.Len(t, bg, 6)
	assert.Equal(t, "sim-0", bg[0].ID)

	moved := s.Tick(at.Add(500 * time.Millisecond))
	require.Len(t, moved, 6)
	for i, u := range moved {
		assert.Equal(t, bg[i].ID, u.ID)
		assert.InDelta(t, bg[i].X, u.X, 0.02+1e-9)
		assert.InDelta(t, bg[i].Y, u.Y, 0.02+1e-9)
		assert.LessOrEqual(t, u.X, 1.0)
		assert.GreaterOrEqual(t, u.X, -1.0)
	}
}

func TestTickDoesNotAliasEmittedUpdates(t *testing.T) {
	t.Parallel()
	s := NewSynthetic(StandaloneScenario(), 3)
	first := s.Spawn(time.UnixMilli(0))
	rssi := *first[0].RSSI
	s.Tick(time.UnixMilli(450))
	assert.InDelta(t, rssi, *first[0].RSSI, 1e-12)
}

func TestSyntheticRunStopsOnCancel(t *testing.T) {
	t.Parallel()
	sc := StandaloneScenario()
	sc.Interval = 5 * time.Millisecond
	s := NewSynthetic(sc, 1)

	var (
		mu  sync.Mutex
		got []Message
	)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- s.Run(ctx, func(m Message) {
			mu.Lock()
			got = append(got, m)
			mu.Unlock()
		})
	}()

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(got) > 11
	}, time.Second, 5*time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
