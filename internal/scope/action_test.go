package scope

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skyshield.klederson.com/internal/track"
)

func TestApplyAction(t *testing.T) {
	t.Parallel()
	s := newStandalone()
	assert.True(t, s.ApplyAction(track.ActionMark, ms(0)).Empty(), "no target is a no-op")

	s.Apply(update("a", 0, 0, 0, false), ms(0))
	s.Lock("a", ms(0))
	s.ApplyAction(track.ActionMonitor, ms(500))

	tr := s.Store().Get("a")
	assert.Equal(t, track.ActionMonitor, tr.Action)
	assert.Equal(t, int64(500), tr.ActionAt)
	assert.Equal(t, "a : monitor", s.Banner().Text)
	assert.Equal(t, "a -> monitor", s.Feed()[0].Label)
}

func TestNeutralizeIsTerminal(t *testing.T) {
	t.Parallel()
	s := newStandalone()
	s.Apply(update("a", 0, 0, 0, true), ms(0))
	s.Neutralize(ms(100))
	assert.True(t, s.Banner().Muted)

	assert.True(t, s.ApplyAction(track.ActionReport, ms(200)).Empty())
	assert.True(t, s.Neutralize(ms(300)).Empty())
	tr := s.Store().Get("a")
	assert.Equal(t, track.ActionNeutralize, tr.Action)
	assert.Equal(t, int64(100), tr.NeutralizedAt)

	_, _, err := s.Request(track.ActionMark, ms(400))
	assert.ErrorIs(t, err, ErrNeutralized)
}

func TestRequestResolve(t *testing.T) {
	t.Parallel()

	t.Run("no target", func(t *testing.T) {
		t.Parallel()
		s := newStandalone()
		_, _, err := s.Request(track.ActionMark, ms(0))
		assert.ErrorIs(t, err, ErrNoTarget)
		_, err = s.Resolve(true, ms(0))
		assert.ErrorIs(t, err, ErrNoPending)
	})

	t.Run("accept applies", func(t *testing.T) {
		t.Parallel()
		s := newStandalone()
		s.Apply(update("a", 0, 0, 0, false), ms(0))
		s.Lock("a", ms(0))

		c, fx, err := s.Request(track.ActionNeutralize, ms(10))
		require.NoError(t, err)
		require.NotNil(t, c)
		assert.True(t, fx.Empty())
		assert.Contains(t, c.Prompt(), "neutralized")
		assert.Same(t, c, s.Pending())
		assert.False(t, s.Store().Get("a").Neutralized, "nothing happens before confirmation")

		_, err = s.Resolve(true, ms(20))
		require.NoError(t, err)
		assert.True(t, s.Store().Get("a").Neutralized)
		assert.Nil(t, s.Pending())
	})

	t.Run("decline discards", func(t *testing.T) {
		t.Parallel()
		s := newStandalone()
		s.Apply(update("a", 0, 0, 0, false), ms(0))
		s.Lock("a", ms(0))
		_, _, err := s.Request(track.ActionReport, ms(10))
		require.NoError(t, err)
		fx, err := s.Resolve(false, ms(20))
		require.NoError(t, err)
		assert.True(t, fx.Empty())
		assert.Equal(t, track.ActionNone, s.Store().Get("a").Action)
	})

	t.Run("applies to the requested target after the lock moves", func(t *testing.T) {
		t.Parallel()
		s := newLive()
		s.Apply(update("a", 0, 0, 0, false), ms(0))
		s.Lock("a", ms(0))
		_, _, err := s.Request(track.ActionMark, ms(10))
		require.NoError(t, err)

		s.Apply(update("b", 0.2, 0, 20, true), ms(20))
		require.Equal(t, "b", s.LockedID())

		_, err = s.Resolve(true, ms(30))
		require.NoError(t, err)
		assert.Equal(t, track.ActionMark, s.Store().Get("a").Action)
		assert.Equal(t, track.ActionNone, s.Store().Get("b").Action)
	})

	t.Run("quick neutralize skips confirmation", func(t *testing.T) {
		t.Parallel()
		s := newStandalone()
		s.SetQuickNeutralize(true)
		s.Apply(update("a", 0, 0, 0, false), ms(0))
		s.Lock("a", ms(0))

		c, fx, err := s.Request(track.ActionNeutralize, ms(10))
		require.NoError(t, err)
		assert.Nil(t, c)
		assert.NotEmpty(t, fx.Schedules)
		assert.True(t, s.Store().Get("a").Neutralized)

		s.Apply(update("b", 0, 0, 0, false), ms(0))
		s.Lock("b", ms(20))
		c, _, err = s.Request(track.ActionMonitor, ms(30))
		require.NoError(t, err)
		assert.NotNil(t, c, "quick mode covers neutralize only")
	})
}
