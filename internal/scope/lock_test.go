package scope

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skyshield.klederson.com/internal/config"
)

func TestLockNearest(t *testing.T) {
	t.Parallel()
	v := Viewport{CX: 40, CY: 20, Radius: 30, Aspect: 0.5}
	s := newStandalone()
	s.Apply(update("near", 0.5, 0, 0, false), ms(0)) // col 55, row 20
	s.Apply(update("far", -0.5, 0.5, 0, false), ms(0))

	fx, ok := s.LockNearest(v, 57, 20, ms(10)) // 2 cols = 16px away
	require.True(t, ok)
	assert.Equal(t, "near", s.LockedID())
	assert.NotEmpty(t, fx.Schedules)

	s.Unlock()
	_, ok = s.LockNearest(v, 62, 20, ms(20)) // 7 cols = 56px, out of reach
	assert.False(t, ok)
	assert.Empty(t, s.LockedID())

	_, ok = s.LockNearest(v, 55, 23, ms(30)) // 3 rows = 48px, boundary excluded
	assert.False(t, ok)
}

func TestLockNext(t *testing.T) {
	t.Parallel()
	s := newStandalone()
	assert.True(t, s.LockNext(ms(0)).Empty())

	for _, id := range []string{"a", "b", "c"} {
		s.Apply(update(id, 0, 0, 0, false), ms(0))
	}
	var seen []string
	for i := 0; i < 4; i++ {
		s.LockNext(ms(int64(i)))
		seen = append(seen, s.LockedID())
	}
	assert.Equal(t, []string{"a", "b", "c", "a"}, seen)
}

func TestLockUnknownIDIgnored(t *testing.T) {
	t.Parallel()
	s := newLive()
	assert.True(t, s.Lock("ghost", ms(0)).Empty())
	assert.Empty(t, s.LockedID())
}

func TestBannerCancelAndReplace(t *testing.T) {
	t.Parallel()
	s := newLive()
	s.Apply(update("a", 0, 0, 0, false), ms(0))
	s.Apply(update("b", 0, 0, 0, false), ms(0))

	first := s.Lock("a", ms(0)).Schedules[0]
	second := s.Lock("b", ms(1000)).Schedules[0]
	require.NotEqual(t, first.Seq, second.Seq)

	s.Expire(first)
	assert.True(t, s.Banner().Visible, "superseded hide is ignored")
	assert.Equal(t, "b", s.Banner().Text)

	s.Expire(second)
	assert.False(t, s.Banner().Visible)
	s.Expire(second)
	assert.False(t, s.Banner().Visible)
}

func TestLockNeutralizedShowsMutedBanner(t *testing.T) {
	t.Parallel()
	s := newLive()
	s.Apply(update("a", 0, 0, 0, false), ms(0))
	s.Lock("a", ms(0))
	s.Neutralize(ms(1))
	s.Unlock()

	fx := s.Lock("a", ms(2))
	b := s.Banner()
	assert.True(t, b.Muted)
	assert.Equal(t, "a (Neutralized)", b.Text)
	assert.Equal(t, config.MutedBannerDuration, fx.Schedules[0].After)
}

func TestSoundCue(t *testing.T) {
	t.Parallel()
	s := newLive()
	s.ToggleSound(true)
	s.Apply(update("a", 0, 0, 0, false), ms(0))

	assert.True(t, s.Lock("a", ms(0)).Beep)
	assert.False(t, s.Lock("a", ms(1)).Beep, "re-lock only restarts the banner")

	s.ToggleSound(false)
	s.Apply(update("b", 0, 0, 0, false), ms(0))
	assert.False(t, s.Lock("b", ms(2)).Beep)
}

func TestTask(t *testing.T) {
	t.Parallel()
	var task Task
	assert.False(t, task.Pending())
	a := task.Arm(config.BannerDuration)
	assert.True(t, task.Pending())
	task.Cancel()
	assert.False(t, task.Fire(a.Seq))
	b := task.Arm(config.BannerDuration)
	assert.True(t, task.Fire(b.Seq))
	assert.False(t, task.Pending())
}
