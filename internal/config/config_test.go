package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreset(t *testing.T) {
	t.Parallel()

	live := Preset(VariantLive)
	assert.Equal(t, 20, live.HistoryLimit)
	assert.Equal(t, 8*time.Second, live.DecayWindow)
	assert.Equal(t, 20*time.Second, live.StaleAfter)
	assert.Zero(t, live.JitterInterval)
	assert.Equal(t, AutoLockAlways, live.AutoLock)

	standalone := Preset(VariantStandalone)
	assert.Equal(t, 24, standalone.HistoryLimit)
	assert.Equal(t, 7*time.Second, standalone.DecayWindow)
	assert.Zero(t, standalone.StaleAfter, "standalone variant never reaps")
	assert.Equal(t, 450*time.Millisecond, standalone.JitterInterval)
	assert.Equal(t, AutoLockOnCreate, standalone.AutoLock)
	assert.InDelta(t, 0.0315, standalone.ScanSpeed*standalone.SweepGain, 1e-9)
}

func TestLoad(t *testing.T) {
	t.Parallel()

	t.Run("empty path returns defaults", func(t *testing.T) {
		t.Parallel()
		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, Default(), cfg)
	})

	t.Run("file overrides defaults", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "skyshield.yaml")
		doc := `
scope:
  variant: live
  history_limit: 12
  decay_window: 5s
  stale_after: 10s
feed:
  url: ws://radar.local:9000/ws
  reconnect_delay: 3s
rf:
  enabled: true
  confirm_legal: true
server:
  addr: ":9999"
`
		require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, 12, cfg.Scope.HistoryLimit)
		assert.Equal(t, 5*time.Second, cfg.Scope.DecayWindow)
		assert.Equal(t, 10*time.Second, cfg.Scope.StaleAfter)
		assert.Equal(t, "ws://radar.local:9000/ws", cfg.Feed.URL)
		assert.Equal(t, 3*time.Second, cfg.Feed.ReconnectDelay)
		assert.True(t, cfg.RF.Enabled)
		assert.True(t, cfg.RF.ConfirmLegal)
		assert.Equal(t, "hci0", cfg.RF.Adapter, "unset fields keep defaults")
		assert.Equal(t, ":9999", cfg.Server.Addr)
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "read config")
	})

	t.Run("invalid values rejected", func(t *testing.T) {
		t.Parallel()
		bad := []struct {
			doc  string
			want string
		}{
			{"scope:\n  history_limit: 1\n", "history_limit"},
			{"scope:\n  feed_limit: -1\n", "feed_limit"},
			{"scope:\n  particle_density: 2\n", "particle_density"},
			{"scope:\n  variant: sonar\n", "variant"},
		}
		for _, tc := range bad {
			path := filepath.Join(t.TempDir(), "bad.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tc.doc), 0o600))
			_, err := Load(path)
			require.Error(t, err, tc.doc)
			assert.Contains(t, err.Error(), tc.want)
		}
	})
}

func TestLoadVariant(t *testing.T) {
	t.Parallel()

	t.Run("no file", func(t *testing.T) {
		t.Parallel()
		cfg, err := LoadVariant("", VariantStandalone)
		require.NoError(t, err)
		assert.Equal(t, Preset(VariantStandalone), cfg.Scope)
	})

	t.Run("file values overlay the forced preset", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "skyshield.yaml")
		doc := "scope:\n  variant: live\n  sound: true\n  quick_neutralize: true\n  particle_density: 0.3\n"
		require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

		cfg, err := LoadVariant(path, VariantStandalone)
		require.NoError(t, err)
		assert.Equal(t, VariantStandalone, cfg.Scope.Variant)
		assert.True(t, cfg.Scope.Sound)
		assert.True(t, cfg.Scope.QuickNeutralize)
		assert.InDelta(t, 0.3, cfg.Scope.Particles, 1e-9)
		assert.Equal(t, 24, cfg.Scope.HistoryLimit, "unset fields come from the standalone preset")
		assert.Equal(t, AutoLockOnCreate, cfg.Scope.AutoLock)
	})

	t.Run("variant read from the file", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "skyshield.yaml")
		require.NoError(t, os.WriteFile(path, []byte("scope:\n  variant: standalone\n  sound: true\n"), 0o600))

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, 450*time.Millisecond, cfg.Scope.JitterInterval)
		assert.True(t, cfg.Scope.Sound)
	})
}
