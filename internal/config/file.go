package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// FeedConfig describes the live push channel.
type FeedConfig struct {
	URL            string        `yaml:"url"`
	ReconnectDelay time.Duration `yaml:"reconnect_delay"`
}

// RFConfig gates the passive RF sources.
type RFConfig struct {
	Enabled      bool    `yaml:"enabled"`
	ConfirmLegal bool    `yaml:"confirm_legal"`
	Adapter      string  `yaml:"adapter"`
	MaxRange     float64 `yaml:"max_range"` // meters mapped to the radar edge
	Classic      bool    `yaml:"classic"`
	WiFi         bool    `yaml:"wifi"`
}

// ServerConfig configures `skyshield serve`.
type ServerConfig struct {
	Addr              string        `yaml:"addr"`
	Simulate          bool          `yaml:"simulate"`
	HeartbeatInterval time.Duration `yaml:"heartbeat_interval"`
	DetectionLog      int           `yaml:"detection_log"`
}

// LogConfig selects log destination and verbosity.
type LogConfig struct {
	File  string `yaml:"file"`
	Level string `yaml:"level"`
}

// Config is the top-level structure for skyshield.yaml.
type Config struct {
	Scope  Scope        `yaml:"scope"`
	Feed   FeedConfig   `yaml:"feed"`
	RF     RFConfig     `yaml:"rf"`
	Server ServerConfig `yaml:"server"`
	Log    LogConfig    `yaml:"log"`
}

// Default returns the live-variant configuration with every field populated.
func Default() *Config {
	return &Config{
		Scope: Preset(VariantLive),
		Feed: FeedConfig{
			URL:            "ws://localhost:8000/ws",
			ReconnectDelay: ReconnectDelay,
		},
		RF: RFConfig{
			Adapter:  "hci0",
			MaxRange: 30.0,
			Classic:  true,
			WiFi:     true,
		},
		Server: ServerConfig{
			Addr:              ":8000",
			Simulate:          true,
			HeartbeatInterval: HeartbeatInterval,
			DetectionLog:      500,
		},
		Log: LogConfig{
			File:  "skyshield.log",
			Level: "info",
		},
	}
}

// Load reads a YAML file on top of Default. An empty path returns the defaults.
func Load(path string) (*Config, error) {
	return LoadVariant(path, "")
}

// LoadVariant reads a YAML file on top of the preset for a variant. The
// variant is force when set, otherwise scope.variant from the file, otherwise
// live. File values always win over the preset.
func LoadVariant(path string, force Variant) (*Config, error) {
	cfg := Default()
	var data []byte
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	v := force
	if v == "" && len(data) > 0 {
		var head struct {
			Scope struct {
				Variant Variant `yaml:"variant"`
			} `yaml:"scope"`
		}
		if err := yaml.Unmarshal(data, &head); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
		v = head.Scope.Variant
	}
	if v != "" {
		if v != VariantLive && v != VariantStandalone {
			return nil, fmt.Errorf("scope.variant must be %q or %q, got %q", VariantLive, VariantStandalone, v)
		}
		cfg.Scope = Preset(v)
	}

	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}
	if force != "" {
		cfg.Scope.Variant = force
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects values the scope core cannot run with.
func (c *Config) Validate() error {
	s := c.Scope
	if s.HistoryLimit < 2 {
		return fmt.Errorf("scope.history_limit must be at least 2, got %d", s.HistoryLimit)
	}
	if s.DecayWindow <= 0 {
		return fmt.Errorf("scope.decay_window must be positive, got %v", s.DecayWindow)
	}
	if s.FeedLimit < 0 {
		return fmt.Errorf("scope.feed_limit must not be negative, got %d", s.FeedLimit)
	}
	if s.StaleAfter < 0 {
		return fmt.Errorf("scope.stale_after must not be negative, got %v", s.StaleAfter)
	}
	if s.Particles < 0 || s.Particles > 1 {
		return fmt.Errorf("scope.particle_density must be within [0, 1], got %v", s.Particles)
	}
	switch s.AutoLock {
	case AutoLockAlways, AutoLockOnCreate:
	default:
		return fmt.Errorf("scope.auto_lock must be %q or %q, got %q", AutoLockAlways, AutoLockOnCreate, s.AutoLock)
	}
	if c.Feed.ReconnectDelay <= 0 {
		return fmt.Errorf("feed.reconnect_delay must be positive, got %v", c.Feed.ReconnectDelay)
	}
	if c.RF.MaxRange <= 0 {
		return fmt.Errorf("rf.max_range must be positive, got %v", c.RF.MaxRange)
	}
	return nil
}
