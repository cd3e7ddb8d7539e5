package config

import "time"

const (
	// RSSI to distance estimation
	MeasuredPower = -59.0 // RSSI at 1 meter (dBm)
	PathLossExp   = 2.5   // Path loss exponent (N)

	// Radar display
	AspectRatio   = 0.5  // Terminal char aspect correction (chars are ~2:1 tall)
	RingCount     = 4    // Number of concentric rings
	SweepWidthRad = 0.3  // Angular width of the sweep wedge
	SweepTrailDeg = 60.0 // Glow trail behind the wedge in degrees
	TargetFPS     = 30   // Target frames per second

	// Track lifecycle
	MinAlpha       = 0.12             // Floor for decayed glyph opacity
	StaleAfter     = 20 * time.Second // Live variant hard eviction window
	DefaultRadius  = 0.04             // Target extent when an update carries none
	RSSIHistoryLen = 32               // Samples kept for the lock panel sparkline
	SmoothingAlpha = 0.3              // EMA smoothing factor (30% new, 70% old)

	// Lock manager
	SentinelID          = "intruder-1"
	BannerDuration      = 3800 * time.Millisecond
	MutedBannerDuration = 2600 * time.Millisecond
	OverlayDuration     = 3200 * time.Millisecond
	OfflineGrace        = 1500 * time.Millisecond // Live feed must connect within this
	PickRadiusPx        = 48.0                    // Click-to-lock radius in pixels
	CellPixels          = 8.0                     // Approximate pixel width of one terminal cell

	// Reticle
	ReticleOrbit     = 0.82 // Reticle orbit as a fraction of the radar radius
	ReticleReachPx   = 36.0
	ReticleHighlight = 900 * time.Millisecond

	// Transport
	ReconnectDelay    = 2 * time.Second
	HeartbeatInterval = 30 * time.Second

	// Particles
	ParticleBase = 24 // Particle count at density 1.0

	// Scanner
	ClassicScanSec = 8 // hcitool scan duration in seconds
	WiFiScanSec    = 10

	// App
	AppName    = "SKYSHIELD"
	AppVersion = "1.0"
)

// Variant selects one of the two deployments sharing the scope core.
type Variant string

const (
	VariantLive       Variant = "live"
	VariantStandalone Variant = "standalone"
)

// AutoLock selects when a threat or sentinel update seizes the lock.
type AutoLock string

const (
	// AutoLockAlways re-locks on every threat update; the last threat wins.
	AutoLockAlways AutoLock = "always"
	// AutoLockOnCreate only locks when the threat track first appears, so
	// jittered replays of the same target do not steal a manual lock.
	AutoLockOnCreate AutoLock = "on_create"
)

// Scope holds the tunables that differ between the live and standalone variants.
type Scope struct {
	Variant         Variant       `yaml:"variant"`
	HistoryLimit    int           `yaml:"history_limit"`
	DecayWindow     time.Duration `yaml:"decay_window"`
	StaleAfter      time.Duration `yaml:"stale_after"` // zero disables reaping
	FeedLimit       int           `yaml:"feed_limit"`
	FeedUpdates     bool          `yaml:"feed_updates"` // list every update, not just new contacts
	ScanSpeed       float64       `yaml:"scan_speed"`
	SweepGain       float64       `yaml:"sweep_gain"` // sweep step = ScanSpeed * SweepGain
	Particles       float64       `yaml:"particle_density"`
	Reticle         bool          `yaml:"reticle"`
	Sound           bool          `yaml:"sound"`
	QuickNeutralize bool          `yaml:"quick_neutralize"`
	AutoLock        AutoLock      `yaml:"auto_lock"`
	JitterInterval  time.Duration `yaml:"jitter_interval"`
}

// Preset returns the scope tunables for a variant.
func Preset(v Variant) Scope {
	if v == VariantStandalone {
		return Scope{
			Variant:        VariantStandalone,
			HistoryLimit:   24,
			DecayWindow:    7000 * time.Millisecond,
			FeedLimit:      20,
			ScanSpeed:      0.035,
			SweepGain:      0.9,
			Particles:      0.6,
			Reticle:        true,
			AutoLock:       AutoLockOnCreate,
			JitterInterval: 450 * time.Millisecond,
		}
	}
	return Scope{
		Variant:      VariantLive,
		HistoryLimit: 20,
		DecayWindow:  8000 * time.Millisecond,
		StaleAfter:   StaleAfter,
		FeedLimit:    30,
		FeedUpdates:  true,
		ScanSpeed:    0.02,
		SweepGain:    1,
		Particles:    0,
		AutoLock:     AutoLockAlways,
	}
}
