package rf

import (
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"skyshield.klederson.com/internal/config"
	"skyshield.klederson.com/internal/feed"
)

// ErrNotConfirmed is returned when RF sensing is requested without the
// operator acknowledging that passive monitoring is legal where they are.
var ErrNotConfirmed = errors.New("rf sensing requires rf.confirm_legal: true in the config file")

// Sources builds the passive RF sources enabled by cfg. Classic and WiFi
// scanners are skipped when their system tools are missing.
func Sources(cfg config.RFConfig) ([]feed.Source, error) {
	if !cfg.Enabled {
		return nil, nil
	}
	if !cfg.ConfirmLegal {
		return nil, ErrNotConfirmed
	}

	p := NewProjector(cfg.MaxRange)
	sources := []feed.Source{NewBLEScanner(p, cfg.Adapter)}

	if cfg.Classic {
		if ClassicScannerAvailable() {
			sources = append(sources, NewClassicScanner(p, config.ClassicScanSec*time.Second))
		} else {
			log.Warn("hcitool not found, classic Bluetooth disabled")
		}
	}
	if cfg.WiFi {
		if WiFiScannerAvailable() {
			sources = append(sources, NewWiFiScanner(p, "", config.WiFiScanSec*time.Second))
		} else {
			log.Warn("nmcli and iw not found, WiFi disabled")
		}
	}
	log.WithFields(logrus.Fields{"sources": len(sources), "adapter": cfg.Adapter}).Info("passive RF sensing enabled")
	return sources, nil
}
