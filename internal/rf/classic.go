package rf

import (
	"bufio"
	"context"
	"io"
	"os/exec"
	"strings"
	"time"

	"skyshield.klederson.com/internal/feed"
)

// hcitool scan reports no RSSI; inquiry replies are placed at a fixed level.
const classicRSSI = -75

// ClassicScanner discovers classic Bluetooth devices via hcitool.
type ClassicScanner struct {
	projector *Projector
	interval  time.Duration
}

// NewClassicScanner creates a classic BT scanner that re-runs every interval.
func NewClassicScanner(p *Projector, interval time.Duration) *ClassicScanner {
	return &ClassicScanner{projector: p, interval: interval}
}

// Run scans periodically until ctx is cancelled.
func (s *ClassicScanner) Run(ctx context.Context, emit feed.Emit) error {
	for {
		if err := s.scan(ctx, emit); err != nil && ctx.Err() == nil {
			log.WithError(err).Warn("classic scan failed")
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(s.interval):
		}
	}
}

func (s *ClassicScanner) scan(ctx context.Context, emit feed.Emit) error {
	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	cmd := exec.CommandContext(ctx, "hcitool", "scan", "--flush")
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return err
	}
	if err := cmd.Start(); err != nil {
		return err
	}
	for _, sighting := range parseHcitoolScan(stdout) {
		emit(s.projector.Project(sighting))
	}
	return cmd.Wait()
}

// parseHcitoolScan reads lines of the form "AA:BB:CC:DD:EE:FF\tDevice Name".
func parseHcitoolScan(r io.Reader) []Sighting {
	var out []Sighting
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "Scanning") {
			continue
		}
		parts := strings.SplitN(line, "\t", 2)
		mac := strings.ToUpper(strings.TrimSpace(parts[0]))
		if !isValidMAC(mac) {
			continue
		}
		name := ""
		if len(parts) == 2 {
			name = strings.TrimSpace(parts[1])
		}
		out = append(out, Sighting{MAC: mac, Name: name, RSSI: classicRSSI, Kind: KindClassic})
	}
	return out
}

func isValidMAC(mac string) bool {
	if len(mac) != 17 {
		return false
	}
	for i, c := range mac {
		if (i+1)%3 == 0 {
			if c != ':' {
				return false
			}
		} else {
			if !((c >= '0' && c <= '9') || (c >= 'A' && c <= 'F') || (c >= 'a' && c <= 'f')) {
				return false
			}
		}
	}
	return true
}

// ClassicScannerAvailable checks if hcitool is available on the system.
func ClassicScannerAvailable() bool {
	_, err := exec.LookPath("hcitool")
	return err == nil
}
