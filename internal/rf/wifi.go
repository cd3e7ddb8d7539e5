package rf

import (
	"bufio"
	"context"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"skyshield.klederson.com/internal/feed"
)

// WiFiScanner reads nearby access points and hotspots. It prefers nmcli (no
// root needed) and falls back to iw (needs root).
type WiFiScanner struct {
	projector *Projector
	iface     string
	interval  time.Duration
	useNmcli  bool
}

// NewWiFiScanner creates a WiFi scanner. If iface is empty, auto-detects.
func NewWiFiScanner(p *Projector, iface string, interval time.Duration) *WiFiScanner {
	useNmcli := nmcliAvailable()
	if iface == "" && !useNmcli {
		iface = detectWiFiInterface()
	}
	return &WiFiScanner{
		projector: p,
		iface:     iface,
		interval:  interval,
		useNmcli:  useNmcli,
	}
}

// Run scans periodically until ctx is cancelled.
func (s *WiFiScanner) Run(ctx context.Context, emit feed.Emit) error {
	for {
		sightings, err := s.scan(ctx)
		if err != nil && ctx.Err() == nil {
			log.WithError(err).WithField("nmcli", s.useNmcli).Warn("wifi scan failed")
		}
		for _, sighting := range sightings {
			emit(s.projector.Project(sighting))
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(s.interval):
		}
	}
}

func (s *WiFiScanner) scan(ctx context.Context) ([]Sighting, error) {
	ctx, cancel := context.WithTimeout(ctx, 20*time.Second)
	defer cancel()

	if s.useNmcli {
		// Cached results; NetworkManager rescans on its own and an explicit
		// rescan clears the list momentarily.
		out, err := exec.CommandContext(ctx, "nmcli", "-t", "-f", "BSSID,SSID,FREQ,CHAN,SIGNAL", "dev", "wifi", "list").Output()
		if err != nil {
			return nil, err
		}
		return parseNmcliScan(string(out)), nil
	}

	out, err := exec.CommandContext(ctx, "iw", "dev", s.iface, "scan").Output()
	if err != nil {
		return nil, err
	}
	return parseIWScan(string(out)), nil
}

// parseNmcliScan parses nmcli terse output.
// Format per line: BSSID:SSID:FREQ:CHAN:SIGNAL
// In terse mode, literal colons in values are escaped as \:
func parseNmcliScan(output string) []Sighting {
	var results []Sighting

	scanner := bufio.NewScanner(strings.NewReader(output))
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}

		const placeholder = "\x00"
		escaped := strings.ReplaceAll(line, `\:`, placeholder)
		parts := strings.Split(escaped, ":")
		for i := range parts {
			parts[i] = strings.ReplaceAll(parts[i], placeholder, ":")
		}
		if len(parts) < 5 {
			continue
		}

		mac := strings.ToUpper(strings.TrimSpace(parts[0]))
		if !isValidMAC(mac) {
			continue
		}
		freq, _ := strconv.Atoi(strings.TrimSuffix(strings.TrimSpace(parts[2]), " MHz"))
		channel, _ := strconv.Atoi(strings.TrimSpace(parts[3]))

		rssi := -80.0
		if signal, err := strconv.Atoi(strings.TrimSpace(parts[4])); err == nil {
			// SIGNAL is a 0-100 percentage: 100% ~ -30dBm, 0% ~ -100dBm
			rssi = float64(-100 + signal*70/100)
		}

		results = append(results, Sighting{
			MAC:       mac,
			Name:      strings.TrimSpace(parts[1]),
			RSSI:      rssi,
			Kind:      KindWiFi,
			Frequency: freq,
			Channel:   channel,
		})
	}
	return results
}

// parseIWScan parses the output of `iw dev <iface> scan`.
func parseIWScan(output string) []Sighting {
	var (
		results []Sighting
		current *Sighting
	)
	flush := func() {
		if current != nil && isValidMAC(current.MAC) {
			results = append(results, *current)
		}
	}

	scanner := bufio.NewScanner(strings.NewReader(output))
	for scanner.Scan() {
		line := scanner.Text()

		// New BSS block: "BSS aa:bb:cc:dd:ee:ff(on wlan0)"
		if strings.HasPrefix(line, "BSS ") {
			flush()
			mac := strings.TrimPrefix(line, "BSS ")
			if idx := strings.IndexByte(mac, '('); idx >= 0 {
				mac = mac[:idx]
			}
			current = &Sighting{
				MAC:  strings.ToUpper(strings.TrimSpace(mac)),
				RSSI: -80,
				Kind: KindWiFi,
			}
			continue
		}
		if current == nil {
			continue
		}

		trimmed := strings.TrimPrefix(strings.TrimSpace(line), "* ")
		switch {
		case strings.HasPrefix(trimmed, "SSID: "):
			current.Name = strings.TrimPrefix(trimmed, "SSID: ")
		case strings.HasPrefix(trimmed, "freq: "):
			// Newer iw prints fractional MHz ("freq: 2437.0").
			if v, err := strconv.ParseFloat(strings.TrimPrefix(trimmed, "freq: "), 64); err == nil {
				current.Frequency = int(v)
			}
		case strings.HasPrefix(trimmed, "signal: "):
			sig := strings.TrimSpace(strings.TrimSuffix(strings.TrimPrefix(trimmed, "signal: "), " dBm"))
			if v, err := strconv.ParseFloat(sig, 64); err == nil {
				current.RSSI = v
			}
		case strings.HasPrefix(trimmed, "DS Parameter set: channel "):
			if v, err := strconv.Atoi(strings.TrimPrefix(trimmed, "DS Parameter set: channel ")); err == nil {
				current.Channel = v
			}
		case strings.HasPrefix(trimmed, "primary channel: ") && current.Channel == 0:
			if v, err := strconv.Atoi(strings.TrimPrefix(trimmed, "primary channel: ")); err == nil {
				current.Channel = v
			}
		}
	}
	flush()
	return results
}

// WiFiScannerAvailable checks if nmcli or iw is available on the system.
func WiFiScannerAvailable() bool {
	return nmcliAvailable() || iwAvailable()
}

func nmcliAvailable() bool {
	_, err := exec.LookPath("nmcli")
	return err == nil
}

func iwAvailable() bool {
	_, err := exec.LookPath("iw")
	return err == nil
}

// detectWiFiInterface finds the first wireless interface via `iw dev`.
func detectWiFiInterface() string {
	out, err := exec.Command("iw", "dev").Output()
	if err != nil {
		return "wlan0"
	}
	scanner := bufio.NewScanner(strings.NewReader(string(out)))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(line, "Interface ") {
			return strings.TrimPrefix(line, "Interface ")
		}
	}
	return "wlan0"
}
