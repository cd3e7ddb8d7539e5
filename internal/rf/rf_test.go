package rf

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skyshield.klederson.com/internal/config"
)

func TestParseHcitoolScan(t *testing.T) {
	t.Parallel()
	out := "Scanning ...\n\taa:bb:cc:dd:ee:ff\tJBL Flip 6\n\t11:22:33:44:55:66\n\tnot-a-mac\tjunk\n"
	got := parseHcitoolScan(strings.NewReader(out))
	require.Len(t, got, 2)
	assert.Equal(t, Sighting{MAC: "AA:BB:CC:DD:EE:FF", Name: "JBL Flip 6", RSSI: classicRSSI, Kind: KindClassic}, got[0])
	assert.Equal(t, "", got[1].Name)
}

func TestParseNmcliScan(t *testing.T) {
	t.Parallel()
	out := `AA\:BB\:CC\:DD\:EE\:01:Home\:Net:2437 MHz:6:80
AA\:BB\:CC\:DD\:EE\:02::5180 MHz:36:
broken line
`
	got := parseNmcliScan(out)
	require.Len(t, got, 2)

	assert.Equal(t, "AA:BB:CC:DD:EE:01", got[0].MAC)
	assert.Equal(t, "Home:Net", got[0].Name)
	assert.Equal(t, 2437, got[0].Frequency)
	assert.Equal(t, 6, got[0].Channel)
	assert.InDelta(t, -44, got[0].RSSI, 1e-9)
	assert.Equal(t, "2.4G", got[0].Band())

	assert.InDelta(t, -80, got[1].RSSI, 1e-9, "missing signal falls back")
	assert.Equal(t, "5G", got[1].Band())
}

func TestParseIWScan(t *testing.T) {
	t.Parallel()
	out := `BSS 00:11:22:33:44:55(on wlan0)
	freq: 2412.0
	signal: -52.00 dBm
	SSID: cafe
	DS Parameter set: channel 1
BSS 66:77:88:99:aa:bb(on wlan0) -- associated
	freq: 5745
	signal: -71.00 dBm
	SSID: 
	HT operation:
		 * primary channel: 149
`
	got := parseIWScan(out)
	require.Len(t, got, 2)
	assert.Equal(t, Sighting{MAC: "00:11:22:33:44:55", Name: "cafe", RSSI: -52, Kind: KindWiFi, Frequency: 2412, Channel: 1}, got[0])
	assert.Equal(t, "66:77:88:99:AA:BB", got[1].MAC)
	assert.Equal(t, 149, got[1].Channel)
	assert.InDelta(t, -71, got[1].RSSI, 1e-9)
}

func TestRSSIToDistance(t *testing.T) {
	t.Parallel()
	assert.InDelta(t, 1.0, RSSIToDistance(config.MeasuredPower, config.MeasuredPower, config.PathLossExp), 1e-9)
	assert.InDelta(t, 10.0, RSSIToDistance(config.MeasuredPower-25, config.MeasuredPower, config.PathLossExp), 1e-9)
	assert.InDelta(t, 0.1, RSSIToDistance(5, config.MeasuredPower, config.PathLossExp), 1e-9)
}

func TestProjector(t *testing.T) {
	t.Parallel()
	p := NewProjector(30)
	p.Now = func() time.Time { return time.UnixMilli(4200) }

	s := Sighting{MAC: "AA:BB:CC:DD:EE:FF", RSSI: config.MeasuredPower - 25, Kind: KindBLE}
	u := p.Project(s)
	assert.Equal(t, "rf-AA:BB:CC:DD:EE:FF", u.ID)
	assert.Equal(t, "rf", u.Source)
	assert.Equal(t, "BLE EE:FF", u.Label)
	assert.Equal(t, time.UnixMilli(4200), u.At)

	bearing := MacToBearing(s.MAC)
	assert.Equal(t, bearing, MacToBearing(s.MAC), "bearing is stable per address")
	assert.InDelta(t, 10.0/30, math.Hypot(u.X, u.Y), 1e-9)
	assert.InDelta(t, math.Sin(bearing), u.X/math.Hypot(u.X, u.Y), 1e-9)

	// Second reading is smoothed toward the new value.
	s.RSSI = -100
	u = p.Project(s)
	assert.InDelta(t, (config.MeasuredPower-25)*0.7+(-100)*0.3, *u.RSSI, 1e-9)
}

func TestProjectorClampsToEdge(t *testing.T) {
	t.Parallel()
	u := NewProjector(1).Project(Sighting{MAC: "00:00:00:00:00:01", RSSI: -100, Name: "far"})
	assert.InDelta(t, 1, math.Hypot(u.X, u.Y), 1e-9)
	assert.Equal(t, "far", u.Label)
}

func TestSourcesGate(t *testing.T) {
	t.Parallel()
	cfg := config.Default().RF

	srcs, err := Sources(cfg)
	require.NoError(t, err)
	assert.Empty(t, srcs, "disabled by default")

	cfg.Enabled = true
	_, err = Sources(cfg)
	assert.ErrorIs(t, err, ErrNotConfirmed)
}

func TestLookupManufacturer(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "Apple", LookupManufacturer(0x004C))
	assert.Equal(t, "", LookupManufacturer(0xFFFF))
	assert.True(t, IsUAVVendor(0x08AA))
	assert.False(t, IsUAVVendor(0x004C))
}

func TestSourcesUseConfiguredAdapter(t *testing.T) {
	t.Parallel()
	cfg := config.Default().RF
	cfg.Enabled, cfg.ConfirmLegal = true, true
	cfg.Classic, cfg.WiFi = false, false
	cfg.Adapter = "hci1"

	sources, err := Sources(cfg)
	require.NoError(t, err)
	require.Len(t, sources, 1)
	ble, ok := sources[0].(*BLEScanner)
	require.True(t, ok)
	assert.Equal(t, "hci1", ble.adapterID)
}
