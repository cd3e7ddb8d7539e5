package rf

import (
	"context"
	"fmt"

	"tinygo.org/x/bluetooth"

	"skyshield.klederson.com/internal/feed"
)

// BLEScanner listens for Bluetooth Low Energy advertisements. It never
// connects to or queries a device.
type BLEScanner struct {
	adapter   *bluetooth.Adapter
	adapterID string
	projector *Projector
}

// NewBLEScanner creates a scanner on the named adapter, or the system default
// when adapterID is empty.
func NewBLEScanner(p *Projector, adapterID string) *BLEScanner {
	return &BLEScanner{
		adapter:   bleAdapter(adapterID),
		adapterID: adapterID,
		projector: p,
	}
}

// Run scans until ctx is cancelled.
func (s *BLEScanner) Run(ctx context.Context, emit feed.Emit) error {
	if err := s.adapter.Enable(); err != nil {
		return fmt.Errorf("enable BLE adapter %q: %w (try running with sudo or setcap cap_net_admin+ep)", s.adapterID, err)
	}

	stop := context.AfterFunc(ctx, func() { _ = s.adapter.StopScan() })
	defer stop()

	log.Info("BLE scan started")
	err := s.adapter.Scan(func(_ *bluetooth.Adapter, result bluetooth.ScanResult) {
		if ctx.Err() != nil {
			return
		}
		sighting := Sighting{
			MAC:  result.Address.String(),
			Name: result.LocalName(),
			RSSI: float64(result.RSSI),
			Kind: KindBLE,
		}

		uav := false
		if mfrs := result.ManufacturerData(); len(mfrs) > 0 {
			uav = IsUAVVendor(mfrs[0].CompanyID)
			// Fallback: identify device by manufacturer data
			if sighting.Name == "" && len(sighting.MAC) >= 17 {
				if mfrName := LookupManufacturer(mfrs[0].CompanyID); mfrName != "" {
					sighting.Name = mfrName + " " + sighting.MAC[12:]
				}
			}
		}

		u := s.projector.Project(sighting)
		u.Threat = uav
		emit(u)
	})
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if err != nil {
		return fmt.Errorf("BLE scan: %w", err)
	}
	return nil
}
