//go:build !linux

package rf

import "tinygo.org/x/bluetooth"

// bleAdapter returns the only adapter the platform exposes; id is ignored.
func bleAdapter(id string) *bluetooth.Adapter {
	if id != "" {
		log.WithField("adapter", id).Warn("adapter selection is only supported on Linux, using the default")
	}
	return bluetooth.DefaultAdapter
}
