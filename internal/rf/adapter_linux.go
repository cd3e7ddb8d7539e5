package rf

import "tinygo.org/x/bluetooth"

// bleAdapter opens the BlueZ adapter named id (hci0, hci1, ...).
func bleAdapter(id string) *bluetooth.Adapter {
	if id == "" {
		return bluetooth.DefaultAdapter
	}
	return bluetooth.NewAdapter(id)
}
