package rf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"tinygo.org/x/bluetooth"
)

func TestBLEAdapterSelection(t *testing.T) {
	t.Parallel()
	p := NewProjector(30)
	assert.Same(t, bluetooth.DefaultAdapter, NewBLEScanner(p, "").adapter)
	assert.NotSame(t, bluetooth.DefaultAdapter, NewBLEScanner(p, "hci1").adapter)
}
