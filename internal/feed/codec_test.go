package feed

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	t.Parallel()
	received := time.UnixMilli(1_700_000_100_000)
	sent := time.UnixMilli(1_700_000_000_000)

	tests := []struct {
		name    string
		payload string
		want    Message
		wantErr bool
	}{
		{
			name:    "full track update",
			payload: `{"id":"d1","source":"rf","x":0.25,"y":-0.5,"r":0.1,"rssi":-42,"alt":80,"label":"quad","threat":true,"ts":1700000000000}`,
			want: TrackUpdate{
				ID: "d1", Source: "rf", X: 0.25, Y: -0.5,
				R: Float(0.1), RSSI: Float(-42), Alt: Float(80),
				Label: "quad", Threat: true, At: received, Sent: sent,
			},
		},
		{
			name:    "explicit track type",
			payload: `{"type":"track","id":"d1","x":0,"y":0,"ts":1700000000000}`,
			want:    TrackUpdate{ID: "d1", At: received, Sent: sent},
		},
		{
			name:    "float seconds ts",
			payload: `{"id":"d1","x":0.1,"y":0.1,"ts":1700000000.25}`,
			want:    TrackUpdate{ID: "d1", X: 0.1, Y: 0.1, At: received, Sent: time.UnixMilli(1_700_000_000_250)},
		},
		{
			name:    "unreadable ts is ignored",
			payload: `{"id":"d1","x":0.1,"y":0.1,"ts":"soon"}`,
			want:    TrackUpdate{ID: "d1", X: 0.1, Y: 0.1, At: received},
		},
		{
			name:    "missing ts stamps receive time",
			payload: `{"id":"d1","x":0.1,"y":0.1}`,
			want:    TrackUpdate{ID: "d1", X: 0.1, Y: 0.1, At: received},
		},
		{
			name:    "heartbeat",
			payload: `{"type":"heartbeat","ts":3000}`,
			want:    Heartbeat{At: received, Sent: time.UnixMilli(3_000_000)},
		},
		{
			name:    "heartbeat with float seconds",
			payload: `{"type":"heartbeat","ts":1700000000.5}`,
			want:    Heartbeat{At: received, Sent: time.UnixMilli(1_700_000_000_500)},
		},
		{name: "not json", payload: `{nope`, wantErr: true},
		{name: "unknown type", payload: `{"type":"chat","id":"d1","x":0,"y":0}`, wantErr: true},
		{name: "missing id", payload: `{"x":0,"y":0}`, wantErr: true},
		{name: "missing y", payload: `{"id":"d1","x":0.3}`, wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := Decode([]byte(tt.payload), received)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrMalformed)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	t.Parallel()
	in := TrackUpdate{ID: "sim-2", Source: "sim", X: -0.4, Y: 0.7, RSSI: Float(-63.5), At: time.UnixMilli(12345)}

	data, err := Encode(in)
	require.NoError(t, err)
	received := time.UnixMilli(99_999)
	out, err := Decode(data, received)
	require.NoError(t, err)
	want := in
	want.At, want.Sent = received, in.At
	assert.Equal(t, want, out)

	relayed, err := Encode(want)
	require.NoError(t, err)
	assert.Contains(t, string(relayed), `"ts":12345`, "relays keep the sender time")

	hb, err := EncodeHeartbeat(time.UnixMilli(9))
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"heartbeat","ts":9}`, string(hb))
}

func TestObservation(t *testing.T) {
	t.Parallel()
	u := TrackUpdate{ID: "d1", X: 0.1, Y: 0.2, Alt: Float(30), Threat: true, At: time.UnixMilli(1500)}
	obs := u.Observation()
	assert.Equal(t, int64(1500), obs.TS)
	assert.Equal(t, "d1", obs.ID)
	assert.True(t, obs.Threat)
	require.NotNil(t, obs.Alt)
	assert.InDelta(t, 30, *obs.Alt, 1e-9)
	assert.Nil(t, obs.RSSI)
}
