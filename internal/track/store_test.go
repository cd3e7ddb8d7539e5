package track

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(v float64) *float64 { return &v }

func TestStoreUpsert(t *testing.T) {
	t.Parallel()

	t.Run("creates track with first sample", func(t *testing.T) {
		t.Parallel()
		s := NewStore(20)
		tr, created := s.Upsert(Observation{ID: "t1", X: 0.1, Y: 0.2, TS: 1000})
		require.True(t, created)
		assert.Equal(t, "t1", tr.Label, "label defaults to id")
		assert.Equal(t, []Sample{{X: 0.1, Y: 0.2, TS: 1000}}, tr.Positions)
		assert.InDelta(t, 0.04, tr.Radius, 1e-9)
		assert.False(t, tr.HasKinematics, "one sample yields no kinematics")
		assert.Same(t, tr, s.Get("t1"))
	})

	t.Run("radius is taken from first observation only", func(t *testing.T) {
		t.Parallel()
		s := NewStore(20)
		s.Upsert(Observation{ID: "t1", TS: 1, Radius: ptr(0.11)})
		tr, created := s.Upsert(Observation{ID: "t1", TS: 2, Radius: ptr(0.5)})
		assert.False(t, created)
		assert.InDelta(t, 0.11, tr.Radius, 1e-9)
	})

	t.Run("last known values survive absent fields", func(t *testing.T) {
		t.Parallel()
		s := NewStore(20)
		s.Upsert(Observation{ID: "t1", Label: "UAV", TS: 1, RSSI: ptr(-40), Alt: ptr(120)})
		tr, _ := s.Upsert(Observation{ID: "t1", TS: 2})
		assert.Equal(t, "UAV", tr.Label)
		assert.True(t, tr.HasRSSI)
		assert.InDelta(t, -40, tr.RSSI, 1e-9)
		assert.True(t, tr.HasAlt)
		assert.InDelta(t, 120, tr.Alt, 1e-9)

		tr, _ = s.Upsert(Observation{ID: "t1", TS: 3, RSSI: ptr(-55)})
		assert.InDelta(t, -55, tr.RSSI, 1e-9)
		assert.Equal(t, []float64{-40, -55}, tr.Signal.Levels())
	})

	t.Run("threat flag is not sticky", func(t *testing.T) {
		t.Parallel()
		s := NewStore(20)
		tr, _ := s.Upsert(Observation{ID: "t1", TS: 1, Threat: true})
		assert.True(t, tr.Threat)
		tr, _ = s.Upsert(Observation{ID: "t1", TS: 2})
		assert.False(t, tr.Threat)
	})
}

func TestStoreHistoryBoundFIFO(t *testing.T) {
	t.Parallel()

	for _, limit := range []int{20, 24} {
		limit := limit
		t.Run(fmt.Sprintf("limit %d", limit), func(t *testing.T) {
			t.Parallel()
			s := NewStore(limit)
			var tr *Track
			for i := 0; i < 3*limit; i++ {
				tr, _ = s.Upsert(Observation{ID: "t1", X: float64(i), TS: int64(i)})
				require.LessOrEqual(t, len(tr.Positions), limit)
			}
			require.Len(t, tr.Positions, limit)
			assert.Equal(t, int64(2*limit), tr.Positions[0].TS, "oldest samples evicted first")
			assert.Equal(t, int64(3*limit-1), tr.Latest().TS)
			for i := 1; i < len(tr.Positions); i++ {
				assert.Less(t, tr.Positions[i-1].TS, tr.Positions[i].TS)
			}
		})
	}
}

func TestStoreAllIsInsertionOrdered(t *testing.T) {
	t.Parallel()
	s := NewStore(20)
	for _, id := range []string{"c", "a", "b"} {
		s.Upsert(Observation{ID: id, TS: 1})
	}
	s.Upsert(Observation{ID: "a", TS: 2})

	var ids []string
	for _, tr := range s.All() {
		ids = append(ids, tr.ID)
	}
	assert.Equal(t, []string{"c", "a", "b"}, ids)
	assert.Equal(t, 3, s.Count())
}

func TestStoreEvictOlderThan(t *testing.T) {
	t.Parallel()
	s := NewStore(20)
	s.Upsert(Observation{ID: "old", TS: 100})
	s.Upsert(Observation{ID: "edge", TS: 500})
	s.Upsert(Observation{ID: "fresh", X: 0, TS: 400})
	s.Upsert(Observation{ID: "fresh", X: 0.5, TS: 900})

	before := append([]Sample(nil), s.Get("fresh").Positions...)

	evicted := s.EvictOlderThan(500)
	assert.Equal(t, []string{"old"}, evicted)
	assert.Nil(t, s.Get("old"))
	require.NotNil(t, s.Get("edge"), "a sample exactly at the cutoff is kept")
	require.NotNil(t, s.Get("fresh"))
	if diff := cmp.Diff(before, s.Get("fresh").Positions); diff != "" {
		t.Errorf("history of kept track changed (-want +got):\n%s", diff)
	}
	assert.Len(t, s.All(), 2)
}

func TestStoreCountThreats(t *testing.T) {
	t.Parallel()
	s := NewStore(20)
	s.Upsert(Observation{ID: "a", TS: 1, Threat: true})
	b, _ := s.Upsert(Observation{ID: "b", TS: 1, Threat: true})
	s.Upsert(Observation{ID: "c", TS: 1})
	b.Neutralized = true
	assert.Equal(t, 1, s.CountThreats())
}

func TestParseAction(t *testing.T) {
	t.Parallel()
	a, err := ParseAction("mark")
	require.NoError(t, err)
	assert.Equal(t, ActionMark, a)

	_, err = ParseAction("destroy")
	assert.Error(t, err)
}
