package store

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/kiteflow/internal/weather"
)

var capeCod = weather.Location{Latitude: 41.6688, Longitude: -70.2962, Name: "Cape Cod, MA"}

func stateAt(seq uint64, loc weather.Location) weather.AppState {
	return weather.AppState{Seq: seq, Location: loc}
}

func TestMemoryStore_EmptyLatest(t *testing.T) {
	s := NewMemoryStore(5)
	_, ok := s.Latest()
	assert.False(t, ok)
}

func TestMemoryStore_AcceptsHigherSeqOnly(t *testing.T) {
	s := NewMemoryStore(5)

	require.True(t, s.Publish(stateAt(2, capeCod)))
	assert.False(t, s.Publish(stateAt(1, capeCod)), "older run must not overwrite newer state")
	assert.False(t, s.Publish(stateAt(2, capeCod)), "equal seq is not newer")

	got, ok := s.Latest()
	require.True(t, ok)
	assert.Equal(t, uint64(2), got.Seq)

	assert.True(t, s.Publish(stateAt(3, capeCod)))
	got, _ = s.Latest()
	assert.Equal(t, uint64(3), got.Seq)
}

func TestMemoryStore_HistoryRetention(t *testing.T) {
	s := NewMemoryStore(2)
	hood := weather.Location{Latitude: 45.7054, Longitude: -121.5215, Name: "Hood River, OR"}

	s.Publish(stateAt(1, capeCod))
	s.Publish(stateAt(2, hood))
	s.Publish(stateAt(3, capeCod))
	s.Publish(stateAt(4, capeCod))

	h := s.ForLocation(capeCod)
	require.Len(t, h, 2)
	assert.Equal(t, uint64(3), h[0].Seq)
	assert.Equal(t, uint64(4), h[1].Seq)

	assert.Len(t, s.ForLocation(hood), 1)
}

func TestMemoryStore_ZeroHistoryKeepsOne(t *testing.T) {
	s := NewMemoryStore(0)
	s.Publish(stateAt(1, capeCod))
	s.Publish(stateAt(2, capeCod))
	assert.Len(t, s.ForLocation(capeCod), 1)
}

func TestMemoryStore_ConcurrentPublishKeepsMax(t *testing.T) {
	s := NewMemoryStore(3)

	var wg sync.WaitGroup
	for i := 1; i <= 100; i++ {
		wg.Add(1)
		go func(seq uint64) {
			defer wg.Done()
			s.Publish(stateAt(seq, capeCod))
		}(uint64(i))
	}
	wg.Wait()

	got, ok := s.Latest()
	require.True(t, ok)
	assert.Equal(t, uint64(100), got.Seq)
}
