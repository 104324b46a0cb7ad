package store

import (
	"sync"

	"github.com/i474232898/kiteflow/internal/weather"
)

// MemoryStore is a concurrency-safe in-memory holder of the latest dashboard
// state. It keeps a short history of accepted states per location for the
// history endpoint.
type MemoryStore struct {
	mu sync.RWMutex

	latest  weather.AppState
	has     bool
	lastSeq uint64

	// key: location key, value: recent accepted states, oldest first
	history map[string][]weather.AppState

	// retention configuration
	maxHistory int // max number of states per location
}

// NewMemoryStore creates a new MemoryStore.
// If maxHistory is <= 0, only the latest state per location is kept.
func NewMemoryStore(maxHistory int) *MemoryStore {
	if maxHistory <= 0 {
		maxHistory = 1
	}
	return &MemoryStore{
		history:    make(map[string][]weather.AppState),
		maxHistory: maxHistory,
	}
}

// Publish accepts state only if its sequence number is higher than any
// accepted before. It returns whether the state was accepted.
func (s *MemoryStore) Publish(state weather.AppState) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.has && state.Seq <= s.lastSeq {
		return false
	}

	s.latest = state
	s.has = true
	s.lastSeq = state.Seq

	key := state.Location.Key()
	h := append(s.history[key], state)

	// Enforce retention by count.
	if len(h) > s.maxHistory {
		h = h[len(h)-s.maxHistory:]
	}
	s.history[key] = h
	return true
}

// Latest returns the most recently accepted state.
func (s *MemoryStore) Latest() (weather.AppState, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.latest, s.has
}

// ForLocation returns the states accepted for loc, oldest first.
func (s *MemoryStore) ForLocation(loc weather.Location) []weather.AppState {
	s.mu.RLock()
	defer s.mu.RUnlock()

	h := s.history[loc.Key()]
	out := make([]weather.AppState, len(h))
	copy(out, h)
	return out
}
