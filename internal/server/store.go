package server

import (
	"sort"
	"sync"
	"time"

	"github.com/coder/quartz"

	"github.com/cardcount/blackjacksim/internal/session"
)

// StoredMatch is a completed simulation retained for later retrieval.
type StoredMatch struct {
	ID        string               `json:"match_id"`
	Strategy  string               `json:"strategy"`
	BetMode   string               `json:"bet_mode"`
	Seed      int64                `json:"seed"`
	CreatedAt time.Time            `json:"created_at"`
	Records   []session.HandRecord `json:"records"`
}

// MatchStore holds completed matches in memory. Entries expire after a TTL
// and the store is capped, evicting oldest first. The clock is injected so
// tests control time.
type MatchStore struct {
	mu         sync.RWMutex
	clock      quartz.Clock
	ttl        time.Duration
	maxEntries int
	matches    map[string]*StoredMatch
}

// NewMatchStore creates a store with the given retention policy.
func NewMatchStore(clock quartz.Clock, ttl time.Duration, maxEntries int) *MatchStore {
	return &MatchStore{
		clock:      clock,
		ttl:        ttl,
		maxEntries: maxEntries,
		matches:    make(map[string]*StoredMatch),
	}
}

// Put stores a match, evicting expired and excess entries.
func (s *MatchStore) Put(m *StoredMatch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.matches[m.ID] = m
	s.evictLocked(s.clock.Now())
}

// Get returns a stored match if present and not expired.
func (s *MatchStore) Get(id string) (*StoredMatch, bool) {
	s.mu.RLock()
	m, ok := s.matches[id]
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if s.clock.Now().Sub(m.CreatedAt) > s.ttl {
		s.mu.Lock()
		delete(s.matches, id)
		s.mu.Unlock()
		return nil, false
	}
	return m, true
}

// Len returns the number of retained matches, including any not yet
// swept expired entries.
func (s *MatchStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.matches)
}

func (s *MatchStore) evictLocked(now time.Time) {
	for id, m := range s.matches {
		if now.Sub(m.CreatedAt) > s.ttl {
			delete(s.matches, id)
		}
	}
	if len(s.matches) <= s.maxEntries {
		return
	}
	// Over capacity: drop oldest first.
	all := make([]*StoredMatch, 0, len(s.matches))
	for _, m := range s.matches {
		all = append(all, m)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.Before(all[j].CreatedAt) })
	for _, m := range all[:len(all)-s.maxEntries] {
		delete(s.matches, m.ID)
	}
}
