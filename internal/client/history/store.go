// Package history retains a bounded, deduplicated trail of channel snapshots
// observed by the sync engine. History is a client-side convenience view:
// entries are never persisted server-side, and deleting one is a purely
// local operation.
package history

import (
	"sync"
	"time"

	"github.com/dmitrijs2005/lynkc/internal/client/models"
	"github.com/dmitrijs2005/lynkc/internal/timex"
	"github.com/google/uuid"
)

const (
	// DefaultMaxEntries bounds retention; oldest entries are evicted first.
	DefaultMaxEntries = 20

	// SweepInterval is how often expired entries are collected.
	SweepInterval = time.Second
)

// Entry is one retained snapshot. ExpiresAt is derived from the channel TTL
// at observation time; the zero value means the horizon is not yet known.
type Entry struct {
	ID        string
	Text      string
	Files     []models.File
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Store holds entries newest-first. All methods are safe for concurrent use.
type Store struct {
	mu      sync.Mutex
	clock   timex.Clock
	max     int
	entries []Entry
}

func NewStore(clock timex.Clock, max int) *Store {
	if max <= 0 {
		max = DefaultMaxEntries
	}
	return &Store{clock: clock, max: max}
}

// Observe records a snapshot published by the sync engine. It reports
// whether a new entry was created: a snapshot whose content matches the most
// recent retained entry is deduplicated.
//
// Every observation, deduplicated or not, may raise the expiry horizon of
// retained entries: the server refreshes the channel TTL on access, so a
// larger observed TTL pushes expiry later. A smaller TTL never lowers it.
func (s *Store) Observe(snap models.Snapshot) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()

	var horizon time.Time
	if snap.TTLSeconds > 0 {
		horizon = now.Add(time.Duration(snap.TTLSeconds) * time.Second)
	}

	if !horizon.IsZero() {
		for i := range s.entries {
			if s.entries[i].ExpiresAt.IsZero() || horizon.After(s.entries[i].ExpiresAt) {
				s.entries[i].ExpiresAt = horizon
			}
		}
	}

	if len(s.entries) > 0 && s.sameAsEntry(s.entries[0], snap) {
		return false
	}

	entry := Entry{
		ID:        uuid.NewString(),
		Text:      snap.Text,
		Files:     models.CloneFiles(snap.Files),
		CreatedAt: now,
		ExpiresAt: horizon,
	}

	s.entries = append([]Entry{entry}, s.entries...)
	if len(s.entries) > s.max {
		s.entries = s.entries[:s.max]
	}
	return true
}

func (s *Store) sameAsEntry(e Entry, snap models.Snapshot) bool {
	have := models.Snapshot{Text: e.Text, Files: e.Files}
	return have.SameContent(models.Snapshot{Text: snap.Text, Files: snap.Files})
}

// List returns the retained entries, newest first. File contents are
// deep-copied so callers cannot mutate store state.
func (s *Store) List() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Entry, len(s.entries))
	for i, e := range s.entries {
		out[i] = e
		out[i].Files = models.CloneFiles(e.Files)
	}
	return out
}

// Select returns the content of one entry for replay into the edit buffer.
// No network access is involved.
func (s *Store) Select(entryID string) (string, []models.File, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range s.entries {
		if e.ID == entryID {
			return e.Text, models.CloneFiles(e.Files), true
		}
	}
	return "", nil, false
}

// Delete removes a single entry locally.
func (s *Store) Delete(entryID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, e := range s.entries {
		if e.ID == entryID {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			return true
		}
	}
	return false
}

// Sweep removes entries whose expiry has passed and reports how many were
// dropped. Entries with an unknown horizon are kept.
func (s *Store) Sweep(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.entries[:0]
	removed := 0
	for _, e := range s.entries {
		if !e.ExpiresAt.IsZero() && !now.Before(e.ExpiresAt) {
			removed++
			continue
		}
		kept = append(kept, e)
	}
	s.entries = kept
	return removed
}

// Reset drops all entries. Called whenever the channel identity or its
// credential changes, and on detach.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = nil
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
