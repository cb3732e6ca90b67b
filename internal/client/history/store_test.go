package history

import (
	"fmt"
	"testing"
	"time"

	"github.com/dmitrijs2005/lynkc/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.t
}

func (c *fakeClock) advance(d time.Duration) {
	c.t = c.t.Add(d)
}

func newTestStore(max int) (*Store, *fakeClock) {
	clock := &fakeClock{t: time.Date(2026, 8, 23, 12, 0, 0, 0, time.UTC)}
	return NewStore(clock, max), clock
}

func file(id string, content []byte) models.File {
	return models.File{ID: id, Name: id + ".bin", MimeType: "application/octet-stream", SizeBytes: int64(len(content)), Content: content}
}

func TestObserve_DeduplicatesIdenticalSnapshots(t *testing.T) {
	s, _ := newTestStore(0)

	snap := models.Snapshot{Text: "x", TTLSeconds: 900}
	require.True(t, s.Observe(snap))
	require.False(t, s.Observe(snap))

	assert.Equal(t, 1, s.Len())
}

func TestObserve_NewEntryOnContentChange(t *testing.T) {
	s, _ := newTestStore(0)

	require.True(t, s.Observe(models.Snapshot{Text: "x", TTLSeconds: 900}))
	require.True(t, s.Observe(models.Snapshot{Text: "y", TTLSeconds: 900}))

	entries := s.List()
	require.Len(t, entries, 2)
	// Newest first.
	assert.Equal(t, "y", entries[0].Text)
	assert.Equal(t, "x", entries[1].Text)
}

func TestObserve_FileReorderIsANewEntry(t *testing.T) {
	s, _ := newTestStore(0)

	a := file("f1", []byte("aaa"))
	b := file("f2", []byte("bbb"))

	require.True(t, s.Observe(models.Snapshot{Files: []models.File{a, b}, TTLSeconds: 900}))
	// Same files, swapped positions: positional equality says different.
	require.True(t, s.Observe(models.Snapshot{Files: []models.File{b, a}, TTLSeconds: 900}))

	assert.Equal(t, 2, s.Len())
}

func TestObserve_BoundEvictsOldestFIFO(t *testing.T) {
	s, _ := newTestStore(20)

	for i := 0; i < 25; i++ {
		require.True(t, s.Observe(models.Snapshot{Text: fmt.Sprintf("v%d", i), TTLSeconds: 900}))
	}

	entries := s.List()
	require.Len(t, entries, 20)
	assert.Equal(t, "v24", entries[0].Text)
	assert.Equal(t, "v5", entries[19].Text)
}

func TestObserve_ExpiryRaisedNeverLowered(t *testing.T) {
	s, clock := newTestStore(0)
	start := clock.Now()

	require.True(t, s.Observe(models.Snapshot{Text: "x", TTLSeconds: 900}))
	wantExpiry := start.Add(900 * time.Second)
	assert.Equal(t, wantExpiry, s.List()[0].ExpiresAt)

	// A smaller remaining TTL does not pull expiry earlier.
	require.False(t, s.Observe(models.Snapshot{Text: "x", TTLSeconds: 10}))
	assert.Equal(t, wantExpiry, s.List()[0].ExpiresAt)

	// A larger TTL pushes it later, even on a deduplicated observation.
	clock.advance(5 * time.Second)
	require.False(t, s.Observe(models.Snapshot{Text: "x", TTLSeconds: 1800}))
	assert.Equal(t, start.Add(5*time.Second).Add(1800*time.Second), s.List()[0].ExpiresAt)
}

func TestSweep_RemovesExpiredEntries(t *testing.T) {
	s, clock := newTestStore(0)

	require.True(t, s.Observe(models.Snapshot{Text: "x", TTLSeconds: 10}))
	require.Equal(t, 1, s.Len())

	// Just before expiry the entry is still present.
	assert.Zero(t, s.Sweep(clock.Now().Add(9*time.Second)))
	assert.Equal(t, 1, s.Len())

	// At expiry (now >= expiresAt) it is gone.
	assert.Equal(t, 1, s.Sweep(clock.Now().Add(10*time.Second)))
	assert.Zero(t, s.Len())
}

func TestSweep_KeepsEntriesWithUnknownHorizon(t *testing.T) {
	s, clock := newTestStore(0)

	require.True(t, s.Observe(models.Snapshot{Text: "x", TTLSeconds: 0}))
	assert.Zero(t, s.Sweep(clock.Now().Add(time.Hour)))
	assert.Equal(t, 1, s.Len())
}

func TestSelect_ReturnsCopiedContent(t *testing.T) {
	s, _ := newTestStore(0)

	require.True(t, s.Observe(models.Snapshot{Text: "x", Files: []models.File{file("f1", []byte("aaa"))}, TTLSeconds: 900}))
	id := s.List()[0].ID

	text, files, ok := s.Select(id)
	require.True(t, ok)
	assert.Equal(t, "x", text)
	require.Len(t, files, 1)

	// Mutating the returned copy leaves the store untouched.
	files[0].Content[0] = 'z'
	_, again, _ := s.Select(id)
	assert.Equal(t, byte('a'), again[0].Content[0])

	_, _, ok = s.Select("nope")
	assert.False(t, ok)
}

func TestDelete_RemovesSingleEntry(t *testing.T) {
	s, _ := newTestStore(0)

	require.True(t, s.Observe(models.Snapshot{Text: "x", TTLSeconds: 900}))
	require.True(t, s.Observe(models.Snapshot{Text: "y", TTLSeconds: 900}))

	id := s.List()[1].ID
	require.True(t, s.Delete(id))
	assert.False(t, s.Delete(id))

	entries := s.List()
	require.Len(t, entries, 1)
	assert.Equal(t, "y", entries[0].Text)
}

func TestReset_DropsEverything(t *testing.T) {
	s, _ := newTestStore(0)

	require.True(t, s.Observe(models.Snapshot{Text: "x", TTLSeconds: 900}))
	s.Reset()
	assert.Zero(t, s.Len())
	assert.Empty(t, s.List())
}
