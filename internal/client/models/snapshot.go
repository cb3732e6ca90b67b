package models

// Snapshot is the full observed state of a channel at one poll. TTLSeconds
// is the remaining server-side lifetime at observation time; absence of any
// observation is modeled by a nil *Snapshot, never by a sentinel value here.
type Snapshot struct {
	Text       string
	Files      []File
	TTLSeconds int64
}

// SameContent reports whether two snapshots carry identical content. Files
// are compared positionally: the same files in a different order count as a
// different snapshot. TTL is ignored, it changes on every poll.
func (s Snapshot) SameContent(other Snapshot) bool {
	if s.Text != other.Text {
		return false
	}
	if len(s.Files) != len(other.Files) {
		return false
	}
	for i := range s.Files {
		if !s.Files[i].Equal(other.Files[i]) {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of the snapshot.
func (s Snapshot) Clone() Snapshot {
	return Snapshot{
		Text:       s.Text,
		Files:      CloneFiles(s.Files),
		TTLSeconds: s.TTLSeconds,
	}
}

// EditBuffer is the local, never-expiring edit state owned by the session
// controller. It is mutated directly by user actions and cleared on detach.
type EditBuffer struct {
	Text  string
	Files []File
}

// Clear empties the buffer.
func (b *EditBuffer) Clear() {
	b.Text = ""
	b.Files = nil
}
