// Package models defines the client-side view of a channel: files, snapshots
// and the local edit buffer. Values cross component boundaries by copy; no
// shared mutable structure leaks between the sync engine, the history store
// and the session controller.
package models

import "bytes"

// File is one channel attachment. SizeBytes is always the byte length of
// Content once decoded from the wire.
type File struct {
	ID        string
	Name      string
	MimeType  string
	SizeBytes int64
	Content   []byte
}

// Equal compares two files by id, name, mime type, size and content.
func (f File) Equal(other File) bool {
	return f.ID == other.ID &&
		f.Name == other.Name &&
		f.MimeType == other.MimeType &&
		f.SizeBytes == other.SizeBytes &&
		bytes.Equal(f.Content, other.Content)
}

// Clone returns a deep copy of the file.
func (f File) Clone() File {
	c := f
	if f.Content != nil {
		c.Content = make([]byte, len(f.Content))
		copy(c.Content, f.Content)
	}
	return c
}

// CloneFiles deep-copies a file slice.
func CloneFiles(files []File) []File {
	if files == nil {
		return nil
	}
	out := make([]File, len(files))
	for i, f := range files {
		out[i] = f.Clone()
	}
	return out
}

// FileSizes extracts the declared sizes for budget checks.
func FileSizes(files []File) []int64 {
	sizes := make([]int64, len(files))
	for i, f := range files {
		sizes[i] = f.SizeBytes
	}
	return sizes
}
