package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOSSaver_SavesAndDeduplicatesNames(t *testing.T) {
	s := &osSaver{dir: t.TempDir()}

	first, err := s.Save("note.txt", []byte("one"))
	require.NoError(t, err)
	assert.Equal(t, "note.txt", filepath.Base(first))

	second, err := s.Save("note.txt", []byte("two"))
	require.NoError(t, err)
	assert.Equal(t, "note (1).txt", filepath.Base(second))

	third, err := s.Save("note.txt", []byte("three"))
	require.NoError(t, err)
	assert.Equal(t, "note (2).txt", filepath.Base(third))

	data, err := os.ReadFile(first)
	require.NoError(t, err)
	assert.Equal(t, "one", string(data))
}

func TestOSSaver_StripsDirectoryFromName(t *testing.T) {
	s := &osSaver{dir: t.TempDir()}

	path, err := s.Save("../../etc/passwd", []byte("x"))
	require.NoError(t, err)
	assert.Equal(t, "passwd", filepath.Base(path))
	assert.Equal(t, s.dir, filepath.Dir(path))
}
