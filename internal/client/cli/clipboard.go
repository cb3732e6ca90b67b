package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/dmitrijs2005/lynkc/internal/filex"
)

// systemClipboard adapts the platform clipboard to the session layer.
type systemClipboard struct{}

func (systemClipboard) WriteText(text string) error {
	return clipboard.WriteAll(text)
}

// osSaver writes downloads into a dedicated subdirectory of the working
// directory, deduplicating names so repeated saves never overwrite.
type osSaver struct {
	dir string
}

func newOSSaver(dirName string) (*osSaver, error) {
	dir, err := filex.EnsureSubdDir(dirName)
	if err != nil {
		return nil, err
	}
	return &osSaver{dir: dir}, nil
}

func (s *osSaver) Save(name string, data []byte) (string, error) {
	path := s.uniquePath(filepath.Base(name))
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", err
	}
	return path, nil
}

func (s *osSaver) uniquePath(name string) string {
	path := filepath.Join(s.dir, name)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return path
	}

	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)
	for i := 1; ; i++ {
		candidate := filepath.Join(s.dir, fmt.Sprintf("%s (%d)%s", base, i, ext))
		if _, err := os.Stat(candidate); os.IsNotExist(err) {
			return candidate
		}
	}
}
