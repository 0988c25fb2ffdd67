package store

import (
	"os"
	"path/filepath"
	"strings"
)

// File persists each key as a file under a base directory. Keys are
// flattened to safe file names, so distinct keys must not collide after
// sanitisation.
type File struct {
	dir string
}

// NewFile constructs a file-backed store rooted at dir. The directory is
// created lazily on first write.
func NewFile(dir string) *File {
	return &File{dir: dir}
}

func (f *File) Get(key string) (string, bool) {
	if f.dir == "" || key == "" {
		return "", false
	}
	data, err := os.ReadFile(f.path(key))
	if err != nil {
		return "", false
	}
	return string(data), true
}

func (f *File) Set(key, raw string) bool {
	if f.dir == "" || key == "" {
		return false
	}
	if err := os.MkdirAll(f.dir, 0o755); err != nil {
		return false
	}
	return os.WriteFile(f.path(key), []byte(raw), 0o644) == nil
}

func (f *File) path(key string) string {
	safe := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '-' || r == '_' || r == '.':
			return r
		default:
			return '_'
		}
	}, key)
	return filepath.Join(f.dir, safe+".json")
}
