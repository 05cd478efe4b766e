package prefstore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"gitlab.com/tinyland/lab/theme-pulse/pkg/fsutil"
)

// FileName is the preferences document name inside the state directory.
const FileName = "preferences.yaml"

// FileStore is a disk-backed Store. All preferences live in one YAML
// mapping of string keys to string values. The file is re-read on every Get
// so separate sessions (and separate FileStore values) observe each other's
// writes, and every Set is atomic via temp-file-then-rename.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore returns a store backed by dir/preferences.yaml. The
// directory is created lazily on the first Set.
func NewFileStore(dir string) *FileStore {
	return &FileStore{path: filepath.Join(dir, FileName)}
}

// Path returns the location of the preferences document.
func (s *FileStore) Path() string { return s.path }

// Get returns the stored value for key. A missing file or key yields
// ErrNotFound; an unreadable or corrupt file yields an UnavailableError.
func (s *FileStore) Get(key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.readLocked()
	if err != nil {
		return "", err
	}
	v, ok := values[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

// Set stores value under key, preserving every other key in the document.
func (s *FileStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.readLocked()
	switch {
	case errors.Is(err, errParse):
		// A corrupt document is replaced rather than blocking every write.
		values = map[string]string{}
	case err != nil:
		return err
	}
	values[key] = value

	data, err := yaml.Marshal(values)
	if err != nil {
		return &UnavailableError{Op: "write", Path: s.path, Err: fmt.Errorf("encode YAML: %w", err)}
	}

	if err := fsutil.WriteAtomic(s.path, data, 0o644); err != nil {
		return &UnavailableError{Op: "write", Path: s.path, Err: err}
	}
	return nil
}

var errParse = errors.New("parse YAML")

// readLocked loads the document. A missing file is an empty document.
func (s *FileStore) readLocked() (map[string]string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, &UnavailableError{Op: "read", Path: s.path, Err: err}
	}

	values := map[string]string{}
	if err := yaml.Unmarshal(data, &values); err != nil {
		return nil, &UnavailableError{Op: "read", Path: s.path, Err: fmt.Errorf("%w: %v", errParse, err)}
	}
	if values == nil {
		values = map[string]string{}
	}
	return values, nil
}
