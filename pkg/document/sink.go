package document

import (
	"bytes"
	"fmt"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"gitlab.com/tinyland/lab/theme-pulse/pkg/fsutil"
)

// FileName is the mirrored document name inside the state directory.
const FileName = "document.toml"

// FileSink mirrors the attributes to a TOML file:
//
//	data-effective-theme = "dark"
//	data-theme = "dark"
type FileSink struct {
	path string
}

// NewFileSink returns a sink writing dir/document.toml.
func NewFileSink(dir string) *FileSink {
	return &FileSink{path: filepath.Join(dir, FileName)}
}

// Path returns the mirrored file location.
func (s *FileSink) Path() string { return s.path }

// Write replaces the file atomically with attrs.
func (s *FileSink) Write(attrs map[string]string) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(attrs); err != nil {
		return fmt.Errorf("document: encode TOML: %w", err)
	}

	if err := fsutil.WriteAtomic(s.path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("document: write %s: %w", s.path, err)
	}
	return nil
}

// ReadFile loads a mirrored document, for tools that follow the theme.
func ReadFile(path string) (map[string]string, error) {
	attrs := map[string]string{}
	if _, err := toml.DecodeFile(path, &attrs); err != nil {
		return nil, fmt.Errorf("document: read %s: %w", path, err)
	}
	return attrs, nil
}
