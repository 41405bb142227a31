// Package store keeps raw upstream payloads as JSON files on disk so the
// ticker can be rebuilt offline from a snapshot.
package store

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

type JSONStore struct {
	Root string // e.g. "data/raw"
}

func NewJSONStore(root string) *JSONStore {
	return &JSONStore{Root: root}
}

func (s *JSONStore) Path(rel string) string {
	return filepath.Join(s.Root, filepath.FromSlash(rel))
}

func (s *JSONStore) Exists(rel string) bool {
	_, err := os.Stat(s.Path(rel))
	return err == nil
}

// WriteRaw writes body to rel, creating parent directories. When pretty is
// set and body is valid JSON it is re-indented first; invalid JSON is
// written as-is.
func (s *JSONStore) WriteRaw(rel string, body []byte, pretty bool) error {
	path := s.Path(rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrapf(err, "mkdir %s", filepath.Dir(path))
	}

	if pretty {
		buf := &bytes.Buffer{}
		if err := json.Indent(buf, body, "", "  "); err == nil {
			buf.WriteByte('\n')
			body = buf.Bytes()
		}
	}

	return errors.Wrapf(os.WriteFile(path, body, 0o644), "write %s", rel)
}

// ReadRaw returns the bytes stored at rel. A missing file is reported with
// an error satisfying errors.Is(err, os.ErrNotExist).
func (s *JSONStore) ReadRaw(rel string) ([]byte, error) {
	b, err := os.ReadFile(s.Path(rel))
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", rel)
	}
	return b, nil
}
