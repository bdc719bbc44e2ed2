package archive

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
)

const documentFile = "store.json"

// FSStore persists the document on the filesystem.
type FSStore struct {
	basePath string
}

// NewFSStore constructs a file-backed document store rooted at basePath.
func NewFSStore(basePath string) *FSStore {
	return &FSStore{basePath: basePath}
}

// Path returns the document location (primarily for testing).
func (s *FSStore) Path() string {
	if s == nil {
		return ""
	}
	return filepath.Join(s.basePath, documentFile)
}

// Load reads and decodes the persisted document. A missing file yields an
// empty document; a malformed one is recovered field by field, with the
// report describing what was defaulted. Only I/O failures are errors.
func (s *FSStore) Load() (Document, Report, error) {
	if s == nil {
		return Document{}, nil, errors.New("document store not configured")
	}
	data, err := os.ReadFile(s.Path())
	if err != nil {
		if os.IsNotExist(err) {
			doc, report := Decode([]byte(`{}`))
			return doc, report, nil
		}
		return Document{}, nil, err
	}
	doc, report := Decode(data)
	return doc, report, nil
}

// Save writes the document atomically (tmp then rename). Unchanged
// content is not rewritten.
func (s *FSStore) Save(doc Document) error {
	if s == nil {
		return errors.New("document store not configured")
	}
	target := s.Path()
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}

	data, err := Encode(doc)
	if err != nil {
		return err
	}
	if existing, err := os.ReadFile(target); err == nil && bytes.Equal(existing, data) {
		return nil
	}

	tmp := target + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, target)
}
