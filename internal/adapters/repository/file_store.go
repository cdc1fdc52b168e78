package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/weblinkcreator/siteapi/internal/domain/entities"
	"github.com/weblinkcreator/siteapi/internal/ports"
)

// FileStore keeps the document in a single JSON file
type FileStore struct {
	path string
	perm os.FileMode
}

// NewFileStore creates a store backed by the file at path
func NewFileStore(path string) ports.DocumentStore {
	return &FileStore{path: path, perm: 0o644}
}

func (s *FileStore) Describe() string {
	return "file:" + s.path
}

// Initialize writes an empty document when the file does not exist yet
func (s *FileStore) Initialize(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	_, err := os.Stat(s.path)
	if err == nil {
		return nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return &entities.ReadError{Source: s.path, Err: err}
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return &entities.WriteError{Source: s.path, Err: err}
		}
	}

	return s.Write(ctx, entities.NewDocument())
}

func (s *FileStore) Read(ctx context.Context) (*entities.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, &entities.ReadError{Source: s.path, Err: err}
	}

	var doc entities.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &entities.ReadError{Source: s.path, Err: fmt.Errorf("parse: %w", err)}
	}
	doc.Normalize()

	return &doc, nil
}

// Write replaces the file atomically: the document goes to a temp file
// in the same directory which is then renamed over the original.
func (s *FileStore) Write(ctx context.Context, doc *entities.Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return &entities.WriteError{Source: s.path, Err: fmt.Errorf("encode: %w", err)}
	}

	if err := s.writeAtomic(data); err != nil {
		return &entities.WriteError{Source: s.path, Err: err}
	}

	return nil
}

func (s *FileStore) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := os.Stat(s.path); err != nil {
		return &entities.ReadError{Source: s.path, Err: err}
	}
	return nil
}

func (s *FileStore) writeAtomic(data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(s.path), "."+filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	cleanup := func(err error) error {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}

	if _, err := tmp.Write(data); err != nil {
		return cleanup(fmt.Errorf("write temp file: %w", err))
	}
	if err := tmp.Sync(); err != nil {
		return cleanup(fmt.Errorf("sync temp file: %w", err))
	}
	if err := tmp.Chmod(s.perm); err != nil {
		return cleanup(fmt.Errorf("chmod temp file: %w", err))
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace document: %w", err)
	}

	return nil
}
