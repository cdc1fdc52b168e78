package repository

import (
	"context"
	"sync"

	"github.com/weblinkcreator/siteapi/internal/domain/entities"
	"github.com/weblinkcreator/siteapi/internal/ports"
)

// MemoryStore keeps the document in process memory
type MemoryStore struct {
	mu  sync.RWMutex
	doc *entities.Document
}

// NewMemoryStore creates a store, optionally seeded with a document
func NewMemoryStore(seed *entities.Document) ports.DocumentStore {
	s := &MemoryStore{}
	if seed != nil {
		s.doc = seed.Clone()
		s.doc.Normalize()
	}
	return s
}

func (s *MemoryStore) Describe() string {
	return "memory"
}

func (s *MemoryStore) Initialize(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.doc == nil {
		s.doc = entities.NewDocument()
	}
	return nil
}

func (s *MemoryStore) Read(ctx context.Context) (*entities.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.doc == nil {
		return nil, &entities.ReadError{Source: s.Describe(), Err: errNotInitialized}
	}
	return s.doc.Clone(), nil
}

func (s *MemoryStore) Write(ctx context.Context, doc *entities.Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.doc = doc.Clone()
	s.doc.Normalize()
	return nil
}

func (s *MemoryStore) Ping(ctx context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.doc == nil {
		return &entities.ReadError{Source: s.Describe(), Err: errNotInitialized}
	}
	return nil
}
