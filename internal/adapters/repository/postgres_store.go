package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/weblinkcreator/siteapi/internal/domain/entities"
	"github.com/weblinkcreator/siteapi/internal/ports"
)

// PostgresStore keeps the document as one jsonb row
type PostgresStore struct {
	db  *sqlx.DB
	key string
}

// NewPostgresStore creates a store that reads and writes the row named key
func NewPostgresStore(db *sqlx.DB, key string) ports.DocumentStore {
	return &PostgresStore{db: db, key: key}
}

func (s *PostgresStore) Describe() string {
	return "postgres:site_documents/" + s.key
}

func (s *PostgresStore) Initialize(ctx context.Context) error {
	createTable := `
		CREATE TABLE IF NOT EXISTS site_documents (
			key        TEXT PRIMARY KEY,
			body       JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`

	if _, err := s.db.ExecContext(ctx, createTable); err != nil {
		return &entities.WriteError{Source: s.Describe(), Err: fmt.Errorf("create table: %w", err)}
	}

	body, err := json.Marshal(entities.NewDocument())
	if err != nil {
		return &entities.WriteError{Source: s.Describe(), Err: err}
	}

	insertEmpty := `
		INSERT INTO site_documents (key, body)
		VALUES ($1, $2)
		ON CONFLICT (key) DO NOTHING`

	if _, err := s.db.ExecContext(ctx, insertEmpty, s.key, string(body)); err != nil {
		return &entities.WriteError{Source: s.Describe(), Err: fmt.Errorf("insert empty document: %w", err)}
	}

	return nil
}

func (s *PostgresStore) Read(ctx context.Context) (*entities.Document, error) {
	query := `SELECT body FROM site_documents WHERE key = $1`

	var body []byte
	if err := s.db.GetContext(ctx, &body, query, s.key); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &entities.ReadError{Source: s.Describe(), Err: fmt.Errorf("document not initialized")}
		}
		return nil, &entities.ReadError{Source: s.Describe(), Err: err}
	}

	var doc entities.Document
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, &entities.ReadError{Source: s.Describe(), Err: fmt.Errorf("parse: %w", err)}
	}
	doc.Normalize()

	return &doc, nil
}

func (s *PostgresStore) Write(ctx context.Context, doc *entities.Document) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return &entities.WriteError{Source: s.Describe(), Err: fmt.Errorf("encode: %w", err)}
	}

	query := `
		INSERT INTO site_documents (key, body, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET body = EXCLUDED.body, updated_at = now()`

	if _, err := s.db.ExecContext(ctx, query, s.key, string(body)); err != nil {
		return &entities.WriteError{Source: s.Describe(), Err: err}
	}

	return nil
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return &entities.ReadError{Source: s.Describe(), Err: err}
	}
	return nil
}
