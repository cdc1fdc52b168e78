package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"

	"github.com/weblinkcreator/siteapi/internal/domain/entities"
	"github.com/weblinkcreator/siteapi/internal/ports"
)

// RedisStore keeps the document as one JSON string value
type RedisStore struct {
	client *redis.Client
	key    string
}

// NewRedisStore creates a store that reads and writes the value under key
func NewRedisStore(client *redis.Client, key string) ports.DocumentStore {
	return &RedisStore{client: client, key: key}
}

func (s *RedisStore) Describe() string {
	return "redis:" + s.key
}

func (s *RedisStore) Initialize(ctx context.Context) error {
	body, err := json.Marshal(entities.NewDocument())
	if err != nil {
		return &entities.WriteError{Source: s.Describe(), Err: err}
	}

	// SETNX leaves an existing document alone
	if err := s.client.SetNX(ctx, s.key, body, 0).Err(); err != nil {
		return &entities.WriteError{Source: s.Describe(), Err: fmt.Errorf("set empty document: %w", err)}
	}
	return nil
}

func (s *RedisStore) Read(ctx context.Context) (*entities.Document, error) {
	body, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, &entities.ReadError{Source: s.Describe(), Err: errNotInitialized}
	}
	if err != nil {
		return nil, &entities.ReadError{Source: s.Describe(), Err: err}
	}

	var doc entities.Document
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, &entities.ReadError{Source: s.Describe(), Err: fmt.Errorf("decode document: %w", err)}
	}
	doc.Normalize()

	return &doc, nil
}

func (s *RedisStore) Write(ctx context.Context, doc *entities.Document) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return &entities.WriteError{Source: s.Describe(), Err: fmt.Errorf("encode document: %w", err)}
	}

	if err := s.client.Set(ctx, s.key, body, 0).Err(); err != nil {
		return &entities.WriteError{Source: s.Describe(), Err: err}
	}
	return nil
}

func (s *RedisStore) Ping(ctx context.Context) error {
	n, err := s.client.Exists(ctx, s.key).Result()
	if err != nil {
		return &entities.ReadError{Source: s.Describe(), Err: err}
	}
	if n == 0 {
		return &entities.ReadError{Source: s.Describe(), Err: errNotInitialized}
	}
	return nil
}
