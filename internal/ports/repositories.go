package ports

import (
	"context"
	"time"

	"github.com/weblinkcreator/siteapi/internal/domain/entities"
)

// DocumentStore is the only component allowed to touch the persisted document
type DocumentStore interface {
	// Initialize creates an empty document when none exists. It never alters an existing one.
	Initialize(ctx context.Context) error
	// Read returns a private copy of the full document.
	Read(ctx context.Context) (*entities.Document, error)
	// Write replaces the full document.
	Write(ctx context.Context, doc *entities.Document) error
	Ping(ctx context.Context) error
	// Describe names the backing storage for logs and errors.
	Describe() string
}

// IDGenerator hands out order ids
type IDGenerator interface {
	Next() entities.ID
}

// Event is a notification about a change to the document
type Event struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	OccurredAt time.Time `json:"occurredAt"`
	Payload    any       `json:"payload"`
}

// Event types
const (
	EventOrderCreated       = "order.created"
	EventOrderStatusChanged = "order.status_changed"
	EventOrderDeleted       = "order.deleted"
)

// EventPublisher delivers events to interested parties
type EventPublisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}
