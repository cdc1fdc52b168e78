package events

import (
	"context"

	"github.com/weblinkcreator/siteapi/internal/ports"
)

// NoopPublisher drops every event; used when notifications are disabled
type NoopPublisher struct{}

func NewNoopPublisher() ports.EventPublisher {
	return NoopPublisher{}
}

func (NoopPublisher) Publish(ctx context.Context, event ports.Event) error {
	return nil
}

func (NoopPublisher) Close() error {
	return nil
}

// RecordingPublisher keeps published events in memory
type RecordingPublisher struct {
	events chan ports.Event
}

// NewRecordingPublisher buffers up to size events; further events are dropped
func NewRecordingPublisher(size int) *RecordingPublisher {
	return &RecordingPublisher{events: make(chan ports.Event, size)}
}

func (p *RecordingPublisher) Publish(ctx context.Context, event ports.Event) error {
	select {
	case p.events <- event:
	default:
	}
	return nil
}

// Events drains what has been recorded so far
func (p *RecordingPublisher) Events() []ports.Event {
	var out []ports.Event
	for {
		select {
		case e := <-p.events:
			out = append(out, e)
		default:
			return out
		}
	}
}

func (p *RecordingPublisher) Close() error {
	return nil
}
