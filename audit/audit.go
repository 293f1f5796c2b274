// Package audit provides the append-only audit trail for domain events.
//
// The engine only ever writes audit events; nothing in the core reads them
// back. Recorder is the interface audit backends implement; the in-memory
// Log is the default, and callers bridge to an external trail by injecting
// a RecorderFunc at wiring time.
package audit

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/xraph/certpay/id"
)

// ErrInvalidEvent is returned when an event is missing one of its four
// mandatory identifying fields.
var ErrInvalidEvent = errors.New("audit: missing required event field")

// Event is one immutable audit record. ActorID, Action, ResourceType and
// ResourceID are all mandatory; Metadata carries the closed per-action
// key set documented in constants.go.
type Event struct {
	ActorID      id.UserID      `json:"actor_id"`
	Action       string         `json:"action"`
	ResourceType string         `json:"resource_type"`
	ResourceID   string         `json:"resource_id"`
	Metadata     map[string]any `json:"metadata,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
}

// NewEvent builds a validated audit event with a generated timestamp.
func NewEvent(actorID id.UserID, action, resourceType, resourceID string, metadata map[string]any) (*Event, error) {
	switch {
	case actorID.IsNil():
		return nil, fmt.Errorf("%w: actor_id", ErrInvalidEvent)
	case action == "":
		return nil, fmt.Errorf("%w: action", ErrInvalidEvent)
	case resourceType == "":
		return nil, fmt.Errorf("%w: resource_type", ErrInvalidEvent)
	case resourceID == "":
		return nil, fmt.Errorf("%w: resource_id", ErrInvalidEvent)
	}

	return &Event{
		ActorID:      actorID,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		Metadata:     metadata,
		CreatedAt:    time.Now().UTC(),
	}, nil
}

// Recorder is the interface audit backends implement.
type Recorder interface {
	Record(ctx context.Context, event *Event) error
}

// RecorderFunc is an adapter to use a plain function as a Recorder.
type RecorderFunc func(ctx context.Context, event *Event) error

// Record implements Recorder.
func (f RecorderFunc) Record(ctx context.Context, event *Event) error {
	return f(ctx, event)
}

// Log is an in-memory, append-only Recorder.
type Log struct {
	mu     sync.Mutex
	events []*Event
}

// NewLog creates an empty in-memory audit log.
func NewLog() *Log {
	return &Log{}
}

// Record implements Recorder. It rejects events missing any mandatory field.
func (l *Log) Record(_ context.Context, event *Event) error {
	if event == nil {
		return fmt.Errorf("%w: nil event", ErrInvalidEvent)
	}
	switch {
	case event.ActorID.IsNil():
		return fmt.Errorf("%w: actor_id", ErrInvalidEvent)
	case event.Action == "":
		return fmt.Errorf("%w: action", ErrInvalidEvent)
	case event.ResourceType == "":
		return fmt.Errorf("%w: resource_type", ErrInvalidEvent)
	case event.ResourceID == "":
		return fmt.Errorf("%w: resource_id", ErrInvalidEvent)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, event)
	return nil
}

// Events returns a snapshot of all recorded events in append order.
func (l *Log) Events() []*Event {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]*Event, len(l.events))
	copy(out, l.events)
	return out
}

// Len returns the number of recorded events.
func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.events)
}
