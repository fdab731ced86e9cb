package domain

import (
	"time"

	"github.com/google/uuid"
)

// EventType identifies a domain event emitted by the lifecycle engine.
type EventType string

const (
	EventApplicationCreated   EventType = "application.created"
	EventApplicationUpdated   EventType = "application.updated"
	EventApplicationSubmitted EventType = "application.submitted"
	EventApplicationCancelled EventType = "application.cancelled"
	EventDocumentUploaded     EventType = "document.uploaded"
	EventDocumentDeleted      EventType = "document.deleted"
)

// Event is a domain event carrying the actor, the affected entity, and a
// free-form metadata bag (for example the cancellation reason). Delivery to
// sinks is best-effort; a sink failure never rolls back the state transition
// that produced the event.
type Event struct {
	ID         uuid.UUID
	Type       EventType
	ActorID    uuid.UUID
	EntityID   uuid.UUID
	Metadata   map[string]interface{}
	OccurredAt time.Time
}

// NewEvent builds an event stamped with a fresh id and the current time.
func NewEvent(eventType EventType, actorID, entityID uuid.UUID, metadata map[string]interface{}) Event {
	return Event{
		ID:         uuid.New(),
		Type:       eventType,
		ActorID:    actorID,
		EntityID:   entityID,
		Metadata:   metadata,
		OccurredAt: time.Now().UTC(),
	}
}
