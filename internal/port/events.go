package port

import (
	"context"

	"lesenhub/internal/domain"
)

// EventSink consumes domain events emitted by the lifecycle engine.
// Consumption is best-effort and non-blocking: implementations own their
// error handling, and a sink failure must never fail or roll back the state
// transition that produced the event.
type EventSink interface {
	Emit(ctx context.Context, event domain.Event)
}
