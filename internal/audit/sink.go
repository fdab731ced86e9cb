// Package audit persists domain events for compliance. The sink is
// best-effort and non-blocking: it writes on a detached goroutine with its
// own deadline, retries once, and only ever logs on failure. A lost audit
// entry never fails the state transition that produced it.
package audit

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"lesenhub/internal/domain"
	"lesenhub/internal/port"
)

const (
	writeTimeout = 5 * time.Second
	retryDelay   = 500 * time.Millisecond
)

// Sink records domain events through an AuditRepository.
type Sink struct {
	repo port.AuditRepository
	wg   sync.WaitGroup
}

// NewSink creates an audit sink over the given repository.
func NewSink(repo port.AuditRepository) *Sink {
	return &Sink{repo: repo}
}

// Emit records the event asynchronously. The request context is deliberately
// not reused: the audit write must survive the request completing.
func (s *Sink) Emit(_ context.Context, event domain.Event) {
	metadata, err := json.Marshal(event.Metadata)
	if err != nil {
		log.Printf("audit.Sink: dropping event %s (%s): marshaling metadata: %v",
			event.ID, event.Type, err)
		return
	}

	entry := &domain.AuditEvent{
		ID:          event.ID,
		EventType:   event.Type,
		ActorUserID: event.ActorID,
		EntityID:    event.EntityID,
		Metadata:    metadata,
		OccurredAt:  event.OccurredAt,
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		defer cancel()

		err := s.repo.Create(ctx, entry)
		if err == nil {
			return
		}
		time.Sleep(retryDelay)
		if err := s.repo.Create(ctx, entry); err != nil {
			log.Printf("audit.Sink: failed to record event %s (%s) after retry: %v",
				event.ID, event.Type, err)
		}
	}()
}

// Wait blocks until all in-flight audit writes finish. Used on shutdown and
// in tests.
func (s *Sink) Wait() {
	s.wg.Wait()
}
