// Package notify delivers applicant-facing notices off the domain event
// stream. Like the audit sink it is a best-effort subscriber: delivery
// failures are logged and never surfaced to the caller.
package notify

import (
	"context"
	"log"
	"sync"
	"time"

	"lesenhub/internal/domain"
	"lesenhub/internal/port"
)

const sendTimeout = 10 * time.Second

// Sink sends submission receipts and cancellation notices.
type Sink struct {
	notifier port.Notifier
	wg       sync.WaitGroup
}

// NewSink creates a notification sink over the given notifier.
func NewSink(notifier port.Notifier) *Sink {
	return &Sink{notifier: notifier}
}

// Emit sends a notice for submitted/cancelled events; other event types are
// ignored. Runs detached from the request context.
func (s *Sink) Emit(_ context.Context, event domain.Event) {
	if event.Type != domain.EventApplicationSubmitted && event.Type != domain.EventApplicationCancelled {
		return
	}
	email, _ := event.Metadata["applicant_email"].(string)
	name, _ := event.Metadata["applicant_name"].(string)
	if email == "" {
		return
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
		defer cancel()

		var err error
		switch event.Type {
		case domain.EventApplicationSubmitted:
			err = s.notifier.SendSubmissionReceipt(ctx, email, name, event.EntityID.String())
		case domain.EventApplicationCancelled:
			reason, _ := event.Metadata["reason"].(string)
			err = s.notifier.SendCancellationNotice(ctx, email, name, event.EntityID.String(), reason)
		}
		if err != nil {
			log.Printf("notify.Sink: failed to deliver %s notice for %s: %v",
				event.Type, event.EntityID, err)
		}
	}()
}

// Wait blocks until all in-flight sends finish. Used on shutdown and in tests.
func (s *Sink) Wait() {
	s.wg.Wait()
}
