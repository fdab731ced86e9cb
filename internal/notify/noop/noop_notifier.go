package noop

import (
	"context"
	"log"

	"lesenhub/internal/port"
)

type noopNotifier struct{}

// NewNoopNotifier creates a Notifier that logs notices to stdout instead of
// sending email. Default in development.
func NewNoopNotifier() port.Notifier {
	return &noopNotifier{}
}

func (n *noopNotifier) SendSubmissionReceipt(_ context.Context, toEmail, toName, applicationID string) error {
	log.Printf("[NOOP EMAIL] Submission receipt for %s (%s): application %s", toName, toEmail, applicationID)
	return nil
}

func (n *noopNotifier) SendCancellationNotice(_ context.Context, toEmail, toName, applicationID, reason string) error {
	log.Printf("[NOOP EMAIL] Cancellation notice for %s (%s): application %s, reason: %q", toName, toEmail, applicationID, reason)
	return nil
}
