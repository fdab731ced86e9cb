package port

import "context"

// Notifier delivers applicant-facing notices. Delivery is an external
// collaborator concern; failures are logged by the caller, never surfaced.
type Notifier interface {
	SendSubmissionReceipt(ctx context.Context, toEmail, toName, applicationID string) error
	SendCancellationNotice(ctx context.Context, toEmail, toName, applicationID, reason string) error
}
