package ses

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"lesenhub/internal/port"
)

type sesNotifier struct {
	client      *sesv2.Client
	fromAddress string
	fromName    string
	frontendURL string
}

// NewSESNotifier creates a new SES-backed Notifier.
func NewSESNotifier(region, fromAddress, fromName, frontendURL string) (port.Notifier, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config for SES: %w", err)
	}
	client := sesv2.NewFromConfig(cfg)
	return &sesNotifier{
		client:      client,
		fromAddress: fromAddress,
		fromName:    fromName,
		frontendURL: frontendURL,
	}, nil
}

func (s *sesNotifier) SendSubmissionReceipt(ctx context.Context, toEmail, toName, applicationID string) error {
	appURL := fmt.Sprintf("%s/permohonan/%s", s.frontendURL, applicationID)

	subject := "Your license application has been submitted"
	htmlBody := buildSubmissionHTML(toName, appURL)
	textBody := fmt.Sprintf("Hi %s,\n\nYour license application has been submitted and is now with the licensing authority for review. You can follow its progress here:\n%s\n\nLesenHub Team", toName, appURL)

	return s.send(ctx, toEmail, subject, htmlBody, textBody)
}

func (s *sesNotifier) SendCancellationNotice(ctx context.Context, toEmail, toName, applicationID, reason string) error {
	appURL := fmt.Sprintf("%s/permohonan/%s", s.frontendURL, applicationID)

	subject := "Your license application has been cancelled"
	htmlBody := buildCancellationHTML(toName, appURL, reason)
	textBody := fmt.Sprintf("Hi %s,\n\nYour license application has been cancelled. The record remains available for your reference:\n%s\n\nLesenHub Team", toName, appURL)

	return s.send(ctx, toEmail, subject, htmlBody, textBody)
}

func (s *sesNotifier) send(ctx context.Context, toEmail, subject, htmlBody, textBody string) error {
	from := fmt.Sprintf("%s <%s>", s.fromName, s.fromAddress)

	_, err := s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: &from,
		Destination: &types.Destination{
			ToAddresses: []string{toEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: &subject},
				Body: &types.Body{
					Html: &types.Content{Data: &htmlBody},
					Text: &types.Content{Data: &textBody},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("SES SendEmail: %w", err)
	}
	return nil
}

func buildSubmissionHTML(name, appURL string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2 style="color: #333;">Application submitted</h2>
  <p>Hi %s,</p>
  <p>Your license application has been submitted and is now with the licensing authority for review. No further changes can be made while it is under review.</p>
  <p style="text-align: center; margin: 30px 0;">
    <a href="%s" style="background-color: #0F766E; color: white; padding: 12px 24px; text-decoration: none; border-radius: 6px; display: inline-block;">View Application</a>
  </p>
  <hr style="border: none; border-top: 1px solid #eee; margin: 20px 0;">
  <p style="color: #999; font-size: 12px;">LesenHub - Business Licensing Portal</p>
</body>
</html>`, name, appURL)
}

func buildCancellationHTML(name, appURL, reason string) string {
	reasonBlock := ""
	if reason != "" {
		reasonBlock = fmt.Sprintf(`<p>Reason given: <em>%s</em></p>`, reason)
	}
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2 style="color: #333;">Application cancelled</h2>
  <p>Hi %s,</p>
  <p>Your license application has been cancelled. The record remains available for your reference.</p>
  %s
  <p style="text-align: center; margin: 30px 0;">
    <a href="%s" style="background-color: #6B7280; color: white; padding: 12px 24px; text-decoration: none; border-radius: 6px; display: inline-block;">View Application</a>
  </p>
  <hr style="border: none; border-top: 1px solid #eee; margin: 20px 0;">
  <p style="color: #999; font-size: 12px;">LesenHub - Business Licensing Portal</p>
</body>
</html>`, name, reasonBlock, appURL)
}
