package service

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v2"

	"jona.app/api-server/core/config"
)

type resendMailer struct {
	client     *resend.Client
	from       string
	appBaseURL string
}

func NewResendMailer(cfg config.EmailConfig, appBaseURL string) InvitationMailer {
	return &resendMailer{
		client:     resend.NewClient(cfg.ResendAPIKey),
		from:       cfg.FromAddress,
		appBaseURL: appBaseURL,
	}
}

func (m *resendMailer) SendInvitation(ctx context.Context, email, token, orgName string) error {
	link := fmt.Sprintf("%s/org/join?token=%s", m.appBaseURL, token)

	_, err := m.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    m.from,
		To:      []string{email},
		Subject: fmt.Sprintf("You're invited to join %s", orgName),
		Html:    fmt.Sprintf(`<p>Click <a href="%s">here</a> to accept your invite.</p>`, link),
	})
	if err != nil {
		return fmt.Errorf("sending invitation email: %w", err)
	}
	return nil
}
