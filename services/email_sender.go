// services/email_sender.go
package services

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type SendGridSender struct {
	client    *sendgrid.Client
	fromEmail string
	fromName  string
}

// NewSendGridSender fails when the provider credentials are missing so the
// process dies at startup instead of dispatching broken reminders.
func NewSendGridSender() (*SendGridSender, error) {
	apiKey := os.Getenv("SENDGRID_API_KEY")
	if apiKey == "" {
		return nil, errors.New("SENDGRID_API_KEY not set")
	}
	fromEmail := os.Getenv("SENDGRID_FROM_EMAIL")
	if fromEmail == "" {
		return nil, errors.New("SENDGRID_FROM_EMAIL not set")
	}

	return &SendGridSender{
		client:    sendgrid.NewSendClient(apiKey),
		fromEmail: fromEmail,
		fromName:  os.Getenv("SENDGRID_FROM_NAME"),
	}, nil
}

func (s *SendGridSender) Send(ctx context.Context, to, subject, html, text string) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	message := mail.NewSingleEmail(from, subject, mail.NewEmail("", to), text, html)

	resp, err := s.client.SendWithContext(ctx, message)
	if err != nil {
		return err
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid rejected send: status %d: %s", resp.StatusCode, resp.Body)
	}
	return nil
}
