// services/channels.go
package services

import (
	"context"
	"time"

	"cobranzas-backend/models"
)

// ContentGenerator produces the text of an email reminder. Implementations
// must always return usable content: any upstream failure is absorbed into a
// deterministic fallback so the dispatch loop never stalls on copywriting.
type ContentGenerator interface {
	Generate(ctx context.Context, ticket models.Ticket, companyName string, reminder models.Reminder) string
}

// EmailSender delivers one transactional email.
type EmailSender interface {
	Send(ctx context.Context, to, subject, html, text string) error
}

// WhatsAppSender delivers the approved payment-reminder template and returns
// the literal text that was transmitted. The template is pre-approved, so the
// content is deterministic and owned by the channel, not generated.
type WhatsAppSender interface {
	SendTemplate(ctx context.Context, phone, clientName, companyName, currency string, total float64, dueDate string) (string, error)
}

func dueDateString(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}
