// services/reminder_service.go
package services

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"cobranzas-backend/config"
	"cobranzas-backend/models"
	"cobranzas-backend/utils"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DispatchResult summarizes one run of the automated reminder engine.
// Processed counts only pairs that completed a receipt write.
type DispatchResult struct {
	Success   bool   `json:"success"`
	Processed int    `json:"processed"`
	Message   string `json:"message"`
}

type ReminderService struct {
	db        *gorm.DB
	generator ContentGenerator
	email     EmailSender
	whatsapp  WhatsAppSender
}

func NewReminderService(db *gorm.DB, generator ContentGenerator, email EmailSender, whatsapp WhatsAppSender) *ReminderService {
	return &ReminderService{
		db:        db,
		generator: generator,
		email:     email,
		whatsapp:  whatsapp,
	}
}

// StartScheduler wires the dispatch run into a daily cron entry. The returned
// engine is stopped by the caller on shutdown.
func (s *ReminderService) StartScheduler() *cron.Cron {
	spec := os.Getenv("CRON_SPEC")
	if spec == "" {
		spec = "0 9 * * *"
	}

	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()

		result, err := s.ProcessAutomatedReminders(ctx)
		if err != nil {
			config.Log.Errorf("scheduled reminder run failed: %v", err)
			return
		}
		config.Log.Infof("scheduled reminder run finished: %s", result.Message)
	})
	if err != nil {
		config.Log.Fatalf("invalid CRON_SPEC %q: %v", spec, err)
	}

	c.Start()
	config.Log.Infof("reminder scheduler started (spec %q)", spec)
	return c
}

// ProcessAutomatedReminders matches every tenant's reminder rules against its
// open tickets and dispatches one message per newly matched (ticket, rule)
// pair. Any storage fetch error aborts the whole run; delivery failures are
// logged and the pair is left without a receipt so the next run retries it.
func (s *ReminderService) ProcessAutomatedReminders(ctx context.Context) (DispatchResult, error) {
	var companies []models.Company
	if err := s.db.Select("id", "name").Find(&companies).Error; err != nil {
		return DispatchResult{}, fmt.Errorf("fetch companies: %w", err)
	}

	processed := 0
	for _, company := range companies {
		// Cancellation is checked between tenants: a cancelled run just
		// leaves unmatched pairs for the next invocation.
		select {
		case <-ctx.Done():
			return DispatchResult{}, ctx.Err()
		default:
		}

		n, err := s.processCompany(ctx, company)
		if err != nil {
			return DispatchResult{}, err
		}
		processed += n
	}

	return DispatchResult{
		Success:   true,
		Processed: processed,
		Message:   fmt.Sprintf("Se crearon %d mensajes", processed),
	}, nil
}

func (s *ReminderService) processCompany(ctx context.Context, company models.Company) (int, error) {
	log := config.Log.WithFields(logrus.Fields{"company": company.Name, "companyId": company.ID})

	var reminders []models.Reminder
	if err := s.db.Where("company_id = ?", company.ID).Find(&reminders).Error; err != nil {
		return 0, fmt.Errorf("fetch reminders for company %s: %w", company.ID, err)
	}
	if len(reminders) == 0 {
		return 0, nil
	}

	var tickets []models.Ticket
	err := s.db.Preload("Client").
		Joins("JOIN clients ON clients.id = tickets.client_id").
		Where("tickets.paid = ? AND clients.company_id = ?", false, company.ID).
		Find(&tickets).Error
	if err != nil {
		return 0, fmt.Errorf("fetch unpaid tickets for company %s: %w", company.ID, err)
	}

	// Keep only tickets with a due date and no real receipt uploaded yet.
	open := tickets[:0]
	for _, t := range tickets {
		if t.DueDate == nil || t.HasReceipt() {
			continue
		}
		open = append(open, t)
	}
	if len(open) == 0 {
		return 0, nil
	}

	// One clock reading per tenant so every pair in this iteration agrees on
	// what day it is.
	today := time.Now()

	processed := 0
	for _, reminder := range reminders {
		for _, ticket := range open {
			if utils.DaysPastDue(*ticket.DueDate, today) != reminder.DaysFromDue {
				continue
			}

			var count int64
			err := s.db.Model(&models.Message{}).
				Where("ticket_id = ? AND reminder_id = ?", ticket.ID, reminder.ID).
				Count(&count).Error
			if err != nil {
				return processed, fmt.Errorf("check existing message: %w", err)
			}
			if count > 0 {
				continue // already sent
			}

			if s.dispatchPair(ctx, log, company, reminder, ticket) {
				processed++
			}
		}
	}

	return processed, nil
}

// dispatchPair sends one reminder and records its receipt. Returns true only
// when a new receipt row was written.
func (s *ReminderService) dispatchPair(ctx context.Context, log *logrus.Entry, company models.Company, reminder models.Reminder, ticket models.Ticket) bool {
	var content string
	var msgType string

	switch reminder.Channel {
	case models.ChannelWhatsApp:
		sent, err := s.whatsapp.SendTemplate(ctx,
			ticket.Client.Phone, ticket.Client.Name, company.Name,
			ticket.Currency, ticket.Total, dueDateString(ticket.DueDate))
		if err != nil {
			log.Warnf("whatsapp delivery failed for ticket %s: %v", ticket.ID, err)
			return false
		}
		content = sent
		msgType = models.MessageTypeWsp

	case models.ChannelEmail:
		content = s.generator.Generate(ctx, ticket, company.Name, reminder)
		subject := "Recordatorio de Pago - " + company.Name
		html := strings.ReplaceAll(content, "\n", "<br>")
		if err := s.email.Send(ctx, ticket.Client.Email, subject, html, content); err != nil {
			log.Warnf("email delivery failed for ticket %s: %v", ticket.ID, err)
			return false
		}
		msgType = models.MessageTypeMail

	default:
		log.Warnf("reminder %s has unknown channel %q, skipping", reminder.ID, reminder.Channel)
		return false
	}

	reminderID := reminder.ID
	message := models.Message{
		Type:       msgType,
		Content:    content,
		TicketID:   ticket.ID,
		ReminderID: &reminderID,
	}

	// Conflict on (ticket_id, reminder_id) means another run already handled
	// this pair between our check and now; swallow it and write nothing.
	res := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "ticket_id"}, {Name: "reminder_id"}},
		DoNothing: true,
	}).Create(&message)
	if res.Error != nil {
		log.Errorf("failed to record message for ticket %s: %v", ticket.ID, res.Error)
		return false
	}
	if res.RowsAffected == 0 {
		log.Debugf("pair ticket %s / reminder %s already handled by a concurrent run", ticket.ID, reminder.ID)
		return false
	}

	log.WithFields(logrus.Fields{
		"ticket":   ticket.ID,
		"reminder": reminder.ID,
		"channel":  reminder.Channel,
	}).Info("reminder dispatched")
	return true
}
