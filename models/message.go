package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	MessageTypeMail = "MAIL"
	MessageTypeWsp  = "WSP"
	MessageTypeCall = "CALL"
)

// Message is an immutable receipt of one reminder send. ReminderID is nil for
// messages logged manually; the automated engine always sets it, and the
// composite unique index on (ticket_id, reminder_id) is what makes concurrent
// dispatch runs safe: the second insert for a pair conflicts and is discarded.
type Message struct {
	ID         uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	Type       string     `gorm:"type:varchar(10);not null" json:"type"`
	Content    string     `gorm:"type:text;not null" json:"content"`
	TicketID   uuid.UUID  `gorm:"type:uuid;index;not null;uniqueIndex:idx_messages_ticket_reminder" json:"ticketId"`
	ReminderID *uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_messages_ticket_reminder" json:"reminderId"`

	Ticket Ticket `gorm:"foreignKey:TicketID" json:"ticket,omitempty"`

	gorm.Model `json:"-"`
}

func (m *Message) BeforeCreate(tx *gorm.DB) (err error) {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return
}
