package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Ticket struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	ClientID uuid.UUID `gorm:"type:uuid;index;not null" json:"clientId"`

	Total    float64 `gorm:"type:decimal(12,2);not null" json:"total"`
	Currency string  `gorm:"type:varchar(10);not null" json:"currency"`
	// Calendar date the ticket falls due. Tickets without one are never
	// picked up by the reminder engine.
	DueDate       *time.Time `gorm:"type:date" json:"dueDate"`
	TicketURL     string     `json:"ticketUrl"`
	PaymentURL    *string    `json:"paymentUrl"`
	PaymentSecret string     `gorm:"type:varchar(80);not null" json:"paymentSecret"`
	Paid          bool       `gorm:"default:false" json:"paid"`

	Client   Client    `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	Messages []Message `gorm:"foreignKey:TicketID" json:"-"`

	gorm.Model `json:"-"`
}

func (t *Ticket) BeforeCreate(tx *gorm.DB) (err error) {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return
}

// HasReceipt reports whether a real payment receipt has been uploaded.
// A blank or near-blank payment URL does not count.
func (t *Ticket) HasReceipt() bool {
	if t.PaymentURL == nil {
		return false
	}
	return len(strings.TrimSpace(*t.PaymentURL)) > 5
}
