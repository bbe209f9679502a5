package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ChannelEmail    = "email"
	ChannelWhatsApp = "whatsapp"
)

// Reminder is a tenant-configured rule: "N days from due date, via channel C".
// DaysFromDue is signed; negative offsets fire before the due date.
type Reminder struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	CompanyID uuid.UUID `gorm:"type:uuid;index;not null" json:"companyId"`

	DaysFromDue int    `gorm:"not null" json:"daysFromDue"`
	Channel     string `gorm:"type:varchar(20);not null" json:"channel"`
	Template    string `gorm:"type:text" json:"template"`

	gorm.Model `json:"-"`
}

func (r *Reminder) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return
}
