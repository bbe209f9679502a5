package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Client struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	CompanyID uuid.UUID `gorm:"type:uuid;index;not null" json:"companyId"`

	Name   string `gorm:"not null" json:"name"`
	Email  string `gorm:"not null" json:"email"`
	Phone  string `gorm:"not null" json:"phone"`
	Points int    `gorm:"default:0" json:"points"`

	Tickets []Ticket `gorm:"foreignKey:ClientID" json:"-"`
	Company Company  `gorm:"foreignKey:CompanyID" json:"-"`

	gorm.Model `json:"-"`
}

func (cl *Client) BeforeCreate(tx *gorm.DB) (err error) {
	if cl.ID == uuid.Nil {
		cl.ID = uuid.New()
	}
	return
}
