package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Company struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name           string    `gorm:"uniqueIndex;not null" json:"name"`
	Logo           *string   `json:"logo"`
	ColorPrimary   *string   `json:"colorPrimary"`
	ColorSecondary *string   `json:"colorSecondary"`

	Users     []User     `gorm:"foreignKey:CompanyID" json:"-"`
	Clients   []Client   `gorm:"foreignKey:CompanyID" json:"-"`
	Reminders []Reminder `gorm:"foreignKey:CompanyID" json:"-"`

	gorm.Model `json:"-"`
}

func (co *Company) BeforeCreate(tx *gorm.DB) (err error) {
	if co.ID == uuid.Nil {
		co.ID = uuid.New()
	}
	return
}
