package models

import (
	"gorm.io/gorm"
)

// Unit is a rentable property managed by an organisation.
type Unit struct {
	gorm.Model

	OrganisationID uint   `gorm:"index;column:organisation_id" json:"organisation_id"`
	Name           string `gorm:"size:255" json:"name"`
	Address        string `gorm:"type:text" json:"address"`
	City           string `gorm:"size:120" json:"city"`
	MaxGuests      int    `gorm:"column:max_guests;default:2" json:"maxGuests"`
	Notes          string `gorm:"type:text" json:"notes,omitempty"`

	Organisation Organisation `gorm:"foreignKey:OrganisationID" json:"organisation,omitempty"`
}
