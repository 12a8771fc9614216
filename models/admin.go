package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
)

type Admin struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	OrganisationID uint           `gorm:"index;column:organisation_id" json:"organisation_id"`
	FullName       string         `gorm:"size:255" json:"full_name"`
	Username       string         `gorm:"uniqueIndex;size:150" json:"username"`
	Password       string         `gorm:"size:255" json:"-"` // store hashed password, never return in JSON
	Role           string         `gorm:"size:32;default:staff" json:"role"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"deleted_at"`
}

// IsAdmin reports whether this account may mutate reservations.
func (a *Admin) IsAdmin() bool {
	return a.Role == RoleAdmin
}
