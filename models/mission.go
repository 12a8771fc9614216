package models

import (
	"time"

	"gorm.io/gorm"
)

// Mission types. CHECKIN/CHECKOUT/CLEANING are derived from a reservation;
// INTERVENTION and URGENT are created standalone.
const (
	MissionTypeCheckin      = "CHECKIN"
	MissionTypeCheckout     = "CHECKOUT"
	MissionTypeCleaning     = "CLEANING"
	MissionTypeIntervention = "INTERVENTION"
	MissionTypeUrgent       = "URGENT"
)

const (
	MissionStatusTodo       = "TODO"
	MissionStatusInProgress = "IN_PROGRESS"
	MissionStatusDone       = "DONE"
	MissionStatusCancelled  = "CANCELLED"
)

const (
	MissionPriorityLow    = "LOW"
	MissionPriorityNormal = "NORMAL"
	MissionPriorityHigh   = "HIGH"
)

type Mission struct {
	gorm.Model

	OrganisationID uint  `gorm:"index;column:organisation_id" json:"organisation_id"`
	UnitID         uint  `gorm:"index;column:unit_id" json:"unit_id"`
	ReservationID  *uint `gorm:"index;column:reservation_id" json:"reservation_id,omitempty"`

	Type        string    `gorm:"size:32;index" json:"type"`
	Status      string    `gorm:"size:32;index;default:TODO" json:"status"`
	Priority    string    `gorm:"size:16;default:NORMAL" json:"priority"`
	ScheduledAt time.Time `gorm:"column:scheduled_at;index" json:"scheduled_at"`
	Notes       string    `gorm:"type:text" json:"notes,omitempty"`

	Unit           Unit                 `gorm:"foreignKey:UnitID" json:"unit,omitempty"`
	ChecklistItems []MissionChecklistItem `gorm:"foreignKey:MissionID" json:"checklist_items,omitempty"`
}
