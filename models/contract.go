package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	ContractStatusDraft  = "DRAFT"
	ContractStatusActive = "ACTIVE"
	ContractStatusEnded  = "ENDED"
)

// Contract defines the commission an organisation takes on a unit's bookings
// over [start_date, end_date]. At most one contract is considered active for a
// given unit and date; the most recently created one wins on overlap.
type Contract struct {
	gorm.Model

	OrganisationID uint `gorm:"index;column:organisation_id" json:"organisation_id"`
	UnitID         uint `gorm:"index;column:unit_id" json:"unit_id"`

	CommissionRate decimal.Decimal `gorm:"column:commission_rate;type:decimal(5,2)" json:"commission_rate"`
	Status         string          `gorm:"size:32;index;default:DRAFT" json:"status"`
	StartDate      time.Time       `gorm:"column:start_date;index" json:"start_date"`
	EndDate        time.Time       `gorm:"column:end_date;index" json:"end_date"`

	Unit Unit `gorm:"foreignKey:UnitID" json:"unit,omitempty"`
}
