package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Revenue is the recorded gross/commission/net split for one reservation.
// At most one row per reservation; deleted when the reservation is cancelled
// or removed.
type Revenue struct {
	gorm.Model

	OrganisationID uint  `gorm:"index;column:organisation_id" json:"organisation_id"`
	ReservationID  uint  `gorm:"uniqueIndex;column:reservation_id" json:"reservation_id"`
	UnitID         uint  `gorm:"index;column:unit_id" json:"unit_id"`
	ContractID     *uint `gorm:"index;column:contract_id" json:"contract_id,omitempty"`

	GrossAmount      decimal.Decimal `gorm:"column:gross_amount;type:decimal(10,2)" json:"gross_amount"`
	CommissionRate   decimal.Decimal `gorm:"column:commission_rate;type:decimal(5,2)" json:"commission_rate"`
	CommissionAmount decimal.Decimal `gorm:"column:commission_amount;type:decimal(10,2)" json:"commission_amount"`
	NetAmount        decimal.Decimal `gorm:"column:net_amount;type:decimal(10,2)" json:"net_amount"`

	StayStart time.Time `gorm:"column:stay_start" json:"stay_start"`
	StayEnd   time.Time `gorm:"column:stay_end" json:"stay_end"`
}
