package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Reservation statuses. CANCELLED and COMPLETED are terminal.
const (
	ReservationStatusPending   = "PENDING"
	ReservationStatusConfirmed = "CONFIRMED"
	ReservationStatusCompleted = "COMPLETED"
	ReservationStatusCancelled = "CANCELLED"
)

// Booking platforms.
const (
	PlatformDirect  = "DIRECT"
	PlatformAirbnb  = "AIRBNB"
	PlatformBooking = "BOOKING"
	PlatformOther   = "OTHER"
)

const (
	PaymentStatusPending = "PENDING"
	PaymentStatusPaid    = "PAID"
	PaymentStatusRefund  = "REFUNDED"
)

// Reservation is a guest stay on a unit over [check_in_date, check_out_date).
// For a given unit, non-cancelled reservations never overlap on that interval.
type Reservation struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	OrganisationID uint   `gorm:"index;column:organisation_id" json:"organisation_id"`
	UnitID         uint   `gorm:"index;column:unit_id" json:"unit_id"`
	ReferenceCode  string `gorm:"column:reference_code;size:64;uniqueIndex" json:"reference_code"`

	GuestName    string         `gorm:"column:guest_name;size:255" json:"guest_name"`
	GuestContact datatypes.JSON `gorm:"column:guest_contact" json:"guest_contact,omitempty"`
	GuestCount   int            `gorm:"column:guest_count;default:1" json:"guest_count"`

	CheckInDate  time.Time `gorm:"column:check_in_date;index" json:"check_in_date"`
	CheckOutDate time.Time `gorm:"column:check_out_date;index" json:"check_out_date"`
	// Optional times of day in "15:04" form. Defaults applied at mission fan-out.
	CheckInTime  *string `gorm:"column:check_in_time;size:5" json:"check_in_time,omitempty"`
	CheckOutTime *string `gorm:"column:check_out_time;size:5" json:"check_out_time,omitempty"`

	Platform      string           `gorm:"size:32;default:DIRECT" json:"platform"`
	GrossAmount   *decimal.Decimal `gorm:"column:gross_amount;type:decimal(10,2)" json:"gross_amount,omitempty"`
	Status        string           `gorm:"size:32;index;default:PENDING" json:"status"`
	PaymentStatus string           `gorm:"column:payment_status;size:32;default:PENDING" json:"payment_status"`

	Notes              string `gorm:"type:text" json:"notes,omitempty"`
	AccessInstructions string `gorm:"column:access_instructions;type:text" json:"access_instructions,omitempty"`

	Unit     Unit      `gorm:"foreignKey:UnitID" json:"unit,omitempty"`
	Missions []Mission `gorm:"foreignKey:ReservationID" json:"missions,omitempty"`
}
