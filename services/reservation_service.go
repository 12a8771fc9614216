package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"conciergerie-backend/models"
	"conciergerie-backend/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const bulkLimit = 100

// ReservationInput is the already-shaped payload for create/update. Dates are
// "2006-01-02"; times of day are optional "15:04" strings.
type ReservationInput struct {
	OrganisationID uint              `json:"organisation_id"`
	UnitID         uint              `json:"unit_id"`
	GuestName      string            `json:"guest_name"`
	GuestContact   map[string]string `json:"guest_contact,omitempty"`
	GuestCount     int               `json:"guest_count"`

	CheckIn      string  `json:"check_in"`
	CheckOut     string  `json:"check_out"`
	CheckInTime  *string `json:"check_in_time,omitempty"`
	CheckOutTime *string `json:"check_out_time,omitempty"`

	Platform      string           `json:"platform"`
	GrossAmount   *decimal.Decimal `json:"gross_amount,omitempty"`
	Status        string           `json:"status"`
	PaymentStatus string           `json:"payment_status"`

	Notes              string `json:"notes"`
	AccessInstructions string `json:"access_instructions"`
}

// ReservationService sequences the reservation lifecycle: overlap guard,
// booking write, mission fan-out, ledger write, and the cancellation /
// deletion cascades.
type ReservationService struct {
	DB        *gorm.DB
	Missions  *MissionService
	Contracts *ContractService
	Ledger    *LedgerService
}

func NewReservationService(db *gorm.DB, missions *MissionService, contracts *ContractService, ledger *LedgerService) *ReservationService {
	return &ReservationService{DB: db, Missions: missions, Contracts: contracts, Ledger: ledger}
}

// requireAdmin is the policy check at the head of every mutating entry point.
// The route middleware enforces the same rule; the service does not trust it.
func requireAdmin(actorRole string) error {
	if actorRole != models.RoleAdmin {
		return ErrForbidden
	}
	return nil
}

// lockUnit takes a row lock on the unit so concurrent guard+insert sequences
// for the same unit serialize. sqlite has no SELECT ... FOR UPDATE; its
// single-writer database lock already serializes the transaction.
func lockUnit(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

func parseDate(field, v string, fields map[string]string) time.Time {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		fields[field] = "must be a date in YYYY-MM-DD form"
	}
	return t
}

func (s *ReservationService) validateInput(in *ReservationInput) (checkIn, checkOut time.Time, err error) {
	fields := map[string]string{}

	if in.UnitID == 0 {
		fields["unit_id"] = "required"
	}
	if in.GuestName == "" {
		fields["guest_name"] = "required"
	}
	if in.GuestCount < 1 {
		in.GuestCount = 1
	}
	if in.CheckIn == "" {
		fields["check_in"] = "required"
	} else {
		checkIn = parseDate("check_in", in.CheckIn, fields)
	}
	if in.CheckOut == "" {
		fields["check_out"] = "required"
	} else {
		checkOut = parseDate("check_out", in.CheckOut, fields)
	}
	if len(fields) == 0 && !checkOut.After(checkIn) {
		fields["check_out"] = "must be after check_in"
	}

	if in.Status == "" {
		in.Status = models.ReservationStatusPending
	}
	switch in.Status {
	case models.ReservationStatusPending, models.ReservationStatusConfirmed, models.ReservationStatusCancelled:
	case models.ReservationStatusCompleted:
		fields["status"] = "COMPLETED is reached via terminate, not directly"
	default:
		fields["status"] = "must be PENDING, CONFIRMED or CANCELLED"
	}

	if in.Platform == "" {
		in.Platform = models.PlatformDirect
	}
	if in.PaymentStatus == "" {
		in.PaymentStatus = models.PaymentStatusPending
	}
	if in.GrossAmount != nil && in.GrossAmount.IsNegative() {
		fields["gross_amount"] = "must not be negative"
	}

	if len(fields) > 0 {
		return checkIn, checkOut, &ValidationError{Fields: fields}
	}
	return checkIn, checkOut, nil
}

// hasOverlap reports whether any non-cancelled reservation on the unit
// intersects [checkIn, checkOut). excludeID skips the reservation being
// updated. A failing query counts as an overlap: blocking a legitimate
// booking is retryable, a double-booking is not.
func (s *ReservationService) hasOverlap(tx *gorm.DB, unitID uint, checkIn, checkOut time.Time, excludeID uint) bool {
	q := tx.Model(&models.Reservation{}).
		Where("unit_id = ?", unitID).
		Where("status <> ?", models.ReservationStatusCancelled).
		Where("check_in_date < ? AND check_out_date > ?", checkOut, checkIn)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}

	var n int64
	if err := q.Count(&n).Error; err != nil {
		utils.GetLogger().Error("overlap check failed, assuming overlap",
			zap.Uint("unit_id", unitID),
			zap.Error(err),
		)
		return true
	}
	return n > 0
}

// Create validates the input, guards against overlap and inserts the
// reservation. Guard and insert run in one transaction holding a lock on the
// unit row, so two concurrent creates on the same unit serialize instead of
// both passing the guard. A CONFIRMED reservation then fans out its missions
// and writes its ledger entry.
func (s *ReservationService) Create(actorRole string, in *ReservationInput) (*models.Reservation, error) {
	if err := requireAdmin(actorRole); err != nil {
		return nil, err
	}

	checkIn, checkOut, err := s.validateInput(in)
	if err != nil {
		return nil, err
	}

	contactJSON, _ := json.Marshal(in.GuestContact) // best-effort

	r := &models.Reservation{
		OrganisationID:     in.OrganisationID,
		UnitID:             in.UnitID,
		ReferenceCode:      uuid.NewString(),
		GuestName:          in.GuestName,
		GuestContact:       datatypes.JSON(contactJSON),
		GuestCount:         in.GuestCount,
		CheckInDate:        checkIn,
		CheckOutDate:       checkOut,
		CheckInTime:        in.CheckInTime,
		CheckOutTime:       in.CheckOutTime,
		Platform:           in.Platform,
		GrossAmount:        in.GrossAmount,
		Status:             in.Status,
		PaymentStatus:      in.PaymentStatus,
		Notes:              in.Notes,
		AccessInstructions: in.AccessInstructions,
	}

	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		var unit models.Unit
		if err := lockUnit(tx).First(&unit, in.UnitID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return newValidationError("unit_id", "unit not found")
			}
			return fmt.Errorf("failed to load unit: %w", err)
		}
		if r.OrganisationID == 0 {
			r.OrganisationID = unit.OrganisationID
		}

		if r.Status != models.ReservationStatusCancelled {
			if s.hasOverlap(tx, r.UnitID, checkIn, checkOut, 0) {
				return ErrOverlap
			}
		}

		if err := tx.Create(r).Error; err != nil {
			return fmt.Errorf("failed to create reservation: %w", err)
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	if r.Status == models.ReservationStatusConfirmed {
		if err := s.confirmSideEffects(r); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// Update persists field changes and applies the side effects of the resulting
// status: a CONFIRMED reservation gets its missions fanned out and its ledger
// entry written if either is missing, entering CANCELLED cancels open missions
// and removes the ledger entry. Terminal states cannot be left.
func (s *ReservationService) Update(actorRole string, id uint, in *ReservationInput) (*models.Reservation, error) {
	if err := requireAdmin(actorRole); err != nil {
		return nil, err
	}

	var current models.Reservation
	if err := s.DB.First(&current, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load reservation: %w", err)
	}

	if current.Status == models.ReservationStatusCancelled || current.Status == models.ReservationStatusCompleted {
		return nil, newValidationError("status", fmt.Sprintf("reservation is %s and can no longer change", current.Status))
	}

	if in.UnitID == 0 {
		in.UnitID = current.UnitID
	}
	if in.OrganisationID == 0 {
		in.OrganisationID = current.OrganisationID
	}
	if in.Status == "" {
		in.Status = current.Status
	}
	checkIn, checkOut, err := s.validateInput(in)
	if err != nil {
		return nil, err
	}

	prevStatus := current.Status

	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		var unit models.Unit
		if err := lockUnit(tx).First(&unit, in.UnitID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return newValidationError("unit_id", "unit not found")
			}
			return fmt.Errorf("failed to load unit: %w", err)
		}

		if in.Status != models.ReservationStatusCancelled {
			if s.hasOverlap(tx, in.UnitID, checkIn, checkOut, id) {
				return ErrOverlap
			}
		}

		updates := map[string]interface{}{
			"unit_id":             in.UnitID,
			"guest_name":          in.GuestName,
			"guest_count":         in.GuestCount,
			"check_in_date":       checkIn,
			"check_out_date":      checkOut,
			"check_in_time":       in.CheckInTime,
			"check_out_time":      in.CheckOutTime,
			"platform":            in.Platform,
			"gross_amount":        in.GrossAmount,
			"status":              in.Status,
			"payment_status":      in.PaymentStatus,
			"notes":               in.Notes,
			"access_instructions": in.AccessInstructions,
		}
		if in.GuestContact != nil {
			if b, mErr := json.Marshal(in.GuestContact); mErr == nil {
				updates["guest_contact"] = datatypes.JSON(b)
			}
		}
		if err := tx.Model(&current).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to update reservation: %w", err)
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	var updated models.Reservation
	if err := s.DB.First(&updated, id).Error; err != nil {
		return nil, fmt.Errorf("failed to reload reservation: %w", err)
	}

	if updated.Status == models.ReservationStatusConfirmed {
		// Runs on every update of a CONFIRMED reservation, not just the
		// transition into it. Fan-out and ledger write are both gated on
		// existing rows, so this re-creates missing side effects (a crash
		// after the insert committed) without ever duplicating them.
		if err := s.confirmSideEffects(&updated); err != nil {
			return nil, err
		}
	}

	if prevStatus != models.ReservationStatusCancelled && updated.Status == models.ReservationStatusCancelled {
		if err := s.cancelCascade(s.DB, updated.ID); err != nil {
			return nil, err
		}
	}

	return &updated, nil
}

// Terminate marks a CONFIRMED stay as COMPLETED. No cascades.
func (s *ReservationService) Terminate(actorRole string, id uint) error {
	if err := requireAdmin(actorRole); err != nil {
		return err
	}

	var r models.Reservation
	if err := s.DB.First(&r, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to load reservation: %w", err)
	}

	if r.Status != models.ReservationStatusConfirmed {
		return newValidationError("status", "only a CONFIRMED reservation can be terminated")
	}

	if err := s.DB.Model(&r).Update("status", models.ReservationStatusCompleted).Error; err != nil {
		return fmt.Errorf("failed to terminate reservation: %w", err)
	}
	return nil
}

// Delete cancels open missions, removes the ledger entry, then removes the
// reservation, in that order so no dependent ever points at a missing parent.
func (s *ReservationService) Delete(actorRole string, id uint) error {
	if err := requireAdmin(actorRole); err != nil {
		return err
	}

	var r models.Reservation
	if err := s.DB.First(&r, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to load reservation: %w", err)
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.Missions.CancelReservationMissions(tx, id); err != nil {
			return err
		}
		if err := tx.Where("reservation_id = ?", id).Delete(&models.Revenue{}).Error; err != nil {
			return fmt.Errorf("failed to delete revenue for reservation %d: %w", id, err)
		}
		if err := tx.Delete(&r).Error; err != nil {
			return fmt.Errorf("failed to delete reservation: %w", err)
		}
		return nil
	})
}

func validateBulkIDs(ids []uint) error {
	if len(ids) == 0 {
		return newValidationError("ids", "at least one id is required")
	}
	if len(ids) > bulkLimit {
		return newValidationError("ids", fmt.Sprintf("at most %d ids per request", bulkLimit))
	}
	return nil
}

// BulkCancel cancels up to 100 reservations in one set-based update.
// Reservations already in a terminal state are left untouched. The
// batch update alone decides success; mission cancellation and revenue
// deletion run afterwards best-effort, logged and never failing the call.
func (s *ReservationService) BulkCancel(actorRole string, ids []uint) (int64, error) {
	if err := requireAdmin(actorRole); err != nil {
		return 0, err
	}
	if err := validateBulkIDs(ids); err != nil {
		return 0, err
	}

	res := s.DB.Model(&models.Reservation{}).
		Where("id IN ?", ids).
		Where("status NOT IN ?", []string{models.ReservationStatusCancelled, models.ReservationStatusCompleted}).
		Update("status", models.ReservationStatusCancelled)
	if res.Error != nil {
		return 0, fmt.Errorf("bulk cancel failed: %w", res.Error)
	}

	s.bestEffortCleanup("bulk cancel", ids)
	return res.RowsAffected, nil
}

// BulkDelete removes up to 100 reservations in one set-based delete, then
// runs the same best-effort secondary cleanup as BulkCancel.
func (s *ReservationService) BulkDelete(actorRole string, ids []uint) (int64, error) {
	if err := requireAdmin(actorRole); err != nil {
		return 0, err
	}
	if err := validateBulkIDs(ids); err != nil {
		return 0, err
	}

	res := s.DB.Where("id IN ?", ids).Delete(&models.Reservation{})
	if res.Error != nil {
		return 0, fmt.Errorf("bulk delete failed: %w", res.Error)
	}

	s.bestEffortCleanup("bulk delete", ids)
	return res.RowsAffected, nil
}

func (s *ReservationService) bestEffortCleanup(op string, ids []uint) {
	for _, id := range ids {
		if err := s.Missions.CancelReservationMissions(s.DB, id); err != nil {
			utils.GetLogger().Warn("secondary mission cleanup failed",
				zap.String("op", op),
				zap.Uint("reservation_id", id),
				zap.Error(err),
			)
		}
		if err := s.DB.Where("reservation_id = ?", id).Delete(&models.Revenue{}).Error; err != nil {
			utils.GetLogger().Warn("secondary revenue cleanup failed",
				zap.String("op", op),
				zap.Uint("reservation_id", id),
				zap.Error(err),
			)
		}
	}
}

// confirmSideEffects runs the once-only consequences of entering CONFIRMED.
func (s *ReservationService) confirmSideEffects(r *models.Reservation) error {
	if err := s.Missions.FanOutMissions(s.DB, r); err != nil {
		return err
	}
	return s.writeLedger(r)
}

// writeLedger records the financial split for a confirmed reservation with a
// gross amount. At most one Revenue row ever exists per reservation. No
// active contract means commission rate 0.
func (s *ReservationService) writeLedger(r *models.Reservation) error {
	if r.GrossAmount == nil {
		return nil
	}

	var existing int64
	if err := s.DB.Model(&models.Revenue{}).
		Where("reservation_id = ?", r.ID).
		Count(&existing).Error; err != nil {
		return fmt.Errorf("failed to check existing revenue: %w", err)
	}
	if existing > 0 {
		return nil
	}

	contract, err := s.Contracts.ResolveActiveContract(r.UnitID, r.CheckInDate)
	if err != nil {
		return err
	}

	rate := decimal.Zero
	var contractID *uint
	if contract != nil {
		rate = contract.CommissionRate
		contractID = &contract.ID
	}

	commission, net := s.Ledger.ComputeLedger(*r.GrossAmount, rate)

	rev := models.Revenue{
		OrganisationID:   r.OrganisationID,
		ReservationID:    r.ID,
		UnitID:           r.UnitID,
		ContractID:       contractID,
		GrossAmount:      *r.GrossAmount,
		CommissionRate:   rate,
		CommissionAmount: commission,
		NetAmount:        net,
		StayStart:        r.CheckInDate,
		StayEnd:          r.CheckOutDate,
	}
	if err := s.DB.Create(&rev).Error; err != nil {
		return fmt.Errorf("failed to create revenue entry: %w", err)
	}
	return nil
}

// cancelCascade cancels open missions and deletes the ledger entry for a
// reservation entering CANCELLED.
func (s *ReservationService) cancelCascade(tx *gorm.DB, reservationID uint) error {
	if err := s.Missions.CancelReservationMissions(tx, reservationID); err != nil {
		return err
	}
	if err := tx.Where("reservation_id = ?", reservationID).Delete(&models.Revenue{}).Error; err != nil {
		return fmt.Errorf("failed to delete revenue for reservation %d: %w", reservationID, err)
	}
	return nil
}

// Get returns one reservation with its unit and missions preloaded.
func (s *ReservationService) Get(id uint) (*models.Reservation, error) {
	var r models.Reservation
	if err := s.DB.Preload("Unit").Preload("Missions").First(&r, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to retrieve reservation: %w", err)
	}
	return &r, nil
}

// List returns an organisation's reservations, newest first, optionally
// filtered by unit and status.
func (s *ReservationService) List(orgID uint, unitID *uint, status string) ([]models.Reservation, error) {
	q := s.DB.Preload("Unit").Where("organisation_id = ?", orgID)
	if unitID != nil {
		q = q.Where("unit_id = ?", *unitID)
	}
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var list []models.Reservation
	if err := q.Order("created_at DESC").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve reservations: %w", err)
	}
	return list, nil
}
