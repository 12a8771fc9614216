package services

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"conciergerie-backend/models"
	"conciergerie-backend/utils"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Default times of day applied when a reservation carries no explicit
// check-in/check-out time.
const (
	defaultCheckinHour  = 15
	defaultCheckoutHour = 11
	cleaningOffsetHours = 2
)

type MissionService struct {
	DB        *gorm.DB
	Checklist *ChecklistService
}

func NewMissionService(db *gorm.DB, checklist *ChecklistService) *MissionService {
	return &MissionService{DB: db, Checklist: checklist}
}

// parseTimeOfDay parses "15:04" into hour and minute, falling back to the
// given default hour on absent or malformed values.
func parseTimeOfDay(v *string, defaultHour int) (hour, minute int) {
	if v == nil || strings.TrimSpace(*v) == "" {
		return defaultHour, 0
	}
	parts := strings.SplitN(strings.TrimSpace(*v), ":", 2)
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return defaultHour, 0
	}
	m := 0
	if len(parts) == 2 {
		if pm, err := strconv.Atoi(parts[1]); err == nil && pm >= 0 && pm <= 59 {
			m = pm
		}
	}
	return h, m
}

func atTime(date time.Time, hour, minute int) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), hour, minute, 0, 0, date.Location())
}

// FanOutMissions derives the CHECKIN, CHECKOUT and CLEANING missions for a
// confirmed reservation. It is idempotent: if any mission already references
// the reservation, nothing is inserted. Checklist materialization is
// best-effort per mission; a failure there is logged and never aborts the
// fan-out.
//
// The cleaning mission is scheduled checkout time + 2h with the hour wrapped
// modulo 24 on the checkout date. When the offset crosses midnight the date
// is not advanced, so the cleaning slot lands earlier the same day. Kept
// as-is; downstream planning screens compensate.
func (s *MissionService) FanOutMissions(tx *gorm.DB, r *models.Reservation) error {
	var existing int64
	if err := tx.Model(&models.Mission{}).
		Where("reservation_id = ?", r.ID).
		Count(&existing).Error; err != nil {
		return fmt.Errorf("failed to check existing missions: %w", err)
	}
	if existing > 0 {
		return nil
	}

	inHour, inMin := parseTimeOfDay(r.CheckInTime, defaultCheckinHour)
	outHour, outMin := parseTimeOfDay(r.CheckOutTime, defaultCheckoutHour)
	cleanHour := (outHour + cleaningOffsetHours) % 24

	resID := r.ID
	missions := []models.Mission{
		{
			OrganisationID: r.OrganisationID,
			UnitID:         r.UnitID,
			ReservationID:  &resID,
			Type:           models.MissionTypeCheckin,
			Status:         models.MissionStatusTodo,
			Priority:       models.MissionPriorityNormal,
			ScheduledAt:    atTime(r.CheckInDate, inHour, inMin),
		},
		{
			OrganisationID: r.OrganisationID,
			UnitID:         r.UnitID,
			ReservationID:  &resID,
			Type:           models.MissionTypeCheckout,
			Status:         models.MissionStatusTodo,
			Priority:       models.MissionPriorityNormal,
			ScheduledAt:    atTime(r.CheckOutDate, outHour, outMin),
		},
		{
			OrganisationID: r.OrganisationID,
			UnitID:         r.UnitID,
			ReservationID:  &resID,
			Type:           models.MissionTypeCleaning,
			Status:         models.MissionStatusTodo,
			Priority:       models.MissionPriorityHigh,
			ScheduledAt:    atTime(r.CheckOutDate, cleanHour, outMin),
		},
	}

	if err := tx.Create(&missions).Error; err != nil {
		return fmt.Errorf("failed to create missions for reservation %d: %w", r.ID, err)
	}

	for i := range missions {
		m := &missions[i]
		tpl, err := s.Checklist.FindApplicableTemplate(m.UnitID, m.Type, m.OrganisationID)
		if err == nil && tpl != nil {
			err = s.Checklist.MaterializeChecklist(tx, tpl, m.ID)
		}
		if err != nil {
			utils.GetLogger().Warn("checklist binding failed",
				zap.Uint("mission_id", m.ID),
				zap.String("mission_type", m.Type),
				zap.Error(err),
			)
		}
	}

	return nil
}

// CancelReservationMissions sets CANCELLED on every mission of the
// reservation that is not already DONE or CANCELLED. DONE work stays DONE.
func (s *MissionService) CancelReservationMissions(tx *gorm.DB, reservationID uint) error {
	err := tx.Model(&models.Mission{}).
		Where("reservation_id = ?", reservationID).
		Where("status NOT IN ?", []string{models.MissionStatusDone, models.MissionStatusCancelled}).
		Update("status", models.MissionStatusCancelled).Error
	if err != nil {
		return fmt.Errorf("failed to cancel missions for reservation %d: %w", reservationID, err)
	}
	return nil
}

// CreateStandalone creates an INTERVENTION or URGENT mission not tied to any
// reservation.
func (s *MissionService) CreateStandalone(orgID, unitID uint, missionType, priority, notes string, scheduledAt time.Time) (*models.Mission, error) {
	if missionType != models.MissionTypeIntervention && missionType != models.MissionTypeUrgent {
		return nil, newValidationError("type", "standalone missions must be INTERVENTION or URGENT")
	}
	if priority == "" {
		priority = models.MissionPriorityNormal
		if missionType == models.MissionTypeUrgent {
			priority = models.MissionPriorityHigh
		}
	}

	m := &models.Mission{
		OrganisationID: orgID,
		UnitID:         unitID,
		Type:           missionType,
		Status:         models.MissionStatusTodo,
		Priority:       priority,
		ScheduledAt:    scheduledAt,
		Notes:          notes,
	}
	if err := s.DB.Create(m).Error; err != nil {
		return nil, fmt.Errorf("failed to create mission: %w", err)
	}
	return m, nil
}

// UpdateStatus moves a mission along TODO -> IN_PROGRESS -> DONE. Cancelled
// and done missions cannot be reopened here.
func (s *MissionService) UpdateStatus(missionID uint, newStatus string) (*models.Mission, error) {
	switch newStatus {
	case models.MissionStatusTodo, models.MissionStatusInProgress, models.MissionStatusDone:
	default:
		return nil, newValidationError("status", "must be TODO, IN_PROGRESS or DONE")
	}

	var m models.Mission
	if err := s.DB.First(&m, missionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load mission: %w", err)
	}

	if m.Status == models.MissionStatusCancelled || m.Status == models.MissionStatusDone {
		return nil, newValidationError("status", fmt.Sprintf("mission is %s and cannot change status", m.Status))
	}

	if err := s.DB.Model(&m).Update("status", newStatus).Error; err != nil {
		return nil, fmt.Errorf("failed to update mission status: %w", err)
	}
	m.Status = newStatus
	return &m, nil
}

// Get returns one mission with its checklist items preloaded.
func (s *MissionService) Get(id uint) (*models.Mission, error) {
	var m models.Mission
	err := s.DB.
		Preload("ChecklistItems", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC, id ASC")
		}).
		First(&m, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to retrieve mission: %w", err)
	}
	return &m, nil
}

// List returns missions, optionally filtered by unit and status, with their
// checklist items preloaded, soonest first.
func (s *MissionService) List(orgID uint, unitID *uint, status string) ([]models.Mission, error) {
	q := s.DB.
		Preload("ChecklistItems", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC, id ASC")
		}).
		Where("organisation_id = ?", orgID)
	if unitID != nil {
		q = q.Where("unit_id = ?", *unitID)
	}
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var list []models.Mission
	if err := q.Order("scheduled_at ASC").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to list missions: %w", err)
	}
	return list, nil
}
