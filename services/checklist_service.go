package services

import (
	"errors"
	"fmt"

	"conciergerie-backend/models"

	"gorm.io/gorm"
)

// ChecklistService binds checklist templates onto missions. Template CRUD is
// out of scope here; this service only reads templates and copies their items.
type ChecklistService struct {
	DB *gorm.DB
}

func NewChecklistService(db *gorm.DB) *ChecklistService {
	return &ChecklistService{DB: db}
}

// FindApplicableTemplate returns the checklist template for a unit and
// mission type, or nil when none is configured. Missing templates are normal,
// not an error.
func (s *ChecklistService) FindApplicableTemplate(unitID uint, missionType string, orgID uint) (*models.ChecklistTemplate, error) {
	var tpl models.ChecklistTemplate
	err := s.DB.
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC, id ASC")
		}).
		Where("unit_id = ? AND mission_type = ? AND organisation_id = ?", unitID, missionType, orgID).
		Order("created_at DESC").
		First(&tpl).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find checklist template: %w", err)
	}
	return &tpl, nil
}

// MaterializeChecklist copies every item of the template onto the mission as
// uncompleted checklist rows. The copy is point-in-time: later template edits
// do not touch rows created here.
func (s *ChecklistService) MaterializeChecklist(tx *gorm.DB, tpl *models.ChecklistTemplate, missionID uint) error {
	if tpl == nil || len(tpl.Items) == 0 {
		return nil
	}

	rows := make([]models.MissionChecklistItem, 0, len(tpl.Items))
	for _, item := range tpl.Items {
		rows = append(rows, models.MissionChecklistItem{
			MissionID:     missionID,
			Title:         item.Title,
			Category:      item.Category,
			PhotoRequired: item.PhotoRequired,
			SortOrder:     item.SortOrder,
			Completed:     false,
		})
	}

	if err := tx.Create(&rows).Error; err != nil {
		return fmt.Errorf("failed to materialize checklist for mission %d: %w", missionID, err)
	}
	return nil
}
