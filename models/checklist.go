package models

import (
	"time"

	"gorm.io/gorm"
)

// ChecklistTemplate is a reusable list of verification steps for one unit and
// one mission type.
type ChecklistTemplate struct {
	gorm.Model

	OrganisationID uint   `gorm:"index;column:organisation_id" json:"organisation_id"`
	UnitID         uint   `gorm:"index;column:unit_id" json:"unit_id"`
	MissionType    string `gorm:"column:mission_type;size:32;index" json:"mission_type"`
	Name           string `gorm:"size:255" json:"name"`

	Items []ChecklistTemplateItem `gorm:"foreignKey:TemplateID" json:"items,omitempty"`
}

type ChecklistTemplateItem struct {
	gorm.Model

	TemplateID    uint   `gorm:"index;column:template_id" json:"template_id"`
	Title         string `gorm:"size:255" json:"title"`
	Category      string `gorm:"size:120" json:"category,omitempty"`
	PhotoRequired bool   `gorm:"column:photo_required;default:false" json:"photo_required"`
	SortOrder     int    `gorm:"column:sort_order;default:0" json:"sort_order"`
}

// MissionChecklistItem is a point-in-time copy of a template item onto a
// mission. Template edits after mission creation do not touch these rows.
type MissionChecklistItem struct {
	gorm.Model

	MissionID     uint       `gorm:"index;column:mission_id" json:"mission_id"`
	Title         string     `gorm:"size:255" json:"title"`
	Category      string     `gorm:"size:120" json:"category,omitempty"`
	PhotoRequired bool       `gorm:"column:photo_required;default:false" json:"photo_required"`
	SortOrder     int        `gorm:"column:sort_order;default:0" json:"sort_order"`
	Completed     bool       `gorm:"default:false" json:"completed"`
	CompletedAt   *time.Time `gorm:"column:completed_at" json:"completed_at,omitempty"`
}
