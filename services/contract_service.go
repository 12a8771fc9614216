package services

import (
	"errors"
	"fmt"
	"time"

	"conciergerie-backend/models"

	"gorm.io/gorm"
)

// ContractService is the read side of management contracts. Contract CRUD
// lives elsewhere; the orchestrator only resolves the active contract for a
// unit and date.
type ContractService struct {
	DB *gorm.DB
}

func NewContractService(db *gorm.DB) *ContractService {
	return &ContractService{DB: db}
}

// ResolveActiveContract returns the ACTIVE contract for the unit whose
// [start_date, end_date] interval contains onDate. When several match, the
// most recently created one wins. No match is not an error: callers treat a
// nil contract as commission rate 0.
func (s *ContractService) ResolveActiveContract(unitID uint, onDate time.Time) (*models.Contract, error) {
	var contract models.Contract
	err := s.DB.
		Where("unit_id = ? AND status = ?", unitID, models.ContractStatusActive).
		Where("start_date <= ? AND end_date >= ?", onDate, onDate).
		Order("created_at DESC, id DESC").
		First(&contract).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to resolve active contract: %w", err)
	}
	return &contract, nil
}

// ListByUnit returns all contracts on a unit, newest first.
func (s *ContractService) ListByUnit(unitID uint) ([]models.Contract, error) {
	var list []models.Contract
	if err := s.DB.
		Where("unit_id = ?", unitID).
		Order("created_at DESC").
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to list contracts: %w", err)
	}
	return list, nil
}
