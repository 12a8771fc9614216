package services

import (
	"fmt"
	"time"

	"conciergerie-backend/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// RevenueService is the reporting read side of the ledger. Writes to Revenue
// rows happen only in the reservation orchestrator.
type RevenueService struct {
	DB *gorm.DB
}

func NewRevenueService(db *gorm.DB) *RevenueService {
	return &RevenueService{DB: db}
}

// List returns an organisation's ledger entries, optionally restricted to
// stays starting inside [from, to].
func (s *RevenueService) List(orgID uint, from, to *time.Time) ([]models.Revenue, error) {
	q := s.DB.Where("organisation_id = ?", orgID)
	if from != nil {
		q = q.Where("stay_start >= ?", *from)
	}
	if to != nil {
		q = q.Where("stay_start <= ?", *to)
	}

	var list []models.Revenue
	if err := q.Order("stay_start DESC").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to list revenues: %w", err)
	}
	return list, nil
}

// Totals sums gross, commission and net over the same filter as List.
func (s *RevenueService) Totals(orgID uint, from, to *time.Time) (gross, commission, net decimal.Decimal, err error) {
	list, err := s.List(orgID, from, to)
	if err != nil {
		return decimal.Zero, decimal.Zero, decimal.Zero, err
	}
	for _, r := range list {
		gross = gross.Add(r.GrossAmount)
		commission = commission.Add(r.CommissionAmount)
		net = net.Add(r.NetAmount)
	}
	return gross, commission, net, nil
}
