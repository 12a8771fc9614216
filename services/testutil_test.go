package services

import (
	"fmt"
	"testing"
	"time"

	"conciergerie-backend/config"
	"conciergerie-backend/models"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := config.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func newTestServices(t *testing.T) (*gorm.DB, *ReservationService) {
	t.Helper()
	db := setupTestDB(t)
	checklist := NewChecklistService(db)
	missions := NewMissionService(db, checklist)
	contracts := NewContractService(db)
	svc := NewReservationService(db, missions, contracts, NewLedgerService())
	return db, svc
}

func seedOrgAndUnit(t *testing.T, db *gorm.DB) (models.Organisation, models.Unit) {
	t.Helper()
	org := models.Organisation{Name: "Test Conciergerie"}
	if err := db.Create(&org).Error; err != nil {
		t.Fatalf("org: %v", err)
	}
	unit := models.Unit{OrganisationID: org.ID, Name: "U1", City: "Marseille", MaxGuests: 4}
	if err := db.Create(&unit).Error; err != nil {
		t.Fatalf("unit: %v", err)
	}
	return org, unit
}

func seedActiveContract(t *testing.T, db *gorm.DB, org models.Organisation, unit models.Unit, rate string, start, end time.Time) models.Contract {
	t.Helper()
	contract := models.Contract{
		OrganisationID: org.ID,
		UnitID:         unit.ID,
		CommissionRate: mustDecimal(t, rate),
		Status:         models.ContractStatusActive,
		StartDate:      start,
		EndDate:        end,
	}
	if err := db.Create(&contract).Error; err != nil {
		t.Fatalf("contract: %v", err)
	}
	return contract
}

func mustDecimal(t *testing.T, v string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(v)
	if err != nil {
		t.Fatalf("decimal %q: %v", v, err)
	}
	return d
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
