package services

import (
	"testing"
	"time"

	"conciergerie-backend/models"
)

func TestResolveActiveContractPicksCoveringContract(t *testing.T) {
	db := setupTestDB(t)
	org, unit := seedOrgAndUnit(t, db)
	svc := NewContractService(db)

	contract := seedActiveContract(t, db, org, unit, "15",
		date(2024, time.June, 1), date(2024, time.June, 30))

	got, err := svc.ResolveActiveContract(unit.ID, date(2024, time.June, 10))
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got == nil || got.ID != contract.ID {
		t.Fatalf("resolved %+v, want contract %d", got, contract.ID)
	}
}

func TestResolveActiveContractBoundsAreInclusive(t *testing.T) {
	db := setupTestDB(t)
	org, unit := seedOrgAndUnit(t, db)
	svc := NewContractService(db)

	seedActiveContract(t, db, org, unit, "15",
		date(2024, time.June, 1), date(2024, time.June, 30))

	for _, d := range []time.Time{date(2024, time.June, 1), date(2024, time.June, 30)} {
		got, err := svc.ResolveActiveContract(unit.ID, d)
		if err != nil {
			t.Fatalf("resolve %s: %v", d, err)
		}
		if got == nil {
			t.Fatalf("expected contract on boundary date %s", d)
		}
	}

	got, err := svc.ResolveActiveContract(unit.ID, date(2024, time.July, 1))
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got != nil {
		t.Fatalf("expected no contract past end date, got %d", got.ID)
	}
}

func TestResolveActiveContractIgnoresInactive(t *testing.T) {
	db := setupTestDB(t)
	org, unit := seedOrgAndUnit(t, db)
	svc := NewContractService(db)

	draft := models.Contract{
		OrganisationID: org.ID,
		UnitID:         unit.ID,
		CommissionRate: mustDecimal(t, "10"),
		Status:         models.ContractStatusDraft,
		StartDate:      date(2024, time.January, 1),
		EndDate:        date(2024, time.December, 31),
	}
	if err := db.Create(&draft).Error; err != nil {
		t.Fatalf("draft: %v", err)
	}

	got, err := svc.ResolveActiveContract(unit.ID, date(2024, time.June, 10))
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got != nil {
		t.Fatalf("draft contract must not resolve, got %d", got.ID)
	}
}

func TestResolveActiveContractMostRecentWinsOnOverlap(t *testing.T) {
	db := setupTestDB(t)
	org, unit := seedOrgAndUnit(t, db)
	svc := NewContractService(db)

	seedActiveContract(t, db, org, unit, "10",
		date(2024, time.January, 1), date(2024, time.December, 31))
	newer := seedActiveContract(t, db, org, unit, "20",
		date(2024, time.May, 1), date(2024, time.August, 31))

	got, err := svc.ResolveActiveContract(unit.ID, date(2024, time.June, 10))
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got == nil || got.ID != newer.ID {
		t.Fatalf("resolved %+v, want most recently created contract %d", got, newer.ID)
	}
}

func TestResolveActiveContractNoneIsNotAnError(t *testing.T) {
	db := setupTestDB(t)
	_, unit := seedOrgAndUnit(t, db)
	svc := NewContractService(db)

	got, err := svc.ResolveActiveContract(unit.ID, date(2024, time.June, 10))
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil contract, got %d", got.ID)
	}
}
