package services

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestComputeLedgerBasicSplit(t *testing.T) {
	svc := NewLedgerService()

	commission, net := svc.ComputeLedger(decimal.NewFromFloat(1000.00), decimal.NewFromInt(15))
	if got, want := commission.StringFixed(2), "150.00"; got != want {
		t.Fatalf("commission = %s, want %s", got, want)
	}
	if got, want := net.StringFixed(2), "850.00"; got != want {
		t.Fatalf("net = %s, want %s", got, want)
	}
}

func TestComputeLedgerRoundsHalfUp(t *testing.T) {
	svc := NewLedgerService()

	// 99.99 * 33.33% = 33.326667 -> 33.33
	commission, net := svc.ComputeLedger(mustDecimal(t, "99.99"), mustDecimal(t, "33.33"))
	if got, want := commission.StringFixed(2), "33.33"; got != want {
		t.Fatalf("commission = %s, want %s", got, want)
	}
	if got, want := net.StringFixed(2), "66.66"; got != want {
		t.Fatalf("net = %s, want %s", got, want)
	}

	// 25.00 * 0.5% = 0.125, a tie: half-up gives 0.13
	commission, _ = svc.ComputeLedger(mustDecimal(t, "25.00"), mustDecimal(t, "0.5"))
	if got, want := commission.StringFixed(2), "0.13"; got != want {
		t.Fatalf("tie commission = %s, want %s", got, want)
	}
}

func TestComputeLedgerGrossEqualsCommissionPlusNet(t *testing.T) {
	svc := NewLedgerService()

	cases := []struct{ gross, rate string }{
		{"700.00", "15"},
		{"99.99", "33.33"},
		{"0.01", "50"},
		{"1234.56", "0"},
		{"10.00", "100"},
	}
	for _, tc := range cases {
		gross := mustDecimal(t, tc.gross)
		commission, net := svc.ComputeLedger(gross, mustDecimal(t, tc.rate))
		if !commission.Add(net).Equal(gross) {
			t.Fatalf("gross %s rate %s: commission %s + net %s != gross", tc.gross, tc.rate, commission, net)
		}
	}
}

func TestComputeLedgerNegativeRateClampsToZero(t *testing.T) {
	svc := NewLedgerService()

	commission, net := svc.ComputeLedger(mustDecimal(t, "500.00"), decimal.NewFromInt(-5))
	if !commission.IsZero() {
		t.Fatalf("commission = %s, want 0", commission)
	}
	if got, want := net.StringFixed(2), "500.00"; got != want {
		t.Fatalf("net = %s, want %s", got, want)
	}
}
