package services

import (
	"github.com/shopspring/decimal"
)

// LedgerService computes the gross/commission/net split for a reservation.
// Stateless; persistence of Revenue rows is the orchestrator's job.
type LedgerService struct{}

func NewLedgerService() *LedgerService { return &LedgerService{} }

// ComputeLedger splits a gross amount by a commission rate expressed in
// percent. The commission is rounded half-up to 2 decimal places (currency
// minor units); the net is the exact remainder so gross = commission + net
// always holds.
func (s *LedgerService) ComputeLedger(gross, ratePercent decimal.Decimal) (commission, net decimal.Decimal) {
	if ratePercent.IsNegative() {
		ratePercent = decimal.Zero
	}
	commission = gross.Mul(ratePercent).Div(decimal.NewFromInt(100)).Round(2)
	net = gross.Sub(commission)
	return commission, net
}
