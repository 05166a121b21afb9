package earnings

import (
	"math"
	"time"

	"paypulse/internal/domain"
)

// Payslip is a calendar month's pay. Gross is always recomputed from hours
// and rates. PersistedPay sums the stored pay values so the two can be
// checked against each other.
type Payslip struct {
	Summary
	Month        string  `json:"month"`
	PersistedPay float64 `json:"persisted_pay"`
	Drift        float64 `json:"drift"`
	Reconciled   bool    `json:"reconciled"`
}

// Payslip builds the payslip for the month containing month. Shifts
// outside that month are ignored.
func (b Builder) Payslip(month time.Time, shifts []domain.Shift, expenses []domain.Expense) (Payslip, error) {
	period, err := BoundsFor(domain.PeriodMonth, month)
	if err != nil {
		return Payslip{}, err
	}
	inMonth := InPeriod(shifts, period)
	if err := ValidateShifts(inMonth); err != nil {
		return Payslip{}, err
	}

	summary := b.summarize(period, inMonth, expenses)
	earning := Earning(inMonth)
	var persisted float64
	for _, s := range earning {
		persisted += EffectivePay(s)
	}
	gross := GrossFromRates(inMonth)
	// stored pay is rounded per shift, so allow half a penny each
	tolerance := 0.005*float64(len(earning)) + 1e-9

	return Payslip{
		Summary:      summary,
		Month:        period.Start.Format("2006-01"),
		PersistedPay: Round2(persisted),
		Drift:        Round2(persisted - gross),
		Reconciled:   math.Abs(persisted-gross) <= tolerance,
	}, nil
}
