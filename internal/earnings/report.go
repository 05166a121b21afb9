package earnings

import (
	"time"

	"paypulse/internal/domain"
)

// Report summarises an arbitrary date range.
type Report struct {
	Summary
	Days                 int     `json:"days"`
	AverageHoursPerShift float64 `json:"average_hours_per_shift"`
	AveragePayPerShift   float64 `json:"average_pay_per_shift"`
	HighestShiftPay      float64 `json:"highest_shift_pay"`
	LowestShiftPay       float64 `json:"lowest_shift_pay"`
	CancelledShifts      int     `json:"cancelled_shifts"`
	ExpenseIncomeRatio   float64 `json:"expense_income_ratio"`
}

// Report builds a report over [start, end]. Shifts dated outside the range
// are ignored.
func (b Builder) Report(start, end time.Time, shifts []domain.Shift, expenses []domain.Expense) (Report, error) {
	period, err := Range(start, end)
	if err != nil {
		return Report{}, err
	}
	inRange := InPeriod(shifts, period)
	if err := ValidateShifts(inRange); err != nil {
		return Report{}, err
	}

	summary := b.summarize(period, inRange, expenses)
	r := Report{
		Summary:              summary,
		Days:                 period.Days(),
		AverageHoursPerShift: summary.Metrics.AverageHours(),
		AveragePayPerShift:   Round2(Average(summary.Pay.Gross, summary.Metrics.EarningCount())),
		CancelledShifts:      summary.Metrics.CancelledCount,
	}
	for i, s := range Earning(inRange) {
		pay := Round2(s.Hours * s.Rate)
		if i == 0 || pay > r.HighestShiftPay {
			r.HighestShiftPay = pay
		}
		if i == 0 || pay < r.LowestShiftPay {
			r.LowestShiftPay = pay
		}
	}
	if summary.Pay.Gross > 0 {
		r.ExpenseIncomeRatio = Round2(summary.Expenses.EligibleTotal / summary.Pay.Gross * 100)
	}
	return r, nil
}
