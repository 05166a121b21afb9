package format

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"paypulse/internal/app/service"
	"paypulse/internal/domain"
	"paypulse/internal/earnings"
)

func date(s string) time.Time {
	d, _ := time.Parse("2006-01-02", s)
	return d
}

func TestPounds(t *testing.T) {
	assert.Equal(t, "£12.50", Pounds(12.5))
	assert.Equal(t, "-£5.00", Pounds(-5))
	assert.Equal(t, "£0.00", Pounds(0))
}

func TestShift(t *testing.T) {
	d := date("2026-10-02")
	s := domain.Shift{
		Date: d, StartTime: d.Add(22 * time.Hour), FinishTime: d.Add(30 * time.Hour),
		Hours: 8, Rate: 12.5, Pay: 100, Status: domain.StatusConfirmed, Company: "Acme", Location: "Leeds",
	}
	assert.Equal(t, "Fri 2 Oct 22:00-06:00, 8.00h at £12.50 = £100.00, Acme @ Leeds [confirmed]", Shift(s))
}

func TestPayslip(t *testing.T) {
	shifts := []domain.Shift{
		{ID: "a", Date: date("2026-10-01"), Hours: 8, Rate: 10, Pay: 95, Status: domain.StatusComplete, Location: "Leeds"},
		{ID: "b", Date: date("2026-10-03"), Hours: 4, Rate: 10, Pay: 40, Status: domain.StatusCancelled},
	}
	slip, err := earnings.NewBuilder(0.2, nil).Payslip(date("2026-10-01"), shifts, nil)
	assert.NoError(t, err)

	want := "Payslip October 2026\n" +
		"Shifts: 2 (1 cancelled)\n" +
		"Hours: 8.00\n" +
		"Gross: £80.00\nTax: £16.00\nNet: £64.00\n" +
		"Top location: Leeds (1)\n" +
		"\nStored pay is off by £15.00, figures use hours x rate."
	assert.Equal(t, want, Payslip(slip))
}

func TestComparison(t *testing.T) {
	c := earnings.Comparison{
		Current:  earnings.Period{Label: "October 2026"},
		Previous: earnings.Period{Label: "September 2026"},
		Earnings: earnings.PercentageChange(100, 150),
		Hours:    earnings.PercentageChange(10, 5),
		Shifts:   earnings.PercentageChange(0, 3),
	}
	want := "October 2026 vs September 2026\n" +
		"Earnings: £150.00 (+50.00%)\n" +
		"Hours: 5.00 (-50.00%)\n" +
		"Shifts: 3 (no previous data)"
	assert.Equal(t, want, Comparison(c))
}

func TestGoals(t *testing.T) {
	assert.Contains(t, Goals(nil), "/goal")

	views := []service.GoalView{
		{
			Goal:          domain.Goal{Period: domain.PeriodMonth},
			Progress:      earnings.GoalProgress{GoalType: domain.GoalEarnings, Target: 500, Current: 250, Percentage: 50, Window: earnings.Period{Label: "October 2026"}},
			DaysRemaining: 16,
		},
		{
			Goal:     domain.Goal{Period: domain.PeriodYear},
			Progress: earnings.GoalProgress{GoalType: domain.GoalShifts, Target: 2, Current: 3, Percentage: 100, Completed: true, Window: earnings.Period{Label: "2026"}},
		},
	}
	want := "month earnings (October 2026): £250.00 / £500.00, 50%, 16 days left\n" +
		"year shifts (2026): 3 / 2, 100% done"
	assert.Equal(t, want, Goals(views))
}

func TestYearSkipsEmptyMonths(t *testing.T) {
	b := earnings.NewBuilder(0.2, nil)
	jan, _ := b.Payslip(date("2026-01-01"), []domain.Shift{{ID: "a", Date: date("2026-01-05"), Hours: 10, Rate: 10, Status: domain.StatusComplete}}, nil)
	feb, _ := b.Payslip(date("2026-02-01"), nil, nil)

	assert.Equal(t, "2026\nJan: £100.00 gross, £80.00 net\nTotal: £100.00 gross, £80.00 net", Year(2026, []earnings.Payslip{jan, feb}))
}
