package earnings

import (
	"time"

	"paypulse/internal/domain"
)

// ShiftHours is the length of a shift in hours, rounded to two decimals.
// A finish at or before the start is taken to be on the next day.
func ShiftHours(start, finish time.Time) float64 {
	d := finish.Sub(start)
	if d <= 0 {
		d += 24 * time.Hour
	}
	if d < 0 {
		return 0
	}
	return Round2(d.Hours())
}

// DerivePay is hours x rate rounded to pence.
func DerivePay(hours, rate float64) float64 {
	return Round2(hours * rate)
}

// MonthOverview splits the current month into what is already earned,
// what is still to come and the projected total.
type MonthOverview struct {
	Period          Period          `json:"period"`
	ProgressPercent int             `json:"progress_percent"`
	DaysRemaining   int             `json:"days_remaining"`
	Completed       MetricsSnapshot `json:"completed"`
	Upcoming        MetricsSnapshot `json:"upcoming"`
	Projected       MetricsSnapshot `json:"projected"`
}

func SummarizeMonth(shifts []domain.Shift, today time.Time) (MonthOverview, error) {
	p, err := BoundsFor(domain.PeriodMonth, today)
	if err != nil {
		return MonthOverview{}, err
	}
	inMonth := InPeriod(shifts, p)
	if err := ValidateShifts(inMonth); err != nil {
		return MonthOverview{}, err
	}
	return MonthOverview{
		Period:          p,
		ProgressPercent: roundPercent(float64(p.DaysElapsed(today)), float64(p.Days())),
		DaysRemaining:   DaysRemaining(p, today),
		Completed:       aggregate(ByStatus(inMonth, domain.StatusComplete)),
		Upcoming:        aggregate(ByStatus(inMonth, domain.StatusPending, domain.StatusConfirmed)),
		Projected:       aggregate(inMonth),
	}, nil
}

type MonthTotal struct {
	Period   Period  `json:"period"`
	Earnings float64 `json:"earnings"`
	Shifts   int     `json:"shifts"`
}

type Trend struct {
	Months  []MonthTotal `json:"months"`
	Average float64      `json:"average"`
	Best    MonthTotal   `json:"best"`
}

// MonthlyEarnings returns the last n calendar months up to today's, oldest
// first. Earnings skip cancelled shifts; Shifts counts all of them.
func MonthlyEarnings(shifts []domain.Shift, today time.Time, n int) (Trend, error) {
	current, err := BoundsFor(domain.PeriodMonth, today)
	if err != nil {
		return Trend{}, err
	}
	if err := ValidateShifts(shifts); err != nil {
		return Trend{}, err
	}
	var t Trend
	var total float64
	for i := n - 1; i >= 0; i-- {
		p, _ := BoundsFor(domain.PeriodMonth, current.Start.AddDate(0, -i, 0))
		m := aggregate(InPeriod(shifts, p))
		mt := MonthTotal{Period: p, Earnings: m.TotalPay, Shifts: m.ShiftCount}
		if len(t.Months) == 0 || mt.Earnings > t.Best.Earnings {
			t.Best = mt
		}
		t.Months = append(t.Months, mt)
		total += mt.Earnings
	}
	t.Average = Round2(Average(total, len(t.Months)))
	return t, nil
}
