package earnings

import (
	"time"

	"paypulse/internal/domain"
)

// Change is the movement from a previous total to a current one.
// Percentage is signed and rounded to two decimals; it is 0 when the
// previous total is 0.
type Change struct {
	Previous   float64 `json:"previous"`
	Current    float64 `json:"current"`
	Delta      float64 `json:"delta"`
	Percentage float64 `json:"percentage"`
	IsPositive bool    `json:"is_positive"`
}

func PercentageChange(previous, current float64) Change {
	delta := current - previous
	var pct float64
	if previous != 0 {
		pct = Round2(delta / previous * 100)
	}
	return Change{
		Previous:   previous,
		Current:    current,
		Delta:      Round2(delta),
		Percentage: pct,
		IsPositive: pct >= 0,
	}
}

// Accessor picks the figure to compare out of a snapshot.
type Accessor func(MetricsSnapshot) float64

var (
	EarningsOf   Accessor = func(m MetricsSnapshot) float64 { return m.TotalPay }
	HoursOf      Accessor = func(m MetricsSnapshot) float64 { return m.TotalHours }
	ShiftCountOf Accessor = func(m MetricsSnapshot) float64 { return float64(m.ShiftCount) }
)

// Compare aggregates both collections and compares the accessed figure.
func Compare(previous, current []domain.Shift, acc Accessor) (Change, error) {
	prev, err := Aggregate(previous)
	if err != nil {
		return Change{}, err
	}
	cur, err := Aggregate(current)
	if err != nil {
		return Change{}, err
	}
	return PercentageChange(acc(prev), acc(cur)), nil
}

type Comparison struct {
	Current  Period `json:"current"`
	Previous Period `json:"previous"`
	Earnings Change `json:"earnings"`
	Hours    Change `json:"hours"`
	Shifts   Change `json:"shifts"`
}

// MonthOverMonth compares today's calendar month with the one before it.
// shifts may span any range; each side is cut to its own month.
func MonthOverMonth(shifts []domain.Shift, today time.Time) (Comparison, error) {
	cur, err := BoundsFor(domain.PeriodMonth, today)
	if err != nil {
		return Comparison{}, err
	}
	prev := cur.Previous()
	prevMetrics, err := Aggregate(InPeriod(shifts, prev))
	if err != nil {
		return Comparison{}, err
	}
	curMetrics, err := Aggregate(InPeriod(shifts, cur))
	if err != nil {
		return Comparison{}, err
	}
	return Comparison{
		Current:  cur,
		Previous: prev,
		Earnings: PercentageChange(EarningsOf(prevMetrics), EarningsOf(curMetrics)),
		Hours:    PercentageChange(HoursOf(prevMetrics), HoursOf(curMetrics)),
		Shifts:   PercentageChange(ShiftCountOf(prevMetrics), ShiftCountOf(curMetrics)),
	}, nil
}
