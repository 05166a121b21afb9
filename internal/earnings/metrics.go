package earnings

import (
	"strings"

	"paypulse/internal/domain"
)

// MetricsSnapshot holds totals over a shift collection. Hours and pay skip
// cancelled shifts; the counts include every shift.
type MetricsSnapshot struct {
	TotalHours     float64 `json:"total_hours"`
	TotalPay       float64 `json:"total_pay"`
	ShiftCount     int     `json:"shift_count"`
	CompletedCount int     `json:"completed_count"`
	ConfirmedCount int     `json:"confirmed_count"`
	PendingCount   int     `json:"pending_count"`
	CancelledCount int     `json:"cancelled_count"`
}

// EarningCount is the number of shifts that contributed to hours and pay.
func (m MetricsSnapshot) EarningCount() int {
	return m.ShiftCount - m.CancelledCount
}

func (m MetricsSnapshot) AverageHours() float64 {
	return Round2(Average(m.TotalHours, m.EarningCount()))
}

func (m MetricsSnapshot) AveragePay() float64 {
	return Round2(Average(m.TotalPay, m.EarningCount()))
}

// Aggregate reduces shifts to a MetricsSnapshot. It fails on the first
// malformed shift instead of folding it in as zero.
func Aggregate(shifts []domain.Shift) (MetricsSnapshot, error) {
	if err := ValidateShifts(shifts); err != nil {
		return MetricsSnapshot{}, err
	}
	return aggregate(shifts), nil
}

func aggregate(shifts []domain.Shift) MetricsSnapshot {
	var m MetricsSnapshot
	for _, s := range shifts {
		m.ShiftCount++
		switch s.Status {
		case domain.StatusComplete:
			m.CompletedCount++
		case domain.StatusConfirmed:
			m.ConfirmedCount++
		case domain.StatusPending:
			m.PendingCount++
		case domain.StatusCancelled:
			m.CancelledCount++
			continue
		}
		m.TotalHours += s.Hours
		m.TotalPay += EffectivePay(s)
	}
	m.TotalHours = Round2(m.TotalHours)
	m.TotalPay = Round2(m.TotalPay)
	return m
}

// EffectivePay is the stored pay, or hours x rate when none was stored.
func EffectivePay(s domain.Shift) float64 {
	if s.Pay != 0 {
		return s.Pay
	}
	return s.Hours * s.Rate
}

// KeyFunc extracts the grouping key of a shift.
type KeyFunc func(domain.Shift) string

func LocationKey(s domain.Shift) string { return strings.TrimSpace(s.Location) }

func CompanyKey(s domain.Shift) string { return strings.TrimSpace(s.Company) }

func MonthKey(s domain.Shift) string { return s.Date.Format("2006-01") }

type Frequency struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// FrequencyBy counts occurrences of each distinct non-blank key among the
// shifts given, in order of first appearance. Callers decide whether
// cancelled shifts are filtered out first.
func FrequencyBy(shifts []domain.Shift, key KeyFunc) []Frequency {
	index := make(map[string]int)
	var out []Frequency
	for _, s := range shifts {
		k := key(s)
		if k == "" {
			continue
		}
		if i, ok := index[k]; ok {
			out[i].Count++
			continue
		}
		index[k] = len(out)
		out = append(out, Frequency{Value: k, Count: 1})
	}
	return out
}

type Group struct {
	Key     string          `json:"key"`
	Metrics MetricsSnapshot `json:"metrics"`
}

// AggregateBy builds one snapshot per key, in order of first appearance.
func AggregateBy(shifts []domain.Shift, key KeyFunc) ([]Group, error) {
	if err := ValidateShifts(shifts); err != nil {
		return nil, err
	}
	index := make(map[string]int)
	var buckets [][]domain.Shift
	var keys []string
	for _, s := range shifts {
		k := key(s)
		i, ok := index[k]
		if !ok {
			i = len(buckets)
			index[k] = i
			keys = append(keys, k)
			buckets = append(buckets, nil)
		}
		buckets[i] = append(buckets[i], s)
	}
	groups := make([]Group, len(buckets))
	for i, b := range buckets {
		groups[i] = Group{Key: keys[i], Metrics: aggregate(b)}
	}
	return groups, nil
}
