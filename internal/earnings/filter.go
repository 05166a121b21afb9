package earnings

import (
	"strings"
	"time"

	"paypulse/internal/domain"
)

// Predicate selects shifts for Filter.
type Predicate func(domain.Shift) bool

// Filter returns the shifts matching pred in their original order. The
// input slice is never modified.
func Filter(shifts []domain.Shift, pred Predicate) []domain.Shift {
	out := make([]domain.Shift, 0, len(shifts))
	for _, s := range shifts {
		if pred(s) {
			out = append(out, s)
		}
	}
	return out
}

// ByStatusExcluding drops shifts whose status is in statuses.
func ByStatusExcluding(shifts []domain.Shift, statuses ...domain.Status) []domain.Shift {
	set := statusSet(statuses)
	return Filter(shifts, func(s domain.Shift) bool {
		_, skip := set[s.Status]
		return !skip
	})
}

// ByStatus keeps only shifts whose status is in statuses.
func ByStatus(shifts []domain.Shift, statuses ...domain.Status) []domain.Shift {
	set := statusSet(statuses)
	return Filter(shifts, func(s domain.Shift) bool {
		_, ok := set[s.Status]
		return ok
	})
}

// ByDateRange keeps shifts dated within [start, end], both inclusive.
// Only the calendar date is compared.
func ByDateRange(shifts []domain.Shift, start, end time.Time) []domain.Shift {
	from, to := civil(start), civil(end)
	return Filter(shifts, func(s domain.Shift) bool {
		d := civil(s.Date)
		return !d.Before(from) && !d.After(to)
	})
}

// InPeriod is ByDateRange over p's bounds.
func InPeriod(shifts []domain.Shift, p Period) []domain.Shift {
	return ByDateRange(shifts, p.Start, p.End)
}

// ByCompany matches the company name case-insensitively.
func ByCompany(shifts []domain.Shift, company string) []domain.Shift {
	company = strings.TrimSpace(company)
	return Filter(shifts, func(s domain.Shift) bool {
		return strings.EqualFold(strings.TrimSpace(s.Company), company)
	})
}

// Earning drops cancelled shifts, leaving the ones that count towards
// money and hours.
func Earning(shifts []domain.Shift) []domain.Shift {
	return ByStatusExcluding(shifts, domain.StatusCancelled)
}

func statusSet(statuses []domain.Status) map[domain.Status]struct{} {
	set := make(map[domain.Status]struct{}, len(statuses))
	for _, st := range statuses {
		set[st] = struct{}{}
	}
	return set
}
