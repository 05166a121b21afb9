package earnings

import (
	"fmt"
	"time"

	"paypulse/internal/domain"
)

// Period is an inclusive calendar range. End is the last millisecond of
// the final day.
type Period struct {
	Kind  domain.PeriodKind `json:"kind,omitempty"`
	Start time.Time         `json:"start"`
	End   time.Time         `json:"end"`
	Label string            `json:"label"`
}

// BoundsFor returns the calendar month or year containing anchor, in
// anchor's location.
func BoundsFor(kind domain.PeriodKind, anchor time.Time) (Period, error) {
	if anchor.IsZero() {
		return Period{}, domain.InvalidDateError{Reason: "anchor is not set"}
	}
	loc := anchor.Location()
	switch kind {
	case domain.PeriodMonth:
		start := time.Date(anchor.Year(), anchor.Month(), 1, 0, 0, 0, 0, loc)
		return Period{
			Kind:  kind,
			Start: start,
			End:   start.AddDate(0, 1, 0).Add(-time.Millisecond),
			Label: start.Format("January 2006"),
		}, nil
	case domain.PeriodYear:
		start := time.Date(anchor.Year(), time.January, 1, 0, 0, 0, 0, loc)
		return Period{
			Kind:  kind,
			Start: start,
			End:   start.AddDate(1, 0, 0).Add(-time.Millisecond),
			Label: start.Format("2006"),
		}, nil
	}
	return Period{}, domain.InvalidDateError{Value: anchor, Reason: fmt.Sprintf("unknown period %q", kind)}
}

// Range builds an arbitrary inclusive period covering whole days from
// start to end.
func Range(start, end time.Time) (Period, error) {
	if start.IsZero() || end.IsZero() {
		return Period{}, domain.InvalidDateError{Reason: "range bound is not set"}
	}
	from := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
	to := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, end.Location()).AddDate(0, 0, 1).Add(-time.Millisecond)
	if to.Before(from) {
		return Period{}, domain.InvalidDateError{Value: end, Reason: "range ends before it starts"}
	}
	return Period{
		Start: from,
		End:   to,
		Label: from.Format("2 Jan 2006") + " - " + to.Format("2 Jan 2006"),
	}, nil
}

// Contains compares calendar dates only; the time of day is ignored.
func (p Period) Contains(date time.Time) bool {
	d := civil(date)
	return !d.Before(civil(p.Start)) && !d.After(civil(p.End))
}

// Days is the number of calendar days covered, both ends included.
func (p Period) Days() int {
	return daysBetween(p.Start, p.End) + 1
}

// Previous returns the period immediately before p. Months and years step
// back one calendar unit; custom ranges step back by their own length.
func (p Period) Previous() Period {
	if p.Kind == domain.PeriodMonth || p.Kind == domain.PeriodYear {
		prev, err := BoundsFor(p.Kind, p.Start.AddDate(0, 0, -1))
		if err == nil {
			return prev
		}
	}
	days := p.Days()
	prev, _ := Range(p.Start.AddDate(0, 0, -days), p.Start.AddDate(0, 0, -1))
	return prev
}

// DaysElapsed counts the days of p up to and including today, clamped to
// [0, p.Days()].
func (p Period) DaysElapsed(today time.Time) int {
	if civil(today).Before(civil(p.Start)) {
		return 0
	}
	n := daysBetween(p.Start, today) + 1
	if n > p.Days() {
		return p.Days()
	}
	return n
}

// ElapsedPercent is how far through its month or year anchor is, rounded
// to the nearest whole percent.
func ElapsedPercent(kind domain.PeriodKind, anchor time.Time) (int, error) {
	p, err := BoundsFor(kind, anchor)
	if err != nil {
		return 0, err
	}
	return roundPercent(float64(p.DaysElapsed(anchor)), float64(p.Days())), nil
}

// DaysRemaining counts the days left in p starting from today, today
// included. It is 0 once p has ended.
func DaysRemaining(p Period, today time.Time) int {
	if civil(today).After(civil(p.End)) {
		return 0
	}
	if civil(today).Before(civil(p.Start)) {
		return p.Days()
	}
	return daysBetween(today, p.End) + 1
}

func civil(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func daysBetween(a, b time.Time) int {
	return int(civil(b).Sub(civil(a)).Hours() / 24)
}
