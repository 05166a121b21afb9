package earnings

import (
	"fmt"
	"math"
	"time"

	"paypulse/internal/domain"
)

type GoalProgress struct {
	GoalID     string          `json:"goal_id"`
	GoalType   domain.GoalType `json:"goal_type"`
	Target     float64         `json:"target"`
	Current    float64         `json:"current"`
	Percentage int             `json:"percentage"`
	Completed  bool            `json:"completed"`
	Window     Period          `json:"window"`
}

// ValidateGoal rejects goals whose progress cannot be measured.
func ValidateGoal(g domain.Goal) error {
	if math.IsNaN(g.Target) || math.IsInf(g.Target, 0) || g.Target <= 0 {
		return domain.InvalidGoalError{GoalID: g.ID, Reason: fmt.Sprintf("target must be positive, got %v", g.Target)}
	}
	switch g.GoalType {
	case domain.GoalEarnings, domain.GoalHours, domain.GoalShifts:
	default:
		return domain.InvalidGoalError{GoalID: g.ID, Reason: fmt.Sprintf("unknown goal type %q", g.GoalType)}
	}
	switch g.Period {
	case domain.PeriodMonth, domain.PeriodYear:
	default:
		return domain.InvalidGoalError{GoalID: g.ID, Reason: fmt.Sprintf("unknown period %q", g.Period)}
	}
	return nil
}

// NewGoal fills in the stored window for a goal created at createdAt.
func NewGoal(goalType domain.GoalType, period domain.PeriodKind, target float64, createdAt time.Time) (domain.Goal, error) {
	g := domain.Goal{GoalType: goalType, Period: period, Target: target, GoalDate: createdAt}
	if err := ValidateGoal(g); err != nil {
		return domain.Goal{}, err
	}
	window, err := BoundsFor(period, createdAt)
	if err != nil {
		return domain.Goal{}, err
	}
	g.StartDate = window.Start
	g.FinishDate = window.End
	return g, nil
}

// GoalWindow re-derives the window from the goal's anchor date rather than
// trusting the stored start and finish.
func GoalWindow(g domain.Goal) (Period, error) {
	return BoundsFor(g.Period, g.GoalDate)
}

// Progress measures g against the shifts dated inside its window. Shifts
// outside the window are ignored, so callers may pass a wider collection.
//
// Earnings and hours skip cancelled shifts. The shifts goal counts every
// shift in the window, cancelled ones included.
func Progress(g domain.Goal, shifts []domain.Shift) (GoalProgress, error) {
	if err := ValidateGoal(g); err != nil {
		return GoalProgress{}, err
	}
	window, err := GoalWindow(g)
	if err != nil {
		return GoalProgress{}, err
	}
	m, err := Aggregate(InPeriod(shifts, window))
	if err != nil {
		return GoalProgress{}, err
	}

	var current float64
	switch g.GoalType {
	case domain.GoalEarnings:
		current = m.TotalPay
	case domain.GoalHours:
		current = m.TotalHours
	case domain.GoalShifts:
		current = float64(m.ShiftCount)
	}

	pct := roundPercent(current, g.Target)
	if pct > 100 {
		pct = 100
	}
	if pct < 0 {
		pct = 0
	}
	return GoalProgress{
		GoalID:     g.ID,
		GoalType:   g.GoalType,
		Target:     g.Target,
		Current:    current,
		Percentage: pct,
		Completed:  pct >= 100,
		Window:     window,
	}, nil
}
