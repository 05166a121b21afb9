package domain

import "time"

type GoalType string

const (
	GoalEarnings GoalType = "earnings"
	GoalHours    GoalType = "hours"
	GoalShifts   GoalType = "shifts"
)

type PeriodKind string

const (
	PeriodMonth PeriodKind = "month"
	PeriodYear  PeriodKind = "year"
)

// Goal is a target over a calendar month or year. GoalDate anchors the
// window; StartDate and FinishDate are what was stored at creation.
type Goal struct {
	ID         string     `json:"id"`
	EmployeeID int        `json:"employee_id"`
	GoalType   GoalType   `json:"goal_type"`
	Period     PeriodKind `json:"period"`
	Target     float64    `json:"target"`
	StartDate  time.Time  `json:"start_date"`
	FinishDate time.Time  `json:"finish_date"`
	GoalDate   time.Time  `json:"goal_date"`
}

type GoalRepo interface {
	AddGoal(goal Goal) (string, error)
	GetGoals(employeeID int) ([]Goal, error)
	DeleteGoal(employeeID int, id string) error
}
