package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"paypulse/internal/domain"
	"paypulse/internal/earnings"
)

type GoalService struct {
	Goals  domain.GoalRepo
	Shifts domain.ShiftRepo
	Log    logrus.FieldLogger
	Now    func() time.Time
}

func NewGoalService(goals domain.GoalRepo, shifts domain.ShiftRepo, log logrus.FieldLogger) *GoalService {
	return &GoalService{Goals: goals, Shifts: shifts, Log: log, Now: time.Now}
}

// GoalView is a goal with its measured progress.
type GoalView struct {
	Goal          domain.Goal           `json:"goal"`
	Progress      earnings.GoalProgress `json:"progress"`
	DaysRemaining int                   `json:"days_remaining"`
}

func (s *GoalService) AddGoal(employeeID int, goalType domain.GoalType, period domain.PeriodKind, target float64) (domain.Goal, error) {
	g, err := earnings.NewGoal(goalType, period, target, s.Now())
	if err != nil {
		return domain.Goal{}, err
	}
	g.EmployeeID = employeeID
	id, err := s.Goals.AddGoal(g)
	if err != nil {
		return domain.Goal{}, fmt.Errorf("add goal: %w", err)
	}
	g.ID = id
	s.Log.WithFields(logrus.Fields{
		"employee_id": employeeID,
		"goal_id":     id,
		"goal_type":   goalType,
		"period":      period,
	}).Info("goal added")
	return g, nil
}

// Progress measures every goal of the employee. Goals that can no longer
// be measured are logged and left out.
func (s *GoalService) Progress(employeeID int) ([]GoalView, error) {
	goals, err := s.Goals.GetGoals(employeeID)
	if err != nil {
		return nil, fmt.Errorf("get goals: %w", err)
	}
	now := s.Now()
	views := make([]GoalView, 0, len(goals))
	for _, g := range goals {
		window, err := earnings.GoalWindow(g)
		if err != nil {
			s.skipGoal(g, err)
			continue
		}
		shifts, err := s.Shifts.GetShifts(employeeID, window.Start, window.End)
		if err != nil {
			return nil, fmt.Errorf("get shifts for goal %s: %w", g.ID, err)
		}
		progress, err := earnings.Progress(g, sanitize(s.Log, employeeID, shifts))
		if err != nil {
			var goalErr domain.InvalidGoalError
			var dateErr domain.InvalidDateError
			if errors.As(err, &goalErr) || errors.As(err, &dateErr) {
				s.skipGoal(g, err)
				continue
			}
			return nil, err
		}
		views = append(views, GoalView{
			Goal:          g,
			Progress:      progress,
			DaysRemaining: earnings.DaysRemaining(window, now),
		})
	}
	return views, nil
}

func (s *GoalService) DeleteGoal(employeeID int, id string) error {
	return s.Goals.DeleteGoal(employeeID, id)
}

func (s *GoalService) skipGoal(g domain.Goal, err error) {
	s.Log.WithFields(logrus.Fields{"employee_id": g.EmployeeID, "goal_id": g.ID}).WithError(err).Warn("skipping goal")
}
