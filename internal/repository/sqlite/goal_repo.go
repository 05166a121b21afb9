package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"paypulse/internal/domain"
)

type SqliteGoalRepo struct {
	db *sql.DB
}

func NewSqliteGoalRepo(db *sql.DB) *SqliteGoalRepo {
	return &SqliteGoalRepo{db: db}
}

func (r *SqliteGoalRepo) AddGoal(g domain.Goal) (string, error) {
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	_, err := r.db.Exec(
		`INSERT INTO goals (id, employee_id, goal_type, period, target, start_date, finish_date, goal_date)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		g.ID,
		g.EmployeeID,
		string(g.GoalType),
		string(g.Period),
		g.Target,
		formatTime(g.StartDate),
		formatTime(g.FinishDate),
		formatTime(g.GoalDate),
	)
	if err != nil {
		return "", fmt.Errorf("insert goal: %w", err)
	}
	return g.ID, nil
}

// GetGoals lists the employee's goals, newest anchor first.
func (r *SqliteGoalRepo) GetGoals(employeeID int) ([]domain.Goal, error) {
	rows, err := r.db.Query(
		`SELECT id, employee_id, goal_type, period, target, start_date, finish_date, goal_date
		   FROM goals WHERE employee_id = ? ORDER BY goal_date DESC`,
		employeeID,
	)
	if err != nil {
		return nil, fmt.Errorf("query goals: %w", err)
	}
	defer rows.Close()

	var goals []domain.Goal
	for rows.Next() {
		var g domain.Goal
		var goalType, period, start, finish, anchor string
		if err := rows.Scan(&g.ID, &g.EmployeeID, &goalType, &period, &g.Target, &start, &finish, &anchor); err != nil {
			return nil, fmt.Errorf("scan goal: %w", err)
		}
		g.GoalType = domain.GoalType(goalType)
		g.Period = domain.PeriodKind(period)
		if g.StartDate, err = parseTime(start); err != nil {
			return nil, err
		}
		if g.FinishDate, err = parseTime(finish); err != nil {
			return nil, err
		}
		if g.GoalDate, err = parseTime(anchor); err != nil {
			return nil, err
		}
		goals = append(goals, g)
	}
	return goals, rows.Err()
}

func (r *SqliteGoalRepo) DeleteGoal(employeeID int, id string) error {
	res, err := r.db.Exec(`DELETE FROM goals WHERE id = ? AND employee_id = ?`, id, employeeID)
	if err != nil {
		return fmt.Errorf("delete goal: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
