package service

import (
	"sort"
	"strconv"
	"sync"
	"time"

	"paypulse/internal/domain"
)

type fakeShiftRepo struct {
	mu     sync.Mutex
	shifts []domain.Shift
	seq    int
}

func (r *fakeShiftRepo) AddShift(s domain.Shift) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s.ID == "" {
		r.seq++
		s.ID = "shift-" + strconv.Itoa(r.seq)
	}
	r.shifts = append(r.shifts, s)
	return s.ID, nil
}

func (r *fakeShiftRepo) GetShifts(employeeID int, from, to time.Time) ([]domain.Shift, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fromKey, toKey := from.Format("2006-01-02"), to.Format("2006-01-02")
	var out []domain.Shift
	for _, s := range r.shifts {
		key := s.Date.Format("2006-01-02")
		if s.EmployeeID == employeeID && key >= fromKey && key <= toKey {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeShiftRepo) LatestShift(employeeID int) (domain.Shift, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var mine []domain.Shift
	for _, s := range r.shifts {
		if s.EmployeeID == employeeID {
			mine = append(mine, s)
		}
	}
	if len(mine) == 0 {
		return domain.Shift{}, domain.ErrNotFound
	}
	sort.SliceStable(mine, func(i, j int) bool { return mine[i].Date.After(mine[j].Date) })
	return mine[0], nil
}

func (r *fakeShiftRepo) UpdateShiftStatus(id string, status domain.Status) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.shifts {
		if r.shifts[i].ID == id {
			r.shifts[i].Status = status
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *fakeShiftRepo) MarkShiftsComplete(employeeID int, from, to time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fromKey, toKey := from.Format("2006-01-02"), to.Format("2006-01-02")
	var n int64
	for i, s := range r.shifts {
		key := s.Date.Format("2006-01-02")
		if s.EmployeeID != employeeID || key < fromKey || key > toKey {
			continue
		}
		if s.Status == domain.StatusPending || s.Status == domain.StatusConfirmed {
			r.shifts[i].Status = domain.StatusComplete
			n++
		}
	}
	return n, nil
}

func (r *fakeShiftRepo) AddExpense(shiftID string, e domain.Expense) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.shifts {
		if r.shifts[i].ID == shiftID {
			e.ShiftID = shiftID
			r.shifts[i].Expenses = append(r.shifts[i].Expenses, e)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *fakeShiftRepo) byID(id string) domain.Shift {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.shifts {
		if s.ID == id {
			return s
		}
	}
	return domain.Shift{}
}

type fakeGoalRepo struct {
	goals []domain.Goal
}

func (r *fakeGoalRepo) AddGoal(g domain.Goal) (string, error) {
	if g.ID == "" {
		g.ID = "goal-" + strconv.Itoa(len(r.goals)+1)
	}
	r.goals = append(r.goals, g)
	return g.ID, nil
}

func (r *fakeGoalRepo) GetGoals(employeeID int) ([]domain.Goal, error) {
	var out []domain.Goal
	for _, g := range r.goals {
		if g.EmployeeID == employeeID {
			out = append(out, g)
		}
	}
	return out, nil
}

func (r *fakeGoalRepo) DeleteGoal(employeeID int, id string) error {
	for i, g := range r.goals {
		if g.ID == id && g.EmployeeID == employeeID {
			r.goals = append(r.goals[:i], r.goals[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

type fakeEmployeeRepo struct {
	employees map[int]domain.Employee
	writes    int
}

func (r *fakeEmployeeRepo) GetAllEmployees() ([]domain.Employee, error) {
	var out []domain.Employee
	for _, e := range r.employees {
		out = append(out, e)
	}
	return out, nil
}

func (r *fakeEmployeeRepo) GetEmployeeByID(id int) (domain.Employee, error) {
	e, ok := r.employees[id]
	if !ok {
		return domain.Employee{}, domain.ErrNotFound
	}
	return e, nil
}

func (r *fakeEmployeeRepo) CreateOrUpdateEmployee(e domain.Employee) error {
	if r.employees == nil {
		r.employees = map[int]domain.Employee{}
	}
	r.writes++
	r.employees[e.ID] = e
	return nil
}
