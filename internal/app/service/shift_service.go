package service

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"paypulse/internal/domain"
	"paypulse/internal/earnings"
)

// ShiftInput is a shift as the user logs it: a date, clock times and a
// rate. Hours and pay are derived.
type ShiftInput struct {
	Date     time.Time
	Start    time.Time
	Finish   time.Time
	Rate     float64
	Status   domain.Status
	Location string
	Company  string
	Notes    string
	Expenses []domain.Expense
}

type ShiftServiceImpl struct {
	Repo    domain.ShiftRepo
	Builder earnings.Builder
	Async   *AsyncService
	Log     logrus.FieldLogger
	Now     func() time.Time
}

func NewShiftService(repo domain.ShiftRepo, builder earnings.Builder, async *AsyncService, log logrus.FieldLogger) *ShiftServiceImpl {
	return &ShiftServiceImpl{
		Repo:    repo,
		Builder: builder,
		Async:   async,
		Log:     log,
		Now:     time.Now,
	}
}

func (s *ShiftServiceImpl) AddShift(employeeID int, in ShiftInput) (domain.Shift, error) {
	start := atClock(in.Date, in.Start)
	finish := atClock(in.Date, in.Finish)
	if !finish.After(start) {
		finish = finish.AddDate(0, 0, 1)
	}
	hours := earnings.ShiftHours(start, finish)
	status := in.Status
	if status == "" {
		status = domain.StatusPending
	}
	shift := domain.Shift{
		EmployeeID: employeeID,
		Date:       dateOnly(in.Date),
		StartTime:  start,
		FinishTime: finish,
		Hours:      hours,
		Rate:       in.Rate,
		Pay:        earnings.DerivePay(hours, in.Rate),
		Status:     status,
		Location:   in.Location,
		Company:    in.Company,
		Notes:      in.Notes,
		Expenses:   in.Expenses,
	}
	if err := earnings.ValidateShift(shift); err != nil {
		return domain.Shift{}, err
	}
	id, err := s.Repo.AddShift(shift)
	if err != nil {
		return domain.Shift{}, fmt.Errorf("add shift: %w", err)
	}
	shift.ID = id
	s.Log.WithFields(logrus.Fields{
		"employee_id": employeeID,
		"shift_id":    id,
		"hours":       hours,
		"pay":         shift.Pay,
	}).Info("shift added")
	return shift, nil
}

func (s *ShiftServiceImpl) GetShifts(employeeID int, from, to time.Time) ([]domain.Shift, error) {
	return s.loadShifts(employeeID, from, to)
}

// CancelShift cancels the employee's most recent shift.
func (s *ShiftServiceImpl) CancelShift(employeeID int) (domain.Shift, error) {
	latest, err := s.Repo.LatestShift(employeeID)
	if err != nil {
		return domain.Shift{}, err
	}
	if err := s.Repo.UpdateShiftStatus(latest.ID, domain.StatusCancelled); err != nil {
		return domain.Shift{}, err
	}
	latest.Status = domain.StatusCancelled
	s.Log.WithFields(logrus.Fields{"employee_id": employeeID, "shift_id": latest.ID}).Info("shift cancelled")
	return latest, nil
}

// CompleteShifts marks this month's shifts up to today as complete.
func (s *ShiftServiceImpl) CompleteShifts(employeeID int) (int64, error) {
	now := s.Now()
	month, err := earnings.BoundsFor(domain.PeriodMonth, now)
	if err != nil {
		return 0, err
	}
	n, err := s.Repo.MarkShiftsComplete(employeeID, month.Start, now)
	if err != nil {
		return 0, err
	}
	s.Log.WithFields(logrus.Fields{"employee_id": employeeID, "count": n}).Info("shifts completed")
	return n, nil
}

// AddExpense attaches e to the employee's most recent shift.
func (s *ShiftServiceImpl) AddExpense(employeeID int, e domain.Expense) (domain.Shift, error) {
	latest, err := s.Repo.LatestShift(employeeID)
	if err != nil {
		return domain.Shift{}, err
	}
	if err := s.Repo.AddExpense(latest.ID, e); err != nil {
		return domain.Shift{}, err
	}
	latest.Expenses = append(latest.Expenses, e)
	return latest, nil
}

func (s *ShiftServiceImpl) MonthOverview(employeeID int) (earnings.MonthOverview, error) {
	now := s.Now()
	month, err := earnings.BoundsFor(domain.PeriodMonth, now)
	if err != nil {
		return earnings.MonthOverview{}, err
	}
	shifts, err := s.loadShifts(employeeID, month.Start, month.End)
	if err != nil {
		return earnings.MonthOverview{}, err
	}
	return earnings.SummarizeMonth(shifts, now)
}

// Compare is this month against last month.
func (s *ShiftServiceImpl) Compare(employeeID int) (earnings.Comparison, error) {
	now := s.Now()
	month, err := earnings.BoundsFor(domain.PeriodMonth, now)
	if err != nil {
		return earnings.Comparison{}, err
	}
	shifts, err := s.loadShifts(employeeID, month.Previous().Start, month.End)
	if err != nil {
		return earnings.Comparison{}, err
	}
	return earnings.MonthOverMonth(shifts, now)
}

// Trend covers the last n months including the current one.
func (s *ShiftServiceImpl) Trend(employeeID int, n int) (earnings.Trend, error) {
	if n < 1 {
		n = 1
	}
	now := s.Now()
	month, err := earnings.BoundsFor(domain.PeriodMonth, now)
	if err != nil {
		return earnings.Trend{}, err
	}
	shifts, err := s.loadShifts(employeeID, month.Start.AddDate(0, -(n-1), 0), month.End)
	if err != nil {
		return earnings.Trend{}, err
	}
	return earnings.MonthlyEarnings(shifts, now, n)
}

func (s *ShiftServiceImpl) Payslip(employeeID int, month time.Time) (earnings.Payslip, error) {
	p, err := earnings.BoundsFor(domain.PeriodMonth, month)
	if err != nil {
		return earnings.Payslip{}, err
	}
	shifts, err := s.loadShifts(employeeID, p.Start, p.End)
	if err != nil {
		return earnings.Payslip{}, err
	}
	slip, err := s.Builder.Payslip(month, shifts, earnings.ShiftExpenses(shifts))
	if err != nil {
		return earnings.Payslip{}, err
	}
	if !slip.Reconciled {
		s.Log.WithFields(logrus.Fields{
			"employee_id": employeeID,
			"month":       slip.Month,
			"drift":       slip.Drift,
		}).Warn("stored pay disagrees with hours x rate")
	}
	return slip, nil
}

func (s *ShiftServiceImpl) Report(employeeID int, from, to time.Time) (earnings.Report, error) {
	r, err := earnings.Range(from, to)
	if err != nil {
		return earnings.Report{}, err
	}
	shifts, err := s.loadShifts(employeeID, r.Start, r.End)
	if err != nil {
		return earnings.Report{}, err
	}
	return s.Builder.Report(from, to, shifts, earnings.ShiftExpenses(shifts))
}

// YearPayslips builds the twelve monthly payslips of year in parallel on
// the worker pool.
func (s *ShiftServiceImpl) YearPayslips(employeeID int, year int) ([]earnings.Payslip, error) {
	loc := s.Now().Location()
	yearPeriod, err := earnings.BoundsFor(domain.PeriodYear, time.Date(year, time.January, 1, 0, 0, 0, 0, loc))
	if err != nil {
		return nil, err
	}
	shifts, err := s.loadShifts(employeeID, yearPeriod.Start, yearPeriod.End)
	if err != nil {
		return nil, err
	}

	tasks := make([]func() (any, error), 12)
	for i := range tasks {
		month := yearPeriod.Start.AddDate(0, i, 0)
		tasks[i] = func() (any, error) {
			p, err := earnings.BoundsFor(domain.PeriodMonth, month)
			if err != nil {
				return nil, err
			}
			inMonth := earnings.InPeriod(shifts, p)
			return s.Builder.Payslip(month, inMonth, earnings.ShiftExpenses(inMonth))
		}
	}
	values, err := s.Async.All(tasks)
	if err != nil {
		return nil, err
	}
	slips := make([]earnings.Payslip, len(values))
	for i, v := range values {
		slips[i] = v.(earnings.Payslip)
	}
	return slips, nil
}

// loadShifts fetches shifts and drops malformed records, logging each one
// so a single bad row cannot sink the whole rollup.
func (s *ShiftServiceImpl) loadShifts(employeeID int, from, to time.Time) ([]domain.Shift, error) {
	shifts, err := s.Repo.GetShifts(employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("get shifts: %w", err)
	}
	return sanitize(s.Log, employeeID, shifts), nil
}

func sanitize(log logrus.FieldLogger, employeeID int, shifts []domain.Shift) []domain.Shift {
	valid, rejected := earnings.Sanitize(shifts)
	for _, err := range rejected {
		log.WithFields(logrus.Fields{"employee_id": employeeID}).WithError(err).Warn("skipping malformed shift")
	}
	return valid
}

func atClock(date, clock time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), clock.Hour(), clock.Minute(), 0, 0, date.Location())
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
