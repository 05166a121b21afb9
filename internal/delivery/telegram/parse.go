package telegram

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"paypulse/internal/app/service"
	"paypulse/internal/domain"
)

var errUsage = errors.New("usage")

// ShiftLine is a shift typed as "HH:MM-HH:MM RATE [company] [@ location]".
type ShiftLine struct {
	Start    time.Time
	Finish   time.Time
	Rate     float64
	Company  string
	Location string
}

func ParseShiftLine(text string) (ShiftLine, error) {
	fields := strings.Fields(text)
	if len(fields) < 2 {
		return ShiftLine{}, fmt.Errorf("%w: HH:MM-HH:MM RATE [company] [@ location]", errUsage)
	}
	times := strings.SplitN(fields[0], "-", 2)
	if len(times) != 2 {
		return ShiftLine{}, fmt.Errorf("times %q must look like 09:00-17:00", fields[0])
	}
	start, err := time.Parse("15:04", times[0])
	if err != nil {
		return ShiftLine{}, fmt.Errorf("start time %q: %w", times[0], err)
	}
	finish, err := time.Parse("15:04", times[1])
	if err != nil {
		return ShiftLine{}, fmt.Errorf("finish time %q: %w", times[1], err)
	}
	rate, err := parseAmount(fields[1])
	if err != nil {
		return ShiftLine{}, fmt.Errorf("rate: %w", err)
	}

	line := ShiftLine{Start: start, Finish: finish, Rate: rate}
	rest := strings.Join(fields[2:], " ")
	company, location, _ := strings.Cut(rest, "@")
	line.Company = strings.TrimSpace(company)
	line.Location = strings.TrimSpace(location)
	return line, nil
}

func (l ShiftLine) Input(date time.Time) service.ShiftInput {
	return service.ShiftInput{
		Date:     date,
		Start:    l.Start,
		Finish:   l.Finish,
		Rate:     l.Rate,
		Company:  l.Company,
		Location: l.Location,
	}
}

// ParseExpense reads "/expense <category> <amount> [claim]" arguments.
func ParseExpense(args []string) (domain.Expense, error) {
	if len(args) < 2 || len(args) > 3 {
		return domain.Expense{}, fmt.Errorf("%w: /expense <category> <amount> [claim]", errUsage)
	}
	amount, err := parseAmount(args[1])
	if err != nil {
		return domain.Expense{}, fmt.Errorf("amount: %w", err)
	}
	e := domain.Expense{Name: strings.ToLower(args[0]), Amount: amount}
	if len(args) == 3 {
		switch strings.ToLower(args[2]) {
		case "claim", "yes":
			e.Expensable = true
		default:
			return domain.Expense{}, fmt.Errorf("%w: last word must be \"claim\"", errUsage)
		}
	}
	return e, nil
}

type GoalArgs struct {
	Type   domain.GoalType
	Period domain.PeriodKind
	Target float64
}

// ParseGoal reads "/goal <earnings|hours|shifts> <month|year> <target>".
// Type and period are checked by the engine when the goal is created.
func ParseGoal(args []string) (GoalArgs, error) {
	if len(args) != 3 {
		return GoalArgs{}, fmt.Errorf("%w: /goal <earnings|hours|shifts> <month|year> <target>", errUsage)
	}
	target, err := parseAmount(args[2])
	if err != nil {
		return GoalArgs{}, fmt.Errorf("target: %w", err)
	}
	return GoalArgs{
		Type:   domain.GoalType(strings.ToLower(args[0])),
		Period: domain.PeriodKind(strings.ToLower(args[1])),
		Target: target,
	}, nil
}

// ParseRange reads "/report YYYY-MM-DD YYYY-MM-DD".
func ParseRange(args []string) (time.Time, time.Time, error) {
	if len(args) != 2 {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: /report YYYY-MM-DD YYYY-MM-DD", errUsage)
	}
	from, err := time.Parse("2006-01-02", args[0])
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("from date: %w", err)
	}
	to, err := time.Parse("2006-01-02", args[1])
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("to date: %w", err)
	}
	return from, to, nil
}

// ParseYear reads the optional "/year [YYYY]" argument.
func ParseYear(args []string, now time.Time) (int, error) {
	if len(args) == 0 {
		return now.Year(), nil
	}
	year, err := strconv.Atoi(args[0])
	if err != nil || year < 1970 || year > 9999 {
		return 0, fmt.Errorf("%w: /year [YYYY]", errUsage)
	}
	return year, nil
}

func parseAmount(s string) (float64, error) {
	s = strings.TrimPrefix(s, "£")
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", s)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%q is not a number", s)
	}
	if v < 0 {
		return 0, fmt.Errorf("%q must not be negative", s)
	}
	return v, nil
}
