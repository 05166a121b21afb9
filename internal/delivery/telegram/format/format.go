// Package format renders engine results as chat messages.
package format

import (
	"fmt"
	"strings"

	"paypulse/internal/app/service"
	"paypulse/internal/domain"
	"paypulse/internal/earnings"
)

func Pounds(v float64) string {
	if v < 0 {
		return "-£" + earnings.Money(-v)
	}
	return "£" + earnings.Money(v)
}

func Shift(s domain.Shift) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s-%s, %sh at %s = %s",
		s.Date.Format("Mon 2 Jan"),
		s.StartTime.Format("15:04"), s.FinishTime.Format("15:04"),
		earnings.Money(s.Hours), Pounds(s.Rate), Pounds(s.Pay))
	if s.Company != "" {
		b.WriteString(", " + s.Company)
	}
	if s.Location != "" {
		b.WriteString(" @ " + s.Location)
	}
	if s.Status != domain.StatusPending {
		b.WriteString(" [" + string(s.Status) + "]")
	}
	return b.String()
}

func Payslip(p earnings.Payslip) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Payslip %s\n", p.Period.Label)
	writeSummary(&b, p.Summary)
	if !p.Reconciled {
		fmt.Fprintf(&b, "\nStored pay is off by %s, figures use hours x rate.", Pounds(p.Drift))
	}
	return strings.TrimRight(b.String(), "\n")
}

func Report(r earnings.Report) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Report %s (%d days)\n", r.Period.Label, r.Days)
	writeSummary(&b, r.Summary)
	if r.Metrics.EarningCount() > 0 {
		fmt.Fprintf(&b, "Per shift: %sh, %s (best %s, lowest %s)\n",
			earnings.Money(r.AverageHoursPerShift), Pounds(r.AveragePayPerShift),
			Pounds(r.HighestShiftPay), Pounds(r.LowestShiftPay))
	}
	if r.ExpenseIncomeRatio > 0 {
		fmt.Fprintf(&b, "Claimable expenses are %s%% of gross\n", earnings.Money(r.ExpenseIncomeRatio))
	}
	return strings.TrimRight(b.String(), "\n")
}

func writeSummary(b *strings.Builder, s earnings.Summary) {
	m := s.Metrics
	fmt.Fprintf(b, "Shifts: %d", m.ShiftCount)
	if m.CancelledCount > 0 {
		fmt.Fprintf(b, " (%d cancelled)", m.CancelledCount)
	}
	fmt.Fprintf(b, "\nHours: %s\n", earnings.Money(m.TotalHours))
	fmt.Fprintf(b, "Gross: %s\nTax: %s\nNet: %s\n", Pounds(s.Pay.Gross), Pounds(s.Pay.Tax), Pounds(s.Pay.Net))
	if s.Expenses.Count > 0 {
		fmt.Fprintf(b, "Expenses: %s (claimable %s)\n", Pounds(s.Expenses.Total), Pounds(s.Expenses.EligibleTotal))
	}
	if len(s.Locations) > 0 {
		fmt.Fprintf(b, "Top location: %s (%d)\n", s.Locations[0].Value, s.Locations[0].Count)
	}
	if len(s.Companies) > 0 {
		fmt.Fprintf(b, "Top company: %s (%d)\n", s.Companies[0].Value, s.Companies[0].Count)
	}
}

func Overview(o earnings.MonthOverview) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %d%% through, %d days left\n", o.Period.Label, o.ProgressPercent, o.DaysRemaining)
	fmt.Fprintf(&b, "Earned: %s over %d shifts\n", Pounds(o.Completed.TotalPay), o.Completed.ShiftCount)
	fmt.Fprintf(&b, "Upcoming: %s over %d shifts\n", Pounds(o.Upcoming.TotalPay), o.Upcoming.ShiftCount)
	fmt.Fprintf(&b, "Projected: %s, %sh", Pounds(o.Projected.TotalPay), earnings.Money(o.Projected.TotalHours))
	return b.String()
}

func Comparison(c earnings.Comparison) string {
	return fmt.Sprintf("%s vs %s\nEarnings: %s\nHours: %s\nShifts: %s",
		c.Current.Label, c.Previous.Label,
		change(c.Earnings, Pounds), change(c.Hours, earnings.Money), change(c.Shifts, count))
}

func change(c earnings.Change, render func(float64) string) string {
	if c.Previous == 0 {
		return fmt.Sprintf("%s (no previous data)", render(c.Current))
	}
	sign := "+"
	if !c.IsPositive {
		sign = ""
	}
	return fmt.Sprintf("%s (%s%s%%)", render(c.Current), sign, earnings.Money(c.Percentage))
}

func count(v float64) string {
	return fmt.Sprintf("%d", int(v))
}

func Trend(t earnings.Trend) string {
	var b strings.Builder
	for _, m := range t.Months {
		fmt.Fprintf(&b, "%s: %s (%d shifts)\n", m.Period.Label, Pounds(m.Earnings), m.Shifts)
	}
	fmt.Fprintf(&b, "Average: %s, best %s", Pounds(t.Average), t.Best.Period.Label)
	return b.String()
}

func Goals(views []service.GoalView) string {
	if len(views) == 0 {
		return "No goals yet. Set one with /goal earnings month 1500"
	}
	var b strings.Builder
	for _, v := range views {
		p := v.Progress
		target, current := goalValue(p.GoalType, p.Target), goalValue(p.GoalType, p.Current)
		fmt.Fprintf(&b, "%s %s (%s): %s / %s, %d%%", v.Goal.Period, p.GoalType, p.Window.Label, current, target, p.Percentage)
		if p.Completed {
			b.WriteString(" done")
		} else {
			fmt.Fprintf(&b, ", %d days left", v.DaysRemaining)
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func goalValue(t domain.GoalType, v float64) string {
	switch t {
	case domain.GoalEarnings:
		return Pounds(v)
	case domain.GoalShifts:
		return count(v)
	default:
		return earnings.Money(v) + "h"
	}
}

func Year(year int, slips []earnings.Payslip) string {
	var b strings.Builder
	var gross, net float64
	fmt.Fprintf(&b, "%d\n", year)
	for _, p := range slips {
		if p.Metrics.ShiftCount == 0 {
			continue
		}
		fmt.Fprintf(&b, "%s: %s gross, %s net\n", p.Period.Start.Format("Jan"), Pounds(p.Pay.Gross), Pounds(p.Pay.Net))
		gross += p.Pay.Gross
		net += p.Pay.Net
	}
	fmt.Fprintf(&b, "Total: %s gross, %s net", Pounds(earnings.Round2(gross)), Pounds(earnings.Round2(net)))
	return b.String()
}
