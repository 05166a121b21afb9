package telegram

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"

	"paypulse/internal/app/service"
	"paypulse/internal/delivery/telegram/flows"
	"paypulse/internal/delivery/telegram/format"
	"paypulse/internal/delivery/telegram/middleware"
	"paypulse/internal/delivery/telegram/router"
	"paypulse/internal/domain"
	"paypulse/internal/export"
	"paypulse/pkg/calendar"
)

type Handler struct {
	Bot       *telebot.Bot
	Shifts    *service.ShiftServiceImpl
	Goals     *service.GoalService
	Employees *service.EmployeeService
	Calendar  *calendar.CalendarController
	Router    *router.CallbackRouter
	Log       logrus.FieldLogger

	mu      sync.Mutex
	pending map[int64]time.Time // chat -> date of the shift being entered
}

var (
	btnAddShift = telebot.Btn{Text: "Add shift"}
	btnMonth    = telebot.Btn{Text: "This month"}
	btnPayslip  = telebot.Btn{Text: "Payslip"}
	btnCompare  = telebot.Btn{Text: "Compare"}
	btnGoals    = telebot.Btn{Text: "Goals"}
	btnReport   = telebot.Btn{Text: "Report"}
)

const shiftPrompt = "Send the shift for %s as\nHH:MM-HH:MM RATE [company] [@ location]\ne.g. 09:00-17:00 12.50 Acme @ Leeds"

func (h *Handler) Register() {
	h.Bot.Use(middleware.EnsureEmployee(h.Employees, h.Log))

	h.Bot.Handle("/start", h.handleStart)
	h.Bot.Handle("/employees", h.handleEmployees)
	h.Bot.Handle("/cancel", h.handleCancel)
	h.Bot.Handle("/complete", h.handleComplete)
	h.Bot.Handle("/expense", h.handleExpense)
	h.Bot.Handle("/goal", h.handleGoal)
	h.Bot.Handle("/goals", h.handleGoals)
	h.Bot.Handle("/report", h.handleReport)
	h.Bot.Handle("/year", h.handleYear)
	h.Bot.Handle("/payslip", h.handlePayslip)
	h.Bot.Handle("/compare", h.handleCompare)
	h.Bot.Handle(telebot.OnText, h.handleText)

	h.Router.Register("addshift_today", func(c telebot.Context, _ string) error {
		return h.awaitShift(h.Shifts.Now(), c)
	})
	h.Router.Register("addshift_other", func(c telebot.Context, _ string) error {
		return h.Calendar.ShowCalendar(c)
	})
	h.Router.Register("goal_delete", h.handleGoalDelete)
	h.Router.CalDelegate = h.Calendar.Handle
	h.Calendar.OnDate = h.awaitShift
	flows.RegisterPayslip(h.Router, h.Shifts, h.Log)
	h.Router.Attach(h.Bot)
}

func (h *Handler) handleStart(c telebot.Context) error {
	markup := &telebot.ReplyMarkup{ResizeKeyboard: true}
	markup.Reply(
		markup.Row(markup.Text(btnAddShift.Text), markup.Text(btnMonth.Text)),
		markup.Row(markup.Text(btnPayslip.Text), markup.Text(btnCompare.Text)),
		markup.Row(markup.Text(btnGoals.Text), markup.Text(btnReport.Text)),
	)
	return c.Send("Welcome! Log your shifts and I will keep track of your pay.", markup)
}

func (h *Handler) handleEmployees(c telebot.Context) error {
	employees, err := h.Employees.GetAllEmployees()
	if err != nil {
		return h.fail(c, err, "Could not load employees.")
	}
	if len(employees) == 0 {
		return c.Send("No employees yet.")
	}
	msg := "Employees:\n"
	for _, e := range employees {
		msg += "ID: " + strconv.Itoa(e.ID) + ", " + e.Name + " (" + e.Role + ")\n"
	}
	return c.Send(msg)
}

func (h *Handler) handleText(c telebot.Context) error {
	switch c.Text() {
	case btnAddShift.Text:
		h.takePending(c.Chat().ID)
		markup := &telebot.ReplyMarkup{}
		markup.Inline(markup.Row(
			markup.Data("Today", "addshift_today"),
			markup.Data("Other date", "addshift_other"),
		))
		return c.Send("Was this shift today?", markup)
	case btnMonth.Text:
		h.takePending(c.Chat().ID)
		return h.handleMonth(c)
	case btnPayslip.Text:
		h.takePending(c.Chat().ID)
		return h.handlePayslip(c)
	case btnCompare.Text:
		h.takePending(c.Chat().ID)
		return h.handleCompare(c)
	case btnGoals.Text:
		h.takePending(c.Chat().ID)
		return h.handleGoals(c)
	case btnReport.Text:
		h.takePending(c.Chat().ID)
		now := h.Shifts.Now()
		return h.sendReport(c, time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()), now)
	}

	if date, ok := h.takePending(c.Chat().ID); ok {
		return h.addShift(c, date)
	}
	return c.Send("Use the menu below, or /start to bring it back.")
}

func (h *Handler) awaitShift(date time.Time, c telebot.Context) error {
	h.setPending(c.Chat().ID, date)
	return middleware.EditOrSend(c, fmt.Sprintf(shiftPrompt, date.Format("Mon 2 Jan 2006")), nil)
}

func (h *Handler) addShift(c telebot.Context, date time.Time) error {
	line, err := ParseShiftLine(c.Text())
	if err != nil {
		h.setPending(c.Chat().ID, date)
		return c.Send("Could not read that: " + err.Error())
	}
	shift, err := h.Shifts.AddShift(int(c.Sender().ID), line.Input(date))
	if err != nil {
		return h.fail(c, err, "Could not save the shift.")
	}
	return c.Send("Shift added: " + format.Shift(shift))
}

func (h *Handler) handleCancel(c telebot.Context) error {
	shift, err := h.Shifts.CancelShift(int(c.Sender().ID))
	if err != nil {
		return h.fail(c, err, "Could not cancel the shift.")
	}
	return c.Send("Cancelled: " + format.Shift(shift))
}

func (h *Handler) handleComplete(c telebot.Context) error {
	n, err := h.Shifts.CompleteShifts(int(c.Sender().ID))
	if err != nil {
		return h.fail(c, err, "Could not complete shifts.")
	}
	return c.Send(fmt.Sprintf("Marked %d shifts complete.", n))
}

func (h *Handler) handleExpense(c telebot.Context) error {
	e, err := ParseExpense(c.Args())
	if err != nil {
		return c.Send(err.Error())
	}
	shift, err := h.Shifts.AddExpense(int(c.Sender().ID), e)
	if err != nil {
		return h.fail(c, err, "Could not add the expense.")
	}
	return c.Send(fmt.Sprintf("Added %s %s to %s", e.Name, format.Pounds(e.Amount), shift.Date.Format("Mon 2 Jan")))
}

func (h *Handler) handleGoal(c telebot.Context) error {
	args, err := ParseGoal(c.Args())
	if err != nil {
		return c.Send(err.Error())
	}
	if _, err := h.Goals.AddGoal(int(c.Sender().ID), args.Type, args.Period, args.Target); err != nil {
		return h.fail(c, err, "Could not save the goal.")
	}
	return h.handleGoals(c)
}

func (h *Handler) handleGoals(c telebot.Context) error {
	views, err := h.Goals.Progress(int(c.Sender().ID))
	if err != nil {
		return h.fail(c, err, "Could not load goals.")
	}
	if len(views) == 0 {
		return c.Send(format.Goals(views))
	}
	markup := &telebot.ReplyMarkup{}
	rows := make([]telebot.Row, 0, len(views))
	for _, v := range views {
		label := fmt.Sprintf("Delete %s %s", v.Goal.Period, v.Goal.GoalType)
		rows = append(rows, markup.Row(markup.Data(label, "goal_delete", v.Goal.ID)))
	}
	markup.Inline(rows...)
	return c.Send(format.Goals(views), markup)
}

func (h *Handler) handleGoalDelete(c telebot.Context, id string) error {
	if err := h.Goals.DeleteGoal(int(c.Sender().ID), id); err != nil {
		return h.fail(c, err, "Could not delete the goal.")
	}
	return middleware.EditOrSend(c, "Goal deleted.", nil)
}

func (h *Handler) handleMonth(c telebot.Context) error {
	overview, err := h.Shifts.MonthOverview(int(c.Sender().ID))
	if err != nil {
		return h.fail(c, err, "Could not load this month.")
	}
	return c.Send(format.Overview(overview))
}

func (h *Handler) handlePayslip(c telebot.Context) error {
	return flows.SendPayslip(c, h.Shifts, h.Log, h.Shifts.Now())
}

func (h *Handler) handleCompare(c telebot.Context) error {
	empID := int(c.Sender().ID)
	cmp, err := h.Shifts.Compare(empID)
	if err != nil {
		return h.fail(c, err, "Could not compare months.")
	}
	trend, err := h.Shifts.Trend(empID, 6)
	if err != nil {
		return h.fail(c, err, "Could not compare months.")
	}
	return c.Send(format.Comparison(cmp) + "\n\n" + format.Trend(trend))
}

func (h *Handler) handleReport(c telebot.Context) error {
	from, to, err := ParseRange(c.Args())
	if err != nil {
		return c.Send(err.Error())
	}
	return h.sendReport(c, from, to)
}

func (h *Handler) sendReport(c telebot.Context, from, to time.Time) error {
	r, err := h.Shifts.Report(int(c.Sender().ID), from, to)
	if err != nil {
		return h.fail(c, err, "Could not build the report.")
	}
	if err := c.Send(format.Report(r)); err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := export.WriteReport(&buf, r); err != nil {
		return h.fail(c, err, "Could not build the spreadsheet.")
	}
	return c.Send(&telebot.Document{
		File:     telebot.FromReader(&buf),
		FileName: export.Filename(r),
		MIME:     export.ContentType,
	})
}

func (h *Handler) handleYear(c telebot.Context) error {
	year, err := ParseYear(c.Args(), h.Shifts.Now())
	if err != nil {
		return c.Send(err.Error())
	}
	slips, err := h.Shifts.YearPayslips(int(c.Sender().ID), year)
	if err != nil {
		return h.fail(c, err, "Could not build the year summary.")
	}
	return c.Send(format.Year(year, slips))
}

// fail answers with the error itself when the user can fix it, and with
// fallback otherwise.
func (h *Handler) fail(c telebot.Context, err error, fallback string) error {
	if msg, ok := userMessage(err); ok {
		return c.Send(msg)
	}
	fields := logrus.Fields{}
	if c.Sender() != nil {
		fields["employee_id"] = c.Sender().ID
	}
	h.Log.WithFields(fields).WithError(err).Error(fallback)
	return c.Send(fallback)
}

func userMessage(err error) (string, bool) {
	var (
		shiftErr domain.MalformedShiftError
		goalErr  domain.InvalidGoalError
		dateErr  domain.InvalidDateError
	)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return "Nothing found. Log a shift first.", true
	case errors.As(err, &shiftErr), errors.As(err, &goalErr), errors.As(err, &dateErr):
		return err.Error(), true
	}
	return "", false
}

func (h *Handler) setPending(chatID int64, date time.Time) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.pending == nil {
		h.pending = make(map[int64]time.Time)
	}
	h.pending[chatID] = date
}

func (h *Handler) takePending(chatID int64) (time.Time, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	date, ok := h.pending[chatID]
	if ok {
		delete(h.pending, chatID)
	}
	return date, ok
}
