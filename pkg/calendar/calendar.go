package calendar

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"
)

const (
	DayAction  = "cal_day"
	PrevAction = "cal_prev"
	NextAction = "cal_next"
)

// CalendarController shows an inline month calendar and reports the picked
// day to OnDate.
type CalendarController struct {
	Bot    *telebot.Bot
	Log    logrus.FieldLogger
	Now    func() time.Time
	OnDate func(time.Time, telebot.Context) error
}

// ShowCalendar sends or edits the calendar for the current month.
func (cc *CalendarController) ShowCalendar(c telebot.Context) error {
	now := time.Now()
	if cc.Now != nil {
		now = cc.Now()
	}
	return SendCalendar(c, now.Year(), int(now.Month()))
}

// SendCalendar builds and sends the calendar for the given month.
func SendCalendar(c telebot.Context, year, month int) error {
	title, markup := Build(year, month)
	if c.Callback() != nil {
		return c.Edit(title, markup)
	}
	return c.Send(title, markup)
}

// Build lays the month out in rows of seven day buttons with a prev/next row.
func Build(year, month int) (string, *telebot.ReplyMarkup) {
	markup := &telebot.ReplyMarkup{}
	var rows []telebot.Row
	week := telebot.Row{}
	for d := 1; d <= daysInMonth(year, month); d++ {
		btn := markup.Data(strconv.Itoa(d), DayAction, fmt.Sprintf("%d-%d-%d", d, month, year))
		week = append(week, btn)
		if len(week) == 7 {
			rows = append(rows, week)
			week = telebot.Row{}
		}
	}
	if len(week) > 0 {
		rows = append(rows, week)
	}
	prev := markup.Data("<", PrevAction, fmt.Sprintf("%d-%d", month-1, year))
	next := markup.Data(">", NextAction, fmt.Sprintf("%d-%d", month+1, year))
	rows = append(rows, telebot.Row{prev, next})
	markup.Inline(rows...)
	return "Pick a date: " + time.Month(month).String() + " " + strconv.Itoa(year), markup
}

// Handle processes a cal_* callback with the given action and payload.
func (cc *CalendarController) Handle(c telebot.Context, action, payload string) error {
	switch action {
	case DayAction:
		date, err := ParseDay(payload)
		if err != nil {
			cc.logger().WithError(err).Warn("bad calendar day")
			return c.Send("That date did not work, try again.")
		}
		if cc.OnDate == nil {
			return nil
		}
		return cc.OnDate(date, c)
	case PrevAction, NextAction:
		year, month, err := ParseMonth(payload)
		if err != nil {
			cc.logger().WithError(err).Warn("bad calendar month")
			return c.Send("That month did not work, try again.")
		}
		return SendCalendar(c, year, month)
	}
	return nil
}

func (cc *CalendarController) logger() logrus.FieldLogger {
	if cc.Log == nil {
		return logrus.StandardLogger()
	}
	return cc.Log.WithField("module", "calendar")
}

// ParseDay reads a "d-m-yyyy" payload.
func ParseDay(payload string) (time.Time, error) {
	parts := SplitDateData(payload)
	if len(parts) != 3 {
		return time.Time{}, fmt.Errorf("calendar: day payload %q", payload)
	}
	nums, err := atois(parts)
	if err != nil {
		return time.Time{}, fmt.Errorf("calendar: day payload %q: %w", payload, err)
	}
	day, month, year := nums[0], nums[1], nums[2]
	if month < 1 || month > 12 || day < 1 || day > daysInMonth(year, month) {
		return time.Time{}, fmt.Errorf("calendar: no such day %q", payload)
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), nil
}

// ParseMonth reads a "m-yyyy" payload. Month 0 and 13 roll into the
// neighbouring year.
func ParseMonth(payload string) (year, month int, err error) {
	parts := SplitDateData(payload)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("calendar: month payload %q", payload)
	}
	nums, err := atois(parts)
	if err != nil {
		return 0, 0, fmt.Errorf("calendar: month payload %q: %w", payload, err)
	}
	month, year = nums[0], nums[1]
	switch {
	case month < 1:
		month = 12
		year--
	case month > 12:
		month = 1
		year++
	}
	return year, month, nil
}

func SplitDateData(data string) []string {
	return strings.Split(data, "-")
}

func atois(parts []string) ([]int, error) {
	nums := make([]int, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, err
		}
		nums[i] = n
	}
	return nums, nil
}

func daysInMonth(year, month int) int {
	t := time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC)
	return t.Day()
}
