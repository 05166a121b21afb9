package keyboards

import (
	"fmt"
	"strconv"
	"time"

	"gopkg.in/telebot.v3"
)

const (
	PickMonth = "pick_month"
	MonthPrev = "month_prev"
	MonthNext = "month_next"
)

// BuildMonthKeyboard is a 4x3 grid of the months of year with buttons to
// step a year back or forward.
func BuildMonthKeyboard(year int) (string, *telebot.ReplyMarkup) {
	markup := &telebot.ReplyMarkup{}
	rows := []telebot.Row{}
	for i := 0; i < 12; i += 3 {
		row := telebot.Row{}
		for m := i + 1; m <= i+3; m++ {
			name := time.Month(m).String()[:3]
			row = append(row, markup.Data(name, PickMonth, fmt.Sprintf("%04d-%02d", year, m)))
		}
		rows = append(rows, row)
	}

	prev := markup.Data("< "+strconv.Itoa(year-1), MonthPrev, strconv.Itoa(year))
	next := markup.Data(strconv.Itoa(year+1)+" >", MonthNext, strconv.Itoa(year))
	rows = append(rows, markup.Row(prev, next))

	markup.Inline(rows...)
	return fmt.Sprintf("Pick a month: %d", year), markup
}

// ParseMonth reads a "yyyy-mm" payload from the month grid.
func ParseMonth(payload string) (time.Time, error) {
	return time.Parse("2006-01", payload)
}
