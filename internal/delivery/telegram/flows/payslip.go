package flows

import (
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"

	"paypulse/internal/app/service"
	"paypulse/internal/delivery/telegram/format"
	"paypulse/internal/delivery/telegram/keyboards"
	"paypulse/internal/delivery/telegram/middleware"
	"paypulse/internal/delivery/telegram/router"
)

// PayslipOtherMonth opens the month picker.
const PayslipOtherMonth = "payslip_other_month"

// RegisterPayslip wires the month picker to payslip rendering.
func RegisterPayslip(r *router.CallbackRouter, shifts *service.ShiftServiceImpl, log logrus.FieldLogger) {
	showYear := func(c telebot.Context, year int) error {
		title, markup := keyboards.BuildMonthKeyboard(year)
		return middleware.EditOrSend(c, title, markup)
	}

	r.Register(PayslipOtherMonth, func(c telebot.Context, payload string) error {
		return showYear(c, shifts.Now().Year())
	})

	r.Register(keyboards.MonthPrev, func(c telebot.Context, payload string) error {
		y, err := strconv.Atoi(payload)
		if err != nil {
			return nil
		}
		return showYear(c, y-1)
	})

	r.Register(keyboards.MonthNext, func(c telebot.Context, payload string) error {
		y, err := strconv.Atoi(payload)
		if err != nil {
			return nil
		}
		return showYear(c, y+1)
	})

	r.Register(keyboards.PickMonth, func(c telebot.Context, payload string) error {
		month, err := keyboards.ParseMonth(payload)
		if err != nil {
			return nil
		}
		return SendPayslip(c, shifts, log, month)
	})
}

// SendPayslip renders the payslip for the month containing month.
func SendPayslip(c telebot.Context, shifts *service.ShiftServiceImpl, log logrus.FieldLogger, month time.Time) error {
	empID := int(c.Sender().ID)
	slip, err := shifts.Payslip(empID, month)
	if err != nil {
		log.WithFields(logrus.Fields{"employee_id": empID, "month": month.Format("2006-01")}).WithError(err).Error("payslip failed")
		return middleware.EditOrSend(c, "Could not build the payslip, try again later.", nil)
	}
	markup := &telebot.ReplyMarkup{}
	markup.Inline(markup.Row(markup.Data("Other month", PayslipOtherMonth)))
	return middleware.EditOrSend(c, format.Payslip(slip), markup)
}
