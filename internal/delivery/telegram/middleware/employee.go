package middleware

import (
	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"

	"paypulse/internal/app/service"
	"paypulse/internal/domain"
)

// EnsureEmployee registers the sender on first contact. Registration
// failures are logged and do not block the update.
func EnsureEmployee(employees *service.EmployeeService, log logrus.FieldLogger) telebot.MiddlewareFunc {
	return func(next telebot.HandlerFunc) telebot.HandlerFunc {
		return func(c telebot.Context) error {
			if c.Sender() != nil && c.Chat() != nil {
				if err := employees.EnsureEmployee(EmployeeFromContext(c)); err != nil {
					log.WithField("employee_id", c.Sender().ID).WithError(err).Error("register employee")
				}
			}
			return next(c)
		}
	}
}

func EmployeeFromContext(c telebot.Context) domain.Employee {
	return domain.Employee{
		ID:     int(c.Sender().ID),
		Name:   c.Sender().FirstName,
		ChatID: c.Chat().ID,
		Role:   "employee",
	}
}
