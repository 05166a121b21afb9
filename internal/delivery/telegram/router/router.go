package router

import (
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"
)

type HandlerFunc func(c telebot.Context, payload string) error

// CallbackRouter dispatches inline button callbacks by their unique key.
// Keys starting with "cal_" go to CalDelegate.
type CallbackRouter struct {
	handlers    map[string]HandlerFunc
	CalDelegate func(c telebot.Context, key, payload string) error
	Log         logrus.FieldLogger
}

func New(log logrus.FieldLogger) *CallbackRouter {
	return &CallbackRouter{handlers: make(map[string]HandlerFunc), Log: log}
}

func (r *CallbackRouter) Register(key string, h HandlerFunc) {
	r.handlers[key] = h
}

func (r *CallbackRouter) Attach(bot *telebot.Bot) {
	bot.Handle(telebot.OnCallback, func(c telebot.Context) error {
		_, err := r.Dispatch(c)
		return err
	})
}

// Dispatch runs the handler for the callback and reports whether one was
// found.
func (r *CallbackRouter) Dispatch(c telebot.Context) (bool, error) {
	key, payload := ParseData(c.Data())
	if r.Log != nil {
		r.Log.WithFields(logrus.Fields{"key": key, "payload": payload}).Debug("callback")
	}
	_ = c.Respond()

	if strings.HasPrefix(key, "cal_") {
		if r.CalDelegate != nil {
			return true, r.CalDelegate(c, key, payload)
		}
		return true, nil
	}
	if h, ok := r.handlers[key]; ok {
		return true, h(c, payload)
	}
	return false, nil
}

// ParseData splits raw callback data of the form "\fkey|payload".
func ParseData(raw string) (key, payload string) {
	raw = strings.TrimPrefix(raw, "\f")
	key = raw
	if i := strings.IndexByte(raw, '|'); i >= 0 {
		key = raw[:i]
		payload = raw[i+1:]
	}
	return key, payload
}
