package middleware

import (
	"errors"

	"gopkg.in/telebot.v3"
)

// EditOrSend edits the message behind the callback, or sends a new one
// when there is nothing to edit. An unchanged message is not an error.
func EditOrSend(c telebot.Context, text string, markup *telebot.ReplyMarkup) error {
	var opts []interface{}
	if markup != nil {
		opts = append(opts, markup)
	}
	if c.Callback() == nil {
		return c.Send(text, opts...)
	}
	err := c.Edit(text, opts...)
	if err == nil || errors.Is(err, telebot.ErrSameMessageContent) {
		return nil
	}
	return c.Send(text, opts...)
}
