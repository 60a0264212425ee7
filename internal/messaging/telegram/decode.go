package telegram

import (
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"recruit/internal/messaging"
	"recruit/internal/messaging/actions"
	id "recruit/pkg/domain"
)

// Decode converts an update into a messaging event. Updates the bot does not
// act on (edits, channel posts, stickers) report false.
func Decode(update tgbotapi.Update) (messaging.Event, bool) {
	switch {
	case update.CallbackQuery != nil:
		return decodeCallback(update.CallbackQuery)
	case update.Message != nil:
		return decodeMessage(update.Message)
	default:
		return nil, false
	}
}

func decodeMessage(msg *tgbotapi.Message) (messaging.Event, bool) {
	if msg.Chat == nil || msg.From == nil {
		return nil, false
	}
	chat := id.ChatID(msg.Chat.ID)
	from := sender(msg.From)
	if msg.IsCommand() {
		return messaging.CommandEvent{
			ChatID:  chat,
			From:    from,
			Command: strings.ToLower(msg.Command()),
			Args:    strings.TrimSpace(msg.CommandArguments()),
		}, true
	}
	if msg.Text == "" {
		return nil, false
	}
	return messaging.TextEvent{ChatID: chat, From: from, Text: msg.Text}, true
}

func decodeCallback(q *tgbotapi.CallbackQuery) (messaging.Event, bool) {
	if q.From == nil {
		return nil, false
	}
	event := messaging.ActionEvent{
		ActionRef: q.ID,
		From:      sender(q.From),
		RawToken:  q.Data,
	}
	if q.Message != nil {
		event.Message = messaging.MessageRef{MessageID: q.Message.MessageID}
		if q.Message.Chat != nil {
			event.ChatID = id.ChatID(q.Message.Chat.ID)
			event.Message.ChatID = event.ChatID
		}
	}
	if event.ChatID == 0 {
		event.ChatID = id.UserID(q.From.ID).PrivateChat()
	}
	event.Token, event.TokenErr = actions.Parse(q.Data)
	return event, true
}

func sender(u *tgbotapi.User) messaging.Sender {
	return messaging.Sender{
		UserID:      id.UserID(u.ID),
		Handle:      u.UserName,
		DisplayName: strings.TrimSpace(u.FirstName + " " + u.LastName),
	}
}
