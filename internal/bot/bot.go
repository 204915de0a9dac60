// Package bot connects the dialogue controller to Telegram.
package bot

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/lxstatmose/edu-practice-parser/internal/dialogue"
)

// Sender is the part of *tgbotapi.BotAPI the bot needs.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// Handler processes one dialogue turn.
type Handler interface {
	Handle(ctx context.Context, userID, chatID int64, ev dialogue.Event) []dialogue.Reply
}

// Bot turns Telegram updates into dialogue events and delivers the replies.
type Bot struct {
	api     Sender
	handler Handler
	queues  *userQueues
	log     *slog.Logger
}

func New(api Sender, handler Handler, logger *slog.Logger) *Bot {
	if logger == nil {
		logger = slog.Default()
	}
	return &Bot{api: api, handler: handler, queues: newUserQueues(), log: logger}
}

// Run consumes updates until ctx is cancelled or the channel closes, then
// waits for queued turns. One user's updates are handled strictly in the
// order they arrive.
func (b *Bot) Run(ctx context.Context, updates <-chan tgbotapi.Update) {
	defer b.queues.wait()

	for {
		select {
		case <-ctx.Done():
			return
		case u, ok := <-updates:
			if !ok {
				return
			}
			t, ev, ok := eventFromUpdate(u)
			if !ok {
				continue
			}
			b.queues.push(t.userID, func() { b.handle(ctx, t, ev) })
		}
	}
}

// turn is the origin of one update.
type turn struct {
	userID     int64
	chatID     int64
	callbackID string
	messageID  int
}

// HandleUpdate processes a single update synchronously. Callers that
// handle updates concurrently must keep each user's updates in order
// themselves; Run does.
func (b *Bot) HandleUpdate(ctx context.Context, u tgbotapi.Update) {
	t, ev, ok := eventFromUpdate(u)
	if !ok {
		return
	}
	b.handle(ctx, t, ev)
}

func (b *Bot) handle(ctx context.Context, t turn, ev dialogue.Event) {
	defer func() {
		if r := recover(); r != nil {
			b.log.Error("panic while handling update", "user_id", t.userID, "panic", r)
		}
	}()

	replies := b.handler.Handle(ctx, t.userID, t.chatID, ev)

	answered := false
	for _, r := range replies {
		if r.Alert && t.callbackID != "" {
			answered = true
		}
		if err := b.deliver(t, r); err != nil {
			b.log.Error("telegram delivery failed", "user_id", t.userID, "err", err)
		}
	}
	if t.callbackID != "" && !answered {
		if _, err := b.api.Request(tgbotapi.NewCallback(t.callbackID, "")); err != nil {
			b.log.Warn("answer callback", "err", err)
		}
	}
}

func eventFromUpdate(u tgbotapi.Update) (turn, dialogue.Event, bool) {
	switch {
	case u.Message != nil && u.Message.From != nil:
		m := u.Message
		t := turn{userID: m.From.ID, chatID: m.Chat.ID}
		if m.IsCommand() {
			return t, dialogue.Command(m.Command()), true
		}
		if m.Text == "" {
			return turn{}, dialogue.Event{}, false
		}
		return t, dialogue.Text(m.Text), true

	case u.CallbackQuery != nil && u.CallbackQuery.From != nil:
		cb := u.CallbackQuery
		t := turn{userID: cb.From.ID, callbackID: cb.ID}
		if cb.Message != nil {
			t.chatID = cb.Message.Chat.ID
			t.messageID = cb.Message.MessageID
		} else {
			t.chatID = cb.From.ID
		}
		return t, dialogue.Choice(cb.Data), true
	}
	return turn{}, dialogue.Event{}, false
}

func (b *Bot) deliver(t turn, r dialogue.Reply) error {
	switch {
	case r.Document != nil:
		return b.sendDocument(t.chatID, r.Document)

	case r.Alert && t.callbackID != "":
		_, err := b.api.Request(tgbotapi.NewCallbackWithAlert(t.callbackID, r.Text))
		return err

	case r.Edit && t.messageID != 0:
		var edit tgbotapi.EditMessageTextConfig
		if len(r.Buttons) > 0 {
			edit = tgbotapi.NewEditMessageTextAndMarkup(t.chatID, t.messageID, r.Text, inlineKeyboard(r.Buttons))
		} else {
			edit = tgbotapi.NewEditMessageText(t.chatID, t.messageID, r.Text)
		}
		_, err := b.api.Request(edit)
		return err
	}

	msg := tgbotapi.NewMessage(t.chatID, r.Text)
	switch {
	case len(r.Buttons) > 0:
		msg.ReplyMarkup = inlineKeyboard(r.Buttons)
	case len(r.Commands) > 0:
		msg.ReplyMarkup = commandKeyboard(r.Commands)
	}
	_, err := b.api.Send(msg)
	return err
}

// sendDocument uploads the file and always runs its cleanup.
func (b *Bot) sendDocument(chatID int64, d *dialogue.Document) error {
	if d.Cleanup != nil {
		defer d.Cleanup()
	}
	f, err := os.Open(d.Path)
	if err != nil {
		return fmt.Errorf("open document: %w", err)
	}
	defer f.Close()

	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileReader{Name: d.Name, Reader: f})
	if _, err := b.api.Send(doc); err != nil {
		return fmt.Errorf("send document: %w", err)
	}
	return nil
}

func inlineKeyboard(rows [][]dialogue.Button) tgbotapi.InlineKeyboardMarkup {
	kb := make([][]tgbotapi.InlineKeyboardButton, 0, len(rows))
	for _, row := range rows {
		buttons := make([]tgbotapi.InlineKeyboardButton, 0, len(row))
		for _, btn := range row {
			buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonData(btn.Text, btn.Data))
		}
		kb = append(kb, buttons)
	}
	return tgbotapi.NewInlineKeyboardMarkup(kb...)
}

func commandKeyboard(commands []string) tgbotapi.ReplyKeyboardMarkup {
	row := make([]tgbotapi.KeyboardButton, 0, len(commands))
	for _, c := range commands {
		row = append(row, tgbotapi.NewKeyboardButton(c))
	}
	kb := tgbotapi.NewReplyKeyboard(row)
	kb.OneTimeKeyboard = true
	return kb
}
