// Package bot binds the conversation state machine to the Telegram
// transport.
package bot

import (
	"context"
	"encoding/json"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/mserban/cabinet-bot/internal/dialog"
	applog "github.com/mserban/cabinet-bot/internal/log"
)

type Bot struct {
	api     *tgbotapi.BotAPI
	machine *dialog.Machine
	log     *applog.Logger
}

func NewBot(token string, machine *dialog.Machine, logger *applog.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram api: %w", err)
	}

	return &Bot{
		api:     api,
		machine: machine,
		log:     logger.WithComponent(applog.ComponentBot),
	}, nil
}

// Start runs the long-polling loop until the context is canceled.
// Handler errors are logged and do not stop the loop.
func (b *Bot) Start(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)
	b.log.Info("bot started", "username", b.api.Self.UserName)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if err := b.handleUpdate(ctx, update); err != nil {
				b.log.Error("update handling failed", applog.FieldError, err)
			}
		}
	}
}

// HandleWebhook processes one webhook-delivered update body.
func (b *Bot) HandleWebhook(ctx context.Context, body []byte) error {
	var update tgbotapi.Update
	if err := json.Unmarshal(body, &update); err != nil {
		return fmt.Errorf("decode update: %w", err)
	}
	return b.handleUpdate(ctx, update)
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) error {
	switch {
	case update.CallbackQuery != nil:
		return b.handleCallback(ctx, update.CallbackQuery)
	case update.Message != nil && update.Message.IsCommand():
		return b.handleCommand(update.Message)
	case update.Message != nil:
		chatID := update.Message.Chat.ID
		return b.send(chatID, b.machine.HandleText(ctx, chatID, update.Message.Text))
	}
	return nil
}

func (b *Bot) handleCommand(message *tgbotapi.Message) error {
	switch message.Command() {
	case "start":
		return b.send(message.Chat.ID, b.machine.HandleStart(message.Chat.ID))
	}
	return nil
}

func (b *Bot) handleCallback(ctx context.Context, callback *tgbotapi.CallbackQuery) error {
	// Answer the callback to clear the client's loading indicator.
	if _, err := b.api.Request(tgbotapi.NewCallback(callback.ID, "")); err != nil {
		b.log.Warn("callback answer failed", applog.FieldError, err)
	}

	// Telegram drops the originating message from stale callback
	// queries; without it there is no chat to reply to.
	chatID, ok := callbackChatID(callback)
	if !ok {
		b.log.Warn("callback without originating message", "data", callback.Data)
		return nil
	}

	return b.send(chatID, b.machine.HandleCallback(ctx, chatID, callback.Data))
}

func callbackChatID(callback *tgbotapi.CallbackQuery) (int64, bool) {
	if callback.Message == nil || callback.Message.Chat == nil {
		return 0, false
	}
	return callback.Message.Chat.ID, true
}

// send delivers the machine's messages in order, preserving the
// one-event one-reply sequencing.
func (b *Bot) send(chatID int64, messages []dialog.Message) error {
	for _, msg := range messages {
		if _, err := b.api.Send(toChattable(chatID, msg)); err != nil {
			return fmt.Errorf("send message: %w", err)
		}
	}
	return nil
}

func toChattable(chatID int64, msg dialog.Message) tgbotapi.Chattable {
	if msg.PhotoPNG != nil {
		photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileBytes{
			Name:  "report.png",
			Bytes: msg.PhotoPNG,
		})
		photo.Caption = msg.Text
		return photo
	}

	out := tgbotapi.NewMessage(chatID, msg.Text)
	switch {
	case len(msg.Keyboard) > 0:
		out.ReplyMarkup = inlineKeyboard(msg.Keyboard)
	case msg.ForceReply:
		out.ReplyMarkup = tgbotapi.ForceReply{ForceReply: true}
	}
	return out
}

func inlineKeyboard(rows [][]dialog.Button) tgbotapi.InlineKeyboardMarkup {
	var markup [][]tgbotapi.InlineKeyboardButton
	for _, row := range rows {
		var buttons []tgbotapi.InlineKeyboardButton
		for _, b := range row {
			buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonData(b.Label, b.Token))
		}
		markup = append(markup, buttons)
	}
	return tgbotapi.NewInlineKeyboardMarkup(markup...)
}
