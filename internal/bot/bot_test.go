package bot

import (
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/mserban/cabinet-bot/internal/dialog"
)

func TestToChattable_TextWithKeyboard(t *testing.T) {
	msg := dialog.Message{
		Text: "Please select an option:",
		Keyboard: [][]dialog.Button{{
			{Label: "CABINET-1", Token: "pfa1"},
			{Label: "CABINET-2", Token: "pfa2"},
		}},
	}

	chattable := toChattable(42, msg)
	cfg, ok := chattable.(tgbotapi.MessageConfig)
	if !ok {
		t.Fatalf("chattable has type %T, want MessageConfig", chattable)
	}
	if cfg.Text != msg.Text {
		t.Errorf("Text = %q, want %q", cfg.Text, msg.Text)
	}

	markup, ok := cfg.ReplyMarkup.(tgbotapi.InlineKeyboardMarkup)
	if !ok {
		t.Fatalf("ReplyMarkup has type %T, want InlineKeyboardMarkup", cfg.ReplyMarkup)
	}
	if len(markup.InlineKeyboard) != 1 || len(markup.InlineKeyboard[0]) != 2 {
		t.Fatalf("keyboard shape = %v, want one row of two", markup.InlineKeyboard)
	}
	btn := markup.InlineKeyboard[0][0]
	if btn.Text != "CABINET-1" || btn.CallbackData == nil || *btn.CallbackData != "pfa1" {
		t.Errorf("button = %+v, want CABINET-1/pfa1", btn)
	}
}

func TestToChattable_ForceReply(t *testing.T) {
	chattable := toChattable(42, dialog.Message{Text: "name?", ForceReply: true})
	cfg, ok := chattable.(tgbotapi.MessageConfig)
	if !ok {
		t.Fatalf("chattable has type %T, want MessageConfig", chattable)
	}
	fr, ok := cfg.ReplyMarkup.(tgbotapi.ForceReply)
	if !ok || !fr.ForceReply {
		t.Errorf("ReplyMarkup = %+v, want ForceReply", cfg.ReplyMarkup)
	}
}

func TestCallbackChatID(t *testing.T) {
	// Stale callback queries arrive without their originating message.
	if _, ok := callbackChatID(&tgbotapi.CallbackQuery{ID: "1", Data: "pfa1"}); ok {
		t.Error("callbackChatID reported a chat for a message-less callback")
	}
	if _, ok := callbackChatID(&tgbotapi.CallbackQuery{Message: &tgbotapi.Message{}}); ok {
		t.Error("callbackChatID reported a chat for a chat-less message")
	}

	id, ok := callbackChatID(&tgbotapi.CallbackQuery{
		Message: &tgbotapi.Message{Chat: &tgbotapi.Chat{ID: 42}},
	})
	if !ok || id != 42 {
		t.Errorf("callbackChatID = (%d, %v), want (42, true)", id, ok)
	}
}

func TestToChattable_Photo(t *testing.T) {
	png := []byte{0x89, 'P', 'N', 'G'}
	chattable := toChattable(42, dialog.Message{Text: "caption", PhotoPNG: png})
	cfg, ok := chattable.(tgbotapi.PhotoConfig)
	if !ok {
		t.Fatalf("chattable has type %T, want PhotoConfig", chattable)
	}
	if cfg.Caption != "caption" {
		t.Errorf("Caption = %q, want caption", cfg.Caption)
	}
}
