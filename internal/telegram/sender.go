package telegram

import (
	"errors"
	"log/slog"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// BotAPI is the interface for Telegram bot API operations
type BotAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// MessageSender defines the interface for sending Telegram messages
type MessageSender interface {
	Send(chatID int64, text string) error
	SendPlain(chatID int64, text string) error
	SendLongPlain(chatID int64, text string) error
	SendWithKeyboard(chatID int64, text string, keyboard tgbotapi.InlineKeyboardMarkup) (int, error)
	EditMessage(chatID int64, msgID int, text string, keyboard tgbotapi.InlineKeyboardMarkup) error
	AckCallback(callbackID string) error
}

// Sender implements MessageSender using Telegram Bot API
type Sender struct {
	api BotAPI
}

// NewSender creates a new Sender
func NewSender(api BotAPI) *Sender {
	return &Sender{api: api}
}

// Send sends a MarkdownV2 formatted message
func (s *Sender) Send(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdownV2
	_, err := s.api.Send(msg)
	if err != nil {
		slog.Error("Failed to send message", "chat_id", chatID, "error", err)
	}
	return err
}

// SendPlain sends a plain text message without formatting
func (s *Sender) SendPlain(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	_, err := s.api.Send(msg)
	if err != nil {
		slog.Error("Failed to send message", "chat_id", chatID, "error", err)
	}
	return err
}

// SendLongPlain sends a long plain-text message, splitting into chunks if needed.
// Uses rune-safe chunking to avoid breaking UTF-8 characters.
func (s *Sender) SendLongPlain(chatID int64, text string) error {
	runes := []rune(text)
	for len(runes) > 0 {
		chunkSize := len(runes)
		if chunkSize > MaxMessageLength {
			chunkSize = MaxMessageLength
		}

		chunk := string(runes[:chunkSize])

		// Prefer breaking at a newline when splitting
		if chunkSize < len(runes) {
			if idx := lastIndexRune(runes[:chunkSize], '\n'); idx > chunkSize/2 {
				chunk = string(runes[:idx+1])
				chunkSize = idx + 1
			}
		}

		if err := s.SendPlain(chatID, chunk); err != nil {
			return err
		}
		runes = runes[chunkSize:]
	}
	return nil
}

func lastIndexRune(runes []rune, r rune) int {
	for i := len(runes) - 1; i >= 0; i-- {
		if runes[i] == r {
			return i
		}
	}
	return -1
}

// SendWithKeyboard sends a MarkdownV2 message with inline keyboard and
// returns the id of the created message
func (s *Sender) SendWithKeyboard(chatID int64, text string, keyboard tgbotapi.InlineKeyboardMarkup) (int, error) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdownV2
	msg.ReplyMarkup = keyboard
	sent, err := s.api.Send(msg)
	if err != nil {
		slog.Error("Failed to send message with keyboard", "chat_id", chatID, "error", err)
		return 0, err
	}
	return sent.MessageID, nil
}

// EditMessage edits an existing message. Editing a message to identical
// content is not an error.
func (s *Sender) EditMessage(chatID int64, msgID int, text string, keyboard tgbotapi.InlineKeyboardMarkup) error {
	edit := tgbotapi.NewEditMessageTextAndMarkup(chatID, msgID, text, keyboard)
	edit.ParseMode = tgbotapi.ModeMarkdownV2
	_, err := s.api.Send(edit)
	if isNotModified(err) {
		slog.Debug("Message not modified", "msg_id", msgID)
		return nil
	}
	if err != nil {
		slog.Error("Failed to edit message", "msg_id", msgID, "error", err)
	}
	return err
}

// AckCallback acknowledges a callback query
func (s *Sender) AckCallback(callbackID string) error {
	_, err := s.api.Request(tgbotapi.NewCallback(callbackID, ""))
	if err != nil {
		slog.Error("Failed to acknowledge callback", "error", err)
	}
	return err
}

func isNotModified(err error) bool {
	if err == nil {
		return false
	}
	var apiErr *tgbotapi.Error
	if errors.As(err, &apiErr) {
		return strings.Contains(apiErr.Message, "message is not modified")
	}
	return strings.Contains(err.Error(), "message is not modified")
}
