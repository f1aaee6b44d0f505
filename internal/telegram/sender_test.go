package telegram

import (
	"errors"
	"strings"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// MockBotAPI implements the minimal interface needed for testing
type MockBotAPI struct {
	SentMessages []tgbotapi.Chattable
	LastError    error
	NextID       int
}

func (m *MockBotAPI) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	m.SentMessages = append(m.SentMessages, c)
	return tgbotapi.Message{MessageID: m.NextID}, m.LastError
}

func (m *MockBotAPI) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	m.SentMessages = append(m.SentMessages, c)
	return &tgbotapi.APIResponse{Ok: true}, m.LastError
}

func TestSender_Send(t *testing.T) {
	mock := &MockBotAPI{}
	sender := NewSender(mock)

	err := sender.Send(123, "Hello \\*world\\*")
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	if len(mock.SentMessages) != 1 {
		t.Fatalf("expected 1 message, got %d", len(mock.SentMessages))
	}

	msg, ok := mock.SentMessages[0].(tgbotapi.MessageConfig)
	if !ok {
		t.Fatalf("expected MessageConfig, got %T", mock.SentMessages[0])
	}
	if msg.ChatID != 123 {
		t.Errorf("expected chatID 123, got %d", msg.ChatID)
	}
	if msg.ParseMode != "MarkdownV2" {
		t.Errorf("expected MarkdownV2, got %s", msg.ParseMode)
	}
}

func TestSender_SendPlain(t *testing.T) {
	mock := &MockBotAPI{}
	sender := NewSender(mock)

	err := sender.SendPlain(123, "Plain text")
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	msg, ok := mock.SentMessages[0].(tgbotapi.MessageConfig)
	if !ok {
		t.Fatalf("expected MessageConfig, got %T", mock.SentMessages[0])
	}
	if msg.ParseMode != "" {
		t.Errorf("expected empty parse mode for plain, got %s", msg.ParseMode)
	}
}

func TestSender_SendWithKeyboard(t *testing.T) {
	mock := &MockBotAPI{NextID: 77}
	sender := NewSender(mock)

	kb := NewKeyboard().Button("Test", "test").Row().Build()
	id, err := sender.SendWithKeyboard(456, "Pick one", kb)
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if id != 77 {
		t.Errorf("expected message id 77, got %d", id)
	}

	msg, ok := mock.SentMessages[0].(tgbotapi.MessageConfig)
	if !ok {
		t.Fatalf("expected MessageConfig, got %T", mock.SentMessages[0])
	}
	if msg.ReplyMarkup == nil {
		t.Error("expected keyboard, got nil")
	}
}

func TestSender_SendWithKeyboard_Error(t *testing.T) {
	mock := &MockBotAPI{NextID: 77, LastError: errors.New("network down")}
	sender := NewSender(mock)

	id, err := sender.SendWithKeyboard(456, "Pick one", NewKeyboard().Build())
	if err == nil {
		t.Fatal("expected error")
	}
	if id != 0 {
		t.Errorf("expected zero id on error, got %d", id)
	}
}

func TestSender_SendLongPlain(t *testing.T) {
	mock := &MockBotAPI{}
	sender := NewSender(mock)

	longText := strings.Repeat("a", MaxMessageLength+100)

	err := sender.SendLongPlain(123, longText)
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	if len(mock.SentMessages) != 2 {
		t.Errorf("expected 2 messages for long text, got %d", len(mock.SentMessages))
	}
}

func TestSender_SendLongPlain_BreaksAtNewline(t *testing.T) {
	mock := &MockBotAPI{}
	sender := NewSender(mock)

	part1 := strings.Repeat("a", MaxMessageLength-100)
	part2 := strings.Repeat("b", 200)
	longText := part1 + "\n" + part2

	err := sender.SendLongPlain(123, longText)
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	if len(mock.SentMessages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(mock.SentMessages))
	}
	first := mock.SentMessages[0].(tgbotapi.MessageConfig)
	if !strings.HasSuffix(first.Text, "\n") {
		t.Error("first chunk should end at the newline")
	}
}

func TestSender_EditMessage(t *testing.T) {
	mock := &MockBotAPI{}
	sender := NewSender(mock)

	kb := NewKeyboard().Button("OK", "ok").Build()
	err := sender.EditMessage(123, 456, "Updated", kb)
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	if len(mock.SentMessages) != 1 {
		t.Fatalf("expected 1 message, got %d", len(mock.SentMessages))
	}
	edit, ok := mock.SentMessages[0].(tgbotapi.EditMessageTextConfig)
	if !ok {
		t.Fatalf("expected EditMessageTextConfig, got %T", mock.SentMessages[0])
	}
	if edit.MessageID != 456 || edit.ParseMode != "MarkdownV2" {
		t.Errorf("unexpected edit: id=%d mode=%s", edit.MessageID, edit.ParseMode)
	}
}

func TestSender_EditMessage_NotModified(t *testing.T) {
	mock := &MockBotAPI{LastError: &tgbotapi.Error{
		Code:    400,
		Message: "Bad Request: message is not modified: specified new message content and reply markup are exactly the same",
	}}
	sender := NewSender(mock)

	if err := sender.EditMessage(1, 2, "same", NewKeyboard().Build()); err != nil {
		t.Errorf("not modified should not be an error, got %v", err)
	}
}

func TestSender_EditMessage_Error(t *testing.T) {
	mock := &MockBotAPI{LastError: errors.New("Bad Request: message to edit not found")}
	sender := NewSender(mock)

	if err := sender.EditMessage(1, 2, "text", NewKeyboard().Build()); err == nil {
		t.Error("expected error")
	}
}

func TestSender_AckCallback(t *testing.T) {
	mock := &MockBotAPI{}
	sender := NewSender(mock)

	err := sender.AckCallback("callback123")
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	if len(mock.SentMessages) != 1 {
		t.Fatalf("expected 1 request, got %d", len(mock.SentMessages))
	}
}
