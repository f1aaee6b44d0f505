package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/zinin/pagerbot/internal/pager"
)

// Waiter blocks until a click on one of the given control ids
type Waiter interface {
	Wait(ctx context.Context, ids []string, timeout time.Duration) (pager.Click, bool, error)
}

// MessageRef identifies a sent Telegram message
type MessageRef struct {
	ChatID    int64
	MessageID int
}

// Gateway shows paginated messages in one Telegram chat
type Gateway struct {
	sender MessageSender
	waiter Waiter
	chatID int64
}

// NewGateway creates a Gateway for chatID
func NewGateway(sender MessageSender, waiter Waiter, chatID int64) *Gateway {
	return &Gateway{sender: sender, waiter: waiter, chatID: chatID}
}

// Send posts the first render as a new message.
// Telegram has no ephemeral messages, the flag is ignored.
func (g *Gateway) Send(ctx context.Context, r pager.Render, ephemeral bool) (pager.Handle, error) {
	if ephemeral {
		slog.Debug("Ephemeral messages are not supported by Telegram", "chat_id", g.chatID)
	}
	msgID, err := g.sender.SendWithKeyboard(g.chatID, RenderText(r), KeyboardFromRender(r))
	if err != nil {
		return nil, err
	}
	return MessageRef{ChatID: g.chatID, MessageID: msgID}, nil
}

// Update edits the message identified by h
func (g *Gateway) Update(ctx context.Context, h pager.Handle, r pager.Render) error {
	ref, ok := h.(MessageRef)
	if !ok {
		return fmt.Errorf("unexpected message handle %T", h)
	}
	return g.sender.EditMessage(ref.ChatID, ref.MessageID, RenderText(r), KeyboardFromRender(r))
}

// Wait delegates to the interaction hub
func (g *Gateway) Wait(ctx context.Context, ids []string, timeout time.Duration) (pager.Click, bool, error) {
	return g.waiter.Wait(ctx, ids, timeout)
}

// UserID formats a Telegram user id the way clicks report it
func UserID(u *tgbotapi.User) string {
	if u == nil {
		return ""
	}
	return strconv.FormatInt(u.ID, 10)
}

// ClickFromCallback converts a callback query into a click.
// Returns false for callbacks without a message or with noop data.
func ClickFromCallback(cb *tgbotapi.CallbackQuery) (pager.Click, bool) {
	if cb == nil || cb.Message == nil || cb.Message.Chat == nil || cb.Data == NoopCallback {
		return pager.Click{}, false
	}
	id, page := pager.ParseWireID(cb.Data)
	return pager.Click{
		UserID:    UserID(cb.From),
		ControlID: id,
		Page:      page,
		Handle:    MessageRef{ChatID: cb.Message.Chat.ID, MessageID: cb.Message.MessageID},
	}, true
}
