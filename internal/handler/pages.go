// internal/handler/pages.go
package handler

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/zinin/pagerbot/internal/deck"
	"github.com/zinin/pagerbot/internal/pager"
	"github.com/zinin/pagerbot/internal/telegram"
)

// PagesHandler handles /pages command. Each invocation runs its own
// pagination session until it times out or ctx is cancelled.
type PagesHandler struct {
	deps *Deps
	wg   sync.WaitGroup
}

// NewPagesHandler creates a new PagesHandler
func NewPagesHandler(deps *Deps) *PagesHandler {
	return &PagesHandler{deps: deps}
}

// HandlePages handles /pages [deck]
func (h *PagesHandler) HandlePages(ctx context.Context, msg *tgbotapi.Message) {
	name := strings.TrimSpace(msg.CommandArguments())

	d, err := h.deps.Decks.Deck(name)
	if errors.Is(err, deck.ErrDeckNotFound) {
		h.deps.Sender.Send(msg.Chat.ID, telegram.EscapeMarkdownV2("Unknown deck: "+name+". Use /decks to list decks."))
		return
	}
	if err != nil {
		h.deps.Sender.Send(msg.Chat.ID, telegram.EscapeMarkdownV2("Error: "+err.Error()))
		return
	}

	opts := h.deps.Defaults
	opts.OwnerID = telegram.UserID(msg.From)
	opts.AdditionalControls = d.AdditionalControls
	gw := telegram.NewGateway(h.deps.Sender, h.deps.Waiter, msg.Chat.ID)

	h.wg.Add(1)
	go func() {
		defer h.wg.Done()
		slog.Info("Pagination started", "deck", d.Name, "chat_id", msg.Chat.ID, "owner", opts.OwnerID)
		err := pager.Paginate(ctx, gw, d.Pages, opts)
		if err != nil && !errors.Is(err, context.Canceled) {
			slog.Error("Pagination failed", "deck", d.Name, "chat_id", msg.Chat.ID, "error", err)
			return
		}
		slog.Debug("Pagination finished", "deck", d.Name, "chat_id", msg.Chat.ID)
	}()
}

// Wait blocks until all running sessions have finished
func (h *PagesHandler) Wait() {
	h.wg.Wait()
}
