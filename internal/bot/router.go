// internal/bot/router.go
package bot

import (
	"context"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/zinin/pagerbot/internal/pager"
	"github.com/zinin/pagerbot/internal/telegram"
)

// PagesRouterHandler defines methods for the pagination command
type PagesRouterHandler interface {
	HandlePages(ctx context.Context, msg *tgbotapi.Message)
}

// MiscRouterHandler defines methods for misc commands
type MiscRouterHandler interface {
	HandleStart(msg *tgbotapi.Message)
	HandleVersion(msg *tgbotapi.Message)
	HandleDecks(msg *tgbotapi.Message)
}

// ClickDispatcher delivers clicks to waiting pagination sessions
type ClickDispatcher interface {
	Dispatch(c pager.Click) bool
}

// Router routes messages and callbacks to appropriate handlers
type Router struct {
	pages PagesRouterHandler
	misc  MiscRouterHandler
	hub   ClickDispatcher
}

// NewRouter creates a new Router with all handlers
func NewRouter(pages PagesRouterHandler, misc MiscRouterHandler, hub ClickDispatcher) *Router {
	return &Router{
		pages: pages,
		misc:  misc,
		hub:   hub,
	}
}

// RouteMessage routes a message to the appropriate handler based on command.
// Plain text is ignored.
func (r *Router) RouteMessage(ctx context.Context, msg *tgbotapi.Message) {
	switch msg.Command() {
	case "start", "help":
		r.misc.HandleStart(msg)
	case "decks":
		r.misc.HandleDecks(msg)
	case "pages":
		r.pages.HandlePages(ctx, msg)
	case "version":
		r.misc.HandleVersion(msg)
	}
}

// RouteCallback hands a callback to the session waiting for its control
func (r *Router) RouteCallback(cb *tgbotapi.CallbackQuery) {
	click, ok := telegram.ClickFromCallback(cb)
	if !ok {
		return
	}
	if !r.hub.Dispatch(click) {
		slog.Debug("No session waiting for callback", "data", cb.Data)
	}
}
