// internal/bot/bot.go
package bot

import (
	"context"
	"fmt"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/zinin/pagerbot/internal/config"
	"github.com/zinin/pagerbot/internal/handler"
	"github.com/zinin/pagerbot/internal/interactivity"
	"github.com/zinin/pagerbot/internal/netproxy"
	"github.com/zinin/pagerbot/internal/telegram"
)

// messageRouter is implemented by Router
type messageRouter interface {
	RouteMessage(ctx context.Context, msg *tgbotapi.Message)
	RouteCallback(cb *tgbotapi.CallbackQuery)
}

// Bot is the main Telegram bot struct with DI
type Bot struct {
	api     *tgbotapi.BotAPI
	auth    *Auth
	router  messageRouter
	sender  telegram.MessageSender
	pages   *handler.PagesHandler
	devMode bool
}

// Option configures the Bot.
type Option func(*Bot)

// WithDevMode enables development mode: API debug logging and a [dev] version marker.
func WithDevMode() Option {
	return func(b *Bot) {
		b.devMode = true
	}
}

// New creates a new Bot with full dependency injection.
// API calls go through cfg.ProxyURL when set.
func New(cfg *config.Config, decks handler.DeckSource, version, versionFull, commit, buildDate string, opts ...Option) (*Bot, error) {
	proxyURL, err := netproxy.Parse(cfg.ProxyURL)
	if err != nil {
		return nil, err
	}
	client, err := netproxy.HTTPClient(proxyURL, 0)
	if err != nil {
		return nil, err
	}

	api, err := tgbotapi.NewBotAPIWithClient(cfg.TelegramToken, tgbotapi.APIEndpoint, client)
	if err != nil {
		return nil, fmt.Errorf("connect to telegram: %w", err)
	}

	slog.Info("Authorized", "username", api.Self.UserName, "proxy", proxyURL != nil)

	// Create sender
	sender := telegram.NewSender(api)

	// Create bot with defaults
	b := &Bot{
		api:    api,
		auth:   NewAuth(cfg.AllowedUsers),
		sender: sender,
	}

	// Apply options
	for _, opt := range opts {
		opt(b)
	}
	api.Debug = b.devMode

	if b.auth.Open() {
		slog.Warn("allowed_users is empty, bot is open to everyone")
	}

	hub := interactivity.NewHub()

	// Create handler dependencies
	deps := &handler.Deps{
		Sender:      sender,
		Waiter:      hub,
		Decks:       decks,
		Defaults:    cfg.PagerOptions(),
		Version:     version,
		VersionFull: versionFull,
		Commit:      commit,
		BuildDate:   buildDate,
		DevMode:     b.devMode,
	}

	// Create handlers
	b.pages = handler.NewPagesHandler(deps)
	miscHandler := handler.NewMiscHandler(deps)

	// Create router
	b.router = NewRouter(b.pages, miscHandler, hub)

	return b, nil
}

// RegisterCommands registers bot commands with Telegram
func (b *Bot) RegisterCommands() error {
	commands := []tgbotapi.BotCommand{
		{Command: "pages", Description: "Show a deck page by page"},
		{Command: "decks", Description: "List decks"},
		{Command: "version", Description: "Bot version"},
		{Command: "help", Description: "Help"},
	}

	cfg := tgbotapi.NewSetMyCommands(commands...)
	_, err := b.api.Request(cfg)
	if err != nil {
		return err
	}

	slog.Info("Registered bot commands", "count", len(commands))
	return nil
}

// Run starts the bot and processes updates until context is cancelled.
// Running pagination sessions are frozen before Run returns.
func (b *Bot) Run(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := b.api.GetUpdatesChan(u)

	slog.Info("Bot started, waiting for messages")

	defer b.pages.Wait()

	for {
		select {
		case <-ctx.Done():
			slog.Info("Shutting down bot")
			b.api.StopReceivingUpdates()
			return
		case update, ok := <-updates:
			if !ok {
				slog.Warn("Updates channel closed, stopping bot")
				return
			}
			b.handleUpdate(ctx, update)
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if msg := update.Message; msg != nil {
		// Skip messages without sender (channel posts, service messages)
		if msg.From == nil {
			return
		}
		username := msg.From.UserName
		if !b.auth.IsAuthorized(username) {
			slog.Warn("Unauthorized access attempt", "username", username)
			b.sender.SendPlain(msg.Chat.ID, "Access denied")
			return
		}
		if msg.IsCommand() {
			slog.Info("Command received", "username", username, "command", msg.Text)
		}
		b.router.RouteMessage(ctx, msg)
	}
	if cb := update.CallbackQuery; cb != nil {
		// Skip callbacks without sender (should not happen, but be defensive)
		if cb.From == nil {
			return
		}
		// Acknowledge callback to prevent UI spinner hanging
		if err := b.sender.AckCallback(cb.ID); err != nil {
			slog.Debug("Failed to acknowledge callback", "error", err)
		}
		username := cb.From.UserName
		if !b.auth.IsAuthorized(username) {
			slog.Warn("Unauthorized callback", "username", username)
			return
		}
		slog.Debug("Callback received", "username", username, "data", cb.Data)
		b.router.RouteCallback(cb)
	}
}
