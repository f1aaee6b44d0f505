package discord

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"

	"github.com/zinin/pagerbot/internal/config"
	"github.com/zinin/pagerbot/internal/interactivity"
	"github.com/zinin/pagerbot/internal/netproxy"
)

// Bot runs the Discord gateway connection and the /pages command
type Bot struct {
	session *discordgo.Session
	handler *Handler
	guildID string
}

// New creates a Bot. The gateway connection and REST calls go through
// cfg.ProxyURL when set.
func New(cfg *config.Config, decks DeckSource) (*Bot, error) {
	session, err := discordgo.New("Bot " + cfg.DiscordToken)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	proxyURL, err := netproxy.Parse(cfg.ProxyURL)
	if err != nil {
		return nil, err
	}
	if session.Client, err = netproxy.HTTPClient(proxyURL, 0); err != nil {
		return nil, err
	}
	if session.Dialer, err = netproxy.WebsocketDialer(proxyURL); err != nil {
		return nil, err
	}
	session.Identify.Intents = discordgo.IntentsGuilds

	return &Bot{
		session: session,
		handler: NewHandler(interactivity.NewHub(), decks, cfg.PagerOptions()),
		guildID: cfg.DiscordGuildID,
	}, nil
}

// Run connects, registers the slash command and serves interactions until
// ctx is cancelled. Running sessions are frozen before the connection closes.
func (b *Bot) Run(ctx context.Context) error {
	b.session.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		slog.Info("Connected to Discord", "username", r.User.Username, "guilds", len(r.Guilds))
	})
	b.session.AddHandler(func(s *discordgo.Session, ic *discordgo.InteractionCreate) {
		b.handler.HandleInteraction(ctx, s, ic.Interaction)
	})

	if err := b.session.Open(); err != nil {
		return fmt.Errorf("open gateway: %w", err)
	}
	defer b.session.Close()

	cmd, err := b.session.ApplicationCommandCreate(b.session.State.User.ID, b.guildID, b.handler.Command(), discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("register /%s: %w", CommandName, err)
	}
	slog.Info("Registered slash command", "name", cmd.Name, "guild", b.guildID)

	<-ctx.Done()
	slog.Info("Shutting down Discord bot")
	b.handler.Wait()
	return nil
}
