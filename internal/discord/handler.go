package discord

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/bwmarrin/discordgo"

	"github.com/zinin/pagerbot/internal/deck"
	"github.com/zinin/pagerbot/internal/pager"
)

const (
	// CommandName is the slash command that opens a deck
	CommandName = "pages"
	deckOption  = "deck"
	maxChoices  = 25
)

// DeckSource resolves decks by name
type DeckSource interface {
	Deck(name string) (deck.Deck, error)
	Names() []string
}

// Dispatcher routes clicks to waiting sessions
type Dispatcher interface {
	Waiter
	Dispatch(c pager.Click) bool
}

// Handler routes Discord interactions: slash commands start paginated
// sessions, component clicks are dispatched to them.
type Handler struct {
	hub      Dispatcher
	decks    DeckSource
	defaults pager.Options
	wg       sync.WaitGroup
}

// NewHandler creates a Handler. defaults is copied into every session,
// OwnerID and AdditionalControls are set per invocation.
func NewHandler(hub Dispatcher, decks DeckSource, defaults pager.Options) *Handler {
	return &Handler{hub: hub, decks: decks, defaults: defaults}
}

// Command returns the slash command definition with deck names as choices
func (h *Handler) Command() *discordgo.ApplicationCommand {
	var choices []*discordgo.ApplicationCommandOptionChoice
	for _, name := range h.decks.Names() {
		if len(choices) == maxChoices {
			break
		}
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{Name: name, Value: name})
	}
	return &discordgo.ApplicationCommand{
		Name:        CommandName,
		Description: "Show a paginated deck",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        deckOption,
				Description: "Deck to show",
				Required:    false,
				Choices:     choices,
			},
		},
	}
}

// HandleInteraction processes one interaction. Paginated sessions run in
// their own goroutines bound to ctx.
func (h *Handler) HandleInteraction(ctx context.Context, api InteractionAPI, i *discordgo.Interaction) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		if i.ApplicationCommandData().Name == CommandName {
			h.startPagination(ctx, api, i)
		}
	case discordgo.InteractionMessageComponent:
		click, ok := ClickFromInteraction(i)
		if !ok || h.hub.Dispatch(click) {
			return
		}
		// Nobody waits for this control: expired session or a page control
		if err := deferUpdate(ctx, api, i); err != nil {
			slog.Warn("Failed to acknowledge component", "custom_id", click.ControlID, "error", err)
		}
	}
}

// Wait blocks until all sessions started by the handler have finished
func (h *Handler) Wait() {
	h.wg.Wait()
}

func (h *Handler) startPagination(ctx context.Context, api InteractionAPI, i *discordgo.Interaction) {
	name := ""
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Name == deckOption {
			name = opt.StringValue()
		}
	}

	d, err := h.decks.Deck(name)
	if err != nil {
		slog.Info("Deck lookup failed", "deck", name, "error", err)
		respondError(ctx, api, i, "Unknown deck: "+name)
		return
	}

	opts := h.defaults
	opts.OwnerID = UserID(i)
	opts.AdditionalControls = d.AdditionalControls
	gw := NewGateway(api, h.hub, i)

	h.wg.Add(1)
	go func() {
		defer h.wg.Done()
		slog.Info("Pagination started", "deck", d.Name, "user", opts.OwnerID, "guild", i.GuildID)
		if err := pager.Paginate(ctx, gw, d.Pages, opts); err != nil && !errors.Is(err, context.Canceled) {
			slog.Error("Pagination failed", "deck", d.Name, "error", err)
		}
	}()
}

func respondError(ctx context.Context, api InteractionAPI, i *discordgo.Interaction, msg string) {
	err := api.InteractionRespond(i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: msg,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	}, discordgo.WithContext(ctx))
	if err != nil {
		slog.Warn("Failed to send error response", "error", err)
	}
}
