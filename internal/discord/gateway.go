package discord

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/zinin/pagerbot/internal/pager"
)

// InteractionAPI is the subset of *discordgo.Session used for responses
type InteractionAPI interface {
	InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse, options ...discordgo.RequestOption) error
	InteractionResponseEdit(interaction *discordgo.Interaction, newresp *discordgo.WebhookEdit, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// Waiter blocks until a click on one of the given control ids
type Waiter interface {
	Wait(ctx context.Context, ids []string, timeout time.Duration) (pager.Click, bool, error)
}

// interactionHandle is the message handle: an interaction that either
// still needs a response or whose response can be edited.
type interactionHandle struct {
	interaction *discordgo.Interaction
	responded   bool
}

// Gateway answers one slash command interaction with a paginated message
type Gateway struct {
	api         InteractionAPI
	waiter      Waiter
	interaction *discordgo.Interaction
}

// NewGateway creates a Gateway responding to interaction
func NewGateway(api InteractionAPI, waiter Waiter, interaction *discordgo.Interaction) *Gateway {
	return &Gateway{api: api, waiter: waiter, interaction: interaction}
}

// Send responds to the command interaction with the first render
func (g *Gateway) Send(ctx context.Context, r pager.Render, ephemeral bool) (pager.Handle, error) {
	err := g.api.InteractionRespond(g.interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: responseData(r, ephemeral),
	}, discordgo.WithContext(ctx))
	if err != nil {
		return nil, err
	}
	return &interactionHandle{interaction: g.interaction, responded: true}, nil
}

// Update answers a pending component interaction with the new render,
// or edits the response of an already answered one.
func (g *Gateway) Update(ctx context.Context, h pager.Handle, r pager.Render) error {
	ih, ok := h.(*interactionHandle)
	if !ok {
		return fmt.Errorf("unexpected message handle %T", h)
	}

	if !ih.responded {
		err := g.api.InteractionRespond(ih.interaction, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseUpdateMessage,
			Data: responseData(r, false),
		}, discordgo.WithContext(ctx))
		if err != nil {
			return err
		}
		ih.responded = true
		return nil
	}

	text := content(r)
	embeds := Embeds(r.Embed)
	components := ComponentsFromRender(r)
	_, err := g.api.InteractionResponseEdit(ih.interaction, &discordgo.WebhookEdit{
		Content:    &text,
		Embeds:     &embeds,
		Components: &components,
	}, discordgo.WithContext(ctx))
	return err
}

// Wait delegates to the interaction hub
func (g *Gateway) Wait(ctx context.Context, ids []string, timeout time.Duration) (pager.Click, bool, error) {
	return g.waiter.Wait(ctx, ids, timeout)
}

// Dismiss acknowledges an ignored click without changing the message,
// so the client does not report a failed interaction.
func (g *Gateway) Dismiss(ctx context.Context, c pager.Click) error {
	ih, ok := c.Handle.(*interactionHandle)
	if !ok || ih.responded {
		return nil
	}
	if err := deferUpdate(ctx, g.api, ih.interaction); err != nil {
		return err
	}
	ih.responded = true
	return nil
}

func deferUpdate(ctx context.Context, api InteractionAPI, i *discordgo.Interaction) error {
	return api.InteractionRespond(i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredMessageUpdate,
	}, discordgo.WithContext(ctx))
}

// UserID returns the id of the user behind an interaction.
// Guild interactions carry the member, direct messages the user.
func UserID(i *discordgo.Interaction) string {
	if i == nil {
		return ""
	}
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID
	}
	if i.User != nil {
		return i.User.ID
	}
	return ""
}

// ClickFromInteraction converts a message component interaction into a click
func ClickFromInteraction(i *discordgo.Interaction) (pager.Click, bool) {
	if i == nil || i.Type != discordgo.InteractionMessageComponent {
		return pager.Click{}, false
	}
	id, page := pager.ParseWireID(i.MessageComponentData().CustomID)
	return pager.Click{
		UserID:    UserID(i),
		ControlID: id,
		Page:      page,
		Handle:    &interactionHandle{interaction: i},
	}, true
}
