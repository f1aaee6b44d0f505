// Package discord binds paginated messages to Discord interactions
package discord

import (
	"github.com/bwmarrin/discordgo"

	"github.com/zinin/pagerbot/internal/embed"
	"github.com/zinin/pagerbot/internal/pager"
)

// ComponentsFromRender converts all control rows of r into action rows
func ComponentsFromRender(r pager.Render) []discordgo.MessageComponent {
	rows := r.Components()
	out := make([]discordgo.MessageComponent, 0, len(rows))
	for _, row := range rows {
		comps := make([]discordgo.MessageComponent, 0, len(row))
		for _, c := range row {
			comps = append(comps, component(c))
		}
		out = append(out, discordgo.ActionsRow{Components: comps})
	}
	return out
}

func component(c pager.Control) discordgo.MessageComponent {
	if c.IsSelect() {
		opts := make([]discordgo.SelectMenuOption, len(c.Options))
		for i, o := range c.Options {
			opts[i] = discordgo.SelectMenuOption{
				Label:       o.Label,
				Value:       o.Value,
				Description: o.Description,
			}
		}
		return discordgo.SelectMenu{
			MenuType:    discordgo.StringSelectMenu,
			CustomID:    c.ID,
			Placeholder: c.Placeholder,
			Options:     opts,
			Disabled:    c.Disabled,
		}
	}

	if c.URL != "" {
		return discordgo.Button{
			Label:    c.Label,
			Style:    discordgo.LinkButton,
			URL:      c.URL,
			Disabled: c.Disabled,
		}
	}
	return discordgo.Button{
		Label:    c.Label,
		Style:    buttonStyle(c.Style),
		CustomID: pager.WireID(c),
		Disabled: c.Disabled,
	}
}

func buttonStyle(s pager.ButtonStyle) discordgo.ButtonStyle {
	switch s {
	case pager.StylePrimary:
		return discordgo.PrimaryButton
	case pager.StyleSuccess:
		return discordgo.SuccessButton
	case pager.StyleDanger:
		return discordgo.DangerButton
	case pager.StyleLink:
		return discordgo.LinkButton
	default:
		return discordgo.SecondaryButton
	}
}

// Embeds converts a page embed. Accepts *embed.Embed and *discordgo.MessageEmbed.
// The result is never nil so that updates clear a previous embed.
func Embeds(v any) []*discordgo.MessageEmbed {
	switch e := v.(type) {
	case *discordgo.MessageEmbed:
		if e != nil {
			return []*discordgo.MessageEmbed{e}
		}
	case *embed.Embed:
		if !e.IsZero() {
			return []*discordgo.MessageEmbed{messageEmbed(e)}
		}
	}
	return []*discordgo.MessageEmbed{}
}

func messageEmbed(e *embed.Embed) *discordgo.MessageEmbed {
	me := &discordgo.MessageEmbed{
		Title:       e.Title,
		Description: e.Description,
		URL:         e.URL,
		Color:       e.Color,
	}
	for _, f := range e.Fields {
		me.Fields = append(me.Fields, &discordgo.MessageEmbedField{
			Name:   f.Name,
			Value:  f.Value,
			Inline: f.Inline,
		})
	}
	if e.Footer != "" {
		me.Footer = &discordgo.MessageEmbedFooter{Text: e.Footer}
	}
	if e.ImageURL != "" {
		me.Image = &discordgo.MessageEmbedImage{URL: e.ImageURL}
	}
	return me
}

// content falls back to the page label when a render has neither text nor embed
func content(r pager.Render) string {
	if r.Content != "" || r.Embed != nil {
		return r.Content
	}
	return "Page " + r.Nav.Label.Label
}

func responseData(r pager.Render, ephemeral bool) *discordgo.InteractionResponseData {
	data := &discordgo.InteractionResponseData{
		Content:    content(r),
		Embeds:     Embeds(r.Embed),
		Components: ComponentsFromRender(r),
	}
	if ephemeral {
		data.Flags = discordgo.MessageFlagsEphemeral
	}
	return data
}
