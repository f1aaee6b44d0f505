// Package telegram provides Telegram-specific utilities
package telegram

import (
	"fmt"
	"strings"

	"github.com/zinin/pagerbot/internal/embed"
	"github.com/zinin/pagerbot/internal/pager"
)

// MaxMessageLength is the maximum length for a Telegram message
const MaxMessageLength = 4000

// EscapeMarkdownV2 escapes special characters for Telegram MarkdownV2
func EscapeMarkdownV2(text string) string {
	replacer := strings.NewReplacer(
		"\\", "\\\\",
		"_", "\\_",
		"*", "\\*",
		"[", "\\[",
		"]", "\\]",
		"(", "\\(",
		")", "\\)",
		"~", "\\~",
		"`", "\\`",
		">", "\\>",
		"#", "\\#",
		"+", "\\+",
		"-", "\\-",
		"=", "\\=",
		"|", "\\|",
		"{", "\\{",
		"}", "\\}",
		".", "\\.",
		"!", "\\!",
	)
	return replacer.Replace(text)
}

// FormatEmbed renders an embed as MarkdownV2 text
func FormatEmbed(e *embed.Embed) string {
	if e.IsZero() {
		return ""
	}

	var sb strings.Builder
	if e.Title != "" {
		title := "*" + EscapeMarkdownV2(e.Title) + "*"
		if e.URL != "" {
			title = fmt.Sprintf("[%s](%s)", title, escapeLinkURL(e.URL))
		}
		sb.WriteString(title + "\n")
	}
	if e.Description != "" {
		sb.WriteString(EscapeMarkdownV2(e.Description) + "\n")
	}
	for _, f := range e.Fields {
		sb.WriteString(fmt.Sprintf("\n*%s*\n%s\n", EscapeMarkdownV2(f.Name), EscapeMarkdownV2(f.Value)))
	}
	if e.ImageURL != "" {
		sb.WriteString(fmt.Sprintf("\n[\u200b](%s)", escapeLinkURL(e.ImageURL)))
	}
	if e.Footer != "" {
		sb.WriteString("\n_" + EscapeMarkdownV2(e.Footer) + "_")
	}
	return strings.TrimRight(sb.String(), "\n")
}

// RenderText builds the MarkdownV2 message text for a render.
// Page content is sent as plain text and escaped.
func RenderText(r pager.Render) string {
	var parts []string
	if r.Content != "" {
		parts = append(parts, EscapeMarkdownV2(r.Content))
	}
	if e, ok := r.Embed.(*embed.Embed); ok {
		if text := FormatEmbed(e); text != "" {
			parts = append(parts, text)
		}
	}
	if len(parts) == 0 {
		// Telegram rejects empty messages
		return EscapeMarkdownV2("Page " + r.Nav.Label.Label)
	}
	return strings.Join(parts, "\n\n")
}

// escapeLinkURL escapes the characters MarkdownV2 requires inside (...) of a link
func escapeLinkURL(url string) string {
	return strings.NewReplacer("\\", "\\\\", ")", "\\)").Replace(url)
}
