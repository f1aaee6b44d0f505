// internal/handler/misc.go
package handler

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/zinin/pagerbot/internal/telegram"
)

// MiscHandler handles miscellaneous commands
type MiscHandler struct {
	deps *Deps
}

// NewMiscHandler creates a new MiscHandler
func NewMiscHandler(deps *Deps) *MiscHandler {
	return &MiscHandler{deps: deps}
}

// HandleStart handles /start and /help commands
func (h *MiscHandler) HandleStart(msg *tgbotapi.Message) {
	text := `*Pager Bot*

Commands:
/decks \- list decks
/pages \[deck\] \- show a deck page by page
/version \- bot version
/help \- this message`

	h.deps.Sender.Send(msg.Chat.ID, text)
}

// HandleVersion handles /version command
func (h *MiscHandler) HandleVersion(msg *tgbotapi.Message) {
	text := h.deps.VersionFull
	if h.deps.Commit != "" {
		text = fmt.Sprintf("%s (%s, %s)", h.deps.VersionFull, h.deps.Commit, h.deps.BuildDate)
	}
	if h.deps.DevMode {
		text += " [dev]"
	}
	h.deps.Sender.Send(msg.Chat.ID, telegram.EscapeMarkdownV2(text))
}

// HandleDecks handles /decks command
func (h *MiscHandler) HandleDecks(msg *tgbotapi.Message) {
	decks := h.deps.Decks.Decks()
	if len(decks) == 0 {
		h.deps.Sender.Send(msg.Chat.ID, telegram.EscapeMarkdownV2("No decks loaded."))
		return
	}

	var sb strings.Builder
	sb.WriteString("\U0001F4DA *Decks:*\n")
	for _, d := range decks {
		line := fmt.Sprintf("\n• `%s` \\(%d pages\\)", telegram.EscapeMarkdownV2(d.Name), len(d.Pages))
		if d.Description != "" {
			line += " \\- " + telegram.EscapeMarkdownV2(d.Description)
		}
		sb.WriteString(line)
	}
	h.deps.Sender.Send(msg.Chat.ID, sb.String())
}
