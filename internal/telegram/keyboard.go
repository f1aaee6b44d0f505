package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/zinin/pagerbot/internal/pager"
)

const (
	// NoopCallback is the callback data of buttons that do nothing
	NoopCallback = "pager:noop"
	// SelectSeparator joins a select id and the chosen option value
	SelectSeparator = "|"
	// MaxCallbackData is the Telegram limit for callback data, in bytes
	MaxCallbackData = 64

	selectColumns = 3
)

// KeyboardBuilder provides a fluent interface for building inline keyboards
type KeyboardBuilder struct {
	rows       [][]tgbotapi.InlineKeyboardButton
	currentRow []tgbotapi.InlineKeyboardButton
}

// NewKeyboard creates a new keyboard builder
func NewKeyboard() *KeyboardBuilder {
	return &KeyboardBuilder{}
}

// Button adds a callback button to the current row
func (kb *KeyboardBuilder) Button(text, callbackData string) *KeyboardBuilder {
	kb.currentRow = append(kb.currentRow, tgbotapi.NewInlineKeyboardButtonData(text, callbackData))
	return kb
}

// URLButton adds a link button to the current row
func (kb *KeyboardBuilder) URLButton(text, url string) *KeyboardBuilder {
	kb.currentRow = append(kb.currentRow, tgbotapi.NewInlineKeyboardButtonURL(text, url))
	return kb
}

// Row finishes the current row and starts a new one
func (kb *KeyboardBuilder) Row() *KeyboardBuilder {
	if len(kb.currentRow) > 0 {
		kb.rows = append(kb.rows, kb.currentRow)
		kb.currentRow = nil
	}
	return kb
}

// Columns arranges all pending buttons into rows with n columns each
func (kb *KeyboardBuilder) Columns(n int) *KeyboardBuilder {
	if n <= 0 {
		n = 1
	}
	buttons := kb.currentRow
	kb.currentRow = nil

	for i := 0; i < len(buttons); i += n {
		end := i + n
		if end > len(buttons) {
			end = len(buttons)
		}
		kb.rows = append(kb.rows, buttons[i:end])
	}
	return kb
}

// Build returns the final InlineKeyboardMarkup
func (kb *KeyboardBuilder) Build() tgbotapi.InlineKeyboardMarkup {
	if len(kb.currentRow) > 0 {
		kb.rows = append(kb.rows, kb.currentRow)
	}
	if len(kb.rows) == 0 {
		return tgbotapi.InlineKeyboardMarkup{}
	}
	return tgbotapi.NewInlineKeyboardMarkup(kb.rows...)
}

// KeyboardFromRender maps the render's control rows to an inline keyboard.
// Telegram has no disabled buttons: disabled controls keep their text but
// carry NoopCallback. A select becomes one button per option.
func KeyboardFromRender(r pager.Render) tgbotapi.InlineKeyboardMarkup {
	kb := NewKeyboard()
	for _, row := range r.Components() {
		for _, c := range row {
			if c.IsSelect() {
				kb.Row()
				addSelect(kb, c)
				continue
			}
			addButton(kb, c)
		}
		kb.Row()
	}
	return kb.Build()
}

func addButton(kb *KeyboardBuilder, c pager.Control) {
	switch {
	case c.URL != "":
		kb.URLButton(c.Label, c.URL)
	case c.Disabled:
		kb.Button(c.Label, NoopCallback)
	default:
		kb.Button(c.Label, pager.WireID(c))
	}
}

func addSelect(kb *KeyboardBuilder, c pager.Control) {
	for _, opt := range c.Options {
		data := SelectData(c.ID, opt.Value)
		if c.Disabled {
			data = NoopCallback
		}
		kb.Button(opt.Label, data)
	}
	kb.Columns(selectColumns)
}

// SelectData returns the callback data of one select option button
func SelectData(id, value string) string {
	return id + SelectSeparator + value
}
