// internal/handler/handler.go
package handler

import (
	"github.com/zinin/pagerbot/internal/deck"
	"github.com/zinin/pagerbot/internal/pager"
	"github.com/zinin/pagerbot/internal/telegram"
)

// DeckSource resolves decks by name
type DeckSource interface {
	Deck(name string) (deck.Deck, error)
	Decks() []deck.Deck
}

// Deps holds dependencies for all handlers
type Deps struct {
	Sender      telegram.MessageSender
	Waiter      telegram.Waiter // interaction hub shared with the update loop
	Decks       DeckSource
	Defaults    pager.Options // session defaults from config
	Version     string        // Clean version (v1.2.0)
	VersionFull string        // Full git describe output (v1.2.0-5-gabc1234)
	Commit      string        // Git commit hash
	BuildDate   string        // Build date
	DevMode     bool          // Development mode flag
}
