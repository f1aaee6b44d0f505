// Package paths provides centralized path configuration for the application
package paths

// Paths holds all configurable paths for the application
type Paths struct {
	ConfigPath string // /etc/pagerbot/pagerbot.json
	DeckPath   string // /etc/pagerbot/decks.yaml
	LogPath    string // /tmp/pagerbot.log
}

// Default returns the default paths for production use
func Default() Paths {
	return Paths{
		ConfigPath: "/etc/pagerbot/pagerbot.json",
		DeckPath:   "/etc/pagerbot/decks.yaml",
		LogPath:    "/tmp/pagerbot.log",
	}
}

// DevPaths returns paths relative to the repository for local testing
func DevPaths() Paths {
	return Paths{
		ConfigPath: "testdata/dev/pagerbot.json",
		DeckPath:   "testdata/dev/decks.yaml",
		LogPath:    "testdata/dev/bot.log",
	}
}

// ResolveDeck returns the configured deck path, falling back to p.DeckPath
func (p Paths) ResolveDeck(configured string) string {
	if configured != "" {
		return configured
	}
	return p.DeckPath
}
