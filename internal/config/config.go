package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/zinin/pagerbot/internal/netproxy"
	"github.com/zinin/pagerbot/internal/pager"
)

// MaxTimeoutSeconds keeps sessions inside Discord's 15 minute interaction token lifetime
const MaxTimeoutSeconds = 14 * 60

type Config struct {
	TelegramToken      string   `json:"telegram_token" env:"PAGERBOT_TELEGRAM_TOKEN"`
	DiscordToken       string   `json:"discord_token" env:"PAGERBOT_DISCORD_TOKEN"`
	DiscordGuildID     string   `json:"discord_guild_id" env:"PAGERBOT_DISCORD_GUILD_ID"`
	AllowedUsers       []string `json:"allowed_users" env:"PAGERBOT_ALLOWED_USERS"`
	LogLevel           string   `json:"log_level" env:"PAGERBOT_LOG_LEVEL"`
	DeckPath           string   `json:"deck_path" env:"PAGERBOT_DECK_PATH"`
	TimeoutSeconds     int      `json:"timeout_seconds" env:"PAGERBOT_TIMEOUT_SECONDS"`
	Ephemeral          bool     `json:"ephemeral" env:"PAGERBOT_EPHEMERAL"`
	AllowUsageByAnyone bool     `json:"allow_usage_by_anyone" env:"PAGERBOT_ALLOW_USAGE_BY_ANYONE"`
	ProxyURL           string   `json:"proxy_url" env:"PAGERBOT_PROXY_URL"`
}

// Load reads the JSON config at path and applies PAGERBOT_* environment
// overrides. An empty path reads the environment only.
func Load(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, err
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	return &cfg, nil
}

// Validate checks value ranges. Tokens are checked by the command that needs them.
func (c *Config) Validate() error {
	var errs []error
	if c.TimeoutSeconds < 0 || c.TimeoutSeconds > MaxTimeoutSeconds {
		errs = append(errs, fmt.Errorf("timeout_seconds must be between 0 and %d, got %d", MaxTimeoutSeconds, c.TimeoutSeconds))
	}
	switch strings.ToLower(c.LogLevel) {
	case "", "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("unknown log_level %q", c.LogLevel))
	}
	if _, err := netproxy.Parse(c.ProxyURL); err != nil {
		errs = append(errs, fmt.Errorf("proxy_url: %w", err))
	}
	return errors.Join(errs...)
}

// Timeout returns the session timeout, pager.DefaultTimeout when unset
func (c *Config) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return pager.DefaultTimeout
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// PagerOptions returns session defaults shared by all commands
func (c *Config) PagerOptions() pager.Options {
	return pager.Options{
		Ephemeral:          c.Ephemeral,
		AllowUsageByAnyone: c.AllowUsageByAnyone,
		Timeout:            c.Timeout(),
	}
}
