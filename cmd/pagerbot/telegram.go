package main

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zinin/pagerbot/internal/bot"
)

var telegramCmd = &cobra.Command{
	Use:   "telegram",
	Short: "Run the Telegram bot",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := setup()
		if err != nil {
			return err
		}
		defer rt.Close()

		if strings.TrimSpace(rt.cfg.TelegramToken) == "" {
			return errors.New("telegram_token is not configured")
		}

		var opts []bot.Option
		if devMode {
			opts = append(opts, bot.WithDevMode())
		}

		b, err := bot.New(rt.cfg, rt.decks, Version, VersionFull, Commit, BuildDate, opts...)
		if err != nil {
			slog.Error("Failed to create bot", "error", err)
			return err
		}

		if err := b.RegisterCommands(); err != nil {
			slog.Warn("Failed to register commands", "error", err)
		}

		slog.Info("Telegram Bot started", "version", versionString())
		b.Run(rt.ctx)
		slog.Info("Bot stopped")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(telegramCmd)
}
