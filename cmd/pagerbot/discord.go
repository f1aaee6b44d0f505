package main

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zinin/pagerbot/internal/discord"
)

var discordCmd = &cobra.Command{
	Use:   "discord",
	Short: "Run the Discord bot",
	Long:  `Connects to the Discord gateway and registers the /pages slash command, globally or in discord_guild_id when set.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := setup()
		if err != nil {
			return err
		}
		defer rt.Close()

		if strings.TrimSpace(rt.cfg.DiscordToken) == "" {
			return errors.New("discord_token is not configured")
		}

		b, err := discord.New(rt.cfg, rt.decks)
		if err != nil {
			slog.Error("Failed to create Discord bot", "error", err)
			return err
		}

		slog.Info("Discord Bot started", "version", versionString())
		if err := b.Run(rt.ctx); err != nil {
			slog.Error("Discord bot failed", "error", err)
			return err
		}
		slog.Info("Bot stopped")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(discordCmd)
}
