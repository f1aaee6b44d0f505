package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/zinin/pagerbot/internal/config"
	"github.com/zinin/pagerbot/internal/deck"
	"github.com/zinin/pagerbot/internal/logging"
	"github.com/zinin/pagerbot/internal/paths"
	"github.com/zinin/pagerbot/internal/tracing"
)

const (
	serviceName = "pagerbot"
	maxLogSize  = 200 * 1024
)

var (
	cfgFile  string
	deckFile string
	devMode  bool
)

var rootCmd = &cobra.Command{
	Use:   "pagerbot",
	Short: "Paginated message bot for Telegram and Discord",
	Long: `pagerbot shows decks of pages as a single chat message with
back and forward buttons. Decks are loaded from a YAML file.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path (default depends on --dev)")
	rootCmd.PersistentFlags().StringVar(&deckFile, "decks", "", "deck file path, overrides deck_path")
	rootCmd.PersistentFlags().BoolVar(&devMode, "dev", false, "Run in development mode (local testing)")
}

func versionString() string {
	return fmt.Sprintf("%s (%s, %s)", VersionFull, Commit, BuildDate)
}

func currentPaths() paths.Paths {
	if devMode {
		return paths.DevPaths()
	}
	return paths.Default()
}

// runtime is what every bot command needs before it starts serving
type runtime struct {
	ctx    context.Context
	cfg    *config.Config
	decks  *deck.Library
	logger *logging.Logger

	cleanup []func()
}

func (r *runtime) Close() {
	for i := len(r.cleanup) - 1; i >= 0; i-- {
		r.cleanup[i]()
	}
}

// setup initializes logging, config, decks, tracing and the signal context
func setup() (*runtime, error) {
	p := currentPaths()
	if cfgFile != "" {
		p.ConfigPath = cfgFile
	}

	// Initialize logger BEFORE config load (default INFO level)
	slogger, logger, err := logging.NewSlogLogger(p.LogPath)
	if err != nil {
		return nil, fmt.Errorf("initialize logging: %w", err)
	}
	slog.SetDefault(slogger)

	rt := &runtime{logger: logger}
	rt.cleanup = append(rt.cleanup, func() { logger.Close() })

	if devMode {
		slog.Info("Running in DEVELOPMENT mode", "config", p.ConfigPath)
	}

	cfg, err := config.Load(p.ConfigPath)
	if os.IsNotExist(err) {
		slog.Info("Config not found, using environment only", "path", p.ConfigPath)
		cfg, err = config.Load("")
	}
	if err != nil {
		rt.Close()
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		rt.Close()
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	rt.cfg = cfg

	// Update log level from config
	if cfg.LogLevel != "" {
		logger.SetLevel(cfg.LogLevel)
		slog.Debug("Log level set from config", "level", cfg.LogLevel)
	}

	deckPath := p.ResolveDeck(cfg.DeckPath)
	if deckFile != "" {
		deckPath = deckFile
	}
	decks, err := deck.Load(deckPath)
	if err != nil {
		rt.Close()
		return nil, fmt.Errorf("load decks: %w", err)
	}
	rt.decks = decks
	slog.Info("Decks loaded", "path", deckPath, "count", len(decks.Names()))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	rt.ctx = ctx
	rt.cleanup = append(rt.cleanup, stop)

	shutdown, err := tracing.Setup(ctx, serviceName, Version)
	if err != nil {
		slog.Warn("Tracing disabled", "error", err)
	} else {
		rt.cleanup = append(rt.cleanup, func() {
			flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdown(flushCtx); err != nil {
				slog.Warn("Failed to flush traces", "error", err)
			}
		})
	}

	logger.StartRotation(ctx, []string{p.LogPath}, maxLogSize, time.Minute)

	return rt, nil
}
