package main

import (
	"fmt"
	"log/slog"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"marquee/internal/bot"
	"marquee/internal/catalog"
	"marquee/internal/config"
	"marquee/internal/flow"
	"marquee/internal/logging"
	"marquee/internal/selection"
	"marquee/internal/shortlist"
	"marquee/internal/telegram"
)

// selectionTTL bounds how long a search keyboard stays actionable.
const selectionTTL = 24 * time.Hour

func newRunCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Start the bot and poll for updates",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			logger, err := newLogger(cfg)
			if err != nil {
				return fmt.Errorf("initialize logging: %w", err)
			}

			store, err := shortlist.Open(cfg.Storage.StatePath, logger)
			if err != nil {
				return fmt.Errorf("open shortlist store: %w", err)
			}

			cat, err := catalog.New(cfg.TMDB.APIKey, cfg.TMDB.BaseURL, cfg.TMDB.Language, cfg.TMDB.ImageBaseURL, cfg.TMDB.PosterSize)
			if err != nil {
				return fmt.Errorf("initialize catalog client: %w", err)
			}

			transport, err := telegram.New(cfg.Telegram.BotToken)
			if err != nil {
				return err
			}

			fl := flow.New(cat, store, selection.New(selectionTTL), flow.PollSettings{
				Question:        cfg.Poll.Question,
				Anonymous:       cfg.Poll.Anonymous,
				MultipleAnswers: cfg.Poll.MultipleAnswers,
			}, logger)

			b, err := bot.New(bot.Options{
				Transport:          transport,
				Flow:               fl,
				Posters:            cat,
				LockPath:           filepath.Join(filepath.Dir(cfg.Storage.StatePath), "marquee.lock"),
				PollTimeoutSeconds: cfg.Telegram.PollTimeoutSeconds,
				Logger:             logger,
			})
			if err != nil {
				return err
			}

			runCtx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return b.Run(runCtx)
		},
	}
}

func newLogger(cfg *config.Config) (*slog.Logger, error) {
	outputs := []string{"stdout"}
	if cfg.Logging.LogDir != "" {
		outputs = append(outputs, filepath.Join(cfg.Logging.LogDir, "marquee.log"))
	}
	return logging.New(logging.Options{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		OutputPaths: outputs,
	})
}
