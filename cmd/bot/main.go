package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mserban/cabinet-bot/internal/bot"
	"github.com/mserban/cabinet-bot/internal/charts"
	"github.com/mserban/cabinet-bot/internal/config"
	"github.com/mserban/cabinet-bot/internal/dialog"
	"github.com/mserban/cabinet-bot/internal/httpapi"
	applog "github.com/mserban/cabinet-bot/internal/log"
	"github.com/mserban/cabinet-bot/internal/repository"
	"github.com/mserban/cabinet-bot/internal/service"
	"github.com/mserban/cabinet-bot/internal/session"
)

func main() {
	logger := applog.New(applog.Config{})

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("configuration error", applog.FieldError, err)
		os.Exit(1)
	}

	repo := repository.NewNotionRepository(cfg.NotionToken, cfg.NotionDatabaseID, logger)
	tracker := service.NewExpenseTracker(repo, cfg.SplitFraction, logger)
	sessions := session.NewStore(cfg.SessionTTL)
	machine := dialog.NewMachine(sessions, tracker, tracker, charts.NewGenerator(), logger)

	b, err := bot.NewBot(cfg.TelegramToken, machine, logger)
	if err != nil {
		logger.Error("bot init failed", applog.FieldError, err)
		os.Exit(1)
	}

	server := httpapi.New(":"+cfg.HTTPPort, tracker, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return b.Start(ctx)
	})
	g.Go(func() error {
		return server.Run(ctx)
	})
	if cfg.SessionTTL > 0 {
		g.Go(func() error {
			return sweepSessions(ctx, sessions, cfg.SessionTTL, logger)
		})
	}

	if err := g.Wait(); err != nil {
		logger.Error("shutdown with error", applog.FieldError, err)
		os.Exit(1)
	}
	logger.Info("shutdown complete")
}

// sweepSessions periodically drops abandoned sessions so unfinished
// flows do not accumulate for the life of the process.
func sweepSessions(ctx context.Context, sessions *session.Store, ttl time.Duration, logger *applog.Logger) error {
	interval := ttl / 2
	if interval < time.Minute {
		interval = time.Minute
	}

	log := logger.WithComponent(applog.ComponentSession)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if removed := sessions.PurgeExpired(); removed > 0 {
				log.Info("expired sessions purged", "removed", removed)
			}
		}
	}
}
