package main

import (
	"context"

	"github.com/mserban/cabinet-bot/internal/bot"
	"github.com/mserban/cabinet-bot/internal/config"
	"github.com/mserban/cabinet-bot/internal/dialog"
	applog "github.com/mserban/cabinet-bot/internal/log"
	"github.com/mserban/cabinet-bot/internal/repository"
	"github.com/mserban/cabinet-bot/internal/service"
	"github.com/mserban/cabinet-bot/internal/session"
)

// Request is the API-gateway envelope for an incoming webhook update.
type Request struct {
	Body string `json:"body"`
}

// Response is the API-gateway envelope for the handler's result.
type Response struct {
	StatusCode int               `json:"statusCode"`
	Body       string            `json:"body"`
	Headers    map[string]string `json:"headers,omitempty"`
}

// Handler processes one Telegram webhook update per invocation.
// Sessions do not survive between invocations on this entry point, so
// it only suits deployments where the gateway keeps instances warm.
func Handler(ctx context.Context, request Request) (*Response, error) {
	logger := applog.New(applog.Config{})

	cfg, err := config.LoadConfig()
	if err != nil {
		return errorResponse(err)
	}

	repo := repository.NewNotionRepository(cfg.NotionToken, cfg.NotionDatabaseID, logger)
	tracker := service.NewExpenseTracker(repo, cfg.SplitFraction, logger)
	sessions := session.NewStore(cfg.SessionTTL)
	machine := dialog.NewMachine(sessions, tracker, tracker, nil, logger)

	b, err := bot.NewBot(cfg.TelegramToken, machine, logger)
	if err != nil {
		return errorResponse(err)
	}

	if err := b.HandleWebhook(ctx, []byte(request.Body)); err != nil {
		return errorResponse(err)
	}

	return &Response{
		StatusCode: 200,
		Headers: map[string]string{
			"Content-Type": "application/json",
		},
	}, nil
}

func errorResponse(err error) (*Response, error) {
	return &Response{
		StatusCode: 500,
		Body:       err.Error(),
		Headers: map[string]string{
			"Content-Type": "application/json",
		},
	}, nil
}

func main() {
	// Entry point for local invocation only; the cloud runtime calls
	// Handler directly.
}
