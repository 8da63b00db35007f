package app

import (
	"context"
	"errors"

	"github.com/danverh/ytgrab-bot/config"
	"github.com/danverh/ytgrab-bot/internal/bot"
	"github.com/danverh/ytgrab-bot/internal/handler"
	"github.com/danverh/ytgrab-bot/internal/retry"
	"github.com/danverh/ytgrab-bot/internal/router"
	"github.com/danverh/ytgrab-bot/internal/youtube"
	"github.com/danverh/ytgrab-bot/pkg/logger"
)

type App struct {
	Bot *bot.Bot
	Cfg *config.Config
}

func New() (*App, error) {
	cfg := config.Load()
	logger.Setup(cfg.LogLevel)

	if cfg.BotToken == "" {
		return nil, errors.New("BOT_TOKEN is not set")
	}

	api, err := bot.NewAPI(cfg)
	if err != nil {
		return nil, err
	}

	extractor := youtube.NewYtdlpExtractor(cfg.YtdlpPath, cfg.ExtractTimeout)
	fetcher := youtube.NewFetcher(extractor, cfg.MaxFilesizeMB, retry.DefaultConfig())

	h := handler.New(api, fetcher, router.New(fetcher))
	b := bot.New(cfg, api, h)

	logger.Info("Application initialized successfully",
		"max_filesize_mb", cfg.MaxFilesizeMB, "webhook", cfg.WebhookMode)

	return &App{Bot: b, Cfg: cfg}, nil
}

func (a *App) Start(ctx context.Context) error {
	return a.Bot.Run(ctx)
}
