// Package bot owns the Telegram transport: client setup and the
// update loop, in polling or webhook mode.
package bot

import (
	"context"
	"fmt"
	"net/http"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/danverh/ytgrab-bot/config"
	"github.com/danverh/ytgrab-bot/internal/handler"
	"github.com/danverh/ytgrab-bot/internal/middleware"
	"github.com/danverh/ytgrab-bot/pkg/logger"
)

type Bot struct {
	api     *tgbotapi.BotAPI
	handler *handler.Handler
	cfg     *config.Config
}

func New(cfg *config.Config, api *tgbotapi.BotAPI, h *handler.Handler) *Bot {
	return &Bot{api: api, handler: h, cfg: cfg}
}

// NewAPI connects to the Bot API, honoring a self-hosted server URL
// when configured.
func NewAPI(cfg *config.Config) (*tgbotapi.BotAPI, error) {
	if cfg.TelegramAPIURL != "" {
		return tgbotapi.NewBotAPIWithClient(cfg.BotToken, cfg.TelegramAPIURL+"/bot%s/%s", &http.Client{})
	}
	return tgbotapi.NewBotAPI(cfg.BotToken)
}

// Run consumes updates until ctx is canceled. Each update is handled
// in its own goroutine so one slow extraction never blocks the others.
func (b *Bot) Run(ctx context.Context) error {
	logger.Info("Bot online", "username", b.api.Self.UserName)

	if b.cfg.WebhookMode && b.cfg.WebhookURL != "" {
		return b.runWebhook(ctx)
	}
	return b.runPolling(ctx)
}

func (b *Bot) runPolling(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := b.api.GetUpdatesChan(u)

	logger.Info("Bot started in polling mode")

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			b.dispatch(ctx, update)
		}
	}
}

func (b *Bot) runWebhook(ctx context.Context) error {
	wh, err := tgbotapi.NewWebhook(b.cfg.WebhookURL)
	if err != nil {
		return fmt.Errorf("build webhook config: %w", err)
	}
	if _, err := b.api.Request(wh); err != nil {
		return fmt.Errorf("register webhook: %w", err)
	}

	updates := b.api.ListenForWebhook("/" + b.api.Token)

	srv := &http.Server{Addr: fmt.Sprintf("%s:%d", b.cfg.ListenAddr, b.cfg.Port)}
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	logger.Info("Bot started in webhook mode", "addr", srv.Addr)

	for {
		select {
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		case err := <-errCh:
			return err
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			b.dispatch(ctx, update)
		}
	}
}

func (b *Bot) dispatch(ctx context.Context, update tgbotapi.Update) {
	run := func() { b.handler.HandleUpdate(ctx, update) }
	go middleware.Chain(run,
		middleware.Recover,
		func(next func()) func() { return middleware.Logger("HandleUpdate", next) },
	)()
}
