package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/danverh/ytgrab-bot/internal/app"
	"github.com/danverh/ytgrab-bot/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := app.New()
	if err != nil {
		log.Fatalf("Failed to start bot: %v", err)
	}

	if err := a.Start(ctx); err != nil {
		log.Fatalf("Bot stopped: %v", err)
	}

	logger.Info("Shutting down...")
}
