package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"github.com/DonArtkins/kuja-twende-adventures/internal/cache"
	"github.com/DonArtkins/kuja-twende-adventures/internal/config"
	"github.com/DonArtkins/kuja-twende-adventures/internal/log"
	"github.com/DonArtkins/kuja-twende-adventures/internal/notify"
	"github.com/DonArtkins/kuja-twende-adventures/internal/queue"
	"github.com/DonArtkins/kuja-twende-adventures/internal/tasks"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := log.New(cfg.Environment, cfg.Logging.Level).With().Str("component", "worker").Logger()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, err := cache.NewRedisClient(ctx, cfg.Redis)
	if err != nil {
		logger.Fatal().Err(err).Msg("redis connection failed")
	}
	defer client.Close()

	var notifier tasks.Notifier
	telegram, err := notify.NewTelegram(cfg.Notify.TelegramToken, cfg.Notify.TelegramChatID)
	if err != nil {
		logger.Warn().Err(err).Msg("telegram notifications disabled")
	} else if telegram != nil {
		notifier = telegram
	}

	processor := tasks.NewProcessor(logger, cache.NewPopularity(client), notifier)
	consumer := queue.NewConsumer(
		client,
		cfg.Redis.Stream,
		cfg.Redis.Group,
		cfg.Redis.Consumer,
		cfg.Queues.ClaimInterval,
		logger,
		processor,
	)

	logger.Info().Str("stream", cfg.Redis.Stream).Msg("worker started")
	if err := consumer.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error().Err(err).Msg("consumer stopped unexpectedly")
	}
	logger.Info().Msg("worker exited")
}
