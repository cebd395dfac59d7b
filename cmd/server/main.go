package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-telegram/bot"
	"github.com/reshetovitsme/channel-invite-bot/internal/di"
	channelDomain "github.com/reshetovitsme/channel-invite-bot/internal/modules/channel/domain"
	"github.com/reshetovitsme/channel-invite-bot/internal/shared/config"
	httpServer "github.com/reshetovitsme/channel-invite-bot/internal/transport/http"
	"github.com/reshetovitsme/channel-invite-bot/internal/transport/telegram"
	"github.com/samber/do/v2"
	slogmulti "github.com/samber/slog-multi"
)

func main() {
	level := new(slog.LevelVar)
	level.Set(slog.LevelInfo)

	// Setup structured logging with multiple handlers using slog-multi
	textHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	})
	jsonHandler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelError,
	})

	multiHandler := slogmulti.Fanout(textHandler, jsonHandler)
	logger := slog.New(multiHandler)
	slog.SetDefault(logger)

	injector, err := di.Setup()
	if err != nil {
		slog.Error("Failed to setup dependency injection", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := di.Shutdown(injector); err != nil {
			slog.Error("Error during shutdown", "error", err)
		}
	}()

	cfg, err := do.Invoke[*config.Config](injector)
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	if cfg.AppEnv == channelDomain.AppEnvLocal || cfg.AppEnv == channelDomain.AppEnvDevelopment {
		level.Set(slog.LevelDebug)
	}

	b := do.MustInvoke[*bot.Bot](injector)
	server := do.MustInvoke[*httpServer.Server](injector)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	go func() {
		if err := server.Start(); err != nil {
			slog.Error("Failed to start HTTP server", "error", err)
			os.Exit(1)
		}
	}()

	telegram.Authorize(ctx, b, logger)
	telegram.ConfigureDelivery(ctx, b, cfg, logger)

	if cfg.DeliveryMode == channelDomain.DeliveryModePolling {
		poller := do.MustInvoke[*telegram.Poller](injector)
		go poller.Run(ctx)
	}

	slog.Info("Application started",
		"port", cfg.HTTPPort,
		"delivery_mode", cfg.DeliveryMode,
		"channels", len(cfg.Channels),
		"app_env", cfg.AppEnv,
	)
	slog.Info("Press Ctrl+C to stop")

	<-ctx.Done()
	slog.Info("Shutting down...")
}
