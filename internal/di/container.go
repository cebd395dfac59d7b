package di

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-telegram/bot"
	channelDomain "github.com/reshetovitsme/channel-invite-bot/internal/modules/channel/domain"
	channelRepo "github.com/reshetovitsme/channel-invite-bot/internal/modules/channel/repository"
	channelService "github.com/reshetovitsme/channel-invite-bot/internal/modules/channel/service"
	feedService "github.com/reshetovitsme/channel-invite-bot/internal/modules/feed/service"
	menuService "github.com/reshetovitsme/channel-invite-bot/internal/modules/menu/service"
	"github.com/reshetovitsme/channel-invite-bot/internal/shared/config"
	httpServer "github.com/reshetovitsme/channel-invite-bot/internal/transport/http"
	"github.com/reshetovitsme/channel-invite-bot/internal/transport/telegram"
	"github.com/samber/do/v2"
	"github.com/samber/oops"
)

const shutdownTimeout = 10 * time.Second

// Setup initializes the dependency injection container
func Setup() (do.Injector, error) {
	injector := do.New()

	do.Provide(injector, func(i do.Injector) (*config.Config, error) {
		cfg, err := config.Load()
		if err != nil {
			return nil, oops.With("context", "failed to load config").Wrap(err)
		}
		return cfg, nil
	})

	do.Provide(injector, func(i do.Injector) (channelRepo.Repository, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return channelRepo.NewStaticStorage(cfg.Channels), nil
	})

	do.Provide(injector, func(i do.Injector) (*channelService.Service, error) {
		repo := do.MustInvoke[channelRepo.Repository](i)
		return channelService.New(repo), nil
	})

	do.Provide(injector, func(i do.Injector) (*menuService.Service, error) {
		channels := do.MustInvoke[*channelService.Service](i)
		return menuService.New(channels), nil
	})

	do.Provide(injector, func(i do.Injector) (*feedService.Service, error) {
		cfg := do.MustInvoke[*config.Config](i)
		channels := do.MustInvoke[*channelService.Service](i)
		return feedService.New(channels, cfg.BotUsername), nil
	})

	do.Provide(injector, func(i do.Injector) (*telegram.Handler, error) {
		menus := do.MustInvoke[*menuService.Service](i)
		handler := telegram.New(menus)
		handler.SetLogger(slog.Default().With("component", "dispatcher"))
		return handler, nil
	})

	// Outbound Bot API client; getMe is deferred so a bad token is not fatal
	do.Provide(injector, func(i do.Injector) (*bot.Bot, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return telegram.NewBot(cfg)
	})

	do.Provide(injector, func(i do.Injector) (*telegram.Poller, error) {
		cfg := do.MustInvoke[*config.Config](i)
		b := do.MustInvoke[*bot.Bot](i)
		handler := do.MustInvoke[*telegram.Handler](i)

		source := telegram.NewAPIClient(cfg.BotToken, cfg.TelegramAPIURL, cfg.RequestTimeoutDuration())
		poller := telegram.NewPoller(source, handler.Bind(b), cfg.PollTimeoutDuration(), cfg.RetryDelayDuration())
		poller.SetLogger(slog.Default().With("component", "poller"))
		return poller, nil
	})

	do.Provide(injector, func(i do.Injector) (*telegram.Webhook, error) {
		cfg := do.MustInvoke[*config.Config](i)
		b := do.MustInvoke[*bot.Bot](i)
		handler := do.MustInvoke[*telegram.Handler](i)

		webhook := telegram.NewWebhook(cfg.WebhookSecret, handler.Bind(b))
		webhook.SetLogger(slog.Default().With("component", "webhook"))
		return webhook, nil
	})

	do.Provide(injector, func(i do.Injector) (*httpServer.Server, error) {
		cfg := do.MustInvoke[*config.Config](i)
		channels := do.MustInvoke[*channelService.Service](i)
		feeds := do.MustInvoke[*feedService.Service](i)

		server := httpServer.New(cfg, channels, feeds)
		server.SetLogger(slog.Default())
		if cfg.DeliveryMode == channelDomain.DeliveryModeWebhook {
			server.MountWebhook(telegram.WebhookPath, do.MustInvoke[*telegram.Webhook](i))
		}
		return server, nil
	})

	return injector, nil
}

// Shutdown gracefully shuts down all services
func Shutdown(injector do.Injector) error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if server, err := do.Invoke[*httpServer.Server](injector); err == nil && server != nil {
		if err := server.Shutdown(ctx); err != nil {
			return oops.With("context", "failed to shut down http server").Wrap(err)
		}
	}

	return nil
}
