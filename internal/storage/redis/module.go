package redis

import (
	"context"
	"log/slog"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"github.com/polkiloo/restaurant/internal/config"
	"github.com/polkiloo/restaurant/internal/domain/repository"
)

// Module provides the idempotency store for order creation.
var Module = fx.Options(
	fx.Provide(newStore),
)

var newClient = func(addr string) client {
	return goredis.NewClient(&goredis.Options{Addr: addr})
}

type storeParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Config    *config.Config
	Logger    *slog.Logger
}

func newStore(p storeParams) repository.IdempotencyStore {
	if p.Config.RedisAddr == "" {
		p.Logger.Info("redis address not set, idempotency keys disabled")
		return NopStore{}
	}

	store := NewIdempotencyStore(newClient(p.Config.RedisAddr), p.Config.IdempotencyTTL)
	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := store.HealthCheck(ctx); err != nil {
				p.Logger.Warn("redis unavailable", slog.String("addr", p.Config.RedisAddr), slog.Any("error", err))
			}
			return nil
		},
		OnStop: func(context.Context) error {
			return store.Close()
		},
	})
	return store
}
