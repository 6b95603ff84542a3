package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/polkiloo/restaurant/internal/adapter/events"
	"github.com/polkiloo/restaurant/internal/config"
	"github.com/polkiloo/restaurant/internal/server/http/handlers"
	"github.com/polkiloo/restaurant/internal/storage/postgres"
	"github.com/polkiloo/restaurant/internal/usecase"
	"github.com/polkiloo/restaurant/internal/worker"
)

// Module wires application services, runtime components, and lifecycle hooks.
var Module = fx.Options(
	fx.Provide(
		NewRestaurantFacade,
		asHandlerFacade,
		asHealthChecker,
		newHTTPServer,
		newEventDispatcher,
		asEventSink,
	),
	fx.Invoke(registerLifecycle),
)

func asHandlerFacade(f *RestaurantFacade) handlers.RestaurantFacade { return f }

func asHealthChecker(s *postgres.Storage) handlers.HealthChecker { return s }

func asEventSink(d *worker.EventDispatcher) usecase.EventSink { return d }

type serverParams struct {
	fx.In

	Config *config.Config
	Router *gin.Engine
}

func newHTTPServer(p serverParams) *http.Server {
	return &http.Server{
		Addr:    p.Config.RunAddress,
		Handler: p.Router,
	}
}

type dispatcherParams struct {
	fx.In

	Publisher events.Publisher
	Config    *config.Config
	Logger    *slog.Logger
}

func newEventDispatcher(p dispatcherParams) *worker.EventDispatcher {
	return worker.NewEventDispatcher(
		p.Publisher,
		p.Config.EventWorkers,
		p.Config.EventBuffer,
		p.Logger,
	)
}

// AdminBootstrapper creates the configured administrator account.
type AdminBootstrapper interface {
	EnsureAdmin(ctx context.Context, mail, password string) (bool, error)
}

type lifecycleParams struct {
	fx.In

	Lifecycle  fx.Lifecycle
	Shutdowner fx.Shutdowner
	Logger     *slog.Logger
	Server     *http.Server
	Dispatcher *worker.EventDispatcher
	Admin      *RestaurantFacade
	Config     *config.Config
}

func registerLifecycle(p lifecycleParams) {
	registerHooks(p.Lifecycle, p.Shutdowner, p.Logger, p.Server, p.Dispatcher, p.Admin, p.Config)
}

func registerHooks(lc fx.Lifecycle, shutdowner fx.Shutdowner, logger *slog.Logger, server *http.Server, dispatcher *worker.EventDispatcher, admin AdminBootstrapper, cfg *config.Config) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			created, err := admin.EnsureAdmin(ctx, cfg.AdminMail, cfg.AdminPassword)
			if err != nil {
				return fmt.Errorf("bootstrap administrator: %w", err)
			}
			if created {
				logger.Info("administrator account created", slog.String("mail", cfg.AdminMail))
			}

			logger.Info("starting restaurant", slog.String("addr", server.Addr))
			dispatcher.Start(ctx)
			go func() {
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Error("http server terminated", slog.String("error", err.Error()))
					_ = shutdowner.Shutdown()
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx := ctx
			cancel := func() {}
			if _, ok := ctx.Deadline(); !ok {
				shutdownCtx, cancel = context.WithTimeout(ctx, cfg.ShutdownTimeout)
			}
			defer cancel()

			err := server.Shutdown(shutdownCtx)
			dispatcher.Stop()
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			logger.Info("restaurant stopped")
			return nil
		},
	})
}
