package events

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/restaurant/internal/config"
)

// Module exposes the order event publisher to the fx graph.
var Module = fx.Provide(newPublisher)

var dial = func(url, exchange string, logger *slog.Logger) (Publisher, error) {
	return Dial(url, exchange, logger)
}

type publisherParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Config    *config.Config
	Logger    *slog.Logger
}

func newPublisher(p publisherParams) (Publisher, error) {
	if p.Config.RabbitMQURL == "" {
		p.Logger.Info("amqp url not set, order events are only logged")
		return NewLogPublisher(p.Logger), nil
	}

	publisher, err := dial(p.Config.RabbitMQURL, p.Config.EventsExchange, p.Logger)
	if err != nil {
		return nil, err
	}
	p.Lifecycle.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return publisher.Close()
		},
	})
	return publisher, nil
}
