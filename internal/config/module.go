package config

import (
	"time"

	"go.uber.org/fx"
)

// Module exposes configuration loader for fx graphs.
var Module = fx.Provide(Load, newLocation)

func newLocation(cfg *Config) *time.Location {
	if cfg.Location == nil {
		return time.Local
	}
	return cfg.Location
}
