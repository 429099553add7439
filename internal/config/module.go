package config

import (
	"github.com/go-core-fx/fiberfx"
	"github.com/hexauth/hexauth/internal/auth"
	"github.com/hexauth/hexauth/pkg/badgerfx"
	"go.uber.org/fx"
)

func Module() fx.Option {
	return fx.Module(
		"config",
		fx.Provide(New),
		fx.Provide(func(cfg Config) fiberfx.Config {
			return fiberfx.Config{
				Address:     cfg.HTTP.Address,
				ProxyHeader: cfg.HTTP.ProxyHeader,
				Proxies:     cfg.HTTP.Proxies,
			}
		}),
		fx.Provide(func(cfg Config) badgerfx.Config {
			return badgerfx.Config{
				Dir: cfg.Storage.DataDir,
			}
		}),
		fx.Provide(func(cfg Config) auth.Config {
			return auth.Config{
				AccessSecret:  []byte(cfg.Auth.AccessSecret),
				RefreshSecret: []byte(cfg.Auth.RefreshSecret),
				AccessTTL:     cfg.Auth.AccessTTL,
				RefreshTTL:    cfg.Auth.RefreshTTL,
				BcryptCost:    cfg.Auth.BcryptCost,
			}
		}),
	)
}
