package internal

import (
	"context"

	"github.com/capcom6/go-infra-fx/validator"
	"github.com/go-core-fx/fiberfx"
	"github.com/go-core-fx/healthfx"
	"github.com/go-core-fx/logger"
	"github.com/hexauth/hexauth/internal/auth"
	"github.com/hexauth/hexauth/internal/config"
	"github.com/hexauth/hexauth/internal/notify"
	"github.com/hexauth/hexauth/internal/server"
	"github.com/hexauth/hexauth/internal/users"
	"github.com/hexauth/hexauth/pkg/badgerfx"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

func Run() {
	fx.New(
		// CORE MODULES
		logger.Module(),
		logger.WithFxDefaultLogger(),
		badgerfx.Module(),
		healthfx.Module(),
		fiberfx.Module(),
		validator.Module,
		//
		// APP MODULES
		config.Module(),
		server.Module(),
		//
		// BUSINESS MODULES
		fx.Provide(func() healthfx.Version { return healthfx.Version{Version: "1.0.0", ReleaseID: 1} }),
		users.Module(),
		auth.Module(),
		notify.Module(),
		//
		// LIFECYCLE MANAGEMENT
		fx.Invoke(func(lc fx.Lifecycle, logger *zap.Logger) {
			lc.Append(fx.Hook{
				OnStart: func(_ context.Context) error {
					logger.Info("🚀 hexauth application starting up")
					return nil
				},
				OnStop: func(_ context.Context) error {
					logger.Info("🛑 hexauth application shutting down gracefully")
					return nil
				},
			})
		}),
	).Run()
}
