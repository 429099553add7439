package users

import (
	"github.com/go-core-fx/logger"
	"go.uber.org/fx"
)

func Module() fx.Option {
	return fx.Module(
		"users",
		logger.WithNamedLogger("users"),
		// the repository stays public: the auth module consumes it as
		// its user-directory port
		fx.Provide(NewRepository),
		fx.Provide(NewService),
	)
}
