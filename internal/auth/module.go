package auth

import (
	"github.com/go-core-fx/logger"
	"go.uber.org/fx"
)

func Module() fx.Option {
	return fx.Module(
		"auth",
		logger.WithNamedLogger("auth"),
		fx.Provide(NewCredentialRepository, fx.Private),
		fx.Provide(NewRefreshTokenRepository, fx.Private),
		fx.Provide(
			fx.Annotate(NewBcryptHasher, fx.As(new(PasswordHasher))), fx.Private,
			fx.Annotate(NewTokenService, fx.As(new(TokenService))), fx.Private,
		),
		fx.Provide(NewService),
	)
}
