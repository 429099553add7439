package notify

import (
	"github.com/go-core-fx/logger"
	"github.com/hexauth/hexauth/internal/users"
	"go.uber.org/fx"
)

func Module() fx.Option {
	return fx.Module(
		"notify",
		logger.WithNamedLogger("notify"),
		fx.Provide(
			fx.Annotate(NewLogNotifier, fx.As(new(users.Notifier))),
		),
	)
}
