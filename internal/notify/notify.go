// Package notify carries the outbound notification adapters. The only
// adapter shipped here records deliveries in the log; wiring a real
// mail transport stays behind the users.Notifier port.
package notify

import (
	"context"

	"github.com/hexauth/hexauth/internal/users"
	"go.uber.org/zap"
)

// LogNotifier satisfies users.Notifier by logging each delivery.
type LogNotifier struct {
	logger *zap.Logger
}

func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{
		logger: logger,
	}
}

// WelcomeUser implements users.Notifier.
func (n *LogNotifier) WelcomeUser(_ context.Context, user *users.User) error {
	n.logger.Info("welcome notification",
		zap.String("email", user.Email),
		zap.String("name", user.Name))

	return nil
}

var _ users.Notifier = (*LogNotifier)(nil)
