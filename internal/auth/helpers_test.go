package auth

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/hexauth/hexauth/internal/users"
	"github.com/hexauth/hexauth/pkg/badgerfx"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"golang.org/x/crypto/bcrypt"
)

func newTestDB(t *testing.T) *badger.DB {
	t.Helper()

	db, err := badger.Open(badgerfx.Config{InMemory: true}.Build().WithLogger(nil))
	require.NoError(t, err)

	t.Cleanup(func() { _ = db.Close() })

	return db
}

func newTestConfig() Config {
	return Config{
		AccessSecret:  []byte("access-secret"),
		RefreshSecret: []byte("refresh-secret"),
		AccessTTL:     15 * time.Minute,
		RefreshTTL:    7 * 24 * time.Hour,
		BcryptCost:    bcrypt.MinCost,
	}
}

func newTestService(t *testing.T) *Service {
	t.Helper()

	config := newTestConfig()
	db := newTestDB(t)

	tokens, err := NewTokenService(config)
	require.NoError(t, err)

	return NewService(
		config,
		NewCredentialRepository(db),
		NewRefreshTokenRepository(db),
		users.NewRepository(db),
		NewBcryptHasher(config),
		tokens,
		zaptest.NewLogger(t),
	)
}

func mustJSON(t *testing.T, v any) string {
	t.Helper()

	data, err := json.Marshal(v)
	require.NoError(t, err)

	return string(data)
}
