package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/openhire/jobboard/internal/domain/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSessionStore(t *testing.T) *Sessions {
	dbContext, err := NewDbContext(":memory:")
	require.NoError(t, err)
	require.NoError(t, dbContext.Migrate())
	t.Cleanup(func() { _ = dbContext.Close() })
	return NewSessionsRepository(dbContext.DB)
}

func sessionRow(token string, expiresAt time.Time) models.Session {
	return models.Session{
		Token:       token,
		AccountID:   "acc-1",
		Role:        models.RoleCandidate,
		AccessToken: "access-1",
		ExpiresAt:   expiresAt,
	}
}

func Test_Sessions_AddThenGet_ShouldRoundTrip(t *testing.T) {

	store := newSessionStore(t)
	expiresAt := time.Now().Add(time.Hour).Truncate(time.Second)

	require.NoError(t, store.Add(context.Background(), sessionRow("token-1", expiresAt)))

	session, err := store.GetByToken(context.Background(), "token-1")
	require.NoError(t, err)
	assert.Equal(t, "acc-1", session.AccountID)
	assert.Equal(t, models.RoleCandidate, session.Role)
	assert.False(t, session.Expired(time.Now()))
}

func Test_Sessions_GetUnknownToken_ShouldReturnNotFound(t *testing.T) {

	store := newSessionStore(t)

	_, err := store.GetByToken(context.Background(), "missing")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func Test_Sessions_RemoveExpired_ShouldKeepLiveRows(t *testing.T) {

	store := newSessionStore(t)
	now := time.Now()

	require.NoError(t, store.Add(context.Background(), sessionRow("live", now.Add(time.Hour))))
	require.NoError(t, store.Add(context.Background(), sessionRow("stale-1", now.Add(-time.Hour))))
	require.NoError(t, store.Add(context.Background(), sessionRow("stale-2", now.Add(-time.Minute))))

	removed, err := store.RemoveExpired(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, int64(2), removed)

	_, err = store.GetByToken(context.Background(), "live")
	assert.NoError(t, err)

	_, err = store.GetByToken(context.Background(), "stale-1")
	assert.ErrorIs(t, err, models.ErrNotFound)
}
