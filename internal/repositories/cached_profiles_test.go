package repositories

import (
	"context"
	"sync"
	"testing"

	"github.com/openhire/jobboard/internal/domain/models"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingProfiles struct {
	mu    sync.Mutex
	roles map[string]models.Role
	calls int
}

func (s *countingProfiles) GetRole(_ context.Context, accountID string) (models.Role, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	role, ok := s.roles[accountID]
	if !ok {
		return "", models.ErrNotFound
	}
	return role, nil
}

func Test_CachedProfiles_SecondLookup_ShouldNotHitBackend(t *testing.T) {

	inner := &countingProfiles{roles: map[string]models.Role{"acc-1": models.RoleEmployer}}
	cached := NewCachedProfiles(inner)

	role, err := cached.GetRole(context.Background(), "acc-1")
	require.NoError(t, err)
	assert.Equal(t, models.RoleEmployer, role)

	role, err = cached.GetRole(context.Background(), "acc-1")
	require.NoError(t, err)
	assert.Equal(t, models.RoleEmployer, role)
	assert.Equal(t, 1, inner.calls)
}

func Test_CachedProfiles_Invalidate_ShouldForceRead(t *testing.T) {

	inner := &countingProfiles{roles: map[string]models.Role{"acc-1": models.RoleCandidate}}
	cached := NewCachedProfiles(inner)

	_, err := cached.GetRole(context.Background(), "acc-1")
	require.NoError(t, err)

	cached.Invalidate("acc-1")

	_, err = cached.GetRole(context.Background(), "acc-1")
	require.NoError(t, err)
	assert.Equal(t, 2, inner.calls)
}

func Test_CachedProfiles_ConcurrentFirstLookups_ShouldAllSucceed(t *testing.T) {

	inner := &countingProfiles{roles: map[string]models.Role{"acc-1": models.RoleCandidate}}
	cached := NewCachedProfiles(inner)

	var wg sync.WaitGroup
	errs := make([]error, 8)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = cached.GetRole(context.Background(), "acc-1")
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		assert.NoError(t, err)
	}
}

func Test_CachedProfiles_Error_ShouldNotBeCached(t *testing.T) {

	inner := &countingProfiles{roles: map[string]models.Role{}}
	cached := NewCachedProfiles(inner)

	_, err := cached.GetRole(context.Background(), "acc-1")
	assert.True(t, errors.Is(err, models.ErrNotFound))

	inner.roles["acc-1"] = models.RoleCandidate

	role, err := cached.GetRole(context.Background(), "acc-1")
	require.NoError(t, err)
	assert.Equal(t, models.RoleCandidate, role)
	assert.Equal(t, 2, inner.calls)
}
