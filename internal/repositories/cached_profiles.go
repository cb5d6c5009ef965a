package repositories

import (
	"context"
	"time"

	"github.com/openhire/jobboard/internal/domain/models"
	gocache "github.com/patrickmn/go-cache"
)

type profileRepository interface {
	GetRole(ctx context.Context, accountID string) (models.Role, error)
}

// CachedProfiles memoizes role lookups: every page resolves the caller's
// role, and profile rows never change from this system's perspective.
type CachedProfiles struct {
	repo  profileRepository
	cache *gocache.Cache
}

func NewCachedProfiles(repo profileRepository) *CachedProfiles {
	return &CachedProfiles{repo: repo, cache: gocache.New(10*time.Minute, 20*time.Minute)}
}

func (c *CachedProfiles) GetRole(ctx context.Context, accountID string) (models.Role, error) {
	if value, found := c.cache.Get(accountID); found {
		return value.(models.Role), nil
	}

	role, err := c.repo.GetRole(ctx, accountID)
	if err != nil {
		return role, err
	}

	// Set, not Add: concurrent first lookups both hold a valid role and the
	// loser must not surface an already-exists error.
	c.cache.Set(accountID, role, gocache.DefaultExpiration)
	return role, nil
}

func (c *CachedProfiles) Invalidate(accountID string) {
	c.cache.Delete(accountID)
}
