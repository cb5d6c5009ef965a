package repositories

import (
	"context"

	supa "github.com/nedpals/supabase-go"
	"github.com/openhire/jobboard/internal/domain/models"
	"github.com/pkg/errors"
)

type Profiles struct {
	client *supa.Client
}

type profileRow struct {
	ID   string `json:"id"`
	Role string `json:"role"`
}

func NewProfilesRepository(client *supa.Client) *Profiles {
	return &Profiles{client: client}
}

// GetRole resolves an account's role from its profile row. A missing row is
// ErrNotFound, which callers treat as "sign-up incomplete" rather than as a
// role mismatch.
func (repo *Profiles) GetRole(_ context.Context, accountID string) (models.Role, error) {

	var rows []profileRow
	if err := repo.client.DB.From("profiles").Select("id,role").Eq("id", accountID).Execute(&rows); err != nil {
		return "", errors.Wrap(err, "failed to get profile")
	}

	if len(rows) == 0 {
		return "", models.ErrNotFound
	}

	role, err := models.ToRole(rows[0].Role)
	if err != nil {
		return "", errors.Wrapf(err, "profile %v", accountID)
	}
	return role, nil
}
