package repositories

import (
	"context"
	"sort"
	"strings"

	supa "github.com/nedpals/supabase-go"
	"github.com/openhire/jobboard/internal/domain/models"
	"github.com/pkg/errors"
)

type Applications struct {
	client *supa.Client
}

func NewApplicationsRepository(client *supa.Client) *Applications {
	return &Applications{client: client}
}

// HasApplied reports whether a (job, candidate) application row exists.
// This is the pre-submission check; it does not close the race window
// between check and insert.
func (repo *Applications) HasApplied(_ context.Context, jobID string, candidateID string) (bool, error) {

	type idRow struct {
		ID string `json:"id"`
	}

	var rows []idRow
	err := repo.client.DB.From("applications").Select("id").
		Eq("job_id", jobID).Eq("candidate_id", candidateID).Execute(&rows)
	if err != nil {
		return false, errors.Wrap(err, "failed to check existing application")
	}

	return len(rows) > 0, nil
}

func (repo *Applications) Create(_ context.Context, application models.Application) error {

	var inserted []models.Application
	if err := repo.client.DB.From("applications").Insert(application).Execute(&inserted); err != nil {
		if isDuplicate(err) {
			return models.ErrDuplicateApplication
		}
		return errors.Wrap(err, "failed to create application")
	}
	return nil
}

// ListByCandidate returns the candidate's applications, newest first, with
// the job summary embedded by the backend join.
func (repo *Applications) ListByCandidate(_ context.Context, candidateID string) ([]models.ApplicationWithJob, error) {

	var applications []models.ApplicationWithJob
	err := repo.client.DB.From("applications").Select("*, jobs("+jobSummaryColumns+")").
		Eq("candidate_id", candidateID).Execute(&applications)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list applications")
	}

	sort.SliceStable(applications, func(i, j int) bool {
		return applications[i].CreatedAt.After(applications[j].CreatedAt)
	})
	return applications, nil
}

// isDuplicate recognizes the store's uniqueness violation on
// (job_id, candidate_id), so concurrent double-submits surface as a
// distinct error kind instead of a generic write failure.
func isDuplicate(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "23505") || strings.Contains(msg, "duplicate key")
}
