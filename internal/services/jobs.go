package services

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/openhire/jobboard/internal/domain/models"
	"github.com/openhire/jobboard/internal/metrics"
	"github.com/pkg/errors"
)

var ErrInvalidJobDraft = errors.New("job draft is invalid")

type jobWriterRepository interface {
	GetByID(ctx context.Context, id string) (*models.Job, error)
	Create(ctx context.Context, employerID string, draft models.JobDraft) (*models.Job, error)
	Delete(ctx context.Context, jobID string) error
}

// JobService validates and forwards employer posting writes. Backend writes
// run under the service-role key, so ownership is enforced here: deleting a
// posting requires that it belongs to the calling employer.
type JobService struct {
	jobs     jobWriterRepository
	validate *validator.Validate
}

func NewJobService(jobs jobWriterRepository) (*JobService, error) {

	if jobs == nil {
		return nil, errors.New("job repository is nil")
	}

	return &JobService{jobs: jobs, validate: validator.New()}, nil
}

func (s *JobService) Create(ctx context.Context, employerID string, draft models.JobDraft) (*models.Job, error) {

	if err := s.validate.Struct(draft); err != nil {
		return nil, errors.Wrap(ErrInvalidJobDraft, err.Error())
	}

	job, err := s.jobs.Create(ctx, employerID, draft)
	if err != nil {
		return nil, err
	}

	metrics.JobsCreatedCounter.Inc()
	return job, nil
}

// Delete removes employerID's posting. Another employer's posting reports
// ErrNotFound, not its existence.
func (s *JobService) Delete(ctx context.Context, employerID string, jobID string) error {

	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return err
	}
	if job.EmployerID != employerID {
		return models.ErrNotFound
	}

	if err := s.jobs.Delete(ctx, jobID); err != nil {
		return err
	}

	metrics.JobsDeletedCounter.Inc()
	return nil
}
