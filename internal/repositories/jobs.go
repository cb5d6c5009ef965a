package repositories

import (
	"context"
	"sort"
	"strings"

	supa "github.com/nedpals/supabase-go"
	"github.com/openhire/jobboard/internal/domain/models"
	"github.com/pkg/errors"
)

type Jobs struct {
	client *supa.Client
}

// JobFilter selects rows by status and/or featured flag and caps the result
// count. Free-text search and type narrowing are applied after fetch, not
// here.
type JobFilter struct {
	Status       string
	FeaturedOnly bool
	Limit        int
}

const jobSummaryColumns = "id,title,company,location,job_type,salary_range"

func NewJobsRepository(client *supa.Client) *Jobs {
	return &Jobs{client: client}
}

func (repo *Jobs) List(_ context.Context, filter JobFilter) ([]models.Job, error) {

	query := repo.client.DB.From("jobs").Select("*")

	// Select and Eq builders are distinct types; compose the full chain per
	// filter combination and execute through the shared interface.
	var request interface {
		Execute(result interface{}) error
	} = query

	switch {
	case filter.Status != "" && filter.FeaturedOnly:
		request = query.Eq("status", filter.Status).Eq("is_featured", "true")
	case filter.Status != "":
		request = query.Eq("status", filter.Status)
	case filter.FeaturedOnly:
		request = query.Eq("is_featured", "true")
	}

	var jobs []models.Job
	if err := request.Execute(&jobs); err != nil {
		return nil, errors.Wrap(err, "failed to list jobs")
	}

	models.SortJobs(jobs)

	if filter.Limit > 0 && len(jobs) > filter.Limit {
		jobs = jobs[:filter.Limit]
	}
	return jobs, nil
}

func (repo *Jobs) GetByID(_ context.Context, id string) (*models.Job, error) {

	var jobs []models.Job
	if err := repo.client.DB.From("jobs").Select("*").Eq("id", id).Execute(&jobs); err != nil {
		return nil, errors.Wrapf(err, "failed to get job %v", id)
	}

	if len(jobs) == 0 {
		return nil, models.ErrNotFound
	}
	return &jobs[0], nil
}

// ListByEmployer returns the employer's postings, newest first, each with
// the aggregate application count embedded by the backend.
func (repo *Jobs) ListByEmployer(_ context.Context, employerID string) ([]models.JobWithApplicationCount, error) {

	type countRow struct {
		Count int `json:"count"`
	}
	type jobRow struct {
		models.Job
		Applications []countRow `json:"applications"`
	}

	var rows []jobRow
	err := repo.client.DB.From("jobs").Select("*, applications(count)").
		Eq("employer_id", employerID).Execute(&rows)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list employer jobs")
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].CreatedAt.After(rows[j].CreatedAt)
	})

	jobs := make([]models.JobWithApplicationCount, 0, len(rows))
	for _, row := range rows {
		withCount := models.JobWithApplicationCount{Job: row.Job}
		if len(row.Applications) > 0 {
			withCount.ApplicationCount = row.Applications[0].Count
		}
		jobs = append(jobs, withCount)
	}
	return jobs, nil
}

// Create inserts the draft on behalf of employerID. Requests run under the
// service-role key; callers must have authorized the write already.
func (repo *Jobs) Create(_ context.Context, employerID string, draft models.JobDraft) (*models.Job, error) {

	row := models.Job{
		Title:        draft.Title,
		Company:      draft.Company,
		Location:     draft.Location,
		JobType:      draft.JobType,
		SalaryRange:  draft.SalaryRange,
		Description:  draft.Description,
		Requirements: draft.Requirements,
		Benefits:     draft.Benefits,
		EmployerID:   employerID,
	}

	var inserted []models.Job
	if err := repo.client.DB.From("jobs").Insert(row).Execute(&inserted); err != nil {
		return nil, errors.Wrap(err, "failed to create job")
	}

	if len(inserted) == 0 {
		return nil, errors.New("backend returned no row for created job")
	}
	return &inserted[0], nil
}

// Delete removes the posting. Dependent application rows are not cascaded
// here; whatever policy the backend defines applies.
func (repo *Jobs) Delete(_ context.Context, jobID string) error {

	if err := repo.client.DB.From("jobs").Delete().Eq("id", jobID).Execute(nil); err != nil {
		if isNotFound(err) {
			return models.ErrNotFound
		}
		return errors.Wrapf(err, "failed to delete job %v", jobID)
	}
	return nil
}

func isNotFound(err error) bool {
	return err != nil && strings.Contains(err.Error(), "PGRST116")
}
