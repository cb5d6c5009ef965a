package repositories

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	supa "github.com/nedpals/supabase-go"
	"github.com/openhire/jobboard/internal/domain/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBackendStub(t *testing.T, rows interface{}, lastQuery *url.Values) *supa.Client {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*lastQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(rows))
	}))
	t.Cleanup(server.Close)
	return supa.CreateClient(server.URL, "test-key")
}

func Test_JobsList_StatusAndFeatured_ShouldFilterServerSide(t *testing.T) {

	var query url.Values
	rows := []models.Job{{ID: "job-1", Title: "Backend Engineer", Status: models.JobStatusActive, IsFeatured: true}}
	repo := NewJobsRepository(newBackendStub(t, rows, &query))

	jobs, err := repo.List(context.Background(), JobFilter{Status: models.JobStatusActive, FeaturedOnly: true})

	require.NoError(t, err)
	assert.Equal(t, "eq.active", query.Get("status"))
	assert.Equal(t, "eq.true", query.Get("is_featured"))
	require.Len(t, jobs, 1)
	assert.Equal(t, "job-1", jobs[0].ID)
}

func Test_JobsList_StatusOnly_ShouldNotConstrainFeatured(t *testing.T) {

	var query url.Values
	repo := NewJobsRepository(newBackendStub(t, []models.Job{}, &query))

	_, err := repo.List(context.Background(), JobFilter{Status: models.JobStatusActive})

	require.NoError(t, err)
	assert.Equal(t, "eq.active", query.Get("status"))
	assert.Empty(t, query.Get("is_featured"))
}

func Test_JobsList_NoFilter_ShouldFetchEverything(t *testing.T) {

	var query url.Values
	repo := NewJobsRepository(newBackendStub(t, []models.Job{}, &query))

	_, err := repo.List(context.Background(), JobFilter{})

	require.NoError(t, err)
	assert.Empty(t, query.Get("status"))
	assert.Empty(t, query.Get("is_featured"))
}

func Test_JobsList_ShouldOrderAndTruncate(t *testing.T) {

	now := time.Now()
	var query url.Values
	rows := []models.Job{
		{ID: "old-plain", CreatedAt: now.Add(-48 * time.Hour)},
		{ID: "new-plain", CreatedAt: now},
		{ID: "featured", IsFeatured: true, CreatedAt: now.Add(-24 * time.Hour)},
	}
	repo := NewJobsRepository(newBackendStub(t, rows, &query))

	jobs, err := repo.List(context.Background(), JobFilter{Limit: 2})

	require.NoError(t, err)
	require.Len(t, jobs, 2)
	assert.Equal(t, "featured", jobs[0].ID)
	assert.Equal(t, "new-plain", jobs[1].ID)
}

func Test_JobsGetByID_EmptyResult_ShouldReturnNotFound(t *testing.T) {

	var query url.Values
	repo := NewJobsRepository(newBackendStub(t, []models.Job{}, &query))

	_, err := repo.GetByID(context.Background(), "missing")

	assert.ErrorIs(t, err, models.ErrNotFound)
}
