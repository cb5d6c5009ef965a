package services

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/openhire/jobboard/internal/domain/models"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockUploader struct {
	mock.Mock
}

func (m *mockUploader) Upload(ctx context.Context, accessToken string, bucket string,
	objectPath string, data io.Reader) (string, error) {
	args := m.Called(ctx, accessToken, bucket, objectPath, data)
	return args.String(0), args.Error(1)
}

type mockApplications struct {
	mock.Mock
}

func (m *mockApplications) HasApplied(ctx context.Context, jobID string, candidateID string) (bool, error) {
	args := m.Called(ctx, jobID, candidateID)
	return args.Bool(0), args.Error(1)
}

func (m *mockApplications) Create(ctx context.Context, application models.Application) error {
	return m.Called(ctx, application).Error(0)
}

var candidate = models.Account{ID: "cand-1", Email: "jane@example.com", AccessToken: "token-1"}

func newTestApplicationService(t *testing.T, uploads *mockUploader, applications *mockApplications) *ApplicationService {
	service, err := NewApplicationService(uploads, applications, "resumes")
	assert.NoError(t, err)
	service.now = func() time.Time { return time.UnixMilli(1700000000000) }
	return service
}

func Test_Apply_ShouldUploadResumeThenInsertRow(t *testing.T) {

	uploads := &mockUploader{}
	applications := &mockApplications{}
	service := newTestApplicationService(t, uploads, applications)

	applications.On("HasApplied", mock.Anything, "job-1", candidate.ID).Return(false, nil).Once()
	uploads.On("Upload", mock.Anything, candidate.AccessToken, "resumes", "cand-1/1700000000000.pdf", mock.Anything).
		Return("cand-1/1700000000000.pdf", nil).Once()
	applications.On("Create", mock.Anything, mock.MatchedBy(func(a models.Application) bool {
		return a.JobID == "job-1" && a.CandidateID == candidate.ID &&
			a.CoverLetter == "I fit" && a.ResumeURL == "cand-1/1700000000000.pdf"
	})).Return(nil).Once()

	err := service.Apply(context.Background(), "job-1", candidate, "I fit", "resume.pdf", strings.NewReader("%PDF-1.4"))

	assert.NoError(t, err)
	uploads.AssertExpectations(t)
	applications.AssertExpectations(t)
}

func Test_Apply_WhenAlreadyApplied_ShouldNotUploadOrInsert(t *testing.T) {

	uploads := &mockUploader{}
	applications := &mockApplications{}
	service := newTestApplicationService(t, uploads, applications)

	applications.On("HasApplied", mock.Anything, "job-1", candidate.ID).Return(true, nil).Once()

	err := service.Apply(context.Background(), "job-1", candidate, "", "resume.pdf", strings.NewReader("%PDF-1.4"))

	assert.ErrorIs(t, err, models.ErrDuplicateApplication)
	uploads.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	applications.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func Test_Apply_WhenUploadFails_ShouldNotInsertRow(t *testing.T) {

	uploads := &mockUploader{}
	applications := &mockApplications{}
	service := newTestApplicationService(t, uploads, applications)

	applications.On("HasApplied", mock.Anything, "job-1", candidate.ID).Return(false, nil).Once()
	uploads.On("Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return("", errors.New("bucket unavailable")).Once()

	err := service.Apply(context.Background(), "job-1", candidate, "", "resume.docx", strings.NewReader("doc"))

	assert.Error(t, err)
	applications.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func Test_Apply_WhenInsertFails_ShouldSurfaceWriteFailure(t *testing.T) {

	uploads := &mockUploader{}
	applications := &mockApplications{}
	service := newTestApplicationService(t, uploads, applications)

	applications.On("HasApplied", mock.Anything, "job-1", candidate.ID).Return(false, nil).Once()
	uploads.On("Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return("cand-1/1700000000000.pdf", nil).Once()
	applications.On("Create", mock.Anything, mock.Anything).Return(errors.New("insert rejected")).Once()

	err := service.Apply(context.Background(), "job-1", candidate, "", "resume.pdf", strings.NewReader("%PDF-1.4"))

	assert.Error(t, err)
	assert.NotErrorIs(t, err, models.ErrDuplicateApplication)
}

func Test_Apply_WhenConcurrentDuplicate_ShouldMapToDuplicateError(t *testing.T) {

	uploads := &mockUploader{}
	applications := &mockApplications{}
	service := newTestApplicationService(t, uploads, applications)

	// The pre-check passed, but another submission won the race and the
	// store's uniqueness constraint rejected the insert.
	applications.On("HasApplied", mock.Anything, "job-1", candidate.ID).Return(false, nil).Once()
	uploads.On("Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return("cand-1/1700000000000.pdf", nil).Once()
	applications.On("Create", mock.Anything, mock.Anything).Return(models.ErrDuplicateApplication).Once()

	err := service.Apply(context.Background(), "job-1", candidate, "", "resume.pdf", strings.NewReader("%PDF-1.4"))

	assert.ErrorIs(t, err, models.ErrDuplicateApplication)
}

func Test_Apply_ShouldRejectUnsupportedResumeTypes(t *testing.T) {

	uploads := &mockUploader{}
	applications := &mockApplications{}
	service := newTestApplicationService(t, uploads, applications)

	err := service.Apply(context.Background(), "job-1", candidate, "", "resume.exe", strings.NewReader("MZ"))

	assert.ErrorIs(t, err, ErrUnsupportedResumeType)
	applications.AssertNotCalled(t, "HasApplied", mock.Anything, mock.Anything, mock.Anything)
}
