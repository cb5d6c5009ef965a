package services

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/openhire/jobboard/internal/domain/models"
	"github.com/openhire/jobboard/internal/logger"
	"github.com/openhire/jobboard/internal/metrics"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

var ErrUnsupportedResumeType = errors.New("resume must be a PDF, DOC or DOCX file")

var allowedResumeExtensions = []string{".pdf", ".doc", ".docx"}

type resumeUploader interface {
	Upload(ctx context.Context, accessToken string, bucket string, objectPath string, data io.Reader) (string, error)
}

type applicationRepository interface {
	HasApplied(ctx context.Context, jobID string, candidateID string) (bool, error)
	Create(ctx context.Context, application models.Application) error
}

// ApplicationService implements the apply flow: resume upload to blob
// storage, then an application row insert referencing the stored path.
type ApplicationService struct {
	uploads      resumeUploader
	applications applicationRepository
	bucket       string
	now          func() time.Time
}

func NewApplicationService(uploads resumeUploader, applications applicationRepository,
	bucket string) (*ApplicationService, error) {

	if uploads == nil {
		return nil, errors.New("resume uploader is nil")
	}
	if applications == nil {
		return nil, errors.New("application repository is nil")
	}
	if bucket == "" {
		return nil, errors.New("resume bucket is empty")
	}

	return &ApplicationService{
		uploads:      uploads,
		applications: applications,
		bucket:       bucket,
		now:          time.Now,
	}, nil
}

// Apply submits candidate's application for jobID. The existence pre-check
// makes a repeat submission a no-op under non-concurrent conditions; under
// concurrent ones the store's uniqueness constraint is the backstop and
// surfaces as ErrDuplicateApplication.
//
// If the row insert fails after the upload succeeded, the blob stays behind
// as an orphan: it is logged and counted, not cleaned up.
func (s *ApplicationService) Apply(ctx context.Context, jobID string, candidate models.Account,
	coverLetter string, resumeName string, resume io.Reader) error {

	ext := strings.ToLower(filepath.Ext(resumeName))
	if !extensionAllowed(ext) {
		return ErrUnsupportedResumeType
	}

	applied, err := s.applications.HasApplied(ctx, jobID, candidate.ID)
	if err != nil {
		return err
	}
	if applied {
		return models.ErrDuplicateApplication
	}

	objectPath := fmt.Sprintf("%s/%d%s", candidate.ID, s.now().UnixMilli(), ext)

	storedPath, err := s.uploads.Upload(ctx, candidate.AccessToken, s.bucket, objectPath, resume)
	if err != nil {
		return errors.Wrap(err, "resume upload failed")
	}

	application := models.Application{
		JobID:       jobID,
		CandidateID: candidate.ID,
		CoverLetter: coverLetter,
		ResumeURL:   storedPath,
	}

	if err := s.applications.Create(ctx, application); err != nil {
		if !errors.Is(err, models.ErrDuplicateApplication) {
			metrics.OrphanedResumesCounter.Inc()
			log.WithField(logger.ErrorTypeField, logger.ErrorTypeBackend).
				Errorf("application insert failed, resume %v/%v left orphaned: %v", s.bucket, storedPath, err)
		}
		return err
	}

	metrics.ApplicationsSubmittedCounter.Inc()
	return nil
}

func extensionAllowed(ext string) bool {
	for _, allowed := range allowedResumeExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}
