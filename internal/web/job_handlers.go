package web

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/openhire/jobboard/internal/domain/models"
	"github.com/openhire/jobboard/internal/logger"
	"github.com/openhire/jobboard/internal/repositories"
	"github.com/openhire/jobboard/internal/services"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const featuredJobsLimit = 6

func (s *Server) handleHome(c *gin.Context) {

	jobs, err := s.repositories.Jobs.List(c.Request.Context(), repositories.JobFilter{
		Status:       models.JobStatusActive,
		FeaturedOnly: true,
		Limit:        featuredJobsLimit,
	})
	if err != nil {
		s.backendFailure(c, "Error loading featured jobs", err)
		return
	}

	c.JSON(http.StatusOK, HomeView{
		FeaturedJobs: toJobCards(jobs, time.Now()),
		Stats:        heroStats(),
	})
}

// handleListJobs serves the browse page: every active job, with the free-text
// term and type selector applied in memory after the fetch.
func (s *Server) handleListJobs(c *gin.Context) {

	jobs, err := s.repositories.Jobs.List(c.Request.Context(), repositories.JobFilter{
		Status: models.JobStatusActive,
	})
	if err != nil {
		s.backendFailure(c, "Error loading jobs", err)
		return
	}

	filtered := models.FilterJobs(jobs, c.Query("search"), c.DefaultQuery("type", models.AllJobTypes))

	c.JSON(http.StatusOK, JobListView{
		Jobs:  toJobCards(filtered, time.Now()),
		Total: len(filtered),
	})
}

func (s *Server) handleJobDetail(c *gin.Context) {

	job, err := s.repositories.Jobs.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"notice": "Job not found", "redirect": "/jobs"})
			return
		}
		s.backendFailure(c, "Error loading job", err)
		return
	}

	identity := currentIdentity(c)
	view := JobDetailView{Job: *job}

	switch {
	case identity.IsAnonymous():
		view.ShowSignInPrompt = true
	case identity.IsCandidate():
		applied, err := s.repositories.Applications.HasApplied(c.Request.Context(), job.ID, identity.Account().ID)
		if err != nil {
			s.backendFailure(c, "Error loading job", err)
			return
		}
		view.HasApplied = applied
		view.CanApply = !applied
	case identity.IsEmployer():
		// Employers browse details but never see the application form.
	}

	c.JSON(http.StatusOK, view)
}

func (s *Server) handleApply(c *gin.Context) {

	identity := currentIdentity(c)

	resume, err := c.FormFile("resume")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"notice": "Please upload your resume"})
		return
	}

	opened, err := resume.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"notice": "Could not read the uploaded resume"})
		return
	}
	defer opened.Close()

	err = s.services.Applications.Apply(c.Request.Context(), c.Param("id"), identity.Account(),
		c.PostForm("cover_letter"), resume.Filename, opened)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUnsupportedResumeType):
			c.JSON(http.StatusBadRequest, gin.H{"notice": "Resume must be a PDF, DOC or DOCX file"})
		case errors.Is(err, models.ErrDuplicateApplication):
			c.JSON(http.StatusConflict, gin.H{"notice": "You have already applied to this job"})
		default:
			s.backendFailure(c, "Error submitting application", err)
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"notice": "Application submitted successfully!"})
}

func (s *Server) handleCreateJob(c *gin.Context) {

	var draft models.JobDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"notice": "Invalid job form: " + err.Error()})
		return
	}

	identity := currentIdentity(c)

	job, err := s.services.Jobs.Create(c.Request.Context(), identity.Account().ID, draft)
	if err != nil {
		if errors.Is(err, services.ErrInvalidJobDraft) {
			c.JSON(http.StatusBadRequest, gin.H{"notice": "Please fill in all required fields"})
			return
		}
		s.backendFailure(c, "Error creating job posting", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"notice": "Job posted successfully!", "job": job})
}

func (s *Server) handleDeleteJob(c *gin.Context) {

	identity := currentIdentity(c)

	if err := s.services.Jobs.Delete(c.Request.Context(), identity.Account().ID, c.Param("id")); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"notice": "Job not found", "redirect": "/jobs"})
			return
		}
		s.backendFailure(c, "Error deleting job", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"notice": "Job deleted successfully"})
}

// backendFailure reports a failed remote call: notify, leave the client free
// to retry, never crash the process.
func (s *Server) backendFailure(c *gin.Context, notice string, err error) {
	log.WithField(logger.ErrorTypeField, logger.ErrorTypeBackend).Error(err)
	c.JSON(http.StatusBadGateway, gin.H{"notice": notice})
}
