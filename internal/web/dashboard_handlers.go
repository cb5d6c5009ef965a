package web

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) handleCandidateDashboard(c *gin.Context) {

	identity := currentIdentity(c)

	applications, err := s.repositories.Applications.ListByCandidate(c.Request.Context(), identity.Account().ID)
	if err != nil {
		s.backendFailure(c, "Error loading applications", err)
		return
	}

	c.JSON(http.StatusOK, toCandidateDashboard(applications))
}

func (s *Server) handleEmployerDashboard(c *gin.Context) {

	identity := currentIdentity(c)

	jobs, err := s.repositories.Jobs.ListByEmployer(c.Request.Context(), identity.Account().ID)
	if err != nil {
		s.backendFailure(c, "Error loading job postings", err)
		return
	}

	c.JSON(http.StatusOK, toEmployerDashboard(jobs))
}
