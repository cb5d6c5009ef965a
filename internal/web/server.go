package web

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/openhire/jobboard/internal/domain/models"
	"github.com/openhire/jobboard/internal/repositories"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type jobReader interface {
	List(ctx context.Context, filter repositories.JobFilter) ([]models.Job, error)
	GetByID(ctx context.Context, id string) (*models.Job, error)
	ListByEmployer(ctx context.Context, employerID string) ([]models.JobWithApplicationCount, error)
}

type applicationReader interface {
	ListByCandidate(ctx context.Context, candidateID string) ([]models.ApplicationWithJob, error)
	HasApplied(ctx context.Context, jobID string, candidateID string) (bool, error)
}

type sessionService interface {
	SignUp(ctx context.Context, email string, password string, role models.Role) error
	SignIn(ctx context.Context, email string, password string) (*models.Session, error)
	SignOut(ctx context.Context, token string) error
	Current(ctx context.Context, token string) (models.Identity, error)
}

type applicationService interface {
	Apply(ctx context.Context, jobID string, candidate models.Account,
		coverLetter string, resumeName string, resume io.Reader) error
}

type jobService interface {
	Create(ctx context.Context, employerID string, draft models.JobDraft) (*models.Job, error)
	Delete(ctx context.Context, employerID string, jobID string) error
}

type Repositories struct {
	Jobs         jobReader
	Applications applicationReader
}

type Services struct {
	Sessions     sessionService
	Applications applicationService
	Jobs         jobService
}

type CookieSettings struct {
	Name   string
	Secure bool
	TTL    time.Duration
}

type Server struct {
	engine       *gin.Engine
	httpServer   *http.Server
	repositories Repositories
	services     Services
	cookie       CookieSettings
}

func NewServer(address string, repositories Repositories, services Services, cookie CookieSettings) (*Server, error) {

	if repositories.Jobs == nil {
		return nil, errors.New("job repository is nil")
	}
	if repositories.Applications == nil {
		return nil, errors.New("application repository is nil")
	}
	if services.Sessions == nil {
		return nil, errors.New("session service is nil")
	}
	if services.Applications == nil {
		return nil, errors.New("application service is nil")
	}
	if services.Jobs == nil {
		return nil, errors.New("job service is nil")
	}
	if cookie.Name == "" {
		return nil, errors.New("cookie name is empty")
	}
	if cookie.TTL <= 0 {
		return nil, errors.New("cookie ttl must be greater than zero")
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	s := &Server{
		engine:       engine,
		repositories: repositories,
		services:     services,
		cookie:       cookie,
		httpServer: &http.Server{
			Addr:         address,
			Handler:      engine,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
	}
	s.routes()
	return s, nil
}

func (s *Server) routes() {

	s.engine.Use(s.observeRequest(), s.resolveIdentity())

	s.engine.GET("/", s.handleHome)
	s.engine.GET("/session", s.handleSession)

	s.engine.POST("/auth/signup", s.handleSignUp)
	s.engine.POST("/auth/signin", s.handleSignIn)
	s.engine.POST("/auth/signout", s.handleSignOut)

	s.engine.GET("/jobs", s.handleListJobs)
	s.engine.GET("/jobs/:id", s.handleJobDetail)
	s.engine.POST("/jobs", s.requireRole(models.RoleEmployer), s.handleCreateJob)
	s.engine.DELETE("/jobs/:id", s.requireRole(models.RoleEmployer), s.handleDeleteJob)
	s.engine.POST("/jobs/:id/apply", s.requireRole(models.RoleCandidate), s.handleApply)

	s.engine.GET("/candidate/dashboard", s.requireRole(models.RoleCandidate), s.handleCandidateDashboard)
	s.engine.GET("/employer/dashboard", s.requireRole(models.RoleEmployer), s.handleEmployerDashboard)
}

func (s *Server) Run() {
	log.Infof("http server listening on %v", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("http server failed: %v", err)
	}
}

func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
