package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/joho/godotenv"
	supa "github.com/nedpals/supabase-go"
	"github.com/openhire/jobboard/internal/clients/storage"
	"github.com/openhire/jobboard/internal/config"
	"github.com/openhire/jobboard/internal/events"
	"github.com/openhire/jobboard/internal/logger"
	"github.com/openhire/jobboard/internal/metrics"
	"github.com/openhire/jobboard/internal/repositories"
	"github.com/openhire/jobboard/internal/services"
	"github.com/openhire/jobboard/internal/web"
	log "github.com/sirupsen/logrus"
)

func main() {

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(); err != nil {
		log.Info("No .env file found, relying on environment")
	}

	cfg := config.Get()

	logger.Setup(cfg.Logger)
	defer logger.Cleanup()

	metrics.StartMetricsServer(cfg.Server.MetricsAddress)

	backend := supa.CreateClient(cfg.Backend.URL, cfg.Backend.ServiceKey)

	storageClient := storage.NewClient(cfg.Backend.URL, cfg.Backend.ServiceKey)
	if cfg.Backend.StorageRequestsPerSecond > 0 {
		storageClient.SetRateLimit(cfg.Backend.StorageRequestsPerSecond)
	}

	dbContext, err := repositories.NewDbContext(cfg.Session.ConnectionString)
	if err != nil {
		log.Fatalf("can't create session db context: %v", err)
	}
	defer dbContext.Close()

	err = dbContext.Migrate()
	if err != nil {
		log.Fatalf("can't migrate session db context: %v", err)
	}

	profiles := repositories.NewCachedProfiles(repositories.NewProfilesRepository(backend))
	jobs := repositories.NewJobsRepository(backend)
	applications := repositories.NewApplicationsRepository(backend)
	sessions := repositories.NewSessionsRepository(dbContext.DB)

	bus := EventBus.New()

	sessionService, err := services.NewSessionService(backend.Auth, sessions, profiles, bus, cfg.Session.TTL)
	if err != nil {
		log.Fatalf("can't create session service: %v", err)
	}

	// Role lookups are cached; drop the entry whenever its session ends so a
	// later sign-in re-reads the profile row.
	unsubscribe, err := sessionService.SubscribeChanges(func(event events.SessionChanged) {
		if event.Kind == events.SignedOut {
			profiles.Invalidate(event.AccountID)
		}
	})
	if err != nil {
		log.Fatalf("can't subscribe to session changes: %v", err)
	}
	defer unsubscribe()

	applicationService, err := services.NewApplicationService(storageClient, applications, cfg.Backend.ResumeBucket)
	if err != nil {
		log.Fatalf("can't create application service: %v", err)
	}

	jobService, err := services.NewJobService(jobs)
	if err != nil {
		log.Fatalf("can't create job service: %v", err)
	}

	cleaner, err := services.NewSessionsCleaner(sessions)
	if err != nil {
		log.Fatalf("can't create sessions cleaner: %v", err)
	}
	defer cleaner.Stop()

	server, err := web.NewServer(cfg.Server.Address,
		web.Repositories{Jobs: jobs, Applications: applications},
		web.Services{Sessions: sessionService, Applications: applicationService, Jobs: jobService},
		web.CookieSettings{Name: cfg.Server.CookieName, Secure: cfg.Server.CookieSecure, TTL: cfg.Session.TTL})
	if err != nil {
		log.Fatalf("can't create web server: %v", err)
	}
	go server.Run()

	<-ctx.Done()

	log.Info("Shutting down services...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Stop(shutdownCtx); err != nil {
		log.Errorf("http server shutdown failed: %v", err)
	}
	log.Info("Services stopped.")
}
