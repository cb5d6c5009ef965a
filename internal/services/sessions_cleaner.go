package services

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
)

type sessionCleanupRepository interface {
	RemoveExpired(ctx context.Context, expirationTime time.Time) (int64, error)
}

// SessionsCleaner sweeps expired session rows nightly so the local store
// doesn't accumulate tokens for browsers that never signed out.
type SessionsCleaner struct {
	sessions sessionCleanupRepository
	cron     *cron.Cron
}

func NewSessionsCleaner(sessions sessionCleanupRepository) (*SessionsCleaner, error) {

	if sessions == nil {
		return nil, errors.New("session repository is nil")
	}

	sc := &SessionsCleaner{
		sessions: sessions,
		cron:     cron.New(),
	}

	_, err := sc.cron.AddFunc("0 0 * * *", sc.cleanExpiredSessions)
	if err != nil {
		return nil, err
	}

	sc.cron.Start()
	log.Info("sessions cleaner started")
	return sc, nil
}

func (sc *SessionsCleaner) Stop() {
	sc.cron.Stop()
}

func (sc *SessionsCleaner) cleanExpiredSessions() {
	rowsAffected, err := sc.sessions.RemoveExpired(context.Background(), time.Now())
	if err != nil {
		log.Errorf("Failed to clean expired sessions: %v", err)
	} else {
		log.Infof("Expired sessions cleaned at %v, affected rows: %v", time.Now(), rowsAffected)
	}
}
