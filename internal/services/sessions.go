package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/asaskevich/EventBus"
	supa "github.com/nedpals/supabase-go"
	"github.com/openhire/jobboard/internal/domain/models"
	"github.com/openhire/jobboard/internal/events"
	"github.com/openhire/jobboard/internal/logger"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// ErrProfileMissing means the account authenticated but has no profile row:
// sign-up never completed. Callers must not confuse it with a role mismatch.
var ErrProfileMissing = errors.New("account has no profile")

type authClient interface {
	SignUp(ctx context.Context, credentials supa.UserCredentials) (*supa.User, error)
	SignIn(ctx context.Context, credentials supa.UserCredentials) (*supa.AuthenticatedDetails, error)
	SignOut(ctx context.Context, userToken string) error
}

type sessionRepository interface {
	Add(ctx context.Context, session models.Session) error
	GetByToken(ctx context.Context, token string) (*models.Session, error)
	Remove(ctx context.Context, token string) error
}

type profileRepository interface {
	GetRole(ctx context.Context, accountID string) (models.Role, error)
}

// SessionService owns the browser-session lifecycle: it exchanges
// credentials with the hosted auth service, keeps a local cookie-token to
// backend-token mapping, and broadcasts sign-in/sign-out events on the bus.
type SessionService struct {
	auth     authClient
	sessions sessionRepository
	profiles profileRepository
	bus      EventBus.Bus
	ttl      time.Duration
}

func NewSessionService(auth authClient, sessions sessionRepository, profiles profileRepository,
	bus EventBus.Bus, ttl time.Duration) (*SessionService, error) {

	if auth == nil {
		return nil, errors.New("auth client is nil")
	}
	if sessions == nil {
		return nil, errors.New("session repository is nil")
	}
	if profiles == nil {
		return nil, errors.New("profile repository is nil")
	}
	if bus == nil {
		return nil, errors.New("bus is nil")
	}
	if ttl <= 0 {
		return nil, errors.New("session ttl must be greater than zero")
	}

	return &SessionService{auth: auth, sessions: sessions, profiles: profiles, bus: bus, ttl: ttl}, nil
}

// SignUp creates the backend account with the requested role in its user
// metadata. The profile row itself is created externally at signup.
func (s *SessionService) SignUp(ctx context.Context, email string, password string, role models.Role) error {

	_, err := s.auth.SignUp(ctx, supa.UserCredentials{
		Email:    email,
		Password: password,
		Data:     map[string]interface{}{"role": string(role)},
	})
	if err != nil {
		return errors.Wrap(err, "sign-up rejected")
	}
	return nil
}

func (s *SessionService) SignIn(ctx context.Context, email string, password string) (*models.Session, error) {

	details, err := s.auth.SignIn(ctx, supa.UserCredentials{Email: email, Password: password})
	if err != nil {
		return nil, errors.Wrap(err, "sign-in rejected")
	}

	role, err := s.profiles.GetRole(ctx, details.User.ID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, ErrProfileMissing
		}
		return nil, err
	}

	session := models.Session{
		Token:        newSessionToken(),
		AccountID:    details.User.ID,
		Email:        details.User.Email,
		Role:         role,
		AccessToken:  details.AccessToken,
		RefreshToken: details.RefreshToken,
		ExpiresAt:    time.Now().Add(s.ttl),
	}

	if err := s.sessions.Add(ctx, session); err != nil {
		return nil, errors.Wrap(err, "failed to persist session")
	}

	s.bus.Publish(events.SessionChangedTopic, events.SessionChanged{
		Kind:      events.SignedIn,
		AccountID: session.AccountID,
	})
	return &session, nil
}

// SignOut terminates the session on the auth service and locally. Callers
// must redirect afterward.
func (s *SessionService) SignOut(ctx context.Context, token string) error {

	session, err := s.sessions.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil
		}
		return err
	}

	if err := s.auth.SignOut(ctx, session.AccessToken); err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeAuth).
			Errorf("backend sign-out failed for account %v: %v", session.AccountID, err)
	}

	if err := s.sessions.Remove(ctx, token); err != nil {
		return errors.Wrap(err, "failed to remove session")
	}

	s.bus.Publish(events.SessionChangedTopic, events.SessionChanged{
		Kind:      events.SignedOut,
		AccountID: session.AccountID,
	})
	return nil
}

// Current resolves a cookie token into an Identity. Unknown and expired
// tokens are Anonymous, not errors; expired rows are removed on sight.
func (s *SessionService) Current(ctx context.Context, token string) (models.Identity, error) {

	if token == "" {
		return models.Anonymous(), nil
	}

	session, err := s.sessions.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return models.Anonymous(), nil
		}
		return models.Anonymous(), err
	}

	if session.Expired(time.Now()) {
		if err := s.sessions.Remove(ctx, token); err != nil {
			log.WithField(logger.ErrorTypeField, logger.ErrorTypeSessionStore).
				Errorf("failed to remove expired session: %v", err)
		}
		return models.Anonymous(), nil
	}

	account := models.Account{ID: session.AccountID, Email: session.Email, AccessToken: session.AccessToken}
	return models.IdentityFor(session.Role, account), nil
}

// SubscribeChanges registers a handler for sign-in/sign-out events. The
// returned unsubscribe func must be called on teardown so handlers don't
// outlive their owner.
func (s *SessionService) SubscribeChanges(handler func(events.SessionChanged)) (func(), error) {

	if err := s.bus.Subscribe(events.SessionChangedTopic, handler); err != nil {
		return nil, err
	}

	return func() {
		if err := s.bus.Unsubscribe(events.SessionChangedTopic, handler); err != nil {
			log.Errorf("failed to unsubscribe session handler: %v", err)
		}
	}, nil
}

func newSessionToken() string {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		log.Fatalf("failed to generate session token: %v", err)
	}
	return hex.EncodeToString(buf)
}
