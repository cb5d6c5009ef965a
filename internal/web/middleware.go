package web

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/openhire/jobboard/internal/domain/models"
	"github.com/openhire/jobboard/internal/logger"
	"github.com/openhire/jobboard/internal/metrics"
	log "github.com/sirupsen/logrus"
)

const identityKey = "identity"

func (s *Server) observeRequest() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.RequestDuration.WithLabelValues(route, c.Request.Method).Observe(time.Since(start).Seconds())
	}
}

// resolveIdentity turns the session cookie into an Identity and hands it to
// the handler chain explicitly. There is no ambient session state: every
// handler reads the identity from its own request context.
func (s *Server) resolveIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {

		token, _ := c.Cookie(s.cookie.Name)

		identity, err := s.services.Sessions.Current(c.Request.Context(), token)
		if err != nil {
			log.WithField(logger.ErrorTypeField, logger.ErrorTypeSessionStore).
				Errorf("failed to resolve session: %v", err)
			identity = models.Anonymous()
		}

		c.Set(identityKey, identity)
		c.Next()
	}
}

func currentIdentity(c *gin.Context) models.Identity {
	value, exists := c.Get(identityKey)
	if !exists {
		return models.Anonymous()
	}
	return value.(models.Identity)
}

// requireRole gates a route. No session is AuthRequired (sign-in redirect);
// a session with the wrong role is AccessDenied (home redirect). The two are
// distinct failures and produce different notices.
func (s *Server) requireRole(role models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {

		identity := currentIdentity(c)

		if identity.IsAnonymous() {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"notice":   "Please sign in to continue",
				"redirect": "/auth",
			})
			return
		}

		current, _ := identity.Role()
		if current != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"notice":   accessDeniedNotice(role),
				"redirect": "/",
			})
			return
		}

		c.Next()
	}
}

func accessDeniedNotice(required models.Role) string {
	if required == models.RoleEmployer {
		return "Access denied. Employers only."
	}
	return "Access denied. Job seekers only."
}
