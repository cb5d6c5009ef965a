package web

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/openhire/jobboard/internal/domain/models"
	"github.com/openhire/jobboard/internal/logger"
	"github.com/openhire/jobboard/internal/services"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type signUpRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role" binding:"required"`
}

type signInRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (s *Server) handleSession(c *gin.Context) {

	identity := currentIdentity(c)

	view := SessionView{}
	if role, ok := identity.Role(); ok {
		view.SignedIn = true
		view.Email = identity.Account().Email
		view.Role = string(role)
	}

	c.JSON(http.StatusOK, view)
}

func (s *Server) handleSignUp(c *gin.Context) {

	var req signUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"notice": "Invalid sign-up form: " + err.Error()})
		return
	}

	role, err := models.ToRole(req.Role)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"notice": "Role must be employer or candidate"})
		return
	}

	if err := s.services.Sessions.SignUp(c.Request.Context(), req.Email, req.Password, role); err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeAuth).Errorf("sign-up failed: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"notice": "Error creating account"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"notice": "Account created! Sign in to continue.", "redirect": "/auth"})
}

func (s *Server) handleSignIn(c *gin.Context) {

	var req signInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"notice": "Invalid sign-in form: " + err.Error()})
		return
	}

	session, err := s.services.Sessions.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrProfileMissing) {
			c.JSON(http.StatusConflict, gin.H{"notice": "Your sign-up is incomplete. Please finish creating your profile."})
			return
		}
		c.JSON(http.StatusUnauthorized, gin.H{"notice": "Invalid email or password"})
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(s.cookie.Name, session.Token, int(s.cookie.TTL.Seconds()), "/", "", s.cookie.Secure, true)
	c.JSON(http.StatusOK, gin.H{"notice": "Signed in", "redirect": "/"})
}

func (s *Server) handleSignOut(c *gin.Context) {

	token, _ := c.Cookie(s.cookie.Name)
	if token != "" {
		if err := s.services.Sessions.SignOut(c.Request.Context(), token); err != nil {
			log.WithField(logger.ErrorTypeField, logger.ErrorTypeAuth).Errorf("sign-out failed: %v", err)
		}
	}

	c.SetCookie(s.cookie.Name, "", -1, "/", "", s.cookie.Secure, true)
	c.JSON(http.StatusOK, gin.H{"redirect": "/"})
}
