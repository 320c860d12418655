package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kutbudev/alarmclock/api/schema"
	"github.com/kutbudev/alarmclock/pkg/models"
)

// Signup creates an account and logs it in.
func (h *Handler) Signup(c *gin.Context) {
	var req schema.CredentialsRequest
	if err := schema.Bind(c, &req); err != nil {
		h.respondError(c, err)
		return
	}

	user, session, err := h.auth.Signup(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.setSessionCookie(c, session)
	c.JSON(http.StatusCreated, gin.H{
		"message": "Account created successfully",
		"user_id": user.ID,
		"token":   session.Token,
	})
}

// Login opens a session for valid credentials.
func (h *Handler) Login(c *gin.Context) {
	var req schema.CredentialsRequest
	if err := schema.Bind(c, &req); err != nil {
		h.respondError(c, err)
		return
	}

	user, session, err := h.auth.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.setSessionCookie(c, session)
	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"user_id": user.ID,
		"token":   session.Token,
	})
}

// Logout ends the caller's session.
func (h *Handler) Logout(c *gin.Context) {
	if err := h.auth.Logout(c.Request.Context(), c.GetString(sessionTokenKey)); err != nil {
		h.respondError(c, err)
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.CookieName, "", -1, "/", "", h.cookie.CookieSecure, true)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

func (h *Handler) setSessionCookie(c *gin.Context, s *models.Session) {
	maxAge := int(time.Until(s.ExpiresAt).Seconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.CookieName, s.Token, maxAge, "/", "", h.cookie.CookieSecure, true)
}
