package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/kutbudev/alarmclock/api/schema"
	"github.com/kutbudev/alarmclock/internal/auth"
	"github.com/kutbudev/alarmclock/pkg/config"
	"github.com/kutbudev/alarmclock/pkg/models"
	"github.com/kutbudev/alarmclock/pkg/repository"
)

// Context keys shared with the api middleware.
const (
	RequestIDKey    = "request_id"
	userKey         = "user"
	sessionTokenKey = "session_token"
)

// Handler serves every endpoint from one set of repositories.
type Handler struct {
	repos  *repository.Repositories
	auth   *auth.Service
	cookie config.AuthConfig
	log    *slog.Logger
}

func New(repos *repository.Repositories, authSvc *auth.Service, cookie config.AuthConfig, log *slog.Logger) *Handler {
	if log == nil {
		log = slog.Default()
	}
	return &Handler{repos: repos, auth: authSvc, cookie: cookie, log: log}
}

// RequireSession rejects requests without a live session with a bare 401.
// The token is read from "Authorization: Bearer" or the session cookie.
func (h *Handler) RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := sessionToken(c, h.cookie.CookieName)
		user, err := h.auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			if !errors.Is(err, auth.ErrUnauthorized) {
				h.log.ErrorContext(c.Request.Context(), "session lookup failed",
					"error", err, RequestIDKey, c.GetString(RequestIDKey))
			}
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		c.Set(userKey, user)
		c.Set(sessionTokenKey, token)
		c.Next()
	}
}

// CurrentUser returns the user RequireSession attached to c.
func CurrentUser(c *gin.Context) *models.User {
	if v, ok := c.Get(userKey); ok {
		if u, ok := v.(*models.User); ok {
			return u
		}
	}
	return nil
}

func sessionToken(c *gin.Context, cookieName string) string {
	if header := c.GetHeader("Authorization"); header != "" {
		if token, ok := strings.CutPrefix(header, "Bearer "); ok {
			return strings.TrimSpace(token)
		}
	}
	if cookie, err := c.Cookie(cookieName); err == nil {
		return cookie
	}
	return ""
}

// respondError maps err onto a status code and a generic body.
func (h *Handler) respondError(c *gin.Context, err error) {
	var verr *schema.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request data", "details": verr.Fields})
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, repository.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "conflict"})
	case errors.Is(err, auth.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, auth.ErrUnauthorized):
		c.AbortWithStatus(http.StatusUnauthorized)
	default:
		h.log.ErrorContext(c.Request.Context(), "request failed",
			"error", err,
			"method", c.Request.Method,
			"route", c.FullPath(),
			RequestIDKey, c.GetString(RequestIDKey),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// paramID parses the ":id" path parameter.
func paramID(c *gin.Context) (uint, error) {
	raw := c.Param("id")
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, &schema.ValidationError{Fields: []schema.FieldError{
			{Field: "id", Message: "must be a positive integer"},
		}}
	}
	return uint(id), nil
}
