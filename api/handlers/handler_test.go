package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/kutbudev/alarmclock/api/schema"
	"github.com/kutbudev/alarmclock/internal/auth"
	"github.com/kutbudev/alarmclock/pkg/config"
	"github.com/kutbudev/alarmclock/pkg/repository"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRespondError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantBody string
	}{
		{
			name:     "validation",
			err:      &schema.ValidationError{Fields: []schema.FieldError{{Field: "title", Message: "is required"}}},
			wantCode: http.StatusBadRequest,
			wantBody: `{"error":"invalid request data","details":[{"field":"title","message":"is required"}]}`,
		},
		{
			name:     "wrapped not found",
			err:      fmt.Errorf("meeting: %w", repository.ErrNotFound),
			wantCode: http.StatusNotFound,
			wantBody: `{"error":"not found"}`,
		},
		{
			name:     "conflict",
			err:      fmt.Errorf("project: %w", repository.ErrConflict),
			wantCode: http.StatusConflict,
			wantBody: `{"error":"conflict"}`,
		},
		{
			name:     "bad credentials",
			err:      auth.ErrInvalidCredentials,
			wantCode: http.StatusUnauthorized,
			wantBody: `{"error":"invalid username or password"}`,
		},
		{
			name:     "internal",
			err:      errors.New("pq: connection refused on 10.0.0.3"),
			wantCode: http.StatusInternalServerError,
			wantBody: `{"error":"internal server error"}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var logs bytes.Buffer
			h := New(nil, nil, config.AuthConfig{CookieName: "session"}, slog.New(slog.NewTextHandler(&logs, nil)))

			rec := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(rec)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
			h.respondError(c, tt.err)

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
			if tt.wantCode == http.StatusInternalServerError {
				assert.Contains(t, logs.String(), "connection refused")
			} else {
				assert.Empty(t, logs.String())
			}
		})
	}
}

func TestSessionToken(t *testing.T) {
	tests := []struct {
		name   string
		header string
		cookie string
		want   string
	}{
		{"bearer", "Bearer abc", "", "abc"},
		{"bearer wins over cookie", "Bearer abc", "def", "abc"},
		{"cookie", "", "def", "def"},
		{"other scheme", "Basic xyz", "", ""},
		{"nothing", "", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				c.Request.Header.Set("Authorization", tt.header)
			}
			if tt.cookie != "" {
				c.Request.AddCookie(&http.Cookie{Name: "session", Value: tt.cookie})
			}
			assert.Equal(t, tt.want, sessionToken(c, "session"))
		})
	}
}

func TestParamID(t *testing.T) {
	for raw, ok := range map[string]bool{"1": true, "42": true, "0": false, "-3": false, "abc": false} {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Params = gin.Params{{Key: "id", Value: raw}}
		_, err := paramID(c)
		assert.Equal(t, ok, err == nil, raw)
	}
}
