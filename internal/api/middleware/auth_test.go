package middleware_test

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wordwell/wordwell-api/internal/api/middleware"
	"github.com/wordwell/wordwell-api/internal/api/shared"
	"github.com/wordwell/wordwell-api/internal/mocks"
	"github.com/wordwell/wordwell-api/internal/platform/logger"
	"github.com/wordwell/wordwell-api/internal/service/auth"
)

func TestAuthenticate(t *testing.T) {
	userID := uuid.New()

	runRequest := func(jwtService *mocks.MockJWTService, authHeader string) (*httptest.ResponseRecorder, uuid.UUID, bool) {
		var (
			ctxUserID uuid.UUID
			reached   bool
		)
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reached = true
			ctxUserID, _ = r.Context().Value(shared.UserIDContextKey).(uuid.UUID)
			w.WriteHeader(http.StatusOK)
		})

		mw := middleware.NewAuthMiddleware(jwtService)
		req := httptest.NewRequest(http.MethodGet, "/cards", nil)
		if authHeader != "" {
			req.Header.Set("Authorization", authHeader)
		}
		rr := httptest.NewRecorder()
		mw.Authenticate(next).ServeHTTP(rr, req)
		return rr, ctxUserID, reached
	}

	t.Run("valid token passes user ID to handler", func(t *testing.T) {
		jwtService := &mocks.MockJWTService{
			Claims: &auth.Claims{UserID: userID, TokenType: "access"},
		}

		rr, ctxUserID, reached := runRequest(jwtService, "Bearer valid-token")
		require.True(t, reached)
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, userID, ctxUserID)
	})

	t.Run("missing header is unauthorized", func(t *testing.T) {
		rr, _, reached := runRequest(&mocks.MockJWTService{}, "")
		assert.False(t, reached)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("non-bearer header is unauthorized", func(t *testing.T) {
		rr, _, reached := runRequest(&mocks.MockJWTService{}, "Basic dXNlcjpwYXNz")
		assert.False(t, reached)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("expired token is unauthorized", func(t *testing.T) {
		jwtService := &mocks.MockJWTService{ValidateErr: auth.ErrExpiredToken}
		rr, _, reached := runRequest(jwtService, "Bearer stale-token")
		assert.False(t, reached)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("refresh token is rejected on access routes", func(t *testing.T) {
		jwtService := &mocks.MockJWTService{ValidateErr: auth.ErrWrongTokenType}
		rr, _, reached := runRequest(jwtService, "Bearer refresh-token")
		assert.False(t, reached)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestTraceMiddleware(t *testing.T) {
	var logBuf strings.Builder
	capture := slog.New(slog.NewTextHandler(&logBuf, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	oldLogger := slog.Default()
	slog.SetDefault(capture)
	defer slog.SetDefault(oldLogger)

	var traceID string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID = shared.GetTraceID(r.Context())

		// The context carries a trace-scoped logger, so downstream log
		// lines are tagged with the trace ID.
		logger.FromContext(r.Context()).Info("handling request")
	})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	middleware.TraceMiddleware(next).ServeHTTP(httptest.NewRecorder(), req)

	assert.Len(t, traceID, 32)
	assert.Contains(t, logBuf.String(), "handling request")
	assert.Contains(t, logBuf.String(), "trace_id="+traceID)
}

func TestGetUserID(t *testing.T) {
	userID := uuid.New()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(context.WithValue(req.Context(), shared.UserIDContextKey, userID))

	got, ok := middleware.GetUserID(req)
	assert.True(t, ok)
	assert.Equal(t, userID, got)

	_, ok = middleware.GetUserID(httptest.NewRequest(http.MethodGet, "/", nil))
	assert.False(t, ok)
}
