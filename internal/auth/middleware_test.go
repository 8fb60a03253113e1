package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequireAuth(t *testing.T) {
	tokens, err := NewJWTService(testSecret, time.Hour)
	require.NoError(t, err)
	mw := NewMiddleware(tokens)

	userID := uuid.New()
	valid, _, err := tokens.CreateToken(userID, "ann@x.com")
	require.NoError(t, err)

	expiredSvc, err := NewJWTService(testSecret, time.Hour)
	require.NoError(t, err)
	expiredSvc.now = func() time.Time { return time.Now().Add(-3 * time.Hour) }
	expired, _, err := expiredSvc.CreateToken(userID, "ann@x.com")
	require.NoError(t, err)

	tests := []struct {
		name    string
		header  string
		status  int
		message string
	}{
		{"missing header", "", http.StatusUnauthorized, "Authentication token is required"},
		{"wrong scheme", "Basic " + valid, http.StatusUnauthorized, "Invalid authorization header format"},
		{"no token", "Bearer", http.StatusUnauthorized, "Invalid authorization header format"},
		{"extra parts", "Bearer " + valid + " extra", http.StatusUnauthorized, "Invalid authorization header format"},
		{"garbage token", "Bearer garbage", http.StatusUnauthorized, "Invalid or expired token"},
		{"expired token", "Bearer " + expired, http.StatusUnauthorized, "Invalid or expired token"},
		{"valid token", "Bearer " + valid, http.StatusOK, ""},
		{"lowercase scheme", "bearer " + valid, http.StatusOK, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got Identity
			var called bool
			handler := mw.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
				got, _ = IdentityFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
			if tt.status == http.StatusOK {
				assert.True(t, called)
				assert.Equal(t, Identity{UserID: userID, Email: "ann@x.com"}, got)
				return
			}

			assert.False(t, called)
			var body map[string]any
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, false, body["success"])
			assert.Equal(t, "Unauthorized", body["status"])
			assert.Equal(t, tt.message, body["message"])
		})
	}
}

func TestGetUserIDFromContext(t *testing.T) {
	id := uuid.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	_, ok := GetUserIDFromContext(req.Context())
	assert.False(t, ok)

	ctx := WithIdentity(req.Context(), Identity{UserID: id, Email: "ann@x.com"})
	got, ok := GetUserIDFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, id, got)
}
