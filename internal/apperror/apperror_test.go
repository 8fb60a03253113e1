package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorStatusAndName(t *testing.T) {
	tests := []struct {
		name   string
		err    *Error
		status int
		label  string
	}{
		{"validation", Validation("Email is required"), http.StatusBadRequest, "Bad Request"},
		{"bad request", BadRequest("Email already registered"), http.StatusBadRequest, "Bad Request"},
		{"unauthorized", Unauthorized("Invalid password"), http.StatusUnauthorized, "Unauthorized"},
		{"forbidden", Forbidden("nope"), http.StatusForbidden, "Forbidden"},
		{"not found", NotFound("User not found"), http.StatusNotFound, "Resource Not Found"},
		{"too many requests", TooManyRequests("slow down"), http.StatusTooManyRequests, "Too Many Requests"},
		{"internal", Internal(errors.New("db down")), http.StatusInternalServerError, "Internal Server Error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, tt.err.Status())
			assert.Equal(t, tt.label, tt.err.Name())
		})
	}
}

func TestInternalHidesCause(t *testing.T) {
	cause := errors.New("pq: connection refused")
	err := Internal(cause)

	assert.Equal(t, "Internal Server Error", err.Message)
	assert.ErrorIs(t, err, cause)
}

func TestAsUnwrapsWrappedErrors(t *testing.T) {
	wrapped := fmt.Errorf("login: %w", NotFound("User not found"))

	appErr, ok := As(wrapped)
	require.True(t, ok)
	assert.Equal(t, KindNotFound, appErr.Kind)
	assert.Equal(t, KindNotFound, KindOf(wrapped))
	assert.Equal(t, KindInternal, KindOf(errors.New("plain")))
}
