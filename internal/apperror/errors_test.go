package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", Validation("bad %s", "input"), http.StatusBadRequest},
		{"unauthorized", Unauthorized("no token"), http.StatusUnauthorized},
		{"forbidden", Forbidden("nope"), http.StatusForbidden},
		{"not found", NotFound("missing"), http.StatusNotFound},
		{"conflict", Conflict("dup", nil), http.StatusConflict},
		{"rate limited", New(ErrRateLimited, "slow down", nil), http.StatusTooManyRequests},
		{"internal", Internal(errors.New("db down")), http.StatusInternalServerError},
		{"wrapped", fmt.Errorf("ctx: %w", NotFound("missing")), http.StatusNotFound},
		{"plain", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusCode(tt.err))
		})
	}
}

func TestMessage_HidesInternalDetails(t *testing.T) {
	err := Internal(errors.New("connection refused to 10.0.0.3"))
	assert.Equal(t, "internal server error", Message(err))
	assert.Contains(t, err.Error(), "connection refused")

	assert.Equal(t, "internal server error", Message(errors.New("raw")))
	assert.Equal(t, "exercise not found", Message(NotFound("exercise not found")))
}

func TestAppError_IsKind(t *testing.T) {
	err := Validation("sets must be >= 0")
	assert.True(t, errors.Is(err, ErrValidation))
	assert.False(t, errors.Is(err, ErrNotFound))
}
