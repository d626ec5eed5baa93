package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", NewValidationError("bad"), fiber.StatusBadRequest},
		{"unauthorized", ErrNotAuthenticated, fiber.StatusUnauthorized},
		{"invalid operation", NewInvalidOperationError("Cannot follow yourself"), fiber.StatusBadRequest},
		{"not found", NewNotFoundError("User"), fiber.StatusNotFound},
		{"conflict", NewConflictError("Username already exists", nil), fiber.StatusBadRequest},
		{"internal", NewInternalError(errors.New("boom")), fiber.StatusInternalServerError},
		{"wrapped app error", fmt.Errorf("outer: %w", NewNotFoundError("Post")), fiber.StatusNotFound},
		{"plain error", errors.New("boom"), fiber.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusFor(tt.err))
		})
	}
}

func TestAppError_UnwrapAndMessage(t *testing.T) {
	cause := errors.New("disk full")
	err := NewInternalError(cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "Internal server error: disk full", err.Error())
	assert.Equal(t, "User not found", NewNotFoundError("User").Error())
	assert.True(t, IsCode(err, CodeInternal))
	assert.False(t, IsCode(cause, CodeInternal))
}

func TestRespondWithError_HidesCause(t *testing.T) {
	app := fiber.New()
	app.Get("/app", func(c *fiber.Ctx) error {
		return RespondWithError(c, fiber.StatusInternalServerError, NewInternalError(errors.New("secret dsn")))
	})
	app.Get("/plain", func(c *fiber.Ctx) error {
		return RespondWithError(c, fiber.StatusInternalServerError, errors.New("raw driver error"))
	})

	for _, path := range []string{"/app", "/plain"} {
		resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, path, nil))
		require.NoError(t, err)
		body, _ := io.ReadAll(resp.Body)
		_ = resp.Body.Close()

		assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
		assert.NotContains(t, string(body), "secret")
		assert.NotContains(t, string(body), "raw driver")

		var out ErrorResponse
		require.NoError(t, json.Unmarshal(body, &out))
		assert.Equal(t, CodeInternal, out.Code)
	}
}

func TestViewer(t *testing.T) {
	assert.True(t, Anonymous().IsAnonymous())
	assert.True(t, NewViewer(nil).IsAnonymous())

	v := NewViewer(&User{ID: 7, Username: "alice"})
	assert.False(t, v.IsAnonymous())
	assert.Equal(t, uint(7), v.ID)
	assert.Equal(t, "alice", v.Username)
}
