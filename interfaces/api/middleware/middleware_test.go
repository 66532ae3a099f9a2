package middleware

import (
	"net/http/httptest"
	"testing"
	"time"

	"attendance-tasks/pkg/logger"
	"attendance-tasks/pkg/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "test-secret"

func newApp() *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler()})
	app.Use(RequestIDMiddleware())
	app.Get("/whoami", Protected(secret), func(c *fiber.Ctx) error {
		user, err := utils.GetUserFromContext(c)
		if err != nil {
			return err
		}
		return c.SendString(user.ID.String() + " " + logger.GetRequestID(c.UserContext()))
	})
	return app
}

func TestProtected(t *testing.T) {
	app := newApp()
	id := uuid.New()
	good, err := utils.GenerateToken(id, "ana@example.com", secret, time.Hour)
	require.NoError(t, err)
	expired, err := utils.GenerateToken(id, "", secret, -time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"no header", "", fiber.StatusUnauthorized},
		{"wrong scheme", "Basic " + good, fiber.StatusUnauthorized},
		{"expired", "Bearer " + expired, fiber.StatusUnauthorized},
		{"forged", "Bearer " + good + "x", fiber.StatusUnauthorized},
		{"valid", "Bearer " + good, fiber.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/whoami", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}

func TestRequestID(t *testing.T) {
	app := newApp()
	token, err := utils.GenerateToken(uuid.New(), "", secret, time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set(RequestIDHeader, "req-123")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, "req-123", resp.Header.Get(RequestIDHeader))

	resp, err = app.Test(httptest.NewRequest("GET", "/missing", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get(RequestIDHeader))
}
