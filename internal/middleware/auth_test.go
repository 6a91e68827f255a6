package middleware

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/example/clickpay/internal/utils"
)

func newAuthApp(secret string) *fiber.App {
	app := fiber.New()
	app.Get("/private", AuthMiddleware(secret), func(c *fiber.Ctx) error {
		id, ok := GetCurrentAdminID(c)
		if !ok {
			return fiber.ErrUnauthorized
		}
		return c.SendString(id.String())
	})
	return app
}

func TestAuthMiddleware(t *testing.T) {
	app := newAuthApp("secret")
	adminID := uuid.New()
	token, err := utils.GenerateToken("secret", adminID, time.Hour)
	require.NoError(t, err)
	otherToken, err := utils.GenerateToken("other", adminID, time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"missing header", "", fiber.StatusUnauthorized},
		{"wrong scheme", "Basic " + token, fiber.StatusUnauthorized},
		{"wrong secret", "Bearer " + otherToken, fiber.StatusUnauthorized},
		{"valid", "Bearer " + token, fiber.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/private", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			require.Equal(t, tt.status, resp.StatusCode)
		})
	}
}
