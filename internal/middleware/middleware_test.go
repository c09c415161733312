package middleware

import (
	"Cook-App-Backend/domain"
	"context"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubVerifier map[string]domain.Claims

func (v stubVerifier) VerifyToken(_ context.Context, token string) (domain.Claims, error) {
	claims, ok := v[token]
	if !ok {
		return domain.Claims{}, domain.ErrTokenInvalid
	}
	return claims, nil
}

type stubUsers struct {
	fail bool
}

func (u stubUsers) GetOrCreateUser(_ context.Context, claims domain.Claims) (domain.UserResponse, error) {
	if u.fail {
		return domain.UserResponse{}, errors.New("users collection down")
	}
	return domain.UserResponse{ID: "id-" + claims.SubjectID, Email: claims.Email, DisplayID: "cook"}, nil
}

func newApp(users stubUsers) *fiber.App {
	m := NewMiddleware("", []string{" Chef@Example.com "})
	verifier := stubVerifier{
		"admin-token": {Email: "chef@example.com", SubjectID: "1"},
		"user-token":  {Email: "guest@example.com", SubjectID: "2"},
	}

	app := fiber.New()
	auth := m.AuthMiddleware(verifier, users)
	app.Get("/me", auth, func(c *fiber.Ctx) error {
		return c.SendString(c.Locals("user_id").(string) + " " + c.Locals("display_id").(string))
	})
	app.Get("/admin", auth, m.AdminMiddleware(), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})
	return app
}

func call(t *testing.T, app *fiber.App, path string, token string) int {
	t.Helper()
	req := httptest.NewRequest(fiber.MethodGet, path, nil)
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, token)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp.StatusCode
}

func TestAuthMiddleware(t *testing.T) {
	app := newApp(stubUsers{})

	assert.Equal(t, fiber.StatusUnauthorized, call(t, app, "/me", ""))
	assert.Equal(t, fiber.StatusUnauthorized, call(t, app, "/me", "user-token"))
	assert.Equal(t, fiber.StatusUnauthorized, call(t, app, "/me", "Bearer "))
	assert.Equal(t, fiber.StatusUnauthorized, call(t, app, "/me", "Bearer forged"))
	assert.Equal(t, fiber.StatusOK, call(t, app, "/me", "Bearer user-token"))
}

func TestAuthMiddlewareProvisioningFailure(t *testing.T) {
	app := newApp(stubUsers{fail: true})
	assert.Equal(t, fiber.StatusInternalServerError, call(t, app, "/me", "Bearer user-token"))
}

func TestAdminMiddleware(t *testing.T) {
	app := newApp(stubUsers{})

	assert.Equal(t, fiber.StatusForbidden, call(t, app, "/admin", "Bearer user-token"))
	assert.Equal(t, fiber.StatusNoContent, call(t, app, "/admin", "Bearer admin-token"))
}
