package middleware

import (
	"Cook-App-Backend/domain"
	"Cook-App-Backend/internal/api/presenters"
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

type (
	// TokenVerifier turns a bearer token into verified claims.
	TokenVerifier interface {
		VerifyToken(ctx context.Context, token string) (domain.Claims, error)
	}

	// UserProvisioner resolves the claims' owner, creating it on first sight.
	UserProvisioner interface {
		GetOrCreateUser(ctx context.Context, claims domain.Claims) (domain.UserResponse, error)
	}

	Middleware interface {
		CORSMiddleware() fiber.Handler
		AuthMiddleware(verifier TokenVerifier, users UserProvisioner) fiber.Handler
		AdminMiddleware() fiber.Handler
	}

	middleware struct {
		allowOrigins string
		adminEmails  map[string]struct{}
	}
)

func NewMiddleware(allowOrigins string, adminEmails []string) Middleware {
	admins := make(map[string]struct{}, len(adminEmails))
	for _, e := range adminEmails {
		admins[strings.ToLower(strings.TrimSpace(e))] = struct{}{}
	}
	if allowOrigins == "" {
		allowOrigins = "*"
	}
	return &middleware{allowOrigins: allowOrigins, adminEmails: admins}
}

func (m *middleware) CORSMiddleware() fiber.Handler {
	return cors.New(cors.Config{
		AllowOrigins: m.allowOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
	})
}

// AuthMiddleware verifies the bearer token and stores the caller in Locals
// under "user_id", "email" and "display_id".
func (m *middleware) AuthMiddleware(verifier TokenVerifier, users UserProvisioner) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		token, ok := strings.CutPrefix(header, "Bearer ")
		token = strings.TrimSpace(token)
		if !ok || token == "" {
			return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedGetToken, domain.ErrTokenNotFound)
		}

		claims, err := verifier.VerifyToken(c.Context(), token)
		if err != nil {
			return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedTokenInvalid, err)
		}

		user, err := users.GetOrCreateUser(c.Context(), claims)
		if err != nil {
			return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedGetUser, err)
		}

		c.Locals("user_id", user.ID)
		c.Locals("email", user.Email)
		c.Locals("display_id", user.DisplayID)
		return c.Next()
	}
}

// AdminMiddleware must run after AuthMiddleware.
func (m *middleware) AdminMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		email, _ := c.Locals("email").(string)
		if _, ok := m.adminEmails[strings.ToLower(email)]; !ok {
			return presenters.ErrorResponse(c, fiber.StatusForbidden, domain.MessageUserNotAllowed, domain.ErrAdminOnly)
		}
		return c.Next()
	}
}
