package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/campusmatch/Backend-Study-Match/src/lib"
	"github.com/campusmatch/Backend-Study-Match/src/models"
	"github.com/campusmatch/Backend-Study-Match/src/store"
)

// AuthMiddleware guards routes with JWT bearer auth and loads the
// authenticated user into the request context.
type AuthMiddleware struct {
	jwt   *lib.JWTManager
	store store.UserStore
}

func NewAuthMiddleware(jwt *lib.JWTManager, st store.UserStore) *AuthMiddleware {
	return &AuthMiddleware{jwt: jwt, store: st}
}

// Protect verifies the Authorization header, resolves the user and stores it
// under c.Locals("user"). Inactive accounts are rejected.
func (m *AuthMiddleware) Protect(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(lib.ErrorResponse("No token provided"))
	}

	token, ok := strings.CutPrefix(authHeader, "Bearer ")
	if !ok || token == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(lib.ErrorResponse("Invalid token format"))
	}

	claims, err := m.jwt.Verify(token)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(lib.ErrorResponse("Invalid token"))
	}

	userID, ok := claims["userId"].(string)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(lib.ErrorResponse("Invalid token"))
	}

	objectID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(lib.ErrorResponse("Invalid token"))
	}

	user, err := m.store.ByID(c.Context(), objectID)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(lib.ErrorResponse("User not found"))
	}
	if !user.IsActive {
		return c.Status(fiber.StatusUnauthorized).JSON(lib.ErrorResponse("Account is deactivated"))
	}

	user.Password = ""
	c.Locals("user", *user)

	return c.Next()
}

// RequireAdmin allows only admin users through. Must run after Protect.
func (m *AuthMiddleware) RequireAdmin(c *fiber.Ctx) error {
	user, ok := c.Locals("user").(models.User)
	if !ok || !user.IsAdmin() {
		return c.Status(fiber.StatusForbidden).JSON(lib.ErrorResponse("Admin access required"))
	}
	return c.Next()
}

// CurrentUser returns the user attached by Protect.
func CurrentUser(c *fiber.Ctx) models.User {
	user, _ := c.Locals("user").(models.User)
	return user
}
