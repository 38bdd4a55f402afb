package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/campusmatch/Backend-Study-Match/src/controllers"
	"github.com/campusmatch/Backend-Study-Match/src/middleware"
)

// UserRoutes registers registration, auth, profile, matching and admin
// endpoints under /api/user.
func UserRoutes(app *fiber.App, users *controllers.UserController, auth *middleware.AuthMiddleware) {
	api := app.Group("/api/user")

	// Public routes
	api.Post("/register", users.Register)
	api.Post("/login", users.Login)

	// Protected routes
	api.Get("/profile", auth.Protect, users.GetProfile)
	api.Put("/profile", auth.Protect, users.UpdateProfile)
	api.Get("/get-matches", auth.Protect, users.GetMatches)

	// Admin routes
	api.Get("/users", auth.Protect, auth.RequireAdmin, users.ListUsers)
	api.Delete("/users/:userId", auth.Protect, auth.RequireAdmin, users.DeactivateUser)
}
