package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/campusmatch/Backend-Study-Match/src/controllers"
	"github.com/campusmatch/Backend-Study-Match/src/middleware"
)

// ConnectionRoutes registers the connection-request workflow under
// /api/user/connections.
func ConnectionRoutes(app *fiber.App, connections *controllers.ConnectionController, auth *middleware.AuthMiddleware) {
	api := app.Group("/api/user/connections", auth.Protect)

	api.Post("/request", connections.SendRequest)
	api.Post("/respond", connections.Respond)
	api.Get("/", connections.GetConnections)
	api.Get("/pending", connections.GetPending)
}
