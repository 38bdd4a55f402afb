package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/campusmatch/Backend-Study-Match/src/config"
	"github.com/campusmatch/Backend-Study-Match/src/controllers"
	"github.com/campusmatch/Backend-Study-Match/src/lib"
	"github.com/campusmatch/Backend-Study-Match/src/middleware"
	"github.com/campusmatch/Backend-Study-Match/src/routes"
	"github.com/campusmatch/Backend-Study-Match/src/services"
	"github.com/campusmatch/Backend-Study-Match/src/store"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	cfg := config.MustLoad()

	ctx := context.Background()
	client, err := lib.ConnectDB(ctx, cfg.MongoURI)
	if err != nil {
		log.Error("database connection failed", "err", err)
		os.Exit(1)
	}
	defer client.Disconnect(ctx)
	log.Info("connected to mongodb")

	userStore := store.NewMongoStore(client.Database(cfg.DBName), log)
	if err := userStore.EnsureIndexes(ctx); err != nil {
		log.Error("creating indexes failed", "err", err)
		os.Exit(1)
	}

	hasher := lib.NewPasswordHasher(cfg.BcryptCost)
	jwtManager := lib.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)
	validate := validator.New()

	userService := services.NewUserService(userStore, hasher, log)
	matchService := services.NewMatchService(userStore, log)
	connectionService := services.NewConnectionService(userStore, log)

	userController := controllers.NewUserController(userService, matchService, jwtManager, validate)
	connectionController := controllers.NewConnectionController(connectionService, validate)
	authMiddleware := middleware.NewAuthMiddleware(jwtManager, userStore)

	app := fiber.New()

	app.Use(recover.New())
	app.Use(helmet.New())
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 15 * time.Minute,
	}))
	app.Use(cors.New())
	app.Use(requestid.New())
	app.Use(logger.New())

	routes.UserRoutes(app, userController, authMiddleware)
	routes.ConnectionRoutes(app, connectionController, authMiddleware)

	app.Get("/api/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status":    "OK",
			"message":   "Server is running",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(lib.ErrorResponse("Route not found"))
	})

	log.Info("server is running", "port", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Error("server stopped", "err", err)
		os.Exit(1)
	}
}
