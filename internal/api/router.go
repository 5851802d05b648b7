package api

import (
	"legaldesk/docs"
	"legaldesk/internal/api/handlers"
	"legaldesk/pkg/auth"
	"legaldesk/pkg/config"
	"legaldesk/pkg/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

type Handlers struct {
	Auth     *handlers.AuthHandler
	Request  *handlers.RequestHandler
	Document *handlers.DocumentHandler
	// File is nil unless the local object store is in use.
	File *handlers.FileHandler
}

func SetupRouter(h Handlers, jwtManager *auth.JWTManager, serverCfg *config.ServerConfig, appLogger *zap.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "legaldesk",
		BodyLimit:    serverCfg.BodyLimit,
		ReadTimeout:  serverCfg.ReadTimeout,
		WriteTimeout: serverCfg.WriteTimeout,
		ErrorHandler: errorHandler(appLogger),
	})

	// Middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))
	app.Use(logger.New())

	_ = docs.SwaggerInfo
	app.Get("/swagger/*", swagger.HandlerDefault)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	if h.File != nil {
		app.Get("/files", h.File.ServeFile)
	}

	// Auth routes (public)
	authGroup := app.Group("/user/auth")
	authGroup.Post("/register", h.Auth.Register)
	authGroup.Post("/login", h.Auth.Login)
	authGroup.Post("/refresh", h.Auth.RefreshToken)

	// Protected routes
	protected := app.Group("/api/v1", middleware.AuthMiddleware(jwtManager, appLogger))
	protected.Get("/me", h.Auth.Me)

	requests := protected.Group("/requests")
	requests.Post("", h.Request.CreateRequest)
	requests.Get("", h.Request.ListRequests)
	requests.Get("/:id", h.Request.GetRequest)
	requests.Post("/:id/submit", h.Request.SubmitRequest)
	requests.Post("/:id/claim", h.Request.ClaimRequest)
	requests.Post("/:id/close", h.Request.CloseRequest)
	requests.Post("/:id/documents", h.Document.UploadDocument)
	requests.Get("/:id/documents", h.Document.ListDocuments)

	documents := protected.Group("/documents")
	documents.Get("/url", h.Document.ResolveURL)
	documents.Delete("/:id", h.Document.DeleteDocument)

	return app
}
