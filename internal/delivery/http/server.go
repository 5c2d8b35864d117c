package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"go.uber.org/zap"

	"github.com/address-verification/internal/config"
	"github.com/address-verification/internal/delivery/http/handler"
	"github.com/address-verification/internal/delivery/http/middleware"
)

// Server hosts the public form API and the token-guarded admin API on one
// Fiber app.
type Server struct {
	app    *fiber.App
	config *config.Config
	logger *zap.Logger

	publicHandler     *handler.PublicHandler
	addressHandler    *handler.AddressHandler
	changeHandler     *handler.ChangeHandler
	personHandler     *handler.PersonHandler
	definitionHandler *handler.DefinitionHandler
}

func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	publicHandler *handler.PublicHandler,
	addressHandler *handler.AddressHandler,
	changeHandler *handler.ChangeHandler,
	personHandler *handler.PersonHandler,
	definitionHandler *handler.DefinitionHandler,
) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "Address Verification Service",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: customErrorHandler(logger),
	})

	s := &Server{
		app:               app,
		config:            cfg,
		logger:            logger,
		publicHandler:     publicHandler,
		addressHandler:    addressHandler,
		changeHandler:     changeHandler,
		personHandler:     personHandler,
		definitionHandler: definitionHandler,
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

func (s *Server) setupMiddlewares() {
	s.app.Use(middleware.Recovery())
	s.app.Use(middleware.Logger(s.logger))
	s.app.Use(middleware.CORS())
	s.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
}

func (s *Server) setupRoutes() {
	s.app.Get("/swagger/*", fiberSwagger.WrapHandler)

	s.app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	api := s.app.Group("/api")

	// Public surface: no auth, reachable by anyone holding a reference
	// code. /submit and /track-click must come before the /:code catch-all.
	public := api.Group("/public")
	public.Post("/submit", s.publicHandler.Submit)
	public.Post("/track-click/:code", s.publicHandler.TrackClick)
	public.Get("/:code", s.publicHandler.Lookup)

	// Address pickers are public too: the form needs them.
	addresses := api.Group("/addresses")
	addresses.Get("/provinces", s.addressHandler.Provinces)
	addresses.Get("/districts/:provinceId", s.addressHandler.Districts)
	addresses.Get("/neighborhoods/:districtId", s.addressHandler.Neighborhoods)

	admin := middleware.AdminAuth(s.config.Admin.Token)
	addresses.Post("/sync", admin, s.addressHandler.Sync)

	changes := api.Group("/changes")
	// The pending count feeds the navbar badge, so it stays open.
	changes.Get("/pending-count", s.changeHandler.PendingCount)
	changes.Get("/", admin, s.changeHandler.List)
	changes.Post("/:id/approve", admin, s.changeHandler.Approve)
	changes.Post("/:id/reject", admin, s.changeHandler.Reject)

	persons := api.Group("/persons", admin)
	persons.Get("/", s.personHandler.List)
	persons.Post("/", s.personHandler.Create)
	persons.Get("/:id", s.personHandler.Get)
	persons.Put("/:id", s.personHandler.Update)
	persons.Delete("/:id", s.personHandler.Delete)

	definitions := api.Group("/definitions", admin)
	definitions.Get("/list", s.definitionHandler.List)
	definitions.Post("/add", s.definitionHandler.Add)
	definitions.Delete("/:placeId", s.definitionHandler.Delete)
}

func (s *Server) Start() error {
	addr := s.config.GetServerAddr()
	s.logger.Info("Starting HTTP server", zap.String("address", addr))
	return s.app.Listen(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.app.ShutdownWithContext(ctx)
}

// App exposes the underlying Fiber app for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

func customErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError

		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
		}

		logger.Error("HTTP Error",
			zap.String("path", c.Path()),
			zap.Int("status", code),
			zap.Error(err),
		)

		return c.Status(code).JSON(fiber.Map{
			"error": fiber.Map{
				"code":    "INTERNAL_SERVER_ERROR",
				"message": err.Error(),
			},
		})
	}
}
