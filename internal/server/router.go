package server

import (
	"time"

	"virtboard/internal/logger"
	"virtboard/internal/server/handlers"
	guestsHandlers "virtboard/internal/server/handlers/guests"
	"virtboard/internal/server/handlers/httperr"
	"virtboard/internal/server/handlers/session"
	"virtboard/internal/server/middlewares"
	guestsServices "virtboard/internal/services/guests"
	"virtboard/internal/utils/crypto"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

const rateLimitExpiration = 1 * time.Minute

// setupRouter configures and returns a Fiber app with all routes
func (s *Server) setupRouter(svc *guestsServices.Service) *fiber.App {
	// Initialize validator and register password validation
	v := validator.New()
	if err := crypto.RegisterPasswordValidator(v); err != nil {
		logger.L().Error("failed to register password validator", "err", err)
		panic(err)
	}

	app := fiber.New(fiber.Config{
		ErrorHandler:          httperr.Handler,
		Immutable:             true, // make Fiber copy all request-derived strings
		DisableStartupMessage: true,
	})

	// Global middlewares
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Content-Type, Authorization",
	}))

	if s.cfg.RouteMetricsEnabled {
		middlewares.AttachMetrics(app)
	}

	// Health check endpoint, outside the versioned API and never authenticated
	app.Get("/healthz", handlers.Healthz(s.storePing()))

	var v1 fiber.Router
	if s.cfg.RequestLoggingEnabled {
		v1 = app.Group("/api/v1", fiberlogger.New())
		logger.L().Info("request logging enabled")
	} else {
		v1 = app.Group("/api/v1")
	}

	limiterMW := limiter.New(limiter.Config{
		Max:        s.cfg.LoginRatePerMin,
		Expiration: rateLimitExpiration,
		LimitReached: func(c *fiber.Ctx) error {
			return httperr.Fail(httperr.ErrTooManyRequests)
		},
	})

	sessionH := session.NewHandlers(s.cfg, v)
	v1.Post("/login", limiterMW, sessionH.Login)

	authMW := middlewares.Auth(s.cfg)

	guestsH := guestsHandlers.NewHandlers(svc, v)
	guestsGrp := v1.Group("/guests", authMW)
	guestsGrp.Post("/", guestsH.Create)
	guestsGrp.Get("/", guestsH.List)
	guestsGrp.Get("/:name", guestsH.Get)
	guestsGrp.Patch("/:name", guestsH.Update)
	guestsGrp.Delete("/:name", guestsH.Delete)
	guestsGrp.Post("/:name/start", guestsH.Start)
	guestsGrp.Post("/:name/stop", guestsH.Stop)

	// Identity probe, handy for verifying credentials and middleware wiring
	v1.Get("/me", authMW, handlers.Me)

	return app
}
