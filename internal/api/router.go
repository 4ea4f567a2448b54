package api

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	swagger "github.com/go-swagno/swagno-fiber/swagger"
	"github.com/saturnino-fabrica-de-software/facelive/internal/api/docs"
	"github.com/saturnino-fabrica-de-software/facelive/internal/api/handler"
	"github.com/saturnino-fabrica-de-software/facelive/internal/api/middleware"
	"github.com/saturnino-fabrica-de-software/facelive/internal/service"
	"github.com/saturnino-fabrica-de-software/facelive/internal/session"
)

// pathSession looks up a stored session by its auth token
const pathSession = "/api/sessions/:token"

// bodyLimit leaves room for the multipart envelope around the verify image
const bodyLimit = service.MaxVerifyImageSize + 1<<20

type Dependencies struct {
	SessionService handler.SessionService
	DB             handler.Pinger
	Version        string
	RateLimit      middleware.RateLimiterConfig
}

type Router struct {
	app         *fiber.App
	logger      *slog.Logger
	deps        *Dependencies
	rateLimiter *middleware.RateLimiter
}

func NewRouter(logger *slog.Logger, deps *Dependencies) *Router {
	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler(logger),
		AppName:      "Facelive Session Backend",
		BodyLimit:    bodyLimit,
	})

	return &Router{
		app:    app,
		logger: logger,
		deps:   deps,
	}
}

func (r *Router) Setup() {
	// Global middlewares; Recover sits inside Logger so panics are logged as 500s
	r.app.Use(requestid.New())
	r.app.Use(middleware.Logger(r.logger))
	r.app.Use(middleware.Recover(r.logger))
	r.app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,X-Request-ID",
	}))

	// Swagger documentation
	sw := docs.NewSwagger()
	swagger.SwaggerHandler(r.app, sw.MustToJson())

	var (
		db      handler.Pinger
		version string
	)
	if r.deps != nil {
		db = r.deps.DB
		version = r.deps.Version
	}

	healthHandler := handler.NewHealthHandler(db, version)
	r.app.Get("/health", healthHandler.Health)
	r.app.Get("/ready", healthHandler.Ready)

	// Session routes only exist once a service is wired
	if r.deps == nil || r.deps.SessionService == nil {
		return
	}

	r.rateLimiter = middleware.NewRateLimiter(r.deps.RateLimit)
	limit := r.rateLimiter.Handler()

	sessionHandler := handler.NewSessionHandler(r.deps.SessionService, r.logger)
	r.app.Post(session.PathDetectLiveness, limit, sessionHandler.CreateSession)
	r.app.Post(session.PathDetectLivenessWithVerify, limit, sessionHandler.CreateSessionWithVerify)
	r.app.Get(pathSession, limit, sessionHandler.GetSession)
}

func (r *Router) App() *fiber.App {
	return r.app
}

func (r *Router) Listen(addr string) error {
	return r.app.Listen(addr)
}

func (r *Router) Shutdown() error {
	// Stop rate limiter cleanup goroutine
	if r.rateLimiter != nil {
		r.rateLimiter.Stop()
	}

	return r.app.Shutdown()
}
