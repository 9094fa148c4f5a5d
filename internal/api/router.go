package api

import (
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"

	swagger "github.com/go-swagno/swagno-fiber/swagger"
	"github.com/saturnino-fabrica-de-software/emotion-api/internal/api/docs"
	"github.com/saturnino-fabrica-de-software/emotion-api/internal/api/handler"
	"github.com/saturnino-fabrica-de-software/emotion-api/internal/api/middleware"
	"github.com/saturnino-fabrica-de-software/emotion-api/internal/service"
)

type Options struct {
	BodyLimit   int
	DocsEnabled bool
	DocsHost    string
}

type Router struct {
	app     *fiber.App
	logger  *slog.Logger
	service *service.EmotionService
	opts    Options
}

func NewRouter(logger *slog.Logger, svc *service.EmotionService, opts Options) *Router {
	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler(logger),
		AppName:      "Emotion API",
		BodyLimit:    opts.BodyLimit,
	})

	return &Router{
		app:     app,
		logger:  logger,
		service: svc,
		opts:    opts,
	}
}

func (r *Router) Setup() {
	// Global middlewares
	r.app.Use(requestid.New(requestid.Config{
		Generator: uuid.NewString,
	}))
	// Logger wraps Recover so recovered panics are logged with their 500
	r.app.Use(middleware.Logger(r.logger))
	r.app.Use(middleware.Recover(r.logger))
	r.app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept",
	}))

	if r.opts.DocsEnabled {
		sw := docs.NewSwagger(r.opts.DocsHost)
		swagger.SwaggerHandler(r.app, sw.MustToJson())
	}

	// A nil *EmotionService must reach the handler as an untyped nil
	var providers handler.ProviderInfo
	if r.service != nil {
		providers = r.service
	}
	healthHandler := handler.NewHealthHandler(providers)
	r.app.Get("/health", healthHandler.Health)
	r.app.Get("/ready", healthHandler.Ready)

	emotionHandler := handler.NewEmotionHandler(r.service, r.logger)
	r.app.Post("/detect_emotion", emotionHandler.DetectEmotion)
}

func (r *Router) App() *fiber.App {
	return r.app
}

func (r *Router) Listen(addr string) error {
	return r.app.Listen(addr)
}

// Shutdown stops accepting connections and waits up to timeout for
// in-flight requests
func (r *Router) Shutdown(timeout time.Duration) error {
	return r.app.ShutdownWithTimeout(timeout)
}
