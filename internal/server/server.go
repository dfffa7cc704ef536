// Package server assembles the fiber application: middleware, routes and error handling.
package server

import (
	"time"

	"syllabus-builder/internal/config"
	"syllabus-builder/internal/handler"
	"syllabus-builder/internal/middleware"
	"syllabus-builder/internal/service"
	"syllabus-builder/internal/validation"
	"syllabus-builder/internal/web"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
)

// Deps are the services the routes need.
type Deps struct {
	Courses  service.CourseService
	Sessions service.SessionService
	Renderer *web.Renderer
}

// New builds the application.
func New(cfg *config.Config, deps Deps) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "syllabus-builder",
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		BodyLimit:    cfg.Server.BodyLimit,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(recover.New())
	app.Use(middleware.RequestLogger())
	app.Use(cors.New(cors.Config{
		AllowOrigins:  "*",
		AllowMethods:  "GET,POST,DELETE,OPTIONS",
		AllowHeaders:  "Origin,Content-Type,Accept,Authorization",
		ExposeHeaders: middleware.SessionTokenHeader + ",Content-Disposition",
		MaxAge:        300,
	}))

	validator := validation.NewValidator(cfg.Generation.DefaultWeeks, cfg.Generation.MaxWeeks)
	validationMiddleware := middleware.NewValidationMiddleware(validator)
	courseHandler := handler.NewCourseHandler(deps.Courses)
	uiHandler := handler.NewUIHandler(deps.Courses, deps.Renderer, validator, cfg.Generation.MaxWeeks)

	session := middleware.Session(deps.Sessions, cfg.Session.CookieName)
	generateLimit := generationLimiter(cfg.RateLimit)

	app.Get("/healthz", courseHandler.Health)
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API group
	api := app.Group("/api", session)
	api.Post("/courses", generateLimit, courseHandler.GenerateCourse)
	api.Get("/courses/current", courseHandler.GetCurrentCourse)
	api.Delete("/courses/current", courseHandler.DeleteCurrentCourse)
	api.Get("/courses/current/export", courseHandler.ExportCourse)
	api.Get("/courses/current/weeks/:week/:tab", validationMiddleware.ValidateSelection(), courseHandler.GetWeekView)
	api.Get("/status", courseHandler.GetStatus)
	api.Get("/sample", courseHandler.GetSample)

	// HTML pages
	app.Get("/", session, validationMiddleware.SelectionOrRedirect("/"), uiHandler.Index)
	app.Post("/generate", session, generateLimit, uiHandler.Generate)
	app.Post("/reset", session, uiHandler.Reset)
	app.Get("/sample", session, uiHandler.Sample)

	return app
}

// generationLimiter bounds generation requests per client address. Sessions are issued
// on demand, so they cannot key the limit.
func generationLimiter(cfg config.RateLimitConfig) fiber.Handler {
	if cfg.Max <= 0 {
		return func(c *fiber.Ctx) error { return c.Next() }
	}
	window := cfg.Window
	if window <= 0 {
		window = time.Minute
	}
	return limiter.New(limiter.Config{
		Max:        cfg.Max,
		Expiration: window,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(middleware.ErrorResponse{
				Code:    "RATE_LIMITED",
				Message: "Too many generation requests. Please wait a moment and try again.",
				Status:  fiber.StatusTooManyRequests,
			})
		},
	})
}
