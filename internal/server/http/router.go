// Package http assembles the fiber application that serves the Credential
// Store REST API under /api.
package http

import (
	"errors"

	"github.com/dmitrijs2005/lifemgmt/internal/logging"
	"github.com/dmitrijs2005/lifemgmt/internal/server/http/handlers"
	"github.com/dmitrijs2005/lifemgmt/internal/server/http/middleware"
	"github.com/dmitrijs2005/lifemgmt/internal/server/http/presenter"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Register wires all HTTP routes onto the given fiber app.
func Register(app *fiber.App, auth *handlers.AuthHandler, authMW fiber.Handler) {
	api := app.Group("/api")

	a := api.Group("/auth")
	a.Post("/register", auth.Register)
	a.Post("/login", auth.Login)
	a.Post("/forgot-password", auth.ForgotPassword)
	a.Post("/reset-password", auth.ResetPassword)
	a.Post("/logout", authMW, auth.Logout)
	a.Get("/me", authMW, auth.Me)
	a.Get("/verify", authMW, auth.Verify)
}

// Service is everything the API needs from the account layer.
type Service interface {
	handlers.UserService
	middleware.Authenticator
}

// New builds the fiber app with request logging, Prometheus metrics on
// GET /metrics and an error handler that keeps the {message} shape for every
// failure, unknown routes included. Each app gets its own registry.
func New(svc Service, logger logging.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "lifemgmt",
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler(logger),
	})

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := middleware.NewMetrics(registry)

	app.Use(middleware.NewRequestLogger(logger))
	app.Use(metrics.Handler())

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	Register(app,
		handlers.NewAuthHandler(svc, logger),
		middleware.NewAuthMiddleware(svc, logger),
	)

	return app
}

func errorHandler(logger logging.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return presenter.Error(c, fe.Code, fe.Message)
		}
		logger.Error(c.UserContext(), "unhandled error", "error", err)
		return presenter.Error(c, fiber.StatusInternalServerError, handlers.MsgInternal)
	}
}
