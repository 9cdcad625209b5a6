package main

import (
	"log/slog"
	"net/http"

	"github.com/ay0711/AI/internal/api"
	apiMiddleware "github.com/ay0711/AI/internal/api/middleware"
	"github.com/ay0711/AI/internal/api/shared"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// setupRouter creates and configures the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	// Apply standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.RequestLogger(&middleware.DefaultLogFormatter{
		Logger:  slog.NewLogLogger(app.logger.Handler(), slog.LevelInfo),
		NoColor: true,
	}))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(app.corsOptions()))
	r.Use(apiMiddleware.NewTraceMiddleware(app.logger))
	r.Use(middleware.RequestSize(shared.MaxRequestBodyBytes))
	r.Use(apiMiddleware.NewDeadlineMiddleware(app.config.Server.RequestTimeout))

	// Unknown routes and methods share the JSON 404 body
	r.NotFound(api.NotFound)
	r.MethodNotAllowed(api.NotFound)

	r.Get("/health", app.healthHandler.Health)

	r.Route("/api/ai", func(r chi.Router) {
		r.Post("/generate", app.generationHandler.Generate)
		r.Post("/generate/stream", app.generationHandler.Stream)
		r.Get("/models", app.generationHandler.Models)
	})

	return r
}

// corsOptions allows any origin in development and only the configured
// origins in production.
func (app *application) corsOptions() cors.Options {
	opts := cors.Options{
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "X-Requested-With", shared.TraceIDHeader},
		ExposedHeaders:   []string{shared.TraceIDHeader, "Retry-After"},
		AllowCredentials: true,
		MaxAge:           300,
	}

	if app.config.Server.IsProduction() {
		opts.AllowedOrigins = app.config.Server.AllowedOrigins
	} else {
		opts.AllowOriginFunc = func(_ *http.Request, _ string) bool { return true }
	}

	return opts
}
