package rest

import (
	"context"
	"net/http"

	"github.com/20q2/golgari-game-day/application/commands/bus"
	"github.com/20q2/golgari-game-day/application/ports"
	querybus "github.com/20q2/golgari-game-day/application/queries/bus"
	"github.com/20q2/golgari-game-day/interfaces/http/rest/handlers"
	"github.com/20q2/golgari-game-day/interfaces/http/rest/middleware"
	"github.com/20q2/golgari-game-day/pkg/errors"
	"github.com/20q2/golgari-game-day/pkg/ratelimit"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// Options tunes the optional parts of the HTTP surface
type Options struct {
	EnableCORS     bool
	AllowedOrigins []string

	// Limiter throttles writes when set
	Limiter            ratelimit.Limiter
	RateLimitPerMinute int

	// MetricsHandler is mounted on /metrics when set
	MetricsHandler http.Handler

	// Ready backs /ready; nil means always ready
	Ready func(ctx context.Context) error
}

// Router creates and configures the HTTP router
type Router struct {
	commandBus   *bus.CommandBus
	queryBus     *querybus.QueryBus
	errorHandler *errors.ErrorHandler
	metrics      ports.Metrics
	opts         Options
	logger       *zap.Logger
}

// NewRouter creates a new router instance
func NewRouter(
	commandBus *bus.CommandBus,
	queryBus *querybus.QueryBus,
	errorHandler *errors.ErrorHandler,
	metrics ports.Metrics,
	opts Options,
	logger *zap.Logger,
) *Router {
	return &Router{
		commandBus:   commandBus,
		queryBus:     queryBus,
		errorHandler: errorHandler,
		metrics:      metrics,
		opts:         opts,
		logger:       logger,
	}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	// Global middleware
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(middleware.Logger(rt.logger))
	router.Use(middleware.Metrics(rt.metrics))
	router.Use(rt.errorHandler.Middleware)
	router.Use(middleware.NoCache)

	if rt.opts.EnableCORS {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins: rt.opts.AllowedOrigins,
			AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "HEAD"},
			AllowedHeaders: []string{"Content-Type", "Authorization", "X-Requested-With", "Accept", "Origin"},
			ExposedHeaders: []string{"X-Request-ID"},
			MaxAge:         3600,
		}))
	}

	if rt.opts.Limiter != nil {
		router.Use(middleware.RateLimitWrites(rt.opts.Limiter, rt.opts.RateLimitPerMinute, rt.errorHandler))
	}

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		rt.errorHandler.HandleStatus(w, r, http.StatusNotFound, "Endpoint not found")
	})
	router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		rt.errorHandler.HandleStatus(w, r, http.StatusMethodNotAllowed, "Method not allowed")
	})

	// Health check
	router.Get("/health", rt.healthCheck)
	router.Get("/ready", rt.readinessCheck)
	if rt.opts.MetricsHandler != nil {
		router.Method(http.MethodGet, "/metrics", rt.opts.MetricsHandler)
	}

	feedbackHandler := handlers.NewFeedbackHandler(rt.commandBus, rt.queryBus, rt.errorHandler, rt.logger)
	catalogHandler := handlers.NewCatalogHandler(rt.queryBus, rt.errorHandler, rt.logger)

	// Comment endpoints
	router.Get("/comments/{gameId}", feedbackHandler.ListComments)
	router.Post("/comments/{gameId}", feedbackHandler.AddComment)
	router.Put("/comments/{gameId}/{commentId}", feedbackHandler.UpdateComment)
	router.Delete("/comments/{gameId}/{commentId}", feedbackHandler.DeleteComment)

	// Rating endpoints
	router.Get("/ratings/{gameId}", feedbackHandler.GetRatings)
	router.Post("/ratings/{gameId}", feedbackHandler.SubmitRating)

	// Like endpoints
	router.Get("/likes/{gameId}", feedbackHandler.GetLikes)
	router.Post("/likes/{gameId}", feedbackHandler.ToggleLike)

	// Bulk reads
	router.Get("/all-comments", feedbackHandler.AllComments)
	router.Get("/all-ratings", feedbackHandler.AllRatings)
	router.Get("/all-likes", feedbackHandler.AllLikes)
	router.Get("/users/{userId}/activity", feedbackHandler.UserActivity)

	// Catalog endpoints
	router.Get("/games", catalogHandler.ListGames)
	router.Get("/games/{gameId}", catalogHandler.GetGame)
	router.Get("/genres", catalogHandler.ListGenres)

	// Statistics endpoints
	router.Route("/stats", func(r chi.Router) {
		r.Get("/games", catalogHandler.AllGameStats)
		r.Get("/games/{gameId}", catalogHandler.GameStats)
		r.Get("/users", catalogHandler.UserStats)
		r.Get("/global", catalogHandler.GlobalStats)
	})

	return router
}

// healthCheck handles health check requests
func (rt *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"healthy"}`))
}

// readinessCheck handles readiness check requests
func (rt *Router) readinessCheck(w http.ResponseWriter, req *http.Request) {
	if rt.opts.Ready != nil {
		if err := rt.opts.Ready(req.Context()); err != nil {
			rt.logger.Warn("Readiness check failed", zap.Error(err))
			rt.errorHandler.HandleStatus(w, req, http.StatusServiceUnavailable, "Service not ready")
			return
		}
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ready"}`))
}
