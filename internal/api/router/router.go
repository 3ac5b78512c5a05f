package router

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/festhub/eventhub/internal/api/handlers"
	"github.com/festhub/eventhub/internal/api/middleware"
	"github.com/festhub/eventhub/internal/auth"
	"github.com/festhub/eventhub/internal/config"
	"github.com/festhub/eventhub/internal/pkg/logger"
	"github.com/festhub/eventhub/internal/pkg/metrics"
)

type Handlers struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Event          *handlers.EventHandler
	Ticket         *handlers.TicketHandler
	Recommendation *handlers.RecommendationHandler
}

// New builds the HTTP router. ctx bounds background work such as the rate
// limiter cleanup.
func New(ctx context.Context, cfg *config.Config, log *logger.Logger, issuer *auth.Issuer, h *Handlers) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(middleware.RequestID())
	r.Use(metrics.Middleware)
	r.Use(middleware.Logger(log))
	r.Use(middleware.Recovery(log))
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.FrontendCORS(cfg.Server.FrontendURL))
	r.Use(middleware.RateLimit(ctx, cfg.Server.RateLimitRPS, cfg.Server.RateLimitBurst))

	requireAuth := middleware.AuthMiddleware(issuer)
	recommendLimit := middleware.RecommendRateLimit(cfg.Recommender.RateLimitPerMinute)

	// Operational routes
	r.Group(func(r chi.Router) {
		r.Get("/swagger/*", httpSwagger.WrapHandler)
		r.Handle("/metrics", metrics.Handler())

		r.Get("/health", h.Health.Healthz)
		r.Get("/healthz", h.Health.Healthz)
		r.Get("/readyz", h.Health.Readyz)
		r.Get("/test", h.Health.Test)

		if cfg.Storage.Backend == "local" {
			r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.Storage.LocalDir))))
		}
	})

	// Versioned API
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.OptionalAuthMiddleware(issuer))

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.Auth.Register)
			r.Post("/login", h.Auth.Login)
			r.Post("/refresh", h.Auth.RefreshToken)
			r.Post("/logout", h.Auth.Logout)
			r.Get("/profile", h.Auth.Profile)
		})

		r.Route("/events", func(r chi.Router) {
			r.Get("/", h.Event.List)
			r.Post("/", h.Event.Create)
			r.Get("/{id}", h.Event.Get)
			r.Get("/{id}/order-summary", h.Event.Get)
			r.Post("/{id}/like", h.Event.Like)
			r.Post("/{id}/comments", h.Event.Comment)
			r.With(requireAuth).Put("/{id}", h.Event.Update)
			r.With(requireAuth).Delete("/{id}", h.Event.Delete)
		})

		r.Route("/tickets", func(r chi.Router) {
			r.Get("/", h.Ticket.List)
			r.Post("/", h.Ticket.Create)
			r.Get("/user/{userId}", h.Ticket.ListByUser)
			r.Get("/{id}", h.Ticket.Get)
			r.Delete("/{id}", h.Ticket.Delete)
		})

		r.With(recommendLimit).Post("/recommendations", h.Recommendation.Recommend)
	})

	// Unversioned routes used by the browser client
	r.Group(func(r chi.Router) {
		r.Use(middleware.Legacy)
		r.Use(middleware.OptionalAuthMiddleware(issuer))

		r.Post("/register", h.Auth.Register)
		r.Post("/login", h.Auth.Login)
		r.Get("/profile", h.Auth.Profile)
		r.Post("/logout", h.Auth.Logout)

		r.Post("/createEvent", h.Event.Create)
		r.Get("/createEvent", h.Event.List)
		r.Get("/events", h.Event.List)
		r.Get("/event/{id}", h.Event.Get)
		r.Post("/event/{id}", h.Event.Like)
		r.Get("/event/{id}/ordersummary", h.Event.Get)
		r.Get("/event/{id}/ordersummary/paymentsummary", h.Event.Get)

		r.Post("/tickets", h.Ticket.Create)
		r.Get("/tickets/{id}", h.Ticket.List)
		r.Get("/tickets/user/{userId}", h.Ticket.ListByUser)
		r.Delete("/tickets/{id}", h.Ticket.Delete)

		r.With(recommendLimit).Post("/ml/recommend", h.Recommendation.Recommend)
	})

	return r
}
