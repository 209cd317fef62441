package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	mw "github.com/blogcore-dev/blogcore/internal/middleware"
	"github.com/blogcore-dev/blogcore/internal/middleware/metrics"
	"github.com/blogcore-dev/blogcore/internal/setup"
)

// New creates and configures the router with all the routes.
func New(deps *setup.Dependencies) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(metrics.Middleware)
	r.Use(mw.SecurityHeaders(false))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{deps.Config.Public.AllowedOrigin},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	h := deps.Handler

	r.Get("/health", h.Health)
	r.Get("/ready", h.Ready)
	r.Handle("/metrics", promhttp.Handler())

	optional := mw.OptionalAuth(deps.Jwt)
	needAuth := mw.NeedAuth(deps.Jwt)
	moderator := mw.ModeratorOnly(deps.Jwt)

	r.Route("/v1", func(r chi.Router) {
		r.Post("/auth/signup", h.Signup)
		r.Get("/auth/me", needAuth(h.GetMe))

		r.Post("/contact", optional(h.SubmitContactForm))
		r.Get("/search", optional(h.SearchPosts))
		r.Get("/ratelimit", optional(h.GetRateLimitInfo))

		// Commenting requires an account; reading threads does not.
		r.Post("/posts/{post}/comments", needAuth(h.SubmitComment))
		r.Get("/posts/{post}/comments", optional(h.GetThread))
		r.Get("/comments/{comment}", optional(h.GetComment))
		r.Get("/comments/{comment}/replies", optional(h.GetReplies))
		r.Get("/comments/{comment}/thread_info", optional(h.GetThreadInfo))

		r.Route("/moderation", func(r chi.Router) {
			r.Get("/comments", moderator(h.ListPendingComments))
			r.Post("/comments/{comment}/approve", moderator(h.ApproveComment))
			r.Delete("/comments/{comment}", moderator(h.DeleteComment))
		})
	})

	return r
}
