// Package app wires configuration, adapters, and HTTP routing into a
// runnable server.
package app

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpserver "github.com/fairyhunter13/ai-interview-coach/internal/adapter/httpserver"
	"github.com/fairyhunter13/ai-interview-coach/internal/adapter/observability"
	"github.com/fairyhunter13/ai-interview-coach/internal/config"
)

// ParseOrigins splits a comma-separated origin list into a slice,
// trimming spaces. An empty input means any origin.
func ParseOrigins(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" || s == "*" {
		return []string{"*"}
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}

// BuildRouter constructs the HTTP handler with all middlewares and routes.
func BuildRouter(cfg config.Config, srv *httpserver.Server) http.Handler {
	r := chi.NewRouter()
	r.Use(httpserver.Recoverer())
	r.Use(httpserver.RequestID())
	r.Use(httpserver.TimeoutMiddleware(cfg.ModelTimeout + 15*time.Second))
	r.Use(httpserver.TraceMiddleware)
	r.Use(httpserver.AccessLog())
	r.Use(observability.HTTPMetricsMiddleware)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   ParseOrigins(cfg.CORSAllowOrigins),
		AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Account creation and login are the only unauthenticated mutations;
	// they carry the tightest rate limit.
	r.Group(func(ar chi.Router) {
		ar.Use(httprate.LimitByIP(cfg.RateLimitPerMin, 1*time.Minute))
		ar.Post("/v1/auth/register", srv.RegisterHandler())
		ar.Post("/v1/auth/login", srv.LoginHandler())
	})

	// Everything else requires a valid session.
	r.Group(func(pr chi.Router) {
		pr.Use(srv.Sessions.AuthRequired)

		pr.Post("/v1/auth/logout", srv.LogoutHandler())
		pr.Get("/v1/auth/me", srv.MeHandler())

		pr.Get("/v1/profile", srv.ProfileGetHandler())
		pr.Put("/v1/profile", srv.ProfilePutHandler())

		pr.Get("/v1/resume", srv.ResumeGetHandler())

		// Generation endpoints block on the model round trip; keep a
		// per-IP limit on them as well.
		pr.Group(func(gr chi.Router) {
			gr.Use(httprate.LimitByIP(cfg.RateLimitPerMin, 1*time.Minute))
			gr.Post("/v1/resume", srv.ResumeUploadHandler())
			gr.Post("/v1/resume/feedback", srv.ResumeFeedbackHandler())
			gr.Post("/v1/questions", srv.QuestionsHandler())
			gr.Post("/v1/roadmap", srv.RoadmapHandler())
			gr.Post("/v1/interview/start", srv.InterviewStartHandler())
		})

		pr.Get("/v1/interview/current", srv.InterviewCurrentHandler())
		pr.Post("/v1/interview/answer", srv.InterviewAnswerHandler())
		pr.Post("/v1/interview/restart", srv.InterviewRestartHandler())
		pr.Get("/v1/interview/results", srv.InterviewResultsHandler())
	})

	r.Get("/healthz", srv.HealthzHandler())
	r.Get("/readyz", srv.ReadyzHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) { promhttp.Handler().ServeHTTP(w, r) })
	r.Get("/openapi.yaml", srv.OpenAPIServe())

	return httpserver.SecurityHeaders(r)
}
