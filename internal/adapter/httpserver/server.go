package httpserver

import (
	"context"
	"net/http"
	"os"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/fairyhunter13/ai-interview-coach/internal/config"
	"github.com/fairyhunter13/ai-interview-coach/internal/domain"
	"github.com/fairyhunter13/ai-interview-coach/internal/usecase"
)

// Server aggregates handler dependencies.
type Server struct {
	Cfg        config.Config
	Sessions   *SessionManager
	Users      domain.UserRepository
	Profiles   domain.ProfileRepository
	Resumes    domain.ResumeRepository
	Coach      *usecase.CoachService
	Interviews *usecase.InterviewService
	DBCheck    func(ctx context.Context) error
	RedisCheck func(ctx context.Context) error
}

// NewServer constructs an HTTP server with all handlers wired.
func NewServer(cfg config.Config, users domain.UserRepository, profiles domain.ProfileRepository, resumes domain.ResumeRepository, coach *usecase.CoachService, interviews *usecase.InterviewService, dbCheck, redisCheck func(context.Context) error) *Server {
	return &Server{
		Cfg:        cfg,
		Sessions:   NewSessionManager(cfg),
		Users:      users,
		Profiles:   profiles,
		Resumes:    resumes,
		Coach:      coach,
		Interviews: interviews,
		DBCheck:    dbCheck,
		RedisCheck: redisCheck,
	}
}

var (
	vldOnce sync.Once
	vld     *validator.Validate
)

func getValidator() *validator.Validate {
	vldOnce.Do(func() { vld = validator.New() })
	return vld
}

// OpenAPIServe serves api/openapi.yaml if present.
func (s *Server) OpenAPIServe() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b, err := os.ReadFile("api/openapi.yaml")
		if err != nil {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/yaml; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(b)
	}
}
