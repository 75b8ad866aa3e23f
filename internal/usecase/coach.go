// Package usecase contains application business logic services.
//
// CoachService implements the four AI-backed generation operations. Each
// operation follows the same shape: guard on configuration, build a
// prompt, issue a single completion call, extract strict JSON, repair
// the shape into a typed entity, and fall back to deterministic content
// on any failure. Callers never see an error from these operations.
package usecase

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/fairyhunter13/ai-interview-coach/internal/adapter/observability"
	"github.com/fairyhunter13/ai-interview-coach/internal/config"
	"github.com/fairyhunter13/ai-interview-coach/internal/domain"
	obsctx "github.com/fairyhunter13/ai-interview-coach/internal/observability"
)

// Per-operation response budgets. Roadmap and evaluation payloads are
// larger than single-shot question lists.
const (
	maxTokensQuestions  = 2000
	maxTokensRoadmap    = 2500
	maxTokensResume     = 2000
	maxTokensEvaluation = 2500
)

// DefaultQuestionCount is used when a question request carries no count.
const DefaultQuestionCount = 5

// CoachService orchestrates prompt construction, the model round trip,
// normalization, and fallbacks for all generation operations.
type CoachService struct {
	model       domain.ModelClient // nil means not configured; fallbacks only
	personas    config.Personas
	chatModel   string
	temperature float64
	tokenBudget int
}

// NewCoachService constructs a CoachService. A nil model client is the
// supported "not configured" mode: every operation serves its fallback.
func NewCoachService(model domain.ModelClient, personas config.Personas, cfg config.Config) *CoachService {
	return &CoachService{
		model:       model,
		personas:    personas,
		chatModel:   cfg.ChatModel,
		temperature: cfg.Temperature,
		tokenBudget: cfg.ResumeTokenBudget,
	}
}

// complete runs the single blocking round trip for one operation. All
// failures come back as one of the model-facing sentinels so the
// operation can fall back uniformly.
func (s *CoachService) complete(ctx domain.Context, op, persona, prompt string, maxTokens int) (string, error) {
	if s.model == nil {
		return "", domain.ErrModelUnconfigured
	}
	start := time.Now()
	raw, err := s.model.Complete(ctx, persona, prompt, maxTokens, s.temperature)
	observability.ModelRequestDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	if err != nil {
		observability.ModelRequestsTotal.WithLabelValues(op, "error").Inc()
		if errors.Is(err, domain.ErrModelUnconfigured) {
			return "", err
		}
		return "", fmt.Errorf("%w: %v", domain.ErrModelCall, err)
	}
	observability.ModelRequestsTotal.WithLabelValues(op, "ok").Inc()
	return raw, nil
}

// logFallback records why an operation degraded to its fallback. The
// prompt and any user text stay out of the log.
func logFallback(ctx domain.Context, op string, err error) {
	lg := obsctx.LoggerFromContext(ctx)
	if errors.Is(err, domain.ErrModelUnconfigured) {
		lg.Info("serving static fallback", slog.String("operation", op), slog.String("reason", "model not configured"))
	} else {
		lg.Warn("generation degraded to fallback", slog.String("operation", op), slog.Any("error", err))
	}
	observability.ObserveGeneration(op, "fallback")
}
