package usecase

import (
	"encoding/json"
	"fmt"

	"github.com/fairyhunter13/ai-interview-coach/internal/adapter/observability"
	"github.com/fairyhunter13/ai-interview-coach/internal/domain"
	"github.com/fairyhunter13/ai-interview-coach/pkg/jsonx"
)

const questionsPromptFmt = `Generate %d %s interview questions for a %s level %s position.

For each question, provide:
1. The question text
2. Key points the interviewer is looking for
3. A sample good answer structure

Format the response as a JSON array with objects containing: question, key_points (array), sample_answer_structure`

// GenerateQuestions produces interview questions for the requested role,
// type, and level. It never fails: any model-facing error degrades to
// the deterministic fallback set.
func (s *CoachService) GenerateQuestions(ctx domain.Context, req domain.QuestionRequest) []domain.Question {
	const op = "questions"
	count := req.Count
	if count <= 0 {
		count = DefaultQuestionCount
	}
	prompt := fmt.Sprintf(questionsPromptFmt, count, req.InterviewType, req.ExperienceLevel, req.Role)

	raw, err := s.complete(ctx, op, s.personas.Questions, prompt, maxTokensQuestions)
	if err != nil {
		logFallback(ctx, op, err)
		return FallbackQuestions(req.Role)
	}
	qs, err := repairQuestions(raw)
	if err != nil {
		logFallback(ctx, op, err)
		return FallbackQuestions(req.Role)
	}
	observability.ObserveGeneration(op, "model")
	return qs
}

// repairQuestions coerces raw model output into the question schema.
// Both a bare array and a {"questions": [...]} wrapper are accepted.
func repairQuestions(raw string) ([]domain.Question, error) {
	payload, err := jsonx.Extract(raw)
	if err != nil {
		return nil, domain.ErrUnparsable
	}
	var items []domain.Question
	if err := json.Unmarshal(payload, &items); err != nil {
		var wrapped struct {
			Questions []domain.Question `json:"questions"`
		}
		if err := json.Unmarshal(payload, &wrapped); err != nil {
			return nil, fmt.Errorf("%w: neither array nor questions object", domain.ErrShapeInvalid)
		}
		items = wrapped.Questions
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: empty question list", domain.ErrShapeInvalid)
	}
	for i, q := range items {
		if q.Question == "" {
			return nil, fmt.Errorf("%w: question %d missing text", domain.ErrShapeInvalid, i)
		}
	}
	return items, nil
}
