package usecase

import (
	"encoding/json"
	"fmt"

	"github.com/fairyhunter13/ai-interview-coach/internal/adapter/observability"
	"github.com/fairyhunter13/ai-interview-coach/internal/domain"
	"github.com/fairyhunter13/ai-interview-coach/pkg/jsonx"
	"github.com/fairyhunter13/ai-interview-coach/pkg/tokenx"
)

const resumePromptFmt = `Analyze this resume for a %s position:

%s

Provide:
1. Overall score (0-100)
2. Key strengths (array of strings)
3. Areas for improvement (array of strings)
4. Specific actionable suggestions (array of strings)
5. Missing keywords for the role

Format as JSON: {"score": number, "strengths": [], "improvements": [], "suggestions": [], "missing_keywords": []}`

// ResumeFeedback reviews a resume against a target role. The resume text
// is capped to the configured token budget before it is embedded into
// the prompt. It never fails: any model-facing error degrades to the
// deterministic fallback.
func (s *CoachService) ResumeFeedback(ctx domain.Context, req domain.ResumeFeedbackRequest) domain.ResumeFeedback {
	const op = "resume_feedback"
	resumeText := tokenx.TruncateDefault(req.ResumeText, s.chatModel, s.tokenBudget)
	prompt := fmt.Sprintf(resumePromptFmt, req.TargetRole, resumeText)

	raw, err := s.complete(ctx, op, s.personas.Resume, prompt, maxTokensResume)
	if err != nil {
		logFallback(ctx, op, err)
		return FallbackResumeFeedback()
	}
	fb, err := repairResumeFeedback(raw)
	if err != nil {
		logFallback(ctx, op, err)
		return FallbackResumeFeedback()
	}
	observability.ObserveGeneration(op, "model")
	observability.ObserveResumeScore(fb.OverallScore)
	return fb
}

// rawResumeFeedback tolerates the short "score" field name the model may
// emit; it is always folded into overall_score.
type rawResumeFeedback struct {
	Score           *float64 `json:"score"`
	OverallScore    *float64 `json:"overall_score"`
	Strengths       []string `json:"strengths"`
	Improvements    []string `json:"improvements"`
	Suggestions     []string `json:"suggestions"`
	MissingKeywords []string `json:"missing_keywords"`
}

// repairResumeFeedback coerces raw model output into the feedback schema.
func repairResumeFeedback(raw string) (domain.ResumeFeedback, error) {
	payload, err := jsonx.Extract(raw)
	if err != nil {
		return domain.ResumeFeedback{}, domain.ErrUnparsable
	}
	var rf rawResumeFeedback
	if err := json.Unmarshal(payload, &rf); err != nil {
		return domain.ResumeFeedback{}, fmt.Errorf("%w: not a feedback object", domain.ErrShapeInvalid)
	}
	score := rf.Score
	if rf.OverallScore != nil {
		score = rf.OverallScore
	}
	if score == nil {
		return domain.ResumeFeedback{}, fmt.Errorf("%w: missing score", domain.ErrShapeInvalid)
	}
	return domain.ResumeFeedback{
		OverallScore:    *score,
		Strengths:       rf.Strengths,
		Improvements:    rf.Improvements,
		Suggestions:     rf.Suggestions,
		MissingKeywords: rf.MissingKeywords,
	}, nil
}
