package usecase

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fairyhunter13/ai-interview-coach/internal/adapter/observability"
	"github.com/fairyhunter13/ai-interview-coach/internal/domain"
	"github.com/fairyhunter13/ai-interview-coach/pkg/jsonx"
)

const evaluationPromptHeader = `Evaluate these interview answers for a %s position (%s interview).

For each numbered answer below, score it from 0 to 10 against the expected key points and give concrete feedback. Then give overall feedback for the whole interview with an overall score from 0 to 10.

Format as JSON: {"overall_score": number, "overall_feedback": {"strengths": [], "improvements": [], "tips": []}, "question_feedback": [{"score": number, "good_points": [], "improvements": [], "tips": []}]}

"question_feedback" must contain exactly one entry per answer, in the same order as the answers below.

`

// PairAnswers matches submitted answers to their questions. Any answer
// whose index falls outside the question list is silently dropped; the
// remaining pairs keep submission order.
func PairAnswers(questions []domain.Question, answers []domain.Answer) []domain.QAPair {
	pairs := make([]domain.QAPair, 0, len(answers))
	for _, a := range answers {
		if a.QuestionIndex < 0 || a.QuestionIndex >= len(questions) {
			continue
		}
		q := questions[a.QuestionIndex]
		pairs = append(pairs, domain.QAPair{
			Question:       q.Question,
			ExpectedPoints: q.KeyPoints,
			UserAnswer:     a.Answer,
		})
	}
	return pairs
}

// EvaluateAnswers scores a finished interview. Like every generation
// operation it never fails; with no pairs to evaluate it serves the
// empty fallback without touching the model.
func (s *CoachService) EvaluateAnswers(ctx domain.Context, req domain.AnswerEvaluationRequest) domain.AnswerEvaluation {
	const op = "evaluation"
	if len(req.Pairs) == 0 {
		observability.ObserveGeneration(op, "fallback")
		return FallbackAnswerEvaluation(0)
	}

	prompt := buildEvaluationPrompt(req)
	raw, err := s.complete(ctx, op, s.personas.Evaluation, prompt, maxTokensEvaluation)
	if err != nil {
		logFallback(ctx, op, err)
		return FallbackAnswerEvaluation(len(req.Pairs))
	}
	eval, err := repairAnswerEvaluation(raw, len(req.Pairs))
	if err != nil {
		logFallback(ctx, op, err)
		return FallbackAnswerEvaluation(len(req.Pairs))
	}
	observability.ObserveGeneration(op, "model")
	observability.ObserveEvaluationScore(eval.OverallScore)
	return eval
}

func buildEvaluationPrompt(req domain.AnswerEvaluationRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, evaluationPromptHeader, req.Role, req.InterviewType)
	for i, p := range req.Pairs {
		fmt.Fprintf(&b, "Question %d: %s\n", i+1, p.Question)
		if len(p.ExpectedPoints) > 0 {
			fmt.Fprintf(&b, "Expected key points: %s\n", strings.Join(p.ExpectedPoints, "; "))
		}
		fmt.Fprintf(&b, "Answer %d: %s\n\n", i+1, p.UserAnswer)
	}
	return b.String()
}

// repairAnswerEvaluation enforces the index alignment invariant: the
// feedback list length must match the number of evaluated pairs.
func repairAnswerEvaluation(raw string, pairs int) (domain.AnswerEvaluation, error) {
	payload, err := jsonx.Extract(raw)
	if err != nil {
		return domain.AnswerEvaluation{}, domain.ErrUnparsable
	}
	var eval domain.AnswerEvaluation
	if err := json.Unmarshal(payload, &eval); err != nil {
		return domain.AnswerEvaluation{}, fmt.Errorf("%w: not an evaluation object", domain.ErrShapeInvalid)
	}
	if len(eval.QuestionFeedback) != pairs {
		return domain.AnswerEvaluation{}, fmt.Errorf("%w: got %d question feedback entries for %d answers", domain.ErrShapeInvalid, len(eval.QuestionFeedback), pairs)
	}
	return eval, nil
}
