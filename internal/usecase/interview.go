package usecase

import (
	"fmt"

	"github.com/fairyhunter13/ai-interview-coach/internal/adapter/observability"
	"github.com/fairyhunter13/ai-interview-coach/internal/domain"
)

// InterviewService drives the simulated-interview state machine on top
// of the session store. The lifecycle state (empty, active, complete) is
// derived from current_index against the question list, never stored.
type InterviewService struct {
	sessions domain.SessionStore
	coach    *CoachService
}

func NewInterviewService(sessions domain.SessionStore, coach *CoachService) *InterviewService {
	return &InterviewService{sessions: sessions, coach: coach}
}

// Start begins a new simulation, overwriting any in-progress one. The
// question list comes from generation (or its fallback), so Start never
// fails on model errors, only on session persistence.
func (s *InterviewService) Start(ctx domain.Context, sessionID string, req domain.QuestionRequest) (domain.InterviewSession, error) {
	questions := s.coach.GenerateQuestions(ctx, req)
	sess := domain.InterviewSession{
		Questions:       questions,
		Role:            req.Role,
		InterviewType:   req.InterviewType,
		ExperienceLevel: req.ExperienceLevel,
		CurrentIndex:    0,
		Answers:         []domain.Answer{},
	}
	if err := s.sessions.Save(ctx, sessionID, sess); err != nil {
		return domain.InterviewSession{}, fmt.Errorf("op=interview.start: %w", err)
	}
	observability.InterviewsStartedTotal.Inc()
	return sess, nil
}

// Current returns the question at the session's current index. A session
// that is empty or already complete yields ErrSessionOutOfRange, which
// the caller recovers by sending the user back to the start action.
func (s *InterviewService) Current(ctx domain.Context, sessionID string) (domain.Question, int, error) {
	sess, err := s.sessions.Load(ctx, sessionID)
	if err != nil {
		return domain.Question{}, 0, fmt.Errorf("op=interview.current: %w", err)
	}
	if sess.State() != domain.SessionActive {
		return domain.Question{}, 0, domain.ErrSessionOutOfRange
	}
	return sess.Questions[sess.CurrentIndex], sess.CurrentIndex, nil
}

// SubmitAnswer records the answer for the current question and advances
// the index. Answers are appended with the index they answered, so the
// stored list always counts 0,1,2,... with no gaps.
func (s *InterviewService) SubmitAnswer(ctx domain.Context, sessionID, answer string) (domain.InterviewSession, error) {
	sess, err := s.sessions.Load(ctx, sessionID)
	if err != nil {
		return domain.InterviewSession{}, fmt.Errorf("op=interview.submit: %w", err)
	}
	if sess.State() != domain.SessionActive {
		return domain.InterviewSession{}, domain.ErrSessionOutOfRange
	}
	sess.Answers = append(sess.Answers, domain.Answer{QuestionIndex: sess.CurrentIndex, Answer: answer})
	sess.CurrentIndex++
	if err := s.sessions.Save(ctx, sessionID, sess); err != nil {
		return domain.InterviewSession{}, fmt.Errorf("op=interview.submit: %w", err)
	}
	if sess.State() == domain.SessionComplete {
		observability.InterviewsCompletedTotal.Inc()
	}
	return sess, nil
}

// Restart clears the session back to the empty state.
func (s *InterviewService) Restart(ctx domain.Context, sessionID string) error {
	if err := s.sessions.Clear(ctx, sessionID); err != nil {
		return fmt.Errorf("op=interview.restart: %w", err)
	}
	return nil
}

// Results evaluates a completed interview. Answers referencing indexes
// outside the question list are dropped before evaluation.
func (s *InterviewService) Results(ctx domain.Context, sessionID string) (domain.AnswerEvaluation, domain.InterviewSession, error) {
	sess, err := s.sessions.Load(ctx, sessionID)
	if err != nil {
		return domain.AnswerEvaluation{}, domain.InterviewSession{}, fmt.Errorf("op=interview.results: %w", err)
	}
	if sess.State() != domain.SessionComplete {
		return domain.AnswerEvaluation{}, domain.InterviewSession{}, domain.ErrSessionOutOfRange
	}
	eval := s.coach.EvaluateAnswers(ctx, domain.AnswerEvaluationRequest{
		Pairs:         PairAnswers(sess.Questions, sess.Answers),
		Role:          sess.Role,
		InterviewType: sess.InterviewType,
	})
	return eval, sess, nil
}
