package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fairyhunter13/ai-interview-coach/internal/domain"
)

type memSessionStore struct {
	sessions map[string]domain.InterviewSession
}

func newMemSessionStore() *memSessionStore {
	return &memSessionStore{sessions: map[string]domain.InterviewSession{}}
}

func (m *memSessionStore) Load(_ context.Context, sessionID string) (domain.InterviewSession, error) {
	return m.sessions[sessionID], nil
}

func (m *memSessionStore) Save(_ context.Context, sessionID string, s domain.InterviewSession) error {
	m.sessions[sessionID] = s
	return nil
}

func (m *memSessionStore) Clear(_ context.Context, sessionID string) error {
	delete(m.sessions, sessionID)
	return nil
}

const threeQuestions = `[
  {"question":"Q0","key_points":["k0"],"sample_answer_structure":"s0"},
  {"question":"Q1","key_points":["k1"],"sample_answer_structure":"s1"},
  {"question":"Q2","key_points":["k2"],"sample_answer_structure":"s2"}
]`

func newTestInterview(t *testing.T, model domain.ModelClient) (*InterviewService, *memSessionStore) {
	t.Helper()
	store := newMemSessionStore()
	return NewInterviewService(store, newTestCoach(model)), store
}

func TestInterview_FullRun(t *testing.T) {
	svc, _ := newTestInterview(t, &fakeModel{response: threeQuestions})
	ctx := context.Background()
	const sid = "sess-1"

	sess, err := svc.Start(ctx, sid, domain.QuestionRequest{
		Role: "Go Developer", InterviewType: domain.InterviewTechnical, ExperienceLevel: domain.LevelMid,
	})
	require.NoError(t, err)
	require.Len(t, sess.Questions, 3)
	assert.Equal(t, domain.SessionActive, sess.State())
	assert.Zero(t, sess.CurrentIndex)
	assert.Empty(t, sess.Answers)

	for i := 0; i < 3; i++ {
		q, idx, err := svc.Current(ctx, sid)
		require.NoError(t, err)
		assert.Equal(t, i, idx)
		assert.Equal(t, sess.Questions[i].Question, q.Question)

		sess, err = svc.SubmitAnswer(ctx, sid, "answer")
		require.NoError(t, err)
		assert.Equal(t, i+1, sess.CurrentIndex)
	}

	assert.Equal(t, domain.SessionComplete, sess.State())
	require.Len(t, sess.Answers, 3)
	for i, a := range sess.Answers {
		assert.Equal(t, i, a.QuestionIndex)
	}

	_, _, err = svc.Current(ctx, sid)
	assert.ErrorIs(t, err, domain.ErrSessionOutOfRange)
	_, err = svc.SubmitAnswer(ctx, sid, "extra")
	assert.ErrorIs(t, err, domain.ErrSessionOutOfRange)
}

func TestInterview_CurrentOnEmptySession(t *testing.T) {
	svc, _ := newTestInterview(t, nil)
	_, _, err := svc.Current(context.Background(), "nobody")
	assert.ErrorIs(t, err, domain.ErrSessionOutOfRange)
}

func TestInterview_StartOverwritesInProgress(t *testing.T) {
	svc, _ := newTestInterview(t, &fakeModel{response: threeQuestions})
	ctx := context.Background()
	const sid = "sess-1"

	_, err := svc.Start(ctx, sid, domain.QuestionRequest{Role: "Dev"})
	require.NoError(t, err)
	_, err = svc.SubmitAnswer(ctx, sid, "first answer")
	require.NoError(t, err)

	sess, err := svc.Start(ctx, sid, domain.QuestionRequest{Role: "Dev"})
	require.NoError(t, err)
	assert.Zero(t, sess.CurrentIndex)
	assert.Empty(t, sess.Answers)
}

func TestInterview_RestartClears(t *testing.T) {
	svc, store := newTestInterview(t, &fakeModel{response: threeQuestions})
	ctx := context.Background()
	const sid = "sess-1"

	_, err := svc.Start(ctx, sid, domain.QuestionRequest{Role: "Dev"})
	require.NoError(t, err)
	require.NoError(t, svc.Restart(ctx, sid))

	assert.Empty(t, store.sessions)
	_, _, err = svc.Current(ctx, sid)
	assert.ErrorIs(t, err, domain.ErrSessionOutOfRange)
}

func TestInterview_ResultsRequiresCompletion(t *testing.T) {
	svc, _ := newTestInterview(t, &fakeModel{response: threeQuestions})
	ctx := context.Background()
	const sid = "sess-1"

	_, err := svc.Start(ctx, sid, domain.QuestionRequest{Role: "Dev"})
	require.NoError(t, err)

	_, _, err = svc.Results(ctx, sid)
	assert.ErrorIs(t, err, domain.ErrSessionOutOfRange)
}

func TestInterview_ResultsEvaluatesAllAnswers(t *testing.T) {
	// Question generation succeeds; the later evaluation call returns
	// garbage, so results come from the deterministic fallback.
	fake := &fakeModel{response: threeQuestions}
	svc, _ := newTestInterview(t, fake)
	ctx := context.Background()
	const sid = "sess-1"

	_, err := svc.Start(ctx, sid, domain.QuestionRequest{Role: "Dev"})
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		_, err = svc.SubmitAnswer(ctx, sid, "answer")
		require.NoError(t, err)
	}

	fake.response = "not json at all"
	eval, sess, err := svc.Results(ctx, sid)
	require.NoError(t, err)
	assert.Equal(t, domain.SessionComplete, sess.State())
	assert.Equal(t, FallbackAnswerEvaluation(3), eval)
}

func TestInterview_StartFallsBackWhenUnconfigured(t *testing.T) {
	svc, _ := newTestInterview(t, nil)
	sess, err := svc.Start(context.Background(), "sess-1", domain.QuestionRequest{Role: "Data Analyst"})
	require.NoError(t, err)
	assert.Equal(t, FallbackQuestions("Data Analyst"), sess.Questions)
}
