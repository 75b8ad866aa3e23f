package app_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpserver "github.com/fairyhunter13/ai-interview-coach/internal/adapter/httpserver"
	"github.com/fairyhunter13/ai-interview-coach/internal/app"
	"github.com/fairyhunter13/ai-interview-coach/internal/config"
	"github.com/fairyhunter13/ai-interview-coach/internal/domain"
	"github.com/fairyhunter13/ai-interview-coach/internal/usecase"
)

// In-memory fakes mirroring the repository ports.

type memUsers struct {
	mu    sync.Mutex
	byID  map[string]domain.User
	nexID int
}

func newMemUsers() *memUsers { return &memUsers{byID: map[string]domain.User{}} }

func (m *memUsers) Create(_ context.Context, u domain.User) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.byID {
		if existing.Username == u.Username {
			return "", domain.ErrConflict
		}
	}
	m.nexID++
	u.ID = fmt.Sprintf("u-%d", m.nexID)
	u.CreatedAt = time.Now().UTC()
	m.byID[u.ID] = u
	return u.ID, nil
}

func (m *memUsers) GetByUsername(_ context.Context, username string) (domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.byID {
		if u.Username == username {
			return u, nil
		}
	}
	return domain.User{}, domain.ErrNotFound
}

func (m *memUsers) GetByID(_ context.Context, id string) (domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byID[id]
	if !ok {
		return domain.User{}, domain.ErrNotFound
	}
	return u, nil
}

type memProfiles struct {
	mu sync.Mutex
	m  map[string]domain.Profile
}

func (m *memProfiles) Upsert(_ context.Context, p domain.Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.m[p.UserID] = p
	return nil
}

func (m *memProfiles) Get(_ context.Context, userID string) (domain.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.m[userID]
	if !ok {
		return domain.Profile{}, domain.ErrNotFound
	}
	return p, nil
}

type memResumes struct {
	mu sync.Mutex
	m  map[string]domain.Resume
}

func (m *memResumes) Create(_ context.Context, r domain.Resume) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r.ID = fmt.Sprintf("r-%d", len(m.m)+1)
	r.CreatedAt = time.Now().UTC()
	m.m[r.UserID] = r
	return r.ID, nil
}

func (m *memResumes) GetLatest(_ context.Context, userID string) (domain.Resume, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.m[userID]
	if !ok {
		return domain.Resume{}, domain.ErrNotFound
	}
	return r, nil
}

type memSessions struct {
	mu sync.Mutex
	m  map[string]domain.InterviewSession
}

func (m *memSessions) Load(_ context.Context, id string) (domain.InterviewSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.m[id], nil
}

func (m *memSessions) Save(_ context.Context, id string, s domain.InterviewSession) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.m[id] = s
	return nil
}

func (m *memSessions) Clear(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.m, id)
	return nil
}

func testRouter(t *testing.T) http.Handler {
	t.Helper()
	cfg := config.Config{
		AppEnv:           "test",
		SessionSecret:    "router-test-secret",
		SessionTTL:       time.Hour,
		ChatModel:        "gpt-3.5-turbo",
		Temperature:      0.7,
		MaxUploadMB:      1,
		CORSAllowOrigins: "*",
		RateLimitPerMin:  1000,
		ModelTimeout:     5 * time.Second,
	}
	coach := usecase.NewCoachService(nil, config.DefaultPersonas(), cfg)
	interviews := usecase.NewInterviewService(&memSessions{m: map[string]domain.InterviewSession{}}, coach)
	srv := httpserver.NewServer(cfg,
		newMemUsers(),
		&memProfiles{m: map[string]domain.Profile{}},
		&memResumes{m: map[string]domain.Resume{}},
		coach, interviews, nil, nil)
	return app.BuildRouter(cfg, srv)
}

type client struct {
	t       *testing.T
	handler http.Handler
	cookies []*http.Cookie
}

func (c *client) do(method, path string, body any) *httptest.ResponseRecorder {
	c.t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(c.t, err)
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, ck := range c.cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	c.handler.ServeHTTP(rec, req)
	if set := rec.Result().Cookies(); len(set) > 0 {
		c.cookies = set
	}
	return rec
}

func (c *client) register(username string) {
	c.t.Helper()
	rec := c.do(http.MethodPost, "/v1/auth/register", map[string]string{
		"username": username,
		"email":    username + "@example.com",
		"password": "password123",
	})
	require.Equal(c.t, http.StatusCreated, rec.Code, rec.Body.String())
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func TestRouter_UnauthenticatedIs401(t *testing.T) {
	c := &client{t: t, handler: testRouter(t)}
	for _, path := range []string{"/v1/profile", "/v1/auth/me", "/v1/interview/current"} {
		rec := c.do(http.MethodGet, path, nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
	}
	rec := c.do(http.MethodPost, "/v1/questions", map[string]string{})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_RegisterLoginFlow(t *testing.T) {
	c := &client{t: t, handler: testRouter(t)}
	c.register("alice")

	rec := c.do(http.MethodGet, "/v1/auth/me", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	me := decodeBody[map[string]string](t, rec)
	assert.Equal(t, "alice", me["username"])

	// Duplicate registration conflicts
	rec = c.do(http.MethodPost, "/v1/auth/register", map[string]string{
		"username": "alice", "email": "alice2@example.com", "password": "password123",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)

	// Logout clears the session
	rec = c.do(http.MethodPost, "/v1/auth/logout", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = c.do(http.MethodGet, "/v1/auth/me", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Log back in
	rec = c.do(http.MethodPost, "/v1/auth/login", map[string]string{
		"username": "alice", "password": "password123",
	})
	assert.Equal(t, http.StatusOK, rec.Code)

	// Wrong password
	rec = c.do(http.MethodPost, "/v1/auth/login", map[string]string{
		"username": "alice", "password": "nope-nope",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_ProfileAndCompletion(t *testing.T) {
	c := &client{t: t, handler: testRouter(t)}
	c.register("bob")

	rec := c.do(http.MethodGet, "/v1/profile", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	p := decodeBody[map[string]any](t, rec)
	assert.Equal(t, float64(40), p["completion_pct"])

	rec = c.do(http.MethodPut, "/v1/profile", map[string]any{
		"job_role": "Backend Engineer", "experience_years": 4,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = c.do(http.MethodGet, "/v1/profile", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	p = decodeBody[map[string]any](t, rec)
	assert.Equal(t, "Backend Engineer", p["job_role"])
	assert.Equal(t, float64(80), p["completion_pct"])
}

func TestRouter_QuestionsAndRoadmapFallback(t *testing.T) {
	c := &client{t: t, handler: testRouter(t)}
	c.register("carol")

	rec := c.do(http.MethodPost, "/v1/questions", map[string]any{
		"role": "SRE", "interview_type": "behavioral", "experience_level": "mid",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	var qResp struct {
		Questions []domain.Question `json:"questions"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &qResp))
	assert.Equal(t, usecase.FallbackQuestions("SRE"), qResp.Questions)

	rec = c.do(http.MethodPost, "/v1/roadmap", map[string]any{
		"job_role": "SRE", "experience_years": 2,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	var roadmap domain.Roadmap
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &roadmap))
	assert.Equal(t, usecase.FallbackRoadmap(), roadmap)

	rec = c.do(http.MethodPost, "/v1/questions", map[string]any{"interview_type": "telepathy"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_InterviewLifecycle(t *testing.T) {
	c := &client{t: t, handler: testRouter(t)}
	c.register("dave")

	// No interview yet: current redirects to start
	rec := c.do(http.MethodGet, "/v1/interview/current", nil)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/v1/interview/start", rec.Header().Get("Location"))

	rec = c.do(http.MethodPost, "/v1/interview/start", map[string]any{
		"role": "Go Developer", "interview_type": "technical", "experience_level": "senior",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	state := decodeBody[map[string]any](t, rec)
	assert.Equal(t, "active", state["state"])
	total := int(state["total"].(float64))
	require.Equal(t, len(usecase.FallbackQuestions("Go Developer")), total)

	// Results before completion redirect back to start
	rec = c.do(http.MethodGet, "/v1/interview/results", nil)
	assert.Equal(t, http.StatusSeeOther, rec.Code)

	for i := 0; i < total; i++ {
		rec = c.do(http.MethodGet, "/v1/interview/current", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		cur := decodeBody[map[string]any](t, rec)
		assert.Equal(t, float64(i), cur["index"])

		rec = c.do(http.MethodPost, "/v1/interview/answer", map[string]string{"answer": "my answer"})
		require.Equal(t, http.StatusOK, rec.Code)
	}

	// Exhausted: next answer redirects, results succeed
	rec = c.do(http.MethodPost, "/v1/interview/answer", map[string]string{"answer": "extra"})
	assert.Equal(t, http.StatusSeeOther, rec.Code)

	rec = c.do(http.MethodGet, "/v1/interview/results", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var results struct {
		Evaluation domain.AnswerEvaluation `json:"evaluation"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &results))
	assert.Len(t, results.Evaluation.QuestionFeedback, total)

	// Restart clears everything
	rec = c.do(http.MethodPost, "/v1/interview/restart", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = c.do(http.MethodGet, "/v1/interview/current", nil)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
}

func TestRouter_ResumeUploadAndFeedback(t *testing.T) {
	c := &client{t: t, handler: testRouter(t)}
	c.register("erin")

	// Nothing on file yet
	rec := c.do(http.MethodGet, "/v1/resume", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = c.do(http.MethodPost, "/v1/resume/feedback", map[string]string{"target_role": "SRE"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// Upload a plain-text resume
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("resume", "resume.txt")
	require.NoError(t, err)
	_, _ = io.WriteString(fw, "Jane Doe\nBackend engineer with 5 years of Go experience.\n")
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/v1/resume", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	for _, ck := range c.cookies {
		req.AddCookie(ck)
	}
	recU := httptest.NewRecorder()
	c.handler.ServeHTTP(recU, req)
	require.Equal(t, http.StatusOK, recU.Code, recU.Body.String())

	rec = c.do(http.MethodGet, "/v1/resume", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var meta struct {
		Filename string `json:"filename"`
		Chars    int    `json:"chars"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &meta))
	assert.Equal(t, "resume.txt", meta.Filename)
	assert.Positive(t, meta.Chars)

	// Feedback now serves the fallback (no model configured)
	rec = c.do(http.MethodPost, "/v1/resume/feedback", map[string]string{"target_role": "SRE"})
	require.Equal(t, http.StatusOK, rec.Code)
	var fb domain.ResumeFeedback
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &fb))
	assert.Equal(t, usecase.FallbackResumeFeedback(), fb)
}

func TestRouter_ResumeRejectsWrongExtension(t *testing.T) {
	c := &client{t: t, handler: testRouter(t)}
	c.register("frank")

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("resume", "resume.pdf")
	require.NoError(t, err)
	_, _ = io.WriteString(fw, "%PDF-1.4 fake pdf bytes")
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/v1/resume", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	for _, ck := range c.cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	c.handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
}

func TestRouter_HealthAndMetrics(t *testing.T) {
	c := &client{t: t, handler: testRouter(t)}
	rec := c.do(http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = c.do(http.MethodGet, "/readyz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = c.do(http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestParseOrigins(t *testing.T) {
	assert.Equal(t, []string{"*"}, app.ParseOrigins(""))
	assert.Equal(t, []string{"*"}, app.ParseOrigins("*"))
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, app.ParseOrigins("https://a.example, https://b.example"))
	assert.Equal(t, []string{"*"}, app.ParseOrigins(" , ,"))
}
