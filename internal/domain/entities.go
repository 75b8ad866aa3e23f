package domain

import (
	"context"
	"errors"
	"time"
)

// Error taxonomy (sentinels)
var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrInternal        = errors.New("internal error")

	// Model-facing errors. All four are caught at the generation boundary
	// and converted into fallback output; they never reach a handler.
	ErrModelUnconfigured = errors.New("model not configured")
	ErrModelCall         = errors.New("model call failed")
	ErrUnparsable        = errors.New("response unparsable")
	ErrShapeInvalid      = errors.New("response shape invalid")

	// ErrSessionOutOfRange marks a stale or exhausted interview session.
	// Handlers recover by redirecting to the interview start route.
	ErrSessionOutOfRange = errors.New("session index out of range")
)

// Interview type and experience level enumerations. The values are
// embedded into prompts as free-form strings; callers constrain them to
// these sets.
const (
	InterviewTechnical    = "technical"
	InterviewBehavioral   = "behavioral"
	InterviewSystemDesign = "system-design"
	InterviewMixed        = "mixed"

	LevelEntry  = "entry"
	LevelMid    = "mid"
	LevelSenior = "senior"
)

// User is an authenticated account.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// Profile holds career details used to personalize generation.
type Profile struct {
	UserID          string
	JobRole         string
	ExperienceYears int
	UpdatedAt       time.Time
}

// Resume is an uploaded resume stored as sanitized plain text.
type Resume struct {
	ID        string
	UserID    string
	Filename  string
	Text      string
	CreatedAt time.Time
}

// Question is one generated interview question. Produced only by
// generation, never mutated afterwards.
type Question struct {
	Question              string   `json:"question"`
	KeyPoints             []string `json:"key_points"`
	SampleAnswerStructure string   `json:"sample_answer_structure"`
}

// RoadmapModule is one step of a learning roadmap. Any numeric "weeks"
// field from raw model output is folded into Timeline before the module
// is considered valid.
type RoadmapModule struct {
	Title     string   `json:"title"`
	Timeline  string   `json:"timeline"`
	Topics    []string `json:"topics"`
	Resources []string `json:"resources"`
	Projects  []string `json:"projects"`
}

// Roadmap wraps the ordered module list.
type Roadmap struct {
	Modules []RoadmapModule `json:"modules"`
}

// ResumeFeedback is the repaired resume review. A raw "score" field is
// always renamed to overall_score before this type is built.
type ResumeFeedback struct {
	OverallScore    float64  `json:"overall_score"`
	Strengths       []string `json:"strengths"`
	Improvements    []string `json:"improvements"`
	Suggestions     []string `json:"suggestions"`
	MissingKeywords []string `json:"missing_keywords"`
}

// FeedbackBlock is the aggregate feedback of an answer evaluation.
type FeedbackBlock struct {
	Strengths    []string `json:"strengths"`
	Improvements []string `json:"improvements"`
	Tips         []string `json:"tips"`
}

// QuestionFeedback scores one answered question, index-aligned with the
// evaluated answers.
type QuestionFeedback struct {
	Score        float64  `json:"score"`
	GoodPoints   []string `json:"good_points"`
	Improvements []string `json:"improvements"`
	Tips         []string `json:"tips"`
}

// AnswerEvaluation is the repaired result of evaluating a finished
// interview. len(QuestionFeedback) always equals the number of evaluated
// answers.
type AnswerEvaluation struct {
	OverallScore     float64            `json:"overall_score"`
	OverallFeedback  FeedbackBlock      `json:"overall_feedback"`
	QuestionFeedback []QuestionFeedback `json:"question_feedback"`
}

// Generation requests

// QuestionRequest parameterizes interview question generation.
type QuestionRequest struct {
	Role            string
	InterviewType   string
	ExperienceLevel string
	Count           int
}

// RoadmapRequest parameterizes learning roadmap generation.
type RoadmapRequest struct {
	JobRole         string
	ExperienceYears int
	TargetSkills    []string
}

// ResumeFeedbackRequest parameterizes resume review.
type ResumeFeedbackRequest struct {
	ResumeText string
	TargetRole string
}

// QAPair is one question/answer pair submitted for evaluation.
type QAPair struct {
	Question       string
	ExpectedPoints []string
	UserAnswer     string
}

// AnswerEvaluationRequest parameterizes answer evaluation. Pairs are
// already index-aligned; out-of-range answers were dropped upstream.
type AnswerEvaluationRequest struct {
	Pairs         []QAPair
	Role          string
	InterviewType string
}

// Repositories (ports)

type UserRepository interface {
	Create(ctx Context, u User) (string, error)
	GetByUsername(ctx Context, username string) (User, error)
	GetByID(ctx Context, id string) (User, error)
}

type ProfileRepository interface {
	Upsert(ctx Context, p Profile) error
	Get(ctx Context, userID string) (Profile, error)
}

type ResumeRepository interface {
	Create(ctx Context, r Resume) (string, error)
	GetLatest(ctx Context, userID string) (Resume, error)
}

// ModelClient (port)
//
// Complete issues one chat-completion round trip and returns the raw
// assistant text. Implementations never retry; degrading gracefully is
// the caller's concern.
type ModelClient interface {
	Complete(ctx Context, systemPrompt, userPrompt string, maxTokens int, temperature float64) (string, error)
}

// Context is an alias so the domain package stays decoupled from call
// sites; adapters and usecases pass context.Context straight through.
type Context = context.Context
