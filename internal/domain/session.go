package domain

// SessionState is derived from the stored fields, never persisted as a
// separate flag.
type SessionState string

const (
	SessionEmpty    SessionState = "empty"
	SessionActive   SessionState = "active"
	SessionComplete SessionState = "complete"
)

// Answer records one submitted answer. QuestionIndex values increase by
// exactly 1 starting at 0 because submission is the only mutator and it
// always targets the current index before incrementing it.
type Answer struct {
	QuestionIndex int    `json:"question_index"`
	Answer        string `json:"answer"`
}

// InterviewSession is the per-user state of an in-progress simulated
// interview. One instance exists per authenticated session; starting a
// new simulation overwrites any in-progress one.
type InterviewSession struct {
	Questions       []Question `json:"questions"`
	Role            string     `json:"role"`
	InterviewType   string     `json:"interview_type"`
	ExperienceLevel string     `json:"experience_level"`
	CurrentIndex    int        `json:"current_index"`
	Answers         []Answer   `json:"answers"`
}

// State derives the lifecycle state from the stored fields.
func (s InterviewSession) State() SessionState {
	switch {
	case len(s.Questions) == 0:
		return SessionEmpty
	case s.CurrentIndex >= len(s.Questions):
		return SessionComplete
	default:
		return SessionActive
	}
}

// SessionStore persists interview sessions keyed by the authenticated
// session id. Read-your-writes within a request is assumed; no
// cross-request isolation is provided, so a double submit may skip a
// question (known gap).
type SessionStore interface {
	Load(ctx Context, sessionID string) (InterviewSession, error)
	Save(ctx Context, sessionID string, s InterviewSession) error
	Clear(ctx Context, sessionID string) error
}
