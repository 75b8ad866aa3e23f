package httpserver

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/fairyhunter13/ai-interview-coach/internal/domain"
)

// interviewStartPath is where out-of-range session errors redirect to.
const interviewStartPath = "/v1/interview/start"

// redirectToStart is the recovery path for a stale or exhausted
// interview session: send the client back to the start action instead
// of rendering an error.
func redirectToStart(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, interviewStartPath, http.StatusSeeOther)
}

type sessionView struct {
	State         domain.SessionState `json:"state"`
	Role          string              `json:"role"`
	InterviewType string              `json:"interview_type"`
	CurrentIndex  int                 `json:"current_index"`
	Total         int                 `json:"total"`
}

func viewOf(sess domain.InterviewSession) sessionView {
	return sessionView{
		State:         sess.State(),
		Role:          sess.Role,
		InterviewType: sess.InterviewType,
		CurrentIndex:  sess.CurrentIndex,
		Total:         len(sess.Questions),
	}
}

// InterviewStartHandler begins a new simulation, replacing any
// in-progress one.
func (s *Server) InterviewStartHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req questionsRequest
		if err := decodeAndValidate(w, r, &req); err != nil {
			writeError(w, r, err, nil)
			return
		}
		if err := s.fillQuestionDefaults(r, &req); err != nil {
			writeError(w, r, err, nil)
			return
		}
		sess := SessionFrom(r)
		interview, err := s.Interviews.Start(r.Context(), sess.SessionID, domain.QuestionRequest{
			Role:            req.Role,
			InterviewType:   req.InterviewType,
			ExperienceLevel: req.ExperienceLevel,
			Count:           req.Count,
		})
		if err != nil {
			writeError(w, r, fmt.Errorf("interview start: %w", err), nil)
			return
		}
		writeJSON(w, http.StatusOK, viewOf(interview))
	}
}

// InterviewCurrentHandler returns the question awaiting an answer.
func (s *Server) InterviewCurrentHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := SessionFrom(r)
		q, idx, err := s.Interviews.Current(r.Context(), sess.SessionID)
		if err != nil {
			if errors.Is(err, domain.ErrSessionOutOfRange) {
				redirectToStart(w, r)
				return
			}
			writeError(w, r, err, nil)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"index": idx, "question": q})
	}
}

// InterviewAnswerHandler records the answer to the current question.
func (s *Server) InterviewAnswerHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Answer string `json:"answer" validate:"required,max=10000"`
		}
		if err := decodeAndValidate(w, r, &req); err != nil {
			writeError(w, r, err, nil)
			return
		}
		sess := SessionFrom(r)
		interview, err := s.Interviews.SubmitAnswer(r.Context(), sess.SessionID, req.Answer)
		if err != nil {
			if errors.Is(err, domain.ErrSessionOutOfRange) {
				redirectToStart(w, r)
				return
			}
			writeError(w, r, err, nil)
			return
		}
		writeJSON(w, http.StatusOK, viewOf(interview))
	}
}

// InterviewRestartHandler abandons any simulation in progress.
func (s *Server) InterviewRestartHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := SessionFrom(r)
		if err := s.Interviews.Restart(r.Context(), sess.SessionID); err != nil {
			writeError(w, r, err, nil)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// InterviewResultsHandler evaluates a completed interview.
func (s *Server) InterviewResultsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := SessionFrom(r)
		eval, interview, err := s.Interviews.Results(r.Context(), sess.SessionID)
		if err != nil {
			if errors.Is(err, domain.ErrSessionOutOfRange) {
				redirectToStart(w, r)
				return
			}
			writeError(w, r, err, nil)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"session":    viewOf(interview),
			"evaluation": eval,
		})
	}
}
