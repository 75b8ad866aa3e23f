package httpserver

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/fairyhunter13/ai-interview-coach/internal/domain"
)

type profileResponse struct {
	JobRole         string `json:"job_role"`
	ExperienceYears int    `json:"experience_years"`
	HasResume       bool   `json:"has_resume"`
	CompletionPct   int    `json:"completion_pct"`
}

// completionPct scores profile completeness: the account itself is worth
// 40, then 20 each for job role, experience, and an uploaded resume.
func completionPct(p domain.Profile, hasResume bool) int {
	pct := 40
	if p.JobRole != "" {
		pct += 20
	}
	if p.ExperienceYears > 0 {
		pct += 20
	}
	if hasResume {
		pct += 20
	}
	return pct
}

// loadProfile returns the user's profile, or the zero profile when none
// has been saved yet. An unset profile is not an API error.
func (s *Server) loadProfile(r *http.Request, userID string) (domain.Profile, error) {
	p, err := s.Profiles.Get(r.Context(), userID)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.Profile{UserID: userID}, nil
	}
	return p, err
}

// ProfileGetHandler returns the career profile with its completion score.
func (s *Server) ProfileGetHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := SessionFrom(r)
		p, err := s.loadProfile(r, sess.UserID)
		if err != nil {
			writeError(w, r, err, nil)
			return
		}
		hasResume := true
		if _, err := s.Resumes.GetLatest(r.Context(), sess.UserID); err != nil {
			if !errors.Is(err, domain.ErrNotFound) {
				writeError(w, r, err, nil)
				return
			}
			hasResume = false
		}
		writeJSON(w, http.StatusOK, profileResponse{
			JobRole:         p.JobRole,
			ExperienceYears: p.ExperienceYears,
			HasResume:       hasResume,
			CompletionPct:   completionPct(p, hasResume),
		})
	}
}

// ProfilePutHandler creates or replaces the career profile.
func (s *Server) ProfilePutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			JobRole         string `json:"job_role" validate:"required,max=100"`
			ExperienceYears int    `json:"experience_years" validate:"min=0,max=60"`
		}
		if err := decodeAndValidate(w, r, &req); err != nil {
			writeError(w, r, err, nil)
			return
		}
		sess := SessionFrom(r)
		err := s.Profiles.Upsert(r.Context(), domain.Profile{
			UserID:          sess.UserID,
			JobRole:         req.JobRole,
			ExperienceYears: req.ExperienceYears,
		})
		if err != nil {
			writeError(w, r, fmt.Errorf("profile upsert: %w", err), nil)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"job_role": req.JobRole, "experience_years": req.ExperienceYears})
	}
}
