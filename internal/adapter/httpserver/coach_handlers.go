package httpserver

import (
	"fmt"
	"net/http"

	"github.com/fairyhunter13/ai-interview-coach/internal/domain"
	"github.com/fairyhunter13/ai-interview-coach/internal/usecase"
)

type questionsRequest struct {
	Role            string `json:"role" validate:"omitempty,max=100"`
	InterviewType   string `json:"interview_type" validate:"omitempty,oneof=technical behavioral system-design mixed"`
	ExperienceLevel string `json:"experience_level" validate:"omitempty,oneof=entry mid senior"`
	Count           int    `json:"count" validate:"min=0,max=10"`
}

// fillQuestionDefaults resolves missing request fields from the user's
// profile so a bare POST still produces a personalized set.
func (s *Server) fillQuestionDefaults(r *http.Request, req *questionsRequest) error {
	if req.Role != "" && req.ExperienceLevel != "" {
		if req.InterviewType == "" {
			req.InterviewType = domain.InterviewTechnical
		}
		return nil
	}
	p, err := s.loadProfile(r, SessionFrom(r).UserID)
	if err != nil {
		return err
	}
	if req.Role == "" {
		req.Role = p.JobRole
	}
	if req.ExperienceLevel == "" {
		req.ExperienceLevel = usecase.ExperienceLevelForYears(p.ExperienceYears)
	}
	if req.InterviewType == "" {
		req.InterviewType = domain.InterviewTechnical
	}
	if req.Role == "" {
		return fmt.Errorf("%w: role required when profile has no job role", domain.ErrInvalidArgument)
	}
	return nil
}

// QuestionsHandler generates interview questions outside of a session,
// for practice browsing.
func (s *Server) QuestionsHandler() http.HandlerFunc {
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
		questions := s.Coach.GenerateQuestions(r.Context(), domain.QuestionRequest{
			Role:            req.Role,
			InterviewType:   req.InterviewType,
			ExperienceLevel: req.ExperienceLevel,
			Count:           req.Count,
		})
		writeJSON(w, http.StatusOK, map[string]any{"questions": questions})
	}
}

// RoadmapHandler generates a learning roadmap, defaulting role and
// experience from the profile.
func (s *Server) RoadmapHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			JobRole         string   `json:"job_role" validate:"omitempty,max=100"`
			ExperienceYears *int     `json:"experience_years" validate:"omitempty,min=0,max=60"`
			TargetSkills    []string `json:"target_skills" validate:"omitempty,max=20,dive,max=50"`
		}
		if err := decodeAndValidate(w, r, &req); err != nil {
			writeError(w, r, err, nil)
			return
		}
		jobRole := req.JobRole
		years := 0
		if req.ExperienceYears != nil {
			years = *req.ExperienceYears
		}
		if jobRole == "" || req.ExperienceYears == nil {
			p, err := s.loadProfile(r, SessionFrom(r).UserID)
			if err != nil {
				writeError(w, r, err, nil)
				return
			}
			if jobRole == "" {
				jobRole = p.JobRole
			}
			if req.ExperienceYears == nil {
				years = p.ExperienceYears
			}
		}
		if jobRole == "" {
			writeError(w, r, fmt.Errorf("%w: job_role required when profile has no job role", domain.ErrInvalidArgument), nil)
			return
		}
		roadmap := s.Coach.GenerateRoadmap(r.Context(), domain.RoadmapRequest{
			JobRole:         jobRole,
			ExperienceYears: years,
			TargetSkills:    req.TargetSkills,
		})
		writeJSON(w, http.StatusOK, roadmap)
	}
}
