package httpserver

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/fairyhunter13/ai-interview-coach/internal/domain"
	"github.com/fairyhunter13/ai-interview-coach/pkg/textx"
)

// Resumes are accepted as plain text only; there is no binary document
// extraction pipeline.
func allowedResumeExt(name string) bool {
	return strings.HasSuffix(strings.ToLower(name), ".txt")
}

func allowedResumeMIME(m string) bool {
	return strings.HasPrefix(strings.ToLower(m), "text/")
}

// ResumeUploadHandler stores a plain-text resume for the user.
func (s *Server) ResumeUploadHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.Header.Get("Content-Type"), "multipart/form-data") {
			writeError(w, r, fmt.Errorf("%w: content-type must be multipart/form-data", domain.ErrInvalidArgument), nil)
			return
		}
		maxBytes := s.Cfg.MaxUploadMB * 1024 * 1024
		r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
		if err := r.ParseMultipartForm(maxBytes); err != nil {
			if strings.Contains(strings.ToLower(err.Error()), "too large") {
				writeJSON(w, http.StatusRequestEntityTooLarge, errorEnvelope{Error: apiError{
					Code: "INVALID_ARGUMENT", Message: "payload too large",
					Details: map[string]any{"max_mb": s.Cfg.MaxUploadMB},
				}})
				return
			}
			writeError(w, r, fmt.Errorf("%w: %v", domain.ErrInvalidArgument, err), nil)
			return
		}
		file, header, err := r.FormFile("resume")
		if err != nil {
			writeError(w, r, fmt.Errorf("%w: resume file required", domain.ErrInvalidArgument), map[string]string{"field": "resume"})
			return
		}
		defer func() { _ = file.Close() }()

		data, err := io.ReadAll(file)
		if err != nil {
			writeError(w, r, fmt.Errorf("%w: resume read: %v", domain.ErrInvalidArgument, err), nil)
			return
		}
		if !allowedResumeExt(header.Filename) {
			writeJSON(w, http.StatusUnsupportedMediaType, errorEnvelope{Error: apiError{
				Code: "INVALID_ARGUMENT", Message: "unsupported media type for resume (extension)",
				Details: map[string]any{"filename": header.Filename},
			}})
			return
		}
		m := mimetype.Detect(data)
		if !allowedResumeMIME(m.String()) {
			writeJSON(w, http.StatusUnsupportedMediaType, errorEnvelope{Error: apiError{
				Code: "INVALID_ARGUMENT", Message: "unsupported media type for resume (content)",
				Details: map[string]any{"mime": m.String(), "filename": header.Filename},
			}})
			return
		}

		text := textx.SanitizeText(string(data))
		if text == "" {
			writeError(w, r, fmt.Errorf("%w: resume is empty", domain.ErrInvalidArgument), nil)
			return
		}
		sess := SessionFrom(r)
		id, err := s.Resumes.Create(r.Context(), domain.Resume{
			UserID:   sess.UserID,
			Filename: header.Filename,
			Text:     text,
		})
		if err != nil {
			writeError(w, r, fmt.Errorf("resume store: %w", err), nil)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"id": id, "filename": header.Filename})
	}
}

// ResumeGetHandler reports the user's latest uploaded resume. The text
// itself stays server-side; clients only need to know what is on file.
func (s *Server) ResumeGetHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := SessionFrom(r)
		resume, err := s.Resumes.GetLatest(r.Context(), sess.UserID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				writeError(w, r, fmt.Errorf("%w: no resume uploaded", domain.ErrNotFound), nil)
				return
			}
			writeError(w, r, err, nil)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"id":         resume.ID,
			"filename":   resume.Filename,
			"chars":      len(resume.Text),
			"created_at": resume.CreatedAt,
		})
	}
}

// ResumeFeedbackHandler reviews the user's latest resume. The target
// role defaults to the profile's job role when the request omits it.
func (s *Server) ResumeFeedbackHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			TargetRole string `json:"target_role" validate:"omitempty,max=100"`
		}
		if err := decodeAndValidate(w, r, &req); err != nil {
			writeError(w, r, err, nil)
			return
		}
		sess := SessionFrom(r)
		resume, err := s.Resumes.GetLatest(r.Context(), sess.UserID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				writeError(w, r, fmt.Errorf("%w: no resume uploaded", domain.ErrNotFound), nil)
				return
			}
			writeError(w, r, err, nil)
			return
		}
		targetRole := req.TargetRole
		if targetRole == "" {
			p, err := s.loadProfile(r, sess.UserID)
			if err != nil {
				writeError(w, r, err, nil)
				return
			}
			targetRole = p.JobRole
		}
		if targetRole == "" {
			writeError(w, r, fmt.Errorf("%w: target_role required when profile has no job role", domain.ErrInvalidArgument), nil)
			return
		}
		fb := s.Coach.ResumeFeedback(r.Context(), domain.ResumeFeedbackRequest{
			ResumeText: resume.Text,
			TargetRole: targetRole,
		})
		writeJSON(w, http.StatusOK, fb)
	}
}
