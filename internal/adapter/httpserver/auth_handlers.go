package httpserver

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/fairyhunter13/ai-interview-coach/internal/domain"
)

// decodeAndValidate decodes a capped JSON body into req and runs
// struct validation on it.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, req any) error {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		return fmt.Errorf("%w: invalid json", domain.ErrInvalidArgument)
	}
	if err := getValidator().Struct(req); err != nil {
		verrs := map[string]string{}
		if ve, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range ve {
				verrs[strings.ToLower(fe.Field())] = fe.Tag()
			}
		}
		return fmt.Errorf("%w: validation failed (%v)", domain.ErrInvalidArgument, verrs)
	}
	return nil
}

// RegisterHandler creates an account and logs the new user in.
func (s *Server) RegisterHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Username string `json:"username" validate:"required,min=3,max=64"`
			Email    string `json:"email" validate:"required,email"`
			Password string `json:"password" validate:"required,min=8,max=128"`
		}
		if err := decodeAndValidate(w, r, &req); err != nil {
			writeError(w, r, err, nil)
			return
		}
		hash, err := HashPassword(req.Password)
		if err != nil {
			writeError(w, r, fmt.Errorf("hash password: %w", err), nil)
			return
		}
		id, err := s.Users.Create(r.Context(), domain.User{
			Username:     req.Username,
			Email:        req.Email,
			PasswordHash: hash,
		})
		if err != nil {
			writeError(w, r, fmt.Errorf("register: %w", err), nil)
			return
		}
		sessionValue, err := s.Sessions.CreateSession(id)
		if err != nil {
			writeError(w, r, fmt.Errorf("create session: %w", err), nil)
			return
		}
		s.Sessions.SetSessionCookie(w, sessionValue)
		LoggerFrom(r).Info("user registered", "user_id", id)
		writeJSON(w, http.StatusCreated, map[string]string{"id": id, "username": req.Username})
	}
}

// LoginHandler verifies credentials and issues a fresh session cookie.
func (s *Server) LoginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Username string `json:"username" validate:"required"`
			Password string `json:"password" validate:"required"`
		}
		if err := decodeAndValidate(w, r, &req); err != nil {
			writeError(w, r, err, nil)
			return
		}
		u, err := s.Users.GetByUsername(r.Context(), req.Username)
		if err != nil || !VerifyPassword(req.Password, u.PasswordHash) {
			// Identical response for unknown user and wrong password.
			writeError(w, r, fmt.Errorf("%w: invalid credentials", domain.ErrUnauthorized), nil)
			return
		}
		sessionValue, err := s.Sessions.CreateSession(u.ID)
		if err != nil {
			writeError(w, r, fmt.Errorf("create session: %w", err), nil)
			return
		}
		s.Sessions.SetSessionCookie(w, sessionValue)
		LoggerFrom(r).Info("user logged in", "user_id", u.ID)
		writeJSON(w, http.StatusOK, map[string]string{"id": u.ID, "username": u.Username})
	}
}

// LogoutHandler clears the session cookie and any in-progress interview.
func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if sess := SessionFrom(r); sess != nil {
			if err := s.Interviews.Restart(r.Context(), sess.SessionID); err != nil {
				LoggerFrom(r).Warn("clearing interview on logout", "error", err)
			}
		}
		s.Sessions.ClearSessionCookie(w)
		w.WriteHeader(http.StatusNoContent)
	}
}

// MeHandler returns the authenticated user.
func (s *Server) MeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := SessionFrom(r)
		u, err := s.Users.GetByID(r.Context(), sess.UserID)
		if err != nil {
			writeError(w, r, err, nil)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"id": u.ID, "username": u.Username, "email": u.Email})
	}
}
