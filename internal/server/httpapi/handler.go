package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/akorchagin/authgate/internal/common"
)

// maxBodyBytes bounds credential request bodies.
const maxBodyBytes = 4096

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

type userResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *HTTPServer) handleRegister(w http.ResponseWriter, r *http.Request) {
	req, err := decodeCredentials(r)
	if err != nil {
		s.writeError(w, r, common.ErrorValidation)
		return
	}

	secret, err := s.auth.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, tokenResponse{Token: secret})
}

func (s *HTTPServer) handleLogin(w http.ResponseWriter, r *http.Request) {
	req, err := decodeCredentials(r)
	if err != nil {
		s.writeError(w, r, common.ErrorValidation)
		return
	}

	secret, err := s.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, tokenResponse{Token: secret})
}

func (s *HTTPServer) handleLogout(w http.ResponseWriter, r *http.Request) {
	secret, ok := bearerSecret(r)
	if !ok {
		s.writeError(w, r, common.ErrorUnauthorized)
		return
	}

	if err := s.auth.Logout(r.Context(), secret); err != nil {
		s.writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (s *HTTPServer) handleCurrentUser(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(r.Context())
	if !ok {
		s.writeError(w, r, common.ErrorUnauthorized)
		return
	}

	s.writeJSON(w, http.StatusOK, userResponse{ID: user.ID, Email: user.Email})
}

func decodeCredentials(r *http.Request) (*credentialsRequest, error) {
	req := &credentialsRequest{}
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodyBytes))
	if err := dec.Decode(req); err != nil {
		return nil, err
	}
	return req, nil
}

// writeError maps service errors onto HTTP statuses. Messages are generic on
// purpose: neither driver details nor the distinction between rejection
// causes may leak to the caller.
func (s *HTTPServer) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, common.ErrorValidation):
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request"})
	case errors.Is(err, common.ErrorConflict):
		s.writeJSON(w, http.StatusConflict, errorResponse{Error: "email already registered"})
	case errors.Is(err, common.ErrorUnauthorized):
		s.writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthorized"})
	default:
		s.logger.Error(r.Context(), "request failed", "path", r.URL.Path, "error", err.Error())
		s.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

func (s *HTTPServer) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Error(context.Background(), "response encoding failed", "error", err.Error())
	}
}
