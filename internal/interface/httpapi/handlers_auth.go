package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"

	"qtholidays-service/internal/domain/entity"
	"qtholidays-service/internal/usecase"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token   string          `json:"token"`
	Session *entity.Session `json:"session"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, fmt.Errorf("%w: malformed login body", entity.ErrInvalidRecord))
		return
	}

	session, err := s.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{Token: session.Token, Session: session})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	session, err := usecase.CurrentSession(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if err := s.auth.Logout(r.Context(), session); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	session, err := usecase.CurrentSession(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}
