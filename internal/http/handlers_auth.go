package http

import (
	"net/http"

	"financepro/internal/auth"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type identityRequest struct {
	Credential string `json:"credential"`
}

type resetRequest struct {
	Email       string `json:"email"`
	NewPassword string `json:"newPassword"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := readJSON(r, &req); err != nil {
		writeBadRequest(w, err)
		return
	}
	if err := s.auth.Register(r.Context(), req.Name, req.Email, req.Password); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := readJSON(r, &req); err != nil {
		writeBadRequest(w, err)
		return
	}
	profile, err := s.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

// handleGoogleLogin accepts the identity token the sign-in widget returns
// and starts a session from its claims.
func (s *Server) handleGoogleLogin(w http.ResponseWriter, r *http.Request) {
	var req identityRequest
	if err := readJSON(r, &req); err != nil {
		writeBadRequest(w, err)
		return
	}
	profile, err := s.auth.LoginWithIdentity(r.Context(), req.Credential)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (s *Server) handleResetPassword(w http.ResponseWriter, r *http.Request) {
	var req resetRequest
	if err := readJSON(r, &req); err != nil {
		writeBadRequest(w, err)
		return
	}
	if err := s.auth.ResetPassword(r.Context(), req.Email, req.NewPassword); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.auth.Logout(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	profile, ok, err := s.auth.Session(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if !ok {
		writeJSON(w, http.StatusOK, map[string]any{"authenticated": false})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"authenticated": true, "user": profile})
}

// handleDiagnosis dumps the registered users including plaintext passwords.
// Account-recovery surface for local setups only; never expose it beyond
// them.
func (s *Server) handleDiagnosis(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]auth.Credential{"users": s.auth.Diagnosis()})
}
