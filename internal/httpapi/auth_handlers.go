package httpapi

import (
	"fmt"
	"net/http"
	"time"

	"technest/internal/auth"
	"technest/internal/store"
	"technest/models"
)

// tokenTTL is how long issued tokens stay valid. Session restore re-issues
// a fresh token, so a long-lived mobile session outlives any single token.
const tokenTTL = 24 * time.Hour

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type sessionResponse struct {
	Token   string               `json:"token"`
	Account models.PublicAccount `json:"account"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	a, err := s.Accounts.Register(req.Username, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, a.Public())
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	a, err := s.Sessions.Login(req.Username, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	token, err := auth.IssueToken(s.Cfg.Auth.TokenSecret, a.Username, a.Role, tokenTTL)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse{Token: token, Account: a.Public()})
}

// handleSession restores the persisted session after a restart. No session
// is 204, not an error.
func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	a, err := s.Sessions.Restore()
	if err != nil {
		writeError(w, err)
		return
	}
	if a == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	token, err := auth.IssueToken(s.Cfg.Auth.TokenSecret, a.Username, a.Role, tokenTTL)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse{Token: token, Account: a.Public()})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if err := s.Sessions.Logout(); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleChangePassword(w http.ResponseWriter, r *http.Request) {
	if _, err := s.requireSessionOwner(r); err != nil {
		writeError(w, err)
		return
	}
	var req struct {
		CurrentPassword string `json:"current_password"`
		NewPassword     string `json:"new_password"`
	}
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := s.Sessions.ChangePassword(req.CurrentPassword, req.NewPassword); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteAccount(w http.ResponseWriter, r *http.Request) {
	if _, err := s.requireSessionOwner(r); err != nil {
		writeError(w, err)
		return
	}
	if err := s.Sessions.DeleteOwnAccount(); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// requireSessionOwner checks that the token holder is the account the active
// session belongs to, so session-bound operations cannot be driven by a
// token for a different account.
func (s *Server) requireSessionOwner(r *http.Request) (*auth.Principal, error) {
	p, err := auth.RequirePrincipal(r.Context())
	if err != nil {
		return nil, err
	}
	cur := s.Sessions.Current()
	if cur == nil {
		return nil, fmt.Errorf("%w: no active session", store.ErrInvalidCredentials)
	}
	if cur.Username != p.Name {
		return nil, fmt.Errorf("%w: session belongs to another account", store.ErrForbidden)
	}
	return p, nil
}
