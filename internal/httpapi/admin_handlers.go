package httpapi

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"technest/internal/auth"
	"technest/internal/store"
	"technest/models"
)

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	if _, err := auth.RequireAdmin(r.Context(), s.Accounts); err != nil {
		writeError(w, err)
		return
	}
	accounts, err := s.Accounts.List()
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]models.PublicAccount, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, a.Public())
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleSetRole(w http.ResponseWriter, r *http.Request) {
	if _, err := auth.RequireAdmin(r.Context(), s.Accounts); err != nil {
		writeError(w, err)
		return
	}
	target := chi.URLParam(r, "username")
	var req struct {
		Role models.Role `json:"role"`
	}
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := s.Accounts.UpdateRole(target, req.Role); err != nil {
		writeError(w, err)
		return
	}
	a, err := s.Accounts.Find(target)
	if err != nil || a == nil {
		writeError(w, fmt.Errorf("reload account: %w", store.ErrNotFound))
		return
	}
	writeJSON(w, http.StatusOK, a.Public())
}

func (s *Server) handleAdminDeleteUser(w http.ResponseWriter, r *http.Request) {
	p, err := auth.RequireAdmin(r.Context(), s.Accounts)
	if err != nil {
		writeError(w, err)
		return
	}
	target := chi.URLParam(r, "username")
	if !s.Policy.CanAdminDelete(p.Name, target) {
		writeError(w, fmt.Errorf("%w: cannot delete %s through the administrative path", store.ErrForbidden, target))
		return
	}
	if err := s.Accounts.Remove(target); err != nil {
		writeError(w, err)
		return
	}
	if err := s.Sessions.ClearIf(target); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
