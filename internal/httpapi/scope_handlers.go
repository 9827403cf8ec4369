package httpapi

import (
	"net/http"

	"technest/internal/auth"
	"technest/models"
)

// Every handler in this file operates on the caller's own partition; the
// username always comes from the token, never from the request body.

func (s *Server) handleGetAssets(w http.ResponseWriter, r *http.Request) {
	p, err := auth.RequirePrincipal(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	cats, err := s.Scope.Assets(p.Name)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cats)
}

func (s *Server) handleSaveAssets(w http.ResponseWriter, r *http.Request) {
	p, err := auth.RequirePrincipal(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	var cats []models.AssetCategory
	if err := decode(r, &cats); err != nil {
		writeError(w, err)
		return
	}
	if err := s.Scope.SaveAssets(p.Name, cats); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cats)
}

func (s *Server) handleGetTickets(w http.ResponseWriter, r *http.Request) {
	p, err := auth.RequirePrincipal(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	tickets, err := s.Scope.Tickets(p.Name)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tickets)
}

func (s *Server) handleSaveTickets(w http.ResponseWriter, r *http.Request) {
	p, err := auth.RequirePrincipal(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	var tickets []models.Ticket
	if err := decode(r, &tickets); err != nil {
		writeError(w, err)
		return
	}
	if err := s.Scope.SaveTickets(p.Name, tickets); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tickets)
}

func (s *Server) handleCreateTicket(w http.ResponseWriter, r *http.Request) {
	p, err := auth.RequirePrincipal(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	var req struct {
		Subject string `json:"subject"`
		Message string `json:"message"`
	}
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	t, err := s.Scope.AddTicket(p.Name, req.Subject, req.Message)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, t)
}
