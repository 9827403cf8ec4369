package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	"technest/internal/store"
)

func (s *Server) handleAssistant(w http.ResponseWriter, r *http.Request) {
	if s.Assistant == nil || !s.Assistant.Enabled() {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "assistant is not configured"})
		return
	}
	var req struct {
		Message string `json:"message"`
	}
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		writeError(w, fmt.Errorf("%w: message is required", store.ErrInvalidInput))
		return
	}
	reply, err := s.Assistant.Ask(r.Context(), req.Message)
	if err != nil {
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"reply": reply})
}
