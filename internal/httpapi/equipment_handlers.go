package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"technest/internal/store"
	"technest/models"
	"technest/repository"
)

func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: bad %s", store.ErrInvalidInput, name)
	}
	return id, nil
}

func queryInt(r *http.Request, name string) int {
	v, _ := strconv.Atoi(r.URL.Query().Get(name))
	return v
}

func (s *Server) handleListEquipment(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	list, err := s.Equipment.List(r.Context(), repository.ListEquipmentParams{
		Category: q.Get("category"),
		Status:   q.Get("status"),
		Query:    q.Get("q"),
		Limit:    queryInt(r, "limit"),
		Offset:   queryInt(r, "offset"),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleCreateEquipment(w http.ResponseWriter, r *http.Request) {
	var e models.Equipment
	if err := decode(r, &e); err != nil {
		writeError(w, err)
		return
	}
	if strings.TrimSpace(e.Name) == "" {
		writeError(w, fmt.Errorf("%w: name is required", store.ErrInvalidInput))
		return
	}
	created, err := s.Equipment.Create(r.Context(), &e)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleGetEquipment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	e, err := s.Equipment.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	if e == nil {
		writeError(w, fmt.Errorf("equipment %d: %w", id, store.ErrNotFound))
		return
	}
	writeJSON(w, http.StatusOK, e)
}

func (s *Server) handleUpdateEquipment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	var e models.Equipment
	if err := decode(r, &e); err != nil {
		writeError(w, err)
		return
	}
	if strings.TrimSpace(e.Name) == "" {
		writeError(w, fmt.Errorf("%w: name is required", store.ErrInvalidInput))
		return
	}
	e.ID = id
	if err := s.Equipment.Update(r.Context(), &e); err != nil {
		writeError(w, err)
		return
	}
	updated, err := s.Equipment.GetByID(r.Context(), id)
	if err != nil || updated == nil {
		writeError(w, fmt.Errorf("reload equipment: %w", store.ErrNotFound))
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteEquipment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	if err := s.Equipment.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListEquipmentLogs(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	logs, err := s.Maintenance.ListByEquipment(r.Context(), id, queryInt(r, "limit"), queryInt(r, "offset"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, logs)
}

func (s *Server) handleCreateLog(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	e, err := s.Equipment.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	if e == nil {
		writeError(w, fmt.Errorf("equipment %d: %w", id, store.ErrNotFound))
		return
	}
	var l models.MaintenanceLog
	if err := decode(r, &l); err != nil {
		writeError(w, err)
		return
	}
	if strings.TrimSpace(l.Action) == "" {
		writeError(w, fmt.Errorf("%w: action is required", store.ErrInvalidInput))
		return
	}
	l.EquipmentID = id
	created, err := s.Maintenance.Create(r.Context(), &l)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleListLogs(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	params := repository.ListLogsParams{
		Limit:  queryInt(r, "limit"),
		Offset: queryInt(r, "offset"),
	}
	if v := q.Get("equipment_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			writeError(w, fmt.Errorf("%w: bad equipment_id", store.ErrInvalidInput))
			return
		}
		params.EquipmentID = &id
	}
	if v := q.Get("from"); v != "" {
		params.DateFrom = &v
	}
	if v := q.Get("to"); v != "" {
		params.DateTo = &v
	}
	logs, err := s.Maintenance.List(r.Context(), params)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, logs)
}

func (s *Server) handleDeleteLog(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	if err := s.Maintenance.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
