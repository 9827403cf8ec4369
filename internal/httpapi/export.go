package httpapi

import (
	"encoding/csv"
	"net/http"
	"strconv"

	"technest/repository"
)

// exportLimit bounds a single CSV export.
const exportLimit = 100000

func (s *Server) handleExportEquipment(w http.ResponseWriter, r *http.Request) {
	list, err := s.Equipment.List(r.Context(), repository.ListEquipmentParams{
		Category: r.URL.Query().Get("category"),
		Status:   r.URL.Query().Get("status"),
		Limit:    exportLimit,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="equipment.csv"`)
	cw := csv.NewWriter(w)
	_ = cw.Write([]string{"id", "name", "category", "inventory_number", "location", "status", "notes", "created_at", "updated_at"})
	for _, e := range list {
		_ = cw.Write([]string{
			strconv.FormatInt(e.ID, 10), e.Name, e.Category, e.InventoryNumber,
			e.Location, e.Status, e.Notes, e.CreatedAt, e.UpdatedAt,
		})
	}
	cw.Flush()
}

func (s *Server) handleExportLogs(w http.ResponseWriter, r *http.Request) {
	params := repository.ListLogsParams{Limit: exportLimit}
	if v := r.URL.Query().Get("equipment_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err == nil {
			params.EquipmentID = &id
		}
	}
	logs, err := s.Maintenance.List(r.Context(), params)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="service-history.csv"`)
	cw := csv.NewWriter(w)
	_ = cw.Write([]string{"id", "equipment_id", "date", "action", "notes"})
	for _, l := range logs {
		_ = cw.Write([]string{
			strconv.FormatInt(l.ID, 10), strconv.FormatInt(l.EquipmentID, 10),
			l.Date, l.Action, l.Notes,
		})
	}
	cw.Flush()
}
