package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"technest/internal/db"
	"technest/models"
)

func TestMaintenanceRepository_CRUDAndCascade(t *testing.T) {
	d, err := db.Open("file:maintrepo?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })

	equipment := NewEquipmentRepository(d)
	logs := NewMaintenanceRepository(d)
	ctx := context.Background()

	e, err := equipment.Create(ctx, &models.Equipment{Name: "Generator"})
	if err != nil {
		t.Fatalf("create equipment: %v", err)
	}

	// Create with defaulted date.
	l, err := logs.Create(ctx, &models.MaintenanceLog{EquipmentID: e.ID, Action: "oil change"})
	if err != nil {
		t.Fatalf("create log: %v", err)
	}
	if l.ID == 0 || l.Date == "" {
		t.Fatalf("unexpected created log: %+v", l)
	}
	if _, err := logs.Create(ctx, &models.MaintenanceLog{EquipmentID: e.ID}); err == nil {
		t.Fatalf("expected error for missing action")
	}

	// Explicit dates for range filtering.
	if _, err := logs.Create(ctx, &models.MaintenanceLog{EquipmentID: e.ID, Action: "inspection", Date: "2024-01-10T00:00:00Z"}); err != nil {
		t.Fatalf("create dated log: %v", err)
	}
	if _, err := logs.Create(ctx, &models.MaintenanceLog{EquipmentID: e.ID, Action: "repair", Date: "2024-06-10T00:00:00Z"}); err != nil {
		t.Fatalf("create dated log: %v", err)
	}

	history, err := logs.ListByEquipment(ctx, e.ID, 10, 0)
	if err != nil || len(history) != 3 {
		t.Fatalf("history: %v len=%d", err, len(history))
	}

	from, to := "2024-01-01T00:00:00Z", "2024-03-01T00:00:00Z"
	ranged, err := logs.List(ctx, ListLogsParams{EquipmentID: &e.ID, DateFrom: &from, DateTo: &to})
	if err != nil || len(ranged) != 1 || ranged[0].Action != "inspection" {
		t.Fatalf("ranged list: %v %+v", err, ranged)
	}

	// Delete one entry.
	if err := logs.Delete(ctx, l.ID); err != nil {
		t.Fatalf("delete log: %v", err)
	}
	if err := logs.Delete(ctx, l.ID); !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("expected ErrNoRows, got %v", err)
	}

	// Deleting the equipment cascades to its history.
	if err := equipment.Delete(ctx, e.ID); err != nil {
		t.Fatalf("delete equipment: %v", err)
	}
	left, err := logs.ListByEquipment(ctx, e.ID, 10, 0)
	if err != nil || len(left) != 0 {
		t.Fatalf("history survived cascade: %v len=%d", err, len(left))
	}
}
