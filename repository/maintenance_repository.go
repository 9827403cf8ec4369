package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"technest/models"
)

type MaintenanceRepository struct {
	db *sql.DB
}

func NewMaintenanceRepository(db *sql.DB) *MaintenanceRepository {
	return &MaintenanceRepository{db: db}
}

// Create appends a service-history entry for a piece of equipment.
// An empty date defaults to the current time.
func (r *MaintenanceRepository) Create(ctx context.Context, l *models.MaintenanceLog) (*models.MaintenanceLog, error) {
	if l == nil || l.EquipmentID == 0 || strings.TrimSpace(l.Action) == "" {
		return nil, errors.New("equipment id and action are required")
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	date := l.Date
	if date == "" {
		date = timestamp()
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO maintenance_logs (equipment_id, date, action, notes) VALUES (?, ?, ?, ?)`,
		l.EquipmentID, date, l.Action, l.Notes)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	out := *l
	out.ID = id
	out.Date = date
	return &out, nil
}

func (r *MaintenanceRepository) GetByID(ctx context.Context, id int64) (*models.MaintenanceLog, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var l models.MaintenanceLog
	err := r.db.QueryRowContext(ctx,
		`SELECT id, equipment_id, date, action, notes FROM maintenance_logs WHERE id = ?`, id).
		Scan(&l.ID, &l.EquipmentID, &l.Date, &l.Action, &l.Notes)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &l, nil
}

// ListLogsParams represents filters and pagination for List.
type ListLogsParams struct {
	EquipmentID *int64  // optional filter by equipment
	DateFrom    *string // optional inclusive lower bound on date
	DateTo      *string // optional inclusive upper bound on date
	Limit       int
	Offset      int
}

// List returns service-history entries ordered by date desc, id desc.
func (r *MaintenanceRepository) List(ctx context.Context, p ListLogsParams) ([]models.MaintenanceLog, error) {
	if p.Limit <= 0 {
		p.Limit = 100
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var where []string
	var args []any
	if p.EquipmentID != nil {
		where = append(where, "equipment_id = ?")
		args = append(args, *p.EquipmentID)
	}
	if p.DateFrom != nil {
		where = append(where, "date >= ?")
		args = append(args, *p.DateFrom)
	}
	if p.DateTo != nil {
		where = append(where, "date <= ?")
		args = append(args, *p.DateTo)
	}

	query := `SELECT id, equipment_id, date, action, notes FROM maintenance_logs`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY date DESC, id DESC LIMIT ? OFFSET ?"
	args = append(args, p.Limit, p.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.MaintenanceLog
	for rows.Next() {
		var l models.MaintenanceLog
		if err := rows.Scan(&l.ID, &l.EquipmentID, &l.Date, &l.Action, &l.Notes); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListByEquipment returns the service history for one piece of equipment.
func (r *MaintenanceRepository) ListByEquipment(ctx context.Context, equipmentID int64, limit, offset int) ([]models.MaintenanceLog, error) {
	return r.List(ctx, ListLogsParams{EquipmentID: &equipmentID, Limit: limit, Offset: offset})
}

// Delete removes one entry. Returns sql.ErrNoRows when absent.
func (r *MaintenanceRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `DELETE FROM maintenance_logs WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
