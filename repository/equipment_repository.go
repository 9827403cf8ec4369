package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"technest/models"
)

type EquipmentRepository struct {
	db *sql.DB
}

func NewEquipmentRepository(db *sql.DB) *EquipmentRepository {
	return &EquipmentRepository{db: db}
}

func timestamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// Create inserts a new equipment row and returns it with its generated ID.
// Timestamps are set here, not by the caller.
func (r *EquipmentRepository) Create(ctx context.Context, e *models.Equipment) (*models.Equipment, error) {
	if e == nil || strings.TrimSpace(e.Name) == "" {
		return nil, errors.New("equipment name is required")
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	now := timestamp()
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO equipment (name, category, inventory_number, location, status, notes, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.Name, e.Category, e.InventoryNumber, e.Location, e.Status, e.Notes, now, now)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	out := *e
	out.ID = id
	out.CreatedAt = now
	out.UpdatedAt = now
	return &out, nil
}

func (r *EquipmentRepository) GetByID(ctx context.Context, id int64) (*models.Equipment, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var e models.Equipment
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, category, inventory_number, location, status, notes, created_at, updated_at
		 FROM equipment WHERE id = ?`, id).
		Scan(&e.ID, &e.Name, &e.Category, &e.InventoryNumber, &e.Location, &e.Status, &e.Notes, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &e, nil
}

// ListEquipmentParams represents filters and pagination for List.
type ListEquipmentParams struct {
	Category string // optional exact match
	Status   string // optional exact match
	Query    string // optional substring match on name or inventory number
	Limit    int
	Offset   int
}

// List returns equipment matching the filters ordered by id.
func (r *EquipmentRepository) List(ctx context.Context, p ListEquipmentParams) ([]models.Equipment, error) {
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
	if p.Category != "" {
		where = append(where, "category = ?")
		args = append(args, p.Category)
	}
	if p.Status != "" {
		where = append(where, "status = ?")
		args = append(args, p.Status)
	}
	if p.Query != "" {
		where = append(where, "(name LIKE ? OR inventory_number LIKE ?)")
		pat := "%" + p.Query + "%"
		args = append(args, pat, pat)
	}

	query := `SELECT id, name, category, inventory_number, location, status, notes, created_at, updated_at FROM equipment`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY id LIMIT ? OFFSET ?"
	args = append(args, p.Limit, p.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Equipment
	for rows.Next() {
		var e models.Equipment
		if err := rows.Scan(&e.ID, &e.Name, &e.Category, &e.InventoryNumber, &e.Location, &e.Status, &e.Notes, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update rewrites all editable fields and bumps updated_at.
// Returns sql.ErrNoRows when the row is absent.
func (r *EquipmentRepository) Update(ctx context.Context, e *models.Equipment) error {
	if e == nil || strings.TrimSpace(e.Name) == "" {
		return errors.New("equipment name is required")
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := r.db.ExecContext(ctx,
		`UPDATE equipment SET name = ?, category = ?, inventory_number = ?, location = ?, status = ?, notes = ?, updated_at = ?
		 WHERE id = ?`,
		e.Name, e.Category, e.InventoryNumber, e.Location, e.Status, e.Notes, timestamp(), e.ID)
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

// Delete removes an equipment row; its maintenance logs cascade.
// Returns sql.ErrNoRows when the row is absent.
func (r *EquipmentRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `DELETE FROM equipment WHERE id = ?`, id)
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
