package models

// Equipment represents one unit of tracked inventory.
// It maps to the `equipment` table in SQLite.
type Equipment struct {
	ID              int64  `db:"id" json:"id"`
	Name            string `db:"name" json:"name"`
	Category        string `db:"category" json:"category,omitempty"`
	InventoryNumber string `db:"inventory_number" json:"inventory_number,omitempty"`
	Location        string `db:"location" json:"location,omitempty"`
	Status          string `db:"status" json:"status,omitempty"`
	Notes           string `db:"notes" json:"notes,omitempty"`
	CreatedAt       string `db:"created_at" json:"created_at"`
	UpdatedAt       string `db:"updated_at" json:"updated_at"`
}

// MaintenanceLog is one service-history entry for a piece of equipment.
// Rows cascade on equipment deletion.
type MaintenanceLog struct {
	ID          int64  `db:"id" json:"id"`
	EquipmentID int64  `db:"equipment_id" json:"equipment_id"`
	Date        string `db:"date" json:"date"`
	Action      string `db:"action" json:"action"`
	Notes       string `db:"notes" json:"notes,omitempty"`
}
