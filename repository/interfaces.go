package repository

import (
	"context"

	"technest/models"
)

// EquipmentRepositoryI defines operations on Equipment entities.
type EquipmentRepositoryI interface {
	Create(ctx context.Context, e *models.Equipment) (*models.Equipment, error)
	GetByID(ctx context.Context, id int64) (*models.Equipment, error)
	List(ctx context.Context, p ListEquipmentParams) ([]models.Equipment, error)
	Update(ctx context.Context, e *models.Equipment) error
	Delete(ctx context.Context, id int64) error
}

// MaintenanceRepositoryI defines operations on service-history entries.
type MaintenanceRepositoryI interface {
	Create(ctx context.Context, l *models.MaintenanceLog) (*models.MaintenanceLog, error)
	GetByID(ctx context.Context, id int64) (*models.MaintenanceLog, error)
	List(ctx context.Context, p ListLogsParams) ([]models.MaintenanceLog, error)
	ListByEquipment(ctx context.Context, equipmentID int64, limit, offset int) ([]models.MaintenanceLog, error)
	Delete(ctx context.Context, id int64) error
}
