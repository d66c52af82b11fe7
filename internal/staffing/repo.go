package staffing

import (
	"context"

	"github.com/clubware/backoffice/pkg/db/models"
	"github.com/clubware/backoffice/pkg/enums"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository handles staff persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to staff operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create persists a new staff row.
func (r *Repository) Create(ctx context.Context, staff *models.Staff) error {
	return r.db.WithContext(ctx).Create(staff).Error
}

// ByStoreAndRole returns the store's staff holding the given role.
func (r *Repository) ByStoreAndRole(ctx context.Context, storeID uuid.UUID, role enums.StaffRole) ([]models.Staff, error) {
	var staff []models.Staff
	err := r.db.WithContext(ctx).
		Where("store_id = ? AND role = ?", storeID, role).
		Find(&staff).Error
	if err != nil {
		return nil, err
	}
	return staff, nil
}

// Delete removes the staff row. Reports whether it existed.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&models.Staff{}, "id = ?", id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}
