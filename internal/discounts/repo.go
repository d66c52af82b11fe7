package discounts

import (
	"context"
	"time"

	"github.com/clubware/backoffice/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository handles discount persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to discount operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create persists a new discount row.
func (r *Repository) Create(ctx context.Context, discount *models.Discount) error {
	return r.db.WithContext(ctx).Create(discount).Error
}

// ActiveForMerchandise returns every discount on the batch whose window
// contains the date, in the query's natural order. No ORDER BY is applied:
// callers that pick one row get first-found semantics.
func (r *Repository) ActiveForMerchandise(ctx context.Context, merchandiseID uuid.UUID, date time.Time) ([]models.Discount, error) {
	var active []models.Discount
	err := r.db.WithContext(ctx).
		Where("merchandise_id = ? AND start_date <= ? AND end_date >= ?", merchandiseID, date, date).
		Find(&active).Error
	if err != nil {
		return nil, err
	}
	return active, nil
}

// ResolveWithTx returns the applicable discount for the batch on the date
// using the provided transaction, or nil when none is active.
func (r *Repository) ResolveWithTx(tx *gorm.DB, merchandiseID uuid.UUID, date time.Time) (*models.Discount, error) {
	if tx == nil {
		return nil, gorm.ErrInvalidTransaction
	}
	var active []models.Discount
	err := tx.
		Where("merchandise_id = ? AND start_date <= ? AND end_date >= ?", merchandiseID, date, date).
		Find(&active).Error
	if err != nil {
		return nil, err
	}
	if len(active) == 0 {
		return nil, nil
	}
	return &active[0], nil
}
