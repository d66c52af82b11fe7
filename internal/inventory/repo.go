package inventory

import (
	"context"
	"time"

	"github.com/clubware/backoffice/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository handles merchandise batch persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to merchandise operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create persists a new batch row.
func (r *Repository) Create(ctx context.Context, merch *models.Merchandise) error {
	return r.db.WithContext(ctx).Create(merch).Error
}

// FindByID loads a batch by id.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Merchandise, error) {
	var merch models.Merchandise
	if err := r.db.WithContext(ctx).First(&merch, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &merch, nil
}

// StoreInventory returns every batch at the store that still has stock, in
// the query's natural order.
func (r *Repository) StoreInventory(ctx context.Context, storeID uuid.UUID) ([]models.Merchandise, error) {
	var batches []models.Merchandise
	err := r.db.WithContext(ctx).
		Where("store_id = ? AND quantity > 0", storeID).
		Find(&batches).Error
	if err != nil {
		return nil, err
	}
	return batches, nil
}

// DeliveriesBySupplier returns batches from the supplier with a production
// date inside [start, end], both inclusive.
func (r *Repository) DeliveriesBySupplier(ctx context.Context, supplierID uuid.UUID, start, end time.Time) ([]models.Merchandise, error) {
	var batches []models.Merchandise
	err := r.db.WithContext(ctx).
		Where("supplier_id = ? AND production_date >= ? AND production_date <= ?", supplierID, start, end).
		Find(&batches).Error
	if err != nil {
		return nil, err
	}
	return batches, nil
}

// AddQuantity increments a batch's quantity. Used for restocks and returns;
// reports whether the batch existed.
func (r *Repository) AddQuantity(ctx context.Context, id uuid.UUID, qty int) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Merchandise{}).
		Where("id = ?", id).
		UpdateColumn("quantity", gorm.Expr("quantity + ?", qty))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

// FindByIDWithTx loads a batch inside the provided transaction.
func (r *Repository) FindByIDWithTx(tx *gorm.DB, id uuid.UUID) (*models.Merchandise, error) {
	if tx == nil {
		return nil, gorm.ErrInvalidTransaction
	}
	var merch models.Merchandise
	if err := tx.First(&merch, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &merch, nil
}

// FindByStoreAndNameWithTx returns the first batch in the store's current
// inventory carrying the product name (case-insensitive), or nil when the
// store has none. Depleted batches are history, not inventory, so they never
// match.
func (r *Repository) FindByStoreAndNameWithTx(tx *gorm.DB, storeID uuid.UUID, productName string) (*models.Merchandise, error) {
	if tx == nil {
		return nil, gorm.ErrInvalidTransaction
	}
	var batches []models.Merchandise
	err := tx.
		Where("store_id = ? AND quantity > 0 AND LOWER(product_name) = LOWER(?)", storeID, productName).
		Limit(1).
		Find(&batches).Error
	if err != nil {
		return nil, err
	}
	if len(batches) == 0 {
		return nil, nil
	}
	return &batches[0], nil
}

// DecrementWithTx subtracts qty from a batch only when enough stock remains.
// Reports whether a row was updated; a false return means the floor check
// failed and nothing changed.
func (r *Repository) DecrementWithTx(tx *gorm.DB, id uuid.UUID, qty int) (bool, error) {
	if tx == nil {
		return false, gorm.ErrInvalidTransaction
	}
	result := tx.
		Model(&models.Merchandise{}).
		Where("id = ? AND quantity >= ?", id, qty).
		UpdateColumn("quantity", gorm.Expr("quantity - ?", qty))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

// IncrementWithTx adds qty to a batch inside the provided transaction.
func (r *Repository) IncrementWithTx(tx *gorm.DB, id uuid.UUID, qty int) error {
	if tx == nil {
		return gorm.ErrInvalidTransaction
	}
	return tx.
		Model(&models.Merchandise{}).
		Where("id = ?", id).
		UpdateColumn("quantity", gorm.Expr("quantity + ?", qty)).Error
}

// CreateWithTx persists a new batch inside the provided transaction.
func (r *Repository) CreateWithTx(tx *gorm.DB, merch *models.Merchandise) error {
	if tx == nil {
		return gorm.ErrInvalidTransaction
	}
	return tx.Create(merch).Error
}
