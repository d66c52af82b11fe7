package checkout

import (
	"context"

	"github.com/clubware/backoffice/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository persists completed transactions.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to transaction writes.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateWithTx writes the transaction and its item rows inside the provided
// transaction.
func (r *Repository) CreateWithTx(tx *gorm.DB, transaction *models.Transaction) error {
	if tx == nil {
		return gorm.ErrInvalidTransaction
	}
	return tx.Create(transaction).Error
}

// FindByID loads a transaction with its items.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Transaction, error) {
	var transaction models.Transaction
	err := r.db.WithContext(ctx).
		Preload("Items").
		First(&transaction, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &transaction, nil
}
