package reports

import (
	"context"
	"time"

	"github.com/clubware/backoffice/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository runs windowed reads over completed transactions.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to report queries.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) scoped(ctx context.Context, scope Scope) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&models.Transaction{})
	if scope.StoreID != uuid.Nil {
		query = query.Where("store_id = ?", scope.StoreID)
	}
	return query
}

// InRange returns transactions with purchase date in [start, end], both
// inclusive, ordered by purchase date then id.
func (r *Repository) InRange(ctx context.Context, scope Scope, start, end time.Time) ([]models.Transaction, error) {
	var transactions []models.Transaction
	err := r.scoped(ctx, scope).
		Where("purchase_date >= ? AND purchase_date <= ?", start, end).
		Order("purchase_date, id").
		Find(&transactions).Error
	if err != nil {
		return nil, err
	}
	return transactions, nil
}

// InWindow returns transactions with purchase date in [start, end), end
// exclusive, ordered by purchase date then id.
func (r *Repository) InWindow(ctx context.Context, scope Scope, start, end time.Time) ([]models.Transaction, error) {
	var transactions []models.Transaction
	err := r.scoped(ctx, scope).
		Where("purchase_date >= ? AND purchase_date < ?", start, end).
		Order("purchase_date, id").
		Find(&transactions).Error
	if err != nil {
		return nil, err
	}
	return transactions, nil
}

// ByMemberBetween returns the member's transactions with purchase date in
// [start, end], both inclusive.
func (r *Repository) ByMemberBetween(ctx context.Context, memberID uuid.UUID, start, end time.Time) ([]models.Transaction, error) {
	var transactions []models.Transaction
	err := r.db.WithContext(ctx).
		Where("member_id = ? AND purchase_date >= ? AND purchase_date <= ?", memberID, start, end).
		Order("purchase_date, id").
		Find(&transactions).Error
	if err != nil {
		return nil, err
	}
	return transactions, nil
}

// ByMember returns the member's full purchase history with items.
func (r *Repository) ByMember(ctx context.Context, memberID uuid.UUID) ([]models.Transaction, error) {
	var transactions []models.Transaction
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("member_id = ?", memberID).
		Order("purchase_date, id").
		Find(&transactions).Error
	if err != nil {
		return nil, err
	}
	return transactions, nil
}
