package members

import (
	"context"

	"github.com/clubware/backoffice/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository handles member and sign-up persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to member operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindByID loads a member by id.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Member, error) {
	var member models.Member
	if err := r.db.WithContext(ctx).First(&member, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

// ListActive returns every member whose membership is active.
func (r *Repository) ListActive(ctx context.Context) ([]models.Member, error) {
	var active []models.Member
	err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Find(&active).Error
	if err != nil {
		return nil, err
	}
	return active, nil
}

// CreateWithTx writes the member row inside the provided transaction.
func (r *Repository) CreateWithTx(tx *gorm.DB, member *models.Member) error {
	if tx == nil {
		return gorm.ErrInvalidTransaction
	}
	return tx.Create(member).Error
}

// CreateSignUpWithTx writes the sign-up row inside the provided transaction.
func (r *Repository) CreateSignUpWithTx(tx *gorm.DB, signUp *models.SignUp) error {
	if tx == nil {
		return gorm.ErrInvalidTransaction
	}
	return tx.Create(signUp).Error
}

// SetActive flips the member's active flag. Reports whether the member existed.
func (r *Repository) SetActive(ctx context.Context, id uuid.UUID, active bool) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Member{}).
		Where("id = ?", id).
		Update("active", active)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}
