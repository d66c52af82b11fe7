package discounts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/clubware/backoffice/pkg/db/models"
	pkgerrors "github.com/clubware/backoffice/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type discountRepository interface {
	Create(ctx context.Context, discount *models.Discount) error
	ActiveForMerchandise(ctx context.Context, merchandiseID uuid.UUID, date time.Time) ([]models.Discount, error)
}

type merchandiseLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Merchandise, error)
}

// Service resolves and manages discounts.
type Service interface {
	// Resolve returns the discount applying to the batch on the date, or nil
	// when none is active. When several windows overlap, the first row in the
	// query's natural order wins; there is no tie-break by percentage or
	// recency.
	Resolve(ctx context.Context, merchandiseID uuid.UUID, date time.Time) (*models.Discount, error)
	Create(ctx context.Context, input CreateDiscountInput) (*models.Discount, error)
}

// CreateDiscountInput captures the fields for a new discount window.
type CreateDiscountInput struct {
	MerchandiseID uuid.UUID
	Percent       int
	StartDate     time.Time
	EndDate       time.Time
}

type service struct {
	repo        discountRepository
	merchandise merchandiseLoader
}

// NewService builds a discount service.
func NewService(repo discountRepository, merchandise merchandiseLoader) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("discount repository required")
	}
	if merchandise == nil {
		return nil, fmt.Errorf("merchandise loader required")
	}
	return &service{repo: repo, merchandise: merchandise}, nil
}

func (s *service) Resolve(ctx context.Context, merchandiseID uuid.UUID, date time.Time) (*models.Discount, error) {
	if merchandiseID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "merchandise id required")
	}
	active, err := s.repo.ActiveForMerchandise(ctx, merchandiseID, date)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "querying discounts")
	}
	if len(active) == 0 {
		return nil, nil
	}
	return &active[0], nil
}

func (s *service) Create(ctx context.Context, input CreateDiscountInput) (*models.Discount, error) {
	if input.MerchandiseID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "merchandise id required")
	}
	if input.Percent < 0 || input.Percent > 100 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "discount percent must be between 0 and 100")
	}
	if input.EndDate.Before(input.StartDate) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "discount end date before start date")
	}

	if _, err := s.merchandise.FindByID(ctx, input.MerchandiseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "merchandise not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "loading merchandise")
	}

	discount := &models.Discount{
		MerchandiseID: input.MerchandiseID,
		Percent:       input.Percent,
		StartDate:     input.StartDate,
		EndDate:       input.EndDate,
	}
	if err := s.repo.Create(ctx, discount); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "saving discount")
	}
	return discount, nil
}

// UnitPrice applies a discount to a market price. The percentage is a whole
// number off a floating price; standard float64 arithmetic, no rounding.
func UnitPrice(marketPrice float64, discount *models.Discount) float64 {
	if discount == nil {
		return marketPrice
	}
	return marketPrice * float64(100-discount.Percent) / 100
}
