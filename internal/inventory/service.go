package inventory

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

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type batchRepository interface {
	Create(ctx context.Context, merch *models.Merchandise) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Merchandise, error)
	StoreInventory(ctx context.Context, storeID uuid.UUID) ([]models.Merchandise, error)
	AddQuantity(ctx context.Context, id uuid.UUID, qty int) (bool, error)
	FindByStoreAndNameWithTx(tx *gorm.DB, storeID uuid.UUID, productName string) (*models.Merchandise, error)
	DecrementWithTx(tx *gorm.DB, id uuid.UUID, qty int) (bool, error)
	IncrementWithTx(tx *gorm.DB, id uuid.UUID, qty int) error
	CreateWithTx(tx *gorm.DB, merch *models.Merchandise) error
}

// Service exposes warehouse operations over merchandise batches.
type Service interface {
	StoreInventory(ctx context.Context, storeID uuid.UUID) ([]models.Merchandise, error)
	Stock(ctx context.Context, input StockInput) (*models.Merchandise, error)
	Restock(ctx context.Context, merchandiseID uuid.UUID, qty int) error
	Return(ctx context.Context, merchandiseID uuid.UUID, qty int) error
	Transfer(ctx context.Context, sourceID, destStoreID uuid.UUID, qty int) (*TransferResult, error)
}

// StockInput captures a brand-new shipment entering a store's inventory.
type StockInput struct {
	StoreID        uuid.UUID
	SupplierID     uuid.UUID
	ProductName    string
	Quantity       int
	BuyPrice       float64
	MarketPrice    float64
	ProductionDate time.Time
	ExpirationDate time.Time
}

type service struct {
	tx   txRunner
	repo batchRepository
}

// NewService builds the inventory service.
func NewService(tx txRunner, repo batchRepository) (Service, error) {
	if tx == nil {
		return nil, fmt.Errorf("tx runner required")
	}
	if repo == nil {
		return nil, fmt.Errorf("batch repository required")
	}
	return &service{tx: tx, repo: repo}, nil
}

func (s *service) StoreInventory(ctx context.Context, storeID uuid.UUID) ([]models.Merchandise, error) {
	if storeID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "store id required")
	}
	batches, err := s.repo.StoreInventory(ctx, storeID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "listing inventory")
	}
	return batches, nil
}

func (s *service) Stock(ctx context.Context, input StockInput) (*models.Merchandise, error) {
	if input.StoreID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "store id required")
	}
	if input.SupplierID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "supplier id required")
	}
	if input.ProductName == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product name required")
	}
	if input.Quantity <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid quantity")
	}
	if input.BuyPrice < 0 || input.MarketPrice < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "prices must not be negative")
	}

	merch := &models.Merchandise{
		ProductName:    input.ProductName,
		Quantity:       input.Quantity,
		BuyPrice:       input.BuyPrice,
		MarketPrice:    input.MarketPrice,
		ProductionDate: input.ProductionDate,
		ExpirationDate: input.ExpirationDate,
		StoreID:        input.StoreID,
		SupplierID:     input.SupplierID,
	}
	if err := s.repo.Create(ctx, merch); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "saving batch")
	}
	return merch, nil
}

func (s *service) Restock(ctx context.Context, merchandiseID uuid.UUID, qty int) error {
	return s.addQuantity(ctx, merchandiseID, qty)
}

// Return puts returned units back into the batch they were sold from. A
// return is a new operation, not a reversal: the original transaction record
// and its total stay untouched.
func (s *service) Return(ctx context.Context, merchandiseID uuid.UUID, qty int) error {
	return s.addQuantity(ctx, merchandiseID, qty)
}

func (s *service) addQuantity(ctx context.Context, merchandiseID uuid.UUID, qty int) error {
	if merchandiseID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "merchandise id required")
	}
	if qty <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid quantity")
	}
	updated, err := s.repo.AddQuantity(ctx, merchandiseID, qty)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeStorage, err, "updating quantity")
	}
	if !updated {
		return pkgerrors.New(pkgerrors.CodeNotFound, "merchandise not found")
	}
	return nil
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
