package suppliers

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

type supplierRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Supplier, error)
}

type deliveryReader interface {
	DeliveriesBySupplier(ctx context.Context, supplierID uuid.UUID, start, end time.Time) ([]models.Merchandise, error)
}

// BillLine is one delivered batch priced at cost.
type BillLine struct {
	MerchandiseID uuid.UUID
	ProductName   string
	Quantity      int
	BuyPrice      float64
	LineTotal     float64
}

// Bill is what the company owes a supplier for deliveries in a period. Lines
// price the full batch quantity at buy price regardless of what later sold.
type Bill struct {
	SupplierID   uuid.UUID
	SupplierName string
	Start        time.Time
	End          time.Time
	Lines        []BillLine
	GrandTotal   float64
}

// Service computes supplier bills.
type Service interface {
	// BillForPeriod covers deliveries with production date in [start, end],
	// both inclusive.
	BillForPeriod(ctx context.Context, supplierID uuid.UUID, start, end time.Time) (*Bill, error)
}

type service struct {
	suppliers  supplierRepository
	deliveries deliveryReader
}

// NewService builds the supplier billing service.
func NewService(suppliers supplierRepository, deliveries deliveryReader) (Service, error) {
	if suppliers == nil {
		return nil, fmt.Errorf("supplier repository required")
	}
	if deliveries == nil {
		return nil, fmt.Errorf("delivery reader required")
	}
	return &service{suppliers: suppliers, deliveries: deliveries}, nil
}

func (s *service) BillForPeriod(ctx context.Context, supplierID uuid.UUID, start, end time.Time) (*Bill, error) {
	if supplierID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "supplier id required")
	}
	if start.IsZero() || end.IsZero() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "billing period required")
	}
	if end.Before(start) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "billing period end before start")
	}

	supplier, err := s.suppliers.FindByID(ctx, supplierID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "supplier not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "loading supplier")
	}

	batches, err := s.deliveries.DeliveriesBySupplier(ctx, supplierID, start, end)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "querying deliveries")
	}

	bill := &Bill{
		SupplierID:   supplier.ID,
		SupplierName: supplier.Name,
		Start:        start,
		End:          end,
		Lines:        make([]BillLine, 0, len(batches)),
	}
	for _, batch := range batches {
		line := BillLine{
			MerchandiseID: batch.ID,
			ProductName:   batch.ProductName,
			Quantity:      batch.Quantity,
			BuyPrice:      batch.BuyPrice,
			LineTotal:     batch.BuyPrice * float64(batch.Quantity),
		}
		bill.Lines = append(bill.Lines, line)
		bill.GrandTotal += line.LineTotal
	}
	return bill, nil
}
