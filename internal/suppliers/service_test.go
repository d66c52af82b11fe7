package suppliers

import (
	"context"
	"testing"
	"time"

	"github.com/clubware/backoffice/internal/inventory"
	"github.com/clubware/backoffice/pkg/db/models"
	pkgerrors "github.com/clubware/backoffice/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:suppliers_" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.Supplier{}, &models.Merchandise{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func newTestService(t *testing.T, db *gorm.DB) Service {
	t.Helper()
	svc, err := NewService(NewRepository(db), inventory.NewRepository(db))
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func seedSupplier(t *testing.T, db *gorm.DB) models.Supplier {
	t.Helper()
	supplier := models.Supplier{
		Name:     "Carolina Provisions",
		Phone:    "919-555-0199",
		Email:    "orders@carolinaprovisions.example.com",
		Location: "Durham NC",
	}
	if err := NewRepository(db).Create(context.Background(), &supplier); err != nil {
		t.Fatalf("seed supplier: %v", err)
	}
	return supplier
}

func seedDelivery(t *testing.T, db *gorm.DB, supplierID uuid.UUID, produced time.Time, qty int, buyPrice float64) models.Merchandise {
	t.Helper()
	merch := models.Merchandise{
		ProductName:    "Crate",
		Quantity:       qty,
		BuyPrice:       buyPrice,
		MarketPrice:    buyPrice * 2,
		ProductionDate: produced,
		ExpirationDate: produced.AddDate(1, 0, 0),
		StoreID:        uuid.New(),
		SupplierID:     supplierID,
	}
	if err := db.Create(&merch).Error; err != nil {
		t.Fatalf("seed delivery: %v", err)
	}
	return merch
}

func TestBillForPeriod(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	ctx := context.Background()
	supplier := seedSupplier(t, db)
	start := models.Date(2024, time.April, 1)
	end := models.Date(2024, time.April, 30)

	seedDelivery(t, db, supplier.ID, start.AddDate(0, 0, -1), 10, 1.0)
	seedDelivery(t, db, supplier.ID, start, 10, 2.5)
	seedDelivery(t, db, supplier.ID, end, 4, 3.0)
	seedDelivery(t, db, supplier.ID, end.AddDate(0, 0, 1), 10, 1.0)
	seedDelivery(t, db, uuid.New(), start, 10, 9.0)

	svc := newTestService(t, db)
	bill, err := svc.BillForPeriod(ctx, supplier.ID, start, end)
	if err != nil {
		t.Fatalf("bill: %v", err)
	}
	if bill.SupplierName != supplier.Name {
		t.Fatalf("supplier name = %q", bill.SupplierName)
	}
	if len(bill.Lines) != 2 {
		t.Fatalf("lines = %d, want 2", len(bill.Lines))
	}
	// 10*2.50 + 4*3.00
	if bill.GrandTotal != 37.0 {
		t.Fatalf("grand total = %v, want 37.00", bill.GrandTotal)
	}
}

func TestBillForPeriodEmptyIsValid(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	supplier := seedSupplier(t, db)
	svc := newTestService(t, db)

	start := models.Date(2024, time.April, 1)
	bill, err := svc.BillForPeriod(context.Background(), supplier.ID, start, start.AddDate(0, 0, 6))
	if err != nil {
		t.Fatalf("bill: %v", err)
	}
	if len(bill.Lines) != 0 || bill.GrandTotal != 0 {
		t.Fatalf("expected empty bill, got %+v", bill)
	}
}

func TestBillForPeriodRejectsBadInput(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	supplier := seedSupplier(t, db)
	svc := newTestService(t, db)
	ctx := context.Background()
	start := models.Date(2024, time.April, 10)

	_, err := svc.BillForPeriod(ctx, supplier.ID, start, start.AddDate(0, 0, -1))
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}

	_, err = svc.BillForPeriod(ctx, uuid.New(), start, start)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}
