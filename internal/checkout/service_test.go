package checkout

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/clubware/backoffice/internal/discounts"
	"github.com/clubware/backoffice/internal/inventory"
	"github.com/clubware/backoffice/internal/members"
	"github.com/clubware/backoffice/internal/staffing"
	"github.com/clubware/backoffice/pkg/db/models"
	"github.com/clubware/backoffice/pkg/enums"
	pkgerrors "github.com/clubware/backoffice/pkg/errors"
	"github.com/clubware/backoffice/pkg/logger"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type gormTxRunner struct {
	db *gorm.DB
}

func (r gormTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:checkout_" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	err = db.AutoMigrate(
		&models.Merchandise{},
		&models.Discount{},
		&models.Staff{},
		&models.Member{},
		&models.Transaction{},
		&models.TransactionItem{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func newTestService(t *testing.T, db *gorm.DB) Service {
	t.Helper()
	log := logger.New(logger.Options{ServiceName: "checkout-test", Output: io.Discard})
	svc, err := NewService(
		log,
		gormTxRunner{db: db},
		inventory.NewRepository(db),
		discounts.NewRepository(db),
		NewRepository(db),
		staffing.NewRepository(db),
		members.NewRepository(db),
	)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

type fixture struct {
	storeID uuid.UUID
	cashier models.Staff
	member  models.Member
}

func seedFixture(t *testing.T, db *gorm.DB) fixture {
	t.Helper()
	f := fixture{storeID: uuid.New()}
	f.cashier = models.Staff{
		StoreID: f.storeID,
		Name:    "Sam Ortiz",
		Age:     31,
		Address: "9 Dock Rd",
		Phone:   "919-555-0177",
		Email:   "sam.ortiz@example.com",
		Role:    enums.StaffRoleBilling,
	}
	if err := db.Create(&f.cashier).Error; err != nil {
		t.Fatalf("seed cashier: %v", err)
	}
	f.member = models.Member{
		FirstName: "Ava",
		LastName:  "Chen",
		Level:     enums.MembershipLevelPlatinum,
		Email:     "ava.chen@example.com",
		Phone:     "919-555-0011",
		Address:   "77 Elm St",
		Active:    true,
	}
	if err := db.Create(&f.member).Error; err != nil {
		t.Fatalf("seed member: %v", err)
	}
	return f
}

func seedBatch(t *testing.T, db *gorm.DB, storeID uuid.UUID, name string, qty int, marketPrice float64) models.Merchandise {
	t.Helper()
	merch := models.Merchandise{
		ProductName: name,
		Quantity:    qty,
		BuyPrice:    marketPrice / 2,
		MarketPrice: marketPrice,
		StoreID:     storeID,
		SupplierID:  uuid.New(),
	}
	if err := db.Create(&merch).Error; err != nil {
		t.Fatalf("seed batch: %v", err)
	}
	return merch
}

func TestCompleteAppliesDiscountPerUnit(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	ctx := context.Background()
	f := seedFixture(t, db)
	merch := seedBatch(t, db, f.storeID, "Trail Mix", 10, 10.0)
	purchaseDate := models.Date(2024, time.June, 10)

	discount := models.Discount{
		MerchandiseID: merch.ID,
		Percent:       20,
		StartDate:     purchaseDate.AddDate(0, 0, -3),
		EndDate:       purchaseDate.AddDate(0, 0, 3),
	}
	if err := db.Create(&discount).Error; err != nil {
		t.Fatalf("seed discount: %v", err)
	}

	svc := newTestService(t, db)
	cart, err := svc.Begin(ctx, f.storeID, f.member.ID, purchaseDate)
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	cart.AddUnit(merch.ID)
	cart.AddUnit(merch.ID)

	transaction, err := svc.Complete(ctx, cart)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if transaction.TotalPrice != 16.0 {
		t.Fatalf("total = %v, want 16.00", transaction.TotalPrice)
	}
	if len(transaction.Items) != 2 {
		t.Fatalf("items = %d, want 2", len(transaction.Items))
	}
	for i, item := range transaction.Items {
		if item.UnitPrice != 8.0 {
			t.Fatalf("item %d unit price = %v, want 8.00", i, item.UnitPrice)
		}
		if item.LineNo != i+1 {
			t.Fatalf("item %d line no = %d", i, item.LineNo)
		}
	}

	var got models.Merchandise
	if err := db.First(&got, "id = ?", merch.ID).Error; err != nil {
		t.Fatalf("load batch: %v", err)
	}
	if got.Quantity != 8 {
		t.Fatalf("quantity = %d, want 8", got.Quantity)
	}

	reloaded, err := NewRepository(db).FindByID(ctx, transaction.ID)
	if err != nil {
		t.Fatalf("reload transaction: %v", err)
	}
	if reloaded.TotalPrice != 16.0 || len(reloaded.Items) != 2 {
		t.Fatalf("persisted transaction mismatch: %+v", reloaded)
	}
}

func TestCompletePricesAtFullWhenNoDiscount(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	ctx := context.Background()
	f := seedFixture(t, db)
	merch := seedBatch(t, db, f.storeID, "Espresso Beans", 4, 14.5)

	svc := newTestService(t, db)
	cart, err := svc.Begin(ctx, f.storeID, f.member.ID, models.Date(2024, time.June, 10))
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	cart.AddUnit(merch.ID)

	transaction, err := svc.Complete(ctx, cart)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if transaction.TotalPrice != 14.5 {
		t.Fatalf("total = %v, want 14.50", transaction.TotalPrice)
	}
}

func TestCompleteRollsBackOnShortfall(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	ctx := context.Background()
	f := seedFixture(t, db)
	plenty := seedBatch(t, db, f.storeID, "Peanuts", 10, 5.0)
	scarce := seedBatch(t, db, f.storeID, "Saffron", 1, 40.0)

	svc := newTestService(t, db)
	cart, err := svc.Begin(ctx, f.storeID, f.member.ID, models.Date(2024, time.June, 10))
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	cart.AddUnit(plenty.ID)
	cart.AddUnit(scarce.ID)
	cart.AddUnit(scarce.ID)

	_, err = svc.Complete(ctx, cart)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodePrecondition {
		t.Fatalf("expected precondition failure, got %v", err)
	}
	if typed.Details() == nil {
		t.Fatal("expected the failing batch in error details")
	}

	// Nothing from the attempt sticks, not even the batch that had stock.
	for _, seeded := range []models.Merchandise{plenty, scarce} {
		var got models.Merchandise
		if err := db.First(&got, "id = ?", seeded.ID).Error; err != nil {
			t.Fatalf("load batch: %v", err)
		}
		if got.Quantity != seeded.Quantity {
			t.Fatalf("%s quantity = %d, want %d", got.ProductName, got.Quantity, seeded.Quantity)
		}
	}
	var count int64
	if err := db.Model(&models.Transaction{}).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected no transactions, got %d", count)
	}
}

func TestBeginPinsBillingStaffAtStore(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	ctx := context.Background()
	f := seedFixture(t, db)

	svc := newTestService(t, db)
	cart, err := svc.Begin(ctx, f.storeID, f.member.ID, models.Date(2024, time.June, 10))
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	if cart.CashierID != f.cashier.ID {
		t.Fatalf("cashier = %s, want %s", cart.CashierID, f.cashier.ID)
	}
}

func TestBeginFailsWithoutBillingStaff(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	ctx := context.Background()
	f := seedFixture(t, db)

	// A store staffed only by warehouse crew cannot sell.
	understaffed := uuid.New()
	warehouse := models.Staff{
		StoreID: understaffed,
		Name:    "Lee Quinn",
		Age:     40,
		Address: "1 Depot Ln",
		Phone:   "919-555-0123",
		Email:   "lee.quinn@example.com",
		Role:    enums.StaffRoleWarehouse,
	}
	if err := db.Create(&warehouse).Error; err != nil {
		t.Fatalf("seed staff: %v", err)
	}

	svc := newTestService(t, db)
	cases := []struct {
		name    string
		storeID uuid.UUID
	}{
		{"no staff at all", uuid.New()},
		{"no billing role", understaffed},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Begin(ctx, tc.storeID, f.member.ID, models.Date(2024, time.June, 10))
			if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodePrecondition {
				t.Fatalf("expected precondition failure, got %v", err)
			}
		})
	}
}

func TestBeginRejectsInactiveMember(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	ctx := context.Background()
	f := seedFixture(t, db)

	if err := db.Model(&models.Member{}).Where("id = ?", f.member.ID).Update("active", false).Error; err != nil {
		t.Fatalf("deactivate: %v", err)
	}

	svc := newTestService(t, db)
	_, err := svc.Begin(ctx, f.storeID, f.member.ID, models.Date(2024, time.June, 10))
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodePrecondition {
		t.Fatalf("expected precondition failure, got %v", err)
	}
}

func TestCompleteRejectsEmptyCart(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	f := seedFixture(t, db)
	svc := newTestService(t, db)

	cart, err := svc.Begin(context.Background(), f.storeID, f.member.ID, models.Date(2024, time.June, 10))
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	_, err = svc.Complete(context.Background(), cart)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCartRemoveUnit(t *testing.T) {
	t.Parallel()

	var cart Cart
	a, b := uuid.New(), uuid.New()
	cart.AddUnit(a)
	cart.AddUnit(b)
	cart.AddUnit(a)

	if !cart.RemoveUnit(a) {
		t.Fatal("expected removal")
	}
	if cart.Size() != 2 {
		t.Fatalf("size = %d, want 2", cart.Size())
	}
	units := cart.Units()
	if units[0] != a || units[1] != b {
		t.Fatalf("unexpected order: %v", units)
	}
	if cart.RemoveUnit(uuid.New()) {
		t.Fatal("removed a unit that was never added")
	}
}
