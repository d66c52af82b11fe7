package discounts

import (
	"context"
	"testing"
	"time"

	"github.com/clubware/backoffice/pkg/db/models"
	pkgerrors "github.com/clubware/backoffice/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type stubMerchandiseLoader struct {
	merch *models.Merchandise
	err   error
}

func (s stubMerchandiseLoader) FindByID(ctx context.Context, id uuid.UUID) (*models.Merchandise, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.merch == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return s.merch, nil
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:discounts_" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.Merchandise{}, &models.Discount{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func newTestService(t *testing.T, db *gorm.DB, merch *models.Merchandise) Service {
	t.Helper()
	svc, err := NewService(NewRepository(db), stubMerchandiseLoader{merch: merch})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestResolveWindowBoundaries(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	ctx := context.Background()
	merchID := uuid.New()

	start := models.Date(2024, time.March, 10)
	end := models.Date(2024, time.March, 20)
	seed := models.Discount{MerchandiseID: merchID, Percent: 15, StartDate: start, EndDate: end}
	if err := db.Create(&seed).Error; err != nil {
		t.Fatalf("seed discount: %v", err)
	}

	svc := newTestService(t, db, nil)

	cases := []struct {
		name string
		date time.Time
		want bool
	}{
		{"day before start", start.AddDate(0, 0, -1), false},
		{"start date", start, true},
		{"end date", end, true},
		{"day after end", end.AddDate(0, 0, 1), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := svc.Resolve(ctx, merchID, tc.date)
			if err != nil {
				t.Fatalf("resolve: %v", err)
			}
			if tc.want && got == nil {
				t.Fatal("expected discount to apply")
			}
			if !tc.want && got != nil {
				t.Fatalf("expected no discount, got %d%%", got.Percent)
			}
		})
	}
}

func TestResolveNoDiscountIsNil(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := newTestService(t, db, nil)

	got, err := svc.Resolve(context.Background(), uuid.New(), models.Date(2024, time.June, 1))
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil, got %+v", got)
	}
}

func TestResolveOverlappingWindowsPicksOne(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	ctx := context.Background()
	merchID := uuid.New()
	date := models.Date(2024, time.March, 15)

	for _, d := range []models.Discount{
		{MerchandiseID: merchID, Percent: 10, StartDate: date.AddDate(0, 0, -5), EndDate: date.AddDate(0, 0, 5)},
		{MerchandiseID: merchID, Percent: 30, StartDate: date.AddDate(0, 0, -2), EndDate: date.AddDate(0, 0, 2)},
	} {
		if err := db.Create(&d).Error; err != nil {
			t.Fatalf("seed discount: %v", err)
		}
	}

	svc := newTestService(t, db, nil)
	first, err := svc.Resolve(ctx, merchID, date)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if first == nil {
		t.Fatal("expected a discount")
	}

	// Same query, no writes in between: same pick.
	second, err := svc.Resolve(ctx, merchID, date)
	if err != nil {
		t.Fatalf("resolve again: %v", err)
	}
	if second == nil || second.Percent != first.Percent {
		t.Fatalf("expected stable pick %d%%, got %+v", first.Percent, second)
	}
}

func TestCreateRejectsBadInput(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	merch := &models.Merchandise{ID: uuid.New()}
	svc := newTestService(t, db, merch)
	ctx := context.Background()
	start := models.Date(2024, time.May, 1)

	cases := []struct {
		name  string
		input CreateDiscountInput
	}{
		{"missing merchandise id", CreateDiscountInput{Percent: 10, StartDate: start, EndDate: start}},
		{"percent above 100", CreateDiscountInput{MerchandiseID: merch.ID, Percent: 101, StartDate: start, EndDate: start}},
		{"negative percent", CreateDiscountInput{MerchandiseID: merch.ID, Percent: -1, StartDate: start, EndDate: start}},
		{"end before start", CreateDiscountInput{MerchandiseID: merch.ID, Percent: 10, StartDate: start, EndDate: start.AddDate(0, 0, -1)}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tc.input)
			if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestCreateUnknownMerchandise(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := newTestService(t, db, nil)

	start := models.Date(2024, time.May, 1)
	_, err := svc.Create(context.Background(), CreateDiscountInput{
		MerchandiseID: uuid.New(),
		Percent:       10,
		StartDate:     start,
		EndDate:       start.AddDate(0, 0, 7),
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestUnitPrice(t *testing.T) {
	t.Parallel()

	if got := UnitPrice(10.0, nil); got != 10.0 {
		t.Fatalf("expected full price, got %v", got)
	}
	d := &models.Discount{Percent: 20}
	if got := UnitPrice(10.0, d); got != 8.0 {
		t.Fatalf("expected 8.00, got %v", got)
	}
}
