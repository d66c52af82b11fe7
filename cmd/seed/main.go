package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/clubware/backoffice/pkg/config"
	"github.com/clubware/backoffice/pkg/db"
	"github.com/clubware/backoffice/pkg/db/models"
	"github.com/clubware/backoffice/pkg/enums"
	"github.com/clubware/backoffice/pkg/logger"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

// Seeds a small demo dataset: two stores with staff, two suppliers, members
// with sign-up records, stocked batches, and one running discount. Everything
// lands in a single transaction so a half-seeded database cannot happen.
func main() {
	ctx := context.Background()
	logg := logger.New(logger.Options{ServiceName: "seed"})

	_ = godotenv.Load()

	cfg, err := config.Load()
	requireResource(ctx, logg, "config", err)

	logg = logger.New(logger.Options{
		ServiceName: "seed",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
	})
	ctx = logg.WithField(ctx, "env", cfg.App.Env)

	dbClient, err := db.New(ctx, cfg.DB, cfg.FeatureFlags, logg)
	requireResource(ctx, logg, "database", err)
	defer dbClient.Close()
	requireResource(ctx, logg, "database ping", dbClient.Ping(ctx))

	if err := dbClient.WithTx(ctx, seed); err != nil {
		fmt.Fprintf(os.Stderr, "seeding failed: %v\n", err)
		os.Exit(1)
	}
	logg.Info(ctx, "seed data loaded")
}

func seed(tx *gorm.DB) error {
	raleigh := models.Store{Address: "1021 Capital Blvd, Raleigh NC", Phone: "919-555-0300"}
	durham := models.Store{Address: "88 Ninth St, Durham NC", Phone: "919-555-0301"}
	for _, store := range []*models.Store{&raleigh, &durham} {
		if err := tx.Create(store).Error; err != nil {
			return fmt.Errorf("seeding store: %w", err)
		}
	}

	staff := []models.Staff{
		{StoreID: raleigh.ID, Name: "Maya Sandoval", Age: 41, Address: "3 Oakwood Ct", Phone: "919-555-0310", Email: "maya.sandoval@example.com", Role: enums.StaffRoleManager, EmploymentMonths: 62},
		{StoreID: raleigh.ID, Name: "Theo Branch", Age: 26, Address: "17 Glenwood Ave", Phone: "919-555-0311", Email: "theo.branch@example.com", Role: enums.StaffRoleBilling, EmploymentMonths: 14},
		{StoreID: raleigh.ID, Name: "Priya Nair", Age: 33, Address: "5 Person St", Phone: "919-555-0312", Email: "priya.nair@example.com", Role: enums.StaffRoleWarehouse, EmploymentMonths: 29},
		{StoreID: durham.ID, Name: "Jonah Reyes", Age: 24, Address: "40 Corcoran St", Phone: "919-555-0313", Email: "jonah.reyes@example.com", Role: enums.StaffRoleBilling, EmploymentMonths: 8},
		{StoreID: durham.ID, Name: "Elena Kovac", Age: 37, Address: "12 Parrish St", Phone: "919-555-0314", Email: "elena.kovac@example.com", Role: enums.StaffRoleRegistration, EmploymentMonths: 45},
	}
	for i := range staff {
		if err := tx.Create(&staff[i]).Error; err != nil {
			return fmt.Errorf("seeding staff: %w", err)
		}
	}

	provisions := models.Supplier{Name: "Carolina Provisions", Phone: "919-555-0320", Email: "orders@carolinaprovisions.example.com", Location: "Durham NC"}
	harvest := models.Supplier{Name: "Blue Ridge Harvest", Phone: "828-555-0321", Email: "sales@blueridgeharvest.example.com", Location: "Asheville NC"}
	for _, supplier := range []*models.Supplier{&provisions, &harvest} {
		if err := tx.Create(supplier).Error; err != nil {
			return fmt.Errorf("seeding supplier: %w", err)
		}
	}

	members := []models.Member{
		{FirstName: "Ava", LastName: "Chen", Level: enums.MembershipLevelPlatinum, Email: "ava.chen@example.com", Phone: "919-555-0330", Address: "77 Elm St, Raleigh NC", Active: true},
		{FirstName: "Marcus", LastName: "Hill", Level: enums.MembershipLevelGold, Email: "marcus.hill@example.com", Phone: "919-555-0331", Address: "2 Club Blvd, Durham NC", Active: true},
		{FirstName: "Sofia", LastName: "Petrov", Level: enums.MembershipLevelSilver, Email: "sofia.petrov@example.com", Phone: "919-555-0332", Address: "15 Fayetteville St, Raleigh NC", Active: true},
	}
	signUpStores := []models.Store{raleigh, durham, raleigh}
	signUpDates := []time.Time{
		models.Date(2023, time.February, 11),
		models.Date(2023, time.September, 4),
		models.Date(2024, time.January, 20),
	}
	for i := range members {
		if err := tx.Create(&members[i]).Error; err != nil {
			return fmt.Errorf("seeding member: %w", err)
		}
		signUp := models.SignUp{
			MemberID:   members[i].ID,
			StoreID:    signUpStores[i].ID,
			SignUpDate: signUpDates[i],
		}
		if err := tx.Create(&signUp).Error; err != nil {
			return fmt.Errorf("seeding sign-up: %w", err)
		}
	}

	batches := []models.Merchandise{
		{ProductName: "Almond Butter", Quantity: 120, BuyPrice: 3.5, MarketPrice: 6.0, ProductionDate: models.Date(2024, time.March, 2), ExpirationDate: models.Date(2025, time.March, 2), StoreID: raleigh.ID, SupplierID: provisions.ID},
		{ProductName: "Olive Oil", Quantity: 80, BuyPrice: 7.25, MarketPrice: 12.0, ProductionDate: models.Date(2024, time.February, 14), ExpirationDate: models.Date(2026, time.February, 14), StoreID: raleigh.ID, SupplierID: harvest.ID},
		{ProductName: "Trail Mix", Quantity: 200, BuyPrice: 2.0, MarketPrice: 4.5, ProductionDate: models.Date(2024, time.April, 9), ExpirationDate: models.Date(2025, time.April, 9), StoreID: durham.ID, SupplierID: provisions.ID},
		{ProductName: "Almond Butter", Quantity: 45, BuyPrice: 3.25, MarketPrice: 5.75, ProductionDate: models.Date(2024, time.April, 1), ExpirationDate: models.Date(2025, time.April, 1), StoreID: durham.ID, SupplierID: harvest.ID},
	}
	for i := range batches {
		if err := tx.Create(&batches[i]).Error; err != nil {
			return fmt.Errorf("seeding merchandise: %w", err)
		}
	}

	discount := models.Discount{
		MerchandiseID: batches[2].ID,
		Percent:       15,
		StartDate:     models.Date(2024, time.May, 1),
		EndDate:       models.Date(2024, time.May, 31),
	}
	if err := tx.Create(&discount).Error; err != nil {
		return fmt.Errorf("seeding discount: %w", err)
	}
	return nil
}

func requireResource(ctx context.Context, logg *logger.Logger, resource string, err error) {
	if err == nil {
		return
	}
	logg.Error(ctx, fmt.Sprintf("resource not working: %s", resource), err)
	os.Exit(1)
}
