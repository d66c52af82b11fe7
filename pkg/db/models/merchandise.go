package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Merchandise is one inventory batch: a quantity of one product received from
// one supplier on one production date, owned by exactly one store. Stores may
// carry the same product across several batches, so tallying a store's stock
// of a product means aggregating rows. Quantity may reach zero and the row
// remains for history; batches are never deleted by the purchase engine.
type Merchandise struct {
	ID             uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	ProductName    string    `gorm:"column:product_name;size:64;not null;index"`
	Quantity       int       `gorm:"column:quantity;not null"`
	BuyPrice       float64   `gorm:"column:buy_price;not null"`
	MarketPrice    float64   `gorm:"column:market_price;not null"`
	ProductionDate time.Time `gorm:"column:production_date;not null"`
	ExpirationDate time.Time `gorm:"column:expiration_date;not null"`
	StoreID        uuid.UUID `gorm:"column:store_id;type:uuid;not null;index"`
	SupplierID     uuid.UUID `gorm:"column:supplier_id;type:uuid;not null"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (m *Merchandise) BeforeCreate(*gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
