package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Transaction is a completed sale. TotalPrice is computed once at checkout
// and never recomputed; later price or discount changes do not rewrite
// history.
type Transaction struct {
	ID           uuid.UUID         `gorm:"column:id;type:uuid;primaryKey"`
	StoreID      uuid.UUID         `gorm:"column:store_id;type:uuid;not null;index"`
	MemberID     uuid.UUID         `gorm:"column:member_id;type:uuid;not null;index"`
	CashierID    uuid.UUID         `gorm:"column:cashier_id;type:uuid;not null"`
	PurchaseDate time.Time         `gorm:"column:purchase_date;not null;index"`
	TotalPrice   float64           `gorm:"column:total_price;not null"`
	Items        []TransactionItem `gorm:"foreignKey:TransactionID"`
	CreatedAt    time.Time         `gorm:"column:created_at;autoCreateTime"`
}

func (t *Transaction) BeforeCreate(*gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
