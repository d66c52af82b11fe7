package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TransactionItem is exactly one unit of one batch sold in one transaction.
// Buying two units of a batch produces two rows; LineNo keeps cart order and
// distinguishes them. Rows are immutable once the transaction persists.
type TransactionItem struct {
	ID            uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	TransactionID uuid.UUID `gorm:"column:transaction_id;type:uuid;not null;index"`
	MerchandiseID uuid.UUID `gorm:"column:merchandise_id;type:uuid;not null"`
	LineNo        int       `gorm:"column:line_no;not null"`
	UnitPrice     float64   `gorm:"column:unit_price;not null"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (t *TransactionItem) BeforeCreate(*gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
