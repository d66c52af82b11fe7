package models

import (
	"time"

	"github.com/google/uuid"
)

// Discount is a percentage off one merchandise batch over an inclusive date
// window [StartDate, EndDate]. A batch may carry several discounts with
// overlapping windows; identity is (batch, start date).
type Discount struct {
	MerchandiseID uuid.UUID `gorm:"column:merchandise_id;type:uuid;primaryKey"`
	StartDate     time.Time `gorm:"column:start_date;primaryKey"`
	EndDate       time.Time `gorm:"column:end_date;not null"`
	Percent       int       `gorm:"column:percent;not null"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime"`
}
