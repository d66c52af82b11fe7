package models

import (
	"time"

	"github.com/google/uuid"
)

// SignUp records where and when a membership was opened. One row per member.
type SignUp struct {
	MemberID   uuid.UUID `gorm:"column:member_id;type:uuid;primaryKey"`
	StoreID    uuid.UUID `gorm:"column:store_id;type:uuid;not null"`
	SignUpDate time.Time `gorm:"column:sign_up_date;not null"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
}
