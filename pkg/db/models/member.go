package models

import (
	"time"

	"github.com/clubware/backoffice/pkg/enums"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Member is a club membership holder. The purchase engine reads members but
// never mutates them; registration owns the lifecycle.
type Member struct {
	ID        uuid.UUID             `gorm:"column:id;type:uuid;primaryKey"`
	FirstName string                `gorm:"column:first_name;size:64;not null"`
	LastName  string                `gorm:"column:last_name;size:64;not null"`
	Level     enums.MembershipLevel `gorm:"column:level;size:16;not null"`
	Email     string                `gorm:"column:email;size:64;not null"`
	Phone     string                `gorm:"column:phone;size:16;not null"`
	Address   string                `gorm:"column:address;size:128;not null"`
	Active    bool                  `gorm:"column:active;not null;default:true"`
	CreatedAt time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}

func (m *Member) BeforeCreate(*gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
