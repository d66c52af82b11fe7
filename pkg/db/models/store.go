package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Store is one warehouse-club location.
type Store struct {
	ID        uuid.UUID  `gorm:"column:id;type:uuid;primaryKey"`
	Address   string     `gorm:"column:address;size:128;not null"`
	Phone     string     `gorm:"column:phone;size:16;not null"`
	ManagerID *uuid.UUID `gorm:"column:manager_id;type:uuid"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

func (s *Store) BeforeCreate(*gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
