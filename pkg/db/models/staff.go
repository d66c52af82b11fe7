package models

import (
	"time"

	"github.com/clubware/backoffice/pkg/enums"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Staff is an employee of one store. Duties are differentiated by the role
// tag alone; there is no per-role record type.
type Staff struct {
	ID               uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	StoreID          uuid.UUID       `gorm:"column:store_id;type:uuid;not null;index"`
	Name             string          `gorm:"column:name;size:64;not null"`
	Age              int             `gorm:"column:age;not null"`
	Address          string          `gorm:"column:address;size:128;not null"`
	Phone            string          `gorm:"column:phone;size:16;not null"`
	Email            string          `gorm:"column:email;size:64;not null"`
	Role             enums.StaffRole `gorm:"column:role;size:16;not null"`
	EmploymentMonths int             `gorm:"column:employment_months;not null;default:0"`
	CreatedAt        time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName keeps the table singular; "staffs" reads wrong.
func (Staff) TableName() string {
	return "staff"
}

func (s *Staff) BeforeCreate(*gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
