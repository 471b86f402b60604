package models

import (
	"time"

	"github.com/google/uuid"
)

// Contractor is the service-company profile owned by exactly one
// contractor-role user.
type Contractor struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID      uuid.UUID `gorm:"column:user_id;type:uuid;not null;uniqueIndex"`
	CompanyName string    `gorm:"column:company_name;not null"`
	Phone       string    `gorm:"column:phone;not null"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
