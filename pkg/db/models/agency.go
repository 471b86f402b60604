package models

import (
	"time"

	"github.com/google/uuid"
)

// Agency is the bank-agency profile owned by exactly one agency-role user.
type Agency struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID       uuid.UUID `gorm:"column:user_id;type:uuid;not null;uniqueIndex"`
	Name         string    `gorm:"column:name;not null"`
	Manager      string    `gorm:"column:manager;not null"`
	Address      string    `gorm:"column:address;not null"`
	OpeningHours string    `gorm:"column:opening_hours;not null"`
	Phone        string    `gorm:"column:phone;not null"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName keeps the plural used by the schema.
func (Agency) TableName() string {
	return "agencies"
}
