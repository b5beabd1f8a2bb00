package models

import (
	"time"

	"gorm.io/datatypes"
)

// Court is a bookable resource owned by one complex. IsAvailable is the
// maintenance toggle managed by the complex admin.
type Court struct {
	ID          string         `gorm:"primaryKey;type:uuid" json:"id"`
	ComplexID   string         `gorm:"type:uuid;not null;index" json:"complex_id"`
	Name        string         `gorm:"not null" json:"name"`
	Sport       string         `gorm:"not null" json:"sport"`
	Price       float64        `gorm:"not null" json:"price"`
	Description string         `json:"description"`
	Features    datatypes.JSON `gorm:"type:jsonb" json:"features"`
	IsAvailable bool           `gorm:"not null;default:true" json:"is_available"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}
