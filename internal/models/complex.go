package models

import "time"

// Complex is the organization that owns courts and manages them through a
// single admin account.
type Complex struct {
	ID           string    `gorm:"primaryKey;type:uuid" json:"id"`
	Name         string    `gorm:"not null" json:"name"`
	Location     string    `gorm:"not null;index" json:"location"`
	AdminEmail   string    `gorm:"not null;uniqueIndex" json:"admin_email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
