package models

import "time"

// Customer represents a shop customer.
type Customer struct {
	ID        uint      `gorm:"primaryKey"`
	Name      string    `gorm:"size:100;not null"`
	Contact   string    `gorm:"size:100;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
