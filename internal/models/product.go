package models

import "time"

// Product is a catalog item with its current stock level.
// Prices are stored in cents to avoid float error, e.g. $12.34 = 1234.
type Product struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"size:100;not null"`
	Description string `gorm:"type:text"`
	PriceCent   int64  `gorm:"not null"` // unit price in cents
	Quantity    int64  `gorm:"not null"` // units in stock, decremented by sales
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
