package models

import "time"

// SaleItem is one line of a sale. PriceCent is a snapshot of the unit
// price at sale time; later catalog price changes never alter it.
// Rows are immutable once created.
type SaleItem struct {
	ID        uint  `gorm:"primaryKey"`
	SaleID    uint  `gorm:"index;not null"`
	ProductID uint  `gorm:"index;not null"`
	Quantity  int64 `gorm:"not null"`
	PriceCent int64 `gorm:"not null"`
	CreatedAt time.Time

	Product Product
}
