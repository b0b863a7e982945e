package models

import "time"

// Sale status values. A sale starts open, collects items, and is
// finalized once its total has been computed.
const (
	SaleStatusOpen      = "open"
	SaleStatusFinalized = "finalized"
)

// Sale is one billing transaction for a customer. TotalCent stays 0
// until the sale is finalized.
type Sale struct {
	ID         uint      `gorm:"primaryKey"`
	CustomerID uint      `gorm:"index;not null"`
	Date       time.Time `gorm:"index;not null"`
	Status     string    `gorm:"size:16;not null;default:open"`
	TotalCent  int64     `gorm:"not null;default:0"`
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Customer Customer
	Items    []SaleItem
}
