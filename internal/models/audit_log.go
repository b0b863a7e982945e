package models

import "time"

// AuditLog records mutating API calls for the operations log.
type AuditLog struct {
	ID         uint   `gorm:"primaryKey"`
	OperatorID *uint  `gorm:"index"`
	Method     string `gorm:"size:16"`
	Path       string `gorm:"size:255"`
	Action     string `gorm:"size:2048"` // method + path + request body excerpt
	IP         string `gorm:"size:64"`
	UserAgent  string `gorm:"size:255"`
	CreatedAt  time.Time
}
