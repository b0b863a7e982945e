package models

import "time"

// Backup tracks a snapshot file written to the backup directory.
type Backup struct {
	ID        uint   `gorm:"primaryKey"`
	FileName  string `gorm:"size:255;not null"`
	FilePath  string `gorm:"size:512;not null"`
	Size      int64
	CreatedAt time.Time
}
