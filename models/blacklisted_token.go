package models

import "time"

// BlacklistedToken は失効させたトークン(JTI)を有効期限まで保持する
type BlacklistedToken struct {
	ID        uint      `gorm:"primaryKey"`
	TokenID   string    `gorm:"not null;uniqueIndex;size:64"`
	ExpiresAt time.Time `gorm:"not null;index"`
	CreatedAt time.Time
}
