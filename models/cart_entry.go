package models

import "time"

// CartEntry is a non-owning reference from a user's cart to an item.
// The same item may appear more than once.
type CartEntry struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    string `gorm:"not null;index;size:36"`
	ItemID    string `gorm:"not null;index;size:36"`
	Item      Item   `gorm:"constraint:OnDelete:CASCADE;"`
	CreatedAt time.Time
}
