package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Detail belongs to exactly one item; the item's detail order is insertion order.
type Detail struct {
	ID        string `gorm:"primaryKey;size:36"`
	ItemID    string `gorm:"not null;index;size:36"`
	Name      string `gorm:"not null"`
	Value     string `gorm:"not null;default:''"`
	Position  int    `gorm:"not null;default:0"`
	CreatedAt time.Time
}

func (d *Detail) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	return nil
}
