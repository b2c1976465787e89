package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Item は販売商品。詳細(Detail)を所有する
type Item struct {
	ID        string    `gorm:"primaryKey;size:36"`
	Name      string    `gorm:"not null;uniqueIndex"`
	Type      string    `gorm:"not null;default:''"`
	Price     string    `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null;index"`
	Details   []Detail  `gorm:"constraint:OnDelete:CASCADE;"`
}

func (i *Item) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}
