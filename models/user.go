package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID       string      `gorm:"primaryKey;size:36"`
	Username string      `gorm:"not null;uniqueIndex"`
	Email    string      `gorm:"not null"`
	Password string      `gorm:"not null"`
	Token    string      `gorm:"type:text"`
	Cart     []CartEntry `gorm:"constraint:OnDelete:CASCADE;"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}
