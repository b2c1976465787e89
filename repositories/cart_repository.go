package repositories

import (
	"context"

	"gin-shopcart/models"

	"gorm.io/gorm"
)

type ICartRepository interface {
	FindItems(ctx context.Context, userID string) ([]models.Item, error)
	Add(ctx context.Context, userID string, itemID string) error
	Remove(ctx context.Context, userID string, itemID string) (int64, error)
}

type CartRepository struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) ICartRepository {
	return &CartRepository{db: db}
}

// FindItems returns the referenced items in insertion order, once per cart entry.
func (r *CartRepository) FindItems(ctx context.Context, userID string) ([]models.Item, error) {
	var items []models.Item
	result := r.db.WithContext(ctx).
		Model(&models.Item{}).
		Select("items.*").
		Joins("JOIN cart_entries ON cart_entries.item_id = items.id").
		Where("cart_entries.user_id = ?", userID).
		Order("cart_entries.id ASC").
		Find(&items)
	if result.Error != nil {
		return nil, result.Error
	}
	return items, nil
}

// Add returns gorm.ErrRecordNotFound when the item does not exist.
func (r *CartRepository) Add(ctx context.Context, userID string, itemID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var item models.Item
		if err := tx.Select("id").First(&item, "id = ?", itemID).Error; err != nil {
			return err
		}
		return tx.Omit("Item").Create(&models.CartEntry{UserID: userID, ItemID: itemID}).Error
	})
}

// Remove drops every reference to the item from the cart. The item itself is untouched.
func (r *CartRepository) Remove(ctx context.Context, userID string, itemID string) (int64, error) {
	result := r.db.WithContext(ctx).Where("user_id = ? AND item_id = ?", userID, itemID).Delete(&models.CartEntry{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
