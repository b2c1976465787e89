package repositories

import (
	"context"

	"gin-shopcart/models"

	"gorm.io/gorm"
)

type IDetailRepository interface {
	FindByItem(ctx context.Context, itemID string) ([]models.Detail, error)
	Create(ctx context.Context, itemID string, detail models.Detail) (*models.Detail, error)
	Update(ctx context.Context, itemID string, detailID string, name string, value string) error
	Delete(ctx context.Context, itemID string, detailID string) error
}

type DetailRepository struct {
	db *gorm.DB
}

func NewDetailRepository(db *gorm.DB) IDetailRepository {
	return &DetailRepository{db: db}
}

// FindByItem returns gorm.ErrRecordNotFound when the item does not exist.
func (r *DetailRepository) FindByItem(ctx context.Context, itemID string) ([]models.Detail, error) {
	var item models.Item
	if err := r.db.WithContext(ctx).Select("id").First(&item, "id = ?", itemID).Error; err != nil {
		return nil, err
	}

	var details []models.Detail
	result := orderDetails(r.db.WithContext(ctx).Where("item_id = ?", itemID)).Find(&details)
	if result.Error != nil {
		return nil, result.Error
	}
	return details, nil
}

// Create appends the detail at the end of the item's detail list.
func (r *DetailRepository) Create(ctx context.Context, itemID string, detail models.Detail) (*models.Detail, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var item models.Item
		if err := tx.Select("id").First(&item, "id = ?", itemID).Error; err != nil {
			return err
		}

		var next int
		if err := tx.Model(&models.Detail{}).
			Where("item_id = ?", itemID).
			Select("COALESCE(MAX(position), -1) + 1").
			Scan(&next).Error; err != nil {
			return err
		}

		detail.ID = ""
		detail.ItemID = itemID
		detail.Position = next
		return tx.Create(&detail).Error
	})
	if err != nil {
		return nil, err
	}
	return &detail, nil
}

// Update only touches a detail owned by the given item.
func (r *DetailRepository) Update(ctx context.Context, itemID string, detailID string, name string, value string) error {
	result := r.db.WithContext(ctx).Model(&models.Detail{}).
		Where("id = ? AND item_id = ?", detailID, itemID).
		Updates(map[string]any{"name": name, "value": value})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *DetailRepository) Delete(ctx context.Context, itemID string, detailID string) error {
	result := r.db.WithContext(ctx).Delete(&models.Detail{}, "id = ? AND item_id = ?", detailID, itemID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
