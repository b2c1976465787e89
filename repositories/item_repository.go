package repositories

import (
	"context"
	"strings"

	"gin-shopcart/models"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ItemPageQuery describes one page of the filtered, sorted item listing.
// SortColumn must already be a database column name.
type ItemPageQuery struct {
	Offset     int
	Limit      int
	SortColumn string
	Descending bool
	Filter     string
}

type IItemRepository interface {
	FindAll(ctx context.Context) ([]models.Item, error)
	FindPage(ctx context.Context, query ItemPageQuery) ([]models.Item, int64, error)
	FindById(ctx context.Context, itemID string) (*models.Item, error)
	FindWithDetails(ctx context.Context, itemID string) (*models.Item, error)
	Create(ctx context.Context, newItem models.Item) (*models.Item, error)
	Update(ctx context.Context, itemID string, updates map[string]any) (*models.Item, error)
	Delete(ctx context.Context, itemID string) (*models.Item, error)
	Count(ctx context.Context) (int64, error)
}

type ItemRepository struct {
	db *gorm.DB
}

func NewItemRepository(db *gorm.DB) IItemRepository {
	return &ItemRepository{db: db}
}

func (r *ItemRepository) Create(ctx context.Context, newItem models.Item) (*models.Item, error) {
	result := r.db.WithContext(ctx).Omit(clause.Associations).Create(&newItem)
	if result.Error != nil {
		return nil, result.Error
	}
	newItem.Details = []models.Detail{}
	return &newItem, nil
}

// Delete removes the item together with its details and every cart reference to it,
// and returns the item as it was before deletion.
func (r *ItemRepository) Delete(ctx context.Context, itemID string) (*models.Item, error) {
	var deleted models.Item
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Details", orderDetails).First(&deleted, "id = ?", itemID).Error; err != nil {
			return err
		}
		if err := tx.Where("item_id = ?", itemID).Delete(&models.CartEntry{}).Error; err != nil {
			return err
		}
		if err := tx.Where("item_id = ?", itemID).Delete(&models.Detail{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.Item{}, "id = ?", itemID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &deleted, nil
}

func (r *ItemRepository) FindAll(ctx context.Context) ([]models.Item, error) {
	var items []models.Item
	result := r.db.WithContext(ctx).Order("name ASC").Order("id ASC").Find(&items)
	if result.Error != nil {
		return nil, result.Error
	}
	return items, nil
}

func (r *ItemRepository) FindPage(ctx context.Context, query ItemPageQuery) ([]models.Item, int64, error) {
	filtered := func() *gorm.DB {
		db := r.db.WithContext(ctx).Model(&models.Item{})
		if query.Filter == "" {
			return db
		}
		pattern := likePattern(query.Filter)
		return db.Where(
			`LOWER(name) LIKE ? ESCAPE '\' OR LOWER(type) LIKE ? ESCAPE '\' OR LOWER(price) LIKE ? ESCAPE '\'`,
			pattern, pattern, pattern,
		)
	}

	var count int64
	if err := filtered().Count(&count).Error; err != nil {
		return nil, 0, err
	}

	var items []models.Item
	result := filtered().
		Order(clause.OrderByColumn{Column: clause.Column{Name: query.SortColumn}, Desc: query.Descending}).
		Order("id ASC").
		Offset(query.Offset).
		Limit(query.Limit).
		Find(&items)
	if result.Error != nil {
		return nil, 0, result.Error
	}
	return items, count, nil
}

func (r *ItemRepository) FindById(ctx context.Context, itemID string) (*models.Item, error) {
	var item models.Item
	result := r.db.WithContext(ctx).First(&item, "id = ?", itemID)
	if result.Error != nil {
		return nil, result.Error
	}
	return &item, nil
}

func (r *ItemRepository) FindWithDetails(ctx context.Context, itemID string) (*models.Item, error) {
	var item models.Item
	result := r.db.WithContext(ctx).Preload("Details", orderDetails).First(&item, "id = ?", itemID)
	if result.Error != nil {
		return nil, result.Error
	}
	return &item, nil
}

func (r *ItemRepository) Update(ctx context.Context, itemID string, updates map[string]any) (*models.Item, error) {
	result := r.db.WithContext(ctx).Model(&models.Item{}).
		Where("id = ?", itemID).
		Updates(updates)

	if result.Error != nil {
		return nil, result.Error
	}

	if result.RowsAffected == 0 {
		// 値が変わらない更新でも0件になるDBがあるため存在確認する
		if _, err := r.FindById(ctx, itemID); err != nil {
			return nil, err
		}
	}

	return r.FindWithDetails(ctx, itemID)
}

func (r *ItemRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Item{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func orderDetails(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC").Order("created_at ASC")
}

// likePattern builds a case-insensitive substring pattern with LIKE wildcards escaped.
// The filter is folded with Unicode rules to match LOWER() on both databases.
func likePattern(filter string) string {
	escaper := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + escaper.Replace(cases.Lower(language.Und).String(filter)) + "%"
}
