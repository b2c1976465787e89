package services

import (
	"context"
	"errors"
	"math"
	"time"

	"gin-shopcart/constants"
	"gin-shopcart/dto"
	"gin-shopcart/models"
	"gin-shopcart/repositories"

	"gorm.io/gorm"
)

type IItemService interface {
	FindAll(ctx context.Context) ([]models.Item, error)
	FindPage(ctx context.Context, query dto.PagedItemsQuery) ([]models.Item, int64, error)
	FindWithDetails(ctx context.Context, itemID string) (*models.Item, error)
	Create(ctx context.Context, createItemInput dto.CreateItemInput) (*models.Item, error)
	Update(ctx context.Context, updateItemInput dto.UpdateItemInput) (*models.Item, error)
	Delete(ctx context.Context, itemID string) (*models.Item, error)
}

type ItemService struct {
	repository repositories.IItemRepository
	now        func() time.Time
}

func NewItemService(repository repositories.IItemRepository) IItemService {
	return &ItemService{repository: repository, now: time.Now}
}

func (s *ItemService) FindAll(ctx context.Context) ([]models.Item, error) {
	return s.repository.FindAll(ctx)
}

// FindPage fills in defaults for omitted query values: first page, five items, ascending by name.
func (s *ItemService) FindPage(ctx context.Context, query dto.PagedItemsQuery) ([]models.Item, int64, error) {
	size := query.Size
	if size <= 0 {
		size = constants.DefaultPageSize
	}
	if size > constants.MaxPageSize {
		size = constants.MaxPageSize
	}

	sortBy := query.SortColumn
	if sortBy == "" {
		sortBy = constants.DefaultSortBy
	}
	column, ok := constants.SortColumns[sortBy]
	if !ok {
		column = constants.SortColumns[constants.DefaultSortBy]
	}

	page := query.Page
	if page < 0 {
		page = 0
	}
	// 桁あふれするページは最後より後ろとして扱う
	offset := math.MaxInt
	if page <= math.MaxInt/size {
		offset = page * size
	}

	return s.repository.FindPage(ctx, repositories.ItemPageQuery{
		Offset:     offset,
		Limit:      size,
		SortColumn: column,
		Descending: query.SortDirection == -1,
		Filter:     query.Filter,
	})
}

func (s *ItemService) FindWithDetails(ctx context.Context, itemID string) (*models.Item, error) {
	item, err := s.repository.FindWithDetails(ctx, itemID)
	return item, translateItemErr(err)
}

func (s *ItemService) Create(ctx context.Context, createItemInput dto.CreateItemInput) (*models.Item, error) {
	newItem := models.Item{
		Name:      createItemInput.Name,
		Type:      createItemInput.Type,
		Price:     createItemInput.Price,
		CreatedAt: s.now(),
	}
	item, err := s.repository.Create(ctx, newItem)
	return item, translateItemErr(err)
}

func (s *ItemService) Update(ctx context.Context, updateItemInput dto.UpdateItemInput) (*models.Item, error) {
	item, err := s.repository.Update(ctx, updateItemInput.ID, map[string]any{
		"name":  updateItemInput.Name,
		"type":  updateItemInput.Type,
		"price": updateItemInput.Price,
	})
	return item, translateItemErr(err)
}

func (s *ItemService) Delete(ctx context.Context, itemID string) (*models.Item, error) {
	item, err := s.repository.Delete(ctx, itemID)
	return item, translateItemErr(err)
}

func translateItemErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrItemNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrItemExists
	default:
		return err
	}
}
