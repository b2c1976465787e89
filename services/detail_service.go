package services

import (
	"context"
	"errors"

	"gin-shopcart/dto"
	"gin-shopcart/models"
	"gin-shopcart/repositories"

	"gorm.io/gorm"
)

type IDetailService interface {
	FindByItem(ctx context.Context, itemID string) ([]models.Detail, error)
	Create(ctx context.Context, input dto.CreateDetailInput) ([]models.Detail, error)
	Update(ctx context.Context, input dto.UpdateDetailInput) ([]models.Detail, error)
	Delete(ctx context.Context, itemID string, detailID string) (*models.Item, error)
}

type DetailService struct {
	repository     repositories.IDetailRepository
	itemRepository repositories.IItemRepository
}

func NewDetailService(repository repositories.IDetailRepository, itemRepository repositories.IItemRepository) IDetailService {
	return &DetailService{repository: repository, itemRepository: itemRepository}
}

func (s *DetailService) FindByItem(ctx context.Context, itemID string) ([]models.Detail, error) {
	details, err := s.repository.FindByItem(ctx, itemID)
	return details, translateItemErr(err)
}

// Create appends a detail and returns the item's full detail list.
func (s *DetailService) Create(ctx context.Context, input dto.CreateDetailInput) ([]models.Detail, error) {
	_, err := s.repository.Create(ctx, input.ItemID, models.Detail{Name: input.Name, Value: input.Value})
	if err != nil {
		return nil, translateItemErr(err)
	}
	return s.FindByItem(ctx, input.ItemID)
}

func (s *DetailService) Update(ctx context.Context, input dto.UpdateDetailInput) ([]models.Detail, error) {
	if err := s.repository.Update(ctx, input.ItemID, input.DetailID, input.Name, input.Value); err != nil {
		return nil, translateDetailErr(err)
	}
	return s.FindByItem(ctx, input.ItemID)
}

// Delete returns the owning item with its remaining details.
func (s *DetailService) Delete(ctx context.Context, itemID string, detailID string) (*models.Item, error) {
	if err := s.repository.Delete(ctx, itemID, detailID); err != nil {
		return nil, translateDetailErr(err)
	}
	item, err := s.itemRepository.FindWithDetails(ctx, itemID)
	return item, translateItemErr(err)
}

func translateDetailErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrDetailNotFound
	}
	return err
}
