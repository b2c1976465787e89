package services

import (
	"context"
	"errors"
	"strings"

	"gin-shopcart/dto"
	"gin-shopcart/models"
	"gin-shopcart/repositories"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ICartService interface {
	Items(ctx context.Context, userID string) ([]models.Item, error)
	Add(ctx context.Context, userID string, itemID string) ([]models.Item, error)
	Remove(ctx context.Context, userID string, itemID string) ([]models.Item, error)
	ItemDetails(ctx context.Context, itemID string) ([]models.Detail, error)
	Summary(ctx context.Context, userID string) (dto.CartSummaryResponse, error)
}

type CartService struct {
	repository       repositories.ICartRepository
	detailRepository repositories.IDetailRepository
}

func NewCartService(repository repositories.ICartRepository, detailRepository repositories.IDetailRepository) ICartService {
	return &CartService{repository: repository, detailRepository: detailRepository}
}

func (s *CartService) Items(ctx context.Context, userID string) ([]models.Item, error) {
	return s.repository.FindItems(ctx, userID)
}

func (s *CartService) Add(ctx context.Context, userID string, itemID string) ([]models.Item, error) {
	if err := s.repository.Add(ctx, userID, itemID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}
	return s.repository.FindItems(ctx, userID)
}

func (s *CartService) Remove(ctx context.Context, userID string, itemID string) ([]models.Item, error) {
	if _, err := s.repository.Remove(ctx, userID, itemID); err != nil {
		return nil, err
	}
	return s.repository.FindItems(ctx, userID)
}

func (s *CartService) ItemDetails(ctx context.Context, itemID string) ([]models.Detail, error) {
	details, err := s.detailRepository.FindByItem(ctx, itemID)
	return details, translateItemErr(err)
}

func (s *CartService) Summary(ctx context.Context, userID string) (dto.CartSummaryResponse, error) {
	items, err := s.repository.FindItems(ctx, userID)
	if err != nil {
		return dto.CartSummaryResponse{}, err
	}

	total := decimal.Zero
	skipped := 0
	for _, item := range items {
		price, ok := ParsePrice(item.Price)
		if !ok {
			skipped++
			continue
		}
		total = total.Add(price)
	}

	return dto.CartSummaryResponse{
		Count:   len(items),
		Total:   total.StringFixed(2),
		Skipped: skipped,
	}, nil
}

// ParsePrice reads the numeric part of a free-form price such as "1,400$" or "€ 12.50".
func ParsePrice(price string) (decimal.Decimal, bool) {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r >= '0' && r <= '9', r == '.', r == '-':
			return r
		default:
			return -1
		}
	}, price)
	if cleaned == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}
