package repositories

import (
	"context"
	"time"

	"gin-shopcart/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ITokenRepository interface {
	AddBlacklistedToken(ctx context.Context, tokenID string, expiresAt time.Time) error
	IsTokenBlacklisted(ctx context.Context, tokenID string) (bool, error)
	CleanExpiredTokens(ctx context.Context) (int64, error)
}

type TokenRepository struct {
	db *gorm.DB
}

func NewTokenRepository(db *gorm.DB) ITokenRepository {
	return &TokenRepository{db: db}
}

// AddBlacklistedToken is idempotent: revoking the same token twice is not an error.
func (r *TokenRepository) AddBlacklistedToken(ctx context.Context, tokenID string, expiresAt time.Time) error {
	blacklistedToken := models.BlacklistedToken{
		TokenID:   tokenID,
		ExpiresAt: expiresAt,
	}
	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&blacklistedToken)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

func (r *TokenRepository) IsTokenBlacklisted(ctx context.Context, tokenID string) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&models.BlacklistedToken{}).
		Where("token_id = ? AND expires_at > ?", tokenID, time.Now()).
		Count(&count)
	if result.Error != nil {
		return false, result.Error
	}
	return count > 0, nil
}

func (r *TokenRepository) CleanExpiredTokens(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).Where("expires_at <= ?", time.Now()).Delete(&models.BlacklistedToken{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
