package repositories

import (
	"context"

	"gin-shopcart/models"

	"gorm.io/gorm"
)

type IAuthRepository interface {
	CreateUser(ctx context.Context, user models.User) (*models.User, error)
	FindUser(ctx context.Context, username string) (*models.User, error)
	FindUserByID(ctx context.Context, userID string) (*models.User, error)
	UpdateToken(ctx context.Context, userID string, token string) error
}

type AuthRepository struct {
	db *gorm.DB
}

func NewAuthRepository(db *gorm.DB) IAuthRepository {
	return &AuthRepository{db: db}
}

func (r *AuthRepository) CreateUser(ctx context.Context, user models.User) (*models.User, error) {
	result := r.db.WithContext(ctx).Omit("Cart").Create(&user)
	if result.Error != nil {
		return nil, result.Error
	}
	return &user, nil
}

func (r *AuthRepository) FindUser(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	result := r.db.WithContext(ctx).First(&user, "username = ?", username)
	if result.Error != nil {
		return nil, result.Error
	}
	return &user, nil
}

func (r *AuthRepository) FindUserByID(ctx context.Context, userID string) (*models.User, error) {
	var user models.User
	result := r.db.WithContext(ctx).First(&user, "id = ?", userID)
	if result.Error != nil {
		return nil, result.Error
	}
	return &user, nil
}

func (r *AuthRepository) UpdateToken(ctx context.Context, userID string, token string) error {
	result := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", userID).Update("token", token)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
