package services

import (
	"context"
	"errors"
	"strings"

	"gin-shopcart/dto"
	"gin-shopcart/models"
	"gin-shopcart/repositories"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type IAuthService interface {
	Register(ctx context.Context, input dto.RegisterInput) (*dto.AuthResponse, error)
	Login(ctx context.Context, username string, password string) (*dto.AuthResponse, error)
	GetUserFromToken(ctx context.Context, tokenString string) (*models.User, error)
	Logout(ctx context.Context, tokenString string) error
}

type AuthService struct {
	repository      repositories.IAuthRepository
	tokenRepository repositories.ITokenRepository
	tokens          *TokenManager
	bcryptCost      int
}

func NewAuthService(
	repository repositories.IAuthRepository,
	tokenRepository repositories.ITokenRepository,
	tokens *TokenManager,
	bcryptCost int,
) IAuthService {
	return &AuthService{
		repository:      repository,
		tokenRepository: tokenRepository,
		tokens:          tokens,
		bcryptCost:      bcryptCost,
	}
}

func (s *AuthService) Register(ctx context.Context, input dto.RegisterInput) (*dto.AuthResponse, error) {
	if _, err := s.repository.FindUser(ctx, input.Username); err == nil {
		return nil, ErrUserExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.bcryptCost)
	if err != nil {
		return nil, err
	}

	userID := uuid.NewString()
	token, err := s.tokens.CreateToken(userID, input.Username)
	if err != nil {
		return nil, err
	}

	user := models.User{
		ID:       userID,
		Username: input.Username,
		Email:    strings.ToLower(input.Email),
		Password: string(hashedPassword),
		Token:    token,
	}
	if _, err := s.repository.CreateUser(ctx, user); err != nil {
		// 同時登録で一意制約に当たった場合
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUserExists
		}
		return nil, err
	}

	return &dto.AuthResponse{Username: user.Username, Token: token}, nil
}

// Login reissues the session token on every successful attempt.
func (s *AuthService) Login(ctx context.Context, username string, password string) (*dto.AuthResponse, error) {
	foundUser, err := s.repository.FindUser(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(foundUser.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.CreateToken(foundUser.ID, foundUser.Username)
	if err != nil {
		return nil, err
	}
	if err := s.repository.UpdateToken(ctx, foundUser.ID, token); err != nil {
		return nil, err
	}

	return &dto.AuthResponse{Username: foundUser.Username, Token: token}, nil
}

func (s *AuthService) GetUserFromToken(ctx context.Context, tokenString string) (*models.User, error) {
	claims, err := s.tokens.ParseToken(tokenString)
	if err != nil {
		return nil, err
	}

	// トークンがブラックリストに含まれているかチェック
	isBlacklisted, err := s.tokenRepository.IsTokenBlacklisted(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if isBlacklisted {
		return nil, ErrTokenRevoked
	}

	user, err := s.repository.FindUserByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	return user, nil
}

func (s *AuthService) Logout(ctx context.Context, tokenString string) error {
	claims, err := s.tokens.ParseToken(tokenString)
	if err != nil {
		return err
	}

	// トークンを有効期限までブラックリストに追加
	if err := s.tokenRepository.AddBlacklistedToken(ctx, claims.ID, claims.ExpiresAt.Time); err != nil {
		return err
	}

	user, err := s.repository.FindUserByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	if user.Token == tokenString {
		return s.repository.UpdateToken(ctx, user.ID, "")
	}
	return nil
}
