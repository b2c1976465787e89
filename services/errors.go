package services

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserExists         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenRevoked       = errors.New("token is blacklisted")
	ErrItemExists         = errors.New("item already exists")
	ErrItemNotFound       = errors.New("item not found")
	ErrDetailNotFound     = errors.New("item detail not found")
)
