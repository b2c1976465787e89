package controllers

import (
	"errors"
	"net/http"
	"strings"

	"gin-shopcart/constants"
	"gin-shopcart/dto"
	"gin-shopcart/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type IAuthController interface {
	Register(ctx *gin.Context)
	Login(ctx *gin.Context)
	Reload(ctx *gin.Context)
	Logout(ctx *gin.Context)
}

type AuthController struct {
	service services.IAuthService
}

func NewAuthController(service services.IAuthService) IAuthController {
	return &AuthController{service: service}
}

func (c *AuthController) Register(ctx *gin.Context) {
	var input dto.RegisterInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		respond(ctx, http.StatusBadRequest, constants.MsgAllInputRequired, nil)
		return
	}

	result, err := c.service.Register(ctx.Request.Context(), input)
	if err != nil {
		if errors.Is(err, services.ErrUserExists) {
			respond(ctx, http.StatusConflict, constants.MsgUserExists, nil)
			return
		}
		respondUnexpected(ctx, err)
		return
	}
	zap.L().Info("User registered", zap.String("username", result.Username))
	respond(ctx, http.StatusOK, "Successful registration", result)
}

func (c *AuthController) Login(ctx *gin.Context) {
	var input dto.LoginInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		respond(ctx, http.StatusBadRequest, constants.MsgAllInputRequired, nil)
		return
	}

	result, err := c.service.Login(ctx.Request.Context(), input.Username, input.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			respond(ctx, http.StatusUnauthorized, constants.MsgInvalidCredentials, nil)
			return
		}
		respondUnexpected(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, "Successful log in", result)
}

func (c *AuthController) Reload(ctx *gin.Context) {
	user, ok := currentUser(ctx)
	if !ok {
		return
	}
	respond(ctx, http.StatusOK, "Successfully reloaded user", dto.AuthResponse{
		Username: user.Username,
		Token:    user.Token,
	})
}

func (c *AuthController) Logout(ctx *gin.Context) {
	tokenString := strings.TrimPrefix(ctx.GetHeader("Authorization"), "Bearer ")

	if err := c.service.Logout(ctx.Request.Context(), tokenString); err != nil {
		if errors.Is(err, services.ErrInvalidToken) {
			respond(ctx, http.StatusUnauthorized, constants.MsgInvalidToken, nil)
			return
		}
		respondUnexpected(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, "Successfully logged out", nil)
}
