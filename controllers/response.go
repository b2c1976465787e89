package controllers

import (
	"net/http"

	"gin-shopcart/constants"
	"gin-shopcart/dto"
	"gin-shopcart/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func respond(ctx *gin.Context, status int, message string, data any) {
	if data == nil {
		data = gin.H{}
	}
	ctx.JSON(status, dto.ApiResponse{Code: status, Message: message, Data: data})
}

func respondUnexpected(ctx *gin.Context, err error) {
	zap.L().Error("Request failed",
		zap.String("method", ctx.Request.Method),
		zap.String("path", ctx.FullPath()),
		zap.Error(err))
	respond(ctx, http.StatusInternalServerError, constants.MsgUnexpectedErrPrefix+err.Error(), nil)
}

// currentUser returns the user set by AuthMiddleware, answering 401 when it is missing.
func currentUser(ctx *gin.Context) (*models.User, bool) {
	value, exists := ctx.Get("user")
	if !exists {
		respond(ctx, http.StatusUnauthorized, constants.MsgInvalidToken, nil)
		ctx.Abort()
		return nil, false
	}
	user, ok := value.(*models.User)
	if !ok {
		respond(ctx, http.StatusUnauthorized, constants.MsgInvalidToken, nil)
		ctx.Abort()
		return nil, false
	}
	return user, true
}
