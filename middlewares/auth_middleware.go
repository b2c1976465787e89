package middlewares

import (
	"net/http"
	"strings"

	"gin-shopcart/constants"
	"gin-shopcart/dto"
	"gin-shopcart/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func AuthMiddleware(authService services.IAuthService) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		header := ctx.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			abortUnauthorized(ctx)
			return
		}

		tokenString := strings.TrimPrefix(header, "Bearer ")
		user, err := authService.GetUserFromToken(ctx.Request.Context(), tokenString)
		if err != nil {
			zap.L().Debug("Rejected token", zap.String("path", ctx.FullPath()), zap.Error(err))
			abortUnauthorized(ctx)
			return
		}

		ctx.Set("user", user)

		ctx.Next()
	}
}

func abortUnauthorized(ctx *gin.Context) {
	ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.ApiResponse{
		Code:    http.StatusUnauthorized,
		Message: constants.MsgInvalidToken,
		Data:    gin.H{},
	})
}
