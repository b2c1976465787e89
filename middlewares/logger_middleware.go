package middlewares

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RequestLogger() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		path := ctx.Request.URL.Path

		ctx.Next()

		fields := []zap.Field{
			zap.String("method", ctx.Request.Method),
			zap.String("path", path),
			zap.Int("status", ctx.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", ctx.ClientIP()),
		}
		switch {
		case ctx.Writer.Status() >= 500:
			zap.L().Error("Request", fields...)
		case ctx.Writer.Status() >= 400:
			zap.L().Warn("Request", fields...)
		default:
			zap.L().Info("Request", fields...)
		}
	}
}
