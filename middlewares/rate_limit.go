package middlewares

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"gin-shopcart/constants"
	"gin-shopcart/dto"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	LoginMaxAttempts = 5
	LoginCooldown    = 15 * time.Minute
)

// LoginRateLimit blocks a username for LoginCooldown after LoginMaxAttempts failed logins.
// Without a Redis client it lets every request through.
func LoginRateLimit(client *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		if client == nil {
			c.Next()
			return
		}

		// ボディを読み取り、後続のハンドラのために戻す
		bodyBytes, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.Next()
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))

		var input struct {
			Username string `json:"username"`
		}
		if err := json.Unmarshal(bodyBytes, &input); err != nil || input.Username == "" {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		key := "login_attempts:" + input.Username
		cooldownKey := "login_cooldown:" + input.Username

		ttl, err := client.TTL(ctx, cooldownKey).Result()
		if err != nil {
			zap.L().Warn("Rate limit check failed", zap.Error(err))
			c.Next()
			return
		}
		if ttl > 0 {
			c.Header("Retry-After", fmt.Sprintf("%d", int(ttl.Seconds())))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.ApiResponse{
				Code:    http.StatusTooManyRequests,
				Message: fmt.Sprintf("%s, try again in %d minutes", constants.MsgTooManyAttempts, int(ttl.Minutes())+1),
				Data:    gin.H{},
			})
			return
		}

		c.Next()

		switch c.Writer.Status() {
		case http.StatusUnauthorized:
			attempts, err := client.Incr(ctx, key).Result()
			if err != nil {
				zap.L().Warn("Rate limit update failed", zap.Error(err))
				return
			}
			client.Expire(ctx, key, LoginCooldown)
			if attempts >= LoginMaxAttempts {
				client.Set(ctx, cooldownKey, "1", LoginCooldown)
				client.Del(ctx, key)
				zap.L().Warn("Login locked", zap.String("username", input.Username))
			}
		case http.StatusOK:
			client.Del(ctx, key, cooldownKey)
		}
	}
}
