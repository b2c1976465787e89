package middlewares_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"gin-shopcart/dto"
	"gin-shopcart/infra/infratest"
	"gin-shopcart/middlewares"
	"gin-shopcart/models"
	"gin-shopcart/repositories"
	"gin-shopcart/services"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"golang.org/x/crypto/bcrypt"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func decode(t *testing.T, w *httptest.ResponseRecorder) dto.ApiResponse {
	t.Helper()
	var res dto.ApiResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	return res
}

func TestAuthMiddleware(t *testing.T) {
	db := infratest.NewTestDB(t)
	tokens, err := services.NewTokenManager("test-secret", time.Hour)
	require.NoError(t, err)
	authService := services.NewAuthService(repositories.NewAuthRepository(db), repositories.NewTokenRepository(db), tokens, bcrypt.MinCost)

	registered, err := authService.Register(t.Context(), dto.RegisterInput{Username: "alice", Email: "alice@example.com", Password: "secret"})
	require.NoError(t, err)
	revoked, err := authService.Login(t.Context(), "alice", "secret")
	require.NoError(t, err)
	require.NoError(t, authService.Logout(t.Context(), revoked.Token))

	r := gin.New()
	r.GET("/me", middlewares.AuthMiddleware(authService), func(ctx *gin.Context) {
		user := ctx.MustGet("user").(*models.User)
		ctx.String(http.StatusOK, user.Username)
	})

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{name: "valid bearer token", header: "Bearer " + registered.Token, wantStatus: http.StatusOK},
		{name: "missing header", header: "", wantStatus: http.StatusUnauthorized},
		{name: "missing bearer prefix", header: registered.Token, wantStatus: http.StatusUnauthorized},
		{name: "garbage token", header: "Bearer nope", wantStatus: http.StatusUnauthorized},
		{name: "revoked token", header: "Bearer " + revoked.Token, wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, "alice", w.Body.String())
				return
			}
			res := decode(t, w)
			assert.Equal(t, http.StatusUnauthorized, res.Code)
			assert.Equal(t, "Invalid token", res.Message)
		})
	}
}

func TestLoginRateLimit(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	r := gin.New()
	r.POST("/login", middlewares.LoginRateLimit(client), func(ctx *gin.Context) {
		var input dto.LoginInput
		if err := ctx.ShouldBindJSON(&input); err != nil {
			ctx.Status(http.StatusBadRequest)
			return
		}
		if input.Password != "right" {
			ctx.Status(http.StatusUnauthorized)
			return
		}
		ctx.Status(http.StatusOK)
	})

	login := func(username, password string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		body := `{"username":"` + username + `","password":"` + password + `"}`
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(body)))
		return w
	}

	// 成功するとカウンタがリセットされる
	for range middlewares.LoginMaxAttempts - 1 {
		require.Equal(t, http.StatusUnauthorized, login("bob", "wrong").Code)
	}
	require.Equal(t, http.StatusOK, login("bob", "right").Code)
	assert.False(t, mr.Exists("login_attempts:bob"))

	for range middlewares.LoginMaxAttempts {
		require.Equal(t, http.StatusUnauthorized, login("bob", "wrong").Code)
	}

	w := login("bob", "right")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
	assert.Contains(t, decode(t, w).Message, "Too many failed attempts")

	// 他のユーザーには影響しない
	assert.Equal(t, http.StatusOK, login("carol", "right").Code)

	mr.FastForward(middlewares.LoginCooldown + time.Second)
	assert.Equal(t, http.StatusOK, login("bob", "right").Code)
}

func TestLoginRateLimitWithoutRedis(t *testing.T) {
	r := gin.New()
	r.POST("/login", middlewares.LoginRateLimit(nil), func(ctx *gin.Context) {
		ctx.Status(http.StatusUnauthorized)
	})

	for range middlewares.LoginMaxAttempts + 2 {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"username":"bob"}`)))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	}
}

func TestRequestLogger(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	restore := zap.ReplaceGlobals(zap.New(core))
	t.Cleanup(restore)

	r := gin.New()
	r.Use(middlewares.RequestLogger())
	r.GET("/ok", func(ctx *gin.Context) { ctx.Status(http.StatusOK) })
	r.GET("/missing", func(ctx *gin.Context) { ctx.Status(http.StatusNotFound) })
	r.GET("/boom", func(ctx *gin.Context) { ctx.Status(http.StatusInternalServerError) })

	for _, path := range []string{"/ok", "/missing", "/boom"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	entries := logs.FilterMessage("Request").All()
	require.Len(t, entries, 3)
	assert.Equal(t, zap.InfoLevel, entries[0].Level)
	assert.Equal(t, zap.WarnLevel, entries[1].Level)
	assert.Equal(t, zap.ErrorLevel, entries[2].Level)
	assert.Equal(t, "/missing", entries[1].ContextMap()["path"])
	assert.EqualValues(t, http.StatusNotFound, entries[1].ContextMap()["status"])
}
