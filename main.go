package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gin-shopcart/controllers"
	"gin-shopcart/infra"
	"gin-shopcart/middlewares"
	"gin-shopcart/repositories"
	"gin-shopcart/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupRouter(db *gorm.DB, tokenRepository repositories.ITokenRepository, redisClient *redis.Client, cfg infra.Config) (*gin.Engine, error) {
	tokens, err := services.NewTokenManager(cfg.SecretKey, cfg.TokenTTL)
	if err != nil {
		return nil, err
	}

	itemRepository := repositories.NewItemRepository(db)
	detailRepository := repositories.NewDetailRepository(db)
	cartRepository := repositories.NewCartRepository(db)
	authRepository := repositories.NewAuthRepository(db)

	itemController := controllers.NewItemController(services.NewItemService(itemRepository))
	detailController := controllers.NewDetailController(services.NewDetailService(detailRepository, itemRepository))
	cartController := controllers.NewCartController(services.NewCartService(cartRepository, detailRepository))

	authService := services.NewAuthService(authRepository, tokenRepository, tokens, cfg.BcryptCost)
	authController := controllers.NewAuthController(authService)

	r := gin.New()
	r.Use(middlewares.RequestLogger(), gin.Recovery())
	if len(cfg.CORSOrigins) == 0 {
		r.Use(cors.Default())
	} else {
		corsConfig := cors.DefaultConfig()
		corsConfig.AllowOrigins = cfg.CORSOrigins
		corsConfig.AddAllowHeaders("Authorization")
		r.Use(cors.New(corsConfig))
	}

	userRouter := r.Group("/users")
	userRouterWithAuth := r.Group("/users", middlewares.AuthMiddleware(authService))
	homeRouter := r.Group("/home", middlewares.AuthMiddleware(authService))

	userRouter.POST("/register", authController.Register)
	userRouter.POST("/login", middlewares.LoginRateLimit(redisClient), authController.Login)
	userRouterWithAuth.GET("/reload", authController.Reload)
	userRouterWithAuth.POST("/logout", authController.Logout)

	homeRouter.GET("", itemController.Home)
	homeRouter.GET("/items", itemController.FindAll)
	homeRouter.GET("/items-paged", itemController.FindPage)
	homeRouter.POST("/add-item", itemController.Create)
	homeRouter.PUT("/edit-item", itemController.Update)
	homeRouter.DELETE("/delete-item", itemController.Delete)

	homeRouter.GET("/item-details", detailController.FindByItem)
	homeRouter.POST("/add-item-detail", detailController.Create)
	homeRouter.PUT("/edit-item-detail", detailController.Update)
	homeRouter.DELETE("/delete-item-detail", detailController.Delete)

	homeRouter.GET("/cart-items", cartController.Items)
	homeRouter.POST("/add-to-cart", cartController.Add)
	homeRouter.DELETE("/remove-from-cart", cartController.Remove)
	homeRouter.GET("/cart-item-details", cartController.ItemDetails)
	homeRouter.GET("/cart-summary", cartController.Summary)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return r, nil
}

func initDB(cfg infra.Config) *gorm.DB {
	db, err := infra.SetupDB(cfg)
	if err != nil {
		zap.L().Fatal("Failed to connect to database", zap.Error(err))
	}

	// SQLiteは起動ごとに空になり得るので常にマイグレーションする
	if cfg.AutoMigrate || cfg.DBName == "" {
		if err := infra.Migrate(db); err != nil {
			zap.L().Fatal("Failed to migrate database", zap.Error(err))
		}
	}

	if cfg.Seed {
		created, err := services.SeedCatalog(context.Background(),
			repositories.NewItemRepository(db), repositories.NewDetailRepository(db))
		if err != nil {
			zap.L().Fatal("Failed to seed catalog", zap.Error(err))
		}
		zap.L().Info("Seeded catalog", zap.Int("items", created))
	}
	return db
}

// initTokenRepository prefers Redis and falls back to the SQLite blacklist database.
func initTokenRepository(cfg infra.Config, redisClient *redis.Client) repositories.ITokenRepository {
	if redisClient != nil {
		return repositories.NewRedisTokenRepository(redisClient)
	}

	tokenDB, err := infra.SetupTokenDB(cfg)
	if err != nil {
		zap.L().Fatal("Failed to open token blacklist database", zap.Error(err))
	}
	if err := infra.MigrateTokenDB(tokenDB); err != nil {
		zap.L().Fatal("Failed to migrate token blacklist database", zap.Error(err))
	}
	return repositories.NewTokenRepository(tokenDB)
}

// cleanBlacklist purges expired revoked tokens until ctx is done.
func cleanBlacklist(ctx context.Context, tokenRepository repositories.ITokenRepository, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed, err := tokenRepository.CleanExpiredTokens(ctx)
			if err != nil {
				zap.L().Warn("Failed to clean token blacklist", zap.Error(err))
				continue
			}
			if removed > 0 {
				zap.L().Info("Cleaned token blacklist", zap.Int64("removed", removed))
			}
		}
	}
}

func main() {
	infra.Initialize()
	cfg := infra.LoadConfig()

	logger, err := infra.SetupLogger(cfg)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	if cfg.IsProd() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db := initDB(cfg)

	redisClient, err := infra.SetupRedis(ctx, cfg)
	if err != nil {
		logger.Fatal("Failed to connect to redis", zap.Error(err))
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	tokenRepository := initTokenRepository(cfg, redisClient)
	go cleanBlacklist(ctx, tokenRepository, time.Hour)

	r, err := setupRouter(db, tokenRepository, redisClient, cfg)
	if err != nil {
		logger.Fatal("Failed to set up router", zap.Error(err))
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("Starting server", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()

	logger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
		os.Exit(1)
	}
	logger.Info("Server exited")
}
