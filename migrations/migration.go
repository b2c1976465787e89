package main

import (
	"context"
	"flag"

	"gin-shopcart/infra"
	"gin-shopcart/repositories"
	"gin-shopcart/services"

	"go.uber.org/zap"
)

func main() {
	seed := flag.Bool("seed", false, "insert the demo catalog when the item table is empty")
	flag.Parse()

	infra.Initialize()
	cfg := infra.LoadConfig()

	logger, err := infra.SetupLogger(cfg)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	db, err := infra.SetupDB(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	if err := infra.Migrate(db); err != nil {
		logger.Fatal("Failed to migrate database", zap.Error(err))
	}

	// トークンブラックリスト用のSQLiteデータベースのマイグレーション
	tokenDB, err := infra.SetupTokenDB(cfg)
	if err != nil {
		logger.Fatal("Failed to open token blacklist database", zap.Error(err))
	}
	if err := infra.MigrateTokenDB(tokenDB); err != nil {
		logger.Fatal("Failed to migrate token blacklist database", zap.Error(err))
	}

	if *seed || cfg.Seed {
		created, err := services.SeedCatalog(context.Background(),
			repositories.NewItemRepository(db), repositories.NewDetailRepository(db))
		if err != nil {
			logger.Fatal("Failed to seed catalog", zap.Error(err))
		}
		logger.Info("Seeded catalog", zap.Int("items", created))
	}
}
