package infra

import (
	"database/sql"
	"fmt"
	"strings"

	"gin-shopcart/models"

	"github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// sqliteDriverName is go-sqlite3 with LOWER() replaced by a Unicode-aware version.
// The built-in one only folds ASCII, so filters such as "äpf" would never match "Äpfel".
const sqliteDriverName = "sqlite3_unicode"

func init() {
	sql.Register(sqliteDriverName, &sqlite3.SQLiteDriver{
		ConnectHook: func(conn *sqlite3.SQLiteConn) error {
			return conn.RegisterFunc("lower", FoldLower, true)
		},
	})
}

// FoldLower lower-cases s with Unicode rules. Repositories use it for LIKE patterns
// so both sides of the comparison are folded the same way.
func FoldLower(s string) string {
	return cases.Lower(language.Und).String(s)
}

func SetupDB(cfg Config) (*gorm.DB, error) {
	gormCfg := &gorm.Config{Logger: logger.Default.LogMode(logger.Silent), TranslateError: true}

	// DB_NAMEが設定されている場合はPostgreSQLを使用
	if cfg.DBName != "" {
		// 本番環境ではsslmode=require、それ以外はsslmode=disable
		sslmode := "disable"
		if cfg.IsProd() {
			sslmode = "require"
		}

		dsn := fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s connect_timeout=10",
			cfg.DBHost,
			cfg.DBUser,
			cfg.DBPassword,
			cfg.DBName,
			cfg.DBPort,
			sslmode,
		)

		db, err := gorm.Open(postgres.Open(dsn), gormCfg)
		if err != nil {
			return nil, fmt.Errorf("connect to postgres: %w", err)
		}
		zap.L().Info("Setup postgres database",
			zap.String("host", cfg.DBHost), zap.String("dbname", cfg.DBName), zap.String("port", cfg.DBPort))
		return db, nil
	}

	// デフォルトはSQLite（開発・テスト用）
	db, err := OpenSQLite(cfg.SQLitePath, gormCfg)
	if err != nil {
		return nil, err
	}
	zap.L().Info("Setup sqlite database", zap.String("path", cfg.SQLitePath))
	return db, nil
}

// SetupTokenDB トークンブラックリスト用のSQLiteデータベース接続を設定
func SetupTokenDB(cfg Config) (*gorm.DB, error) {
	db, err := OpenSQLite(cfg.TokenDBPath, &gorm.Config{Logger: logger.Default.LogMode(logger.Silent), TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("connect to token blacklist database: %w", err)
	}
	zap.L().Info("Setup token blacklist SQLite database", zap.String("path", cfg.TokenDBPath))
	return db, nil
}

// OpenSQLite opens a SQLite database with foreign keys enabled. In-memory databases
// are pinned to a single connection so every query sees the same data.
func OpenSQLite(path string, gormCfg *gorm.Config) (*gorm.DB, error) {
	dsn := path
	if strings.Contains(dsn, "?") {
		dsn += "&_foreign_keys=1"
	} else {
		dsn += "?_foreign_keys=1"
	}

	db, err := gorm.Open(sqlite.New(sqlite.Config{DriverName: sqliteDriverName, DSN: dsn}), gormCfg)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %q: %w", path, err)
	}

	if strings.Contains(path, ":memory:") || strings.Contains(path, "mode=memory") {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}
	return db, nil
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}
	return nil
}

func MigrateTokenDB(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.BlacklistedToken{}); err != nil {
		return fmt.Errorf("migrate token blacklist database: %w", err)
	}
	return nil
}
