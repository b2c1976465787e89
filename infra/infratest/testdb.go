// Package infratest provides database fixtures for tests.
package infratest

import (
	"fmt"
	"strings"
	"testing"
	"unicode"

	"gin-shopcart/infra"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewTestDB opens a private in-memory SQLite database with every model migrated.
func NewTestDB(t testing.TB) *gorm.DB {
	t.Helper()

	name := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return '_'
	}, t.Name())
	path := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)

	db, err := infra.OpenSQLite(path, &gorm.Config{Logger: logger.Default.LogMode(logger.Silent), TranslateError: true})
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	if err := infra.Migrate(db); err != nil {
		t.Fatalf("migrating test database: %v", err)
	}
	if err := infra.MigrateTokenDB(db); err != nil {
		t.Fatalf("migrating test token tables: %v", err)
	}

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}
