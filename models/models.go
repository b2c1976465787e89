package models

// All lists every model managed by AutoMigrate on the main database.
func All() []any {
	return []any{&User{}, &Item{}, &Detail{}, &CartEntry{}}
}
