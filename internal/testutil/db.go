// Package testutil builds throwaway databases and storage for package tests.
package testutil

import (
	"context"
	"fmt"
	"strings"
	"testing"

	migration "github.com/Project-CookFlow-E2E/CF-Backend/cmd/database/migrate"
	"github.com/Project-CookFlow-E2E/CF-Backend/cmd/database/seed"
	"github.com/Project-CookFlow-E2E/CF-Backend/entities"
	"github.com/Project-CookFlow-E2E/CF-Backend/internal/utils/storage"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const OwnerID uint = 1

// NewDB opens a private in-memory sqlite database with the schema migrated and
// the reference catalog seeded.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, migration.Migrate(db))
	require.NoError(t, seed.Seed(context.Background(), db, OwnerID))
	return db
}

func CreateUser(t *testing.T, db *gorm.DB, username, role string) *entities.User {
	t.Helper()
	user := &entities.User{Username: username, Email: username + "@example.com", Role: role}
	require.NoError(t, db.Create(user).Error)
	return user
}

func Ingredient(t *testing.T, db *gorm.DB, name string) *entities.Ingredient {
	t.Helper()
	var ingredient entities.Ingredient
	require.NoError(t, db.Where("name = ?", name).First(&ingredient).Error)
	return &ingredient
}

func Unit(t *testing.T, db *gorm.DB, name string) *entities.Unit {
	t.Helper()
	var unit entities.Unit
	require.NoError(t, db.Where("name = ?", name).First(&unit).Error)
	return &unit
}

func Category(t *testing.T, db *gorm.DB, name string) *entities.Category {
	t.Helper()
	var category entities.Category
	require.NoError(t, db.Where("name = ?", name).First(&category).Error)
	return &category
}

// NewStorage returns local storage rooted in a per-test temp dir.
func NewStorage(t *testing.T) *storage.LocalStorage {
	t.Helper()
	s, err := storage.NewLocalStorage(t.TempDir(), "/media")
	require.NoError(t, err)
	return s
}
