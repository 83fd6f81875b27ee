package repository

import (
	"fmt"
	"testing"

	"blog-service/internal/database"
	"blog-service/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// testDB 每个测试一个独立的内存库
func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

// mustCreateUser 测试用的用户工厂
func mustCreateUser(t *testing.T, r *UserRepository, email string) *models.User {
	t.Helper()
	user, err := r.Create(email, "Test User", "Secret123")
	if err != nil {
		t.Fatalf("create user %s: %v", email, err)
	}
	return user
}
