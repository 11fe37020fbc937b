package service

import (
	"testing"

	"gorm.io/gorm"

	"github.com/treebornwood/voicedeskk/internal/database"
	"github.com/treebornwood/voicedeskk/internal/model"
)

// newTestDB 打开内存数据库并完成迁移,每个测试独立一份
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// createTestBusiness 插入一个测试商家
func createTestBusiness(t *testing.T, db *gorm.DB, business *model.Business) *model.Business {
	t.Helper()

	if business.BusinessName == "" {
		business.BusinessName = "Test Barber"
	}
	if business.Slug == "" {
		business.Slug = Slugify(business.BusinessName)
	}
	if business.OwnerID == 0 {
		business.OwnerID = 1
	}
	if err := db.Create(business).Error; err != nil {
		t.Fatalf("failed to create test business: %v", err)
	}
	return business
}
