package service

import (
	"errors"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"auction_dev_v1_202608/internal/model"
	"auction_dev_v1_202608/internal/repository"
)

// ==================== 测试辅助函数 ====================

func setupServiceTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}

	err = db.AutoMigrate(&model.Category{}, &model.Listing{}, &model.ListingDraft{})
	if err != nil {
		t.Fatalf("数据库迁移失败: %v", err)
	}

	// 两级分类：Electronics 有子分类，Books 没有
	categories := []model.Category{
		{ID: 1, CategoryName: "Electronics", ParentID: 0, Active: true},
		{ID: 2, CategoryName: "Books", ParentID: 0, Active: true},
		{ID: 11, CategoryName: "Phones", ParentID: 1, Active: true},
		{ID: 12, CategoryName: "Computers", ParentID: 1, Active: true},
	}
	if err := db.Create(&categories).Error; err != nil {
		t.Fatalf("插入测试分类失败: %v", err)
	}

	return db
}

func newTestCategoryService(t *testing.T) (*CategoryService, *gorm.DB) {
	db := setupServiceTestDB(t)
	return NewCategoryService(repository.NewCategoryRepository(db), 0), db
}

// validDraft 一份能通过全部校验规则的草稿
// 结束日期取 now 的后一天（窗口下界）
func validDraft(userID string, now time.Time) *model.DraftListing {
	return &model.DraftListing{
		TitleCategory: model.TitleCategory{
			UserID:        userID,
			Title:         "Vintage Film Camera",
			SubTitle:      "Fully working",
			CategoryID:    1,
			SubCategoryID: 11,
			EndDate:       now.AddDate(0, 0, 1).Format(model.DateLayout),
		},
		ItemDetails: model.ItemDetails{
			Description: "Classic rangefinder camera in excellent condition.",
			Condition:   true,
		},
		PricePayment: model.PricePayment{
			ListingPrice:      "199.50",
			ReservePrice:      "50.00",
			CreditCardPayment: true,
		},
		Shipping: model.Shipping{
			PickUp:         true,
			ShippingOption: model.ShippingOptionPost,
		},
	}
}

// hasFieldError err 是否包含指定字段的校验违规
func hasFieldError(err error, field string) bool {
	var verr *ValidationError
	if !errors.As(err, &verr) {
		return false
	}
	for _, f := range verr.Fields {
		if f.Field == field {
			return true
		}
	}
	return false
}
