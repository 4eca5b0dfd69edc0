package repository

import (
	"context"

	"gorm.io/gorm"

	"auction_dev_v1_202608/internal/model"
)

// ==================== 仓储接口 ====================

// CategoryRepository 分类仓储接口
type CategoryRepository interface {
	ListByParent(ctx context.Context, parentID int64, active bool) ([]model.Category, error)
	All(ctx context.Context, active bool) ([]model.Category, error)
}

// ==================== 仓储实现 ====================

type categoryRepo struct {
	db *gorm.DB
}

// NewCategoryRepository 创建分类仓储
func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepo{db: db}
}

func (r *categoryRepo) ListByParent(ctx context.Context, parentID int64, active bool) ([]model.Category, error) {
	var categories []model.Category
	err := r.db.WithContext(ctx).
		Where("parent_id = ? AND active = ?", parentID, active).
		Order("category_name ASC").
		Find(&categories).Error
	return categories, err
}

func (r *categoryRepo) All(ctx context.Context, active bool) ([]model.Category, error) {
	var categories []model.Category
	err := r.db.WithContext(ctx).
		Where("active = ?", active).
		Order("parent_id ASC, category_name ASC").
		Find(&categories).Error
	return categories, err
}
