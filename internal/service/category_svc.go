package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"auction_dev_v1_202608/internal/model"
	"auction_dev_v1_202608/internal/repository"
)

// ==================== 分类服务 ====================

// CategoryService 分类参考数据服务
//
// 在内存里维护两级分类树，提供 ParentOf 反查（子分类 -> 父分类）。
// 父分类不走 SQL 自连接，推导统一收敛到分类树，
// 换形逻辑不需要知道存储布局。
type CategoryService struct {
	repo repository.CategoryRepository

	mu       sync.RWMutex
	parents  map[int64]int64 // 子分类ID -> 父分类ID
	children map[int64]int   // 分类ID -> 子分类数量
	loadedAt time.Time
	ttl      time.Duration
}

// NewCategoryService 创建分类服务
// ttl 控制分类树的重载周期，0 表示加载一次后不过期
func NewCategoryService(repo repository.CategoryRepository, ttl time.Duration) *CategoryService {
	return &CategoryService{
		repo:     repo,
		parents:  make(map[int64]int64),
		children: make(map[int64]int),
		ttl:      ttl,
	}
}

// ListByParent 按父分类列出分类（parentID=0 为顶级）
func (s *CategoryService) ListByParent(ctx context.Context, parentID int64, active bool) ([]model.Category, error) {
	return s.repo.ListByParent(ctx, parentID, active)
}

// ParentOf 反查子分类的父分类 ID
// 顶级分类返回 0；未知分类返回错误
func (s *CategoryService) ParentOf(ctx context.Context, subCategoryID int64) (int64, error) {
	if err := s.ensureLoaded(ctx); err != nil {
		return 0, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	parent, ok := s.parents[subCategoryID]
	if !ok {
		return 0, fmt.Errorf("分类 %d 不存在", subCategoryID)
	}
	return parent, nil
}

// HasChildren 分类是否有二级分类
func (s *CategoryService) HasChildren(ctx context.Context, categoryID int64) (bool, error) {
	if err := s.ensureLoaded(ctx); err != nil {
		return false, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.children[categoryID] > 0, nil
}

// Refresh 强制重载分类树
func (s *CategoryService) Refresh(ctx context.Context) error {
	categories, err := s.repo.All(ctx, true)
	if err != nil {
		return fmt.Errorf("加载分类树失败: %w", err)
	}

	parents := make(map[int64]int64, len(categories))
	children := make(map[int64]int)
	for _, c := range categories {
		parents[c.ID] = c.ParentID
		if c.ParentID != 0 {
			children[c.ParentID]++
		}
	}

	s.mu.Lock()
	s.parents = parents
	s.children = children
	s.loadedAt = time.Now()
	s.mu.Unlock()
	return nil
}

func (s *CategoryService) ensureLoaded(ctx context.Context) error {
	s.mu.RLock()
	fresh := !s.loadedAt.IsZero() && (s.ttl <= 0 || time.Since(s.loadedAt) < s.ttl)
	s.mu.RUnlock()

	if fresh {
		return nil
	}
	return s.Refresh(ctx)
}
