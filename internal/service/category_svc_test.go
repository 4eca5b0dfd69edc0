package service

import (
	"context"
	"testing"

	"auction_dev_v1_202608/internal/model"
)

func TestCategoryService_ParentOf(t *testing.T) {
	svc, _ := newTestCategoryService(t)
	ctx := context.Background()

	parent, err := svc.ParentOf(ctx, 11)
	if err != nil || parent != 1 {
		t.Errorf("ParentOf(11) = (%d, %v), want (1, nil)", parent, err)
	}

	// 顶级分类的父分类是 0
	parent, err = svc.ParentOf(ctx, 1)
	if err != nil || parent != 0 {
		t.Errorf("ParentOf(1) = (%d, %v), want (0, nil)", parent, err)
	}

	if _, err := svc.ParentOf(ctx, 999); err == nil {
		t.Error("未知分类应报错")
	}
}

func TestCategoryService_HasChildren(t *testing.T) {
	svc, _ := newTestCategoryService(t)
	ctx := context.Background()

	has, err := svc.HasChildren(ctx, 1)
	if err != nil || !has {
		t.Errorf("HasChildren(1) = (%v, %v), Electronics 有子分类", has, err)
	}

	has, err = svc.HasChildren(ctx, 2)
	if err != nil || has {
		t.Errorf("HasChildren(2) = (%v, %v), Books 没有子分类", has, err)
	}
}

func TestCategoryService_ListByParent(t *testing.T) {
	svc, _ := newTestCategoryService(t)
	ctx := context.Background()

	top, err := svc.ListByParent(ctx, 0, true)
	if err != nil {
		t.Fatalf("ListByParent() error = %v", err)
	}
	if len(top) != 2 {
		t.Fatalf("顶级分类 = %d 个, want 2", len(top))
	}
	// 按名称排序
	if top[0].CategoryName != "Books" || top[1].CategoryName != "Electronics" {
		t.Errorf("排序不正确: %q, %q", top[0].CategoryName, top[1].CategoryName)
	}

	subs, err := svc.ListByParent(ctx, 1, true)
	if err != nil {
		t.Fatalf("ListByParent() error = %v", err)
	}
	if len(subs) != 2 {
		t.Errorf("Electronics 子分类 = %d 个, want 2", len(subs))
	}
}

func TestCategoryService_RefreshPicksUpNewRows(t *testing.T) {
	svc, db := newTestCategoryService(t)
	ctx := context.Background()

	// 先触发一次加载
	if _, err := svc.ParentOf(ctx, 11); err != nil {
		t.Fatalf("ParentOf() error = %v", err)
	}

	// ttl=0 只加载一次，新行要显式 Refresh 才可见
	if err := db.Create(&model.Category{ID: 13, CategoryName: "Cameras", ParentID: 1, Active: true}).Error; err != nil {
		t.Fatalf("插入新分类失败: %v", err)
	}
	if _, err := svc.ParentOf(ctx, 13); err == nil {
		t.Error("未刷新前不应看到新分类")
	}

	if err := svc.Refresh(ctx); err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	parent, err := svc.ParentOf(ctx, 13)
	if err != nil || parent != 1 {
		t.Errorf("刷新后 ParentOf(13) = (%d, %v), want (1, nil)", parent, err)
	}
}
