package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"auction_dev_v1_202608/internal/model"
)

// ==================== 仓储接口 ====================

// DraftRepository 草稿仓储接口
//
// 一个用户最多一条草稿，Upsert 即整体覆盖。
type DraftRepository interface {
	GetByUserID(ctx context.Context, userID string) (*model.ListingDraft, error)
	Upsert(ctx context.Context, draft *model.ListingDraft) error
	Delete(ctx context.Context, userID string) (int64, error)

	// 过期清理相关
	FindStale(ctx context.Context, before time.Time) ([]model.ListingDraft, error)
	DeleteStale(ctx context.Context, before time.Time) (int64, error)
}

// ==================== 仓储实现 ====================

type draftRepo struct {
	db *gorm.DB
}

// NewDraftRepository 创建草稿仓储
func NewDraftRepository(db *gorm.DB) DraftRepository {
	return &draftRepo{db: db}
}

func (r *draftRepo) GetByUserID(ctx context.Context, userID string) (*model.ListingDraft, error) {
	var draft model.ListingDraft
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Take(&draft).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &draft, nil
}

// Upsert 按 user_id 覆盖写入
// 单条 ON CONFLICT，避免先查后写在并发保存下的竞态
func (r *draftRepo) Upsert(ctx context.Context, draft *model.ListingDraft) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"draft", "updated_at"}),
		}).
		Create(draft).Error
}

func (r *draftRepo) Delete(ctx context.Context, userID string) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&model.ListingDraft{})
	return result.RowsAffected, result.Error
}

// FindStale 查找指定时间之前未再更新的草稿
func (r *draftRepo) FindStale(ctx context.Context, before time.Time) ([]model.ListingDraft, error) {
	var drafts []model.ListingDraft
	err := r.db.WithContext(ctx).
		Where("updated_at < ?", before).
		Find(&drafts).Error
	return drafts, err
}

// DeleteStale 删除过期草稿，返回删除行数
func (r *draftRepo) DeleteStale(ctx context.Context, before time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("updated_at < ?", before).
		Delete(&model.ListingDraft{})
	return result.RowsAffected, result.Error
}
