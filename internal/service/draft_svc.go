package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"auction_dev_v1_202608/internal/model"
	"auction_dev_v1_202608/internal/repository"
)

// ErrNoDraft 用户没有草稿记录（预期内的缺席，不算异常）
var ErrNoDraft = errors.New("未找到草稿记录")

// ==================== 草稿服务 ====================

// DraftService 远端草稿管理
//
// 查无草稿从来不是硬错误：CheckForDraft 只清标志位，
// LoadDraft 返回 ErrNoDraft 且不动本地状态。
type DraftService struct {
	repo repository.DraftRepository
	log  *logrus.Entry
}

// NewDraftService 创建草稿服务
func NewDraftService(repo repository.DraftRepository) *DraftService {
	return &DraftService{
		repo: repo,
		log:  logrus.WithField("component", "draft"),
	}
}

// ==================== 查询 ====================

// CheckForDraft 用户是否已有草稿
// 任何传输/查询失败都按"没有草稿"处理，只记日志
func (s *DraftService) CheckForDraft(ctx context.Context, userID string) bool {
	if userID == "" {
		return false
	}

	_, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			s.log.WithField("user_id", userID).Warnf("检查草稿失败: %v", err)
		}
		return false
	}
	return true
}

// GetDraft 读取草稿 JSON 原文
// 第二个返回值表示是否存在
func (s *DraftService) GetDraft(ctx context.Context, userID string) ([]byte, bool, error) {
	row, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return []byte(row.Draft), true, nil
}

// ==================== 加载（分区级合并） ====================

// draftPatch 探测远端草稿中各分区是否存在
type draftPatch struct {
	TitleCategory *model.TitleCategory `json:"titleCategory"`
	ItemDetails   *model.ItemDetails   `json:"itemDetails"`
	PricePayment  *model.PricePayment  `json:"pricePayment"`
	Shipping      *model.Shipping      `json:"shipping"`
}

// LoadDraft 把远端草稿合并进本地状态
//
// 分区粒度合并：远端存在的分区整体替换本地对应分区，
// 缺失的分区保留本地值。不做字段级合并。
// 查无草稿返回 ErrNoDraft，local 保持不变。
func (s *DraftService) LoadDraft(ctx context.Context, userID string, local *model.DraftListing) error {
	row, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNoDraft
		}
		return fmt.Errorf("读取草稿失败: %w", err)
	}

	return MergeDraftSections(local, row.Draft)
}

// MergeDraftSections 把远端草稿 JSON 按分区合并进 local
func MergeDraftSections(local *model.DraftListing, raw []byte) error {
	var patch draftPatch
	if err := json.Unmarshal(raw, &patch); err != nil {
		return fmt.Errorf("草稿解析失败: %w", err)
	}

	if patch.TitleCategory != nil {
		local.TitleCategory = *patch.TitleCategory
	}
	if patch.ItemDetails != nil {
		local.ItemDetails = *patch.ItemDetails
	}
	if patch.PricePayment != nil {
		local.PricePayment = *patch.PricePayment
	}
	if patch.Shipping != nil {
		local.Shipping = *patch.Shipping
	}
	return nil
}

// ==================== 保存 / 删除 ====================

// SaveDraft 整体覆盖保存草稿
// userID 为空或草稿为 nil 属于调用方契约违规，直接报错
func (s *DraftService) SaveDraft(ctx context.Context, userID string, d *model.DraftListing) error {
	if userID == "" {
		return fmt.Errorf("保存草稿需要用户标识")
	}
	if d == nil {
		return fmt.Errorf("草稿状态为空，拒绝保存")
	}

	blob, err := d.Encode()
	if err != nil {
		return err
	}

	if err := s.repo.Upsert(ctx, &model.ListingDraft{
		UserID: userID,
		Draft:  blob,
	}); err != nil {
		return fmt.Errorf("保存草稿失败: %w", err)
	}

	s.log.WithField("user_id", userID).Debug("草稿已保存")
	return nil
}

// DeleteDraft 删除用户草稿，草稿不存在不算错
func (s *DraftService) DeleteDraft(ctx context.Context, userID string) error {
	if userID == "" {
		return nil
	}
	if _, err := s.repo.Delete(ctx, userID); err != nil {
		return fmt.Errorf("删除草稿失败: %w", err)
	}
	return nil
}
