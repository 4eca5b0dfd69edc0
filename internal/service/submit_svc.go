package service

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"auction_dev_v1_202608/internal/model"
)

// ==================== 存储接口 ====================

// ListingStore 商品提交存储（已换形的扁平结构）
type ListingStore interface {
	CreateListing(ctx context.Context, listing *model.Listing) (*model.Listing, error)
	UpdateListing(ctx context.Context, id int64, listing *model.Listing) (int64, error)
}

// DraftStore 草稿存取接口
// 进程内服务（DraftService）与 HTTP 客户端（pkg/client）都实现它，
// 表单会话对两者无感知。
type DraftStore interface {
	GetDraft(ctx context.Context, userID string) (raw []byte, found bool, err error)
	SaveDraft(ctx context.Context, userID string, d *model.DraftListing) error
	DeleteDraft(ctx context.Context, userID string) error
}

// ==================== 提交编排 ====================

// SubmitConfig 提交策略
type SubmitConfig struct {
	// ClearDraftOnCommit 提交成功后是否删除草稿行。
	// 不清理时残留草稿会让界面继续提示"加载草稿"；
	// 默认开启清理，关掉则交给过期清理任务兜底。
	ClearDraftOnCommit bool
}

// SubmitResult 提交结果
type SubmitResult struct {
	ListingID int64 `json:"listingId"`
	Rows      int64 `json:"rows"`
	Created   bool  `json:"created"`
}

// SubmitService 草稿 -> 已提交商品的终态迁移
//
// 流程：校验门禁 -> 换形 -> 建新行或整行覆盖 -> 可选清理草稿。
// 门禁不过则整体中止，草稿状态原样保留。
type SubmitService struct {
	validator *ValidationService
	converter *ConverterService
	listings  ListingStore
	drafts    DraftStore
	cfg       SubmitConfig
	log       *logrus.Entry
}

// NewSubmitService 创建提交服务
func NewSubmitService(
	validator *ValidationService,
	converter *ConverterService,
	listings ListingStore,
	drafts DraftStore,
	cfg SubmitConfig,
) *SubmitService {
	return &SubmitService{
		validator: validator,
		converter: converter,
		listings:  listings,
		drafts:    drafts,
		cfg:       cfg,
		log:       logrus.WithField("component", "submit"),
	}
}

// Submit 提交草稿
// listingID 为 0 时新建，否则整行覆盖更新
// 校验失败返回 *ValidationError；存储失败包一层消息向上抛
func (s *SubmitService) Submit(ctx context.Context, d *model.DraftListing, listingID int64) (*SubmitResult, error) {
	if err := s.validator.ValidateListing(ctx, d); err != nil {
		return nil, err
	}

	listing, err := s.converter.FlattenDraft(d)
	if err != nil {
		return nil, err
	}

	var result SubmitResult
	if listingID > 0 {
		rows, err := s.listings.UpdateListing(ctx, listingID, listing)
		if err != nil {
			return nil, fmt.Errorf("更新商品失败: %w", err)
		}
		result = SubmitResult{ListingID: listingID, Rows: rows}
	} else {
		created, err := s.listings.CreateListing(ctx, listing)
		if err != nil {
			return nil, fmt.Errorf("创建商品失败: %w", err)
		}
		result = SubmitResult{ListingID: created.ID, Rows: 1, Created: true}
	}

	s.clearDraft(ctx, d.TitleCategory.UserID)
	return &result, nil
}

// clearDraft 提交成功后的草稿清理
// 清理失败只记日志，不影响已完成的提交
func (s *SubmitService) clearDraft(ctx context.Context, userID string) {
	if !s.cfg.ClearDraftOnCommit || userID == "" || s.drafts == nil {
		return
	}
	if err := s.drafts.DeleteDraft(ctx, userID); err != nil {
		s.log.WithField("user_id", userID).Warnf("提交后清理草稿失败: %v", err)
	}
}
