package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"auction_dev_v1_202608/internal/model"
	"auction_dev_v1_202608/pkg/utils"
)

// ErrSubmitInFlight 已有一次提交在进行中（同一次点击只允许一次完成信号）
var ErrSubmitInFlight = errors.New("提交进行中，请勿重复操作")

// ==================== 提交接口 ====================

// Submitter 终态提交接口
// 进程内的 SubmitService 与 HTTP 客户端（pkg/client）都实现它。
type Submitter interface {
	Submit(ctx context.Context, d *model.DraftListing, listingID int64) (*SubmitResult, error)
}

// ==================== 表单会话 ====================

// FormConfig 表单会话策略
type FormConfig struct {
	// DebounceMs 草稿保存防抖窗口（毫秒）。
	// 0 表示每次分区提交立即写远端，不合并。
	DebounceMs int
}

// FormSession 单用户的多步表单会话（草稿状态管理器）
//
// 持有四分区的进行中状态，每次分区级修改触发一次
// 即发即忘的远端草稿保存。状态归本会话独占，方法内部加锁，
// 不存在多写者竞争；快速连续编辑的落库顺序是"最后完成者胜"。
type FormSession struct {
	mu         sync.Mutex
	userID     string
	listingID  int64
	state      model.DraftListing
	draftAvail bool
	submitting bool
	timer      *time.Timer

	drafts    DraftStore
	submitter Submitter
	cfg       FormConfig
	log       *logrus.Entry
}

// NewFormSession 创建表单会话
// 状态用表单默认值播种；userID 为空时草稿功能整体停用
func NewFormSession(userID string, drafts DraftStore, submitter Submitter, cfg FormConfig) *FormSession {
	return &FormSession{
		userID:    userID,
		state:     *model.NewDraftListing(userID),
		drafts:    drafts,
		submitter: submitter,
		cfg:       cfg,
		log:       logrus.WithField("component", "form").WithField("user_id", userID),
	}
}

// ResolveUserID 从会话存储取用户标识，没有就生成一个存回去
// 对应浏览器 localStorage 里的 userId 项
func ResolveUserID(store *utils.SessionStore) string {
	if id, ok := store.Get("userId"); ok && id != "" {
		return id
	}
	id := uuid.NewString()
	store.Set("userId", id)
	return id
}

// UserID 会话的用户标识
func (s *FormSession) UserID() string {
	return s.userID
}

// Snapshot 当前四分区状态的拷贝
func (s *FormSession) Snapshot() model.DraftListing {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// ==================== 草稿检测 / 加载 ====================

// CheckForDraft 查询远端是否已有草稿，更新可用标志
// 任何失败都按"没有草稿"处理
func (s *FormSession) CheckForDraft(ctx context.Context) bool {
	if s.userID == "" {
		return false
	}

	_, found, err := s.drafts.GetDraft(ctx, s.userID)
	if err != nil {
		s.log.Warnf("检查草稿失败: %v", err)
		found = false
	}

	s.mu.Lock()
	s.draftAvail = found
	s.mu.Unlock()
	return found
}

// DraftAvailable 上次 CheckForDraft 的结果
func (s *FormSession) DraftAvailable() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draftAvail
}

// LoadDraft 把远端草稿按分区合并进本地状态
// 远端没有草稿返回 ErrNoDraft，本地状态不变
func (s *FormSession) LoadDraft(ctx context.Context) error {
	raw, found, err := s.drafts.GetDraft(ctx, s.userID)
	if err != nil {
		return err
	}
	if !found {
		return ErrNoDraft
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return MergeDraftSections(&s.state, raw)
}

// LoadForEdit 用已提交商品的草稿形态播种会话，后续提交走整行覆盖
func (s *FormSession) LoadForEdit(d *model.DraftListing, listingID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = *d
	s.state.TitleCategory.UserID = s.userID
	s.listingID = listingID
}

// ==================== 分区修改 ====================
// 每个 setter 整体覆盖对应分区（不做字段级补丁），随即触发一次保存。

// SetTitleCategory 覆盖标题/分类分区
func (s *FormSession) SetTitleCategory(tc model.TitleCategory) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tc.UserID = s.userID // 用户标识由会话钉死，不随表单走
	s.state.TitleCategory = tc
	s.scheduleSave()
}

// SetItemDetails 覆盖商品详情分区
func (s *FormSession) SetItemDetails(details model.ItemDetails) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.ItemDetails = details
	s.scheduleSave()
}

// SetPricePayment 覆盖价格/付款分区
func (s *FormSession) SetPricePayment(pp model.PricePayment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.PricePayment = pp
	s.scheduleSave()
}

// SetShipping 覆盖配送分区
func (s *FormSession) SetShipping(shipping model.Shipping) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Shipping = shipping
	s.scheduleSave()
}

// scheduleSave 触发一次即发即忘的远端保存（调用方须持锁）
// 防抖窗口内的连续修改合并成一次写
func (s *FormSession) scheduleSave() {
	if s.userID == "" {
		return
	}

	if s.cfg.DebounceMs <= 0 {
		state := s.state
		go s.persist(state)
		return
	}

	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(time.Duration(s.cfg.DebounceMs)*time.Millisecond, func() {
		s.mu.Lock()
		state := s.state
		s.mu.Unlock()
		s.persist(state)
	})
}

// persist 保存失败只记日志，由用户下次操作自然重试
func (s *FormSession) persist(state model.DraftListing) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.drafts.SaveDraft(ctx, s.userID, &state); err != nil {
		s.log.Warnf("草稿保存失败: %v", err)
	}
}

// ==================== 提交 ====================

// Submit 提交当前状态
// 单飞：已有提交在进行中时直接返回 ErrSubmitInFlight，
// 保证一次点击最多产生一次完成信号
func (s *FormSession) Submit(ctx context.Context) (*SubmitResult, error) {
	s.mu.Lock()
	if s.submitting {
		s.mu.Unlock()
		return nil, ErrSubmitInFlight
	}
	s.submitting = true
	state := s.state
	listingID := s.listingID
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.submitting = false
		s.mu.Unlock()
	}()

	return s.submitter.Submit(ctx, &state, listingID)
}
