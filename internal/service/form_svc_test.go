package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"auction_dev_v1_202608/internal/model"
	"auction_dev_v1_202608/pkg/utils"
)

// ==================== Mock 提交器 ====================

type mockSubmitter struct {
	mu      sync.Mutex
	calls   int
	block   chan struct{} // 非 nil 时提交阻塞在此，模拟慢请求
	lastReq *model.DraftListing
}

func (m *mockSubmitter) Submit(_ context.Context, d *model.DraftListing, listingID int64) (*SubmitResult, error) {
	m.mu.Lock()
	m.calls++
	m.lastReq = d
	block := m.block
	m.mu.Unlock()

	if block != nil {
		<-block
	}
	if listingID > 0 {
		return &SubmitResult{ListingID: listingID, Rows: 1}, nil
	}
	return &SubmitResult{ListingID: 7, Rows: 1, Created: true}, nil
}

func (m *mockSubmitter) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// waitFor 轮询等待条件成立（即发即忘的保存是异步的）
func waitFor(t *testing.T, timeout time.Duration, cond func() bool) bool {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(5 * time.Millisecond)
	}
	return cond()
}

// ==================== 会话标识 ====================

func TestResolveUserID(t *testing.T) {
	store := utils.NewSessionStore(0)

	first := ResolveUserID(store)
	if first == "" {
		t.Fatal("应生成非空用户标识")
	}

	second := ResolveUserID(store)
	if second != first {
		t.Errorf("二次取值 = %q, want %q（会话内保持稳定）", second, first)
	}
}

// ==================== 分区修改 -> 即发即忘保存 ====================

func TestFormSession_EditTriggersSave(t *testing.T) {
	drafts := newMockDraftStore()
	s := NewFormSession("u1", drafts, &mockSubmitter{}, FormConfig{})

	s.SetTitleCategory(model.TitleCategory{Title: "Camera"})

	if !waitFor(t, time.Second, func() bool { return drafts.hasDraft("u1") }) {
		t.Fatal("分区修改后应触发远端保存")
	}

	// 保存的是整份四分区状态，且 userId 被会话钉死
	raw, _, err := drafts.GetDraft(context.Background(), "u1")
	if err != nil {
		t.Fatalf("GetDraft() error = %v", err)
	}
	var saved model.DraftListing
	if err := MergeDraftSections(&saved, raw); err != nil {
		t.Fatalf("解析保存结果失败: %v", err)
	}
	if saved.TitleCategory.Title != "Camera" || saved.TitleCategory.UserID != "u1" {
		t.Errorf("保存内容 = %+v", saved.TitleCategory)
	}
	if saved.Shipping.ShippingOption != model.ShippingOptionPost {
		t.Error("默认配送分区应随状态一并保存")
	}
}

func TestFormSession_EmptyUserDisablesDrafts(t *testing.T) {
	drafts := newMockDraftStore()
	s := NewFormSession("", drafts, &mockSubmitter{}, FormConfig{})

	s.SetItemDetails(model.ItemDetails{Description: "anything"})
	if s.CheckForDraft(context.Background()) {
		t.Error("空用户标识不应有草稿")
	}

	time.Sleep(50 * time.Millisecond)
	if len(drafts.saved) != 0 {
		t.Error("空用户标识不应触发任何保存")
	}
}

func TestFormSession_DebounceCoalesces(t *testing.T) {
	drafts := newMockDraftStore()
	s := NewFormSession("u1", drafts, &mockSubmitter{}, FormConfig{DebounceMs: 40})

	// 防抖窗口内的三次快速编辑合并成一次写
	s.SetTitleCategory(model.TitleCategory{Title: "one"})
	s.SetTitleCategory(model.TitleCategory{Title: "two"})
	s.SetTitleCategory(model.TitleCategory{Title: "three"})

	if !waitFor(t, time.Second, func() bool { return drafts.hasDraft("u1") }) {
		t.Fatal("防抖到期后应落一次保存")
	}

	raw, _, _ := drafts.GetDraft(context.Background(), "u1")
	var saved model.DraftListing
	if err := MergeDraftSections(&saved, raw); err != nil {
		t.Fatalf("解析保存结果失败: %v", err)
	}
	if saved.TitleCategory.Title != "three" {
		t.Errorf("Title = %q, 防抖应保留最后一次编辑", saved.TitleCategory.Title)
	}
}

// ==================== 草稿检测 / 加载 ====================

func TestFormSession_CheckAndLoadDraft(t *testing.T) {
	drafts := newMockDraftStore()
	ctx := context.Background()

	remote := validDraft("u1", time.Now())
	if err := drafts.SaveDraft(ctx, "u1", remote); err != nil {
		t.Fatalf("预置草稿失败: %v", err)
	}

	s := NewFormSession("u1", drafts, &mockSubmitter{}, FormConfig{})
	if !s.CheckForDraft(ctx) || !s.DraftAvailable() {
		t.Fatal("应检测到已有草稿")
	}

	if err := s.LoadDraft(ctx); err != nil {
		t.Fatalf("LoadDraft() error = %v", err)
	}
	if got := s.Snapshot(); got.TitleCategory.Title != remote.TitleCategory.Title {
		t.Errorf("加载后 Title = %q, want %q", got.TitleCategory.Title, remote.TitleCategory.Title)
	}
}

func TestFormSession_LoadDraft_NoDraft(t *testing.T) {
	drafts := newMockDraftStore()
	s := NewFormSession("u1", drafts, &mockSubmitter{}, FormConfig{})

	before := s.Snapshot()
	if s.CheckForDraft(context.Background()) {
		t.Error("没有远端草稿时标志应为 false")
	}
	if err := s.LoadDraft(context.Background()); !errors.Is(err, ErrNoDraft) {
		t.Fatalf("err = %v, want ErrNoDraft", err)
	}
	if after := s.Snapshot(); after != before {
		t.Error("无草稿时本地状态不应被改动")
	}
}

// ==================== 提交单飞 ====================

func TestFormSession_DoubleSubmitSingleFlight(t *testing.T) {
	drafts := newMockDraftStore()
	submitter := &mockSubmitter{block: make(chan struct{})}
	s := NewFormSession("u1", drafts, submitter, FormConfig{})

	ctx := context.Background()
	done := make(chan error, 1)
	go func() {
		_, err := s.Submit(ctx)
		done <- err
	}()

	// 等第一次提交进入 in-flight 状态
	if !waitFor(t, time.Second, func() bool { return submitter.callCount() == 1 }) {
		t.Fatal("首次提交未启动")
	}

	// 双击：第二次直接被拒
	if _, err := s.Submit(ctx); !errors.Is(err, ErrSubmitInFlight) {
		t.Fatalf("err = %v, want ErrSubmitInFlight", err)
	}

	close(submitter.block)
	if err := <-done; err != nil {
		t.Fatalf("首次提交失败: %v", err)
	}
	if submitter.callCount() != 1 {
		t.Errorf("提交次数 = %d, 一次点击只允许一次完成信号", submitter.callCount())
	}

	// 完成后允许再次提交
	submitter.block = nil
	if _, err := s.Submit(ctx); err != nil {
		t.Errorf("完成后的再次提交不应被拒: %v", err)
	}
}

// ==================== 回编辑 ====================

func TestFormSession_LoadForEdit(t *testing.T) {
	drafts := newMockDraftStore()
	submitter := &mockSubmitter{}
	s := NewFormSession("u1", drafts, submitter, FormConfig{})

	d := validDraft("someone-else", time.Now())
	s.LoadForEdit(d, 42)

	got := s.Snapshot()
	if got.TitleCategory.UserID != "u1" {
		t.Errorf("UserID = %q, 回编辑播种后用户标识应归会话所有", got.TitleCategory.UserID)
	}

	result, err := s.Submit(context.Background())
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if result.ListingID != 42 || result.Created {
		t.Errorf("result = %+v, 回编辑提交应走更新路径", result)
	}
}
