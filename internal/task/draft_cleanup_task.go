package task

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"auction_dev_v1_202608/internal/repository"
)

// ==================== 草稿清理任务 ====================

// DraftCleanupTask 过期草稿清理
//
// 提交后不清草稿（ClearDraftOnCommit=false）或用户中途放弃时，
// 草稿行会一直留在表里，这个任务按 TTL 兜底回收。
type DraftCleanupTask struct {
	draftRepo repository.DraftRepository
	Cron      *cron.Cron

	ttl      time.Duration // 草稿保留时长
	cronSpec string
}

// NewDraftCleanupTask 创建清理任务
// ttl <= 0 时使用默认 72 小时
func NewDraftCleanupTask(draftRepo repository.DraftRepository, ttl time.Duration, cronSpec string) *DraftCleanupTask {
	if ttl <= 0 {
		ttl = 72 * time.Hour
	}
	if cronSpec == "" {
		cronSpec = "0 0 * * * *" // 每小时整点
	}
	return &DraftCleanupTask{
		draftRepo: draftRepo,
		Cron:      cron.New(cron.WithSeconds()),
		ttl:       ttl,
		cronSpec:  cronSpec,
	}
}

// Start 启动定时任务
func (t *DraftCleanupTask) Start() {
	// 首次执行
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		log.Println("[Task] 服务启动，正在执行首次草稿清理...")
		t.CleanupJob(ctx)
	}()

	_, err := t.Cron.AddFunc(t.cronSpec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		t.CleanupJob(ctx)
	})
	if err != nil {
		log.Fatalf("无法启动草稿清理任务: %v", err)
	}

	t.Cron.Start()
	log.Printf("草稿清理任务已启动 (保留 %v, cron: %s)", t.ttl, t.cronSpec)
}

// Stop 停止定时任务
func (t *DraftCleanupTask) Stop() {
	t.Cron.Stop()
}

// CleanupJob 执行一轮清理
// 先查出待删行留痕，再按同一截止时间删除
func (t *DraftCleanupTask) CleanupJob(ctx context.Context) {
	before := time.Now().Add(-t.ttl)

	stale, err := t.draftRepo.FindStale(ctx, before)
	if err != nil {
		log.Printf("[Cron] 查询过期草稿失败: %v", err)
		return
	}
	if len(stale) == 0 {
		return
	}
	for _, row := range stale {
		log.Printf("[Cron] 草稿过期: user_id=%s 最后更新=%s",
			row.UserID, row.UpdatedAt.Format(time.RFC3339))
	}

	deleted, err := t.draftRepo.DeleteStale(ctx, before)
	if err != nil {
		log.Printf("[Cron] 草稿清理失败: %v", err)
		return
	}
	log.Printf("[Cron] 本轮清理过期草稿 %d 条", deleted)
}
