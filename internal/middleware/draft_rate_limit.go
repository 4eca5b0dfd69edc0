package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// ==================== 草稿保存限流 ====================

// DraftSaveLimiter 按用户维度限制草稿保存频率
// 每次编辑都会触发一次远端写，这里给写放大加一道上限
type DraftSaveLimiter struct {
	locks sync.Map // userID -> *saveEntry
}

// saveEntry 锁条目
type saveEntry struct {
	lastTime time.Time
	mu       sync.Mutex
}

// NewDraftSaveLimiter 创建限流器
func NewDraftSaveLimiter() *DraftSaveLimiter {
	return &DraftSaveLimiter{}
}

// CheckResult 检查结果
type CheckResult struct {
	Allowed    bool          // 是否允许
	RetryAfter time.Duration // 剩余冷却时间
}

// Check 检查用户是否在冷却期内，允许时顺带记录本次时间
func (r *DraftSaveLimiter) Check(userID string, interval time.Duration) CheckResult {
	actual, _ := r.locks.LoadOrStore(userID, &saveEntry{})
	entry := actual.(*saveEntry)

	entry.mu.Lock()
	defer entry.mu.Unlock()

	now := time.Now()
	elapsed := now.Sub(entry.lastTime)
	if elapsed < interval {
		return CheckResult{Allowed: false, RetryAfter: interval - elapsed}
	}

	entry.lastTime = now
	return CheckResult{Allowed: true}
}

// Reset 清除指定用户的冷却状态
func (r *DraftSaveLimiter) Reset(userID string) {
	r.locks.Delete(userID)
}

// ==================== Gin 中间件 ====================

// DraftSaveCooldown 草稿保存冷却中间件
// cooldown <= 0 时整体停用（默认），每次编辑照常直写
func DraftSaveCooldown(limiter *DraftSaveLimiter, cooldown time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if cooldown <= 0 {
			c.Next()
			return
		}

		userID := c.Param("userId")
		if userID == "" {
			c.Next()
			return
		}

		result := limiter.Check(userID, cooldown)
		if !result.Allowed {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"code":        429,
				"message":     "草稿保存过于频繁",
				"retry_after": result.RetryAfter.Milliseconds(),
			})
			return
		}

		c.Next()
	}
}
