package middleware

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ==================== 审计上下文 ====================

// auditContextKey context key
type auditContextKey struct{}

// AuditInfo 审计信息
// 用户标识未经校验，只用于日志串联和草稿归属
type AuditInfo struct {
	UserID string
}

// WithAuditInfo 注入审计信息到 context
func WithAuditInfo(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, auditContextKey{}, &AuditInfo{UserID: userID})
}

// GetAuditUserID 从 context 获取用户标识
func GetAuditUserID(ctx context.Context) string {
	if info, ok := ctx.Value(auditContextKey{}).(*AuditInfo); ok {
		return info.UserID
	}
	return ""
}

// ==================== Gin 中间件 ====================

// AuditContext 审计上下文中间件
// 把 X-User-ID 请求头注入 request context，供日志和后续处理使用
func AuditContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID := c.GetHeader("X-User-ID"); userID != "" {
			ctx := WithAuditInfo(c.Request.Context(), userID)
			c.Request = c.Request.WithContext(ctx)
		}
		c.Next()
	}
}

// RequestLogger 请求日志中间件
func RequestLogger(log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		entry := log.WithFields(logrus.Fields{
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"status":  c.Writer.Status(),
			"latency": time.Since(start).String(),
		})
		if userID := GetAuditUserID(c.Request.Context()); userID != "" {
			entry = entry.WithField("user_id", userID)
		}

		if c.Writer.Status() >= 500 {
			entry.Error("请求处理失败")
		} else {
			entry.Info("请求完成")
		}
	}
}
