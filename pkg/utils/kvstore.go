package utils

import (
	"sync"
	"time"
)

// ==================== 会话键值存储 ====================
// 浏览器 local/session storage 的注入式替身：
// 会话级 get/set/remove，可选 TTL，工作流测试不依赖真实浏览器存储。

// SessionStore 会话级键值存储
type SessionStore struct {
	ttl   time.Duration
	items sync.Map
}

// sessionItem 内部结构，包含值和过期时间
type sessionItem struct {
	value      string
	expiration int64 // 0 表示不过期
}

// NewSessionStore 创建会话存储
// ttl 为 0 时条目不过期
func NewSessionStore(ttl time.Duration) *SessionStore {
	return &SessionStore{ttl: ttl}
}

// Set 写入键值
func (s *SessionStore) Set(key, value string) {
	var exp int64
	if s.ttl > 0 {
		exp = time.Now().Add(s.ttl).Unix()
	}
	s.items.Store(key, sessionItem{value: value, expiration: exp})
}

// Get 读取键值并检查过期（懒删除）
func (s *SessionStore) Get(key string) (string, bool) {
	val, ok := s.items.Load(key)
	if !ok {
		return "", false
	}

	item := val.(sessionItem)
	if item.expiration > 0 && time.Now().Unix() > item.expiration {
		s.items.Delete(key)
		return "", false
	}
	return item.value, true
}

// Remove 删除键
func (s *SessionStore) Remove(key string) {
	s.items.Delete(key)
}
