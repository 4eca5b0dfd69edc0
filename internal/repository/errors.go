package repository

import "errors"

// ==================== 仓储层错误 ====================

var (
	// ErrNotFound 记录不存在
	ErrNotFound = errors.New("记录不存在")

	// ErrInvalidCategory 分类外键非法（提交了不存在的分类 ID）
	ErrInvalidCategory = errors.New("分类不存在")
)
