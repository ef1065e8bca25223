package dao

import "errors"

var (
	// ErrNotFound 记录不存在
	ErrNotFound = errors.New("dao: record not found")
	// ErrVersionConflict 乐观锁版本冲突
	ErrVersionConflict = errors.New("dao: version conflict")
	// ErrDuplicate 唯一约束冲突
	ErrDuplicate = errors.New("dao: duplicate record")
)
