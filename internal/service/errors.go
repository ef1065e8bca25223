package service

import "errors"

var (
	// ErrNotFound 目标不存在(未知犯罪、武器、活动或玩家)
	ErrNotFound = errors.New("service: not found")
	// ErrInvalidState 操作与当前监禁状态不符
	ErrInvalidState = errors.New("service: invalid state")
	// ErrInvalidCredentials 邮箱或密码错误
	ErrInvalidCredentials = errors.New("service: invalid credentials")
	// ErrDuplicateAccount 邮箱或用户名已被占用
	ErrDuplicateAccount = errors.New("service: account already exists")
)
