package redis

import (
	"errors"

	"github.com/redis/go-redis/v9"
)

var (
	// ErrNilConfig 配置为空
	ErrNilConfig = errors.New("redis: nil config")
	// ErrInvalidConfig 配置无效
	ErrInvalidConfig = errors.New("redis: invalid config")
	// ErrNil key 不存在
	ErrNil = redis.Nil
)
