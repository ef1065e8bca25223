package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/omertagame/omerta/pkg/config"
)

// Client Redis 客户端
type Client struct {
	rdb *redis.Client
	cfg *Config
}

// New 创建 Redis 客户端
func New(cfg *Config) (*Client, error) {
	merged, err := config.MergeConfig(DefaultConfig(), cfg)
	if err != nil {
		return nil, fmt.Errorf("merge config: %w", err)
	}
	if err := merged.Validate(); err != nil {
		return nil, err
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:            fmt.Sprintf("%s:%d", merged.Host, merged.Port),
		Password:        merged.Password,
		DB:              merged.DB,
		MaxIdleConns:    merged.Pool.MaxIdleConns,
		MaxActiveConns:  merged.Pool.MaxActiveConns,
		ConnMaxLifetime: merged.Pool.ConnMaxLifetime,
		ConnMaxIdleTime: merged.Pool.ConnMaxIdleTime,
		DialTimeout:     merged.Pool.DialTimeout,
		ReadTimeout:     merged.Pool.ReadTimeout,
		WriteTimeout:    merged.Pool.WriteTimeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), merged.Pool.DialTimeout)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return &Client{rdb: rdb, cfg: merged}, nil
}

// Get 获取 key,key 不存在时返回 ErrNil
func (c *Client) Get(ctx context.Context, key string) (string, error) {
	return c.rdb.Get(ctx, key).Result()
}

// Set 设置 key,expiration 为 0 表示不过期
func (c *Client) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return c.rdb.Set(ctx, key, value, expiration).Err()
}

// Del 删除 key
func (c *Client) Del(ctx context.Context, keys ...string) error {
	return c.rdb.Del(ctx, keys...).Err()
}

// Exists 判断 key 是否存在
func (c *Client) Exists(ctx context.Context, key string) (bool, error) {
	n, err := c.rdb.Exists(ctx, key).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Expire 设置 key 的过期时间
func (c *Client) Expire(ctx context.Context, key string, expiration time.Duration) error {
	return c.rdb.Expire(ctx, key, expiration).Err()
}

// Publish 发布消息到指定频道
func (c *Client) Publish(ctx context.Context, channel string, message interface{}) error {
	return c.rdb.Publish(ctx, channel, message).Err()
}

// Subscribe 订阅频道,调用方负责关闭返回的 PubSub
func (c *Client) Subscribe(ctx context.Context, channels ...string) *redis.PubSub {
	return c.rdb.Subscribe(ctx, channels...)
}

// Ping 检查连接
func (c *Client) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

// Close 关闭客户端
func (c *Client) Close() error {
	return c.rdb.Close()
}
