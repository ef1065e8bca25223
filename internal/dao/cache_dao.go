package dao

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/omertagame/omerta/internal/metrics"
	"github.com/omertagame/omerta/internal/model"
	"github.com/omertagame/omerta/pkg/database/redis"
	"github.com/omertagame/omerta/pkg/logger"
)

const (
	// Redis key 前缀
	profileKeyPrefix = "cache:profile:"
	sessionKeyPrefix = "session:player:"

	// 变更推送频道前缀
	profileChannelPrefix = "profile:"

	// TTL
	profileCacheTTL = 30 * time.Minute
	sessionTTL      = 24 * time.Hour
)

// ProfileChannel 返回玩家变更推送的频道名
func ProfileChannel(profileID string) string {
	return profileChannelPrefix + profileID
}

// CacheDAO 缓存数据访问对象
type CacheDAO struct {
	redis   *redis.Client
	logger  logger.Logger
	metrics *metrics.GameMetrics
}

// NewCacheDAO 创建缓存 DAO
func NewCacheDAO(rdb *redis.Client, l logger.Logger, m *metrics.GameMetrics) *CacheDAO {
	return &CacheDAO{
		redis:   rdb,
		logger:  l.Named("dao.cache"),
		metrics: m,
	}
}

// GetProfile 从缓存获取玩家档案,未命中时返回 (nil, nil)
func (d *CacheDAO) GetProfile(ctx context.Context, profileID string) (*model.Profile, error) {
	key := profileKeyPrefix + profileID

	data, err := d.redis.Get(ctx, key)
	if err != nil {
		if err == redis.ErrNil {
			d.metrics.RecordCacheMiss("redis")
			return nil, nil
		}
		d.logger.Error("failed to get profile from cache",
			"profile_id", profileID,
			"error", err,
		)
		return nil, fmt.Errorf("failed to get profile from cache: %w", err)
	}

	d.metrics.RecordCacheHit("redis")

	var profile model.Profile
	if err := json.Unmarshal([]byte(data), &profile); err != nil {
		d.logger.Error("failed to unmarshal cached profile",
			"profile_id", profileID,
			"error", err,
		)
		return nil, fmt.Errorf("failed to unmarshal cached profile: %w", err)
	}

	return &profile, nil
}

// SetProfile 写入玩家档案缓存
func (d *CacheDAO) SetProfile(ctx context.Context, profile *model.Profile) error {
	key := profileKeyPrefix + profile.ID

	data, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}

	if err := d.redis.Set(ctx, key, data, profileCacheTTL); err != nil {
		d.logger.Error("failed to set profile cache",
			"profile_id", profile.ID,
			"error", err,
		)
		return fmt.Errorf("failed to set profile cache: %w", err)
	}

	return nil
}

// DeleteProfile 删除玩家档案缓存
func (d *CacheDAO) DeleteProfile(ctx context.Context, profileID string) error {
	key := profileKeyPrefix + profileID
	if err := d.redis.Del(ctx, key); err != nil {
		d.logger.Error("failed to delete profile cache",
			"profile_id", profileID,
			"error", err,
		)
		return fmt.Errorf("failed to delete profile cache: %w", err)
	}
	return nil
}

// PublishProfile 把最新档案快照发布到玩家频道
func (d *CacheDAO) PublishProfile(ctx context.Context, profile *model.Profile) error {
	data, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}

	if err := d.redis.Publish(ctx, ProfileChannel(profile.ID), data); err != nil {
		d.logger.Error("failed to publish profile",
			"profile_id", profile.ID,
			"error", err,
		)
		return fmt.Errorf("failed to publish profile: %w", err)
	}

	return nil
}

// SetSession 写入登录会话,value 为签发的 token
func (d *CacheDAO) SetSession(ctx context.Context, userID, token string) error {
	key := sessionKeyPrefix + userID
	if err := d.redis.Set(ctx, key, token, sessionTTL); err != nil {
		d.logger.Error("failed to set session",
			"user_id", userID,
			"error", err,
		)
		return fmt.Errorf("failed to set session: %w", err)
	}
	return nil
}

// GetSession 获取登录会话,不存在时返回 ("", nil)
func (d *CacheDAO) GetSession(ctx context.Context, userID string) (string, error) {
	key := sessionKeyPrefix + userID
	token, err := d.redis.Get(ctx, key)
	if err != nil {
		if err == redis.ErrNil {
			return "", nil
		}
		return "", fmt.Errorf("failed to get session: %w", err)
	}
	return token, nil
}

// DeleteSession 删除登录会话
func (d *CacheDAO) DeleteSession(ctx context.Context, userID string) error {
	key := sessionKeyPrefix + userID
	if err := d.redis.Del(ctx, key); err != nil {
		d.logger.Error("failed to delete session",
			"user_id", userID,
			"error", err,
		)
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}
