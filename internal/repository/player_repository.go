package repository

import (
	"context"
	"time"

	"github.com/omertagame/omerta/internal/dao"
	"github.com/omertagame/omerta/internal/model"
	"github.com/omertagame/omerta/pkg/logger"
)

// PlayerRepository 玩家聚合仓储接口
type PlayerRepository interface {
	// ===== 档案相关 =====
	GetProfile(ctx context.Context, profileID string) (*model.Profile, error)
	// SaveProfile 乐观锁写入,冲突时返回 dao.ErrVersionConflict
	// 成功后失效缓存并发布最新快照
	SaveProfile(ctx context.Context, profile *model.Profile) error
	// ClearExpiredJail 批量清理刑期已过的档案
	ClearExpiredJail(ctx context.Context, now time.Time) (int64, error)

	// ===== 犯罪统计相关 =====
	GetCrimeStats(ctx context.Context, userID string) (*model.CrimeStats, error)
	RecordCrime(ctx context.Context, userID string, success bool, profit int64) error
}

// playerRepositoryImpl 玩家仓储实现
type playerRepositoryImpl struct {
	profileDAO *dao.ProfileDAO
	statsDAO   *dao.StatsDAO
	cacheDAO   *dao.CacheDAO
	logger     logger.Logger
}

// NewPlayerRepository 创建玩家仓储
func NewPlayerRepository(
	profileDAO *dao.ProfileDAO,
	statsDAO *dao.StatsDAO,
	cacheDAO *dao.CacheDAO,
	l logger.Logger,
) PlayerRepository {
	return &playerRepositoryImpl{
		profileDAO: profileDAO,
		statsDAO:   statsDAO,
		cacheDAO:   cacheDAO,
		logger:     l.Named("repository.player"),
	}
}

// GetProfile 读取玩家档案,缓存优先
func (r *playerRepositoryImpl) GetProfile(ctx context.Context, profileID string) (*model.Profile, error) {
	cached, err := r.cacheDAO.GetProfile(ctx, profileID)
	if err != nil {
		// 缓存故障只记日志,继续走库
		r.logger.Warn("profile cache read failed, falling back to db",
			"profile_id", profileID,
			"error", err,
		)
	}
	if cached != nil {
		return cached, nil
	}

	profile, err := r.profileDAO.GetByID(ctx, profileID)
	if err != nil {
		return nil, err
	}

	if err := r.cacheDAO.SetProfile(ctx, profile); err != nil {
		r.logger.Warn("profile cache write failed",
			"profile_id", profileID,
			"error", err,
		)
	}

	return profile, nil
}

// SaveProfile 乐观锁写入,成功后刷新缓存并发布快照
func (r *playerRepositoryImpl) SaveProfile(ctx context.Context, profile *model.Profile) error {
	if err := r.profileDAO.Update(ctx, profile); err != nil {
		return err
	}

	if err := r.cacheDAO.SetProfile(ctx, profile); err != nil {
		r.logger.Warn("profile cache refresh failed",
			"profile_id", profile.ID,
			"error", err,
		)
	}

	if err := r.cacheDAO.PublishProfile(ctx, profile); err != nil {
		r.logger.Warn("profile publish failed",
			"profile_id", profile.ID,
			"error", err,
		)
	}

	return nil
}

// ClearExpiredJail 批量清理刑期已过的档案
// 被清理的行缓存可能短暂过期,下次写入或 TTL 到期后自愈
func (r *playerRepositoryImpl) ClearExpiredJail(ctx context.Context, now time.Time) (int64, error) {
	return r.profileDAO.ClearExpiredJail(ctx, now)
}

// GetCrimeStats 获取犯罪统计
func (r *playerRepositoryImpl) GetCrimeStats(ctx context.Context, userID string) (*model.CrimeStats, error) {
	return r.statsDAO.Get(ctx, userID)
}

// RecordCrime 记录一次犯罪结算
func (r *playerRepositoryImpl) RecordCrime(ctx context.Context, userID string, success bool, profit int64) error {
	return r.statsDAO.Record(ctx, userID, success, profit)
}
