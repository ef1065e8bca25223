package service

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/omertagame/omerta/internal/gamedata"
	"github.com/omertagame/omerta/internal/metrics"
	"github.com/omertagame/omerta/internal/model"
	"github.com/omertagame/omerta/internal/repository"
	"github.com/omertagame/omerta/pkg/logger"
)

// 刑期:每次入狱(和越狱失败的加刑)都是 30 分钟
const (
	jailSentenceSeconds = 1800
	jailSentence        = jailSentenceSeconds * time.Second
)

// JailStatus 监禁状态快照
type JailStatus struct {
	Incarcerated     bool  `json:"incarcerated"`
	RemainingSeconds int64 `json:"remaining_seconds"`
	SentenceSeconds  int32 `json:"sentence_seconds"`
	BreakoutChance   int32 `json:"breakout_chance"`
}

// BreakoutResult 越狱尝试结果
type BreakoutResult struct {
	Success          bool           `json:"success"`
	Message          string         `json:"message"`
	RemainingSeconds int64          `json:"remaining_seconds"`
	BreakoutChance   int32          `json:"breakout_chance"`
	Profile          *model.Profile `json:"profile"`
}

// ActivityResult 监狱活动结果
type ActivityResult struct {
	Success        bool           `json:"success"`
	Message        string         `json:"message"`
	BreakoutChance int32          `json:"breakout_chance"`
	Profile        *model.Profile `json:"profile"`
}

// JailService 监狱状态机服务
type JailService struct {
	repo    repository.PlayerRepository
	tables  *gamedata.Tables
	rng     Rand
	logger  logger.Logger
	metrics *metrics.GameMetrics
}

// NewJailService 创建监狱服务
func NewJailService(
	repo repository.PlayerRepository,
	tables *gamedata.Tables,
	rng Rand,
	l logger.Logger,
	m *metrics.GameMetrics,
) *JailService {
	if rng == nil {
		rng = NewRand()
	}
	return &JailService{
		repo:    repo,
		tables:  tables,
		rng:     rng,
		logger:  l.Named("service.jail"),
		metrics: m,
	}
}

// Status 查询监禁状态,刑期已过的档案顺带清理落库
func (s *JailService) Status(ctx context.Context, profileID string) (*JailStatus, error) {
	profile, err := s.repo.GetProfile(ctx, profileID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if profile.JailStateAt(now) == model.JailStateStale {
		profile.ReleaseJail()
		if err := s.repo.SaveProfile(ctx, profile); err != nil {
			return nil, err
		}
	}

	return &JailStatus{
		Incarcerated:     profile.JailStateAt(now) == model.JailStateIncarcerated,
		RemainingSeconds: int64(profile.JailRemainingAt(now).Seconds()),
		SentenceSeconds:  profile.JailSentence,
		BreakoutChance:   profile.BreakoutChance,
	}, nil
}

// AttemptBreakout 尝试越狱,只有在押玩家可以调用
// 成功清除监禁并重置概率;失败在原刑满时刻上加 30 分钟,概率 -2(下限 5)
func (s *JailService) AttemptBreakout(ctx context.Context, profileID string) (*BreakoutResult, error) {
	profile, err := s.repo.GetProfile(ctx, profileID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	switch profile.JailStateAt(now) {
	case model.JailStateFree:
		return nil, fmt.Errorf("not in jail: %w", ErrInvalidState)
	case model.JailStateStale:
		profile.ReleaseJail()
		if err := s.repo.SaveProfile(ctx, profile); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("sentence already served: %w", ErrInvalidState)
	}

	success := s.rng.Intn(100) < int(profile.BreakoutChance)

	result := &BreakoutResult{Success: success}

	if success {
		profile.ClearJail()
		result.Message = "You broke out of jail!"
	} else {
		// 加刑叠加在原刑满时刻上,连续失败会越欠越多
		profile.JailTime = sql.NullTime{Time: profile.JailTime.Time.Add(jailSentence), Valid: true}
		profile.JailSentence = int32(profile.JailTime.Time.Sub(now).Seconds())
		profile.BreakoutChance -= 2
		if profile.BreakoutChance < model.MinBreakoutChance {
			profile.BreakoutChance = model.MinBreakoutChance
		}
		result.Message = "The guards caught you. 30 minutes have been added to your sentence."
	}

	if err := s.repo.SaveProfile(ctx, profile); err != nil {
		return nil, err
	}

	s.metrics.RecordBreakout(success)

	result.RemainingSeconds = int64(profile.JailRemainingAt(now).Seconds())
	result.BreakoutChance = profile.BreakoutChance
	result.Profile = profile
	return result, nil
}

// PerformActivity 执行监狱活动提升越狱概率
// 所有活动共用同一个冷却锚点;冷却未到是业务失败而非 error
func (s *JailService) PerformActivity(ctx context.Context, profileID string, activityID int32) (*ActivityResult, error) {
	activity := s.tables.JailActivity(activityID)
	if activity == nil {
		return nil, fmt.Errorf("jail activity %d: %w", activityID, ErrNotFound)
	}

	profile, err := s.repo.GetProfile(ctx, profileID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	switch profile.JailStateAt(now) {
	case model.JailStateFree:
		return nil, fmt.Errorf("not in jail: %w", ErrInvalidState)
	case model.JailStateStale:
		profile.ReleaseJail()
		if err := s.repo.SaveProfile(ctx, profile); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("sentence already served: %w", ErrInvalidState)
	}

	if profile.LastActivityTime.Valid {
		readyAt := profile.LastActivityTime.Time.Add(time.Duration(activity.CooldownSeconds) * time.Second)
		if now.Before(readyAt) {
			remaining := readyAt.Sub(now)
			minutes := int64((remaining + time.Minute - 1) / time.Minute) // 向上取整
			return &ActivityResult{
				Success:        false,
				Message:        fmt.Sprintf("You must wait %d minutes before your next activity.", minutes),
				BreakoutChance: profile.BreakoutChance,
				Profile:        profile,
			}, nil
		}
	}

	profile.BreakoutChance += activity.ChanceIncrease
	if profile.BreakoutChance > model.MaxBreakoutChance {
		profile.BreakoutChance = model.MaxBreakoutChance
	}
	profile.LastActivityTime = sql.NullTime{Time: now, Valid: true}

	if err := s.repo.SaveProfile(ctx, profile); err != nil {
		return nil, err
	}

	return &ActivityResult{
		Success:        true,
		Message:        fmt.Sprintf("%s improved your breakout chance to %d%%.", activity.Name, profile.BreakoutChance),
		BreakoutChance: profile.BreakoutChance,
		Profile:        profile,
	}, nil
}

// SweepStale 批量清理刑期已过的档案,由定时任务调用
func (s *JailService) SweepStale(ctx context.Context) (int64, error) {
	cleared, err := s.repo.ClearExpiredJail(ctx, time.Now())
	if err != nil {
		return 0, err
	}
	if cleared > 0 {
		s.logger.Info("cleared expired jail sentences", "count", cleared)
	}
	return cleared, nil
}
