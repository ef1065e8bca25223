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

// CrimeResult 犯罪结算结果
// 失败是业务结果,不是 error
type CrimeResult struct {
	Success          bool           `json:"success"`
	Message          string         `json:"message"`
	ExperienceGained int64          `json:"experience_gained"`
	CashGained       int64          `json:"cash_gained"`
	PromotedTo       string         `json:"promoted_to,omitempty"` // 晋升后的军衔名
	SentToJail       bool           `json:"sent_to_jail"`
	Profile          *model.Profile `json:"profile"`
}

// CrimeService 犯罪结算服务
type CrimeService struct {
	repo    repository.PlayerRepository
	tables  *gamedata.Tables
	ranks   *RankService
	rng     Rand
	logger  logger.Logger
	metrics *metrics.GameMetrics
}

// NewCrimeService 创建犯罪服务
func NewCrimeService(
	repo repository.PlayerRepository,
	tables *gamedata.Tables,
	ranks *RankService,
	rng Rand,
	l logger.Logger,
	m *metrics.GameMetrics,
) *CrimeService {
	if rng == nil {
		rng = NewRand()
	}
	return &CrimeService{
		repo:    repo,
		tables:  tables,
		ranks:   ranks,
		rng:     rng,
		logger:  l.Named("service.crime"),
		metrics: m,
	}
}

// CommitCrime 结算一次犯罪
// 在押玩家不能作案;整次结算是对档案的单次乐观锁写入,
// 写入失败时档案保持原状
func (s *CrimeService) CommitCrime(ctx context.Context, profileID string, crimeID int32) (*CrimeResult, error) {
	crime := s.tables.Crime(crimeID)
	if crime == nil {
		return nil, fmt.Errorf("crime %d: %w", crimeID, ErrNotFound)
	}

	profile, err := s.repo.GetProfile(ctx, profileID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	switch profile.JailStateAt(now) {
	case model.JailStateIncarcerated:
		return nil, fmt.Errorf("still in jail: %w", ErrInvalidState)
	case model.JailStateStale:
		// 刑期已过,顺手清理,随本次结算一并落库
		profile.ReleaseJail()
	}

	rate := s.ranks.SuccessRate(crime, profile.Experience)
	success := s.rng.Float64()*100 < rate

	result := &CrimeResult{Success: success}

	if success {
		result.ExperienceGained = crime.ExperienceReward
		result.CashGained = crime.MinReward
		if span := crime.MaxReward - crime.MinReward; span > 0 {
			result.CashGained += int64(s.rng.Intn(int(span) + 1))
		}

		oldRank := profile.Rank
		profile.Experience += result.ExperienceGained
		profile.Cash += result.CashGained

		newRank := s.ranks.RankName(profile.Experience)
		profile.Rank = newRank

		result.Message = fmt.Sprintf("You pulled off the %s and got away with $%d!", crime.Name, result.CashGained)
		if newRank != "" && newRank != oldRank {
			result.PromotedTo = newRank
			result.Message += fmt.Sprintf(" You have been promoted to %s.", newRank)
		}
	} else {
		result.Message = fmt.Sprintf("The %s went wrong and you walked away with nothing.", crime.Name)

		if s.rng.Float64() < crime.JailRisk {
			profile.JailTime = sql.NullTime{Time: now.Add(jailSentence), Valid: true}
			profile.JailSentence = jailSentenceSeconds
			profile.BreakoutChance = model.DefaultBreakoutChance
			result.SentToJail = true
			result.Message = fmt.Sprintf("The %s went wrong and the cops got you. You're in jail for 30 minutes.", crime.Name)
		}
	}

	if err := s.repo.SaveProfile(ctx, profile); err != nil {
		return nil, err
	}

	// 统计失败不影响结算结果
	if err := s.repo.RecordCrime(ctx, profileID, success, result.CashGained); err != nil {
		s.logger.Warn("failed to record crime stats",
			"profile_id", profileID,
			"error", err,
		)
	}

	s.metrics.RecordCrime(success)
	if result.SentToJail {
		s.metrics.RecordJailed()
	}

	result.Profile = profile
	return result, nil
}

// SuccessRate 计算玩家对指定犯罪的当前成功率
func (s *CrimeService) SuccessRate(ctx context.Context, profileID string, crimeID int32) (float64, error) {
	crime := s.tables.Crime(crimeID)
	if crime == nil {
		return 0, fmt.Errorf("crime %d: %w", crimeID, ErrNotFound)
	}

	profile, err := s.repo.GetProfile(ctx, profileID)
	if err != nil {
		return 0, err
	}

	return s.ranks.SuccessRate(crime, profile.Experience), nil
}
