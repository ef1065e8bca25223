package service

import (
	"context"
	"errors"

	"github.com/omertagame/omerta/internal/dao"
	"github.com/omertagame/omerta/internal/model"
	"github.com/omertagame/omerta/internal/repository"
	"github.com/omertagame/omerta/pkg/logger"
)

// ProfileView 档案视图,附带军衔进度
type ProfileView struct {
	Profile *model.Profile `json:"profile"`
	Rank    *RankProgress  `json:"rank"`
}

// StatsView 犯罪统计视图,附带派生均值
type StatsView struct {
	Total         int64   `json:"total"`
	Successful    int64   `json:"successful"`
	Failed        int64   `json:"failed"`
	TotalProfit   int64   `json:"total_profit"`
	AverageProfit float64 `json:"average_profit"`
}

// ProfileService 档案读取服务
type ProfileService struct {
	repo   repository.PlayerRepository
	ranks  *RankService
	logger logger.Logger
}

// NewProfileService 创建档案服务
func NewProfileService(repo repository.PlayerRepository, ranks *RankService, l logger.Logger) *ProfileService {
	return &ProfileService{
		repo:   repo,
		ranks:  ranks,
		logger: l.Named("service.profile"),
	}
}

// GetProfile 读取档案和军衔进度
func (s *ProfileService) GetProfile(ctx context.Context, profileID string) (*ProfileView, error) {
	profile, err := s.repo.GetProfile(ctx, profileID)
	if err != nil {
		if errors.Is(err, dao.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &ProfileView{
		Profile: profile,
		Rank:    s.ranks.Resolve(profile.Experience),
	}, nil
}

// GetCrimeStats 读取犯罪统计
func (s *ProfileService) GetCrimeStats(ctx context.Context, userID string) (*StatsView, error) {
	stats, err := s.repo.GetCrimeStats(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &StatsView{
		Total:         stats.Total,
		Successful:    stats.Successful,
		Failed:        stats.Failed,
		TotalProfit:   stats.TotalProfit,
		AverageProfit: stats.AverageProfit(),
	}, nil
}
