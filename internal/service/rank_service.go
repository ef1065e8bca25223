package service

import (
	"github.com/omertagame/omerta/internal/gamedata"
	"github.com/omertagame/omerta/internal/model"
	"github.com/omertagame/omerta/pkg/logger"
)

// 成功率边界,保证任何犯罪都既非必成也非必败
const (
	minSuccessRate = 5.0
	maxSuccessRate = 95.0
)

// RankProgress 军衔进度,用于进度条展示
type RankProgress struct {
	Current  *model.Rank `json:"current"`  // 未达到任何门槛时为 nil
	Next     *model.Rank `json:"next"`     // 已封顶时为 nil
	Progress float64     `json:"progress"` // [0,1],封顶时为 1
}

// RankService 军衔结算服务
type RankService struct {
	tables *gamedata.Tables
	logger logger.Logger
}

// NewRankService 创建军衔服务
func NewRankService(tables *gamedata.Tables, l logger.Logger) *RankService {
	return &RankService{
		tables: tables,
		logger: l.Named("service.rank"),
	}
}

// Resolve 计算经验值对应的军衔进度
func (s *RankService) Resolve(exp int64) *RankProgress {
	return &RankProgress{
		Current:  s.tables.CurrentRank(exp),
		Next:     s.tables.NextRank(exp),
		Progress: s.tables.RankProgress(exp),
	}
}

// RankName 当前军衔名,未达到任何门槛时为空串
func (s *RankService) RankName(exp int64) string {
	if r := s.tables.CurrentRank(exp); r != nil {
		return r.Name
	}
	return ""
}

// SuccessRate 计算犯罪成功率(百分数)
// 基础成功率加军衔加成,按难度扣减,并约束在 [5,95]
func (s *RankService) SuccessRate(crime *model.Crime, exp int64) float64 {
	var bonus float64
	if r := s.tables.CurrentRank(exp); r != nil {
		bonus = r.RankBonus
	}

	rate := crime.SuccessRate + bonus*100 - float64(crime.Difficulty)*5
	if rate < minSuccessRate {
		return minSuccessRate
	}
	if rate > maxSuccessRate {
		return maxSuccessRate
	}
	return rate
}
