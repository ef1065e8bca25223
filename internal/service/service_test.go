package service

import (
	"context"
	"time"

	"github.com/omertagame/omerta/internal/dao"
	"github.com/omertagame/omerta/internal/gamedata"
	"github.com/omertagame/omerta/internal/metrics"
	"github.com/omertagame/omerta/internal/model"
	"github.com/omertagame/omerta/pkg/logger"
)

// fakeRepo 内存仓储,GetProfile 返回副本,写失败时库内状态不变
type fakeRepo struct {
	profiles map[string]*model.Profile
	stats    map[string]*model.CrimeStats

	saveErr   error
	statsErr  error
	saveCount int
}

func newFakeRepo(profiles ...*model.Profile) *fakeRepo {
	r := &fakeRepo{
		profiles: make(map[string]*model.Profile),
		stats:    make(map[string]*model.CrimeStats),
	}
	for _, p := range profiles {
		cp := *p
		r.profiles[p.ID] = &cp
	}
	return r
}

func (r *fakeRepo) GetProfile(_ context.Context, id string) (*model.Profile, error) {
	p, ok := r.profiles[id]
	if !ok {
		return nil, dao.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakeRepo) SaveProfile(_ context.Context, p *model.Profile) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.saveCount++
	p.Version++
	cp := *p
	r.profiles[p.ID] = &cp
	return nil
}

func (r *fakeRepo) ClearExpiredJail(_ context.Context, now time.Time) (int64, error) {
	var cleared int64
	for _, p := range r.profiles {
		if p.JailTime.Valid && !p.JailTime.Time.After(now) {
			p.ReleaseJail()
			p.Version++
			cleared++
		}
	}
	return cleared, nil
}

func (r *fakeRepo) GetCrimeStats(_ context.Context, userID string) (*model.CrimeStats, error) {
	if s, ok := r.stats[userID]; ok {
		cp := *s
		return &cp, nil
	}
	return &model.CrimeStats{UserID: userID}, nil
}

func (r *fakeRepo) RecordCrime(_ context.Context, userID string, success bool, profit int64) error {
	if r.statsErr != nil {
		return r.statsErr
	}
	s, ok := r.stats[userID]
	if !ok {
		s = &model.CrimeStats{UserID: userID}
		r.stats[userID] = s
	}
	s.Total++
	if success {
		s.Successful++
		s.TotalProfit += profit
	} else {
		s.Failed++
	}
	return nil
}

// seqRand 按预置序列回放的随机源,耗尽后返回零值
type seqRand struct {
	floats []float64
	ints   []int
	fi, ii int
}

func (r *seqRand) Float64() float64 {
	if r.fi >= len(r.floats) {
		return 0
	}
	v := r.floats[r.fi]
	r.fi++
	return v
}

func (r *seqRand) Intn(int) int {
	if r.ii >= len(r.ints) {
		return 0
	}
	v := r.ints[r.ii]
	r.ii++
	return v
}

// 测试用参照表
func testTables() *gamedata.Tables {
	ranks := []*model.Rank{
		{ID: 1, Name: "Rookie", RequiredExperience: 0, RankBonus: 0},
		{ID: 2, Name: "Soldier", RequiredExperience: 100, RankBonus: 0.05},
		{ID: 3, Name: "Boss", RequiredExperience: 1000, RankBonus: 0.20},
	}
	crimes := []*model.Crime{
		{ID: 1, Name: "Pickpocketing", MinReward: 10, MaxReward: 50, ExperienceReward: 5, SuccessRate: 80, Difficulty: 1, JailRisk: 0.1},
		{ID: 2, Name: "Bank Heist", MinReward: 2000, MaxReward: 8000, ExperienceReward: 150, SuccessRate: 40, Difficulty: 8, JailRisk: 0.7},
		{ID: 3, Name: "Sure Thing", MinReward: 100, MaxReward: 100, ExperienceReward: 95, SuccessRate: 200, Difficulty: 1, JailRisk: 1},
	}
	activities := []*model.JailActivity{
		{ID: 1, Name: "Bribe a Guard", ChanceIncrease: 10, CooldownSeconds: 300},
		{ID: 2, Name: "Work Out", ChanceIncrease: 95, CooldownSeconds: 120},
	}
	weapons := []*model.Weapon{
		{ID: 1, Name: "Switchblade", Value: 400, Damage: 10},
		{ID: 2, Name: "Tommy Gun", Value: 10000, Damage: 80},
	}
	return gamedata.New(ranks, crimes, activities, weapons)
}

func testProfile(id string) *model.Profile {
	p := model.NewProfile(id, "tester")
	p.Rank = "Rookie"
	return p
}

var (
	testLogger  = logger.Noop()
	testMetrics = metrics.New("test")
)
