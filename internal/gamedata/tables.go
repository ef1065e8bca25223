package gamedata

import (
	"context"
	"fmt"
	"sort"

	"github.com/omertagame/omerta/internal/model"
)

// Loader 参照表加载接口,由 dao 层实现
type Loader interface {
	ListRanks(ctx context.Context) ([]*model.Rank, error)
	ListCrimes(ctx context.Context) ([]*model.Crime, error)
	ListJailActivities(ctx context.Context) ([]*model.JailActivity, error)
	ListWeapons(ctx context.Context) ([]*model.Weapon, error)
}

// Tables 静态参照表,启动时从库里加载一次,只读
type Tables struct {
	ranks      []*model.Rank // 按 required_experience 升序
	crimes     []*model.Crime
	activities []*model.JailActivity
	weapons    []*model.Weapon

	crimeByID    map[int32]*model.Crime
	activityByID map[int32]*model.JailActivity
	weaponByID   map[int32]*model.Weapon
}

// Load 加载全部参照表
func Load(ctx context.Context, loader Loader) (*Tables, error) {
	ranks, err := loader.ListRanks(ctx)
	if err != nil {
		return nil, fmt.Errorf("load ranks: %w", err)
	}
	crimes, err := loader.ListCrimes(ctx)
	if err != nil {
		return nil, fmt.Errorf("load crimes: %w", err)
	}
	activities, err := loader.ListJailActivities(ctx)
	if err != nil {
		return nil, fmt.Errorf("load jail activities: %w", err)
	}
	weapons, err := loader.ListWeapons(ctx)
	if err != nil {
		return nil, fmt.Errorf("load weapons: %w", err)
	}

	return New(ranks, crimes, activities, weapons), nil
}

// New 构建参照表,测试可直接调用
func New(ranks []*model.Rank, crimes []*model.Crime, activities []*model.JailActivity, weapons []*model.Weapon) *Tables {
	t := &Tables{
		ranks:        append([]*model.Rank(nil), ranks...),
		crimes:       append([]*model.Crime(nil), crimes...),
		activities:   append([]*model.JailActivity(nil), activities...),
		weapons:      append([]*model.Weapon(nil), weapons...),
		crimeByID:    make(map[int32]*model.Crime, len(crimes)),
		activityByID: make(map[int32]*model.JailActivity, len(activities)),
		weaponByID:   make(map[int32]*model.Weapon, len(weapons)),
	}

	sort.Slice(t.ranks, func(i, j int) bool {
		return t.ranks[i].RequiredExperience < t.ranks[j].RequiredExperience
	})
	sort.Slice(t.crimes, func(i, j int) bool {
		return t.crimes[i].Difficulty < t.crimes[j].Difficulty
	})
	sort.Slice(t.weapons, func(i, j int) bool {
		return t.weapons[i].Value < t.weapons[j].Value
	})

	for _, c := range t.crimes {
		t.crimeByID[c.ID] = c
	}
	for _, a := range t.activities {
		t.activityByID[a.ID] = a
	}
	for _, w := range t.weapons {
		t.weaponByID[w.ID] = w
	}

	return t
}

// Ranks 按所需经验升序返回全部军衔
func (t *Tables) Ranks() []*model.Rank { return t.ranks }

// Crimes 按难度升序返回全部犯罪项目
func (t *Tables) Crimes() []*model.Crime { return t.crimes }

// JailActivities 返回全部监狱活动
func (t *Tables) JailActivities() []*model.JailActivity { return t.activities }

// Weapons 按售价升序返回全部武器
func (t *Tables) Weapons() []*model.Weapon { return t.weapons }

// Crime 按 ID 查找犯罪项目,不存在时返回 nil
func (t *Tables) Crime(id int32) *model.Crime { return t.crimeByID[id] }

// JailActivity 按 ID 查找监狱活动,不存在时返回 nil
func (t *Tables) JailActivity(id int32) *model.JailActivity { return t.activityByID[id] }

// Weapon 按 ID 查找武器,不存在时返回 nil
func (t *Tables) Weapon(id int32) *model.Weapon { return t.weaponByID[id] }

// CurrentRank 返回经验值达到门槛的最高军衔,未达到任何门槛时返回 nil
func (t *Tables) CurrentRank(exp int64) *model.Rank {
	// ranks 已按门槛升序,找第一个超过 exp 的位置
	i := sort.Search(len(t.ranks), func(i int) bool {
		return t.ranks[i].RequiredExperience > exp
	})
	if i == 0 {
		return nil
	}
	return t.ranks[i-1]
}

// NextRank 返回门槛高于经验值的最低军衔,已封顶时返回 nil
func (t *Tables) NextRank(exp int64) *model.Rank {
	i := sort.Search(len(t.ranks), func(i int) bool {
		return t.ranks[i].RequiredExperience > exp
	})
	if i == len(t.ranks) {
		return nil
	}
	return t.ranks[i]
}

// RankProgress 当前军衔到下一军衔之间的进度,[0,1],封顶时为 1
func (t *Tables) RankProgress(exp int64) float64 {
	next := t.NextRank(exp)
	if next == nil {
		return 1
	}

	var base int64
	if cur := t.CurrentRank(exp); cur != nil {
		base = cur.RequiredExperience
	}

	span := next.RequiredExperience - base
	if span <= 0 {
		return 1
	}

	progress := float64(exp-base) / float64(span)
	if progress < 0 {
		return 0
	}
	if progress > 1 {
		return 1
	}
	return progress
}
