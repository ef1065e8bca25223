package model

import (
	"database/sql"
	"time"
)

// 玩家初始属性
const (
	StartingCash          = 500
	StartingHealth        = 100
	DefaultBreakoutChance = 10
	MinBreakoutChance     = 5
	MaxBreakoutChance     = 100
)

// Profile 玩家档案模型,对应 profiles 表
// ID 与 users.id 一致
type Profile struct {
	// 基础信息
	ID        string `db:"id"` // uuid
	Username  string `db:"username"`
	AvatarURL string `db:"avatar_url"`

	// 成长与经济
	Experience int64  `db:"experience"`
	Cash       int64  `db:"cash"`
	Rank       string `db:"rank"`
	Health     int32  `db:"health"`

	// 装备
	EquippedWeapon string `db:"equipped_weapon"`
	EquippedArmor  string `db:"equipped_armor"`

	// 监禁状态
	// JailTime 非空表示在押,存刑满时刻;已过期的值视为待清理
	JailTime       sql.NullTime `db:"jail_time"`
	JailSentence   int32        `db:"jail_sentence"` // 秒
	BreakoutChance int32        `db:"breakout_chance"`

	// 监狱活动冷却锚点,所有活动共用
	LastActivityTime sql.NullTime `db:"last_activity_time"`

	// 乐观锁版本号
	Version int64 `db:"version"`

	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// NewProfile 创建新玩家档案
func NewProfile(id, username string) *Profile {
	now := time.Now()
	return &Profile{
		ID:             id,
		Username:       username,
		Experience:     0,
		Cash:           StartingCash,
		Health:         StartingHealth,
		BreakoutChance: DefaultBreakoutChance,
		Version:        1,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// JailState 监禁状态
type JailState int

const (
	JailStateFree JailState = iota
	JailStateIncarcerated
	JailStateStale // 刑期已过但尚未清理
)

// JailStateAt 计算给定时刻的监禁状态
func (p *Profile) JailStateAt(now time.Time) JailState {
	if !p.JailTime.Valid {
		return JailStateFree
	}
	if !p.JailTime.Time.After(now) {
		return JailStateStale
	}
	return JailStateIncarcerated
}

// JailRemainingAt 计算给定时刻的剩余刑期,未在押时为 0
func (p *Profile) JailRemainingAt(now time.Time) time.Duration {
	if p.JailStateAt(now) != JailStateIncarcerated {
		return 0
	}
	return p.JailTime.Time.Sub(now)
}

// ReleaseJail 刑满释放,只清除刑期
// 越狱概率保持衰减后的值,下次入狱时才重置
func (p *Profile) ReleaseJail() {
	p.JailTime = sql.NullTime{}
	p.JailSentence = 0
}

// ClearJail 越狱成功时清除监禁状态并重置越狱概率
func (p *Profile) ClearJail() {
	p.ReleaseJail()
	p.BreakoutChance = DefaultBreakoutChance
}
