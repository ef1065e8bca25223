package model

import (
	"database/sql"
	"testing"
	"time"
)

func TestProfile_JailStateAt(t *testing.T) {
	now := time.Now()

	free := &Profile{}
	if got := free.JailStateAt(now); got != JailStateFree {
		t.Errorf("empty jail_time = %v, want free", got)
	}

	active := &Profile{JailTime: sql.NullTime{Time: now.Add(time.Minute), Valid: true}}
	if got := active.JailStateAt(now); got != JailStateIncarcerated {
		t.Errorf("future jail_time = %v, want incarcerated", got)
	}

	stale := &Profile{JailTime: sql.NullTime{Time: now.Add(-time.Second), Valid: true}}
	if got := stale.JailStateAt(now); got != JailStateStale {
		t.Errorf("past jail_time = %v, want stale", got)
	}

	// 恰好到点也算过期
	exact := &Profile{JailTime: sql.NullTime{Time: now, Valid: true}}
	if got := exact.JailStateAt(now); got != JailStateStale {
		t.Errorf("exact jail_time = %v, want stale", got)
	}
}

func TestProfile_JailRemainingAt(t *testing.T) {
	now := time.Now()

	p := &Profile{JailTime: sql.NullTime{Time: now.Add(90 * time.Second), Valid: true}}
	if got := p.JailRemainingAt(now); got != 90*time.Second {
		t.Errorf("remaining = %v, want 90s", got)
	}

	stale := &Profile{JailTime: sql.NullTime{Time: now.Add(-time.Minute), Valid: true}}
	if got := stale.JailRemainingAt(now); got != 0 {
		t.Errorf("stale remaining = %v, want 0", got)
	}
}

func TestProfile_ReleaseJail(t *testing.T) {
	p := &Profile{
		JailTime:         sql.NullTime{Time: time.Now(), Valid: true},
		JailSentence:     1800,
		BreakoutChance:   5,
		LastActivityTime: sql.NullTime{Time: time.Now(), Valid: true},
	}

	p.ReleaseJail()

	if p.JailTime.Valid {
		t.Error("jail_time must be cleared")
	}
	if p.JailSentence != 0 {
		t.Errorf("jail_sentence = %d, want 0", p.JailSentence)
	}
	// 刑满释放保留衰减后的概率和活动锚点
	if p.BreakoutChance != 5 {
		t.Errorf("breakout_chance = %d, want 5 kept", p.BreakoutChance)
	}
	if !p.LastActivityTime.Valid {
		t.Error("activity anchor must be kept")
	}
}

func TestProfile_ClearJail(t *testing.T) {
	p := &Profile{
		JailTime:       sql.NullTime{Time: time.Now(), Valid: true},
		JailSentence:   1800,
		BreakoutChance: 5,
	}

	p.ClearJail()

	if p.JailTime.Valid {
		t.Error("jail_time must be cleared")
	}
	if p.JailSentence != 0 {
		t.Errorf("jail_sentence = %d, want 0", p.JailSentence)
	}
	if p.BreakoutChance != DefaultBreakoutChance {
		t.Errorf("breakout_chance = %d, want %d", p.BreakoutChance, DefaultBreakoutChance)
	}
}

func TestNewProfile(t *testing.T) {
	p := NewProfile("id-1", "tony")

	if p.Cash != StartingCash {
		t.Errorf("cash = %d, want %d", p.Cash, StartingCash)
	}
	if p.Experience != 0 {
		t.Errorf("experience = %d, want 0", p.Experience)
	}
	if p.BreakoutChance != DefaultBreakoutChance {
		t.Errorf("breakout_chance = %d, want %d", p.BreakoutChance, DefaultBreakoutChance)
	}
	if p.Version != 1 {
		t.Errorf("version = %d, want 1", p.Version)
	}
}
