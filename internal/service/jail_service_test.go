package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/omertagame/omerta/internal/model"
)

func newJailService(repo *fakeRepo, rng Rand) *JailService {
	return NewJailService(repo, testTables(), rng, testLogger, testMetrics)
}

func jailedProfile(id string, remaining time.Duration) *model.Profile {
	p := testProfile(id)
	p.JailTime = sql.NullTime{Time: time.Now().Add(remaining), Valid: true}
	p.JailSentence = jailSentenceSeconds
	return p
}

func TestJailStatus_Free(t *testing.T) {
	s := newJailService(newFakeRepo(testProfile("p1")), &seqRand{})

	status, err := s.Status(context.Background(), "p1")
	if err != nil {
		t.Fatalf("Status() error = %v", err)
	}
	if status.Incarcerated {
		t.Error("expected free")
	}
	if status.RemainingSeconds != 0 {
		t.Errorf("remaining = %d, want 0", status.RemainingSeconds)
	}
}

func TestJailStatus_Incarcerated(t *testing.T) {
	s := newJailService(newFakeRepo(jailedProfile("p1", 10*time.Minute)), &seqRand{})

	status, err := s.Status(context.Background(), "p1")
	if err != nil {
		t.Fatalf("Status() error = %v", err)
	}
	if !status.Incarcerated {
		t.Fatal("expected incarcerated")
	}
	if status.RemainingSeconds < 590 || status.RemainingSeconds > 600 {
		t.Errorf("remaining = %d, want ~600", status.RemainingSeconds)
	}
	if status.SentenceSeconds != jailSentenceSeconds {
		t.Errorf("sentence = %d, want %d", status.SentenceSeconds, jailSentenceSeconds)
	}
}

func TestJailStatus_StaleClearedLazily(t *testing.T) {
	p := jailedProfile("p1", -time.Minute)
	p.BreakoutChance = 6 // 越狱失败衰减后的值
	repo := newFakeRepo(p)
	s := newJailService(repo, &seqRand{})

	status, err := s.Status(context.Background(), "p1")
	if err != nil {
		t.Fatalf("Status() error = %v", err)
	}
	if status.Incarcerated {
		t.Error("stale sentence must read as free")
	}

	saved := repo.profiles["p1"]
	if saved.JailTime.Valid {
		t.Error("stale jail_time must be cleared in storage")
	}
	// 刑满释放不重置概率,下次入狱才重置
	if saved.BreakoutChance != 6 {
		t.Errorf("breakout_chance = %d, want decayed value kept", saved.BreakoutChance)
	}
	if repo.saveCount != 1 {
		t.Errorf("save count = %d, want 1", repo.saveCount)
	}
}

func TestBreakout_RequiresIncarceration(t *testing.T) {
	s := newJailService(newFakeRepo(testProfile("p1")), &seqRand{})

	_, err := s.AttemptBreakout(context.Background(), "p1")
	if !errors.Is(err, ErrInvalidState) {
		t.Errorf("error = %v, want ErrInvalidState", err)
	}
}

func TestBreakout_StaleClearsThenRejects(t *testing.T) {
	repo := newFakeRepo(jailedProfile("p1", -time.Second))
	s := newJailService(repo, &seqRand{})

	_, err := s.AttemptBreakout(context.Background(), "p1")
	if !errors.Is(err, ErrInvalidState) {
		t.Fatalf("error = %v, want ErrInvalidState", err)
	}
	if repo.profiles["p1"].JailTime.Valid {
		t.Error("stale jail_time must be cleared")
	}
}

func TestBreakout_Success(t *testing.T) {
	repo := newFakeRepo(jailedProfile("p1", 10*time.Minute))
	// 抽样 5 < 概率 10
	s := newJailService(repo, &seqRand{ints: []int{5}})

	result, err := s.AttemptBreakout(context.Background(), "p1")
	if err != nil {
		t.Fatalf("AttemptBreakout() error = %v", err)
	}
	if !result.Success {
		t.Fatal("expected successful breakout")
	}

	saved := repo.profiles["p1"]
	if saved.JailTime.Valid {
		t.Error("jail_time must be cleared")
	}
	if saved.BreakoutChance != model.DefaultBreakoutChance {
		t.Errorf("breakout_chance = %d, want reset to %d", saved.BreakoutChance, model.DefaultBreakoutChance)
	}
}

func TestBreakout_FailureCompoundsSentence(t *testing.T) {
	p := jailedProfile("p1", 100*time.Second)
	repo := newFakeRepo(p)
	// 抽样 50 ≥ 概率 10 → 失败
	s := newJailService(repo, &seqRand{ints: []int{50}})

	result, err := s.AttemptBreakout(context.Background(), "p1")
	if err != nil {
		t.Fatalf("AttemptBreakout() error = %v", err)
	}
	if result.Success {
		t.Fatal("expected failed breakout")
	}

	saved := repo.profiles["p1"]
	// 加刑叠加在原刑满时刻上:剩余约 100 + 1800 秒
	remaining := time.Until(saved.JailTime.Time)
	if remaining < 1890*time.Second || remaining > 1900*time.Second {
		t.Errorf("remaining = %v, want ~1900s", remaining)
	}
	if saved.BreakoutChance != model.DefaultBreakoutChance-2 {
		t.Errorf("breakout_chance = %d, want %d", saved.BreakoutChance, model.DefaultBreakoutChance-2)
	}
	if saved.JailSentence < 1890 || saved.JailSentence > 1900 {
		t.Errorf("jail_sentence = %d, want ~1900", saved.JailSentence)
	}
}

func TestBreakout_ChanceFloor(t *testing.T) {
	p := jailedProfile("p1", time.Hour)
	p.BreakoutChance = 6
	repo := newFakeRepo(p)
	s := newJailService(repo, &seqRand{ints: []int{99}})

	if _, err := s.AttemptBreakout(context.Background(), "p1"); err != nil {
		t.Fatalf("AttemptBreakout() error = %v", err)
	}

	// 6 - 2 = 4,抬到下限 5
	if got := repo.profiles["p1"].BreakoutChance; got != model.MinBreakoutChance {
		t.Errorf("breakout_chance = %d, want floor %d", got, model.MinBreakoutChance)
	}
}

func TestActivity_IncreasesChanceAndSetsAnchor(t *testing.T) {
	repo := newFakeRepo(jailedProfile("p1", time.Hour))
	s := newJailService(repo, &seqRand{})

	result, err := s.PerformActivity(context.Background(), "p1", 1)
	if err != nil {
		t.Fatalf("PerformActivity() error = %v", err)
	}
	if !result.Success {
		t.Fatalf("expected success, got %q", result.Message)
	}
	if result.BreakoutChance != model.DefaultBreakoutChance+10 {
		t.Errorf("breakout_chance = %d, want %d", result.BreakoutChance, model.DefaultBreakoutChance+10)
	}
	if !repo.profiles["p1"].LastActivityTime.Valid {
		t.Error("activity anchor must be set")
	}
}

func TestActivity_ChanceCap(t *testing.T) {
	p := jailedProfile("p1", time.Hour)
	p.BreakoutChance = 90
	repo := newFakeRepo(p)
	s := newJailService(repo, &seqRand{})

	result, err := s.PerformActivity(context.Background(), "p1", 2) // +95
	if err != nil {
		t.Fatalf("PerformActivity() error = %v", err)
	}
	if result.BreakoutChance != model.MaxBreakoutChance {
		t.Errorf("breakout_chance = %d, want cap %d", result.BreakoutChance, model.MaxBreakoutChance)
	}
}

func TestActivity_CooldownSharedAnchor(t *testing.T) {
	p := jailedProfile("p1", time.Hour)
	// 30 秒前做过活动,活动 1 冷却 300 秒 → 剩约 270 秒 → 5 分钟
	p.LastActivityTime = sql.NullTime{Time: time.Now().Add(-30 * time.Second), Valid: true}
	repo := newFakeRepo(p)
	s := newJailService(repo, &seqRand{})

	result, err := s.PerformActivity(context.Background(), "p1", 1)
	if err != nil {
		t.Fatalf("PerformActivity() error = %v", err)
	}
	if result.Success {
		t.Fatal("expected cooldown rejection")
	}
	if !strings.Contains(result.Message, "5 minutes") {
		t.Errorf("message = %q, want ceil(270s/60) = 5 minutes", result.Message)
	}
	if repo.saveCount != 0 {
		t.Error("cooldown rejection must not write")
	}
	if repo.profiles["p1"].BreakoutChance != model.DefaultBreakoutChance {
		t.Error("cooldown rejection must not change chance")
	}
}

func TestActivity_RequiresIncarceration(t *testing.T) {
	s := newJailService(newFakeRepo(testProfile("p1")), &seqRand{})

	_, err := s.PerformActivity(context.Background(), "p1", 1)
	if !errors.Is(err, ErrInvalidState) {
		t.Errorf("error = %v, want ErrInvalidState", err)
	}
}

func TestActivity_UnknownActivity(t *testing.T) {
	s := newJailService(newFakeRepo(jailedProfile("p1", time.Hour)), &seqRand{})

	_, err := s.PerformActivity(context.Background(), "p1", 999)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestSweepStale(t *testing.T) {
	repo := newFakeRepo(
		jailedProfile("p1", -time.Minute),
		jailedProfile("p2", time.Hour),
		testProfile("p3"),
	)
	s := newJailService(repo, &seqRand{})

	cleared, err := s.SweepStale(context.Background())
	if err != nil {
		t.Fatalf("SweepStale() error = %v", err)
	}
	if cleared != 1 {
		t.Errorf("cleared = %d, want 1", cleared)
	}
	if repo.profiles["p1"].JailTime.Valid {
		t.Error("expired sentence must be cleared")
	}
	if !repo.profiles["p2"].JailTime.Valid {
		t.Error("active sentence must be kept")
	}
}
