package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/omertagame/omerta/internal/dao"
	"github.com/omertagame/omerta/internal/model"
)

func newCrimeService(repo *fakeRepo, rng Rand) *CrimeService {
	tables := testTables()
	ranks := NewRankService(tables, testLogger)
	return NewCrimeService(repo, tables, ranks, rng, testLogger, testMetrics)
}

func TestCommitCrime_Success(t *testing.T) {
	repo := newFakeRepo(testProfile("p1"))
	// 成功判定(0.0 < 75/100),现金抽样取区间中点
	rng := &seqRand{floats: []float64{0.0}, ints: []int{20}}
	s := newCrimeService(repo, rng)

	result, err := s.CommitCrime(context.Background(), "p1", 1)
	if err != nil {
		t.Fatalf("CommitCrime() error = %v", err)
	}

	if !result.Success {
		t.Fatal("expected success")
	}
	if result.ExperienceGained != 5 {
		t.Errorf("experience gained = %d, want 5", result.ExperienceGained)
	}
	// min 10 + 抽样 20 = 30
	if result.CashGained != 30 {
		t.Errorf("cash gained = %d, want 30", result.CashGained)
	}
	if result.SentToJail {
		t.Error("successful crime must not jail")
	}

	saved := repo.profiles["p1"]
	if saved.Experience != 5 {
		t.Errorf("saved experience = %d, want 5", saved.Experience)
	}
	if saved.Cash != model.StartingCash+30 {
		t.Errorf("saved cash = %d, want %d", saved.Cash, model.StartingCash+30)
	}

	stats := repo.stats["p1"]
	if stats == nil || stats.Total != 1 || stats.Successful != 1 || stats.TotalProfit != 30 {
		t.Errorf("stats = %+v, want 1 successful with profit 30", stats)
	}
}

func TestCommitCrime_Promotion(t *testing.T) {
	repo := newFakeRepo(testProfile("p1"))
	// 经验 95 的犯罪把 0 推到接近阈值以下,再作一次跨过 100
	rng := &seqRand{floats: []float64{0.0, 0.0}}
	s := newCrimeService(repo, rng)

	first, err := s.CommitCrime(context.Background(), "p1", 3)
	if err != nil {
		t.Fatalf("first crime error = %v", err)
	}
	if first.PromotedTo != "" {
		t.Errorf("first crime promoted to %q, want none", first.PromotedTo)
	}

	second, err := s.CommitCrime(context.Background(), "p1", 3)
	if err != nil {
		t.Fatalf("second crime error = %v", err)
	}
	if second.PromotedTo != "Soldier" {
		t.Errorf("promoted to %q, want Soldier", second.PromotedTo)
	}
	if repo.profiles["p1"].Rank != "Soldier" {
		t.Errorf("saved rank = %q, want Soldier", repo.profiles["p1"].Rank)
	}
}

func TestCommitCrime_FailureWithoutJail(t *testing.T) {
	repo := newFakeRepo(testProfile("p1"))
	// 失败判定(0.99 ≥ rate/100),入狱判定躲过(0.99 ≥ 0.1)
	rng := &seqRand{floats: []float64{0.99, 0.99}}
	s := newCrimeService(repo, rng)

	result, err := s.CommitCrime(context.Background(), "p1", 1)
	if err != nil {
		t.Fatalf("CommitCrime() error = %v", err)
	}

	if result.Success {
		t.Fatal("expected failure")
	}
	if result.SentToJail {
		t.Fatal("expected no jail")
	}

	saved := repo.profiles["p1"]
	if saved.Experience != 0 || saved.Cash != model.StartingCash {
		t.Errorf("failed crime must not change experience/cash, got exp=%d cash=%d", saved.Experience, saved.Cash)
	}
	if stats := repo.stats["p1"]; stats == nil || stats.Failed != 1 {
		t.Errorf("stats = %+v, want 1 failed", stats)
	}
}

func TestCommitCrime_FailureWithJail(t *testing.T) {
	repo := newFakeRepo(testProfile("p1"))
	// 失败判定,入狱判定命中(0.05 < 0.1)
	rng := &seqRand{floats: []float64{0.99, 0.05}}
	s := newCrimeService(repo, rng)

	before := time.Now()
	result, err := s.CommitCrime(context.Background(), "p1", 1)
	if err != nil {
		t.Fatalf("CommitCrime() error = %v", err)
	}

	if !result.SentToJail {
		t.Fatal("expected jail")
	}

	saved := repo.profiles["p1"]
	if !saved.JailTime.Valid {
		t.Fatal("jail_time must be set")
	}
	remaining := saved.JailTime.Time.Sub(before)
	if remaining < 29*time.Minute || remaining > 31*time.Minute {
		t.Errorf("jail remaining = %v, want ~30m", remaining)
	}
	if saved.JailSentence != 1800 {
		t.Errorf("jail_sentence = %d, want 1800", saved.JailSentence)
	}
	if saved.BreakoutChance != model.DefaultBreakoutChance {
		t.Errorf("breakout_chance = %d, want %d", saved.BreakoutChance, model.DefaultBreakoutChance)
	}
}

func TestCommitCrime_UnknownCrime(t *testing.T) {
	s := newCrimeService(newFakeRepo(testProfile("p1")), &seqRand{})

	_, err := s.CommitCrime(context.Background(), "p1", 999)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestCommitCrime_WhileIncarcerated(t *testing.T) {
	p := testProfile("p1")
	p.JailTime.Time = time.Now().Add(10 * time.Minute)
	p.JailTime.Valid = true
	s := newCrimeService(newFakeRepo(p), &seqRand{})

	_, err := s.CommitCrime(context.Background(), "p1", 1)
	if !errors.Is(err, ErrInvalidState) {
		t.Errorf("error = %v, want ErrInvalidState", err)
	}
}

func TestCommitCrime_PersistFailureLeavesStateUnchanged(t *testing.T) {
	repo := newFakeRepo(testProfile("p1"))
	repo.saveErr = dao.ErrVersionConflict
	s := newCrimeService(repo, &seqRand{floats: []float64{0.0}})

	_, err := s.CommitCrime(context.Background(), "p1", 1)
	if !errors.Is(err, dao.ErrVersionConflict) {
		t.Fatalf("error = %v, want ErrVersionConflict", err)
	}

	saved := repo.profiles["p1"]
	if saved.Experience != 0 || saved.Cash != model.StartingCash {
		t.Errorf("aborted crime must not change state, got exp=%d cash=%d", saved.Experience, saved.Cash)
	}
	if stats := repo.stats["p1"]; stats != nil {
		t.Errorf("aborted crime must not record stats, got %+v", stats)
	}
}

func TestCommitCrime_StatsFailureDoesNotAbort(t *testing.T) {
	repo := newFakeRepo(testProfile("p1"))
	repo.statsErr = errors.New("stats backend down")
	s := newCrimeService(repo, &seqRand{floats: []float64{0.0}})

	result, err := s.CommitCrime(context.Background(), "p1", 1)
	if err != nil {
		t.Fatalf("CommitCrime() error = %v", err)
	}
	if !result.Success {
		t.Error("expected success despite stats failure")
	}
	if repo.profiles["p1"].Experience != 5 {
		t.Error("profile write must still land")
	}
}
