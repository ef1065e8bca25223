package service

import (
	"math/rand"
	"sync"
	"time"
)

// Rand 随机源接口,测试中注入固定序列实现可复现结算
type Rand interface {
	// Float64 返回 [0.0, 1.0) 的随机数
	Float64() float64
	// Intn 返回 [0, n) 的随机整数
	Intn(n int) int
}

// lockedRand 并发安全的 math/rand 包装
type lockedRand struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRand 创建默认随机源
func NewRand() Rand {
	return &lockedRand{
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (r *lockedRand) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Float64()
}

func (r *lockedRand) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Intn(n)
}
