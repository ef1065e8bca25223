package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// GameMetrics 游戏服务指标
type GameMetrics struct {
	// 业务指标
	CrimeTotal    *prometheus.CounterVec // 犯罪总数（按结果）
	BreakoutTotal *prometheus.CounterVec // 越狱尝试总数（按结果）
	JailedTotal   prometheus.Counter     // 入狱总数
	WeaponBuys    *prometheus.CounterVec // 武器购买总数（按结果）
	SignupsTotal  prometheus.Counter     // 注册总数
	LoginsTotal   *prometheus.CounterVec // 登录总数（按结果）
	WatchSessions prometheus.Gauge       // 当前 WebSocket 观察连接数

	// 数据库指标
	DBQueryTotal    *prometheus.CounterVec   // 数据库查询总数（按操作、结果）
	DBQueryDuration *prometheus.HistogramVec // 数据库查询延迟

	// 缓存指标
	CacheHitTotal  *prometheus.CounterVec // 缓存命中（按缓存类型）
	CacheMissTotal *prometheus.CounterVec // 缓存未命中（按缓存类型）
}

// New 创建游戏指标
func New(namespace string) *GameMetrics {
	if namespace == "" {
		namespace = "omerta"
	}

	return &GameMetrics{
		CrimeTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "crimes_total",
				Help:      "犯罪结算总数",
			},
			[]string{"result"}, // result: success/failed
		),
		BreakoutTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "breakouts_total",
				Help:      "越狱尝试总数",
			},
			[]string{"result"},
		),
		JailedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "jailed_total",
				Help:      "入狱总数",
			},
		),
		WeaponBuys: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "weapon_buys_total",
				Help:      "武器购买总数",
			},
			[]string{"result"}, // result: success/insufficient_funds
		),
		SignupsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "signups_total",
				Help:      "注册总数",
			},
		),
		LoginsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "logins_total",
				Help:      "登录总数",
			},
			[]string{"result"},
		),
		WatchSessions: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "watch_sessions",
				Help:      "当前 WebSocket 观察连接数",
			},
		),

		DBQueryTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "db_queries_total",
				Help:      "数据库查询总数",
			},
			[]string{"operation", "result"}, // operation: select/insert/update/delete
		),
		DBQueryDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "db_query_duration_seconds",
				Help:      "数据库查询延迟（秒）",
				Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
			},
			[]string{"operation"},
		),

		CacheHitTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cache_hits_total",
				Help:      "缓存命中总数",
			},
			[]string{"cache_type"},
		),
		CacheMissTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cache_misses_total",
				Help:      "缓存未命中总数",
			},
			[]string{"cache_type"},
		),
	}
}

// Register 注册指标到 Prometheus Registry
func (m *GameMetrics) Register(registerer prometheus.Registerer) error {
	collectors := []prometheus.Collector{
		m.CrimeTotal,
		m.BreakoutTotal,
		m.JailedTotal,
		m.WeaponBuys,
		m.SignupsTotal,
		m.LoginsTotal,
		m.WatchSessions,
		m.DBQueryTotal,
		m.DBQueryDuration,
		m.CacheHitTotal,
		m.CacheMissTotal,
	}

	for _, c := range collectors {
		if err := registerer.Register(c); err != nil {
			return err
		}
	}

	return nil
}

// RecordCrime 记录犯罪结算
func (m *GameMetrics) RecordCrime(success bool) {
	m.CrimeTotal.WithLabelValues(result(success)).Inc()
}

// RecordBreakout 记录越狱尝试
func (m *GameMetrics) RecordBreakout(success bool) {
	m.BreakoutTotal.WithLabelValues(result(success)).Inc()
}

// RecordJailed 记录入狱
func (m *GameMetrics) RecordJailed() {
	m.JailedTotal.Inc()
}

// RecordWeaponBuy 记录武器购买
func (m *GameMetrics) RecordWeaponBuy(success bool) {
	if success {
		m.WeaponBuys.WithLabelValues("success").Inc()
	} else {
		m.WeaponBuys.WithLabelValues("insufficient_funds").Inc()
	}
}

// RecordSignup 记录注册
func (m *GameMetrics) RecordSignup() {
	m.SignupsTotal.Inc()
}

// RecordLogin 记录登录
func (m *GameMetrics) RecordLogin(success bool) {
	m.LoginsTotal.WithLabelValues(result(success)).Inc()
}

// RecordDBQuery 记录数据库查询
func (m *GameMetrics) RecordDBQuery(operation string, success bool, duration float64) {
	m.DBQueryTotal.WithLabelValues(operation, result(success)).Inc()
	m.DBQueryDuration.WithLabelValues(operation).Observe(duration)
}

// RecordCacheHit 记录缓存命中
func (m *GameMetrics) RecordCacheHit(cacheType string) {
	m.CacheHitTotal.WithLabelValues(cacheType).Inc()
}

// RecordCacheMiss 记录缓存未命中
func (m *GameMetrics) RecordCacheMiss(cacheType string) {
	m.CacheMissTotal.WithLabelValues(cacheType).Inc()
}

func result(success bool) string {
	if success {
		return "success"
	}
	return "failed"
}
