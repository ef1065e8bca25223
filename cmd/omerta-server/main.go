package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"

	"github.com/omertagame/omerta/internal/dao"
	"github.com/omertagame/omerta/internal/gamedata"
	"github.com/omertagame/omerta/internal/handler"
	"github.com/omertagame/omerta/internal/metrics"
	"github.com/omertagame/omerta/internal/repository"
	"github.com/omertagame/omerta/internal/service"
	"github.com/omertagame/omerta/internal/watch"
	"github.com/omertagame/omerta/pkg/config"
	"github.com/omertagame/omerta/pkg/database/postgres"
	"github.com/omertagame/omerta/pkg/database/redis"
	"github.com/omertagame/omerta/pkg/logger"
	"github.com/omertagame/omerta/pkg/security"
	"github.com/omertagame/omerta/pkg/web"
	"github.com/omertagame/omerta/pkg/web/middleware"
)

// Config 服务配置
type Config struct {
	Log logger.Config `mapstructure:"log"`

	// Web Server 配置
	Web web.Config `mapstructure:"web"`

	// 数据库配置
	Postgres postgres.Config `mapstructure:"postgres"`
	Redis    redis.Config    `mapstructure:"redis"`

	// JWT 配置
	JWT security.JWTConfig `mapstructure:"jwt"`

	// 指标命名空间
	MetricsNamespace string `mapstructure:"metrics_namespace"`

	// 过期刑期清理周期(cron 表达式,默认每分钟)
	JailSweepSchedule string `mapstructure:"jail_sweep_schedule"`
}

func main() {
	var cfg Config

	// 1. 加载配置
	if err := config.Load(&cfg); err != nil {
		panic(err)
	}

	// 2. 初始化 Logger
	l, err := logger.New(&cfg.Log)
	if err != nil {
		panic(err)
	}
	defer func() { _ = l.Sync() }()

	// 3. 连接 PostgreSQL / Redis
	db, err := postgres.New(&cfg.Postgres)
	if err != nil {
		l.Error("failed to connect postgres", "error", err)
		return
	}
	defer db.Close()

	rdb, err := redis.New(&cfg.Redis)
	if err != nil {
		l.Error("failed to connect redis", "error", err)
		return
	}
	defer func() { _ = rdb.Close() }()

	// 4. 创建指标收集器
	gameMetrics := metrics.New(cfg.MetricsNamespace)
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	if err := gameMetrics.Register(registry); err != nil {
		l.Error("failed to register metrics", "error", err)
		return
	}

	// 5. 创建 DAO
	userDAO := dao.NewUserDAO(db, l, gameMetrics)
	profileDAO := dao.NewProfileDAO(db, l, gameMetrics)
	gameDataDAO := dao.NewGameDataDAO(db, l, gameMetrics)
	statsDAO := dao.NewStatsDAO(db, l, gameMetrics)
	cacheDAO := dao.NewCacheDAO(rdb, l, gameMetrics)

	// 6. 加载静态参照表
	tables, err := gamedata.Load(context.Background(), gameDataDAO)
	if err != nil {
		l.Error("failed to load game data", "error", err)
		return
	}

	// 7. 创建仓储和服务
	playerRepo := repository.NewPlayerRepository(profileDAO, statsDAO, cacheDAO, l)

	jwtManager, err := security.NewJWTManager(&cfg.JWT)
	if err != nil {
		l.Error("failed to create jwt manager", "error", err)
		return
	}

	rankService := service.NewRankService(tables, l)
	crimeService := service.NewCrimeService(playerRepo, tables, rankService, nil, l, gameMetrics)
	jailService := service.NewJailService(playerRepo, tables, nil, l, gameMetrics)
	shopService := service.NewShopService(playerRepo, tables, l, gameMetrics)
	profileService := service.NewProfileService(playerRepo, rankService, l)
	authService := service.NewAuthService(db, userDAO, profileDAO, cacheDAO, jwtManager, l, gameMetrics)

	watcher := watch.NewWatcher(rdb, l)

	// 8. 创建 Web Server 并挂载认证
	webServer := web.NewServer(&cfg.Web, l)
	webServer.Router().Use(middleware.Auth(&middleware.AuthConfig{
		JWTManager: jwtManager,
		SkipPaths: []string{
			"/api/v1/auth/signup",
			"/api/v1/auth/signin",
			"/health",
			"/metrics",
		},
	}))

	// 9. 注册 Handler
	handler.NewAuthHandler(authService, l).Register(webServer.Router())
	handler.NewProfileHandler(profileService, l).Register(webServer.Router())
	handler.NewCrimeHandler(crimeService, tables, l).Register(webServer.Router())
	handler.NewJailHandler(jailService, tables, l).Register(webServer.Router())
	handler.NewShopHandler(shopService, tables, l).Register(webServer.Router())
	handler.NewWatchHandler(watcher, l, gameMetrics).Register(webServer.Router())

	// 10. 健康检查与指标端点
	webServer.Router().GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	webServer.Router().GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	// 11. 定时清理过期刑期
	schedule := cfg.JailSweepSchedule
	if schedule == "" {
		schedule = "* * * * *"
	}
	sweeper := cron.New()
	if _, err := sweeper.AddFunc(schedule, func() {
		if _, err := jailService.SweepStale(context.Background()); err != nil {
			l.Error("jail sweep failed", "error", err)
		}
	}); err != nil {
		l.Error("failed to schedule jail sweep", "error", err)
		return
	}

	// 12. 运行服务
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		l.Info("received shutdown signal")
		cancel()
	}()

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		l.Info("starting omerta server", "port", cfg.Web.Port)
		return webServer.Run(gCtx)
	})

	g.Go(func() error {
		sweeper.Start()
		<-gCtx.Done()
		sweepCtx := sweeper.Stop()
		<-sweepCtx.Done()
		return nil
	})

	if err := g.Wait(); err != nil {
		l.Error("server exited with error", "error", err)
	}

	l.Info("omerta server stopped")
}
