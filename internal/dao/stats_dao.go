package dao

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/omertagame/omerta/internal/metrics"
	"github.com/omertagame/omerta/internal/model"
	"github.com/omertagame/omerta/pkg/database/postgres"
	"github.com/omertagame/omerta/pkg/logger"
)

// StatsDAO 犯罪统计数据访问对象
type StatsDAO struct {
	db      *postgres.Client
	logger  logger.Logger
	metrics *metrics.GameMetrics
}

// NewStatsDAO 创建犯罪统计 DAO
func NewStatsDAO(db *postgres.Client, l logger.Logger, m *metrics.GameMetrics) *StatsDAO {
	return &StatsDAO{
		db:      db,
		logger:  l.Named("dao.stats"),
		metrics: m,
	}
}

// Get 获取玩家的犯罪统计,没有记录时返回零值统计
func (d *StatsDAO) Get(ctx context.Context, userID string) (*model.CrimeStats, error) {
	start := time.Now()
	defer func() {
		d.metrics.RecordDBQuery("select", true, time.Since(start).Seconds())
	}()

	query, args, err := squirrel.
		Select("user_id", "total", "successful", "failed", "total_profit").
		From("crime_stats").
		Where(squirrel.Eq{"user_id": userID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	var s model.CrimeStats
	if err := d.db.QueryRow(ctx, query, args...).Scan(
		&s.UserID, &s.Total, &s.Successful, &s.Failed, &s.TotalProfit,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &model.CrimeStats{UserID: userID}, nil
		}
		d.logger.Error("failed to get crime stats",
			"user_id", userID,
			"error", err,
		)
		return nil, fmt.Errorf("failed to get crime stats: %w", err)
	}

	return &s, nil
}

// Record 记录一次犯罪结算,profit 仅在成功时非零
func (d *StatsDAO) Record(ctx context.Context, userID string, success bool, profit int64) error {
	start := time.Now()
	defer func() {
		d.metrics.RecordDBQuery("upsert", true, time.Since(start).Seconds())
	}()

	successInc := 0
	failedInc := 0
	if success {
		successInc = 1
	} else {
		failedInc = 1
		profit = 0
	}

	query, args, err := squirrel.
		Insert("crime_stats").
		Columns("user_id", "total", "successful", "failed", "total_profit").
		Values(userID, 1, successInc, failedInc, profit).
		Suffix(`ON CONFLICT (user_id) DO UPDATE SET
			total = crime_stats.total + 1,
			successful = crime_stats.successful + EXCLUDED.successful,
			failed = crime_stats.failed + EXCLUDED.failed,
			total_profit = crime_stats.total_profit + EXCLUDED.total_profit`).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	if _, err := d.db.Exec(ctx, query, args...); err != nil {
		d.logger.Error("failed to record crime stats",
			"user_id", userID,
			"error", err,
		)
		return fmt.Errorf("failed to record crime stats: %w", err)
	}

	return nil
}
