package dao

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/omertagame/omerta/internal/metrics"
	"github.com/omertagame/omerta/internal/model"
	"github.com/omertagame/omerta/pkg/database/postgres"
	"github.com/omertagame/omerta/pkg/logger"
)

// GameDataDAO 静态参照表数据访问对象
type GameDataDAO struct {
	db      *postgres.Client
	logger  logger.Logger
	metrics *metrics.GameMetrics
}

// NewGameDataDAO 创建参照表 DAO
func NewGameDataDAO(db *postgres.Client, l logger.Logger, m *metrics.GameMetrics) *GameDataDAO {
	return &GameDataDAO{
		db:      db,
		logger:  l.Named("dao.gamedata"),
		metrics: m,
	}
}

// ListRanks 按所需经验升序列出全部军衔
func (d *GameDataDAO) ListRanks(ctx context.Context) ([]*model.Rank, error) {
	start := time.Now()
	defer func() {
		d.metrics.RecordDBQuery("select", true, time.Since(start).Seconds())
	}()

	query, args, err := squirrel.
		Select("id", "name", "required_experience", "rank_bonus").
		From("ranks").
		OrderBy("required_experience ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	var ranks []*model.Rank
	err = d.db.Query(ctx, func(rows pgx.Rows) error {
		for rows.Next() {
			var r model.Rank
			if err := rows.Scan(&r.ID, &r.Name, &r.RequiredExperience, &r.RankBonus); err != nil {
				return fmt.Errorf("failed to scan rank: %w", err)
			}
			ranks = append(ranks, &r)
		}
		return nil
	}, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list ranks: %w", err)
	}

	return ranks, nil
}

// ListCrimes 按难度升序列出全部犯罪项目
func (d *GameDataDAO) ListCrimes(ctx context.Context) ([]*model.Crime, error) {
	start := time.Now()
	defer func() {
		d.metrics.RecordDBQuery("select", true, time.Since(start).Seconds())
	}()

	query, args, err := squirrel.
		Select("id", "name", "description", "min_reward", "max_reward",
			"experience_reward", "success_rate", "difficulty", "jail_risk").
		From("crimes").
		OrderBy("difficulty ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	var crimes []*model.Crime
	err = d.db.Query(ctx, func(rows pgx.Rows) error {
		for rows.Next() {
			var c model.Crime
			if err := rows.Scan(
				&c.ID, &c.Name, &c.Description, &c.MinReward, &c.MaxReward,
				&c.ExperienceReward, &c.SuccessRate, &c.Difficulty, &c.JailRisk,
			); err != nil {
				return fmt.Errorf("failed to scan crime: %w", err)
			}
			crimes = append(crimes, &c)
		}
		return nil
	}, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list crimes: %w", err)
	}

	return crimes, nil
}

// ListJailActivities 列出全部监狱活动
func (d *GameDataDAO) ListJailActivities(ctx context.Context) ([]*model.JailActivity, error) {
	start := time.Now()
	defer func() {
		d.metrics.RecordDBQuery("select", true, time.Since(start).Seconds())
	}()

	query, args, err := squirrel.
		Select("id", "name", "description", "chance_increase", "cooldown_seconds").
		From("jail_activities").
		OrderBy("id ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	var activities []*model.JailActivity
	err = d.db.Query(ctx, func(rows pgx.Rows) error {
		for rows.Next() {
			var a model.JailActivity
			if err := rows.Scan(&a.ID, &a.Name, &a.Description, &a.ChanceIncrease, &a.CooldownSeconds); err != nil {
				return fmt.Errorf("failed to scan jail activity: %w", err)
			}
			activities = append(activities, &a)
		}
		return nil
	}, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list jail activities: %w", err)
	}

	return activities, nil
}

// ListWeapons 按售价升序列出全部武器
func (d *GameDataDAO) ListWeapons(ctx context.Context) ([]*model.Weapon, error) {
	start := time.Now()
	defer func() {
		d.metrics.RecordDBQuery("select", true, time.Since(start).Seconds())
	}()

	query, args, err := squirrel.
		Select("id", "name", "description", "value", "damage").
		From("items").
		OrderBy("value ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	var weapons []*model.Weapon
	err = d.db.Query(ctx, func(rows pgx.Rows) error {
		for rows.Next() {
			var w model.Weapon
			if err := rows.Scan(&w.ID, &w.Name, &w.Description, &w.Value, &w.Damage); err != nil {
				return fmt.Errorf("failed to scan weapon: %w", err)
			}
			weapons = append(weapons, &w)
		}
		return nil
	}, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list weapons: %w", err)
	}

	return weapons, nil
}
