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

// ProfileDAO 玩家档案数据访问对象
type ProfileDAO struct {
	db      *postgres.Client
	logger  logger.Logger
	metrics *metrics.GameMetrics
}

// NewProfileDAO 创建玩家档案 DAO
func NewProfileDAO(db *postgres.Client, l logger.Logger, m *metrics.GameMetrics) *ProfileDAO {
	return &ProfileDAO{
		db:      db,
		logger:  l.Named("dao.profile"),
		metrics: m,
	}
}

var profileColumns = []string{
	"id", "username", "avatar_url",
	"experience", "cash", "rank", "health",
	"equipped_weapon", "equipped_armor",
	"jail_time", "jail_sentence", "breakout_chance",
	"last_activity_time", "version",
	"created_at", "updated_at",
}

func scanProfile(row pgx.Row) (*model.Profile, error) {
	var p model.Profile
	if err := row.Scan(
		&p.ID,
		&p.Username,
		&p.AvatarURL,
		&p.Experience,
		&p.Cash,
		&p.Rank,
		&p.Health,
		&p.EquippedWeapon,
		&p.EquippedArmor,
		&p.JailTime,
		&p.JailSentence,
		&p.BreakoutChance,
		&p.LastActivityTime,
		&p.Version,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &p, nil
}

// GetByID 根据玩家 ID 获取档案
func (d *ProfileDAO) GetByID(ctx context.Context, id string) (*model.Profile, error) {
	start := time.Now()
	defer func() {
		d.metrics.RecordDBQuery("select", true, time.Since(start).Seconds())
	}()

	query, args, err := squirrel.
		Select(profileColumns...).
		From("profiles").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	profile, err := scanProfile(d.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		d.logger.Error("failed to get profile by id",
			"profile_id", id,
			"error", err,
		)
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	return profile, nil
}

// CreateTx 在事务中创建玩家档案
func (d *ProfileDAO) CreateTx(ctx context.Context, tx pgx.Tx, p *model.Profile) error {
	start := time.Now()
	defer func() {
		d.metrics.RecordDBQuery("insert", true, time.Since(start).Seconds())
	}()

	query, args, err := squirrel.
		Insert("profiles").
		Columns(profileColumns...).
		Values(
			p.ID, p.Username, p.AvatarURL,
			p.Experience, p.Cash, p.Rank, p.Health,
			p.EquippedWeapon, p.EquippedArmor,
			p.JailTime, p.JailSentence, p.BreakoutChance,
			p.LastActivityTime, p.Version,
			p.CreatedAt, p.UpdatedAt,
		).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	if _, err := tx.Exec(ctx, query, args...); err != nil {
		d.logger.Error("failed to create profile",
			"profile_id", p.ID,
			"error", err,
		)
		return fmt.Errorf("failed to create profile: %w", err)
	}

	return nil
}

// Update 乐观锁更新玩家档案
// WHERE 条件带上读取时的 version,未命中说明并发写入,返回 ErrVersionConflict
// 成功后 p.Version 和 p.UpdatedAt 更新为库中的新值
func (d *ProfileDAO) Update(ctx context.Context, p *model.Profile) error {
	start := time.Now()
	defer func() {
		d.metrics.RecordDBQuery("update", true, time.Since(start).Seconds())
	}()

	query, args, err := squirrel.
		Update("profiles").
		Set("username", p.Username).
		Set("avatar_url", p.AvatarURL).
		Set("experience", p.Experience).
		Set("cash", p.Cash).
		Set("rank", p.Rank).
		Set("health", p.Health).
		Set("equipped_weapon", p.EquippedWeapon).
		Set("equipped_armor", p.EquippedArmor).
		Set("jail_time", p.JailTime).
		Set("jail_sentence", p.JailSentence).
		Set("breakout_chance", p.BreakoutChance).
		Set("last_activity_time", p.LastActivityTime).
		Set("version", p.Version+1).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": p.ID, "version": p.Version}).
		Suffix("RETURNING version, updated_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	if err := d.db.QueryRow(ctx, query, args...).Scan(&p.Version, &p.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrVersionConflict
		}
		d.logger.Error("failed to update profile",
			"profile_id", p.ID,
			"version", p.Version,
			"error", err,
		)
		return fmt.Errorf("failed to update profile: %w", err)
	}

	return nil
}

// ClearExpiredJail 清理刑期已过的档案,返回清理行数
// 版本号照常递增,和乐观锁协同
func (d *ProfileDAO) ClearExpiredJail(ctx context.Context, now time.Time) (int64, error) {
	start := time.Now()
	defer func() {
		d.metrics.RecordDBQuery("update", true, time.Since(start).Seconds())
	}()

	query, args, err := squirrel.
		Update("profiles").
		Set("jail_time", nil).
		Set("jail_sentence", 0).
		Set("version", squirrel.Expr("version + 1")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.LtOrEq{"jail_time": now}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build query: %w", err)
	}

	affected, err := d.db.Exec(ctx, query, args...)
	if err != nil {
		d.logger.Error("failed to clear expired jail",
			"error", err,
		)
		return 0, fmt.Errorf("failed to clear expired jail: %w", err)
	}

	return affected, nil
}
