package dao

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/omertagame/omerta/internal/metrics"
	"github.com/omertagame/omerta/internal/model"
	"github.com/omertagame/omerta/pkg/database/postgres"
	"github.com/omertagame/omerta/pkg/logger"
)

// UserDAO 账号数据访问对象
type UserDAO struct {
	db      *postgres.Client
	logger  logger.Logger
	metrics *metrics.GameMetrics
}

// NewUserDAO 创建账号 DAO
func NewUserDAO(db *postgres.Client, l logger.Logger, m *metrics.GameMetrics) *UserDAO {
	return &UserDAO{
		db:      db,
		logger:  l.Named("dao.user"),
		metrics: m,
	}
}

var userColumns = []string{"id", "email", "username", "password_hash", "created_at"}

// GetByEmail 根据邮箱获取账号
func (d *UserDAO) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	start := time.Now()
	defer func() {
		d.metrics.RecordDBQuery("select", true, time.Since(start).Seconds())
	}()

	query, args, err := squirrel.
		Select(userColumns...).
		From("users").
		Where(squirrel.Eq{"email": email}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	var user model.User
	if err := d.db.QueryRow(ctx, query, args...).Scan(
		&user.ID,
		&user.Email,
		&user.Username,
		&user.PasswordHash,
		&user.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		d.logger.Error("failed to get user by email",
			"email", email,
			"error", err,
		)
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &user, nil
}

// GetByID 根据 ID 获取账号
func (d *UserDAO) GetByID(ctx context.Context, id string) (*model.User, error) {
	start := time.Now()
	defer func() {
		d.metrics.RecordDBQuery("select", true, time.Since(start).Seconds())
	}()

	query, args, err := squirrel.
		Select(userColumns...).
		From("users").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	var user model.User
	if err := d.db.QueryRow(ctx, query, args...).Scan(
		&user.ID,
		&user.Email,
		&user.Username,
		&user.PasswordHash,
		&user.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		d.logger.Error("failed to get user by id",
			"user_id", id,
			"error", err,
		)
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &user, nil
}

// CreateTx 在事务中创建账号,邮箱或用户名冲突时返回 ErrDuplicate
func (d *UserDAO) CreateTx(ctx context.Context, tx pgx.Tx, user *model.User) error {
	start := time.Now()
	defer func() {
		d.metrics.RecordDBQuery("insert", true, time.Since(start).Seconds())
	}()

	query, args, err := squirrel.
		Insert("users").
		Columns(userColumns...).
		Values(user.ID, user.Email, user.Username, user.PasswordHash, user.CreatedAt).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	if _, err := tx.Exec(ctx, query, args...); err != nil {
		var pgErr *pgconn.PgError
		// 23505 = unique_violation
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicate
		}
		d.logger.Error("failed to create user",
			"user_id", user.ID,
			"error", err,
		)
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}
