package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/omertagame/omerta/internal/dao"
	"github.com/omertagame/omerta/internal/metrics"
	"github.com/omertagame/omerta/internal/model"
	"github.com/omertagame/omerta/pkg/database/postgres"
	"github.com/omertagame/omerta/pkg/logger"
	"github.com/omertagame/omerta/pkg/security"
)

// AuthService 账号服务
type AuthService struct {
	db         *postgres.Client
	userDAO    *dao.UserDAO
	profileDAO *dao.ProfileDAO
	cacheDAO   *dao.CacheDAO
	jwt        *security.JWTManager
	logger     logger.Logger
	metrics    *metrics.GameMetrics
}

// NewAuthService 创建账号服务
func NewAuthService(
	db *postgres.Client,
	userDAO *dao.UserDAO,
	profileDAO *dao.ProfileDAO,
	cacheDAO *dao.CacheDAO,
	jwt *security.JWTManager,
	l logger.Logger,
	m *metrics.GameMetrics,
) *AuthService {
	return &AuthService{
		db:         db,
		userDAO:    userDAO,
		profileDAO: profileDAO,
		cacheDAO:   cacheDAO,
		jwt:        jwt,
		logger:     l.Named("service.auth"),
		metrics:    m,
	}
}

// SignUp 注册账号,同一事务内创建账号和初始档案
func (s *AuthService) SignUp(ctx context.Context, email, username, password string) (*model.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		ID:           uuid.NewString(),
		Email:        email,
		Username:     username,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	}

	err = s.db.WithTx(ctx, func(tx pgx.Tx) error {
		if err := s.userDAO.CreateTx(ctx, tx, user); err != nil {
			return err
		}
		return s.profileDAO.CreateTx(ctx, tx, model.NewProfile(user.ID, username))
	})
	if err != nil {
		if errors.Is(err, dao.ErrDuplicate) {
			return nil, ErrDuplicateAccount
		}
		return nil, err
	}

	s.metrics.RecordSignup()
	s.logger.Info("user signed up",
		"user_id", user.ID,
		"username", username,
	)

	return user, nil
}

// SignIn 登录,返回签发的 Token
func (s *AuthService) SignIn(ctx context.Context, email, password string) (string, *model.User, error) {
	user, err := s.userDAO.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, dao.ErrNotFound) {
			s.metrics.RecordLogin(false)
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.metrics.RecordLogin(false)
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.jwt.GenerateToken(&security.Claims{
		Payload: map[string]any{
			"uid":      user.ID,
			"username": user.Username,
		},
	})
	if err != nil {
		return "", nil, fmt.Errorf("failed to generate token: %w", err)
	}

	if err := s.cacheDAO.SetSession(ctx, user.ID, token); err != nil {
		s.logger.Warn("failed to store session",
			"user_id", user.ID,
			"error", err,
		)
	}

	s.metrics.RecordLogin(true)
	return token, user, nil
}

// SignOut 注销登录会话
func (s *AuthService) SignOut(ctx context.Context, userID string) error {
	return s.cacheDAO.DeleteSession(ctx, userID)
}
