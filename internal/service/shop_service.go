package service

import (
	"context"
	"fmt"

	"github.com/omertagame/omerta/internal/gamedata"
	"github.com/omertagame/omerta/internal/metrics"
	"github.com/omertagame/omerta/internal/model"
	"github.com/omertagame/omerta/internal/repository"
	"github.com/omertagame/omerta/pkg/logger"
)

// PurchaseResult 购买结果,余额不足是业务失败而非 error
type PurchaseResult struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Profile *model.Profile `json:"profile"`
}

// ShopService 商店服务
type ShopService struct {
	repo    repository.PlayerRepository
	tables  *gamedata.Tables
	logger  logger.Logger
	metrics *metrics.GameMetrics
}

// NewShopService 创建商店服务
func NewShopService(
	repo repository.PlayerRepository,
	tables *gamedata.Tables,
	l logger.Logger,
	m *metrics.GameMetrics,
) *ShopService {
	return &ShopService{
		repo:    repo,
		tables:  tables,
		logger:  l.Named("service.shop"),
		metrics: m,
	}
}

// BuyWeapon 购买武器
// 扣款金额恰好等于售价,购入即装备(覆盖旧武器)
func (s *ShopService) BuyWeapon(ctx context.Context, profileID string, weaponID int32) (*PurchaseResult, error) {
	weapon := s.tables.Weapon(weaponID)
	if weapon == nil {
		return nil, fmt.Errorf("weapon %d: %w", weaponID, ErrNotFound)
	}

	profile, err := s.repo.GetProfile(ctx, profileID)
	if err != nil {
		return nil, err
	}

	if profile.Cash < weapon.Value {
		s.metrics.RecordWeaponBuy(false)
		return &PurchaseResult{
			Success: false,
			Message: fmt.Sprintf("You can't afford the %s. It costs $%d.", weapon.Name, weapon.Value),
			Profile: profile,
		}, nil
	}

	profile.Cash -= weapon.Value
	profile.EquippedWeapon = weapon.Name

	if err := s.repo.SaveProfile(ctx, profile); err != nil {
		return nil, err
	}

	s.metrics.RecordWeaponBuy(true)

	return &PurchaseResult{
		Success: true,
		Message: fmt.Sprintf("You bought the %s for $%d.", weapon.Name, weapon.Value),
		Profile: profile,
	}, nil
}
