package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/loyaltypoints/backend/internal/models"
	"go.uber.org/zap"
)

// RewardRepository is the interface that wraps methods for reward catalog data access
type RewardRepository interface {
	// Method GetAll retrieves the full reward catalog.
	GetAll(ctx context.Context) ([]models.Reward, error)
	// Method GetByName retrieves a reward by name.
	//
	// If reward with such name does not exist, models.ErrRewardNotFound will be returned together with "nil" value.
	GetByName(ctx context.Context, name string) (*models.Reward, error)
}

// RedemptionStore is the interface that wraps the atomic redeem operation.
// Implementations must apply the whole check-debit-decrement sequence as a
// single atomic unit: concurrent calls observe it all-or-nothing, and no
// failure leaves a partial mutation behind.
type RedemptionStore interface {
	// Method Redeem atomically verifies and debits the user's balance and
	// decrements the reward's stock.
	//
	// Returns models.ErrRewardNotFound, models.ErrOutOfStock,
	// models.ErrUserNotFound or models.ErrInsufficientPoints when the
	// corresponding precondition fails; state is unchanged in every
	// failure case.
	Redeem(ctx context.Context, userID int, rewardName string) (*models.RedemptionResult, error)
}

// rewardService exposes the reward catalog and the redemption engine
type rewardService struct {
	rewardRepo  RewardRepository
	redemptions RedemptionStore
	logger      *zap.Logger
}

// NewRewardService creates a new reward service
func NewRewardService(rewardRepo RewardRepository, redemptions RedemptionStore, logger *zap.Logger) *rewardService {
	return &rewardService{
		rewardRepo:  rewardRepo,
		redemptions: redemptions,
		logger:      logger,
	}
}

// ListRewards returns the catalog as a map keyed by reward name
func (s *rewardService) ListRewards(ctx context.Context) (map[string]models.Reward, error) {
	rewards, err := s.rewardRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	catalog := make(map[string]models.Reward, len(rewards))
	for _, r := range rewards {
		catalog[r.Name] = r
	}

	return catalog, nil
}

// Redeem exchanges the user's points for one unit of the named reward
func (s *rewardService) Redeem(ctx context.Context, userID int, rewardName string) (*models.RedemptionResult, error) {
	rewardName = strings.TrimSpace(rewardName)
	if rewardName == "" {
		return nil, fmt.Errorf("reward name cannot be empty")
	}

	result, err := s.redemptions.Redeem(ctx, userID, rewardName)
	if err != nil {
		return nil, err
	}

	s.logger.Info("reward redeemed",
		zap.Int("userID", userID),
		zap.String("reward", rewardName),
		zap.Int("remainingPoints", result.Points),
		zap.Int("remainingStock", result.Quantity),
	)

	return result, nil
}
