package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/loyaltypoints/backend/internal/models"
	"go.uber.org/zap"
)

// redemptionRepository implements the reward redemption critical section.
// The whole check-and-debit sequence runs inside one transaction with the
// reward and user rows locked, so concurrent redemptions serialize on the
// rows they touch and the points/quantity invariants hold: a reward with
// quantity=1 is sold exactly once, a balance covering exactly one cost is
// spent exactly once.
type redemptionRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewRedemptionRepository creates a new redemption repository
func NewRedemptionRepository(db *sql.DB, logger *zap.Logger) *redemptionRepository {
	return &redemptionRepository{
		db:     db,
		logger: logger,
	}
}

// Redeem atomically debits the user's points by the reward's cost,
// decrements the reward's stock by one and appends a history entry.
// Preconditions are checked in order against the locked rows: reward
// exists, quantity > 0, user exists, points >= cost. Any failure rolls
// the transaction back, leaving no partial mutation.
func (r *redemptionRepository) Redeem(ctx context.Context, userID int, rewardName string) (*models.RedemptionResult, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Lock the reward row
	var cost, quantity int
	err = tx.QueryRowContext(ctx,
		`SELECT points, quantity FROM rewards WHERE name = ? FOR UPDATE`,
		rewardName,
	).Scan(&cost, &quantity)
	if err == sql.ErrNoRows {
		return nil, models.ErrRewardNotFound
	}
	if err != nil {
		r.logger.Error("failed to lock reward row", zap.Error(err), zap.String("reward", rewardName))
		return nil, fmt.Errorf("failed to lock reward row: %w", err)
	}

	if quantity <= 0 {
		return nil, models.ErrOutOfStock
	}

	// Lock the user row
	var points int
	err = tx.QueryRowContext(ctx,
		`SELECT points FROM users WHERE id = ? FOR UPDATE`,
		userID,
	).Scan(&points)
	if err == sql.ErrNoRows {
		return nil, models.ErrUserNotFound
	}
	if err != nil {
		r.logger.Error("failed to lock user row", zap.Error(err), zap.Int("userID", userID))
		return nil, fmt.Errorf("failed to lock user row: %w", err)
	}

	if points < cost {
		return nil, models.ErrInsufficientPoints
	}

	// Debit, decrement, record
	if _, err := tx.ExecContext(ctx,
		`UPDATE users SET points = points - ? WHERE id = ?`,
		cost, userID,
	); err != nil {
		r.logger.Error("failed to debit points", zap.Error(err), zap.Int("userID", userID))
		return nil, fmt.Errorf("failed to debit points: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE rewards SET quantity = quantity - 1 WHERE name = ?`,
		rewardName,
	); err != nil {
		r.logger.Error("failed to decrement stock", zap.Error(err), zap.String("reward", rewardName))
		return nil, fmt.Errorf("failed to decrement stock: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO history (user_id, action) VALUES (?, ?)`,
		userID, "redeem:"+rewardName,
	); err != nil {
		r.logger.Error("failed to record redemption history", zap.Error(err), zap.Int("userID", userID))
		return nil, fmt.Errorf("failed to record redemption history: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit redemption: %w", err)
	}

	return &models.RedemptionResult{
		Points:   points - cost,
		Quantity: quantity - 1,
	}, nil
}
