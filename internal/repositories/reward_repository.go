package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/loyaltypoints/backend/internal/models"
	"go.uber.org/zap"
)

// rewardRepository provides data access for the rewards table
type rewardRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewRewardRepository creates a new reward repository
func NewRewardRepository(db *sql.DB, logger *zap.Logger) *rewardRepository {
	return &rewardRepository{
		db:     db,
		logger: logger,
	}
}

// GetAll retrieves the full reward catalog
func (r *rewardRepository) GetAll(ctx context.Context) ([]models.Reward, error) {
	query := `SELECT name, points, quantity, image FROM rewards ORDER BY name`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("failed to list rewards", zap.Error(err))
		return nil, fmt.Errorf("failed to list rewards: %w", err)
	}
	defer rows.Close()

	rewards := []models.Reward{}
	for rows.Next() {
		var rw models.Reward
		if err := rows.Scan(&rw.Name, &rw.Points, &rw.Quantity, &rw.Image); err != nil {
			return nil, fmt.Errorf("failed to scan reward row: %w", err)
		}
		rewards = append(rewards, rw)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate reward rows: %w", err)
	}

	return rewards, nil
}

// GetByName retrieves a reward by name
func (r *rewardRepository) GetByName(ctx context.Context, name string) (*models.Reward, error) {
	query := `SELECT name, points, quantity, image FROM rewards WHERE name = ? LIMIT 1`

	reward := &models.Reward{}
	err := r.db.QueryRowContext(ctx, query, name).Scan(
		&reward.Name,
		&reward.Points,
		&reward.Quantity,
		&reward.Image,
	)

	if err == sql.ErrNoRows {
		return nil, models.ErrRewardNotFound
	}
	if err != nil {
		r.logger.Error("failed to get reward", zap.Error(err), zap.String("name", name))
		return nil, fmt.Errorf("failed to get reward: %w", err)
	}

	return reward, nil
}

// Create inserts a new reward into the catalog
func (r *rewardRepository) Create(ctx context.Context, reward *models.Reward) error {
	query := `
		INSERT INTO rewards (name, points, quantity, image)
		VALUES (?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query, reward.Name, reward.Points, reward.Quantity, reward.Image)
	if err != nil {
		// MySQL duplicate key error for the name primary key
		if strings.Contains(err.Error(), "1062") || strings.Contains(err.Error(), "Duplicate entry") {
			return models.ErrRewardExists
		}
		r.logger.Error("failed to create reward", zap.Error(err), zap.String("name", reward.Name))
		return fmt.Errorf("failed to create reward: %w", err)
	}

	return nil
}

// SetQuantity overwrites a reward's remaining stock with an absolute value
func (r *rewardRepository) SetQuantity(ctx context.Context, name string, quantity int) error {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT * FROM rewards WHERE name = ?)`,
		name,
	).Scan(&exists)
	if err != nil {
		r.logger.Error("failed to check reward existence", zap.Error(err), zap.String("name", name))
		return fmt.Errorf("failed to check reward existence: %w", err)
	}
	if !exists {
		return models.ErrRewardNotFound
	}

	if _, err := r.db.ExecContext(ctx,
		`UPDATE rewards SET quantity = ? WHERE name = ?`,
		quantity, name,
	); err != nil {
		r.logger.Error("failed to set quantity", zap.Error(err), zap.String("name", name))
		return fmt.Errorf("failed to set quantity: %w", err)
	}

	return nil
}
