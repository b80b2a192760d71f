package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/loyaltypoints/backend/internal/models"
	"go.uber.org/zap"
)

// userTokenRepository provides data access for stored refresh tokens
type userTokenRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewUserTokenRepository creates a new user token repository
func NewUserTokenRepository(db *sql.DB, logger *zap.Logger) *userTokenRepository {
	return &userTokenRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a new refresh token
func (r *userTokenRepository) Create(ctx context.Context, userToken *models.UserToken) error {
	query := `INSERT INTO user_tokens (user_id, token) VALUES (?, ?)`

	result, err := r.db.ExecContext(ctx, query, userToken.UserID, userToken.Token)
	if err != nil {
		r.logger.Error("failed to create user token", zap.Error(err))
		return fmt.Errorf("failed to create user token: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	userToken.ID = int(id)
	return nil
}

// GetByToken retrieves a refresh token record by token string
func (r *userTokenRepository) GetByToken(ctx context.Context, token string) (*models.UserToken, error) {
	query := `
		SELECT id, user_id, token, created_at
		FROM user_tokens
		WHERE token = ?
		LIMIT 1
	`

	userToken := &models.UserToken{}
	err := r.db.QueryRowContext(ctx, query, token).Scan(
		&userToken.ID,
		&userToken.UserID,
		&userToken.Token,
		&userToken.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, models.ErrTokenNotFound
	}
	if err != nil {
		r.logger.Error("failed to get user token", zap.Error(err))
		return nil, fmt.Errorf("failed to get user token: %w", err)
	}

	return userToken, nil
}

// UpdateToken replaces an old refresh token with a new one
func (r *userTokenRepository) UpdateToken(ctx context.Context, oldToken, newToken string, userID int) error {
	query := `UPDATE user_tokens SET token = ?, created_at = CURRENT_TIMESTAMP WHERE token = ? AND user_id = ?`

	result, err := r.db.ExecContext(ctx, query, newToken, oldToken, userID)
	if err != nil {
		r.logger.Error("failed to update user token", zap.Error(err))
		return fmt.Errorf("failed to update user token: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return models.ErrTokenNotFound
	}

	return nil
}

// DeleteByToken deletes a refresh token by token string
func (r *userTokenRepository) DeleteByToken(ctx context.Context, token string) error {
	query := `DELETE FROM user_tokens WHERE token = ?`

	if _, err := r.db.ExecContext(ctx, query, token); err != nil {
		r.logger.Error("failed to delete user token", zap.Error(err))
		return fmt.Errorf("failed to delete user token: %w", err)
	}

	return nil
}

// DeleteExpired removes refresh tokens older than the given lifetime.
// Called periodically by the cleanup job.
func (r *userTokenRepository) DeleteExpired(ctx context.Context, lifetime time.Duration) (int64, error) {
	query := `DELETE FROM user_tokens WHERE created_at < ?`

	result, err := r.db.ExecContext(ctx, query, time.Now().Add(-lifetime))
	if err != nil {
		r.logger.Error("failed to delete expired tokens", zap.Error(err))
		return 0, fmt.Errorf("failed to delete expired tokens: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rows, nil
}
