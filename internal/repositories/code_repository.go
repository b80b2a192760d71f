package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/loyaltypoints/backend/internal/models"
	"go.uber.org/zap"
)

// codeRepository provides data access for promo codes and their per-user
// redemption records
type codeRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewCodeRepository creates a new code repository
func NewCodeRepository(db *sql.DB, logger *zap.Logger) *codeRepository {
	return &codeRepository{
		db:     db,
		logger: logger,
	}
}

// Apply credits a promo code's points to the user. The code must exist and
// must not have been applied by this user before; the redeemed_codes primary
// key enforces the replay guard even under concurrent submissions of the
// same code. Points only increase here, so the balance invariant cannot be
// violated.
func (r *codeRepository) Apply(ctx context.Context, userID int, code string) (*models.CodeApplication, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var value int
	err = tx.QueryRowContext(ctx,
		`SELECT points FROM codes WHERE code = ?`,
		code,
	).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, models.ErrCodeNotFound
	}
	if err != nil {
		r.logger.Error("failed to get code", zap.Error(err), zap.String("code", code))
		return nil, fmt.Errorf("failed to get code: %w", err)
	}

	// The (user_id, code) primary key rejects a second application
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO redeemed_codes (user_id, code) VALUES (?, ?)`,
		userID, code,
	); err != nil {
		if strings.Contains(err.Error(), "1062") || strings.Contains(err.Error(), "Duplicate entry") {
			return nil, models.ErrCodeAlreadyRedeemed
		}
		r.logger.Error("failed to record code redemption", zap.Error(err), zap.Int("userID", userID))
		return nil, fmt.Errorf("failed to record code redemption: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE users SET points = points + ? WHERE id = ?`,
		value, userID,
	); err != nil {
		r.logger.Error("failed to credit points", zap.Error(err), zap.Int("userID", userID))
		return nil, fmt.Errorf("failed to credit points: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO history (user_id, action) VALUES (?, ?)`,
		userID, "code:"+code,
	); err != nil {
		r.logger.Error("failed to record code history", zap.Error(err), zap.Int("userID", userID))
		return nil, fmt.Errorf("failed to record code history: %w", err)
	}

	var total int
	err = tx.QueryRowContext(ctx,
		`SELECT points FROM users WHERE id = ?`,
		userID,
	).Scan(&total)
	if err == sql.ErrNoRows {
		return nil, models.ErrUserNotFound
	}
	if err != nil {
		r.logger.Error("failed to read new total", zap.Error(err), zap.Int("userID", userID))
		return nil, fmt.Errorf("failed to read new total: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit code application: %w", err)
	}

	return &models.CodeApplication{
		Granted: value,
		Total:   total,
	}, nil
}
