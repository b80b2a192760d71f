package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/loyaltypoints/backend/internal/models"
	"go.uber.org/zap"
)

// historyRepository provides data access for the history table
type historyRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewHistoryRepository creates a new history repository
func NewHistoryRepository(db *sql.DB, logger *zap.Logger) *historyRepository {
	return &historyRepository{
		db:     db,
		logger: logger,
	}
}

// GetRecentByUser retrieves the most recent history entries for a user,
// newest first
func (r *historyRepository) GetRecentByUser(ctx context.Context, userID, limit int) ([]models.HistoryEntry, error) {
	query := `
		SELECT action, created_at
		FROM history
		WHERE user_id = ?
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`

	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		r.logger.Error("failed to get history", zap.Error(err), zap.Int("userID", userID))
		return nil, fmt.Errorf("failed to get history: %w", err)
	}
	defer rows.Close()

	entries := []models.HistoryEntry{}
	for rows.Next() {
		var e models.HistoryEntry
		if err := rows.Scan(&e.Action, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate history rows: %w", err)
	}

	return entries, nil
}
