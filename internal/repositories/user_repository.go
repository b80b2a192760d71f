package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/loyaltypoints/backend/internal/models"
	"go.uber.org/zap"
)

// userRepository provides data access for the users table
type userRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *sql.DB, logger *zap.Logger) *userRepository {
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a new user into the database
func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (username, password_hash, points, role)
		VALUES (?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query, user.Username, user.PasswordHash, user.Points, user.Role)
	if err != nil {
		r.logger.Error("failed to create user", zap.Error(err))
		return fmt.Errorf("failed to create user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		r.logger.Error("failed to get last insert id", zap.Error(err))
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	user.ID = int(id)
	return nil
}

// GetByUsername retrieves a user by username
func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	query := `
		SELECT id, username, password_hash, points, role
		FROM users
		WHERE username = ?
		LIMIT 1
	`

	user := &models.User{}
	err := r.db.QueryRowContext(ctx, query, username).Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.Points,
		&user.Role,
	)

	if err == sql.ErrNoRows {
		return nil, models.ErrUserNotFound
	}
	if err != nil {
		r.logger.Error("failed to get user by username", zap.Error(err), zap.String("username", username))
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}

	return user, nil
}

// GetByID retrieves a user by ID
func (r *userRepository) GetByID(ctx context.Context, userID int) (*models.User, error) {
	query := `
		SELECT id, username, password_hash, points, role
		FROM users
		WHERE id = ?
		LIMIT 1
	`

	user := &models.User{}
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.Points,
		&user.Role,
	)

	if err == sql.ErrNoRows {
		return nil, models.ErrUserNotFound
	}
	if err != nil {
		r.logger.Error("failed to get user by id", zap.Error(err), zap.Int("userID", userID))
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}

	return user, nil
}

// ExistsByUsername checks if a user exists with the given username
func (r *userRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	query := `SELECT EXISTS(SELECT * FROM users WHERE username = ?)`

	var exists bool
	err := r.db.QueryRowContext(ctx, query, username).Scan(&exists)
	if err != nil {
		r.logger.Error("failed to check username existence", zap.Error(err), zap.String("username", username))
		return false, fmt.Errorf("failed to check username existence: %w", err)
	}

	return exists, nil
}

// UpdatePassword replaces the password hash for the given username
func (r *userRepository) UpdatePassword(ctx context.Context, username, passwordHash string) error {
	query := `UPDATE users SET password_hash = ? WHERE username = ?`

	result, err := r.db.ExecContext(ctx, query, passwordHash, username)
	if err != nil {
		r.logger.Error("failed to update password", zap.Error(err), zap.String("username", username))
		return fmt.Errorf("failed to update password: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return models.ErrUserNotFound
	}

	return nil
}

// GetAll retrieves all users for the admin listing
func (r *userRepository) GetAll(ctx context.Context) ([]models.UserListItem, error) {
	query := `
		SELECT username, points, role
		FROM users
		ORDER BY username
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("failed to list users", zap.Error(err))
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	users := []models.UserListItem{}
	for rows.Next() {
		var u models.UserListItem
		if err := rows.Scan(&u.Username, &u.Points, &u.Role); err != nil {
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate user rows: %w", err)
	}

	return users, nil
}

// GrantPoints adjusts a user's balance by delta inside a transaction.
// The row is locked while the new balance is checked, so concurrent grants
// and redemptions cannot drive the balance below zero.
func (r *userRepository) GrantPoints(ctx context.Context, username string, delta int) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var userID, points int
	err = tx.QueryRowContext(ctx,
		`SELECT id, points FROM users WHERE username = ? FOR UPDATE`,
		username,
	).Scan(&userID, &points)
	if err == sql.ErrNoRows {
		return models.ErrUserNotFound
	}
	if err != nil {
		r.logger.Error("failed to lock user row", zap.Error(err), zap.String("username", username))
		return fmt.Errorf("failed to lock user row: %w", err)
	}

	if points+delta < 0 {
		return models.ErrNegativePoints
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE users SET points = points + ? WHERE id = ?`,
		delta, userID,
	); err != nil {
		r.logger.Error("failed to update points", zap.Error(err), zap.String("username", username))
		return fmt.Errorf("failed to update points: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO history (user_id, action) VALUES (?, ?)`,
		userID, fmt.Sprintf("grant:%+d", delta),
	); err != nil {
		r.logger.Error("failed to record grant history", zap.Error(err), zap.Int("userID", userID))
		return fmt.Errorf("failed to record grant history: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit point grant: %w", err)
	}

	return nil
}
