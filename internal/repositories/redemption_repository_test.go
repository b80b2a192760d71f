package repositories

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/loyaltypoints/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// setupRedemptionTestRepository creates a redemption repository with a mock database
func setupRedemptionTestRepository(t *testing.T) (*redemptionRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	repo := NewRedemptionRepository(db, zap.NewNop())

	cleanup := func() {
		db.Close()
	}

	return repo, mock, cleanup
}

func TestRedemptionRepository_Redeem(t *testing.T) {
	tests := []struct {
		name           string
		setupMock      func(sqlmock.Sqlmock)
		expectedError  error
		expectedResult *models.RedemptionResult
	}{
		{
			name: "success",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(`SELECT points, quantity FROM rewards WHERE name = \? FOR UPDATE`).
					WithArgs("Coffee Mug").
					WillReturnRows(sqlmock.NewRows([]string{"points", "quantity"}).AddRow(100, 50))
				mock.ExpectQuery(`SELECT points FROM users WHERE id = \? FOR UPDATE`).
					WithArgs(1).
					WillReturnRows(sqlmock.NewRows([]string{"points"}).AddRow(150))
				mock.ExpectExec(`UPDATE users SET points = points - \?`).
					WithArgs(100, 1).
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectExec(`UPDATE rewards SET quantity = quantity - 1`).
					WithArgs("Coffee Mug").
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectExec(`INSERT INTO history`).
					WithArgs(1, "redeem:Coffee Mug").
					WillReturnResult(sqlmock.NewResult(1, 1))
				mock.ExpectCommit()
			},
			expectedResult: &models.RedemptionResult{Points: 50, Quantity: 49},
		},
		{
			name: "exact balance spends to zero",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(`SELECT points, quantity FROM rewards WHERE name = \? FOR UPDATE`).
					WithArgs("Coffee Mug").
					WillReturnRows(sqlmock.NewRows([]string{"points", "quantity"}).AddRow(100, 1))
				mock.ExpectQuery(`SELECT points FROM users WHERE id = \? FOR UPDATE`).
					WithArgs(1).
					WillReturnRows(sqlmock.NewRows([]string{"points"}).AddRow(100))
				mock.ExpectExec(`UPDATE users SET points = points - \?`).
					WithArgs(100, 1).
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectExec(`UPDATE rewards SET quantity = quantity - 1`).
					WithArgs("Coffee Mug").
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectExec(`INSERT INTO history`).
					WithArgs(1, "redeem:Coffee Mug").
					WillReturnResult(sqlmock.NewResult(1, 1))
				mock.ExpectCommit()
			},
			expectedResult: &models.RedemptionResult{Points: 0, Quantity: 0},
		},
		{
			name: "reward not found",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(`SELECT points, quantity FROM rewards WHERE name = \? FOR UPDATE`).
					WithArgs("Coffee Mug").
					WillReturnError(sql.ErrNoRows)
				mock.ExpectRollback()
			},
			expectedError: models.ErrRewardNotFound,
		},
		{
			name: "out of stock",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(`SELECT points, quantity FROM rewards WHERE name = \? FOR UPDATE`).
					WithArgs("Coffee Mug").
					WillReturnRows(sqlmock.NewRows([]string{"points", "quantity"}).AddRow(100, 0))
				mock.ExpectRollback()
			},
			expectedError: models.ErrOutOfStock,
		},
		{
			name: "user not found",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(`SELECT points, quantity FROM rewards WHERE name = \? FOR UPDATE`).
					WithArgs("Coffee Mug").
					WillReturnRows(sqlmock.NewRows([]string{"points", "quantity"}).AddRow(100, 50))
				mock.ExpectQuery(`SELECT points FROM users WHERE id = \? FOR UPDATE`).
					WithArgs(1).
					WillReturnError(sql.ErrNoRows)
				mock.ExpectRollback()
			},
			expectedError: models.ErrUserNotFound,
		},
		{
			name: "insufficient points",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(`SELECT points, quantity FROM rewards WHERE name = \? FOR UPDATE`).
					WithArgs("Coffee Mug").
					WillReturnRows(sqlmock.NewRows([]string{"points", "quantity"}).AddRow(100, 50))
				mock.ExpectQuery(`SELECT points FROM users WHERE id = \? FOR UPDATE`).
					WithArgs(1).
					WillReturnRows(sqlmock.NewRows([]string{"points"}).AddRow(99))
				mock.ExpectRollback()
			},
			expectedError: models.ErrInsufficientPoints,
		},
		{
			name: "debit failure rolls back",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(`SELECT points, quantity FROM rewards WHERE name = \? FOR UPDATE`).
					WithArgs("Coffee Mug").
					WillReturnRows(sqlmock.NewRows([]string{"points", "quantity"}).AddRow(100, 50))
				mock.ExpectQuery(`SELECT points FROM users WHERE id = \? FOR UPDATE`).
					WithArgs(1).
					WillReturnRows(sqlmock.NewRows([]string{"points"}).AddRow(150))
				mock.ExpectExec(`UPDATE users SET points = points - \?`).
					WithArgs(100, 1).
					WillReturnError(errors.New("database error"))
				mock.ExpectRollback()
			},
			expectedError: errors.New("database error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupRedemptionTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			result, err := repo.Redeem(context.Background(), 1, "Coffee Mug")

			if tt.expectedError != nil {
				assert.Error(t, err)
				if errors.Is(tt.expectedError, models.ErrRewardNotFound) ||
					errors.Is(tt.expectedError, models.ErrOutOfStock) ||
					errors.Is(tt.expectedError, models.ErrUserNotFound) ||
					errors.Is(tt.expectedError, models.ErrInsufficientPoints) {
					assert.ErrorIs(t, err, tt.expectedError)
				}
				assert.Nil(t, result)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expectedResult, result)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRedemptionRepository_Redeem_NoPartialMutationOnHistoryFailure(t *testing.T) {
	repo, mock, cleanup := setupRedemptionTestRepository(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT points, quantity FROM rewards WHERE name = \? FOR UPDATE`).
		WithArgs("Sticker").
		WillReturnRows(sqlmock.NewRows([]string{"points", "quantity"}).AddRow(50, 100))
	mock.ExpectQuery(`SELECT points FROM users WHERE id = \? FOR UPDATE`).
		WithArgs(2).
		WillReturnRows(sqlmock.NewRows([]string{"points"}).AddRow(60))
	mock.ExpectExec(`UPDATE users SET points = points - \?`).
		WithArgs(50, 2).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE rewards SET quantity = quantity - 1`).
		WithArgs("Sticker").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO history`).
		WithArgs(2, "redeem:Sticker").
		WillReturnError(errors.New("database error"))
	mock.ExpectRollback()

	result, err := repo.Redeem(context.Background(), 2, "Sticker")

	assert.Error(t, err)
	assert.Nil(t, result)
	assert.NoError(t, mock.ExpectationsWereMet())
}
