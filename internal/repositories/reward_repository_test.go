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

// setupRewardTestRepository creates a reward repository with a mock database
func setupRewardTestRepository(t *testing.T) (*rewardRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	repo := NewRewardRepository(db, zap.NewNop())

	cleanup := func() {
		db.Close()
	}

	return repo, mock, cleanup
}

func TestRewardRepository_GetAll(t *testing.T) {
	repo, mock, cleanup := setupRewardTestRepository(t)
	defer cleanup()

	rows := sqlmock.NewRows([]string{"name", "points", "quantity", "image"}).
		AddRow("Coffee Mug", 100, 50, "").
		AddRow("Sticker", 50, 100, "/api/images/sticker.png").
		AddRow("T-Shirt", 200, 20, "")
	mock.ExpectQuery(`SELECT name, points, quantity, image FROM rewards`).
		WillReturnRows(rows)

	rewards, err := repo.GetAll(context.Background())

	require.NoError(t, err)
	require.Len(t, rewards, 3)
	assert.Equal(t, "Coffee Mug", rewards[0].Name)
	assert.Equal(t, 100, rewards[1].Quantity)
	assert.Equal(t, "/api/images/sticker.png", rewards[1].Image)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRewardRepository_GetAll_Empty(t *testing.T) {
	repo, mock, cleanup := setupRewardTestRepository(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT name, points, quantity, image FROM rewards`).
		WillReturnRows(sqlmock.NewRows([]string{"name", "points", "quantity", "image"}))

	rewards, err := repo.GetAll(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, rewards)
	assert.Empty(t, rewards)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRewardRepository_GetByName(t *testing.T) {
	tests := []struct {
		name          string
		setupMock     func(sqlmock.Sqlmock)
		expectedError error
	}{
		{
			name: "success",
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"name", "points", "quantity", "image"}).
					AddRow("Coffee Mug", 100, 50, "")
				mock.ExpectQuery(`SELECT name, points, quantity, image FROM rewards WHERE name = \?`).
					WithArgs("Coffee Mug").
					WillReturnRows(rows)
			},
		},
		{
			name: "reward not found",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT name, points, quantity, image FROM rewards WHERE name = \?`).
					WithArgs("Coffee Mug").
					WillReturnError(sql.ErrNoRows)
			},
			expectedError: models.ErrRewardNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupRewardTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			reward, err := repo.GetByName(context.Background(), "Coffee Mug")

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, reward)
			} else {
				require.NoError(t, err)
				assert.Equal(t, "Coffee Mug", reward.Name)
				assert.Equal(t, 100, reward.Points)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRewardRepository_Create(t *testing.T) {
	tests := []struct {
		name          string
		setupMock     func(sqlmock.Sqlmock)
		expectedError error
	}{
		{
			name: "success",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO rewards`).
					WithArgs("Pin", 25, 200, "").
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "duplicate name",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO rewards`).
					WithArgs("Pin", 25, 200, "").
					WillReturnError(errors.New("Error 1062: Duplicate entry 'Pin' for key 'PRIMARY'"))
			},
			expectedError: models.ErrRewardExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupRewardTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			err := repo.Create(context.Background(), &models.Reward{
				Name:     "Pin",
				Points:   25,
				Quantity: 200,
			})

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRewardRepository_SetQuantity(t *testing.T) {
	tests := []struct {
		name          string
		setupMock     func(sqlmock.Sqlmock)
		expectedError error
	}{
		{
			name: "success",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT EXISTS`).
					WithArgs("Coffee Mug").
					WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
				mock.ExpectExec(`UPDATE rewards SET quantity = \?`).
					WithArgs(75, "Coffee Mug").
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "reward not found",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT EXISTS`).
					WithArgs("Coffee Mug").
					WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
			},
			expectedError: models.ErrRewardNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupRewardTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			err := repo.SetQuantity(context.Background(), "Coffee Mug", 75)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
