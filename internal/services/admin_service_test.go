package services

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/loyaltypoints/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// mockAdminUserRepository is a mock implementation of AdminUserRepository
type mockAdminUserRepository struct {
	users          []models.UserListItem
	err            error
	grantErr       error
	grantedUser    string
	grantedDelta   int
	grantCallCount int
}

func (m *mockAdminUserRepository) GetAll(ctx context.Context) ([]models.UserListItem, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.users, nil
}

func (m *mockAdminUserRepository) GrantPoints(ctx context.Context, username string, delta int) error {
	m.grantCallCount++
	if m.grantErr != nil {
		return m.grantErr
	}
	m.grantedUser = username
	m.grantedDelta = delta
	return nil
}

// mockAdminRewardRepository is a mock implementation of AdminRewardRepository
type mockAdminRewardRepository struct {
	createErr      error
	setQuantityErr error
	created        *models.Reward
}

func (m *mockAdminRewardRepository) Create(ctx context.Context, reward *models.Reward) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.created = reward
	return nil
}

func (m *mockAdminRewardRepository) SetQuantity(ctx context.Context, name string, quantity int) error {
	return m.setQuantityErr
}

// mockStorage is an in-memory implementation of storage.Storage
type mockStorage struct {
	saved   map[string][]byte
	saveErr error
	deleted []string
}

func newMockStorage() *mockStorage {
	return &mockStorage{saved: make(map[string][]byte)}
}

func (m *mockStorage) Save(name string, r io.Reader) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	m.saved[name] = data
	return nil
}

func (m *mockStorage) Open(name string) (io.ReadCloser, error) {
	data, ok := m.saved[name]
	if !ok {
		return nil, errors.New("not found")
	}
	return io.NopCloser(strings.NewReader(string(data))), nil
}

func (m *mockStorage) Delete(name string) error {
	m.deleted = append(m.deleted, name)
	delete(m.saved, name)
	return nil
}

func TestAdminService_GrantPoints(t *testing.T) {
	tests := []struct {
		name          string
		username      string
		delta         int
		userRepo      *mockAdminUserRepository
		expectedError error
	}{
		{
			name:     "success",
			username: "alice",
			delta:    50,
			userRepo: &mockAdminUserRepository{},
		},
		{
			name:     "negative delta",
			username: "alice",
			delta:    -20,
			userRepo: &mockAdminUserRepository{},
		},
		{
			name:          "empty username",
			username:      "   ",
			delta:         50,
			userRepo:      &mockAdminUserRepository{},
			expectedError: assert.AnError,
		},
		{
			name:          "user not found",
			username:      "ghost",
			delta:         50,
			userRepo:      &mockAdminUserRepository{grantErr: models.ErrUserNotFound},
			expectedError: models.ErrUserNotFound,
		},
		{
			name:          "balance would go negative",
			username:      "alice",
			delta:         -500,
			userRepo:      &mockAdminUserRepository{grantErr: models.ErrNegativePoints},
			expectedError: models.ErrNegativePoints,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewAdminService(tt.userRepo, &mockAdminRewardRepository{}, newMockStorage(), zap.NewNop())

			err := svc.GrantPoints(context.Background(), tt.username, tt.delta)

			if tt.expectedError != nil {
				assert.Error(t, err)
				if tt.expectedError != assert.AnError {
					assert.ErrorIs(t, err, tt.expectedError)
				}
			} else {
				require.NoError(t, err)
				assert.Equal(t, "alice", tt.userRepo.grantedUser)
				assert.Equal(t, tt.delta, tt.userRepo.grantedDelta)
			}
		})
	}
}

func TestAdminService_SetQuantity(t *testing.T) {
	tests := []struct {
		name          string
		rewardName    string
		quantity      int
		rewardRepo    *mockAdminRewardRepository
		expectedError error
	}{
		{
			name:       "success",
			rewardName: "Coffee Mug",
			quantity:   75,
			rewardRepo: &mockAdminRewardRepository{},
		},
		{
			name:       "zero is allowed",
			rewardName: "Coffee Mug",
			quantity:   0,
			rewardRepo: &mockAdminRewardRepository{},
		},
		{
			name:          "negative quantity",
			rewardName:    "Coffee Mug",
			quantity:      -1,
			rewardRepo:    &mockAdminRewardRepository{},
			expectedError: assert.AnError,
		},
		{
			name:          "empty name",
			rewardName:    "",
			quantity:      10,
			rewardRepo:    &mockAdminRewardRepository{},
			expectedError: assert.AnError,
		},
		{
			name:          "reward not found",
			rewardName:    "Unicorn",
			quantity:      10,
			rewardRepo:    &mockAdminRewardRepository{setQuantityErr: models.ErrRewardNotFound},
			expectedError: models.ErrRewardNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewAdminService(&mockAdminUserRepository{}, tt.rewardRepo, newMockStorage(), zap.NewNop())

			err := svc.SetQuantity(context.Background(), tt.rewardName, tt.quantity)

			if tt.expectedError != nil {
				assert.Error(t, err)
				if tt.expectedError != assert.AnError {
					assert.ErrorIs(t, err, tt.expectedError)
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAdminService_AddReward(t *testing.T) {
	t.Run("success without image", func(t *testing.T) {
		rewardRepo := &mockAdminRewardRepository{}
		svc := NewAdminService(&mockAdminUserRepository{}, rewardRepo, newMockStorage(), zap.NewNop())

		reward, err := svc.AddReward(context.Background(), "Pin", 25, 200, nil, "")

		require.NoError(t, err)
		assert.Equal(t, "Pin", reward.Name)
		assert.Equal(t, 25, reward.Points)
		assert.Equal(t, 200, reward.Quantity)
		assert.Empty(t, reward.Image)
		assert.Equal(t, reward, rewardRepo.created)
	})

	t.Run("success with image", func(t *testing.T) {
		store := newMockStorage()
		svc := NewAdminService(&mockAdminUserRepository{}, &mockAdminRewardRepository{}, store, zap.NewNop())

		reward, err := svc.AddReward(context.Background(), "Pin", 25, 200, strings.NewReader("imagedata"), "pin.png")

		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(reward.Image, "/api/images/"))
		assert.True(t, strings.HasSuffix(reward.Image, ".png"))
		assert.Len(t, store.saved, 1)
	})

	t.Run("unsupported image type", func(t *testing.T) {
		svc := NewAdminService(&mockAdminUserRepository{}, &mockAdminRewardRepository{}, newMockStorage(), zap.NewNop())

		reward, err := svc.AddReward(context.Background(), "Pin", 25, 200, strings.NewReader("data"), "pin.exe")

		assert.Error(t, err)
		assert.Nil(t, reward)
	})

	t.Run("duplicate reward removes stored image", func(t *testing.T) {
		store := newMockStorage()
		rewardRepo := &mockAdminRewardRepository{createErr: models.ErrRewardExists}
		svc := NewAdminService(&mockAdminUserRepository{}, rewardRepo, store, zap.NewNop())

		reward, err := svc.AddReward(context.Background(), "Pin", 25, 200, strings.NewReader("imagedata"), "pin.png")

		assert.ErrorIs(t, err, models.ErrRewardExists)
		assert.Nil(t, reward)
		assert.Len(t, store.deleted, 1)
		assert.Empty(t, store.saved)
	})

	t.Run("invalid inputs", func(t *testing.T) {
		svc := NewAdminService(&mockAdminUserRepository{}, &mockAdminRewardRepository{}, newMockStorage(), zap.NewNop())

		_, err := svc.AddReward(context.Background(), "", 25, 200, nil, "")
		assert.Error(t, err)

		_, err = svc.AddReward(context.Background(), "Pin", 0, 200, nil, "")
		assert.Error(t, err)

		_, err = svc.AddReward(context.Background(), "Pin", 25, -1, nil, "")
		assert.Error(t, err)
	})
}

func TestAdminService_ListUsers(t *testing.T) {
	users := []models.UserListItem{
		{Username: "admin", Points: 0, Role: models.RoleAdmin},
		{Username: "alice", Points: 150, Role: models.RoleUser},
	}
	svc := NewAdminService(&mockAdminUserRepository{users: users}, &mockAdminRewardRepository{}, newMockStorage(), zap.NewNop())

	got, err := svc.ListUsers(context.Background())

	require.NoError(t, err)
	assert.Equal(t, users, got)
}
