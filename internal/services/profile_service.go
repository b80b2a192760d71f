package services

import (
	"context"

	"github.com/loyaltypoints/backend/internal/models"
	"go.uber.org/zap"
)

// historyLimit caps the number of history entries returned by the profile
const historyLimit = 20

// HistoryRepository is the interface that wraps methods for history table data access
type HistoryRepository interface {
	// Method GetRecentByUser retrieves the most recent history entries for a user, newest first.
	GetRecentByUser(ctx context.Context, userID, limit int) ([]models.HistoryEntry, error)
}

// profileService assembles the current user's profile
type profileService struct {
	userRepo    UserRepository
	historyRepo HistoryRepository
	logger      *zap.Logger
}

// NewProfileService creates a new profile service
func NewProfileService(userRepo UserRepository, historyRepo HistoryRepository, logger *zap.Logger) *profileService {
	return &profileService{
		userRepo:    userRepo,
		historyRepo: historyRepo,
		logger:      logger,
	}
}

// Me returns the profile of the given user: username, points, role and the
// most recent history entries
func (s *profileService) Me(ctx context.Context, userID int) (*models.ProfileResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	history, err := s.historyRepo.GetRecentByUser(ctx, userID, historyLimit)
	if err != nil {
		// History is secondary to the profile itself
		s.logger.Warn("failed to load user history", zap.Int("userID", userID), zap.Error(err))
		history = []models.HistoryEntry{}
	}

	return &models.ProfileResponse{
		Username: user.Username,
		Points:   user.Points,
		Role:     user.Role,
		History:  history,
	}, nil
}
