package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/loyaltypoints/backend/internal/models"
	"go.uber.org/zap"
)

// CodeStore is the interface that wraps the promo code application operation
type CodeStore interface {
	// Method Apply credits a promo code's points to the user as one atomic unit.
	//
	// Returns models.ErrCodeNotFound for an unknown code and
	// models.ErrCodeAlreadyRedeemed when this user has applied the code before.
	Apply(ctx context.Context, userID int, code string) (*models.CodeApplication, error)
}

// codeService handles promo code redemption. Code application is strictly
// additive, so the only invariant is basic read-modify-write consistency,
// which the store provides.
type codeService struct {
	codes  CodeStore
	logger *zap.Logger
}

// NewCodeService creates a new code service
func NewCodeService(codes CodeStore, logger *zap.Logger) *codeService {
	return &codeService{
		codes:  codes,
		logger: logger,
	}
}

// ApplyCode credits the code's fixed point value to the user
func (s *codeService) ApplyCode(ctx context.Context, userID int, code string) (*models.CodeApplication, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, fmt.Errorf("code cannot be empty")
	}

	result, err := s.codes.Apply(ctx, userID, code)
	if err != nil {
		return nil, err
	}

	s.logger.Info("promo code applied",
		zap.Int("userID", userID),
		zap.String("code", code),
		zap.Int("granted", result.Granted),
	)

	return result, nil
}
