package handlers

import (
	"context"
	"encoding/json"
	"io"
	"mime"
	"net/http"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/loyaltypoints/backend/internal/middleware"
	"github.com/loyaltypoints/backend/internal/models"
	"github.com/loyaltypoints/backend/internal/storage"
	"go.uber.org/zap"
)

// RewardService is the interface that wraps methods for reward business logic
type RewardService interface {
	// Method ListRewards returns the catalog as a map keyed by reward name.
	ListRewards(ctx context.Context) (map[string]models.Reward, error)
	// Method Redeem exchanges the user's points for one unit of the named reward.
	//
	// Returns models.ErrRewardNotFound, models.ErrOutOfStock,
	// models.ErrUserNotFound or models.ErrInsufficientPoints on failure.
	Redeem(ctx context.Context, userID int, rewardName string) (*models.RedemptionResult, error)
}

// RewardHandler handles catalog and redemption HTTP requests
type RewardHandler struct {
	BaseHandler
	rewardService RewardService
	images        storage.Storage
}

// NewRewardHandler creates a new reward handler
func NewRewardHandler(rewardService RewardService, images storage.Storage, logger *zap.Logger) *RewardHandler {
	return &RewardHandler{
		BaseHandler:   BaseHandler{Logger: logger},
		rewardService: rewardService,
		images:        images,
	}
}

// RegisterRoutes registers the reward routes
// Note: This assumes the router is already scoped to /api
func (h *RewardHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Get("/rewards", h.ListRewards)
	r.Get("/images/{file}", h.ServeImage)
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.Post("/redeem", h.Redeem)
	})
}

// ListRewards handles GET /api/rewards
// @Summary List the reward catalog
// @Description Returns all rewards keyed by name with cost, remaining quantity and image reference.
// @Tags rewards
// @Produce json
// @Success 200 {object} map[string]models.Reward "Catalog"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /rewards [get]
func (h *RewardHandler) ListRewards(w http.ResponseWriter, r *http.Request) {
	catalog, err := h.rewardService.ListRewards(r.Context())
	if err != nil {
		h.Logger.Error("failed to list rewards", zap.Error(err))
		h.RespondDomainError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, catalog)
}

// Redeem handles POST /api/redeem
// @Summary Redeem a reward
// @Description Atomically debits the caller's points and decrements the reward's stock.
// @Tags rewards
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body models.RedeemRequest true "Redeem request"
// @Success 200 {object} map[string]any "Remaining points and stock"
// @Failure 400 {object} map[string]string "Out of stock or insufficient points"
// @Failure 404 {object} map[string]string "Reward not found"
// @Router /redeem [post]
func (h *RewardHandler) Redeem(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req models.RedeemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	// Canonical field is "name"; "rewardName" kept for older clients
	name := req.Name
	if name == "" {
		name = req.RewardName
	}
	if name == "" {
		h.RespondError(w, http.StatusBadRequest, "name is required")
		return
	}

	result, err := h.rewardService.Redeem(r.Context(), userID, name)
	if err != nil {
		h.Logger.Warn("redemption failed",
			zap.Int("userID", userID),
			zap.String("reward", name),
			zap.Error(err),
		)
		h.RespondDomainError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string]any{
		"msg":      "reward redeemed successfully",
		"points":   result.Points,
		"quantity": result.Quantity,
	})
}

// ServeImage handles GET /api/images/{file}
// @Summary Serve a reward image
// @Tags rewards
// @Produce octet-stream
// @Param file path string true "Stored image file name"
// @Success 200 {file} binary "Image bytes"
// @Failure 404 {object} map[string]string "Image not found"
// @Router /images/{file} [get]
func (h *RewardHandler) ServeImage(w http.ResponseWriter, r *http.Request) {
	file := chi.URLParam(r, "file")

	reader, err := h.images.Open(file)
	if err != nil {
		h.RespondError(w, http.StatusNotFound, "image not found")
		return
	}
	defer reader.Close()

	if ct := mime.TypeByExtension(filepath.Ext(file)); ct != "" {
		w.Header().Set("Content-Type", ct)
	}

	if _, err := io.Copy(w, reader); err != nil {
		h.Logger.Error("failed to stream image", zap.String("file", file), zap.Error(err))
	}
}
