package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/loyaltypoints/backend/internal/middleware"
	"github.com/loyaltypoints/backend/internal/models"
	"go.uber.org/zap"
)

// ProfileService is the interface that wraps methods for profile business logic
type ProfileService interface {
	// Method Me returns the user's profile with recent history.
	Me(ctx context.Context, userID int) (*models.ProfileResponse, error)
}

// CodeService is the interface that wraps methods for promo code business logic
type CodeService interface {
	// Method ApplyCode credits a promo code's points to the user.
	ApplyCode(ctx context.Context, userID int, code string) (*models.CodeApplication, error)
}

// ProfileHandler handles the current-user endpoints
type ProfileHandler struct {
	BaseHandler
	profileService ProfileService
	codeService    CodeService
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(profileService ProfileService, codeService CodeService, logger *zap.Logger) *ProfileHandler {
	return &ProfileHandler{
		BaseHandler:    BaseHandler{Logger: logger},
		profileService: profileService,
		codeService:    codeService,
	}
}

// RegisterRoutes registers the profile routes behind the auth middleware
// Note: This assumes the router is already scoped to /api
func (h *ProfileHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.Get("/me", h.Me)
		r.Post("/check-code", h.CheckCode)
	})
}

// Me handles GET /api/me
// @Summary Get current user profile
// @Description Returns username, points, role and the 20 most recent history entries.
// @Tags profile
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} models.ProfileResponse "Profile"
// @Failure 401 {object} map[string]string "Authentication required"
// @Failure 404 {object} map[string]string "User not found"
// @Router /me [get]
func (h *ProfileHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	profile, err := h.profileService.Me(r.Context(), userID)
	if err != nil {
		h.Logger.Error("failed to load profile", zap.Int("userID", userID), zap.Error(err))
		h.RespondDomainError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, profile)
}

// CheckCode handles POST /api/check-code
// @Summary Apply a promotional code
// @Description Credits the code's point value to the caller. Each user may apply a given code once.
// @Tags profile
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body models.CheckCodeRequest true "Code request"
// @Success 200 {object} map[string]any "Points granted and new total"
// @Failure 400 {object} map[string]string "Code already redeemed or invalid request"
// @Failure 404 {object} map[string]string "Code not found"
// @Router /check-code [post]
func (h *ProfileHandler) CheckCode(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req models.CheckCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Code == "" {
		h.RespondError(w, http.StatusBadRequest, "code is required")
		return
	}

	result, err := h.codeService.ApplyCode(r.Context(), userID, req.Code)
	if err != nil {
		h.Logger.Warn("failed to apply code", zap.Int("userID", userID), zap.Error(err))
		h.RespondDomainError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string]any{
		"msg":    "code applied successfully",
		"points": result.Granted,
		"total":  result.Total,
	})
}
