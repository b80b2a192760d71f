package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/loyaltypoints/backend/internal/models"
	"go.uber.org/zap"
)

// maxUploadSize limits admin multipart uploads (reward images)
const maxUploadSize = 10 << 20 // 10MB

// AdminService is the interface that wraps methods for admin operations
type AdminService interface {
	// Method GrantPoints adjusts a user's balance by delta.
	//
	// Returns models.ErrUserNotFound for an unknown user and
	// models.ErrNegativePoints when the grant would drive the balance below zero.
	GrantPoints(ctx context.Context, username string, delta int) error
	// Method SetQuantity overwrites a reward's stock with an absolute value.
	//
	// Returns models.ErrRewardNotFound for an unknown reward.
	SetQuantity(ctx context.Context, name string, quantity int) error
	// Method AddReward creates a new catalog reward with an optional image.
	//
	// Returns models.ErrRewardExists if the name is already taken.
	AddReward(ctx context.Context, name string, points, quantity int, image io.Reader, imageFilename string) (*models.Reward, error)
	// Method ListUsers returns all users with their balances and roles.
	ListUsers(ctx context.Context) ([]models.UserListItem, error)
}

// AdminHandler handles admin-only HTTP requests. The admin guard middleware
// runs before every route registered here.
type AdminHandler struct {
	BaseHandler
	adminService AdminService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(adminService AdminService, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{
		BaseHandler:  BaseHandler{Logger: logger},
		adminService: adminService,
	}
}

// RegisterRoutes registers all admin handler routes
// Note: This assumes the router is already scoped to /api and guarded
func (h *AdminHandler) RegisterRoutes(r chi.Router) {
	r.Route("/admin", func(r chi.Router) {
		r.Post("/add-points", h.AddPoints)
		r.Post("/update-quantity", h.UpdateQuantity)
		r.Post("/add-reward", h.AddReward)
	})
	r.Get("/all-users", h.ListUsers)
}

// AddPoints handles POST /api/admin/add-points
// @Summary Grant points to a user
// @Description Adds (or removes) points on a user's balance. The balance may not go negative.
// @Tags admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body models.AddPointsRequest true "Grant request"
// @Success 200 {object} map[string]string "Points granted"
// @Failure 400 {object} map[string]string "Balance would go negative"
// @Failure 403 {object} map[string]string "Admin access required"
// @Failure 404 {object} map[string]string "User not found"
// @Router /admin/add-points [post]
func (h *AdminHandler) AddPoints(w http.ResponseWriter, r *http.Request) {
	var req models.AddPointsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Username == "" {
		h.RespondError(w, http.StatusBadRequest, "username is required")
		return
	}

	if err := h.adminService.GrantPoints(r.Context(), req.Username, req.Points); err != nil {
		h.Logger.Error("failed to grant points", zap.String("username", req.Username), zap.Error(err))
		h.RespondDomainError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string]string{"msg": "points granted to " + req.Username})
}

// UpdateQuantity handles POST /api/admin/update-quantity
// @Summary Set a reward's stock
// @Description Overwrites a reward's remaining quantity with an absolute non-negative value.
// @Tags admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body models.UpdateQuantityRequest true "Quantity request"
// @Success 200 {object} map[string]string "Quantity updated"
// @Failure 400 {object} map[string]string "Negative quantity"
// @Failure 403 {object} map[string]string "Admin access required"
// @Failure 404 {object} map[string]string "Reward not found"
// @Router /admin/update-quantity [post]
func (h *AdminHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Name == "" {
		h.RespondError(w, http.StatusBadRequest, "name is required")
		return
	}
	if req.Quantity < 0 {
		h.RespondError(w, http.StatusBadRequest, "quantity cannot be negative")
		return
	}

	if err := h.adminService.SetQuantity(r.Context(), req.Name, req.Quantity); err != nil {
		h.Logger.Error("failed to update quantity", zap.String("name", req.Name), zap.Error(err))
		h.RespondDomainError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string]string{"msg": "quantity updated"})
}

// AddReward handles POST /api/admin/add-reward
// @Summary Add a catalog reward
// @Description Creates a new reward with an optional image upload.
// @Tags admin
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param name formData string true "Reward name"
// @Param points formData int true "Point cost"
// @Param quantity formData int true "Initial stock"
// @Param image formData file false "Reward image (optional)"
// @Success 201 {object} map[string]any "Reward created"
// @Failure 400 {object} map[string]string "Invalid request or reward already exists"
// @Failure 403 {object} map[string]string "Admin access required"
// @Router /admin/add-reward [post]
func (h *AdminHandler) AddReward(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		h.Logger.Error("failed to parse multipart form", zap.Error(err))
		h.RespondError(w, http.StatusBadRequest, "failed to parse request")
		return
	}

	name := r.FormValue("name")
	pointsStr := r.FormValue("points")
	quantityStr := r.FormValue("quantity")

	if name == "" || pointsStr == "" || quantityStr == "" {
		h.RespondError(w, http.StatusBadRequest, "name, points, and quantity are required")
		return
	}

	points, err := strconv.Atoi(pointsStr)
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid points")
		return
	}

	quantity, err := strconv.Atoi(quantityStr)
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid quantity")
		return
	}

	// Extract image file (optional)
	var image io.Reader
	var imageFilename string
	file, fileHeader, err := r.FormFile("image")
	if err == nil && file != nil && fileHeader != nil {
		if fileHeader.Size > 0 {
			image = file
			imageFilename = fileHeader.Filename
			defer file.Close()
		}
	} else if err != http.ErrMissingFile {
		h.Logger.Error("failed to get image file from form", zap.Error(err))
		h.RespondError(w, http.StatusBadRequest, "failed to process image file")
		return
	}

	reward, err := h.adminService.AddReward(r.Context(), name, points, quantity, image, imageFilename)
	if err != nil {
		h.Logger.Error("failed to add reward", zap.String("name", name), zap.Error(err))
		h.RespondDomainError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusCreated, map[string]any{
		"msg":    "reward added successfully",
		"reward": reward,
	})
}

// ListUsers handles GET /api/all-users
// @Summary List all users
// @Description Returns every user with username, points and role.
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} models.UserListItem "Users"
// @Failure 403 {object} map[string]string "Admin access required"
// @Router /all-users [get]
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.adminService.ListUsers(r.Context())
	if err != nil {
		h.Logger.Error("failed to list users", zap.Error(err))
		h.RespondDomainError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, users)
}
