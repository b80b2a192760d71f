package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/loyaltypoints/backend/internal/models"
	"go.uber.org/zap"
)

// AuthService is the interface that wraps methods for authentication business logic
type AuthService interface {
	// Method Register creates a new user account and returns access and refresh tokens.
	//
	// Returns models.ErrUserExists when the username is taken.
	Register(ctx context.Context, req *models.RegisterRequest) (string, string, error)
	// Method Login authenticates a user and returns access and refresh tokens.
	//
	// Returns models.ErrInvalidCredentials for a bad username/password pair.
	Login(ctx context.Context, req *models.LoginRequest) (string, string, error)
	// Method Refresh exchanges a valid refresh token for a new token pair.
	Refresh(ctx context.Context, refreshToken string) (string, string, error)
	// Method ResetPassword replaces a user's password.
	//
	// Returns models.ErrUserNotFound for an unknown username.
	ResetPassword(ctx context.Context, req *models.ResetPasswordRequest) error
}

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	BaseHandler
	authService AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		BaseHandler: BaseHandler{Logger: logger},
		authService: authService,
	}
}

// RegisterRoutes registers all auth handler routes
// Note: This assumes the router is already scoped to /api
func (h *AuthHandler) RegisterRoutes(r chi.Router) {
	r.Post("/register", h.Register)
	r.Post("/login", h.Login)
	r.Post("/reset-password", h.ResetPassword)
	r.Route("/auth", func(r chi.Router) {
		r.Post("/refresh", h.Refresh)
	})
}

// Register handles POST /api/register
// @Summary Register a new user
// @Description Register a new user with username and password. New accounts start with zero points and the user role.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.RegisterRequest true "Registration request"
// @Success 201 {object} map[string]string "User registered successfully"
// @Failure 400 {object} map[string]string "Invalid request body or username already exists"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if strings.TrimSpace(req.Username) == "" || req.Password == "" {
		h.RespondError(w, http.StatusBadRequest, "username and password are required")
		return
	}

	accessToken, refreshToken, err := h.authService.Register(r.Context(), &req)
	if err != nil {
		h.Logger.Error("failed to register user", zap.Error(err))
		h.RespondDomainError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusCreated, map[string]string{
		"msg":          "user registered successfully",
		"token":        accessToken,
		"refreshToken": refreshToken,
	})
}

// Login handles POST /api/login
// @Summary Login user
// @Description Authenticate with username and password. Returns access and refresh tokens.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "Login request"
// @Success 200 {object} map[string]string "Tokens"
// @Failure 400 {object} map[string]string "Invalid request body"
// @Failure 401 {object} map[string]string "Invalid credentials"
// @Router /login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	accessToken, refreshToken, err := h.authService.Login(r.Context(), &req)
	if err != nil {
		h.Logger.Warn("failed login attempt", zap.String("username", req.Username))
		h.RespondError(w, http.StatusUnauthorized, models.ErrInvalidCredentials.Error())
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string]string{
		"token":        accessToken,
		"refreshToken": refreshToken,
	})
}

// RefreshRequest represents a token refresh request
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// Refresh handles POST /api/auth/refresh
// @Summary Refresh access token
// @Description Exchange a valid refresh token for a new access/refresh pair.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RefreshRequest true "Refresh token request"
// @Success 200 {object} map[string]string "Tokens"
// @Failure 400 {object} map[string]string "Refresh token required"
// @Failure 401 {object} map[string]string "Invalid or expired refresh token"
// @Router /auth/refresh [post]
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.RefreshToken == "" {
		h.RespondError(w, http.StatusBadRequest, "refresh token required")
		return
	}

	accessToken, refreshToken, err := h.authService.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		h.Logger.Warn("failed token refresh", zap.Error(err))
		h.RespondError(w, http.StatusUnauthorized, "invalid or expired refresh token")
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string]string{
		"token":        accessToken,
		"refreshToken": refreshToken,
	})
}

// ResetPassword handles POST /api/reset-password
// @Summary Reset a user's password
// @Description Replace the password for the given username. Outstanding access tokens stay valid until expiry.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.ResetPasswordRequest true "Reset request"
// @Success 200 {object} map[string]string "Password changed"
// @Failure 400 {object} map[string]string "Invalid request body"
// @Failure 404 {object} map[string]string "User not found"
// @Router /reset-password [post]
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req models.ResetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Username == "" || req.NewPassword == "" {
		h.RespondError(w, http.StatusBadRequest, "username and newPassword are required")
		return
	}

	if err := h.authService.ResetPassword(r.Context(), &req); err != nil {
		h.Logger.Error("failed to reset password", zap.Error(err))
		h.RespondDomainError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string]string{"msg": "password changed successfully"})
}
