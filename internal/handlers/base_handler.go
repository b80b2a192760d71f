package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/loyaltypoints/backend/internal/models"
	"go.uber.org/zap"
)

// BaseHandler provides common handler functionality
type BaseHandler struct {
	Logger *zap.Logger
}

// RespondJSON sends a JSON response
func (h *BaseHandler) RespondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.Logger.Error("failed to encode JSON response", zap.Error(err))
	}
}

// RespondError sends an error JSON response
func (h *BaseHandler) RespondError(w http.ResponseWriter, status int, message string) {
	h.RespondJSON(w, status, map[string]string{"msg": message})
}

// RespondDomainError maps a domain error to its HTTP status and sends it.
// Unrecognized errors are logged and surface as a generic 500 so storage
// internals never leak to the caller.
func (h *BaseHandler) RespondDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrUserNotFound),
		errors.Is(err, models.ErrRewardNotFound),
		errors.Is(err, models.ErrCodeNotFound):
		h.RespondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, models.ErrInvalidCredentials):
		h.RespondError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, models.ErrUserExists),
		errors.Is(err, models.ErrRewardExists),
		errors.Is(err, models.ErrOutOfStock),
		errors.Is(err, models.ErrInsufficientPoints),
		errors.Is(err, models.ErrNegativePoints),
		errors.Is(err, models.ErrCodeAlreadyRedeemed):
		h.RespondError(w, http.StatusBadRequest, err.Error())
	default:
		h.Logger.Error("internal error", zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, "internal server error")
	}
}
